// Copyright (C) 2024 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package gfxfake is an in-memory graphics backend for tests.
package gfxfake

import (
	"context"
	"sync"

	"github.com/ovrxr/ovrxr/gfx"
)

// Adapter is a fake adapter.
type Adapter struct {
	ID   gfx.LUID
	Name string
}

// LUID implements gfx.Adapter.
func (a *Adapter) LUID() gfx.LUID { return a.ID }

// Description implements gfx.Adapter.
func (a *Adapter) Description() string { return a.Name }

// Device is a fake device.
type Device struct {
	backend  *Backend
	adapter  *Adapter
	released bool
}

// Adapter implements gfx.Device.
func (d *Device) Adapter() gfx.Adapter { return d.adapter }

// Release implements gfx.Device.
func (d *Device) Release() {
	d.backend.mu.Lock()
	defer d.backend.mu.Unlock()
	if !d.released {
		d.released = true
		d.backend.live--
	}
}

// Backend is a fake gfx.Backend with a fixed set of adapters.
type Backend struct {
	AdapterList []*Adapter
	// CreateErr, if set, is returned by CreateDevice.
	CreateErr error

	mu      sync.Mutex
	created int
	live    int
}

// New returns a backend exposing the given adapters.
func New(adapters ...*Adapter) *Backend {
	return &Backend{AdapterList: adapters}
}

// Adapters implements gfx.Backend.
func (b *Backend) Adapters(ctx context.Context) ([]gfx.Adapter, error) {
	out := make([]gfx.Adapter, len(b.AdapterList))
	for i, a := range b.AdapterList {
		out[i] = a
	}
	return out, nil
}

// CreateDevice implements gfx.Backend.
func (b *Backend) CreateDevice(ctx context.Context, adapter gfx.Adapter) (gfx.Device, error) {
	if b.CreateErr != nil {
		return nil, b.CreateErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.created++
	b.live++
	return &Device{backend: b, adapter: adapter.(*Adapter)}, nil
}

// Created returns the number of devices created so far.
func (b *Backend) Created() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.created
}

// Live returns the number of devices created and not yet released.
func (b *Backend) Live() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.live
}
