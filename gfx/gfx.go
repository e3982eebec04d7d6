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

// Package gfx is the boundary to the graphics backend: adapter discovery and
// device creation for the adapter the runtime renders on.
package gfx

import (
	"context"
	"fmt"

	"github.com/ovrxr/ovrxr/core/fault"
)

// ErrAdapterNotFound is returned when no adapter matches the runtime's LUID.
const ErrAdapterNotFound = fault.Const("No graphics adapter matches the runtime's adapter LUID")

// LUID is a locally unique adapter identifier.
type LUID [8]byte

func (l LUID) String() string { return fmt.Sprintf("%x", [8]byte(l)) }

// Adapter is a physical graphics adapter.
type Adapter interface {
	LUID() LUID
	Description() string
}

// Device is a graphics device created on an adapter.
type Device interface {
	Adapter() Adapter
	// Release destroys the device.
	Release()
}

// Backend enumerates adapters and creates devices on them.
type Backend interface {
	Adapters(ctx context.Context) ([]Adapter, error)
	CreateDevice(ctx context.Context, adapter Adapter) (Device, error)
}

// D3D11Binding is the graphics binding handed to the runtime when creating a
// session.
type D3D11Binding struct {
	Device Device
}

// DeviceForLUID creates a device on the adapter identified by luid.
// The caller owns the returned device and must Release it.
func DeviceForLUID(ctx context.Context, b Backend, luid LUID) (Device, error) {
	adapters, err := b.Adapters(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range adapters {
		if a.LUID() == luid {
			return b.CreateDevice(ctx, a)
		}
	}
	return nil, ErrAdapterNotFound
}
