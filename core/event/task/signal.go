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

// Package task holds the small synchronization primitives used to hand off
// work between the host application's threads.
package task

import (
	"context"
	"sync"
	"time"
)

// Signal is used to notify that something has happened.
// Nothing is ever sent through a signal, it is closed to indicate signalled,
// which releases every waiter at once.
type Signal <-chan struct{}

// Fire closes the signal it was created with. Calling it more than once is
// a no-op.
type Fire func()

// FiredSignal is a signal that is always in the fired state.
var FiredSignal Signal

func init() {
	fired := make(chan struct{})
	close(fired)
	FiredSignal = fired
}

// NewSignal builds a new signal, and then returns the signal and the function
// used to fire it.
func NewSignal() (Signal, Fire) {
	c := make(chan struct{})
	once := sync.Once{}
	return c, func() { once.Do(func() { close(c) }) }
}

// Fired returns true if the signal has been fired.
func (s Signal) Fired() bool {
	select {
	case <-s:
		return true
	default:
		return false
	}
}

// Wait blocks until the signal has been fired or the context has been
// cancelled.
// Returns true if the signal was fired, false if the context was cancelled.
func (s Signal) Wait(ctx context.Context) bool {
	select {
	case <-s:
		return true
	case <-ctx.Done():
		return false
	}
}

// TryWait waits for the signal to fire, the context to be cancelled or the
// timeout, whichever comes first.
// Returns true if the signal was fired.
func (s Signal) TryWait(ctx context.Context, timeout time.Duration) bool {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-s:
		return true
	case <-ctx.Done():
		return false
	case <-t.C:
		return false
	}
}
