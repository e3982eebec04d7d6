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

// Package app holds helpers for unwinding partially completed operations.
package app

import "context"

// Cleanup undoes work done so far. A nil Cleanup does nothing.
type Cleanup func(ctx context.Context)

// Push returns a Cleanup that runs release before c. Pushing a release as
// each resource is acquired unwinds them newest first.
func (c Cleanup) Push(release Cleanup) Cleanup {
	switch {
	case release == nil:
		return c
	case c == nil:
		return release
	}
	return func(ctx context.Context) {
		release(ctx)
		c(ctx)
	}
}

// Then returns a Cleanup that runs c and then next.
func (c Cleanup) Then(next Cleanup) Cleanup { return next.Push(c) }

// Invoke runs c if it is set. It returns nil so the variable holding c can
// be cleared in the same statement.
func (c Cleanup) Invoke(ctx context.Context) Cleanup {
	if c != nil {
		c(ctx)
	}
	return nil
}
