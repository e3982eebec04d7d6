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

package app_test

import (
	"context"
	"testing"

	"github.com/ovrxr/ovrxr/core/app"
	"github.com/ovrxr/ovrxr/core/assert"
	"github.com/ovrxr/ovrxr/core/log"
)

func TestCleanupOrder(t *testing.T) {
	ctx := log.Testing(t)
	var got []string
	release := func(name string) app.Cleanup {
		return func(context.Context) { got = append(got, name) }
	}
	var c app.Cleanup
	c = c.Push(release("device"))
	c = c.Push(release("session"))
	c = c.Push(release("space"))
	c = c.Invoke(ctx)
	assert.For(ctx, "order").ThatSlice(got).Equals([]string{"space", "session", "device"})
	assert.For(ctx, "reset").That(c).IsNil()

	got = nil
	release("a").Then(nil).Then(release("b"))(ctx)
	assert.For(ctx, "then").ThatSlice(got).Equals([]string{"a", "b"})
}
