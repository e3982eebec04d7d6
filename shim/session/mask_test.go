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

package session_test

import (
	"testing"

	"github.com/ovrxr/ovrxr/core/assert"
	"github.com/ovrxr/ovrxr/core/log"
	"github.com/ovrxr/ovrxr/ovr"
	"github.com/ovrxr/ovrxr/shim/hack"
	"github.com/ovrxr/ovrxr/xr"
)

func TestLineLoopTruncation(t *testing.T) {
	ctx := log.Testing(t)
	for _, test := range []struct {
		name   string
		hack   bool
		expect int
	}{
		{"broken", true, 27},
		{"conformant", false, 40},
	} {
		rt := runtime(17, xr.EPICViewConfigurationFov, xr.KHRVisibilityMask)
		rt.MaskCounts[xr.VisibilityMaskLineLoop] = 40
		rt.MaskCounts[xr.VisibilityMaskHiddenTriangleMesh] = 12
		f := newFixture(ctx, rt, hack.Record{Runtime: "Acme", Hack: hack.BrokenLineLoop, Enabled: test.hack})
		f.start(ctx)

		for _, eye := range []ovr.Eye{ovr.EyeLeft, ovr.EyeRight} {
			m, ok := f.s.VisibilityMask(eye, xr.VisibilityMaskLineLoop)
			assert.For(ctx, "%s cached", test.name).ThatBoolean(ok).IsTrue()
			assert.For(ctx, "%s vertices", test.name).ThatSlice(m.Vertices).IsLength(test.expect)
			assert.For(ctx, "%s indices", test.name).ThatSlice(m.Indices).IsLength(test.expect)

			hidden, ok := f.s.VisibilityMask(eye, xr.VisibilityMaskHiddenTriangleMesh)
			assert.For(ctx, "%s hidden", test.name).ThatBoolean(ok).IsTrue()
			assert.For(ctx, "%s hidden untouched", test.name).ThatSlice(hidden.Vertices).IsLength(12)

			_, ok = f.s.VisibilityMask(eye, xr.VisibilityMaskVisibleTriangleMesh)
			assert.For(ctx, "%s empty mask skipped", test.name).ThatBoolean(ok).IsFalse()
		}
	}
}

func TestUpdateStencil(t *testing.T) {
	ctx := log.Testing(t)
	rt := runtime(17, xr.EPICViewConfigurationFov, xr.KHRVisibilityMask)
	f := newFixture(ctx, rt)
	f.start(ctx)

	err := f.s.UpdateStencil(ctx, ovr.EyeLeft, xr.VisibilityMaskVisibleTriangleMesh)
	assert.For(ctx, "zero count").ThatError(err).Equals(ovr.ErrUnsupported)

	rt.MaskCounts[xr.VisibilityMaskVisibleTriangleMesh] = 6
	err = f.s.UpdateStencil(ctx, ovr.EyeRight, xr.VisibilityMaskVisibleTriangleMesh)
	assert.For(ctx, "fetched").ThatError(err).Succeeded()
	m, ok := f.s.VisibilityMask(ovr.EyeRight, xr.VisibilityMaskVisibleTriangleMesh)
	assert.For(ctx, "cached").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "indices").ThatSlice(m.Indices).Equals([]uint32{0, 1, 2, 3, 4, 5})

	rt.Fail("xrGetVisibilityMaskKHR", xr.ErrorRuntimeFailure)
	err = f.s.UpdateStencil(ctx, ovr.EyeLeft, xr.VisibilityMaskLineLoop)
	assert.For(ctx, "failure").ThatError(err).HasCause(xr.ErrorRuntimeFailure)

	assert.For(ctx, "destroy").ThatError(f.s.DestroySession(ctx)).Succeeded()
	_, ok = f.s.VisibilityMask(ovr.EyeRight, xr.VisibilityMaskVisibleTriangleMesh)
	assert.For(ctx, "dropped").ThatBoolean(ok).IsFalse()
}

func TestMasksInNDC(t *testing.T) {
	ctx := log.Testing(t)
	f := newFixture(ctx, runtime(17))
	assert.For(ctx, "InitSession").ThatError(f.s.InitSession(ctx, f.inst)).Succeeded()
	assert.For(ctx, "acme").ThatBoolean(f.s.MasksInNDC()).IsFalse()

	f = newFixture(ctx, runtime(17), hack.Record{Hack: hack.NDCMasks, Enabled: true})
	assert.For(ctx, "InitSession").ThatError(f.s.InitSession(ctx, f.inst)).Succeeded()
	assert.For(ctx, "forced").ThatBoolean(f.s.MasksInNDC()).IsTrue()
}
