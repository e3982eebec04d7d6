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
	"github.com/ovrxr/ovrxr/core/math/f32"
	"github.com/ovrxr/ovrxr/ovr"
	"github.com/ovrxr/ovrxr/xr"
)

func TestRecenterFloorLevel(t *testing.T) {
	ctx := log.Testing(t)
	rt := runtime(17, xr.EPICViewConfigurationFov)
	f := newFixture(ctx, rt)
	f.start(ctx)

	s, c := f32.Sincos(0.3)
	pitchedYaw := f32.AxisY(1.1).Mul(f32.Quat{s, 0, 0, c})
	for _, height := range []float32{1.7, -0.4, 0.01} {
		rt.Location = xr.SpaceLocation{
			Flags: xr.OrientationValid | xr.PositionValid,
			Pose:  f32.Pose{Orientation: pitchedYaw, Position: f32.Vec3{0.5, height, -2}},
		}
		err := f.s.Recenter(ctx, ovr.TrackingOriginFloorLevel)
		assert.For(ctx, "recenter %v", height).ThatError(err).Succeeded()

		info := rt.SpaceInfo(f.s.TrackingSpace(ovr.TrackingOriginFloorLevel)).Info
		assert.For(ctx, "type").That(info.Type).Equals(xr.ReferenceSpaceStage)
		pose := info.PoseInReferenceSpace
		assert.For(ctx, "y %v", height).ThatFloat(float64(pose.Position[1])).IsExactly(0)
		assert.For(ctx, "x").ThatFloat(float64(pose.Position[0])).Equals(0.5, 1e-6)
		assert.For(ctx, "yaw only").ThatFloat(float64(pose.Orientation[0])).Equals(0, 1e-6)
		assert.For(ctx, "yaw").ThatFloat(float64(pose.Orientation.Yaw())).Equals(1.1, 1e-5)
	}
	assert.For(ctx, "old spaces destroyed").ThatInteger(rt.LiveSpaces()).Equals(5)
}

func TestRecenterEyeLevelOffset(t *testing.T) {
	ctx := log.Testing(t)
	rt := runtime(17, xr.EPICViewConfigurationFov)
	f := newFixture(ctx, rt)
	f.start(ctx)

	rt.Location.Pose = f32.Pose{Orientation: f32.IdentityQuat, Position: f32.Vec3{0, 1.6, 0}}
	offset := f32.Pose{Orientation: f32.IdentityQuat, Position: f32.Vec3{0, 0, 1}}
	err := f.s.RecenterSpace(ctx, ovr.TrackingOriginEyeLevel, f.s.ViewSpace(), offset)
	assert.For(ctx, "err").ThatError(err).Succeeded()
	info := rt.SpaceInfo(f.s.TrackingSpace(ovr.TrackingOriginEyeLevel)).Info
	assert.For(ctx, "type").That(info.Type).Equals(xr.ReferenceSpaceLocal)
	assert.For(ctx, "pose").That(info.PoseInReferenceSpace.Position).Equals(f32.Vec3{0, 1.6, 1})
}

func TestRecenterInvalidOrientation(t *testing.T) {
	ctx := log.Testing(t)
	rt := runtime(17, xr.EPICViewConfigurationFov)
	f := newFixture(ctx, rt)
	f.start(ctx)

	before := f.s.TrackingSpace(ovr.TrackingOriginEyeLevel)
	rt.Location.Flags = xr.OrientationTracked | xr.PositionTracked
	err := f.s.Recenter(ctx, ovr.TrackingOriginEyeLevel)
	assert.For(ctx, "err").ThatError(err).Equals(ovr.ErrInvalidHeadsetOrientation)
	assert.For(ctx, "kept").That(f.s.TrackingSpace(ovr.TrackingOriginEyeLevel)).Equals(before)
	assert.For(ctx, "usable").That(rt.SpaceInfo(before)).IsNotNil()
	assert.For(ctx, "nothing destroyed").ThatInteger(rt.Count("xrDestroySpace")).Equals(0)
}

func TestRecenterCreateFailureKeepsSpace(t *testing.T) {
	ctx := log.Testing(t)
	rt := runtime(17, xr.EPICViewConfigurationFov)
	f := newFixture(ctx, rt)
	f.start(ctx)

	before := f.s.TrackingSpace(ovr.TrackingOriginFloorLevel)
	rt.Fail("xrCreateReferenceSpace", xr.ErrorLimitReached)
	err := f.s.Recenter(ctx, ovr.TrackingOriginFloorLevel)
	assert.For(ctx, "err").ThatError(err).HasCause(xr.ErrorLimitReached)
	assert.For(ctx, "kept").That(f.s.TrackingSpace(ovr.TrackingOriginFloorLevel)).Equals(before)
	assert.For(ctx, "usable").That(rt.SpaceInfo(before)).IsNotNil()
}

func TestRecenterWithoutSession(t *testing.T) {
	ctx := log.Testing(t)
	rt := runtime(17, xr.EPICViewConfigurationFov)
	f := newFixture(ctx, rt)
	assert.For(ctx, "InitSession").ThatError(f.s.InitSession(ctx, f.inst)).Succeeded()
	err := f.s.Recenter(ctx, ovr.TrackingOriginEyeLevel)
	assert.For(ctx, "err").ThatError(err).Equals(ovr.ErrInvalidSession)
}
