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
	"context"
	"testing"
	"time"

	"github.com/ovrxr/ovrxr/core/assert"
	"github.com/ovrxr/ovrxr/core/log"
	"github.com/ovrxr/ovrxr/core/math/f32"
	"github.com/ovrxr/ovrxr/gfx"
	"github.com/ovrxr/ovrxr/gfx/gfxfake"
	"github.com/ovrxr/ovrxr/ovr"
	"github.com/ovrxr/ovrxr/shim/caps"
	"github.com/ovrxr/ovrxr/shim/hack"
	"github.com/ovrxr/ovrxr/shim/session"
	"github.com/ovrxr/ovrxr/xr"
	"github.com/ovrxr/ovrxr/xr/xrfake"
)

type input struct{ attached []xr.Session }

func (i *input) AttachSession(ctx context.Context, s xr.Session) { i.attached = append(i.attached, s) }

type pacer struct{ calls []string }

func (p *pacer) WaitToBeginFrame(ctx context.Context, i int64) error {
	p.calls = append(p.calls, "wait")
	return nil
}

func (p *pacer) BeginFrame(ctx context.Context, i int64) error {
	p.calls = append(p.calls, "begin")
	return nil
}

type fixture struct {
	rt      *xrfake.Runtime
	inst    *caps.Instance
	backend *gfxfake.Backend
	input   *input
	pacer   *pacer
	s       *session.Session
}

func newFixture(ctx context.Context, rt *xrfake.Runtime, records ...hack.Record) *fixture {
	inst, err := caps.CreateInstance(ctx, rt, caps.Options{Executable: "app.exe", Hacks: records})
	assert.For(ctx, "CreateInstance").ThatError(err).Succeeded()
	f := &fixture{
		rt:      rt,
		inst:    inst,
		backend: gfxfake.New(&gfxfake.Adapter{ID: gfx.LUID{9}}, &gfxfake.Adapter{ID: gfx.LUID(rt.LUID), Name: "hmd"}),
		input:   &input{},
		pacer:   &pacer{},
	}
	f.s = session.New(session.Config{Backend: f.backend, Input: f.input, Pacer: f.pacer})
	return f
}

func runtime(minor uint32, exts ...string) *xrfake.Runtime {
	exts = append(append([]string{}, caps.Required...), exts...)
	rt := xrfake.New("Acme", xr.MakeVersion(1, minor, 0), exts...)
	rt.Formats = []int64{int64(gfx.FormatR8G8B8A8UnormSRGB), int64(gfx.FormatR8G8B8A8Unorm)}
	return rt
}

func (f *fixture) start(ctx context.Context) {
	assert.For(ctx, "InitSession").ThatError(f.s.InitSession(ctx, f.inst)).Succeeded()
	assert.For(ctx, "StartSession").ThatError(f.s.StartSession(ctx, gfx.D3D11Binding{})).Succeeded()
}

func TestProbeScenario(t *testing.T) {
	ctx := log.Testing(t)
	rt := runtime(16, xr.EPICViewConfigurationFov)
	f := newFixture(ctx, rt)

	assert.For(ctx, "InitSession").ThatError(f.s.InitSession(ctx, f.inst)).Succeeded()
	assert.For(ctx, "state").That(f.s.State()).Equals(session.Probing)
	assert.For(ctx, "probe sessions").ThatInteger(rt.Count("xrCreateSession")).Equals(1)
	assert.For(ctx, "probe released").ThatInteger(rt.LiveSessions()).Equals(0)
	assert.For(ctx, "device released").ThatInteger(f.backend.Live()).Equals(0)
	assert.For(ctx, "no begin without hack").ThatInteger(rt.Count("xrBeginSession")).Equals(0)
	assert.For(ctx, "input not attached by probe").ThatSlice(f.input.attached).IsEmpty()
	assert.For(ctx, "handle").That(f.s.Handle()).Equals(xr.Session(xr.NullHandle))
	assert.For(ctx, "bounds").That(f.s.StageBounds()).Equals(rt.Bounds)

	desc := f.s.RenderDesc(ovr.EyeLeft)
	l, r, _, _ := rt.ViewFovs[0].Tangents()
	assert.For(ctx, "left tan").ThatFloat(float64(desc.Fov.LeftTan)).Equals(float64(l), 1e-6)
	assert.For(ctx, "ppt x").ThatFloat(float64(desc.PixelsPerTanAngle[0])).Equals(float64(1440/(l+r)), 1e-3)
	assert.For(ctx, "eye pose").That(desc.HmdToEyePose).Equals(rt.ViewPoses[0])

	assert.For(ctx, "StartSession").ThatError(f.s.StartSession(ctx, gfx.D3D11Binding{})).Succeeded()
	assert.For(ctx, "BeginSession").ThatError(f.s.BeginSession(ctx)).Succeeded()
	assert.For(ctx, "pacing").ThatSlice(f.pacer.calls).Equals([]string{"wait", "begin"})
	assert.For(ctx, "input").ThatSlice(f.input.attached).Equals([]xr.Session{f.s.Handle()})

	views, state, err := f.s.LocateViews(ctx)
	assert.For(ctx, "LocateViews").ThatError(err).Succeeded()
	assert.For(ctx, "views").ThatInteger(len(views)).Equals(2)
	valid := xr.OrientationValid | xr.PositionValid
	assert.For(ctx, "flags").That(state.Flags & valid).Equals(valid)
	assert.For(ctx, "right eye").That(views[1].Pose).Equals(rt.ViewPoses[1])
}

func TestRuntimeReportsFov(t *testing.T) {
	ctx := log.Testing(t)
	rt := runtime(17, xr.EPICViewConfigurationFov)
	f := newFixture(ctx, rt)
	assert.For(ctx, "InitSession").ThatError(f.s.InitSession(ctx, f.inst)).Succeeded()
	assert.For(ctx, "no probe").ThatInteger(rt.Count("xrCreateSession")).Equals(0)
	assert.For(ctx, "no device").ThatInteger(f.backend.Created()).Equals(0)
	assert.For(ctx, "identity pose").That(f.s.RenderDesc(ovr.EyeRight).HmdToEyePose).Equals(f32.IdentityPose)

	rt = runtime(17, xr.EPICViewConfigurationFov)
	f = newFixture(ctx, rt, hack.Record{Executable: "app.exe", Hack: hack.ForceFOVFallback, Enabled: true})
	assert.For(ctx, "forced InitSession").ThatError(f.s.InitSession(ctx, f.inst)).Succeeded()
	assert.For(ctx, "forced probe").ThatInteger(rt.Count("xrCreateSession")).Equals(1)

	rt = runtime(17)
	f = newFixture(ctx, rt)
	assert.For(ctx, "no fov InitSession").ThatError(f.s.InitSession(ctx, f.inst)).Succeeded()
	assert.For(ctx, "no fov probe").ThatInteger(rt.Count("xrCreateSession")).Equals(1)
}

func TestProbeWaitsForReady(t *testing.T) {
	ctx := log.Testing(t)
	rt := runtime(16)
	rt.ReadyOnCreate = true
	f := newFixture(ctx, rt, hack.Record{Runtime: "Acme", Hack: hack.WaitForSessionReady, Enabled: true})
	assert.For(ctx, "InitSession").ThatError(f.s.InitSession(ctx, f.inst)).Succeeded()
	assert.For(ctx, "begun").ThatInteger(rt.Count("xrBeginSession")).Equals(1)
	assert.For(ctx, "polled").ThatInteger(rt.Count("xrPollEvent")).Equals(2)
	assert.For(ctx, "released").ThatInteger(rt.LiveSessions()).Equals(0)
}

func TestProbeReadyTimeout(t *testing.T) {
	ctx := log.Testing(t)
	rt := runtime(16)
	f := newFixture(ctx, rt, hack.Record{Runtime: "Acme", Hack: hack.WaitForSessionReady, Enabled: true})
	f.s = session.New(session.Config{Backend: f.backend, ReadyTimeout: 30 * time.Millisecond})
	err := f.s.InitSession(ctx, f.inst)
	assert.For(ctx, "err").ThatError(err).HasCause(ovr.ErrTimeout)
	assert.For(ctx, "released").ThatInteger(rt.LiveSessions()).Equals(0)
	assert.For(ctx, "device released").ThatInteger(f.backend.Live()).Equals(0)
}

func TestProbeReadyCancelled(t *testing.T) {
	ctx := log.Testing(t)
	rt := runtime(16)
	f := newFixture(ctx, rt, hack.Record{Runtime: "Acme", Hack: hack.WaitForSessionReady, Enabled: true})
	cctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	err := f.s.InitSession(cctx, f.inst)
	assert.For(ctx, "err").ThatError(err).Equals(context.DeadlineExceeded)
	assert.For(ctx, "released").ThatInteger(rt.LiveSessions()).Equals(0)
}

func TestProbePollFailureEndsWait(t *testing.T) {
	ctx := log.Testing(t)
	rt := runtime(16)
	rt.Fail("xrPollEvent", xr.ErrorRuntimeFailure)
	f := newFixture(ctx, rt, hack.Record{Runtime: "Acme", Hack: hack.WaitForSessionReady, Enabled: true})
	assert.For(ctx, "InitSession").ThatError(f.s.InitSession(ctx, f.inst)).Succeeded()
	assert.For(ctx, "begun").ThatInteger(rt.Count("xrBeginSession")).Equals(1)
}

func TestProbeNoAdapter(t *testing.T) {
	ctx := log.Testing(t)
	rt := runtime(16)
	f := newFixture(ctx, rt)
	f.s = session.New(session.Config{Backend: gfxfake.New(&gfxfake.Adapter{ID: gfx.LUID{9}})})
	err := f.s.InitSession(ctx, f.inst)
	assert.For(ctx, "err").ThatError(err).HasCause(gfx.ErrAdapterNotFound)
	assert.For(ctx, "no session").ThatInteger(rt.Count("xrCreateSession")).Equals(0)
}

func TestViewCountContract(t *testing.T) {
	ctx := log.Testing(t)
	rt := runtime(17, xr.EPICViewConfigurationFov)
	rt.ViewCount = 4
	f := newFixture(ctx, rt)
	defer func() {
		assert.For(ctx, "panicked").That(recover()).IsNotNil()
	}()
	f.s.InitSession(ctx, f.inst)
}

func TestLifecycleOrder(t *testing.T) {
	ctx := log.Testing(t)
	rt := runtime(17, xr.EPICViewConfigurationFov)
	f := newFixture(ctx, rt)
	assert.For(ctx, "InitSession").ThatError(f.s.InitSession(ctx, f.inst)).Succeeded()

	_, _, err := f.s.LocateViews(ctx)
	assert.For(ctx, "locate").ThatError(err).Equals(ovr.ErrInvalidSession)
	assert.For(ctx, "begin").ThatError(f.s.BeginSession(ctx)).Equals(ovr.ErrInvalidSession)
	assert.For(ctx, "destroy").ThatError(f.s.DestroySession(ctx)).Equals(ovr.ErrInvalidOperation)
	assert.For(ctx, "stencil").ThatError(f.s.UpdateStencil(ctx, ovr.EyeLeft, xr.VisibilityMaskHiddenTriangleMesh)).Equals(ovr.ErrInvalidSession)

	assert.For(ctx, "start").ThatError(f.s.StartSession(ctx, gfx.D3D11Binding{})).Succeeded()
	assert.For(ctx, "state").That(f.s.State()).Equals(session.Active)
	assert.For(ctx, "restart").ThatError(f.s.StartSession(ctx, gfx.D3D11Binding{})).Equals(ovr.ErrInvalidOperation)
	assert.For(ctx, "spaces").ThatInteger(rt.LiveSpaces()).Equals(5)
	assert.For(ctx, "formats").ThatBoolean(f.s.SupportsFormat(int64(gfx.FormatR8G8B8A8Unorm))).IsTrue()
	assert.For(ctx, "no bgra").ThatBoolean(f.s.SupportsFormat(int64(gfx.FormatB8G8R8A8Unorm))).IsFalse()

	eyeOrigin := f.s.OriginSpace(ovr.TrackingOriginEyeLevel)
	floorOrigin := f.s.OriginSpace(ovr.TrackingOriginFloorLevel)
	assert.For(ctx, "eye origin").That(rt.SpaceInfo(eyeOrigin).Info.Type).Equals(xr.ReferenceSpaceLocal)
	assert.For(ctx, "floor origin").That(rt.SpaceInfo(floorOrigin).Info.Type).Equals(xr.ReferenceSpaceStage)
	assert.For(ctx, "independent").That(f.s.TrackingSpace(ovr.TrackingOriginFloorLevel)).NotEquals(floorOrigin)

	assert.For(ctx, "end").ThatError(f.s.EndSession(ctx)).HasCause(xr.ErrorSessionNotRunning)
	assert.For(ctx, "destroy").ThatError(f.s.DestroySession(ctx)).Succeeded()
	assert.For(ctx, "ended").That(f.s.State()).Equals(session.Ended)
	assert.For(ctx, "input").ThatSlice(f.input.attached).Equals([]xr.Session{2, xr.NullHandle})
	assert.For(ctx, "null spaces").That(f.s.TrackingSpace(ovr.TrackingOriginEyeLevel)).Equals(xr.Space(xr.NullHandle))
	assert.For(ctx, "null view").That(f.s.ViewSpace()).Equals(xr.Space(xr.NullHandle))
	assert.For(ctx, "dropped formats").ThatSlice(f.s.SupportedFormats()).IsEmpty()
	assert.For(ctx, "live spaces").ThatInteger(rt.LiveSpaces()).Equals(0)
}

func TestStartSessionRollback(t *testing.T) {
	ctx := log.Testing(t)
	rt := runtime(17, xr.EPICViewConfigurationFov)
	f := newFixture(ctx, rt)
	assert.For(ctx, "InitSession").ThatError(f.s.InitSession(ctx, f.inst)).Succeeded()

	rt.Fail("xrEnumerateSwapchainFormats", xr.ErrorSessionLost)
	err := f.s.StartSession(ctx, gfx.D3D11Binding{})
	assert.For(ctx, "err").ThatError(err).HasCause(xr.ErrorSessionLost)
	assert.For(ctx, "result").That(ovr.ResultOf(err)).Equals(ovr.ErrDeviceUnavailable)
	assert.For(ctx, "handle").That(f.s.Handle()).Equals(xr.Session(xr.NullHandle))
	assert.For(ctx, "sessions").ThatInteger(rt.LiveSessions()).Equals(0)
	assert.For(ctx, "spaces destroyed").ThatInteger(rt.Count("xrDestroySpace")).Equals(5)
	assert.For(ctx, "input detached").ThatSlice(f.input.attached).Equals([]xr.Session{2, xr.NullHandle})

	rt.Fail("xrEnumerateSwapchainFormats", xr.Success)
	rt.Fail("xrCreateReferenceSpace", xr.ErrorLimitReached)
	err = f.s.StartSession(ctx, gfx.D3D11Binding{})
	assert.For(ctx, "space err").ThatError(err).HasCause(xr.ErrorLimitReached)
	assert.For(ctx, "space sessions").ThatInteger(rt.LiveSessions()).Equals(0)
}

func TestDestroySessionFailureKeepsInput(t *testing.T) {
	ctx := log.Testing(t)
	rt := runtime(17, xr.EPICViewConfigurationFov)
	f := newFixture(ctx, rt)
	assert.For(ctx, "InitSession").ThatError(f.s.InitSession(ctx, f.inst)).Succeeded()
	assert.For(ctx, "start").ThatError(f.s.StartSession(ctx, gfx.D3D11Binding{})).Succeeded()

	rt.Fail("xrDestroySession", xr.ErrorRuntimeFailure)
	err := f.s.DestroySession(ctx)
	assert.For(ctx, "err").ThatError(err).HasCause(xr.ErrorRuntimeFailure)
	assert.For(ctx, "still active").That(f.s.State()).Equals(session.Active)
	assert.For(ctx, "handle kept").That(f.s.Handle()).Equals(xr.Session(2))
	assert.For(ctx, "input reattached").ThatSlice(f.input.attached).Equals([]xr.Session{2, xr.NullHandle, 2})

	rt.Fail("xrDestroySession", xr.Success)
	assert.For(ctx, "destroy").ThatError(f.s.DestroySession(ctx)).Succeeded()
	assert.For(ctx, "input detached").ThatSlice(f.input.attached).Equals([]xr.Session{2, xr.NullHandle, 2, xr.NullHandle})
}

func TestWaitForSession(t *testing.T) {
	ctx := log.Testing(t)
	rt := runtime(16)
	f := newFixture(ctx, rt)
	assert.For(ctx, "InitSession").ThatError(f.s.InitSession(ctx, f.inst)).Succeeded()

	short, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	assert.For(ctx, "not started").ThatError(f.s.WaitForSession(short)).Equals(context.DeadlineExceeded)

	done := make(chan error)
	go func() { done <- f.s.WaitForSession(ctx) }()
	assert.For(ctx, "StartSession").ThatError(f.s.StartSession(ctx, gfx.D3D11Binding{})).Succeeded()
	select {
	case err := <-done:
		assert.For(ctx, "released").ThatError(err).Succeeded()
	case <-time.After(5 * time.Second):
		t.Fatal("waiter not released")
	}

	assert.For(ctx, "destroy").ThatError(f.s.DestroySession(ctx)).Succeeded()
	short, cancel = context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	assert.For(ctx, "destroyed").ThatError(f.s.WaitForSession(short)).Equals(context.DeadlineExceeded)
}

func TestSetTrackingOrigin(t *testing.T) {
	ctx := log.Testing(t)
	s := session.New(session.Config{})
	assert.For(ctx, "default").That(s.TrackingOrigin()).Equals(ovr.TrackingOriginEyeLevel)
	assert.For(ctx, "floor").ThatError(s.SetTrackingOrigin(ovr.TrackingOriginFloorLevel)).Succeeded()
	assert.For(ctx, "set").That(s.TrackingOrigin()).Equals(ovr.TrackingOriginFloorLevel)
	assert.For(ctx, "invalid").ThatError(s.SetTrackingOrigin(ovr.TrackingOriginCount)).Equals(ovr.ErrInvalidParameter)
}
