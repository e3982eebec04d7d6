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

// Package session manages the lifetime of the runtime session behind a legacy
// HMD session: system discovery, the field-of-view probe, reference spaces,
// visibility masks and swapchain format discovery.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ovrxr/ovrxr/core/app"
	"github.com/ovrxr/ovrxr/core/event/task"
	"github.com/ovrxr/ovrxr/core/log"
	"github.com/ovrxr/ovrxr/core/math/f32"
	"github.com/ovrxr/ovrxr/gfx"
	"github.com/ovrxr/ovrxr/ovr"
	"github.com/ovrxr/ovrxr/shim/caps"
	"github.com/ovrxr/ovrxr/shim/hack"
	"github.com/ovrxr/ovrxr/xr"
)

// State is the lifecycle state of a Session.
type State int

const (
	Uninitialized State = iota
	// Probing means the system is known and InitSession has completed, but
	// no application session has been started.
	Probing
	Active
	Ended
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Probing:
		return "probing"
	case Active:
		return "active"
	case Ended:
		return "ended"
	}
	return fmt.Sprintf("state<%d>", int(s))
}

// InputAttacher is the input subsystem. It is attached to every started
// session and detached, with a null handle, when the session is destroyed.
type InputAttacher interface {
	AttachSession(ctx context.Context, session xr.Session)
}

// FramePacer is the frame pacing subsystem.
type FramePacer interface {
	WaitToBeginFrame(ctx context.Context, frameIndex int64) error
	BeginFrame(ctx context.Context, frameIndex int64) error
}

// Config holds the collaborators and tunables of a Session.
type Config struct {
	// Backend creates the graphics device for the field-of-view probe.
	Backend gfx.Backend
	Input   InputAttacher
	Pacer   FramePacer
	// ReadyTimeout bounds the wait for the probe session to become ready.
	// Zero waits until the runtime reports readiness or the context is done.
	ReadyTimeout time.Duration
}

// ReadyPollInterval is the time slept between event polls while waiting for
// the probe session to become ready.
const ReadyPollInterval = 10 * time.Millisecond

var hostEpoch = time.Now()

// Session is one application's HMD session.
type Session struct {
	cfg   Config
	id    uuid.UUID
	inst  *caps.Instance
	rt    xr.Runtime
	input InputAttacher
	state State
	// probing suppresses the availability signal for the probe session.
	probing bool

	System     xr.SystemID
	Properties xr.SystemProperties
	Adapter    gfx.LUID

	views  [ovr.EyeCount]xr.ViewConfigurationView
	poses  [ovr.EyeCount]xr.View
	ppt    [ovr.EyeCount]f32.Vec2
	bounds xr.Extent2Df
	frames FrameRing
	origin ovr.TrackingOrigin

	handle    xr.Session
	viewSpace *Space
	formats   []int64

	trackingMu     sync.RWMutex
	originSpaces   [ovr.TrackingOriginCount]*Space
	trackingSpaces [ovr.TrackingOriginCount]*Space

	masksMu sync.Mutex
	masks   map[maskKey]Mask

	availMu sync.Mutex
	avail   task.Signal
	fire    task.Fire
}

// New returns an uninitialized session.
func New(cfg Config) *Session {
	s := &Session{cfg: cfg, id: uuid.New(), masks: map[maskKey]Mask{}}
	s.avail, s.fire = task.NewSignal()
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Handle returns the runtime session, or xr.NullHandle if none exists.
func (s *Session) Handle() xr.Session { return s.handle }

// Runtime returns the runtime the session was initialized against.
func (s *Session) Runtime() xr.Runtime { return s.rt }

// Instance returns the negotiated instance.
func (s *Session) Instance() *caps.Instance { return s.inst }

// Frames returns the frame timing ring, owned by the frame pacer.
func (s *Session) Frames() *FrameRing { return &s.frames }

// CurrentFrame returns the timing of the current frame.
func (s *Session) CurrentFrame() xr.FrameState { return s.frames.Current() }

// StageBounds returns the play area size recorded by the probe.
func (s *Session) StageBounds() xr.Extent2Df { return s.bounds }

func (s *Session) bind(ctx context.Context, name string) context.Context {
	return log.V{"session": s.id}.Bind(log.Enter(ctx, name))
}

// InitSession discovers the headset system and resolves its field of view.
// When the runtime cannot report the field of view without a running
// session, a temporary session is started on the runtime's graphics adapter
// to locate the views.
func (s *Session) InitSession(ctx context.Context, inst *caps.Instance) error {
	ctx = s.bind(ctx, "InitSession")
	s.inst, s.rt = inst, inst.Runtime
	s.frames.Reset()
	s.origin = ovr.TrackingOriginEyeLevel

	system, err := s.rt.GetSystem(ctx, inst.Handle, xr.FormFactorHeadMountedDisplay)
	if err != nil {
		return ovr.Check(err, "xrGetSystem")
	}
	s.System = system
	if s.Properties, err = s.rt.GetSystemProperties(ctx, inst.Handle, system); err != nil {
		return ovr.Check(err, "xrGetSystemProperties")
	}
	if !inst.ColorSpace {
		s.Properties.ColorSpace = 0
	}

	views, err := s.rt.EnumerateViewConfigurationViews(ctx, inst.Handle, system, xr.ViewConfigurationPrimaryStereo)
	if err != nil {
		return ovr.Check(err, "xrEnumerateViewConfigurationViews")
	}
	if len(views) != int(ovr.EyeCount) {
		panic(fmt.Errorf("Runtime reported %d stereo views", len(views)))
	}
	copy(s.views[:], views)

	reqs, err := s.rt.GetD3D11GraphicsRequirements(ctx, inst.Handle, system)
	if err != nil {
		return ovr.Check(err, "xrGetD3D11GraphicsRequirementsKHR")
	}
	s.Adapter = gfx.LUID(reqs.AdapterLUID)

	if s.reportsFov() {
		for eye := range s.poses {
			s.poses[eye] = xr.View{Pose: f32.IdentityPose, Fov: s.views[eye].RecommendedFov}
		}
	} else if err := s.probe(ctx); err != nil {
		return err
	}

	for eye := range s.ppt {
		l, r, u, d := s.views[eye].RecommendedFov.Tangents()
		s.ppt[eye] = f32.Vec2{
			float32(s.views[eye].RecommendedImageRectWidth) / (l + r),
			float32(s.views[eye].RecommendedImageRectHeight) / (u + d),
		}
	}

	s.input = s.cfg.Input
	s.state = Probing
	log.D(ctx, "System %d on adapter %v", system, s.Adapter)
	return nil
}

// reportsFov returns true if the runtime reports the recommended field of
// view without a running session.
func (s *Session) reportsFov() bool {
	return s.inst.MinorVersion() >= 17 &&
		s.inst.Supports(xr.EPICViewConfigurationFov) &&
		!s.inst.Hacks.Use(hack.ForceFOVFallback)
}

// StartSession creates the runtime session along with its reference spaces,
// visibility masks and supported formats. Everything created is released if
// any step fails. Waiters blocked in WaitForSession are released once the
// session is fully set up.
func (s *Session) StartSession(ctx context.Context, binding interface{}) (err error) {
	ctx = s.bind(ctx, "StartSession")
	if s.handle != xr.NullHandle {
		return ovr.ErrInvalidOperation
	}
	if s.rt == nil {
		return ovr.ErrNotInitialized
	}

	handle, err := s.rt.CreateSession(ctx, s.inst.Handle, xr.SessionCreateInfo{SystemID: s.System, GraphicsBinding: binding})
	if err != nil {
		return ovr.Check(err, "xrCreateSession")
	}

	var cleanup app.Cleanup
	defer func() {
		if err != nil {
			cleanup.Invoke(ctx)
		}
	}()
	cleanup = cleanup.Push(func(ctx context.Context) {
		if err := s.rt.DestroySession(ctx, handle); err != nil {
			log.W(ctx, "Failed to release session: %v", err)
		}
	})

	s.frames.Reset()
	if s.input != nil {
		s.input.AttachSession(ctx, handle)
		cleanup = cleanup.Push(func(ctx context.Context) { s.input.AttachSession(ctx, xr.NullHandle) })
	}

	create := func(ty xr.ReferenceSpaceType) (*Space, error) {
		sp, err := createSpace(ctx, s.rt, handle, ty, f32.IdentityPose)
		if err != nil {
			return nil, err
		}
		cleanup = cleanup.Push(func(ctx context.Context) { sp.Close(ctx) })
		return sp, nil
	}
	var view *Space
	var origins, tracking [ovr.TrackingOriginCount]*Space
	if view, err = create(xr.ReferenceSpaceView); err != nil {
		return err
	}
	for origin := range origins {
		ty := originSpaceType(ovr.TrackingOrigin(origin))
		if origins[origin], err = create(ty); err != nil {
			return err
		}
		if tracking[origin], err = create(ty); err != nil {
			return err
		}
	}

	formats, err := enumerateFormats(ctx, s.rt, handle)
	if err != nil {
		return err
	}

	s.handle = handle
	s.viewSpace = view
	s.trackingMu.Lock()
	s.originSpaces, s.trackingSpaces = origins, tracking
	s.trackingMu.Unlock()
	s.formats = formats

	if s.inst.VisibilityMask {
		for _, eye := range []ovr.Eye{ovr.EyeLeft, ovr.EyeRight} {
			for _, ty := range xr.VisibilityMaskTypes {
				if err := s.UpdateStencil(ctx, eye, ty); err != nil {
					log.W(ctx, "No %v visibility mask for %v: %v", ty, eye, err)
				}
			}
		}
	}

	s.state = Active
	if !s.probing {
		s.availMu.Lock()
		s.fire()
		s.availMu.Unlock()
	}
	log.D(ctx, "Session %d started with %d formats", handle, len(formats))
	return nil
}

func enumerateFormats(ctx context.Context, rt xr.Runtime, session xr.Session) ([]int64, error) {
	count, err := rt.EnumerateSwapchainFormats(ctx, session, nil)
	if err != nil {
		return nil, ovr.Check(err, "xrEnumerateSwapchainFormats")
	}
	formats := make([]int64, count)
	if count == 0 {
		return formats, nil
	}
	count, err = rt.EnumerateSwapchainFormats(ctx, session, formats)
	if err != nil {
		return nil, ovr.Check(err, "xrEnumerateSwapchainFormats")
	}
	return formats[:count], nil
}

// BeginSession begins the runtime session and the first frame. The first
// frame is started immediately for applications that submit frames without
// pacing them.
func (s *Session) BeginSession(ctx context.Context) error {
	ctx = s.bind(ctx, "BeginSession")
	if s.handle == xr.NullHandle {
		return ovr.ErrInvalidSession
	}
	if err := s.rt.BeginSession(ctx, s.handle, xr.ViewConfigurationPrimaryStereo); err != nil {
		return ovr.Check(err, "xrBeginSession")
	}
	index := s.frames.Current().FrameIndex
	if s.cfg.Pacer != nil {
		if err := s.cfg.Pacer.WaitToBeginFrame(ctx, index); err != nil {
			return err
		}
	}
	if err := s.RecenterSpace(ctx, ovr.TrackingOriginEyeLevel, s.viewSpace.Handle(), f32.IdentityPose); err != nil {
		log.W(ctx, "Initial recenter failed: %v", err)
	}
	if s.cfg.Pacer != nil {
		if err := s.cfg.Pacer.BeginFrame(ctx, index); err != nil {
			return err
		}
	}
	return nil
}

// EndSession ends the runtime session.
func (s *Session) EndSession(ctx context.Context) error {
	ctx = s.bind(ctx, "EndSession")
	if s.handle == xr.NullHandle {
		return ovr.ErrInvalidSession
	}
	return ovr.Check(s.rt.EndSession(ctx, s.handle), "xrEndSession")
}

// DestroySession destroys the runtime session. Its reference spaces,
// visibility masks and formats go with it.
func (s *Session) DestroySession(ctx context.Context) error {
	ctx = s.bind(ctx, "DestroySession")
	if s.handle == xr.NullHandle {
		return ovr.ErrInvalidOperation
	}
	if s.input != nil {
		s.input.AttachSession(ctx, xr.NullHandle)
	}
	if err := s.rt.DestroySession(ctx, s.handle); err != nil {
		// The session is still live.
		if s.input != nil {
			s.input.AttachSession(ctx, s.handle)
		}
		return ovr.Check(err, "xrDestroySession")
	}
	s.handle = xr.NullHandle
	s.viewSpace = nil
	s.trackingMu.Lock()
	s.originSpaces = [ovr.TrackingOriginCount]*Space{}
	s.trackingSpaces = [ovr.TrackingOriginCount]*Space{}
	s.trackingMu.Unlock()
	s.masksMu.Lock()
	s.masks = map[maskKey]Mask{}
	s.masksMu.Unlock()
	s.formats = nil
	s.state = Ended

	s.availMu.Lock()
	if s.avail.Fired() {
		s.avail, s.fire = task.NewSignal()
	}
	s.availMu.Unlock()
	log.D(ctx, "Session destroyed")
	return nil
}

// WaitForSession blocks until a session has been started or ctx is done.
func (s *Session) WaitForSession(ctx context.Context) error {
	s.availMu.Lock()
	avail := s.avail
	s.availMu.Unlock()
	if !avail.Wait(ctx) {
		return ctx.Err()
	}
	return nil
}

// LocateViews locates both eyes in view space at the current time.
func (s *Session) LocateViews(ctx context.Context) ([ovr.EyeCount]xr.View, xr.ViewState, error) {
	var out [ovr.EyeCount]xr.View
	if s.handle == xr.NullHandle {
		return out, xr.ViewState{}, ovr.ErrInvalidSession
	}
	at, err := s.rt.ConvertTime(ctx, s.inst.Handle, time.Since(hostEpoch))
	if err != nil {
		return out, xr.ViewState{}, ovr.Check(err, "xrConvertWin32PerformanceCounterToTimeKHR")
	}
	views := make([]xr.View, ovr.EyeCount)
	state, count, err := s.rt.LocateViews(ctx, s.handle, xr.ViewLocateInfo{
		ViewConfigurationType: xr.ViewConfigurationPrimaryStereo,
		DisplayTime:           at,
		Space:                 s.viewSpace.Handle(),
	}, views)
	if err != nil {
		return out, xr.ViewState{}, ovr.Check(err, "xrLocateViews")
	}
	if count != uint32(ovr.EyeCount) {
		panic(fmt.Errorf("Runtime located %d stereo views", count))
	}
	copy(out[:], views)
	return out, state, nil
}

// SupportsFormat returns true if the session supports the swapchain format.
func (s *Session) SupportsFormat(format int64) bool {
	for _, f := range s.formats {
		if f == format {
			return true
		}
	}
	return false
}

// SupportedFormats returns the swapchain formats the session supports, in
// the runtime's order of preference.
func (s *Session) SupportedFormats() []int64 {
	return append([]int64(nil), s.formats...)
}

// RenderDesc describes how to render one eye.
type RenderDesc struct {
	Eye          ovr.Eye
	Fov          ovr.FovPort
	HmdToEyePose f32.Pose
	// PixelsPerTanAngle is the recommended resolution per unit of tangent.
	PixelsPerTanAngle f32.Vec2
	Resolution        [2]uint32
}

// RenderDesc returns the render description of eye.
func (s *Session) RenderDesc(eye ovr.Eye) RenderDesc {
	l, r, u, d := s.views[eye].RecommendedFov.Tangents()
	return RenderDesc{
		Eye:               eye,
		Fov:               ovr.FovPort{UpTan: u, DownTan: d, LeftTan: l, RightTan: r},
		HmdToEyePose:      s.poses[eye].Pose,
		PixelsPerTanAngle: s.ppt[eye],
		Resolution:        [2]uint32{s.views[eye].RecommendedImageRectWidth, s.views[eye].RecommendedImageRectHeight},
	}
}
