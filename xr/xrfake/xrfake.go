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

// Package xrfake provides a scriptable in-memory xr.Runtime.
//
// Every call is recorded by name, and any call can be made to fail with a
// chosen result code. The fake models just enough runtime state (live
// handles, swapchain images, an event queue) for the shim to be exercised
// end to end.
package xrfake

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ovrxr/ovrxr/core/math/f32"
	"github.com/ovrxr/ovrxr/xr"
)

// Swapchain is the fake state of one swapchain.
type Swapchain struct {
	Info     xr.SwapchainCreateInfo
	Images   uint32
	Index    uint32
	Acquires int
	Releases int
	// Waits holds the timeout of every WaitSwapchainImage call.
	Waits     []xr.Duration
	acquired  bool
	destroyed bool
}

// Space is the fake state of one reference space.
type Space struct {
	Session xr.Session
	Info    xr.ReferenceSpaceCreateInfo
}

// Runtime is the fake. Exported fields may be set freely before use.
type Runtime struct {
	Extensions     []xr.ExtensionProperties
	RuntimeName    string
	RuntimeVersion xr.Version
	LUID           [8]byte
	ViewConfig     [2]xr.ViewConfigurationView
	// ViewCount overrides the number of views reported. Zero means two.
	ViewCount uint32
	ViewPoses [2]f32.Pose
	ViewFovs  [2]xr.Fovf
	ViewFlags xr.LocationFlags
	Bounds    xr.Extent2Df
	Formats   []int64
	// MaskCounts is the vertex and index count reported per mask type.
	MaskCounts map[xr.VisibilityMaskType]uint32
	// Location is returned by LocateSpace.
	Location xr.SpaceLocation
	// ReadyOnCreate queues IDLE and READY state events for every new session.
	ReadyOnCreate bool
	// WaitTimesOut makes WaitSwapchainImage report a timeout.
	WaitTimesOut bool
	// ImageCount is the number of images per swapchain. Zero means three.
	ImageCount uint32

	mu         sync.Mutex
	calls      []string
	failures   map[string]xr.Result
	events     []xr.Event
	next       uint64
	instances  map[xr.Instance]xr.InstanceCreateInfo
	sessions   map[xr.Session]bool
	spaces     map[xr.Space]*Space
	swapchains map[xr.Swapchain]*Swapchain
	begun      map[xr.Session]bool
}

// New returns a fake reporting a conformant runtime with the given name and
// version that supports every extension in exts.
func New(name string, version xr.Version, exts ...string) *Runtime {
	r := &Runtime{
		RuntimeName:    name,
		RuntimeVersion: version,
		LUID:           [8]byte{0x10, 0x20},
		ViewFlags:      xr.OrientationValid | xr.PositionValid | xr.OrientationTracked | xr.PositionTracked,
		Bounds:         xr.Extent2Df{Width: 3, Height: 2},
		MaskCounts:     map[xr.VisibilityMaskType]uint32{},
		Location: xr.SpaceLocation{
			Flags: xr.OrientationValid | xr.PositionValid,
			Pose:  f32.IdentityPose,
		},
	}
	for _, e := range exts {
		r.Extensions = append(r.Extensions, xr.ExtensionProperties{Name: e, Version: 1})
	}
	fov := xr.Fovf{AngleLeft: -0.8, AngleRight: 0.7, AngleUp: 0.75, AngleDown: -0.85}
	for i := range r.ViewConfig {
		r.ViewConfig[i] = xr.ViewConfigurationView{
			RecommendedImageRectWidth:       1440,
			MaxImageRectWidth:               4096,
			RecommendedImageRectHeight:      1600,
			MaxImageRectHeight:              4096,
			RecommendedSwapchainSampleCount: 1,
			MaxSwapchainSampleCount:         4,
			RecommendedFov:                  fov,
			MaxMutableFov:                   fov,
		}
		r.ViewFovs[i] = fov
		r.ViewPoses[i] = f32.IdentityPose
	}
	r.ViewPoses[0].Position = f32.Vec3{-0.032, 0, 0}
	r.ViewPoses[1].Position = f32.Vec3{0.032, 0, 0}
	return r
}

// Fail makes every subsequent call named call fail with res. Passing
// xr.Success clears the failure.
func (r *Runtime) Fail(call string, res xr.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failures == nil {
		r.failures = map[string]xr.Result{}
	}
	if res == xr.Success {
		delete(r.failures, call)
		return
	}
	r.failures[call] = res
}

// QueueEvent appends an event to the event queue.
func (r *Runtime) QueueEvent(e xr.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Calls returns the names of the calls made so far, in order.
func (r *Runtime) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Count returns how many times call was made.
func (r *Runtime) Count(call string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c == call {
			n++
		}
	}
	return n
}

// LiveSessions returns the number of sessions not yet destroyed.
func (r *Runtime) LiveSessions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// LiveSpaces returns the number of spaces not yet destroyed. Spaces die with
// their session.
func (r *Runtime) LiveSpaces() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.spaces)
}

// SpaceInfo returns the state of a live space, or nil.
func (r *Runtime) SpaceInfo(s xr.Space) *Space {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.spaces[s]
}

// SwapchainInfo returns the state of a swapchain, or nil if it was never
// created.
func (r *Runtime) SwapchainInfo(s xr.Swapchain) *Swapchain {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.swapchains[s]
}

// call records a call and returns its injected failure, if any.
// r.mu must be held.
func (r *Runtime) call(name string) error {
	r.calls = append(r.calls, name)
	if res, ok := r.failures[name]; ok {
		return res
	}
	return nil
}

func (r *Runtime) handle() uint64 {
	r.next++
	return r.next
}

func (r *Runtime) init() {
	if r.instances == nil {
		r.instances = map[xr.Instance]xr.InstanceCreateInfo{}
		r.sessions = map[xr.Session]bool{}
		r.spaces = map[xr.Space]*Space{}
		r.swapchains = map[xr.Swapchain]*Swapchain{}
		r.begun = map[xr.Session]bool{}
	}
}

func (r *Runtime) supports(ext string) bool {
	for _, e := range r.Extensions {
		if e.Name == ext {
			return true
		}
	}
	return false
}

func (r *Runtime) EnumerateInstanceExtensionProperties(ctx context.Context) ([]xr.ExtensionProperties, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.call("xrEnumerateInstanceExtensionProperties"); err != nil {
		return nil, err
	}
	return append([]xr.ExtensionProperties(nil), r.Extensions...), nil
}

func (r *Runtime) CreateInstance(ctx context.Context, info xr.InstanceCreateInfo) (xr.Instance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
	if err := r.call("xrCreateInstance"); err != nil {
		return xr.NullHandle, err
	}
	for _, e := range info.EnabledExtensions {
		if !r.supports(e) {
			return xr.NullHandle, xr.ErrorExtensionNotPresent
		}
	}
	i := xr.Instance(r.handle())
	r.instances[i] = info
	return i, nil
}

// EnabledExtensions returns the extensions the instance was created with.
func (r *Runtime) EnabledExtensions(i xr.Instance) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.instances[i].EnabledExtensions
}

func (r *Runtime) DestroyInstance(ctx context.Context, instance xr.Instance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
	if err := r.call("xrDestroyInstance"); err != nil {
		return err
	}
	if _, ok := r.instances[instance]; !ok {
		return xr.ErrorHandleInvalid
	}
	delete(r.instances, instance)
	return nil
}

func (r *Runtime) GetInstanceProperties(ctx context.Context, instance xr.Instance) (xr.InstanceProperties, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.call("xrGetInstanceProperties"); err != nil {
		return xr.InstanceProperties{}, err
	}
	return xr.InstanceProperties{RuntimeName: r.RuntimeName, RuntimeVersion: r.RuntimeVersion}, nil
}

func (r *Runtime) GetSystem(ctx context.Context, instance xr.Instance, formFactor xr.FormFactor) (xr.SystemID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.call("xrGetSystem"); err != nil {
		return 0, err
	}
	if formFactor != xr.FormFactorHeadMountedDisplay {
		return 0, xr.ErrorFormFactorUnavailable
	}
	return 1, nil
}

func (r *Runtime) GetSystemProperties(ctx context.Context, instance xr.Instance, system xr.SystemID) (xr.SystemProperties, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.call("xrGetSystemProperties"); err != nil {
		return xr.SystemProperties{}, err
	}
	return xr.SystemProperties{
		SystemID:          system,
		SystemName:        r.RuntimeName + " HMD",
		MaxLayerCount:     16,
		OrientationTracks: true,
		PositionTracks:    true,
	}, nil
}

func (r *Runtime) EnumerateViewConfigurationViews(ctx context.Context, instance xr.Instance, system xr.SystemID, ty xr.ViewConfigurationType) ([]xr.ViewConfigurationView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.call("xrEnumerateViewConfigurationViews"); err != nil {
		return nil, err
	}
	if ty != xr.ViewConfigurationPrimaryStereo {
		return nil, xr.ErrorViewConfigurationTypeUnsupported
	}
	out := make([]xr.ViewConfigurationView, r.viewCount())
	for i := range out {
		out[i] = r.ViewConfig[i%2]
	}
	return out, nil
}

func (r *Runtime) viewCount() uint32 {
	if r.ViewCount == 0 {
		return 2
	}
	return r.ViewCount
}

func (r *Runtime) GetD3D11GraphicsRequirements(ctx context.Context, instance xr.Instance, system xr.SystemID) (xr.GraphicsRequirements, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.call("xrGetD3D11GraphicsRequirementsKHR"); err != nil {
		return xr.GraphicsRequirements{}, err
	}
	return xr.GraphicsRequirements{AdapterLUID: r.LUID, MinFeatureLevel: 0xb000}, nil
}

func (r *Runtime) CreateSession(ctx context.Context, instance xr.Instance, info xr.SessionCreateInfo) (xr.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
	if err := r.call("xrCreateSession"); err != nil {
		return xr.NullHandle, err
	}
	if info.GraphicsBinding == nil {
		return xr.NullHandle, xr.ErrorGraphicsDeviceInvalid
	}
	s := xr.Session(r.handle())
	r.sessions[s] = true
	if r.ReadyOnCreate {
		r.events = append(r.events,
			xr.SessionStateChanged{Session: s, State: xr.SessionStateIdle},
			xr.SessionStateChanged{Session: s, State: xr.SessionStateReady})
	}
	return s, nil
}

func (r *Runtime) BeginSession(ctx context.Context, session xr.Session, ty xr.ViewConfigurationType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.call("xrBeginSession"); err != nil {
		return err
	}
	if !r.sessions[session] {
		return xr.ErrorHandleInvalid
	}
	if r.begun[session] {
		return xr.ErrorSessionRunning
	}
	r.begun[session] = true
	return nil
}

func (r *Runtime) EndSession(ctx context.Context, session xr.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.call("xrEndSession"); err != nil {
		return err
	}
	if !r.begun[session] {
		return xr.ErrorSessionNotRunning
	}
	delete(r.begun, session)
	return nil
}

func (r *Runtime) DestroySession(ctx context.Context, session xr.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
	if err := r.call("xrDestroySession"); err != nil {
		return err
	}
	if !r.sessions[session] {
		return xr.ErrorHandleInvalid
	}
	delete(r.sessions, session)
	delete(r.begun, session)
	for h, sp := range r.spaces {
		if sp.Session == session {
			delete(r.spaces, h)
		}
	}
	return nil
}

func (r *Runtime) CreateReferenceSpace(ctx context.Context, session xr.Session, info xr.ReferenceSpaceCreateInfo) (xr.Space, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
	if err := r.call("xrCreateReferenceSpace"); err != nil {
		return xr.NullHandle, err
	}
	if !r.sessions[session] {
		return xr.NullHandle, xr.ErrorHandleInvalid
	}
	s := xr.Space(r.handle())
	r.spaces[s] = &Space{Session: session, Info: info}
	return s, nil
}

func (r *Runtime) DestroySpace(ctx context.Context, space xr.Space) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
	if err := r.call("xrDestroySpace"); err != nil {
		return err
	}
	if _, ok := r.spaces[space]; !ok {
		return xr.ErrorHandleInvalid
	}
	delete(r.spaces, space)
	return nil
}

func (r *Runtime) LocateSpace(ctx context.Context, space, base xr.Space, at xr.Time) (xr.SpaceLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
	if err := r.call("xrLocateSpace"); err != nil {
		return xr.SpaceLocation{}, err
	}
	if r.spaces[space] == nil || r.spaces[base] == nil {
		return xr.SpaceLocation{}, xr.ErrorHandleInvalid
	}
	return r.Location, nil
}

func (r *Runtime) GetReferenceSpaceBoundsRect(ctx context.Context, session xr.Session, ty xr.ReferenceSpaceType) (xr.Extent2Df, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.call("xrGetReferenceSpaceBoundsRect"); err != nil {
		return xr.Extent2Df{}, err
	}
	return r.Bounds, nil
}

func (r *Runtime) LocateViews(ctx context.Context, session xr.Session, info xr.ViewLocateInfo, views []xr.View) (xr.ViewState, uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
	if err := r.call("xrLocateViews"); err != nil {
		return xr.ViewState{}, 0, err
	}
	if !r.sessions[session] {
		return xr.ViewState{}, 0, xr.ErrorHandleInvalid
	}
	n := r.viewCount()
	if uint32(len(views)) < n {
		return xr.ViewState{}, n, xr.ErrorSizeInsufficient
	}
	for i := uint32(0); i < n; i++ {
		views[i] = xr.View{Pose: r.ViewPoses[i%2], Fov: r.ViewFovs[i%2]}
	}
	return xr.ViewState{Flags: r.ViewFlags}, n, nil
}

func (r *Runtime) EnumerateSwapchainFormats(ctx context.Context, session xr.Session, formats []int64) (uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.call("xrEnumerateSwapchainFormats"); err != nil {
		return 0, err
	}
	n := uint32(len(r.Formats))
	if len(formats) == 0 {
		return n, nil
	}
	if uint32(len(formats)) < n {
		return n, xr.ErrorSizeInsufficient
	}
	copy(formats, r.Formats)
	return n, nil
}

func (r *Runtime) CreateSwapchain(ctx context.Context, session xr.Session, info xr.SwapchainCreateInfo) (xr.Swapchain, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
	if err := r.call("xrCreateSwapchain"); err != nil {
		return xr.NullHandle, err
	}
	if !r.sessions[session] {
		return xr.NullHandle, xr.ErrorHandleInvalid
	}
	images := r.ImageCount
	if images == 0 {
		images = 3
	}
	if info.CreateFlags&xr.SwapchainCreateStaticImage != 0 {
		images = 1
	}
	s := xr.Swapchain(r.handle())
	r.swapchains[s] = &Swapchain{Info: info, Images: images}
	return s, nil
}

func (r *Runtime) swapchain(s xr.Swapchain) (*Swapchain, error) {
	sc, ok := r.swapchains[s]
	if !ok || sc.destroyed {
		return nil, xr.ErrorHandleInvalid
	}
	return sc, nil
}

func (r *Runtime) DestroySwapchain(ctx context.Context, swapchain xr.Swapchain) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
	if err := r.call("xrDestroySwapchain"); err != nil {
		return err
	}
	sc, err := r.swapchain(swapchain)
	if err != nil {
		return err
	}
	sc.destroyed = true
	return nil
}

func (r *Runtime) AcquireSwapchainImage(ctx context.Context, swapchain xr.Swapchain) (uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
	if err := r.call("xrAcquireSwapchainImage"); err != nil {
		return 0, err
	}
	sc, err := r.swapchain(swapchain)
	if err != nil {
		return 0, err
	}
	if sc.acquired {
		return 0, xr.ErrorCallOrderInvalid
	}
	if sc.Acquires > 0 {
		sc.Index = (sc.Index + 1) % sc.Images
	}
	sc.Acquires++
	sc.acquired = true
	return sc.Index, nil
}

func (r *Runtime) WaitSwapchainImage(ctx context.Context, swapchain xr.Swapchain, timeout xr.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
	if err := r.call("xrWaitSwapchainImage"); err != nil {
		return false, err
	}
	sc, err := r.swapchain(swapchain)
	if err != nil {
		return false, err
	}
	sc.Waits = append(sc.Waits, timeout)
	return !r.WaitTimesOut, nil
}

func (r *Runtime) ReleaseSwapchainImage(ctx context.Context, swapchain xr.Swapchain) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
	if err := r.call("xrReleaseSwapchainImage"); err != nil {
		return err
	}
	sc, err := r.swapchain(swapchain)
	if err != nil {
		return err
	}
	if !sc.acquired {
		return xr.ErrorCallOrderInvalid
	}
	sc.acquired = false
	sc.Releases++
	return nil
}

func (r *Runtime) GetVisibilityMask(ctx context.Context, session xr.Session, ty xr.ViewConfigurationType, view uint32, mask xr.VisibilityMaskType, vertices []f32.Vec2, indices []uint32) (uint32, uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
	if err := r.call("xrGetVisibilityMaskKHR"); err != nil {
		return 0, 0, err
	}
	if !r.supports(xr.KHRVisibilityMask) {
		return 0, 0, xr.ErrorFunctionUnsupported
	}
	if !r.sessions[session] {
		return 0, 0, xr.ErrorHandleInvalid
	}
	n := r.MaskCounts[mask]
	if len(vertices) == 0 && len(indices) == 0 {
		return n, n, nil
	}
	if uint32(len(vertices)) < n || uint32(len(indices)) < n {
		return n, n, xr.ErrorSizeInsufficient
	}
	for i := uint32(0); i < n; i++ {
		a := 2 * math.Pi * float32(i) / float32(n)
		s, c := f32.Sincos(a)
		vertices[i] = f32.Vec2{c + float32(view), s}
		indices[i] = i
	}
	return n, n, nil
}

func (r *Runtime) PollEvent(ctx context.Context, instance xr.Instance) (xr.Event, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.call("xrPollEvent"); err != nil {
		return nil, false, err
	}
	if len(r.events) == 0 {
		return nil, false, nil
	}
	e := r.events[0]
	r.events = r.events[1:]
	return e, true, nil
}

func (r *Runtime) ConvertTime(ctx context.Context, instance xr.Instance, t time.Duration) (xr.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.call("xrConvertWin32PerformanceCounterToTimeKHR"); err != nil {
		return 0, err
	}
	return xr.Time(t.Nanoseconds()), nil
}

func (r *Runtime) String() string {
	return fmt.Sprintf("%s %v", r.RuntimeName, r.RuntimeVersion)
}

var _ xr.Runtime = (*Runtime)(nil)
