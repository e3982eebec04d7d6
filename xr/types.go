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

package xr

import "github.com/ovrxr/ovrxr/core/math/f32"

// FormFactor is the kind of device a system is requested for.
type FormFactor int32

// FormFactorHeadMountedDisplay requests a headset system.
const FormFactorHeadMountedDisplay FormFactor = 1

// ViewConfigurationType enumerates view layouts.
type ViewConfigurationType int32

// ViewConfigurationPrimaryStereo is the two-eye layout.
const ViewConfigurationPrimaryStereo ViewConfigurationType = 2

// ReferenceSpaceType enumerates the well-known reference spaces.
type ReferenceSpaceType int32

const (
	ReferenceSpaceView  ReferenceSpaceType = 1
	ReferenceSpaceLocal ReferenceSpaceType = 2
	ReferenceSpaceStage ReferenceSpaceType = 3
)

func (t ReferenceSpaceType) String() string {
	switch t {
	case ReferenceSpaceView:
		return "VIEW"
	case ReferenceSpaceLocal:
		return "LOCAL"
	case ReferenceSpaceStage:
		return "STAGE"
	}
	return "UNKNOWN"
}

// SessionState is the lifecycle state the runtime reports for a session.
type SessionState int32

const (
	SessionStateUnknown SessionState = iota
	SessionStateIdle
	SessionStateReady
	SessionStateSynchronized
	SessionStateVisible
	SessionStateFocused
	SessionStateStopping
	SessionStateLossPending
	SessionStateExiting
)

// VisibilityMaskType selects the geometry returned by GetVisibilityMask.
type VisibilityMaskType int32

const (
	VisibilityMaskHiddenTriangleMesh  VisibilityMaskType = 1
	VisibilityMaskVisibleTriangleMesh VisibilityMaskType = 2
	VisibilityMaskLineLoop            VisibilityMaskType = 3
)

// VisibilityMaskTypes lists every mask type in declaration order.
var VisibilityMaskTypes = []VisibilityMaskType{
	VisibilityMaskHiddenTriangleMesh,
	VisibilityMaskVisibleTriangleMesh,
	VisibilityMaskLineLoop,
}

func (t VisibilityMaskType) String() string {
	switch t {
	case VisibilityMaskHiddenTriangleMesh:
		return "hidden"
	case VisibilityMaskVisibleTriangleMesh:
		return "visible"
	case VisibilityMaskLineLoop:
		return "line-loop"
	}
	return "unknown"
}

// LocationFlags reports which parts of a located pose or view are valid.
// It is used both for space locations and view states.
type LocationFlags uint64

const (
	OrientationValid   LocationFlags = 1 << 0
	PositionValid      LocationFlags = 1 << 1
	OrientationTracked LocationFlags = 1 << 2
	PositionTracked    LocationFlags = 1 << 3
)

// SwapchainCreateFlags control swapchain behaviour.
type SwapchainCreateFlags uint64

const (
	SwapchainCreateProtectedContent SwapchainCreateFlags = 1 << 0
	SwapchainCreateStaticImage      SwapchainCreateFlags = 1 << 1
)

// SwapchainUsageFlags declare how swapchain images will be used.
type SwapchainUsageFlags uint64

const (
	SwapchainUsageColorAttachment        SwapchainUsageFlags = 1 << 0
	SwapchainUsageDepthStencilAttachment SwapchainUsageFlags = 1 << 1
	SwapchainUsageUnorderedAccess        SwapchainUsageFlags = 1 << 2
	SwapchainUsageTransferSrc            SwapchainUsageFlags = 1 << 3
	SwapchainUsageTransferDst            SwapchainUsageFlags = 1 << 4
	SwapchainUsageSampled                SwapchainUsageFlags = 1 << 5
	SwapchainUsageMutableFormat          SwapchainUsageFlags = 1 << 6
)

// Fovf is a field of view as four signed angles in radians.
// Left and Down are normally negative.
type Fovf struct {
	AngleLeft, AngleRight, AngleUp, AngleDown float32
}

// Tangents returns the positive tangents of the half-angles, in the order
// left, right, up, down.
func (f Fovf) Tangents() (left, right, up, down float32) {
	return f32.Tan(-f.AngleLeft), f32.Tan(f.AngleRight), f32.Tan(f.AngleUp), f32.Tan(-f.AngleDown)
}

// View is the pose and field of view of a single eye.
type View struct {
	Pose f32.Pose
	Fov  Fovf
}

// ViewConfigurationView describes the recommended render target for one view.
// RecommendedFov and MaxMutableFov are only filled in when the view
// configuration FOV extension is enabled.
type ViewConfigurationView struct {
	RecommendedImageRectWidth       uint32
	MaxImageRectWidth               uint32
	RecommendedImageRectHeight      uint32
	MaxImageRectHeight              uint32
	RecommendedSwapchainSampleCount uint32
	MaxSwapchainSampleCount         uint32
	RecommendedFov                  Fovf
	MaxMutableFov                   Fovf
}

// ExtensionProperties names an extension the runtime supports.
type ExtensionProperties struct {
	Name    string
	Version uint32
}

// InstanceCreateInfo is the request to create an instance.
type InstanceCreateInfo struct {
	ApplicationName    string
	ApplicationVersion uint32
	EngineName         string
	APIVersion         Version
	EnabledExtensions  []string
}

// InstanceProperties identifies the runtime behind an instance.
type InstanceProperties struct {
	RuntimeName    string
	RuntimeVersion Version
}

// ColorSpace is a display color space.
type ColorSpace int32

// SystemProperties describes a system. ColorSpace is only filled in when the
// color space extension is enabled.
type SystemProperties struct {
	SystemID          SystemID
	VendorID          uint32
	SystemName        string
	MaxLayerCount     uint32
	OrientationTracks bool
	PositionTracks    bool
	ColorSpace        ColorSpace
}

// GraphicsRequirements is what the runtime needs from the graphics device.
type GraphicsRequirements struct {
	AdapterLUID     [8]byte
	MinFeatureLevel uint32
}

// SessionCreateInfo is the request to create a session. GraphicsBinding
// holds the graphics-API device the session renders with.
type SessionCreateInfo struct {
	SystemID        SystemID
	GraphicsBinding interface{}
}

// ReferenceSpaceCreateInfo is the request to create a reference space.
type ReferenceSpaceCreateInfo struct {
	Type                 ReferenceSpaceType
	PoseInReferenceSpace f32.Pose
}

// SpaceLocation is the result of locating one space in another.
type SpaceLocation struct {
	Flags LocationFlags
	Pose  f32.Pose
}

// ViewLocateInfo is the request to locate the views of a configuration.
type ViewLocateInfo struct {
	ViewConfigurationType ViewConfigurationType
	DisplayTime           Time
	Space                 Space
}

// ViewState reports the validity of the located views.
type ViewState struct {
	Flags LocationFlags
}

// Extent2Df is a width and depth in meters.
type Extent2Df struct {
	Width, Height float32
}

// SwapchainCreateInfo is the request to create a swapchain.
type SwapchainCreateInfo struct {
	CreateFlags SwapchainCreateFlags
	UsageFlags  SwapchainUsageFlags
	Format      int64
	SampleCount uint32
	Width       uint32
	Height      uint32
	FaceCount   uint32
	ArraySize   uint32
	MipCount    uint32
}

// FrameState is the timing of one frame as predicted by the runtime.
type FrameState struct {
	FrameIndex             int64
	PredictedDisplayTime   Time
	PredictedDisplayPeriod Duration
	ShouldRender           bool
}
