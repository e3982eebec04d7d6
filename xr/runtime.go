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

import (
	"context"
	"time"

	"github.com/ovrxr/ovrxr/core/math/f32"
)

// Runtime is the fixed catalog of calls the shim makes into the underlying
// runtime. Failures are returned as Result values (possibly wrapped).
//
// Calls that fill caller buffers follow the two-call idiom: passing an empty
// slice returns only the required count, passing a slice of that length fills
// it.
type Runtime interface {
	EnumerateInstanceExtensionProperties(ctx context.Context) ([]ExtensionProperties, error)
	CreateInstance(ctx context.Context, info InstanceCreateInfo) (Instance, error)
	DestroyInstance(ctx context.Context, instance Instance) error
	GetInstanceProperties(ctx context.Context, instance Instance) (InstanceProperties, error)

	GetSystem(ctx context.Context, instance Instance, formFactor FormFactor) (SystemID, error)
	GetSystemProperties(ctx context.Context, instance Instance, system SystemID) (SystemProperties, error)
	EnumerateViewConfigurationViews(ctx context.Context, instance Instance, system SystemID, ty ViewConfigurationType) ([]ViewConfigurationView, error)
	GetD3D11GraphicsRequirements(ctx context.Context, instance Instance, system SystemID) (GraphicsRequirements, error)

	CreateSession(ctx context.Context, instance Instance, info SessionCreateInfo) (Session, error)
	BeginSession(ctx context.Context, session Session, ty ViewConfigurationType) error
	EndSession(ctx context.Context, session Session) error
	DestroySession(ctx context.Context, session Session) error

	CreateReferenceSpace(ctx context.Context, session Session, info ReferenceSpaceCreateInfo) (Space, error)
	DestroySpace(ctx context.Context, space Space) error
	LocateSpace(ctx context.Context, space, base Space, at Time) (SpaceLocation, error)
	GetReferenceSpaceBoundsRect(ctx context.Context, session Session, ty ReferenceSpaceType) (Extent2Df, error)
	LocateViews(ctx context.Context, session Session, info ViewLocateInfo, views []View) (ViewState, uint32, error)

	EnumerateSwapchainFormats(ctx context.Context, session Session, formats []int64) (uint32, error)
	CreateSwapchain(ctx context.Context, session Session, info SwapchainCreateInfo) (Swapchain, error)
	DestroySwapchain(ctx context.Context, swapchain Swapchain) error
	AcquireSwapchainImage(ctx context.Context, swapchain Swapchain) (uint32, error)
	// WaitSwapchainImage returns false if the timeout expired before the
	// image became available.
	WaitSwapchainImage(ctx context.Context, swapchain Swapchain, timeout Duration) (bool, error)
	ReleaseSwapchainImage(ctx context.Context, swapchain Swapchain) error

	GetVisibilityMask(ctx context.Context, session Session, ty ViewConfigurationType, view uint32, mask VisibilityMaskType, vertices []f32.Vec2, indices []uint32) (vertexCount, indexCount uint32, err error)

	// PollEvent returns false if no event is available.
	PollEvent(ctx context.Context, instance Instance) (Event, bool, error)
	// ConvertTime converts a host monotonic time to runtime time.
	ConvertTime(ctx context.Context, instance Instance, t time.Duration) (Time, error)
}
