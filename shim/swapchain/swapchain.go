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

// Package swapchain maps legacy texture swap chains onto runtime swapchains.
package swapchain

import (
	"context"
	"sync"

	"github.com/ovrxr/ovrxr/core/log"
	"github.com/ovrxr/ovrxr/gfx"
	"github.com/ovrxr/ovrxr/ovr"
	"github.com/ovrxr/ovrxr/xr"
)

// Host is the session a swapchain belongs to.
type Host interface {
	FormatSupport
	Runtime() xr.Runtime
	Handle() xr.Session
	CurrentFrame() xr.FrameState
}

// Swapchain is a runtime swapchain with one image acquired at a time.
type Swapchain struct {
	Desc   ovr.TextureSwapChainDesc
	Format gfx.Format

	rt     xr.Runtime
	handle xr.Swapchain
	index  uint32
	close  sync.Once
}

// CreateInfo returns the runtime description of a swapchain for desc.
// Every swapchain can be sampled and copied to and from.
func CreateInfo(desc ovr.TextureSwapChainDesc, format gfx.Format) xr.SwapchainCreateInfo {
	info := xr.SwapchainCreateInfo{
		UsageFlags:  xr.SwapchainUsageSampled | xr.SwapchainUsageTransferSrc | xr.SwapchainUsageTransferDst,
		Format:      int64(format),
		SampleCount: uint32(desc.SampleCount),
		Width:       uint32(desc.Width),
		Height:      uint32(desc.Height),
		FaceCount:   1,
		ArraySize:   uint32(desc.ArraySize),
		MipCount:    uint32(desc.MipLevels),
	}
	if desc.MiscFlags&ovr.TextureMiscProtectedContent != 0 {
		info.CreateFlags |= xr.SwapchainCreateProtectedContent
	}
	if desc.StaticImage {
		info.CreateFlags |= xr.SwapchainCreateStaticImage
	}
	if desc.BindFlags&ovr.TextureBindRenderTarget != 0 {
		info.UsageFlags |= xr.SwapchainUsageColorAttachment
	}
	if desc.BindFlags&ovr.TextureBindUnorderedAccess != 0 {
		info.UsageFlags |= xr.SwapchainUsageUnorderedAccess
	}
	if desc.BindFlags&ovr.TextureBindDepthStencil != 0 {
		info.UsageFlags |= xr.SwapchainUsageDepthStencilAttachment
	}
	if desc.MiscFlags&ovr.TextureMiscTypeless != 0 {
		info.UsageFlags |= xr.SwapchainUsageMutableFormat
	}
	if desc.Type == ovr.TextureCube {
		info.FaceCount = uint32(desc.ArraySize)
		info.ArraySize = 1
	}
	return info
}

// Create creates a swapchain for desc in the closest format the host
// supports.
func Create(ctx context.Context, host Host, desc ovr.TextureSwapChainDesc) (*Swapchain, error) {
	return New(ctx, host, desc, NegotiateFormat(host, TextureFormatToDXGI(desc.Format)))
}

// New creates a swapchain for desc in format and acquires its first image.
// Static swapchains do not wait for the image.
func New(ctx context.Context, host Host, desc ovr.TextureSwapChainDesc, format gfx.Format) (*Swapchain, error) {
	ctx = log.Enter(ctx, "swapchain.New")
	session := host.Handle()
	if session == xr.NullHandle {
		return nil, ovr.ErrInvalidSession
	}
	rt := host.Runtime()
	handle, err := rt.CreateSwapchain(ctx, session, CreateInfo(desc, format))
	if err != nil {
		return nil, ovr.Check(err, "xrCreateSwapchain")
	}
	s := &Swapchain{Desc: desc, Format: format, rt: rt, handle: handle}

	if err := s.acquire(ctx, xr.NoDuration); err != nil {
		s.Close(ctx)
		return nil, err
	}
	log.D(ctx, "Created %dx%d %v swapchain %d", desc.Width, desc.Height, format, handle)
	return s, nil
}

// Handle returns the runtime swapchain.
func (s *Swapchain) Handle() xr.Swapchain { return s.handle }

// CurrentIndex returns the index of the acquired image.
func (s *Swapchain) CurrentIndex() uint32 { return s.index }

// Static returns true if the swapchain holds a single image that is
// committed once.
func (s *Swapchain) Static() bool { return s.Desc.StaticImage }

func (s *Swapchain) acquire(ctx context.Context, timeout xr.Duration) error {
	index, err := s.rt.AcquireSwapchainImage(ctx, s.handle)
	if err != nil {
		return ovr.Check(err, "xrAcquireSwapchainImage")
	}
	s.index = index
	if s.Static() {
		return nil
	}
	ready, err := s.rt.WaitSwapchainImage(ctx, s.handle, timeout)
	if err != nil {
		return ovr.Check(err, "xrWaitSwapchainImage")
	}
	if !ready {
		log.D(ctx, "Image %d of swapchain %d not ready after %v", index, s.handle, timeout.Std())
	}
	return nil
}

// Commit releases the acquired image to the compositor. Streaming
// swapchains then acquire the next image, waiting at most the host's
// predicted display period for it.
func (s *Swapchain) Commit(ctx context.Context, host Host) error {
	ctx = log.Enter(ctx, "swapchain.Commit")
	if err := s.rt.ReleaseSwapchainImage(ctx, s.handle); err != nil {
		return ovr.Check(err, "xrReleaseSwapchainImage")
	}
	if s.Static() {
		return nil
	}
	return s.acquire(ctx, host.CurrentFrame().PredictedDisplayPeriod)
}

// Close destroys the swapchain. Only the first call has any effect.
func (s *Swapchain) Close(ctx context.Context) error {
	var err error
	s.close.Do(func() {
		err = ovr.Check(s.rt.DestroySwapchain(ctx, s.handle), "xrDestroySwapchain")
	})
	return err
}
