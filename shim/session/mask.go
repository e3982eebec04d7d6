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

package session

import (
	"context"

	"github.com/ovrxr/ovrxr/core/math/f32"
	"github.com/ovrxr/ovrxr/ovr"
	"github.com/ovrxr/ovrxr/shim/hack"
	"github.com/ovrxr/ovrxr/xr"
)

// brokenLineLoopLength is the number of valid entries in a line-loop mask
// from runtimes that over-allocate it.
const brokenLineLoopLength = 27

type maskKey struct {
	eye ovr.Eye
	ty  xr.VisibilityMaskType
}

// Mask is the visibility mask geometry of one eye.
type Mask struct {
	Vertices []f32.Vec2
	Indices  []uint32
}

// UpdateStencil fetches the visibility mask of the given type for eye and
// caches it until the session is destroyed.
func (s *Session) UpdateStencil(ctx context.Context, eye ovr.Eye, ty xr.VisibilityMaskType) error {
	if s.handle == xr.NullHandle {
		return ovr.ErrInvalidSession
	}
	view := uint32(eye)
	vertexCount, indexCount, err := s.rt.GetVisibilityMask(ctx, s.handle, xr.ViewConfigurationPrimaryStereo, view, ty, nil, nil)
	if err != nil {
		return ovr.Check(err, "xrGetVisibilityMaskKHR")
	}
	if vertexCount == 0 || indexCount == 0 {
		return ovr.ErrUnsupported
	}

	mask := Mask{
		Vertices: make([]f32.Vec2, vertexCount),
		Indices:  make([]uint32, indexCount),
	}
	vertexCount, indexCount, err = s.rt.GetVisibilityMask(ctx, s.handle, xr.ViewConfigurationPrimaryStereo, view, ty, mask.Vertices, mask.Indices)
	if err != nil {
		return ovr.Check(err, "xrGetVisibilityMaskKHR")
	}
	mask.Vertices = mask.Vertices[:min(vertexCount, uint32(len(mask.Vertices)))]
	mask.Indices = mask.Indices[:min(indexCount, uint32(len(mask.Indices)))]

	if ty == xr.VisibilityMaskLineLoop && s.inst.Hacks.Use(hack.BrokenLineLoop) {
		mask.Vertices = resize(mask.Vertices, brokenLineLoopLength)
		mask.Indices = resize(mask.Indices, brokenLineLoopLength)
	}

	s.masksMu.Lock()
	s.masks[maskKey{eye, ty}] = mask
	s.masksMu.Unlock()
	return nil
}

// resize returns s with exactly n elements, zero filled if it grows.
func resize[T any](s []T, n int) []T {
	if len(s) >= n {
		return s[:n]
	}
	return append(s, make([]T, n-len(s))...)
}

// VisibilityMask returns the cached mask of the given type for eye.
func (s *Session) VisibilityMask(eye ovr.Eye, ty xr.VisibilityMaskType) (Mask, bool) {
	s.masksMu.Lock()
	defer s.masksMu.Unlock()
	m, ok := s.masks[maskKey{eye, ty}]
	return m, ok
}

// MasksInNDC returns true if the runtime's visibility masks are already in
// normalized device coordinates and must not be projected.
func (s *Session) MasksInNDC() bool {
	return s.inst != nil && s.inst.Hacks.Use(hack.NDCMasks)
}
