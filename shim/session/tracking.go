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
	"sync"

	"github.com/ovrxr/ovrxr/core/log"
	"github.com/ovrxr/ovrxr/core/math/f32"
	"github.com/ovrxr/ovrxr/ovr"
	"github.com/ovrxr/ovrxr/xr"
)

// Space is a runtime reference space that is destroyed at most once.
// A nil Space has a null handle.
type Space struct {
	rt     xr.Runtime
	handle xr.Space
	once   sync.Once
}

func createSpace(ctx context.Context, rt xr.Runtime, session xr.Session, ty xr.ReferenceSpaceType, pose f32.Pose) (*Space, error) {
	h, err := rt.CreateReferenceSpace(ctx, session, xr.ReferenceSpaceCreateInfo{Type: ty, PoseInReferenceSpace: pose})
	if err != nil {
		return nil, ovr.Check(err, "xrCreateReferenceSpace")
	}
	return &Space{rt: rt, handle: h}, nil
}

// Handle returns the runtime handle of the space.
func (s *Space) Handle() xr.Space {
	if s == nil {
		return xr.NullHandle
	}
	return s.handle
}

// Close destroys the space. Only the first call has any effect.
func (s *Space) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}
	var err error
	s.once.Do(func() { err = ovr.Check(s.rt.DestroySpace(ctx, s.handle), "xrDestroySpace") })
	return err
}

func originSpaceType(origin ovr.TrackingOrigin) xr.ReferenceSpaceType {
	return xr.ReferenceSpaceLocal + xr.ReferenceSpaceType(origin)
}

// TrackingOrigin returns the origin poses are reported relative to.
func (s *Session) TrackingOrigin() ovr.TrackingOrigin { return s.origin }

// SetTrackingOrigin changes the origin poses are reported relative to.
func (s *Session) SetTrackingOrigin(origin ovr.TrackingOrigin) error {
	if origin < 0 || origin >= ovr.TrackingOriginCount {
		return ovr.ErrInvalidParameter
	}
	s.origin = origin
	return nil
}

// TrackingSpace returns the recentered space of origin, or a null handle if
// no session exists.
func (s *Session) TrackingSpace(origin ovr.TrackingOrigin) xr.Space {
	s.trackingMu.RLock()
	defer s.trackingMu.RUnlock()
	return s.trackingSpaces[origin].Handle()
}

// OriginSpace returns the fixed space of origin.
func (s *Session) OriginSpace(origin ovr.TrackingOrigin) xr.Space {
	s.trackingMu.RLock()
	defer s.trackingMu.RUnlock()
	return s.originSpaces[origin].Handle()
}

// ViewSpace returns the head-locked space.
func (s *Session) ViewSpace() xr.Space { return s.viewSpace.Handle() }

// Recenter recenters origin on the current head pose.
func (s *Session) Recenter(ctx context.Context, origin ovr.TrackingOrigin) error {
	return s.RecenterSpace(ctx, origin, s.viewSpace.Handle(), f32.IdentityPose)
}

// RecenterSpace replaces the tracking space of origin with one centered on
// the anchor's position and facing along its yaw, composed with offset.
// Floor level origins stay on the floor. If any step fails the previous
// tracking space is kept.
func (s *Session) RecenterSpace(ctx context.Context, origin ovr.TrackingOrigin, anchor xr.Space, offset f32.Pose) error {
	ctx = log.Enter(ctx, "RecenterSpace")
	if origin < 0 || origin >= ovr.TrackingOriginCount {
		return ovr.ErrInvalidParameter
	}
	s.trackingMu.Lock()
	defer s.trackingMu.Unlock()
	if s.handle == xr.NullHandle {
		return ovr.ErrInvalidSession
	}

	at := s.frames.Current().PredictedDisplayTime
	loc, err := s.rt.LocateSpace(ctx, anchor, s.originSpaces[origin].Handle(), at)
	if err != nil {
		return ovr.Check(err, "xrLocateSpace")
	}
	if loc.Flags&(xr.OrientationValid|xr.PositionValid) == 0 {
		return ovr.ErrInvalidHeadsetOrientation
	}

	center := f32.Pose{
		Orientation: f32.AxisY(loc.Pose.Orientation.Yaw()),
		Position:    loc.Pose.Position,
	}
	if origin == ovr.TrackingOriginFloorLevel {
		center.Position[1] = 0
	}

	space, err := createSpace(ctx, s.rt, s.handle, originSpaceType(origin), center.Mul(offset))
	if err != nil {
		return err
	}
	if err := s.trackingSpaces[origin].Close(ctx); err != nil {
		space.Close(ctx)
		return err
	}
	s.trackingSpaces[origin] = space
	log.D(ctx, "Recentered %v at %v", origin, center.Position)
	return nil
}
