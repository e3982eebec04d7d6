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
	"time"

	"github.com/ovrxr/ovrxr/core/log"
	"github.com/ovrxr/ovrxr/gfx"
	"github.com/ovrxr/ovrxr/ovr"
	"github.com/ovrxr/ovrxr/shim/hack"
	"github.com/ovrxr/ovrxr/xr"
)

// probe starts a temporary session on a device created on the runtime's
// adapter and locates the views to learn the headset's field of view and
// eye poses. The temporary session and device are always released.
func (s *Session) probe(ctx context.Context) (err error) {
	ctx = log.Enter(ctx, "probe")
	if s.cfg.Backend == nil {
		return log.Err(ctx, ovr.ErrNotInitialized, "No graphics backend for the field of view probe")
	}
	device, err := gfx.DeviceForLUID(ctx, s.cfg.Backend, s.Adapter)
	if err != nil {
		return log.Errf(ctx, err, "Creating probe device on adapter %v", s.Adapter)
	}
	defer device.Release()

	s.probing = true
	defer func() { s.probing = false }()
	if err := s.StartSession(ctx, gfx.D3D11Binding{Device: device}); err != nil {
		return err
	}
	defer func() {
		if derr := s.DestroySession(ctx); err == nil {
			err = derr
		}
	}()

	if s.inst.Hacks.Use(hack.WaitForSessionReady) {
		if err := s.waitForReady(ctx); err != nil {
			return err
		}
		if err := s.rt.BeginSession(ctx, s.handle, xr.ViewConfigurationPrimaryStereo); err != nil {
			return ovr.Check(err, "xrBeginSession")
		}
	}

	views, _, err := s.LocateViews(ctx)
	if err != nil {
		return err
	}
	for eye, view := range views {
		s.poses[eye] = view
		s.views[eye].RecommendedFov = view.Fov
		s.views[eye].MaxMutableFov = view.Fov
	}

	if s.bounds, err = s.rt.GetReferenceSpaceBoundsRect(ctx, s.handle, xr.ReferenceSpaceStage); err != nil {
		return ovr.Check(err, "xrGetReferenceSpaceBoundsRect")
	}
	log.D(ctx, "Probed fov %+v, stage %vx%v", s.views[ovr.EyeLeft].RecommendedFov, s.bounds.Width, s.bounds.Height)
	return nil
}

// waitForReady polls the runtime's events until the current session reports
// the READY state. A failed poll ends the wait without error. The wait is
// bounded by ctx and the configured ReadyTimeout.
func (s *Session) waitForReady(ctx context.Context) error {
	var deadline <-chan time.Time
	if s.cfg.ReadyTimeout > 0 {
		timer := time.NewTimer(s.cfg.ReadyTimeout)
		defer timer.Stop()
		deadline = timer.C
	}
	for {
		event, ok, err := s.rt.PollEvent(ctx, s.inst.Handle)
		if err != nil {
			log.W(ctx, "Stopped waiting for session readiness: %v", err)
			return nil
		}
		if ok {
			if e, isState := event.(xr.SessionStateChanged); isState && e.State == xr.SessionStateReady {
				if e.Session != s.handle {
					log.W(ctx, "READY reported for session %d, expected %d", e.Session, s.handle)
				}
				return nil
			}
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return log.Errf(ctx, ovr.ErrTimeout, "Session not ready after %v", s.cfg.ReadyTimeout)
		case <-time.After(ReadyPollInterval):
		}
	}
}
