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

package main

import (
	"fmt"
	"io"

	"github.com/ovrxr/ovrxr/core/log"
	"github.com/ovrxr/ovrxr/gfx"
	"github.com/ovrxr/ovrxr/gfx/gfxfake"
	"github.com/ovrxr/ovrxr/ovr"
	"github.com/ovrxr/ovrxr/shim/caps"
	"github.com/ovrxr/ovrxr/shim/session"
	"github.com/ovrxr/ovrxr/shim/swapchain"
	"github.com/ovrxr/ovrxr/xr"
	"github.com/ovrxr/ovrxr/xr/xrfake"
	"github.com/spf13/cobra"
)

type probeFlags struct {
	runtime    string
	version    string
	exe        string
	extensions []string
	maskCount  uint32
	format     string
}

func newProbeCmd(opts *options) *cobra.Command {
	f := probeFlags{}
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Run a session lifecycle against a simulated runtime",
		Long: `Run a full session lifecycle against an in-memory runtime reporting the
given name, version and extensions: instance creation, session
initialization, start, begin, view location, an eye swapchain commit and
teardown. The resolved render description of each eye is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return probe(opts, cmd, f)
		},
	}
	defaults := append(append([]string{}, caps.Required...), caps.Optional...)
	cmd.Flags().StringVar(&f.runtime, "runtime", "SteamVR/OpenXR", "Runtime name")
	cmd.Flags().StringVar(&f.version, "version", "0.1.0", "Runtime version")
	cmd.Flags().StringVar(&f.exe, "exe", "app.exe", "Executable file name")
	cmd.Flags().StringSliceVar(&f.extensions, "ext", defaults, "Extensions the runtime supports")
	cmd.Flags().Uint32Var(&f.maskCount, "mask-count", 40, "Vertices in each visibility mask")
	cmd.Flags().StringVar(&f.format, "format", "R11G11B10_FLOAT", "Eye swapchain format")
	return cmd
}

func probe(opts *options, cmd *cobra.Command, f probeFlags) error {
	ctx := opts.context(cmd)
	out := cmd.OutOrStdout()

	version, err := xr.ParseVersion(f.version)
	if err != nil {
		return err
	}
	eyeFormat, ok := ovrFormat(f.format)
	if !ok {
		return fmt.Errorf("unknown format %q", f.format)
	}

	rt := xrfake.New(f.runtime, version, f.extensions...)
	rt.ReadyOnCreate = true
	rt.Formats = []int64{
		int64(gfx.FormatR8G8B8A8UnormSRGB),
		int64(gfx.FormatR8G8B8A8Unorm),
		int64(gfx.FormatB8G8R8A8UnormSRGB),
		int64(gfx.FormatD32Float),
	}
	for _, ty := range xr.VisibilityMaskTypes {
		rt.MaskCounts[ty] = f.maskCount
	}

	inst, err := caps.CreateInstance(ctx, rt, caps.Options{
		ApplicationName: "ovrxr probe",
		Executable:      f.exe,
		Hacks:           opts.cfg.Hacks,
	})
	if err != nil {
		return err
	}
	defer inst.Destroy(ctx)

	s := session.New(session.Config{
		Backend:      gfxfake.New(&gfxfake.Adapter{ID: gfx.LUID(rt.LUID), Name: "simulated"}),
		ReadyTimeout: opts.cfg.ReadyTimeout,
	})
	if err := s.InitSession(ctx, inst); err != nil {
		return err
	}
	probed := rt.Count("xrCreateSession") > 0
	if err := s.StartSession(ctx, gfx.D3D11Binding{}); err != nil {
		return err
	}
	defer s.DestroySession(ctx)
	if err := s.BeginSession(ctx); err != nil {
		return err
	}
	views, state, err := s.LocateViews(ctx)
	if err != nil {
		return err
	}

	desc := ovr.TextureSwapChainDesc{
		Type:        ovr.Texture2D,
		Format:      eyeFormat,
		ArraySize:   1,
		Width:       int(s.RenderDesc(ovr.EyeLeft).Resolution[0]),
		Height:      int(s.RenderDesc(ovr.EyeLeft).Resolution[1]),
		MipLevels:   1,
		SampleCount: 1,
		BindFlags:   ovr.TextureBindRenderTarget,
	}
	sc, err := swapchain.Create(ctx, s, desc)
	if err != nil {
		return err
	}
	defer sc.Close(ctx)
	if err := sc.Commit(ctx, s); err != nil {
		return err
	}
	if err := s.EndSession(ctx); err != nil {
		return err
	}
	log.D(ctx, "Session %v complete", s.ID())

	printHacks(out, inst.Hacks)
	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render("Session"))
	fmt.Fprintf(out, "fov probe: %v\n", probed)
	fmt.Fprintf(out, "views: %d, flags: %#x\n", len(views), uint64(state.Flags))
	fmt.Fprintf(out, "stage: %.2fx%.2f\n", s.StageBounds().Width, s.StageBounds().Height)
	fmt.Fprintf(out, "swapchain: %v -> %v\n", swapchain.TextureFormatToDXGI(desc.Format), sc.Format)
	for _, eye := range []ovr.Eye{ovr.EyeLeft, ovr.EyeRight} {
		printEye(out, s, eye)
	}
	return nil
}

func printEye(out io.Writer, s *session.Session, eye ovr.Eye) {
	d := s.RenderDesc(eye)
	fmt.Fprintf(out, "%v: fov %.3f/%.3f/%.3f/%.3f ppt %.1fx%.1f eye %v\n",
		eye, d.Fov.LeftTan, d.Fov.RightTan, d.Fov.UpTan, d.Fov.DownTan,
		d.PixelsPerTanAngle[0], d.PixelsPerTanAngle[1], d.HmdToEyePose.Position)
	for _, ty := range xr.VisibilityMaskTypes {
		if m, ok := s.VisibilityMask(eye, ty); ok {
			fmt.Fprintf(out, "  %v mask: %d vertices, %d indices\n", ty, len(m.Vertices), len(m.Indices))
		}
	}
}

func ovrFormat(name string) (ovr.TextureFormat, bool) {
	dxgi, ok := gfx.ParseFormat(name)
	if !ok {
		return ovr.FormatUnknown, false
	}
	for f := ovr.FormatUnknown; f <= ovr.FormatBC7UnormSRGB; f++ {
		if swapchain.TextureFormatToDXGI(f) == dxgi {
			return f, true
		}
	}
	return ovr.FormatUnknown, false
}
