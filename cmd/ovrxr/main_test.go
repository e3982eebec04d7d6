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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ovrxr/ovrxr/core/assert"
	"github.com/ovrxr/ovrxr/core/log"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Setenv("OVRXR_CONFIG", "")
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHacksCommand(t *testing.T) {
	ctx := log.Testing(t)
	out, err := run(t, "hacks", "--exe", "app.exe", "--runtime", "Windows Mixed Reality Runtime", "--version", "106.2000.0")
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "header").ThatString(out).Contains("app.exe on Windows Mixed Reality Runtime 106.2000.0")
	assert.For(ctx, "wmr").ThatString(out).Contains("wmr-profile=true")
	assert.For(ctx, "unmatched").ThatString(out).Contains("no matching record")

	_, err = run(t, "hacks", "--version", "latest")
	assert.For(ctx, "bad version").ThatError(err).Failed()
}

func TestHacksCommandConfig(t *testing.T) {
	ctx := log.Testing(t)
	path := filepath.Join(t.TempDir(), "ovrxr.yaml")
	cfg := "hacks:\n  - executable: app.exe\n    hack: ndc-masks\n    enabled: true\n"
	assert.For(ctx, "write").ThatError(os.WriteFile(path, []byte(cfg), 0644)).Succeeded()
	out, err := run(t, "--config", path, "hacks", "--exe", "APP.EXE", "--runtime", "Acme")
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "override").ThatString(out).Contains("ndc-masks=true [app.exe *")
}

func TestNegotiateCommand(t *testing.T) {
	ctx := log.Testing(t)
	out, err := run(t, "negotiate", "R11G11B10_FLOAT", "--supported", "R8G8B8A8_UNORM")
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "resolved").ThatString(out).Contains("R11G11B10_FLOAT -> R8G8B8A8_UNORM")

	_, err = run(t, "negotiate", "R9G9B9")
	assert.For(ctx, "unknown").ThatError(err).Failed()
}

func TestProbeCommand(t *testing.T) {
	ctx := log.Testing(t)
	out, err := run(t, "probe", "--runtime", "SteamVR/OpenXR", "--version", "0.1.0")
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "probed").ThatString(out).Contains("fov probe: true")
	assert.For(ctx, "views").ThatString(out).Contains("views: 2")
	assert.For(ctx, "truncated").ThatString(out).Contains("line-loop mask: 27 vertices, 27 indices")
	assert.For(ctx, "hidden").ThatString(out).Contains("hidden mask: 40 vertices")
	assert.For(ctx, "format").ThatString(out).Contains("swapchain: R11G11B10_FLOAT -> R8G8B8A8_UNORM")

	out, err = run(t, "probe", "--runtime", "Acme", "--version", "1.17.0")
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "reported").ThatString(out).Contains("fov probe: false")
	assert.For(ctx, "untruncated").ThatString(out).Contains("line-loop mask: 40 vertices")
}
