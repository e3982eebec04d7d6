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

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ovrxr/ovrxr/core/assert"
	"github.com/ovrxr/ovrxr/core/log"
	"github.com/ovrxr/ovrxr/shim/config"
	"github.com/ovrxr/ovrxr/shim/hack"
	"github.com/ovrxr/ovrxr/xr"
)

const sample = `
log:
  severity: debug
  style: brief
ready_timeout: 2s
hacks:
  - executable: "game*.exe"
    hack: force-fov-fallback
    enabled: true
  - runtime: Acme
    hack: broken-line-loop
    version_start: 1.2
    version_end: 1.4.1
    enabled: false
`

func TestParse(t *testing.T) {
	ctx := log.Testing(t)
	c, err := config.Parse([]byte(sample))
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "severity").That(c.Log.Severity).Equals(log.Debug)
	assert.For(ctx, "style").That(c.Log.Style).Equals(log.Brief)
	assert.For(ctx, "ready timeout").That(c.ReadyTimeout).Equals(2 * time.Second)
	assert.For(ctx, "hacks").That(c.Hacks).DeepEquals([]hack.Record{
		{Executable: "game*.exe", Hack: hack.ForceFOVFallback, Enabled: true},
		{Runtime: "Acme", Hack: hack.BrokenLineLoop, VersionStart: xr.MakeVersion(1, 2, 0), VersionEnd: xr.MakeVersion(1, 4, 1)},
	})
}

func TestParseErrors(t *testing.T) {
	ctx := log.Testing(t)
	for _, bad := range []string{
		"log: {severity: loud}",
		"log: {style: fancy}",
		"hacks: [{hack: teleport}]",
		"hacks: [{runtime: Acme, enabled: true}]",
		"hacks: [{hack: ndc-masks, executable: '['}]",
		"hacks: [{hack: ndc-masks, version_start: 2.0.0, version_end: 1.0.0}]",
	} {
		_, err := config.Parse([]byte(bad))
		assert.For(ctx, bad).ThatError(err).Failed()
	}
}

func TestLoad(t *testing.T) {
	ctx := log.Testing(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	assert.For(ctx, "write").ThatError(os.WriteFile(path, []byte(sample), 0644)).Succeeded()

	c, err := config.Load(ctx, path)
	assert.For(ctx, "explicit").ThatError(err).Succeeded()
	assert.For(ctx, "path").ThatString(c.Path).Equals(path)

	t.Setenv(config.EnvVar, path)
	c, err = config.Load(ctx, "")
	assert.For(ctx, "env").ThatError(err).Succeeded()
	assert.For(ctx, "env hacks").ThatSlice(c.Hacks).IsLength(2)

	_, err = config.Load(ctx, filepath.Join(dir, "missing.yaml"))
	assert.For(ctx, "explicit missing").ThatError(err).Failed()

	t.Setenv(config.EnvVar, "")
	c, err = config.Load(ctx, "")
	assert.For(ctx, "implicit missing").ThatError(err).Succeeded()
	assert.For(ctx, "defaults").That(c.Log.Style).Equals(log.Normal)
}

func TestBind(t *testing.T) {
	ctx := log.Testing(t)
	c := config.Default()
	c.Log.Severity = log.Warning
	c.Log.Style = log.Raw
	w, buf := log.Buffer()
	lctx := c.Bind(ctx, w)
	log.I(lctx, "hidden")
	log.W(lctx, "shown")
	assert.For(ctx, "output").ThatString(buf.String()).Equals("shown")
}
