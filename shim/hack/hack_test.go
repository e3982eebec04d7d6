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

package hack_test

import (
	"testing"

	"github.com/ovrxr/ovrxr/core/assert"
	"github.com/ovrxr/ovrxr/core/log"
	"github.com/ovrxr/ovrxr/shim/hack"
	"github.com/ovrxr/ovrxr/xr"
)

var (
	v1 = xr.MakeVersion(1, 0, 0)
	v2 = xr.MakeVersion(2, 0, 0)
	v3 = xr.MakeVersion(3, 0, 0)
)

func TestUseNoMatch(t *testing.T) {
	ctx := log.Testing(t)
	r := hack.New(hack.Target{Executable: "game.exe", Runtime: "Acme", Version: v1}, []hack.Record{
		{Runtime: "Other", Hack: hack.NDCMasks, Enabled: true},
	})
	for _, h := range hack.All() {
		assert.For(ctx, "%v", h).ThatBoolean(r.Use(h)).IsFalse()
	}
}

func TestUseSpecificity(t *testing.T) {
	ctx := log.Testing(t)
	records := []hack.Record{
		{Hack: hack.BrokenLineLoop, Enabled: true},
		{Runtime: "Acme*", Hack: hack.BrokenLineLoop, Enabled: false},
		{Executable: "GAME.exe", Hack: hack.BrokenLineLoop, Enabled: true},
		{Executable: "game.exe", Runtime: "Acme Runtime", Hack: hack.BrokenLineLoop, Enabled: false},
	}
	for _, test := range []struct {
		name   string
		target hack.Target
		expect bool
	}{
		{"wildcard only", hack.Target{Executable: "other.exe", Runtime: "Other"}, true},
		{"runtime beats wildcard", hack.Target{Executable: "other.exe", Runtime: "Acme Runtime"}, false},
		{"executable beats runtime", hack.Target{Executable: "game.exe", Runtime: "Acme XR"}, true},
		{"both beat executable", hack.Target{Executable: "Game.EXE", Runtime: "Acme Runtime"}, false},
	} {
		r := hack.New(test.target, records)
		assert.For(ctx, test.name).ThatBoolean(r.Use(hack.BrokenLineLoop)).Equals(test.expect)
	}
}

func TestUseTiesFirstWins(t *testing.T) {
	ctx := log.Testing(t)
	target := hack.Target{Runtime: "Acme", Version: v2}
	r := hack.New(target, []hack.Record{
		{Runtime: "Acme", Hack: hack.NDCMasks, Enabled: false},
		{Runtime: "Ac*", Hack: hack.NDCMasks, Enabled: true},
	})
	assert.For(ctx, "first").ThatBoolean(r.Use(hack.NDCMasks)).IsFalse()

	r = hack.New(target, hack.WithOverrides([]hack.Record{
		{Runtime: "Acme", Hack: hack.ValveIndexProfile, Enabled: true},
	}))
	assert.For(ctx, "override").ThatBoolean(r.Use(hack.ValveIndexProfile)).IsTrue()
}

func TestUseVersionRanges(t *testing.T) {
	ctx := log.Testing(t)
	records := []hack.Record{
		{Runtime: "Acme", Hack: hack.WaitForSessionReady, VersionEnd: v2, Enabled: true},
		{Runtime: "Acme", Hack: hack.WaitForSessionReady, VersionStart: v2, VersionEnd: v3, Enabled: false},
		{Runtime: "Acme", Hack: hack.ForceFOVFallback, VersionStart: v2, Enabled: true},
		{Runtime: "Acme", Hack: hack.ForceFOVFallback, VersionStart: v1, Enabled: false},
	}
	for _, test := range []struct {
		version  xr.Version
		wait     bool
		fallback bool
	}{
		{xr.MakeVersion(0, 9, 0), true, false},
		{v1, true, false},
		{v2, false, true},
		{xr.MakeVersion(2, 5, 1), false, true},
		{v3, false, true},
	} {
		r := hack.New(hack.Target{Runtime: "Acme", Version: test.version}, records)
		assert.For(ctx, "wait %v", test.version).ThatBoolean(r.Use(hack.WaitForSessionReady)).Equals(test.wait)
		assert.For(ctx, "fallback %v", test.version).ThatBoolean(r.Use(hack.ForceFOVFallback)).Equals(test.fallback)
	}
}

func TestBuiltin(t *testing.T) {
	ctx := log.Testing(t)
	for _, rec := range hack.Builtin {
		assert.For(ctx, "%v", rec).ThatError(rec.Validate()).Succeeded()
	}
	r := hack.New(hack.Target{Executable: "app.exe", Runtime: "SteamVR/OpenXR", Version: xr.MakeVersion(0, 1, 0)}, hack.Builtin)
	assert.For(ctx, "steamvr").That(r.Enabled()).DeepEquals([]hack.Hack{hack.ValveIndexProfile, hack.BrokenLineLoop, hack.MinHapticDuration})
	r = hack.New(hack.Target{Executable: "app.exe", Runtime: "Windows Mixed Reality Runtime", Version: xr.MakeVersion(106, 2103, 0)}, hack.Builtin)
	assert.For(ctx, "wmr").That(r.Enabled()).DeepEquals([]hack.Hack{hack.WMRProfile})
}

func TestNames(t *testing.T) {
	ctx := log.Testing(t)
	for _, h := range hack.All() {
		got, err := hack.Parse(h.String())
		assert.For(ctx, "parse %v", h).ThatError(err).Succeeded()
		assert.For(ctx, "round trip %v", h).That(got).Equals(h)
	}
	_, err := hack.Parse("no-such-hack")
	assert.For(ctx, "unknown").ThatError(err).Failed()
}

func TestValidate(t *testing.T) {
	ctx := log.Testing(t)
	assert.For(ctx, "bad glob").ThatError(hack.Record{Executable: "[", Hack: hack.NDCMasks}.Validate()).Failed()
	assert.For(ctx, "empty range").ThatError(hack.Record{Hack: hack.NDCMasks, VersionStart: v2, VersionEnd: v1}.Validate()).Failed()
	assert.For(ctx, "bad id").ThatError(hack.Record{Hack: hack.Count}.Validate()).Failed()
	assert.For(ctx, "missing hack").ThatError(hack.Record{Runtime: "Acme", Enabled: true}.Validate()).Failed()
	assert.For(ctx, "slash runtime").ThatError(hack.Record{Runtime: "SteamVR/*", Hack: hack.NDCMasks}.Validate()).Succeeded()
}

func TestRuntimePatternSpansSlash(t *testing.T) {
	ctx := log.Testing(t)
	target := hack.Target{Executable: "app.exe", Runtime: "SteamVR/OpenXR", Version: v1}
	for _, pattern := range []string{"*", "SteamVR*", "*/OpenXR", "SteamVR/OpenXR", "Steam?R/*"} {
		rec := hack.Record{Runtime: pattern, Hack: hack.NDCMasks, Enabled: true}
		assert.For(ctx, "%q valid", pattern).ThatError(rec.Validate()).Succeeded()
		assert.For(ctx, "%q matches", pattern).ThatBoolean(rec.Matches(target)).IsTrue()
		assert.For(ctx, "%q use", pattern).ThatBoolean(hack.New(target, []hack.Record{rec}).Use(hack.NDCMasks)).IsTrue()
	}
	rec := hack.Record{Runtime: "Oculus*", Hack: hack.NDCMasks, Enabled: true}
	assert.For(ctx, "other runtime").ThatBoolean(rec.Matches(target)).IsFalse()
}

func TestZeroHackIgnored(t *testing.T) {
	ctx := log.Testing(t)
	r := hack.New(hack.Target{Runtime: "Acme"}, []hack.Record{{Runtime: "Acme", Enabled: true}})
	assert.For(ctx, "enabled").ThatSlice(r.Enabled()).IsEmpty()
	_, ok := r.Match(hack.Invalid)
	assert.For(ctx, "match").ThatBoolean(ok).IsFalse()
	_, err := hack.Parse("invalid")
	assert.For(ctx, "parse").ThatError(err).Failed()
	assert.For(ctx, "all").ThatSlice(hack.All()).IsLength(int(hack.Count) - 1)
	assert.For(ctx, "first").That(hack.All()[0]).Equals(hack.ValveIndexProfile)
}
