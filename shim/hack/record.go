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

package hack

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/ovrxr/ovrxr/xr"
)

// Record scopes a hack to executables, runtimes and runtime versions.
type Record struct {
	// Executable is a case-insensitive glob over the executable file name.
	// Empty matches any executable.
	Executable string `yaml:"executable,omitempty"`
	// Runtime is a glob over the runtime name. Empty matches any runtime.
	Runtime string `yaml:"runtime,omitempty"`
	// Hack is required; the zero value is Invalid.
	Hack Hack `yaml:"hack"`
	// VersionStart is the first runtime version the record applies to.
	// Zero is unbounded.
	VersionStart xr.Version `yaml:"version_start,omitempty"`
	// VersionEnd is the first runtime version the record no longer applies
	// to. Zero is unbounded.
	VersionEnd xr.Version `yaml:"version_end,omitempty"`
	Enabled    bool       `yaml:"enabled"`
}

// Target is the identity hacks are resolved against.
type Target struct {
	Executable string
	Runtime    string
	Version    xr.Version
}

// Validate checks the record's patterns and version range.
func (r Record) Validate() error {
	if !r.Hack.Valid() {
		return fmt.Errorf("missing or invalid hack %d", int(r.Hack))
	}
	if _, err := glob.Compile(r.Executable); err != nil {
		return fmt.Errorf("executable pattern %q: %v", r.Executable, err)
	}
	if _, err := glob.Compile(r.Runtime); err != nil {
		return fmt.Errorf("runtime pattern %q: %v", r.Runtime, err)
	}
	if r.VersionStart != 0 && r.VersionEnd != 0 && r.VersionEnd <= r.VersionStart {
		return fmt.Errorf("empty version range [%v, %v)", r.VersionStart, r.VersionEnd)
	}
	return nil
}

// Matches returns true if the record applies to t.
func (r Record) Matches(t Target) bool {
	if r.Executable != "" && !matches(strings.ToLower(r.Executable), strings.ToLower(t.Executable)) {
		return false
	}
	if r.Runtime != "" && !matches(r.Runtime, t.Runtime) {
		return false
	}
	if r.VersionStart != 0 && t.Version < r.VersionStart {
		return false
	}
	if r.VersionEnd != 0 && t.Version >= r.VersionEnd {
		return false
	}
	return true
}

// Specificity ranks matching records. A record naming both an executable and
// a runtime beats one naming only an executable, which beats one naming only
// a runtime.
func (r Record) Specificity() int {
	s := 0
	if r.Executable != "" {
		s += 2
	}
	if r.Runtime != "" {
		s++
	}
	return s
}

func (r Record) String() string {
	exe, rt := r.Executable, r.Runtime
	if exe == "" {
		exe = "*"
	}
	if rt == "" {
		rt = "*"
	}
	return fmt.Sprintf("%v=%v [%s %s %s]", r.Hack, r.Enabled, exe, rt, versionRange(r.VersionStart, r.VersionEnd))
}

func versionRange(start, end xr.Version) string {
	s, e := "", ""
	if start != 0 {
		s = start.String()
	}
	if end != 0 {
		e = end.String()
	}
	if s == "" && e == "" {
		return "any"
	}
	return fmt.Sprintf("[%s, %s)", s, e)
}

// matches reports whether name matches pattern. Wildcards span '/', so
// "SteamVR*" matches "SteamVR/OpenXR".
func matches(pattern, name string) bool {
	g, err := glob.Compile(pattern)
	return err == nil && g.Match(name)
}
