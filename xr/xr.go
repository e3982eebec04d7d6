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

// Package xr describes the underlying XR runtime that the shim translates
// legacy calls into.
//
// The runtime is treated as an opaque service: every request it understands
// is a method on Runtime, and every value crossing the boundary is a plain Go
// type declared here.
package xr

import (
	"fmt"
	"math"
	"time"
)

type (
	// Instance is a connection to the runtime.
	Instance uint64
	// SystemID identifies a headset system exposed by an instance.
	SystemID uint64
	// Session is a runtime session handle.
	Session uint64
	// Space is a runtime reference space handle.
	Space uint64
	// Swapchain is a runtime swapchain handle.
	Swapchain uint64
)

// NullHandle is the value of every handle type that refers to nothing.
const NullHandle = 0

// Version is a packed major.minor.patch version number.
type Version uint64

// MakeVersion packs a version number.
func MakeVersion(major, minor, patch uint32) Version {
	return Version(uint64(major&0xffff)<<48 | uint64(minor&0xffff)<<32 | uint64(patch))
}

// Major returns the major component of the version.
func (v Version) Major() uint32 { return uint32(v>>48) & 0xffff }

// Minor returns the minor component of the version.
func (v Version) Minor() uint32 { return uint32(v>>32) & 0xffff }

// Patch returns the patch component of the version.
func (v Version) Patch() uint32 { return uint32(v) }

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
}

// ParseVersion parses a "major.minor.patch" string. Missing trailing
// components are zero.
func ParseVersion(s string) (Version, error) {
	var major, minor, patch uint32
	n, _ := fmt.Sscanf(s, "%d.%d.%d", &major, &minor, &patch)
	if n == 0 {
		return 0, fmt.Errorf("invalid version %q", s)
	}
	return MakeVersion(major, minor, patch), nil
}

// UnmarshalText parses a version. The empty string is the zero version.
func (v *Version) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*v = 0
		return nil
	}
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalText formats the version as "major.minor.patch".
func (v Version) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// Time is a runtime timestamp in nanoseconds.
type Time int64

// Duration is a runtime duration in nanoseconds.
type Duration int64

const (
	// NoDuration is a zero timeout: poll without blocking.
	NoDuration Duration = 0
	// InfiniteDuration never times out.
	InfiniteDuration Duration = math.MaxInt64
)

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }
