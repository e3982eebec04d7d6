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

// Package hack decides which runtime workarounds apply to the running
// application.
//
// A Registry is built once from the identity of the running executable and
// the underlying runtime. Each Hack then resolves to the enabled flag of the
// most specific Record matching that identity.
package hack

import (
	"fmt"
	"strings"
)

// Hack identifies a workaround for a specific runtime defect.
type Hack int

const (
	// Invalid is the zero Hack. Records must name a real hack.
	Invalid Hack = iota
	// ValveIndexProfile substitutes the Valve Index controller profile on
	// runtimes lacking the Touch controller profile.
	ValveIndexProfile
	// WMRProfile substitutes the motion controller profile.
	WMRProfile
	// ForceFOVFallback always probes the field of view with a temporary
	// session.
	ForceFOVFallback
	// BrokenLineLoop truncates line-loop visibility masks to 27 entries.
	BrokenLineLoop
	// NDCMasks marks visibility masks already expressed in NDC.
	NDCMasks
	// MinHapticDuration clamps haptic pulses to the runtime minimum.
	MinHapticDuration
	// WaitForSessionReady waits for the READY state before beginning the
	// probe session.
	WaitForSessionReady

	// Count is the number of known hacks.
	Count
)

var names = [Count]string{
	Invalid:             "invalid",
	ValveIndexProfile:   "valve-index-profile",
	WMRProfile:          "wmr-profile",
	ForceFOVFallback:    "force-fov-fallback",
	BrokenLineLoop:      "broken-line-loop",
	NDCMasks:            "ndc-masks",
	MinHapticDuration:   "min-haptic-duration",
	WaitForSessionReady: "wait-for-session-ready",
}

// All returns every known hack in declaration order.
func All() []Hack {
	out := make([]Hack, 0, Count-1)
	for h := Invalid + 1; h < Count; h++ {
		out = append(out, h)
	}
	return out
}

// Valid returns true if h names a known hack.
func (h Hack) Valid() bool { return h > Invalid && h < Count }

func (h Hack) String() string {
	if h >= 0 && h < Count {
		return names[h]
	}
	return fmt.Sprintf("hack<%d>", int(h))
}

// Parse returns the hack with the given name.
func Parse(name string) (Hack, error) {
	for _, h := range All() {
		if strings.EqualFold(names[h], name) {
			return h, nil
		}
	}
	return Invalid, fmt.Errorf("unknown hack %q", name)
}

// UnmarshalText parses a hack name.
func (h *Hack) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// MarshalText returns the hack name.
func (h Hack) MarshalText() ([]byte, error) {
	if !h.Valid() {
		return nil, fmt.Errorf("invalid hack %d", int(h))
	}
	return []byte(names[h]), nil
}
