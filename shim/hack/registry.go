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

import "github.com/ovrxr/ovrxr/xr"

// Builtin is the table of known runtime defects.
var Builtin = []Record{
	{Runtime: "SteamVR/OpenXR", Hack: ValveIndexProfile, Enabled: true},
	{Runtime: "SteamVR/OpenXR", Hack: BrokenLineLoop, VersionEnd: xr.MakeVersion(0, 1, 1), Enabled: true},
	{Runtime: "SteamVR/OpenXR", Hack: MinHapticDuration, Enabled: true},
	{Runtime: "Windows Mixed Reality Runtime", Hack: WMRProfile, Enabled: true},
	{Runtime: "Windows Mixed Reality Runtime", Hack: WaitForSessionReady, VersionEnd: xr.MakeVersion(106, 2102, 0), Enabled: true},
	{Runtime: "Oculus", Hack: NDCMasks, Enabled: true},
	{Executable: "Sanctum2*.exe", Hack: ForceFOVFallback, Enabled: true},
}

// Registry answers which hacks apply to one target. It is immutable.
type Registry struct {
	target   Target
	records  []Record
	resolved [Count]*Record
}

// New builds a registry for t over records. Earlier records win ties.
func New(t Target, records []Record) *Registry {
	r := &Registry{target: t, records: append([]Record(nil), records...)}
	for i := range r.records {
		rec := &r.records[i]
		if !rec.Hack.Valid() || !rec.Matches(t) {
			continue
		}
		if cur := r.resolved[rec.Hack]; cur == nil || rec.Specificity() > cur.Specificity() {
			r.resolved[rec.Hack] = rec
		}
	}
	return r
}

// WithOverrides returns the override records followed by the builtin table.
func WithOverrides(overrides []Record) []Record {
	out := make([]Record, 0, len(overrides)+len(Builtin))
	out = append(out, overrides...)
	return append(out, Builtin...)
}

// Target returns the identity the registry was built for.
func (r *Registry) Target() Target { return r.target }

// Use returns true if the hack is enabled for the target. A hack with no
// matching record is disabled.
func (r *Registry) Use(h Hack) bool {
	rec, ok := r.Match(h)
	return ok && rec.Enabled
}

// Match returns the record deciding h, if any.
func (r *Registry) Match(h Hack) (Record, bool) {
	if r == nil || !h.Valid() || r.resolved[h] == nil {
		return Record{}, false
	}
	return *r.resolved[h], true
}

// Enabled returns every hack in use, in declaration order.
func (r *Registry) Enabled() []Hack {
	var out []Hack
	for _, h := range All() {
		if r.Use(h) {
			out = append(out, h)
		}
	}
	return out
}
