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
	"github.com/ovrxr/ovrxr/ovr"
	"github.com/ovrxr/ovrxr/xr"
)

// FrameRing keeps the timing of the most recent frames. Frames are stored at
// their frame index modulo the ring capacity.
type FrameRing struct {
	frames  [ovr.MaxProvidedFrameStats]xr.FrameState
	current int64
}

func slot(index int64) int {
	n := int64(len(FrameRing{}.frames))
	return int(((index % n) + n) % n)
}

// Reset forgets every frame. The current frame becomes a zero frame with
// index 0.
func (r *FrameRing) Reset() { *r = FrameRing{} }

// Push records the timing of a frame and makes it the current frame.
func (r *FrameRing) Push(f xr.FrameState) {
	r.frames[slot(f.FrameIndex)] = f
	r.current = f.FrameIndex
}

// Current returns the current frame.
func (r *FrameRing) Current() xr.FrameState {
	f := r.frames[slot(r.current)]
	f.FrameIndex = r.current
	return f
}

// Frame returns the timing of frame index, if it is still held.
func (r *FrameRing) Frame(index int64) (xr.FrameState, bool) {
	f := r.frames[slot(index)]
	if f.FrameIndex != index || index > r.current {
		return xr.FrameState{}, false
	}
	return f, true
}

// Cap returns the number of frames held.
func (r *FrameRing) Cap() int { return len(r.frames) }
