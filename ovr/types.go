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

package ovr

// Eye identifies one eye of the headset.
type Eye int

const (
	EyeLeft Eye = iota
	EyeRight
	// EyeCount is the number of eyes.
	EyeCount
)

func (e Eye) String() string {
	switch e {
	case EyeLeft:
		return "left"
	case EyeRight:
		return "right"
	}
	return "invalid-eye"
}

// TrackingOrigin names the reference frame poses are reported in.
type TrackingOrigin int

const (
	TrackingOriginEyeLevel TrackingOrigin = iota
	TrackingOriginFloorLevel
	// TrackingOriginCount is the number of tracking origins.
	TrackingOriginCount
)

func (o TrackingOrigin) String() string {
	switch o {
	case TrackingOriginEyeLevel:
		return "eye-level"
	case TrackingOriginFloorLevel:
		return "floor-level"
	}
	return "invalid-origin"
}

// FovPort is a field of view expressed as tangents of the half-angles.
type FovPort struct {
	UpTan, DownTan, LeftTan, RightTan float32
}

// MaxProvidedFrameStats is the number of frames of timing history kept.
const MaxProvidedFrameStats = 5
