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

package f32

// Pose is a rigid transform: a rotation followed by a translation.
type Pose struct {
	Orientation Quat
	Position    Vec3
}

// IdentityPose is the pose with no rotation or translation.
var IdentityPose = Pose{Orientation: IdentityQuat}

// Mul returns the composition a ∘ b: the pose b expressed in the frame of a.
func (a Pose) Mul(b Pose) Pose {
	return Pose{
		Orientation: a.Orientation.Mul(b.Orientation),
		Position:    Add3D(a.Position, a.Orientation.Rotate(b.Position)),
	}
}

// Transform returns the point v transformed by the pose.
func (a Pose) Transform(v Vec3) Vec3 {
	return Add3D(a.Position, a.Orientation.Rotate(v))
}
