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

// Quat is a rotation quaternion.
// The elements are in the order X, Y, Z, W.
type Quat [4]float32

// IdentityQuat is the quaternion with no rotation.
var IdentityQuat = Quat{0, 0, 0, 1}

// AxisY returns the quaternion rotating by angle radians around the +Y axis.
func AxisY(angle float32) Quat {
	s, c := Sincos(angle / 2)
	return Quat{0, s, 0, c}
}

// Mul returns the Hamilton product a * b, which applies b and then a.
func (a Quat) Mul(b Quat) Quat {
	return Quat{
		a[3]*b[0] + a[0]*b[3] + a[1]*b[2] - a[2]*b[1],
		a[3]*b[1] - a[0]*b[2] + a[1]*b[3] + a[2]*b[0],
		a[3]*b[2] + a[0]*b[1] - a[1]*b[0] + a[2]*b[3],
		a[3]*b[3] - a[0]*b[0] - a[1]*b[1] - a[2]*b[2],
	}
}

// Rotate returns v rotated by the unit quaternion q.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q[0], q[1], q[2]}
	t := Cross3D(u, v).Scale(2)
	return Add3D(Add3D(v, t.Scale(q[3])), Cross3D(u, t))
}

// Yaw returns the rotation around the Y axis for a yaw-pitch-roll (Y, X, Z)
// decomposition of q. Pitch and roll are discarded.
func (q Quat) Yaw() float32 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	return Atan2(2*(x*z+w*y), 1-2*(x*x+y*y))
}
