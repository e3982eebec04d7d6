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

// Package f32 implements float32 vector, quaternion and pose math.
package f32

import "math"

// Sqrt returns the square root of v.
func Sqrt(v float32) float32 { return float32(math.Sqrt(float64(v))) }

// Tan returns the tangent of the radian angle v.
func Tan(v float32) float32 { return float32(math.Tan(float64(v))) }

// Atan2 returns the arc tangent of y/x.
func Atan2(y, x float32) float32 { return float32(math.Atan2(float64(y), float64(x))) }

// Sincos returns the sine and cosine of the radian angle v.
func Sincos(v float32) (sin, cos float32) {
	s, c := math.Sincos(float64(v))
	return float32(s), float32(c)
}

// Vec2 is a two element vector of float32.
// The elements are in the order X, Y.
type Vec2 [2]float32
