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

package assert

import "time"

// OnInteger is the result of calling ThatInteger on an Assertion.
type OnInteger struct {
	Assertion
	value int
}

// ThatInteger returns an OnInteger for integer based assertions.
func (a Assertion) ThatInteger(value int) OnInteger {
	return OnInteger{Assertion: a, value: value}
}

// Equals asserts that the supplied integer is equal to the expected integer.
func (o OnInteger) Equals(expect int) bool {
	return o.Compare(o.value, "==", expect).Test(o.value == expect)
}

// IsAtLeast asserts that the integer is at least the supplied minimum.
func (o OnInteger) IsAtLeast(min int) bool {
	return o.Compare(o.value, ">=", min).Test(o.value >= min)
}

// IsAtMost asserts that the integer is at most the supplied maximum.
func (o OnInteger) IsAtMost(max int) bool {
	return o.Compare(o.value, "<=", max).Test(o.value <= max)
}

// OnFloat is the result of calling ThatFloat on an Assertion.
type OnFloat struct {
	Assertion
	value float64
}

// ThatFloat returns an OnFloat for floating point based assertions.
func (a Assertion) ThatFloat(value float64) OnFloat {
	return OnFloat{Assertion: a, value: value}
}

// Equals asserts that the float equals v with ± tolerance.
func (o OnFloat) Equals(v, tolerance float64) bool {
	min, max := v-tolerance, v+tolerance
	return o.Compare(o.value, "in", min, "to", max).Test(o.value >= min && o.value <= max)
}

// IsExactly asserts that the float is equal to v with no tolerance.
func (o OnFloat) IsExactly(v float64) bool {
	return o.Compare(o.value, "==", v).Test(o.value == v)
}

// OnDuration is the result of calling ThatDuration on an Assertion.
type OnDuration struct {
	Assertion
	value time.Duration
}

// ThatDuration returns an OnDuration for time duration based assertions.
func (a Assertion) ThatDuration(value time.Duration) OnDuration {
	return OnDuration{Assertion: a, value: value}
}

// IsAtLeast asserts that the time duration is at least the supplied minimum.
func (o OnDuration) IsAtLeast(min time.Duration) bool {
	return o.Compare(o.value, ">=", min).Test(o.value >= min)
}

// IsAtMost asserts that the time duration is at most the supplied maximum.
func (o OnDuration) IsAtMost(max time.Duration) bool {
	return o.Compare(o.value, "<=", max).Test(o.value <= max)
}
