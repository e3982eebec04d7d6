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

import "reflect"

// OnSlice is the result of calling ThatSlice on an Assertion.
// Calling this with a non slice type will result in panics.
type OnSlice struct {
	Assertion
	slice interface{}
}

// ThatSlice returns an OnSlice for assertions on slice type objects.
func (a Assertion) ThatSlice(slice interface{}) OnSlice {
	return OnSlice{Assertion: a, slice: slice}
}

// IsEmpty asserts that the slice was of length 0
func (o OnSlice) IsEmpty() bool {
	n := reflect.ValueOf(o.slice).Len()
	return o.Compare(n, "length ==", 0).Test(n == 0)
}

// IsLength asserts that the slice has exactly the specified number of elements
func (o OnSlice) IsLength(length int) bool {
	n := reflect.ValueOf(o.slice).Len()
	return o.Compare(n, "length ==", length).Test(n == length)
}

// Equals asserts the array or slice matches expected, element by element.
func (o OnSlice) Equals(expected interface{}) bool {
	gs, es := reflect.ValueOf(o.slice), reflect.ValueOf(expected)
	equal := gs.Len() == es.Len()
	for i := 0; equal && i < gs.Len(); i++ {
		equal = gs.Index(i).Interface() == es.Index(i).Interface()
	}
	return o.Compare(o.slice, "==", expected).Test(equal)
}
