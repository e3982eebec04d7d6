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

package xr

// Event is an event returned by PollEvent.
type Event interface {
	isEvent()
}

// SessionStateChanged is sent whenever a session changes state.
type SessionStateChanged struct {
	Session Session
	State   SessionState
	Time    Time
}

// InstanceLossPending is sent when the runtime is about to go away.
type InstanceLossPending struct {
	LossTime Time
}

func (SessionStateChanged) isEvent() {}
func (InstanceLossPending) isEvent() {}
