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

package log

import "context"

type minSeverityKeyTy string

const minSeverityKey minSeverityKeyTy = "log.minSeverityKey"

// PutMinSeverity returns a context whose loggers drop messages less severe
// than s.
func PutMinSeverity(ctx context.Context, s Severity) context.Context {
	return context.WithValue(ctx, minSeverityKey, s)
}

// GetMinSeverity returns the least severe level logged through ctx. Without
// a threshold everything is logged.
func GetMinSeverity(ctx context.Context) Severity {
	if s, ok := ctx.Value(minSeverityKey).(Severity); ok {
		return s
	}
	return Verbose
}
