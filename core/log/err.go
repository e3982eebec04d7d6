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

import (
	"context"
	"fmt"
)

// wrapped is an error carrying the message, trace and bound values of the
// logger that created it.
type wrapped struct {
	msg   *Message
	cause error
}

func (w *wrapped) Error() string {
	if w.cause == nil {
		return w.msg.Text
	}
	return w.msg.Text + ": " + w.cause.Error()
}

// Cause returns the wrapped error for errors.Cause.
func (w *wrapped) Cause() error { return w.cause }

// Unwrap returns the wrapped error for errors.Is and errors.As.
func (w *wrapped) Unwrap() error { return w.cause }

// Err returns an error wrapping cause with msg and the values bound to ctx.
// The message is not logged.
func Err(ctx context.Context, cause error, msg string) error {
	return &wrapped{msg: From(ctx).Message(Error, false, msg), cause: cause}
}

// Errf is Err with a printf-style message.
func Errf(ctx context.Context, cause error, format string, args ...interface{}) error {
	return Err(ctx, cause, fmt.Sprintf(format, args...))
}
