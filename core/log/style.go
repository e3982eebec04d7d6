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
	"fmt"
	"strings"
	"time"
)

// Style provides customization for printing messages.
type Style struct {
	Name      string // Name of the style.
	Timestamp bool   // If true, the timestamp will be printed if part of the message.
	Tag       bool   // If true, the tag will be printed if part of the message.
	Trace     bool   // If true, the trace will be printed if part of the message.
	Severity  bool   // If true, the short severity is printed.
	Values    bool   // If true, the values are printed on a single line.
}

var (
	// Raw is a style that only prints the text of the message.
	Raw = Style{Name: "raw"}

	// Brief is a style that only prints the text and short severity of the
	// message.
	Brief = Style{Name: "brief", Severity: true}

	// Normal is a style that prints the timestamp, tag, trace and short
	// severity.
	Normal = Style{Name: "normal", Timestamp: true, Tag: true, Trace: true, Severity: true}

	// Detailed is Normal with the values.
	Detailed = Style{Name: "detailed", Timestamp: true, Tag: true, Trace: true, Severity: true, Values: true}

	styles = []Style{Raw, Brief, Normal, Detailed}
)

func (s Style) String() string { return s.Name }

// ParseStyle returns the registered style with the given name.
func ParseStyle(name string) (Style, error) {
	for _, s := range styles {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return Normal, fmt.Errorf("unknown log style %q", name)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Style) UnmarshalText(text []byte) error {
	v, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Handler returns a new Handler configured to write to w with the style.
func (s Style) Handler(w Writer) Handler {
	return NewHandler(func(msg *Message) { w(s.Print(msg), msg.Severity) }, nil)
}

// Print returns the message msg printed with the style s.
func (s Style) Print(msg *Message) string {
	m := make([]string, 0, 6)
	if s.Timestamp && !msg.Time.IsZero() {
		m = append(m, HHMMSSsss(msg.Time))
	}
	if s.Severity {
		m = append(m, msg.Severity.Short()+":")
	}
	if s.Trace && len(msg.Trace) > 0 {
		m = append(m, fmt.Sprintf("[%s]", strings.Join(msg.Trace, " -> ")))
	}
	if s.Tag && msg.Tag != "" {
		m = append(m, fmt.Sprintf("<%s>", msg.Tag))
	}
	m = append(m, msg.Text)
	if s.Values && len(msg.Values) > 0 {
		t := make([]string, len(msg.Values))
		for i, v := range msg.Values {
			t[i] = fmt.Sprintf("%v: %v", v.Name, v.Value)
		}
		m = append(m, "("+strings.Join(t, ", ")+")")
	}
	return strings.Join(m, " ")
}

// HHMMSSsss prints the time as a HH:MM:SS.sss
func HHMMSSsss(t time.Time) string {
	return fmt.Sprintf("%.2d:%.2d:%.2d.%.3d", t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/1e6)
}
