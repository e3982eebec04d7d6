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

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ovrxr/ovrxr/shim/hack"
	"github.com/ovrxr/ovrxr/xr"
	"github.com/spf13/cobra"
)

func newHacksCmd(opts *options) *cobra.Command {
	var target hack.Target
	var version string
	cmd := &cobra.Command{
		Use:   "hacks",
		Short: "Show which hacks apply to an executable and runtime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := xr.ParseVersion(version)
			if err != nil {
				return err
			}
			target.Version = v
			r := hack.New(target, hack.WithOverrides(opts.cfg.Hacks))
			printHacks(cmd.OutOrStdout(), r)
			return nil
		},
	}
	cmd.Flags().StringVar(&target.Executable, "exe", "", "Executable file name")
	cmd.Flags().StringVar(&target.Runtime, "runtime", "", "Runtime name")
	cmd.Flags().StringVar(&version, "version", "1.0.0", "Runtime version")
	return cmd
}

func printHacks(out io.Writer, r *hack.Registry) {
	t := r.Target()
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%s on %s %v", t.Executable, t.Runtime, t.Version)))
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, h := range hack.All() {
		state := disabledStyle.Render("off")
		if r.Use(h) {
			state = enabledStyle.Render("on")
		}
		reason := "no matching record"
		if rec, ok := r.Match(h); ok {
			reason = rec.String()
		}
		fmt.Fprintf(w, "%v\t%s\t%s\n", h, state, detailStyle.Render(reason))
	}
	w.Flush()
}
