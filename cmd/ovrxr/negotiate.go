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

	"github.com/ovrxr/ovrxr/gfx"
	"github.com/ovrxr/ovrxr/shim/swapchain"
	"github.com/spf13/cobra"
)

func newNegotiateCmd(opts *options) *cobra.Command {
	var supported []string
	cmd := &cobra.Command{
		Use:   "negotiate <format>",
		Short: "Resolve a swapchain format against a set of supported formats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, ok := gfx.ParseFormat(args[0])
			if !ok {
				return fmt.Errorf("unknown format %q", args[0])
			}
			set := swapchain.FormatSet{}
			for _, name := range supported {
				f, ok := gfx.ParseFormat(name)
				if !ok {
					return fmt.Errorf("unknown format %q", name)
				}
				set = append(set, int64(f))
			}
			got := swapchain.NegotiateFormat(set, format)
			style := enabledStyle
			if !set.SupportsFormat(int64(got)) {
				style = disabledStyle
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%v -> %s\n", format, style.Render(got.String()))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&supported, "supported", nil, "Formats the runtime supports")
	return cmd
}
