// Copyright 2015 The TCell Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use file except in compliance with the License.
// You may obtain a copy of the license at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cmd wires the oriel CLI's cobra commands, following the same
// "one constructor per subcommand, assembled in NewRootCmd" shape the
// pack's own multi-command tools use.
package cmd

import (
	"github.com/spf13/cobra"

	"oriel/internal/diag"
)

// NewRootCmd builds the oriel root command.
func NewRootCmd() *cobra.Command {
	var noColor bool

	root := &cobra.Command{
		Use:   "oriel",
		Short: "Interpreter for the Oriel scripting language",
		Long:  "oriel parses and executes Oriel scripts, the Windows 3.x-era line-oriented language that drives a window, drawing surface, dialogs, and keyboard/mouse input.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				diag.SetEnabled(false)
			}
		},
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")

	root.AddCommand(newRunCmd())
	return root
}
