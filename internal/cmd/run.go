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

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"oriel/config"
	"oriel/host"
	"oriel/hostsim"
	"oriel/internal/diag"
	"oriel/parse"
	"oriel/render"
	"oriel/vm"
)

func newRunCmd() *cobra.Command {
	var pedantic bool
	var std string
	var charset string
	var headless bool

	cmd := &cobra.Command{
		Use:   "run <script.orl>",
		Short: "Parse and execute an Oriel script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(args[0], pedantic, std, charset, headless)
		},
	}

	cmd.Flags().BoolVar(&pedantic, "pedantic", false, "enforce the historical resource caps (500 labels, 500 int vars, 200 string vars)")
	cmd.Flags().StringVar(&std, "std", "win3.1", "language dialect: win3.0 or win3.1")
	cmd.Flags().StringVar(&charset, "charset", "", "override the dialect's default codepage for text decoding")
	cmd.Flags().BoolVar(&headless, "headless", false, "use the recording host stub instead of the terminal, printing a call trace to stdout")

	return cmd
}

// runScript wires the three core packages (parse, host implementation,
// vm) together and turns any failure into a diag-formatted message on
// stderr, matching spec.md §6.3: exit 0 on normal termination, non-zero
// with a diagnostic otherwise.
func runScript(path string, pedantic bool, std, charset string, headless bool) error {
	dialect, err := config.ParseDialect(std)
	if err != nil {
		return fmt.Errorf("%s", diag.Error("%s", err))
	}
	cfg := config.New(pedantic, dialect, charset)

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s", diag.Error("reading %s: %s", path, err))
	}
	if len(raw) == 0 || raw[len(raw)-1] != '\n' {
		raw = append(raw, '\n')
	}
	src, err := render.DecodeSource(raw, cfg)
	if err != nil {
		return fmt.Errorf("%s", diag.Error("decoding %s: %s", path, err))
	}

	prog, err := parse.Parse(cfg, src)
	if err != nil {
		if perr, ok := err.(*parse.Error); ok {
			return fmt.Errorf("%s", diag.ParseError(perr.Line, perr.Col, perr.Lexeme, perr.Kind.String()))
		}
		return fmt.Errorf("%s", diag.Error("%s", err))
	}

	h, closeHost, err := newHost(cfg, headless)
	if err != nil {
		return fmt.Errorf("%s", diag.Error("initializing host: %s", err))
	}
	defer closeHost()

	if err := vm.New(prog, cfg, h).Run(); err != nil {
		return fmt.Errorf("%s", diag.Error("%s", err))
	}
	return nil
}

// newHost builds the Host a run uses: the recording hostsim stub under
// --headless (its trace is printed once the run ends), or the terminal-
// rendered render.TermHost otherwise.
func newHost(cfg config.Config, headless bool) (host.Host, func(), error) {
	if headless {
		sim := hostsim.New()
		return sim, func() {
			for _, line := range sim.Trace() {
				fmt.Println(line)
			}
		}, nil
	}
	th, err := render.New(os.Stdin, os.Stdout, cfg)
	if err != nil {
		return nil, func() {}, err
	}
	return th, func() { th.Close() }, nil
}
