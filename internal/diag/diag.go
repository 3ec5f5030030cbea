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

// Package diag renders CLI diagnostics (parse errors, runtime errors)
// with the same auto-detected-TTY styling convention the rest of the
// corpus uses for its own terminal output.
package diag

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var out = termenv.NewOutput(os.Stderr)
var enabled = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

// SetEnabled overrides the auto-detected TTY check (wired to --no-color).
func SetEnabled(on bool) { enabled = on }

// Error formats a fatal diagnostic: a bold red "error:" tag followed by
// the message, in the shape every Go CLI in the pack uses for
// os.Stderr failure output.
func Error(format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	tag := "error:"
	if enabled {
		tag = out.String("error:").Bold().Foreground(termenv.ANSIRed).String()
	}
	return tag + " " + msg
}

// ParseError formats a parser diagnostic with its source position,
// rendering the line/column faint when styling is enabled.
func ParseError(line, col int, lexeme, msg string) string {
	loc := fmt.Sprintf("line %d, col %d", line, col)
	if enabled {
		loc = out.String(loc).Faint().String()
	}
	if lexeme != "" {
		return fmt.Sprintf("%s: %s (near %q)", loc, msg, lexeme)
	}
	return fmt.Sprintf("%s: %s", loc, msg)
}
