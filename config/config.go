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

// Package config holds the parsed command-line configuration shared by the
// parser and the VM: pedantic resource limits and the language dialect.
package config

import "fmt"

// Dialect selects the Oriel language standard a script is parsed against.
// Features absent from the selected dialect are rejected at parse time.
type Dialect int

const (
	// Win30 is the original, more restrictive dialect: with Pedantic set,
	// string-variable references in string-operand positions are
	// rejected. Without Pedantic they are accepted as under Win31.
	Win30 Dialect = iota
	// Win31 is the default dialect and permits string variables anywhere
	// a string literal is accepted.
	Win31
)

// String implements fmt.Stringer.
func (d Dialect) String() string {
	switch d {
	case Win30:
		return "win3.0"
	case Win31:
		return "win3.1"
	default:
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
}

// ParseDialect decodes a --std flag value. Unrecognized values are an error.
func ParseDialect(s string) (Dialect, error) {
	switch s {
	case "win3.0":
		return Win30, nil
	case "win3.1":
		return Win31, nil
	default:
		return Win31, fmt.Errorf("config: unknown dialect %q (want win3.0 or win3.1)", s)
	}
}

// Limits are the historical pedantic-mode resource caps (Glossary: Pedantic
// mode). They are fixed, not configurable per instance.
const (
	MaxIntVars    = 500
	MaxStringVars = 200
	MaxLabels     = 500
)

// Config is the run configuration threaded through the parser and the VM.
// It is produced once from CLI flags and is otherwise immutable for the
// lifetime of a run.
type Config struct {
	// Pedantic enables the historical resource caps (MaxIntVars,
	// MaxStringVars, MaxLabels) and dialect-strictness checks.
	Pedantic bool
	// Dialect selects the language feature set.
	Dialect Dialect
	// Charset overrides the default codepage render uses to decode
	// DrawText/UseCaption/MessageBox payloads and script source bytes. Empty
	// means "use the dialect default" (see render.DefaultCharset).
	Charset string
}

// New builds a Config from already-decoded flag values. It applies no
// defaults of its own; the --std flag's default supplies Win31.
func New(pedantic bool, dialect Dialect, charset string) Config {
	return Config{Pedantic: pedantic, Dialect: dialect, Charset: charset}
}
