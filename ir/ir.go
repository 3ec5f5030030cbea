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

// Package ir defines the value types, command variants and Program
// aggregate that the parser produces and the VM consumes. It has no
// behavior of its own beyond small value-object helpers (operator
// evaluation, enum decoding) — the parser builds a Program, the vm package
// walks it.
package ir

// Identifier is a symbolic name: a variable, a label, or a callback target.
// Equality is by textual content, and identifiers are case-sensitive.
type Identifier string

// IntOperand is either a 16-bit literal or a reference to an integer
// variable, resolved by the VM at evaluation time.
type IntOperand struct {
	Literal  uint16
	Var      Identifier
	IsLiteral bool
}

// Int makes a literal IntOperand.
func Int(v uint16) IntOperand { return IntOperand{Literal: v, IsLiteral: true} }

// IntVar makes a variable-reference IntOperand.
func IntVar(id Identifier) IntOperand { return IntOperand{Var: id, IsLiteral: false} }

// StringOperand is either a string literal or a reference to a string
// variable (rejected by the parser only for pedantic win3.0 runs; see
// config.Dialect).
type StringOperand struct {
	Literal   string
	Var       Identifier
	IsLiteral bool
}

// Str makes a literal StringOperand.
func Str(v string) StringOperand { return StringOperand{Literal: v, IsLiteral: true} }

// StrVar makes a variable-reference StringOperand.
func StrVar(id Identifier) StringOperand { return StringOperand{Var: id, IsLiteral: false} }
