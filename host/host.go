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

// Package host defines the abstract contract the VM drives: window,
// drawing surface, dialogs, and input capture. It is the one boundary
// between the language engine and a concrete GUI — production supplies a
// rendering implementation (see package render), tests supply a recording
// one (see package hostsim). Neither this package nor its callers know
// which.
package host

import (
	"fmt"

	"oriel/ir"
)

// Host is the capability set the VM dispatches every non-control-flow
// command through. It is intentionally a single, flat interface — one
// abstraction boundary, not a hierarchy of widget types — mirroring the
// teacher's own Screen interface (one handle, ~a dozen methods) scaled up
// to Oriel's larger command set.
type Host interface {
	Beep()

	DrawArc(x1, y1, x2, y2, x3, y3, x4, y4 uint16) error
	DrawChord(x1, y1, x2, y2, x3, y3, x4, y4 uint16) error
	DrawPie(x1, y1, x2, y2, x3, y3, x4, y4 uint16) error
	DrawEllipse(x1, y1, x2, y2 uint16) error
	DrawRectangle(x1, y1, x2, y2 uint16) error
	DrawRoundRectangle(x1, y1, x2, y2, x3, y3 uint16) error
	DrawLine(x1, y1, x2, y2 uint16) error
	DrawBitmap(x, y uint16, filename string) error
	DrawSizedBitmap(x1, y1, x2, y2 uint16, filename string) error
	DrawFlood(x, y, r, g, b uint16) error
	DrawText(x, y uint16, text string) error
	DrawNumber(x, y uint16, n uint16) error
	DrawBackground() error

	UseBackground(option ir.BackgroundTransparency, r, g, b uint16) error
	UseBrush(option ir.BrushType, r, g, b uint16) error
	UsePen(option ir.PenType, width, r, g, b uint16) error
	UseFont(name string, width, height uint16, bold ir.FontWeight, italic ir.FontSlant, underline ir.FontUnderline, r, g, b uint16) error
	UseCaption(text string) error
	UseCoordinates(option ir.Coordinates) error
	SetWindow(option ir.SetWindowOption) error
	// SetWaitMode records the blocking behavior WaitInput should use on
	// its next call; the Host, not the VM, interprets Null vs Focus.
	SetWaitMode(mode ir.WaitMode) error

	// MessageBox returns the identifier of the button the user chose, or
	// defaultButton if the dialog closed without an explicit selection.
	MessageBox(typ ir.MessageBoxType, defaultButton uint16, icon ir.MessageBoxIcon, text, caption string) (uint16, error)

	Run(commandLine string) error

	SetKeyboard(bindings map[ResolvedKey]ir.Identifier) error
	SetMenu(categories []ir.MenuCategory) error
	SetMouse(regions []ResolvedMouseRegion) error

	// WaitInput blocks (subject to the current WaitMode and ms) until a
	// bound input event occurs or the window closes, then returns the
	// corresponding Input, or nil if the wait simply elapsed with no
	// match (ms != nil case only).
	WaitInput(ms *uint16) (*Input, error)
}

// ResolvedKey is an ir.Key with its Virtual IntOperand evaluated to a
// concrete VirtualKey by the VM (and already validated against
// ir.ValidVirtualKey) before being handed to the Host.
type ResolvedKey struct {
	IsPhysical bool
	Virtual    ir.VirtualKey
	Physical   ir.PhysicalKey
}

// ResolvedMouseRegion is a ir.MouseRegion with every IntOperand resolved
// to a concrete coordinate by the VM before being handed to the Host.
type ResolvedMouseRegion struct {
	X1, Y1, X2, Y2 uint16
	Label          ir.Identifier
	XVar, YVar     ir.Identifier
}

// InputKind tags the variant of Input carried back from WaitInput.
type InputKind int

const (
	// InputEnd indicates the host window was closed.
	InputEnd InputKind = iota
	// InputGoto indicates a bound keyboard key or menu item fired.
	InputGoto
	// InputMouse indicates a bound mouse region was hit.
	InputMouse
)

// Input is the tagged result of a WaitInput call.
type Input struct {
	Kind InputKind

	// Goto: valid when Kind == InputGoto.
	Label ir.Identifier

	// Mouse: valid when Kind == InputMouse.
	MouseLabel  ir.Identifier
	MouseXVar   ir.Identifier
	MouseYVar   ir.Identifier
	MouseX      uint16
	MouseY      uint16
}

// Error wraps any failure a Host operation reports, so the VM can
// propagate it as a RuntimeError without inspecting the Host's internals.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("host: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap adapts any Host-side error into a *Error tagged with the
// operation name, for uniform propagation by the VM.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
