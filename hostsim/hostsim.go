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

// Package hostsim is a recording, injectable host.Host test double,
// adapted from the teacher's SimulationScreen (simulation.go): a
// channel of pending input events fed by Inject* calls, and a trace of
// every Host method invoked, for exercising vm scenarios headlessly.
package hostsim

import (
	"fmt"
	"sync"
	"time"

	"oriel/host"
	"oriel/ir"
)

// Host is a host.Host that records every call it receives instead of
// rendering anything, and serves WaitInput from a queue of events
// pushed by the Inject* methods before (or concurrently with) a run.
type Host struct {
	mu     sync.Mutex
	trace  []string
	events chan *host.Input

	// MessageBoxResult is returned by every MessageBox call while
	// HasMessageBoxResult is true; otherwise MessageBox returns the
	// dialog's own default-button operand.
	MessageBoxResult    uint16
	HasMessageBoxResult bool

	Keyboard map[host.ResolvedKey]ir.Identifier
	Menu     []ir.MenuCategory
	Mouse    []host.ResolvedMouseRegion
	WaitMode ir.WaitMode
}

var _ host.Host = (*Host)(nil)

// New returns an empty Host with its event queue ready to receive
// injections.
func New() *Host {
	return &Host{events: make(chan *host.Input, 16)}
}

// Trace returns the recorded call sequence in order.
func (h *Host) Trace() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.trace))
	copy(out, h.trace)
	return out
}

func (h *Host) record(format string, args ...any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.trace = append(h.trace, fmt.Sprintf(format, args...))
}

// InjectEnd queues a window-closed event.
func (h *Host) InjectEnd() { h.events <- &host.Input{Kind: host.InputEnd} }

// InjectGoto queues a keyboard/menu-bound jump to label.
func (h *Host) InjectGoto(label ir.Identifier) {
	h.events <- &host.Input{Kind: host.InputGoto, Label: label}
}

// InjectMouse queues a mouse-region hit at (x,y).
func (h *Host) InjectMouse(label, xvar, yvar ir.Identifier, x, y uint16) {
	h.events <- &host.Input{Kind: host.InputMouse, MouseLabel: label, MouseXVar: xvar, MouseYVar: yvar, MouseX: x, MouseY: y}
}

func (h *Host) Beep() { h.record("beep()") }

func (h *Host) DrawArc(x1, y1, x2, y2, x3, y3, x4, y4 uint16) error {
	h.record("draw_arc(%d,%d,%d,%d,%d,%d,%d,%d)", x1, y1, x2, y2, x3, y3, x4, y4)
	return nil
}

func (h *Host) DrawChord(x1, y1, x2, y2, x3, y3, x4, y4 uint16) error {
	h.record("draw_chord(%d,%d,%d,%d,%d,%d,%d,%d)", x1, y1, x2, y2, x3, y3, x4, y4)
	return nil
}

func (h *Host) DrawPie(x1, y1, x2, y2, x3, y3, x4, y4 uint16) error {
	h.record("draw_pie(%d,%d,%d,%d,%d,%d,%d,%d)", x1, y1, x2, y2, x3, y3, x4, y4)
	return nil
}

func (h *Host) DrawEllipse(x1, y1, x2, y2 uint16) error {
	h.record("draw_ellipse(%d,%d,%d,%d)", x1, y1, x2, y2)
	return nil
}

func (h *Host) DrawRectangle(x1, y1, x2, y2 uint16) error {
	h.record("draw_rectangle(%d,%d,%d,%d)", x1, y1, x2, y2)
	return nil
}

func (h *Host) DrawRoundRectangle(x1, y1, x2, y2, x3, y3 uint16) error {
	h.record("draw_round_rectangle(%d,%d,%d,%d,%d,%d)", x1, y1, x2, y2, x3, y3)
	return nil
}

func (h *Host) DrawLine(x1, y1, x2, y2 uint16) error {
	h.record("draw_line(%d,%d,%d,%d)", x1, y1, x2, y2)
	return nil
}

func (h *Host) DrawBitmap(x, y uint16, filename string) error {
	h.record("draw_bitmap(%d,%d,%q)", x, y, filename)
	return nil
}

func (h *Host) DrawSizedBitmap(x1, y1, x2, y2 uint16, filename string) error {
	h.record("draw_sized_bitmap(%d,%d,%d,%d,%q)", x1, y1, x2, y2, filename)
	return nil
}

func (h *Host) DrawFlood(x, y, r, g, b uint16) error {
	h.record("draw_flood(%d,%d,%d,%d,%d)", x, y, r, g, b)
	return nil
}

func (h *Host) DrawText(x, y uint16, text string) error {
	h.record("draw_text(%d,%d,%q)", x, y, text)
	return nil
}

func (h *Host) DrawNumber(x, y, n uint16) error {
	h.record("draw_number(%d,%d,%d)", x, y, n)
	return nil
}

func (h *Host) DrawBackground() error {
	h.record("draw_background()")
	return nil
}

func (h *Host) UseBackground(option ir.BackgroundTransparency, r, g, b uint16) error {
	h.record("use_background(%v,%d,%d,%d)", option, r, g, b)
	return nil
}

func (h *Host) UseBrush(option ir.BrushType, r, g, b uint16) error {
	h.record("use_brush(%v,%d,%d,%d)", option, r, g, b)
	return nil
}

func (h *Host) UsePen(option ir.PenType, width, r, g, b uint16) error {
	h.record("use_pen(%v,%d,%d,%d,%d)", option, width, r, g, b)
	return nil
}

func (h *Host) UseFont(name string, width, height uint16, bold ir.FontWeight, italic ir.FontSlant, underline ir.FontUnderline, r, g, b uint16) error {
	h.record("use_font(%q,%d,%d,%d,%d,%d,%d,%d,%d)", name, width, height, bold, italic, underline, r, g, b)
	return nil
}

func (h *Host) UseCaption(text string) error {
	h.record("use_caption(%q)", text)
	return nil
}

func (h *Host) UseCoordinates(option ir.Coordinates) error {
	h.record("use_coordinates(%v)", option)
	return nil
}

func (h *Host) SetWindow(option ir.SetWindowOption) error {
	h.record("set_window(%d)", option)
	return nil
}

func (h *Host) SetWaitMode(mode ir.WaitMode) error {
	h.WaitMode = mode
	h.record("set_wait_mode(%d)", mode)
	return nil
}

func (h *Host) MessageBox(typ ir.MessageBoxType, defaultButton uint16, icon ir.MessageBoxIcon, text, caption string) (uint16, error) {
	h.record("message_box(%d,%d,%d,%q,%q)", typ, defaultButton, icon, text, caption)
	if h.HasMessageBoxResult {
		return h.MessageBoxResult, nil
	}
	return defaultButton, nil
}

func (h *Host) Run(commandLine string) error {
	h.record("run(%q)", commandLine)
	return nil
}

func (h *Host) SetKeyboard(bindings map[host.ResolvedKey]ir.Identifier) error {
	h.Keyboard = bindings
	h.record("set_keyboard(%d bindings)", len(bindings))
	return nil
}

func (h *Host) SetMenu(categories []ir.MenuCategory) error {
	h.Menu = categories
	h.record("set_menu(%d categories)", len(categories))
	return nil
}

func (h *Host) SetMouse(regions []host.ResolvedMouseRegion) error {
	h.Mouse = regions
	h.record("set_mouse(%s)", formatRegions(regions))
	return nil
}

func (h *Host) WaitInput(ms *uint16) (*host.Input, error) {
	if ms == nil {
		h.record("wait_input(None)")
		return <-h.events, nil
	}
	h.record("wait_input(Some(%d))", *ms)
	select {
	case ev := <-h.events:
		return ev, nil
	case <-time.After(time.Duration(*ms) * time.Millisecond):
		return nil, nil
	}
}

func formatRegions(regions []host.ResolvedMouseRegion) string {
	s := "["
	for i, r := range regions {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("{(%d,%d,%d,%d)->(%s,%s,%s)}", r.X1, r.Y1, r.X2, r.Y2, r.Label, r.XVar, r.YVar)
	}
	return s + "]"
}
