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

package render

import (
	"strconv"
	"strings"

	"oriel/ir"
)

// rawEvent is one decoded unit of raw terminal input: either a key (as
// a ResolvedKey-shaped pair) or a mouse click at a cell coordinate.
// termhost's reader goroutine turns a stream of bytes into a stream of
// these before matching them against the script's bound regions.
type rawEvent struct {
	isMouse bool

	isVirtual bool
	virtual   ir.VirtualKey
	physical  ir.PhysicalKey

	mouseX, mouseY int
	mousePress     bool
}

// csiFinalToVirtual maps the final byte of a CSI escape sequence to the
// virtual key it represents (csiTildeToVirtual below covers the "n~"
// forms keyed by their parameter string). Only the keys a
// VT100-family terminal can actually report are listed; anything else
// falls through to being ignored.
var csiFinalToVirtual = map[byte]ir.VirtualKey{
	'A': ir.VKUp,
	'B': ir.VKDown,
	'C': ir.VKRight,
	'D': ir.VKLeft,
	'H': ir.VKHome,
	'F': ir.VKEnd,
}

var csiTildeToVirtual = map[string]ir.VirtualKey{
	"1": ir.VKHome,
	"2": ir.VKInsert,
	"3": ir.VKDelete,
	"4": ir.VKEnd,
	"5": ir.VKPgUp,
	"6": ir.VKPgDn,
}

// decodeInput consumes as much of buf as forms one complete event and
// returns it along with the number of bytes consumed. consumed == 0
// means buf doesn't yet hold a full escape sequence (the caller should
// read more).
func decodeInput(buf []byte) (rawEvent, int) {
	if len(buf) == 0 {
		return rawEvent{}, 0
	}
	if buf[0] != 0x1b {
		return decodePlainByte(buf[0]), 1
	}
	if len(buf) == 1 {
		return rawEvent{isVirtual: true, virtual: ir.VKEscape}, 1
	}
	if buf[1] != '[' && buf[1] != 'O' {
		// Unrecognized escape; consume just the ESC itself.
		return rawEvent{isVirtual: true, virtual: ir.VKEscape}, 1
	}
	// Scan for the final byte of the CSI/SS3 sequence: the first byte
	// outside 0x30-0x3f (parameter bytes) and 0x20-0x2f (intermediate).
	i := 2
	for i < len(buf) && buf[i] >= 0x20 && buf[i] <= 0x3f {
		i++
	}
	if i >= len(buf) {
		return rawEvent{}, 0
	}
	final := buf[i]
	params := string(buf[2:i])
	n := i + 1

	if ev, ok := decodeMouseSGR(buf[1], final, params); ok {
		return ev, n
	}
	if final == '~' {
		if vk, ok := csiTildeToVirtual[params]; ok {
			return rawEvent{isVirtual: true, virtual: vk}, n
		}
		return rawEvent{}, n
	}
	if vk, ok := csiFinalToVirtual[final]; ok {
		return rawEvent{isVirtual: true, virtual: vk}, n
	}
	if final >= 'P' && final <= 'S' {
		// ESC O P..S / ESC [ P..S is F1..F4 on most terminals.
		return rawEvent{isVirtual: true, virtual: ir.VirtualKey(uint16(ir.VKF1) + uint16(final-'P'))}, n
	}
	return rawEvent{}, n
}

// decodeMouseSGR recognizes the SGR (1006) mouse protocol: ESC [ < Cb ;
// Cx ; Cy (M|m). It is the one mouse encoding every modern terminal
// emulator (xterm, iTerm2, most Linux consoles) supports without
// ambiguity at coordinates past 223, unlike the legacy X10 encoding.
func decodeMouseSGR(csiKind byte, final byte, params string) (rawEvent, bool) {
	if csiKind != '[' || len(params) == 0 || params[0] != '<' {
		return rawEvent{}, false
	}
	if final != 'M' && final != 'm' {
		return rawEvent{}, false
	}
	fields := strings.Split(params[1:], ";")
	if len(fields) != 3 {
		return rawEvent{}, false
	}
	x, err1 := strconv.Atoi(fields[1])
	y, err2 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil {
		return rawEvent{}, false
	}
	return rawEvent{
		isMouse:    true,
		mouseX:     x - 1,
		mouseY:     y - 1,
		mousePress: final == 'M',
	}, true
}

// decodePlainByte handles an unescaped byte: a printable ASCII key, or
// a control byte naming either a named virtual key (Backspace, Tab,
// Enter) or a Ctrl-modified physical key.
func decodePlainByte(b byte) rawEvent {
	switch b {
	case 8, 127:
		return rawEvent{isVirtual: true, virtual: ir.VKBackSpace}
	case 9:
		return rawEvent{isVirtual: true, virtual: ir.VKTab}
	case 13, 10:
		return rawEvent{isVirtual: true, virtual: ir.VKEnter}
	case 32:
		return rawEvent{isVirtual: true, virtual: ir.VKSpace}
	}
	if b > 0 && b < 0x20 {
		return rawEvent{physical: ir.PhysicalKey{Ch: b + 'a' - 1, Ctrl: true}}
	}
	if b > ' ' && b <= '~' {
		return rawEvent{physical: ir.PhysicalKey{Ch: b}}
	}
	return rawEvent{}
}
