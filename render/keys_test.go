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
	"testing"

	"oriel/ir"
)

func TestDecodePlainPrintable(t *testing.T) {
	ev, n := decodeInput([]byte("a"))
	if n != 1 || ev.isVirtual || ev.physical.Ch != 'a' || ev.physical.Ctrl {
		t.Fatalf("ev = %+v, n = %d", ev, n)
	}
}

func TestDecodeCtrlByte(t *testing.T) {
	ev, n := decodeInput([]byte{0x03}) // Ctrl-C
	if n != 1 || ev.isVirtual || ev.physical.Ch != 'c' || !ev.physical.Ctrl {
		t.Fatalf("ev = %+v, n = %d", ev, n)
	}
}

func TestDecodeArrowKey(t *testing.T) {
	ev, n := decodeInput([]byte("\x1b[A"))
	if n != 3 || !ev.isVirtual || ev.virtual != ir.VKUp {
		t.Fatalf("ev = %+v, n = %d", ev, n)
	}
}

func TestDecodeTildeKey(t *testing.T) {
	ev, n := decodeInput([]byte("\x1b[3~"))
	if n != 4 || !ev.isVirtual || ev.virtual != ir.VKDelete {
		t.Fatalf("ev = %+v, n = %d", ev, n)
	}
}

func TestDecodeIncompleteSequenceWaitsForMore(t *testing.T) {
	_, n := decodeInput([]byte("\x1b["))
	if n != 0 {
		t.Fatalf("n = %d, want 0 (incomplete)", n)
	}
}

func TestDecodeSGRMousePress(t *testing.T) {
	ev, n := decodeInput([]byte("\x1b[<0;10;5M"))
	if n == 0 {
		t.Fatal("expected a complete mouse sequence")
	}
	if !ev.isMouse || !ev.mousePress || ev.mouseX != 9 || ev.mouseY != 4 {
		t.Fatalf("ev = %+v", ev)
	}
}

func TestDecodeSGRMouseRelease(t *testing.T) {
	ev, _ := decodeInput([]byte("\x1b[<0;1;1m"))
	if !ev.isMouse || ev.mousePress {
		t.Fatalf("ev = %+v, want a release", ev)
	}
}
