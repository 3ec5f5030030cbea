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

import "testing"

func TestBufferSetCellClipsOutOfBounds(t *testing.T) {
	b := newBuffer(4, 4)
	b.setCell(-1, 0, 'x', styleDefault)
	b.setCell(10, 10, 'x', styleDefault)
	for _, c := range b.cells {
		if c.ch == 'x' {
			t.Fatal("out-of-bounds setCell wrote a cell")
		}
	}
}

func TestBufferResizePreservesOverlap(t *testing.T) {
	b := newBuffer(3, 3)
	b.setCell(1, 1, 'Z', styleDefault)
	b.resize(5, 5)
	if b.w != 5 || b.h != 5 {
		t.Fatalf("resize dims = %dx%d, want 5x5", b.w, b.h)
	}
	if got := b.cells[1*5+1].ch; got != 'Z' {
		t.Fatalf("preserved cell = %q, want 'Z'", got)
	}
}

func TestBufferFillRectNormalizesCorners(t *testing.T) {
	b := newBuffer(5, 5)
	b.fillRect(3, 3, 1, 1, '#', styleDefault)
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			if b.cells[y*5+x].ch != '#' {
				t.Fatalf("cell (%d,%d) not filled", x, y)
			}
		}
	}
}

func TestBufferLineEndpoints(t *testing.T) {
	b := newBuffer(10, 10)
	b.line(0, 0, 5, 0, '-', styleDefault)
	if b.cells[0].ch != '-' || b.cells[5].ch != '-' {
		t.Fatal("line did not reach both endpoints")
	}
}

func TestBufferWriteTextClipsAtEdge(t *testing.T) {
	b := newBuffer(3, 1)
	b.writeText(0, 0, "hello", styleDefault)
	if b.cells[0].ch != 'h' || b.cells[2].ch != 'l' {
		t.Fatalf("unexpected cells: %q %q", b.cells[0].ch, b.cells[2].ch)
	}
}
