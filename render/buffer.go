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
	"github.com/mattn/go-runewidth"
)

// cell is one character position, adapted from the teacher's own Cell:
// a rune, its display width, and the style to paint it with, plus a
// dirty flag so flush only repaints what changed.
type cell struct {
	ch    rune
	width uint8
	style style
	dirty bool
}

// buffer is the window's cell grid. It plays the role the teacher's
// Screen implementations give their []Cell backing array: sized to the
// window, cleared and resized on demand, individually dirtied by every
// draw operation and swept clean by flush.
type buffer struct {
	w, h  int
	cells []cell
}

func newBuffer(w, h int) *buffer {
	b := &buffer{w: w, h: h, cells: make([]cell, w*h)}
	clearCells(b.cells, styleDefault)
	return b
}

// clearCells blanks every cell to a space in the given style, mirroring
// the teacher's package-level ClearCells helper.
func clearCells(c []cell, s style) {
	for i := range c {
		c[i].ch = ' '
		c[i].width = 1
		c[i].style = s
		c[i].dirty = true
	}
}

// resize reallocates the grid for new dimensions, preserving the
// overlapping region and marking it dirty, the way the teacher's
// ResizeCells does.
func (b *buffer) resize(neww, newh int) {
	if neww == b.w && newh == b.h {
		return
	}
	newc := make([]cell, neww*newh)
	clearCells(newc, styleDefault)
	for row := 0; row < newh && row < b.h; row++ {
		for col := 0; col < neww && col < b.w; col++ {
			newc[row*neww+col] = b.cells[row*b.w+col]
			newc[row*neww+col].dirty = true
		}
	}
	b.w, b.h, b.cells = neww, newh, newc
}

func (b *buffer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.w && y < b.h
}

// setCell writes a single rune cell, skipping out-of-bounds writes
// rather than erroring: spec.md treats drawing past the window edge as
// silently clipped, matching a GDI canvas.
func (b *buffer) setCell(x, y int, r rune, s style) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.w + x
	w := runewidth.RuneWidth(r)
	if w < 1 {
		w = 1
	}
	b.cells[idx] = cell{ch: r, width: uint8(w), style: s, dirty: true}
}

// writeText lays out s starting at (x, y), one rune per cell, clipping
// at the right edge; wide runes occupy width cells with the overflow
// cells left blank, per go-runewidth's east-asian width table.
func (b *buffer) writeText(x, y int, s string, st style) {
	col := x
	for _, r := range s {
		if col >= b.w {
			return
		}
		w := runewidth.RuneWidth(r)
		if w < 1 {
			w = 1
		}
		b.setCell(col, y, r, st)
		col += w
	}
}

// fillRect paints every cell in [x1,y1]..[x2,y2] (inclusive) with r in
// style st, used by the filled-shape Draw* commands.
func (b *buffer) fillRect(x1, y1, x2, y2 int, r rune, st style) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			b.setCell(x, y, r, st)
		}
	}
}

// strokeRect paints just the border of the rectangle, used by the
// unfilled outline commands (DrawRectangle et al. draw both an outline
// in the pen color and, if the brush isn't BrushNull, a fill).
func (b *buffer) strokeRect(x1, y1, x2, y2 int, r rune, st style) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	for x := x1; x <= x2; x++ {
		b.setCell(x, y1, r, st)
		b.setCell(x, y2, r, st)
	}
	for y := y1; y <= y2; y++ {
		b.setCell(x1, y, r, st)
		b.setCell(x2, y, r, st)
	}
}

// line draws a straight line with Bresenham's algorithm, the standard
// way a character-cell renderer stands in for GDI's LineTo.
func (b *buffer) line(x1, y1, x2, y2 int, r rune, st style) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy
	x, y := x1, y1
	for {
		b.setCell(x, y, r, st)
		if x == x2 && y == y2 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
