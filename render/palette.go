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
	"github.com/lucasb-eyer/go-colorful"
)

// rgb is an 8-bit-per-channel color, the unit DrawFlood/UseBrush/UsePen
// and friends pass the VM's 16-bit r,g,b operands through as (Oriel
// clamps each channel to a byte; see clamp8).
type rgb struct {
	R, G, B uint8
}

// ansi16 is the standard 16-color VGA-era palette, in the same index
// order a Windows 3.x console would have used: the 8 low-intensity
// colors followed by their 8 high-intensity (bold) counterparts.
var ansi16 = [16]rgb{
	{0x00, 0x00, 0x00}, // black
	{0x80, 0x00, 0x00}, // dark red
	{0x00, 0x80, 0x00}, // dark green
	{0x80, 0x80, 0x00}, // dark yellow
	{0x00, 0x00, 0x80}, // dark blue
	{0x80, 0x00, 0x80}, // dark magenta
	{0x00, 0x80, 0x80}, // dark cyan
	{0xc0, 0xc0, 0xc0}, // light gray
	{0x80, 0x80, 0x80}, // dark gray
	{0xff, 0x00, 0x00}, // red
	{0x00, 0xff, 0x00}, // green
	{0xff, 0xff, 0x00}, // yellow
	{0x00, 0x00, 0xff}, // blue
	{0xff, 0x00, 0xff}, // magenta
	{0x00, 0xff, 0xff}, // cyan
	{0xff, 0xff, 0xff}, // white
}

func toColorful(c rgb) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// fitANSI16 finds the nearest of the 16 standard colors to c by CIE76
// distance in Lab space, adapted from the teacher's color.Find: instead
// of matching against an arbitrary caller-supplied palette, the palette
// here is fixed to the 16 colors a terminal can reliably render.
func fitANSI16(c rgb) int {
	best := 0
	bestDist := toColorful(c).DistanceCIE76(toColorful(ansi16[0]))
	target := toColorful(c)
	for i := 1; i < len(ansi16); i++ {
		d := target.DistanceCIE76(toColorful(ansi16[i]))
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// clamp8 reduces a 16-bit RGB channel operand to 8 bits. Oriel's DRAW*
// color operands are IntOperands (range 0..65535 like every other
// integer); values above 255 saturate rather than wrapping, since a
// script author almost certainly meant "as bright as this channel gets".
func clamp8(v uint16) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}
