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

func TestFitANSI16ExactMatches(t *testing.T) {
	for i, c := range ansi16 {
		if got := fitANSI16(c); got != i {
			t.Fatalf("fitANSI16(%v) = %d, want %d", c, got, i)
		}
	}
}

func TestFitANSI16NearestNeighbor(t *testing.T) {
	got := fitANSI16(rgb{0xfe, 0x02, 0x02})
	if got != 9 {
		t.Fatalf("fitANSI16(near-red) = %d, want 9 (red)", got)
	}
}

func TestClamp8Saturates(t *testing.T) {
	if clamp8(65535) != 255 {
		t.Fatalf("clamp8(65535) = %d, want 255", clamp8(65535))
	}
	if clamp8(10) != 10 {
		t.Fatalf("clamp8(10) = %d, want 10", clamp8(10))
	}
}
