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

package ir

import "testing"

func TestMathOperatorEval(t *testing.T) {
	cases := []struct {
		op      MathOperator
		a, b    uint16
		want    uint16
		wantOK  bool
	}{
		{MathAdd, 2, 3, 5, true},
		{MathAdd, 65535, 1, 0, false},
		{MathSub, 5, 3, 2, true},
		{MathSub, 3, 5, 0, false},
		{MathMul, 300, 300, 0, false},
		{MathMul, 3, 4, 12, true},
		{MathDiv, 10, 2, 5, true},
		{MathDiv, 10, 0, 0, false},
	}
	for _, c := range cases {
		got, ok := c.op.Eval(c.a, c.b)
		if ok != c.wantOK {
			t.Fatalf("%v(%d,%d): ok=%v want %v", c.op, c.a, c.b, ok, c.wantOK)
		}
		if ok && got != c.want {
			t.Fatalf("%v(%d,%d)=%d want %d", c.op, c.a, c.b, got, c.want)
		}
	}
}

func TestLogicalOperatorCmp(t *testing.T) {
	if !OpLess.Cmp(1, 2) {
		t.Fatal("1 < 2 should hold")
	}
	if OpLess.Cmp(2, 1) {
		t.Fatal("2 < 1 should not hold")
	}
	if !OpNEqual.Cmp(1, 2) || OpNEqual.Cmp(1, 1) {
		t.Fatal("NEqual wrong")
	}
}

func TestParseLogicalOperator(t *testing.T) {
	for tok, want := range logicalOperatorTokens {
		got, ok := ParseLogicalOperator(tok)
		if !ok || got != want {
			t.Fatalf("ParseLogicalOperator(%q) = %v,%v", tok, got, ok)
		}
	}
	if _, ok := ParseLogicalOperator("!="); ok {
		t.Fatal("expected failure for unknown token")
	}
}

func TestValidVirtualKey(t *testing.T) {
	valid := []uint16{8, 9, 13, 16, 17, 18, 27, 32, 33, 40, 45, 46, 48, 57, 65, 90, 96, 105, 106, 111, 112, 127, 144, 145, 186, 222}
	for _, v := range valid {
		if !ValidVirtualKey(v) {
			t.Fatalf("expected %d to be a valid virtual key", v)
		}
	}
	invalid := []uint16{0, 7, 10, 19, 26, 28, 31, 41, 44, 47, 58, 64, 91, 95, 128, 143, 146, 185, 223, 65535}
	for _, v := range invalid {
		if ValidVirtualKey(v) {
			t.Fatalf("expected %d to be an invalid virtual key", v)
		}
	}
}

func TestParsePhysicalKey(t *testing.T) {
	k, ok := ParsePhysicalKey("c")
	if !ok || k.Ch != 'c' || k.Ctrl {
		t.Fatalf("ParsePhysicalKey(c) = %+v,%v", k, ok)
	}
	k, ok = ParsePhysicalKey("^c")
	if !ok || k.Ch != 'c' || !k.Ctrl {
		t.Fatalf("ParsePhysicalKey(^c) = %+v,%v", k, ok)
	}
	if _, ok := ParsePhysicalKey(""); ok {
		t.Fatal("empty literal should be invalid")
	}
	if _, ok := ParsePhysicalKey("ab"); ok {
		t.Fatal("two-char non-ctrl literal should be invalid")
	}
	if _, ok := ParsePhysicalKey(" "); ok {
		t.Fatal("whitespace should be invalid")
	}
	if _, ok := ParsePhysicalKey("\t"); ok {
		t.Fatal("tab should be invalid")
	}
}
