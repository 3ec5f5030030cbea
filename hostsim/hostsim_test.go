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

package hostsim

import "testing"

func TestTraceRecordsCalls(t *testing.T) {
	h := New()
	h.Beep()
	h.DrawNumber(1, 2, 3)
	trace := h.Trace()
	if len(trace) != 2 || trace[0] != "beep()" || trace[1] != "draw_number(1,2,3)" {
		t.Fatalf("trace = %v", trace)
	}
}

func TestInjectEndUnblocksWaitInput(t *testing.T) {
	h := New()
	h.InjectEnd()
	in, err := h.WaitInput(nil)
	if err != nil {
		t.Fatalf("WaitInput: %v", err)
	}
	if in == nil {
		t.Fatal("expected an Input, got nil")
	}
}

func TestWaitInputTimeoutReturnsNil(t *testing.T) {
	h := New()
	ms := uint16(1)
	in, err := h.WaitInput(&ms)
	if err != nil {
		t.Fatalf("WaitInput: %v", err)
	}
	if in != nil {
		t.Fatalf("expected nil on elapsed timeout, got %+v", in)
	}
}
