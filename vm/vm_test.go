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

package vm

import (
	"strconv"
	"strings"
	"testing"

	"oriel/config"
	"oriel/hostsim"
	"oriel/ir"
	"oriel/parse"
)

func mustParse(t *testing.T, cfg config.Config, src string) *ir.Program {
	t.Helper()
	prog, err := parse.Parse(cfg, src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return prog
}

// S1 — arithmetic + branch.
func TestScenarioS1ArithmeticBranch(t *testing.T) {
	src := "SET a = 2\nSET b = a + 3\nIF b = 5 THEN\nBEEP\nENDIF\nEND\n"
	prog := mustParse(t, config.Config{}, src)
	h := hostsim.New()
	v := New(prog, config.Config{}, h)
	if err := v.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	trace := h.Trace()
	if len(trace) != 1 || trace[0] != "beep()" {
		t.Fatalf("trace = %v, want [beep()]", trace)
	}
	if got, _ := v.getInt("a"); got != 2 {
		t.Fatalf("a = %d, want 2", got)
	}
	if got, _ := v.getInt("b"); got != 5 {
		t.Fatalf("b = %d, want 5", got)
	}
}

// S2 — gosub/return.
func TestScenarioS2GosubReturn(t *testing.T) {
	src := "GOSUB sub\nEND\nsub:\nBEEP\nRETURN\n"
	prog := mustParse(t, config.Config{}, src)
	h := hostsim.New()
	v := New(prog, config.Config{}, h)
	if err := v.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if trace := h.Trace(); len(trace) != 1 || trace[0] != "beep()" {
		t.Fatalf("trace = %v, want [beep()]", trace)
	}
}

func TestScenarioS2GosubMissingLabel(t *testing.T) {
	src := "GOSUB sub\nGOSUB sub2\nEND\nsub2:\nRETURN\n"
	prog := mustParse(t, config.Config{}, src)
	h := hostsim.New()
	v := New(prog, config.Config{}, h)
	err := v.Run()
	if err != ErrNonexistentLabel {
		t.Fatalf("err = %v, want ErrNonexistentLabel", err)
	}
}

// S3 — overflow.
func TestScenarioS3Overflow(t *testing.T) {
	src := "SET x = 65535\nSET y = x + 1\nEND\n"
	prog := mustParse(t, config.Config{}, src)
	h := hostsim.New()
	v := New(prog, config.Config{}, h)
	err := v.Run()
	if err != ErrMathOperation {
		t.Fatalf("err = %v, want ErrMathOperation", err)
	}
	if trace := h.Trace(); len(trace) != 0 {
		t.Fatalf("trace = %v, want no Host calls", trace)
	}
}

// S4 — forward if patching.
func TestScenarioS4ForwardIfPatching(t *testing.T) {
	src := "IF 1 < 2 THEN\nBEEP\nENDIF\nBEEP\nEND\n"
	prog := mustParse(t, config.Config{}, src)
	h := hostsim.New()
	v := New(prog, config.Config{}, h)
	if err := v.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if trace := h.Trace(); len(trace) != 2 {
		t.Fatalf("trace = %v, want 2 beep() calls", trace)
	}
}

func TestScenarioS4ForwardIfPatchingFalseBranch(t *testing.T) {
	src := "IF 1 > 2 THEN\nBEEP\nENDIF\nBEEP\nEND\n"
	prog := mustParse(t, config.Config{}, src)
	h := hostsim.New()
	v := New(prog, config.Config{}, h)
	if err := v.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if trace := h.Trace(); len(trace) != 1 || trace[0] != "beep()" {
		t.Fatalf("trace = %v, want exactly one beep()", trace)
	}
}

// S5 — wait_input with mouse binding.
func TestScenarioS5WaitInputMouse(t *testing.T) {
	src := strings.Join([]string{
		"SETMOUSE 0 0 100 100 hit mx my",
		"WAITINPUT",
		"END",
		"hit:",
		"DRAWNUMBER mx my 42",
		"END",
	}, "\n")
	prog := mustParse(t, config.Config{}, src)
	h := hostsim.New()
	h.InjectMouse("hit", "mx", "my", 50, 60)
	v := New(prog, config.Config{}, h)
	if err := v.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	trace := h.Trace()
	if len(trace) != 3 {
		t.Fatalf("trace = %v, want 3 calls", trace)
	}
	if !strings.HasPrefix(trace[0], "set_mouse(") {
		t.Fatalf("trace[0] = %q", trace[0])
	}
	if trace[1] != "wait_input(None)" {
		t.Fatalf("trace[1] = %q", trace[1])
	}
	if trace[2] != "draw_number(50,60,42)" {
		t.Fatalf("trace[2] = %q", trace[2])
	}
}

// Property 4: a program containing only End makes no Host calls.
func TestPropertyOnlyEndMakesNoHostCalls(t *testing.T) {
	prog := mustParse(t, config.Config{}, "END\n")
	h := hostsim.New()
	v := New(prog, config.Config{}, h)
	if err := v.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if trace := h.Trace(); len(trace) != 0 {
		t.Fatalf("trace = %v, want none", trace)
	}
}

// Property 6: balanced Gosub/Return nests back to the instruction after
// the outermost Gosub.
func TestPropertyGosubReturnNests(t *testing.T) {
	src := strings.Join([]string{
		"GOSUB outer",
		"END",
		"outer:",
		"GOSUB inner",
		"RETURN",
		"inner:",
		"BEEP",
		"RETURN",
	}, "\n")
	prog := mustParse(t, config.Config{}, src)
	h := hostsim.New()
	v := New(prog, config.Config{}, h)
	if err := v.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if trace := h.Trace(); len(trace) != 1 || trace[0] != "beep()" {
		t.Fatalf("trace = %v", trace)
	}
}

// Property 7: reading an undefined variable yields the zero value and
// defines it.
func TestPropertyUndefinedVariableDefaultsAndDefines(t *testing.T) {
	prog := mustParse(t, config.Config{}, "IF missing = 0 THEN\nBEEP\nENDIF\nEND\n")
	h := hostsim.New()
	v := New(prog, config.Config{}, h)
	if err := v.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, ok := v.vars["missing"]; !ok {
		t.Fatal("expected reading 'missing' to define it")
	}
}

// Property 8 (VM half): pedantic caps on variable definition.
func TestPedanticExcessIntVariables(t *testing.T) {
	var b strings.Builder
	for i := 0; i < config.MaxIntVars+1; i++ {
		b.WriteString("SET v")
		b.WriteString(strconv.Itoa(i))
		b.WriteString(" = 1\n")
	}
	b.WriteString("END\n")
	cfg := config.Config{Pedantic: true}
	prog := mustParse(t, cfg, b.String())
	h := hostsim.New()
	v := New(prog, cfg, h)
	err := v.Run()
	if err != ErrExcessVariables {
		t.Fatalf("err = %v, want ErrExcessVariables", err)
	}
}

func TestPedanticExcessStringVariables(t *testing.T) {
	var b strings.Builder
	for i := 0; i < config.MaxStringVars+1; i++ {
		b.WriteString("USECAPTION $s")
		b.WriteString(strconv.Itoa(i))
		b.WriteString("\n")
	}
	b.WriteString("END\n")
	cfg := config.Config{Pedantic: true, Dialect: config.Win31}
	prog := mustParse(t, cfg, b.String())
	h := hostsim.New()
	v := New(prog, cfg, h)
	err := v.Run()
	if err != ErrExcessStringVariables {
		t.Fatalf("err = %v, want ErrExcessStringVariables", err)
	}
}

func TestCallStackExhausted(t *testing.T) {
	prog := mustParse(t, config.Config{}, "RETURN\nEND\n")
	h := hostsim.New()
	v := New(prog, config.Config{}, h)
	if err := v.Run(); err != ErrCallStackExhausted {
		t.Fatalf("err = %v, want ErrCallStackExhausted", err)
	}
}

func TestInvalidVirtualKey(t *testing.T) {
	prog := mustParse(t, config.Config{}, "SETKEYBOARD 9999 somewhere\nEND\n")
	h := hostsim.New()
	v := New(prog, config.Config{}, h)
	if err := v.Run(); err != ErrInvalidVirtualKey {
		t.Fatalf("err = %v, want ErrInvalidVirtualKey", err)
	}
}
