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

package parse

import (
	"strings"
	"testing"

	"oriel/config"
	"oriel/ir"
)

func mustParse(t *testing.T, cfg config.Config, src string) *ir.Program {
	t.Helper()
	prog, err := Parse(cfg, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return prog
}

func TestParseIfEndifBackpatch(t *testing.T) {
	src := strings.Join([]string{
		"IF x = 1 THEN",
		"BEEP",
		"ENDIF",
		"DRAWBACKGROUND",
	}, "\n")
	prog := mustParse(t, config.Config{}, src)
	// Commands: If, Beep, DrawBackground, End
	if len(prog.Commands) != 4 {
		t.Fatalf("got %d commands, want 4", len(prog.Commands))
	}
	ifc, ok := prog.Commands[0].(ir.If)
	if !ok {
		t.Fatalf("commands[0] = %T, want ir.If", prog.Commands[0])
	}
	if ifc.JumpFalse != 2 {
		t.Fatalf("JumpFalse = %d, want 2", ifc.JumpFalse)
	}
}

func TestParseNestedIf(t *testing.T) {
	src := strings.Join([]string{
		"IF x = 1 THEN",
		"IF y = 2 THEN",
		"BEEP",
		"ENDIF",
		"DRAWBACKGROUND",
		"ENDIF",
	}, "\n")
	prog := mustParse(t, config.Config{}, src)
	outer := prog.Commands[0].(ir.If)
	inner := prog.Commands[1].(ir.If)
	if inner.JumpFalse != 3 {
		t.Fatalf("inner.JumpFalse = %d, want 3", inner.JumpFalse)
	}
	if outer.JumpFalse != 4 {
		t.Fatalf("outer.JumpFalse = %d, want 4", outer.JumpFalse)
	}
}

func TestParseLabelForwardGoto(t *testing.T) {
	src := strings.Join([]string{
		"GOTO skip",
		"BEEP",
		"skip:",
		"END",
	}, "\n")
	prog := mustParse(t, config.Config{}, src)
	idx, ok := prog.Labels["skip"]
	if !ok || idx != 2 {
		t.Fatalf("label skip = %d,%v want 2,true", idx, ok)
	}
	if _, ok := prog.Commands[0].(ir.Goto); !ok {
		t.Fatalf("commands[0] = %T, want ir.Goto", prog.Commands[0])
	}
}

func TestParseLabelIndentationError(t *testing.T) {
	src := "  bad:\nEND"
	_, err := Parse(config.Config{}, src)
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("err = %v, want *Error", err)
	}
	if perr.Kind != KindLabelIndentation || perr.Line != 1 || perr.Col != 3 {
		t.Fatalf("err = %+v, want LabelIndentation at 1:3", perr)
	}
}

func TestParseSetNoOperatorNormalizes(t *testing.T) {
	prog := mustParse(t, config.Config{}, "SET x = 5")
	s, ok := prog.Commands[0].(ir.Set)
	if !ok {
		t.Fatalf("commands[0] = %T, want ir.Set", prog.Commands[0])
	}
	if s.Op != ir.MathAdd || !s.I2.IsLiteral || s.I2.Literal != 0 {
		t.Fatalf("s = %+v, want Op=MathAdd I2=Int(0)", s)
	}
}

func TestParseSetWithOperator(t *testing.T) {
	prog := mustParse(t, config.Config{}, "SET x = 5 + y")
	s := prog.Commands[0].(ir.Set)
	if s.Op != ir.MathAdd || s.I2.IsLiteral || s.I2.Var != "y" {
		t.Fatalf("s = %+v", s)
	}
}

func TestParseDrawRectangle(t *testing.T) {
	prog := mustParse(t, config.Config{}, "DRAWRECTANGLE 1 2 3 4")
	r := prog.Commands[0].(ir.DrawRectangle)
	if r.X1.Literal != 1 || r.Y1.Literal != 2 || r.X2.Literal != 3 || r.Y2.Literal != 4 {
		t.Fatalf("r = %+v", r)
	}
}

func TestParseMissingArg(t *testing.T) {
	_, err := Parse(config.Config{}, "DRAWRECTANGLE 1 2 3")
	perr, ok := err.(*Error)
	if !ok || perr.Kind != KindMissingArg {
		t.Fatalf("err = %v, want MissingArg", err)
	}
}

func TestParseExtraneousArg(t *testing.T) {
	_, err := Parse(config.Config{}, "BEEP 1")
	perr, ok := err.(*Error)
	if !ok || perr.Kind != KindExtraneousArg {
		t.Fatalf("err = %v, want ExtraneousArg", err)
	}
}

func TestParseMatchTokenError(t *testing.T) {
	_, err := Parse(config.Config{}, "USEBRUSH SPARKLY 1 2 3")
	perr, ok := err.(*Error)
	if !ok || perr.Kind != KindMatchToken {
		t.Fatalf("err = %v, want MatchToken", err)
	}
}

func TestParseStandardUnsupportedStringVar(t *testing.T) {
	cfg := config.Config{Pedantic: true, Dialect: config.Win30}
	_, err := Parse(cfg, `USECAPTION $title`)
	perr, ok := err.(*Error)
	if !ok || perr.Kind != KindStandardUnsupported {
		t.Fatalf("err = %v, want StandardUnsupported", err)
	}
}

func TestParseStringVarAllowedUnderWin31(t *testing.T) {
	prog := mustParse(t, config.Config{Dialect: config.Win31}, `USECAPTION $title`)
	uc := prog.Commands[0].(ir.UseCaption)
	if uc.Text.IsLiteral || uc.Text.Var != "$title" {
		t.Fatalf("uc = %+v", uc)
	}
}

func TestParseSetKeyboard(t *testing.T) {
	prog := mustParse(t, config.Config{}, `SETKEYBOARD "c" onC 112 onF1`)
	sk := prog.Commands[0].(ir.SetKeyboard)
	if len(sk.Bindings) != 2 {
		t.Fatalf("got %d bindings, want 2", len(sk.Bindings))
	}
	if !sk.Bindings[0].Key.IsPhysical || sk.Bindings[0].Key.Physical.Ch != 'c' {
		t.Fatalf("binding0 = %+v", sk.Bindings[0])
	}
	if !sk.Bindings[1].Key.Virtual.IsLiteral || sk.Bindings[1].Key.Virtual.Literal != uint16(ir.VKF1) || sk.Bindings[1].Label != "onF1" {
		t.Fatalf("binding1 = %+v", sk.Bindings[1])
	}
}

func TestParseSetMouse(t *testing.T) {
	prog := mustParse(t, config.Config{}, "SETMOUSE 0 0 10 10 onClick mx my")
	sm := prog.Commands[0].(ir.SetMouse)
	if len(sm.Regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(sm.Regions))
	}
	r := sm.Regions[0]
	if r.Label != "onClick" || r.XVar != "mx" || r.YVar != "my" {
		t.Fatalf("region = %+v", r)
	}
}

func TestParseSetMenu(t *testing.T) {
	prog := mustParse(t, config.Config{}, `SETMENU File fileMenu "New" newItem SEPARATOR "Exit" IGNORE ENDPOPUP`)
	sm := prog.Commands[0].(ir.SetMenu)
	if len(sm.Categories) != 1 {
		t.Fatalf("got %d categories, want 1", len(sm.Categories))
	}
	cat := sm.Categories[0]
	if cat.Name != "File" || !cat.HasLabel || cat.Label != "fileMenu" {
		t.Fatalf("cat = %+v", cat)
	}
	if len(cat.Members) != 3 {
		t.Fatalf("got %d members, want 3", len(cat.Members))
	}
	if cat.Members[1].IsSeparator != true {
		t.Fatalf("members[1] = %+v, want separator", cat.Members[1])
	}
	if cat.Members[2].Name != "Exit" || cat.Members[2].HasLabel {
		t.Fatalf("members[2] = %+v", cat.Members[2])
	}
}

func TestParseCommentsAndBlankLines(t *testing.T) {
	src := strings.Join([]string{
		"; a comment",
		"",
		"BEEP",
	}, "\n")
	prog := mustParse(t, config.Config{}, src)
	if len(prog.Commands) != 2 {
		t.Fatalf("got %d commands, want 2 (Beep, End)", len(prog.Commands))
	}
}

func TestParseUnterminatedIf(t *testing.T) {
	_, err := Parse(config.Config{}, "IF x = 1 THEN\nBEEP")
	perr, ok := err.(*Error)
	if !ok || perr.Kind != KindGrammarSyntax {
		t.Fatalf("err = %v, want GrammarSyntax", err)
	}
}
