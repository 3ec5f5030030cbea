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

// Package parse turns Oriel source text into an ir.Program: one
// statement per physical line, labels recorded as they are reached in
// the same single pass, and forward IF jumps back-patched as each block
// closes. It never executes
// anything — that is vm's job.
package parse

import (
	"strings"

	"oriel/config"
	"oriel/ir"
)

// Parse compiles source into a Program under cfg, or returns the first
// *Error encountered. Parsing stops at the first error; Oriel scripts
// are short enough that error-recovery/multi-error reporting isn't
// worth the complexity.
func Parse(cfg config.Config, source string) (*ir.Program, error) {
	p := &parser{cfg: cfg, prog: ir.NewProgram()}
	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lineno := i + 1
		if isCommentOrBlank(line) {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if name, ok := labelName(trimmed); ok {
			if err := p.addLabel(name, line, lineno); err != nil {
				return nil, err
			}
			continue
		}
		toks, ok := tokenizeLine(line)
		if !ok {
			return nil, errAt(KindGrammarSyntax, lineno, indent(line), "unterminated string")
		}
		if err := p.statement(toks, lineno); err != nil {
			return nil, err
		}
	}
	if len(p.ifStack) > 0 {
		return nil, errAt(KindGrammarSyntax, len(lines), 1, "missing ENDIF")
	}
	p.prog.Commands = append(p.prog.Commands, ir.End{})
	return p.prog, nil
}

type parser struct {
	cfg     config.Config
	prog    *ir.Program
	ifStack []int
}

func (p *parser) addLabel(name, line string, lineno int) error {
	col := indent(line)
	if col != 1 {
		return errAt(KindLabelIndentation, lineno, col, name+":")
	}
	p.prog.Labels[ir.Identifier(name)] = len(p.prog.Commands)
	if p.cfg.Pedantic && len(p.prog.Labels) > config.MaxLabels {
		return &Error{Kind: KindExcessLabels, Line: lineno, Col: col}
	}
	return nil
}

func (p *parser) emit(cmd ir.Command) { p.prog.Commands = append(p.prog.Commands, cmd) }

func (p *parser) statement(toks []token, lineno int) error {
	if len(toks) == 0 {
		return nil
	}
	cur := &cursor{toks: toks[1:], line: lineno, cfg: p.cfg}
	kw := strings.ToUpper(toks[0].text)

	switch kw {
	case "BEEP":
		return p.nullary(cur, ir.Beep{})
	case "DRAWBACKGROUND":
		return p.nullary(cur, ir.DrawBackground{})
	case "END":
		return p.nullary(cur, ir.End{})
	case "RETURN":
		return p.nullary(cur, ir.Return{})
	case "ENDPOPUP", "SEPARATOR", "IGNORE", "THEN":
		return errAt(KindGrammarSyntax, lineno, toks[0].col, toks[0].text)

	case "GOTO":
		label, err := cur.identifier()
		if err != nil {
			return err
		}
		if err := cur.end(); err != nil {
			return err
		}
		p.emit(ir.Goto{Label: label})
		return nil

	case "GOSUB":
		label, err := cur.identifier()
		if err != nil {
			return err
		}
		if err := cur.end(); err != nil {
			return err
		}
		p.emit(ir.Gosub{Label: label})
		return nil

	case "IF":
		i1, err := cur.intOperand()
		if err != nil {
			return err
		}
		optok, ok := cur.next()
		if !ok {
			return cur.missing()
		}
		op, ok := ir.ParseLogicalOperator(optok.text)
		if !ok {
			return &Error{Kind: KindMatchToken, Line: lineno, Col: optok.col, Lexeme: optok.text}
		}
		i2, err := cur.intOperand()
		if err != nil {
			return err
		}
		if err := cur.expectKeyword("THEN"); err != nil {
			return err
		}
		if err := cur.end(); err != nil {
			return err
		}
		p.ifStack = append(p.ifStack, len(p.prog.Commands))
		p.emit(ir.If{I1: i1, Op: op, I2: i2})
		return nil

	case "ENDIF":
		if err := cur.end(); err != nil {
			return err
		}
		if len(p.ifStack) == 0 {
			return errAt(KindGrammarSyntax, lineno, toks[0].col, "ENDIF")
		}
		idx := p.ifStack[len(p.ifStack)-1]
		p.ifStack = p.ifStack[:len(p.ifStack)-1]
		ifc := p.prog.Commands[idx].(ir.If)
		ifc.JumpFalse = len(p.prog.Commands)
		p.prog.Commands[idx] = ifc
		return nil

	case "SET":
		return p.parseSet(cur)

	case "DRAWARC":
		return p.parse8(cur, func(v [8]ir.IntOperand) ir.Command {
			return ir.DrawArc{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3], X3: v[4], Y3: v[5], X4: v[6], Y4: v[7]}
		})
	case "DRAWCHORD":
		return p.parse8(cur, func(v [8]ir.IntOperand) ir.Command {
			return ir.DrawChord{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3], X3: v[4], Y3: v[5], X4: v[6], Y4: v[7]}
		})
	case "DRAWPIE":
		return p.parse8(cur, func(v [8]ir.IntOperand) ir.Command {
			return ir.DrawPie{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3], X3: v[4], Y3: v[5], X4: v[6], Y4: v[7]}
		})
	case "DRAWELLIPSE":
		return p.parse4(cur, func(v [4]ir.IntOperand) ir.Command {
			return ir.DrawEllipse{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}
		})
	case "DRAWRECTANGLE":
		return p.parse4(cur, func(v [4]ir.IntOperand) ir.Command {
			return ir.DrawRectangle{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}
		})
	case "DRAWLINE":
		return p.parse4(cur, func(v [4]ir.IntOperand) ir.Command {
			return ir.DrawLine{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}
		})
	case "DRAWROUNDRECTANGLE":
		return p.parse6(cur, func(v [6]ir.IntOperand) ir.Command {
			return ir.DrawRoundRectangle{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3], X3: v[4], Y3: v[5]}
		})
	case "DRAWFLOOD":
		return p.parse5(cur, func(v [5]ir.IntOperand) ir.Command {
			return ir.DrawFlood{X: v[0], Y: v[1], R: v[2], G: v[3], B: v[4]}
		})
	case "DRAWNUMBER":
		return p.parse3(cur, func(v [3]ir.IntOperand) ir.Command {
			return ir.DrawNumber{X: v[0], Y: v[1], N: v[2]}
		})

	case "DRAWBITMAP":
		x, y, err := cur.pair()
		if err != nil {
			return err
		}
		name, err := cur.filename()
		if err != nil {
			return err
		}
		if err := cur.end(); err != nil {
			return err
		}
		p.emit(ir.DrawBitmap{X: x, Y: y, Filename: name})
		return nil

	case "DRAWSIZEDBITMAP":
		v, err := cur.ints(4)
		if err != nil {
			return err
		}
		name, err := cur.filename()
		if err != nil {
			return err
		}
		if err := cur.end(); err != nil {
			return err
		}
		p.emit(ir.DrawSizedBitmap{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3], Filename: name})
		return nil

	case "DRAWTEXT":
		x, y, err := cur.pair()
		if err != nil {
			return err
		}
		text, err := cur.stringOperand()
		if err != nil {
			return err
		}
		if err := cur.end(); err != nil {
			return err
		}
		p.emit(ir.DrawText{X: x, Y: y, Text: text})
		return nil

	case "USEBACKGROUND":
		opt, err := enumArg(cur, ir.ParseBackgroundTransparency)
		if err != nil {
			return err
		}
		v, err := cur.ints(3)
		if err != nil {
			return err
		}
		if err := cur.end(); err != nil {
			return err
		}
		p.emit(ir.UseBackground{Option: opt, R: v[0], G: v[1], B: v[2]})
		return nil

	case "USEBRUSH":
		opt, err := enumArg(cur, ir.ParseBrushType)
		if err != nil {
			return err
		}
		v, err := cur.ints(3)
		if err != nil {
			return err
		}
		if err := cur.end(); err != nil {
			return err
		}
		p.emit(ir.UseBrush{Option: opt, R: v[0], G: v[1], B: v[2]})
		return nil

	case "USEPEN":
		opt, err := enumArg(cur, ir.ParsePenType)
		if err != nil {
			return err
		}
		width, err := cur.intOperand()
		if err != nil {
			return err
		}
		v, err := cur.ints(3)
		if err != nil {
			return err
		}
		if err := cur.end(); err != nil {
			return err
		}
		p.emit(ir.UsePen{Option: opt, Width: width, R: v[0], G: v[1], B: v[2]})
		return nil

	case "USEFONT":
		name, err := cur.filename()
		if err != nil {
			return err
		}
		width, height, err := cur.pair()
		if err != nil {
			return err
		}
		bold, err := enumArg(cur, ir.ParseFontWeight)
		if err != nil {
			return err
		}
		italic, err := enumArg(cur, ir.ParseFontSlant)
		if err != nil {
			return err
		}
		underline, err := enumArg(cur, ir.ParseFontUnderline)
		if err != nil {
			return err
		}
		v, err := cur.ints(3)
		if err != nil {
			return err
		}
		if err := cur.end(); err != nil {
			return err
		}
		p.emit(ir.UseFont{Name: name, Width: width, Height: height, Bold: bold, Italic: italic, Underline: underline, R: v[0], G: v[1], B: v[2]})
		return nil

	case "USECAPTION":
		text, err := cur.stringOperand()
		if err != nil {
			return err
		}
		if err := cur.end(); err != nil {
			return err
		}
		p.emit(ir.UseCaption{Text: text})
		return nil

	case "USECOORDINATES":
		opt, err := enumArg(cur, ir.ParseCoordinates)
		if err != nil {
			return err
		}
		if err := cur.end(); err != nil {
			return err
		}
		p.emit(ir.UseCoordinates{Option: opt})
		return nil

	case "SETWINDOW":
		opt, err := enumArg(cur, ir.ParseSetWindowOption)
		if err != nil {
			return err
		}
		if err := cur.end(); err != nil {
			return err
		}
		p.emit(ir.SetWindow{Option: opt})
		return nil

	case "SETWAITMODE":
		mode, err := enumArg(cur, ir.ParseWaitMode)
		if err != nil {
			return err
		}
		if err := cur.end(); err != nil {
			return err
		}
		p.emit(ir.SetWaitMode{Mode: mode})
		return nil

	case "MESSAGEBOX":
		typ, err := enumArg(cur, ir.ParseMessageBoxType)
		if err != nil {
			return err
		}
		defBtn, err := cur.intOperand()
		if err != nil {
			return err
		}
		icon, err := enumArg(cur, ir.ParseMessageBoxIcon)
		if err != nil {
			return err
		}
		text, err := cur.stringOperand()
		if err != nil {
			return err
		}
		caption, err := cur.stringOperand()
		if err != nil {
			return err
		}
		resultVar, err := cur.identifier()
		if err != nil {
			return err
		}
		if err := cur.end(); err != nil {
			return err
		}
		p.emit(ir.MessageBox{Type: typ, DefaultButton: defBtn, Icon: icon, Text: text, Caption: caption, ResultVar: resultVar})
		return nil

	case "RUN":
		cl, err := cur.stringOperand()
		if err != nil {
			return err
		}
		if err := cur.end(); err != nil {
			return err
		}
		p.emit(ir.Run{CommandLine: cl})
		return nil

	case "WAITINPUT":
		if cur.atEnd() {
			p.emit(ir.WaitInput{})
			return nil
		}
		ms, err := cur.intOperand()
		if err != nil {
			return err
		}
		if err := cur.end(); err != nil {
			return err
		}
		p.emit(ir.WaitInput{Milliseconds: ms, HasMilliseconds: true})
		return nil

	case "SETKEYBOARD":
		return p.parseSetKeyboard(cur)
	case "SETMOUSE":
		return p.parseSetMouse(cur)
	case "SETMENU":
		return p.parseSetMenu(cur)

	default:
		return errAt(KindGrammarSyntax, lineno, toks[0].col, toks[0].text)
	}
}

func (p *parser) nullary(cur *cursor, cmd ir.Command) error {
	if err := cur.end(); err != nil {
		return err
	}
	p.emit(cmd)
	return nil
}

func (p *parser) parseSet(cur *cursor) error {
	name, err := cur.identifier()
	if err != nil {
		return err
	}
	if err := cur.expectKeyword("="); err != nil {
		return err
	}
	i1, err := cur.intOperand()
	if err != nil {
		return err
	}
	if cur.atEnd() {
		p.emit(ir.Set{Var: name, I1: i1, Op: ir.MathAdd, I2: ir.Int(0)})
		return nil
	}
	optok, ok := cur.next()
	if !ok {
		return cur.missing()
	}
	op, ok := ir.ParseMathOperator(optok.text)
	if !ok {
		return &Error{Kind: KindMatchToken, Line: cur.line, Col: optok.col, Lexeme: optok.text}
	}
	i2, err := cur.intOperand()
	if err != nil {
		return err
	}
	if err := cur.end(); err != nil {
		return err
	}
	p.emit(ir.Set{Var: name, I1: i1, Op: op, I2: i2})
	return nil
}

func (p *parser) parse3(cur *cursor, build func([3]ir.IntOperand) ir.Command) error {
	v, err := cur.ints(3)
	if err != nil {
		return err
	}
	if err := cur.end(); err != nil {
		return err
	}
	p.emit(build([3]ir.IntOperand{v[0], v[1], v[2]}))
	return nil
}

func (p *parser) parse4(cur *cursor, build func([4]ir.IntOperand) ir.Command) error {
	v, err := cur.ints(4)
	if err != nil {
		return err
	}
	if err := cur.end(); err != nil {
		return err
	}
	p.emit(build([4]ir.IntOperand{v[0], v[1], v[2], v[3]}))
	return nil
}

func (p *parser) parse5(cur *cursor, build func([5]ir.IntOperand) ir.Command) error {
	v, err := cur.ints(5)
	if err != nil {
		return err
	}
	if err := cur.end(); err != nil {
		return err
	}
	p.emit(build([5]ir.IntOperand{v[0], v[1], v[2], v[3], v[4]}))
	return nil
}

func (p *parser) parse6(cur *cursor, build func([6]ir.IntOperand) ir.Command) error {
	v, err := cur.ints(6)
	if err != nil {
		return err
	}
	if err := cur.end(); err != nil {
		return err
	}
	p.emit(build([6]ir.IntOperand{v[0], v[1], v[2], v[3], v[4], v[5]}))
	return nil
}

func (p *parser) parse8(cur *cursor, build func([8]ir.IntOperand) ir.Command) error {
	v, err := cur.ints(8)
	if err != nil {
		return err
	}
	if err := cur.end(); err != nil {
		return err
	}
	var arr [8]ir.IntOperand
	copy(arr[:], v)
	p.emit(build(arr))
	return nil
}

// parseSetKeyboard consumes repeated (key, label) pairs through the end
// of the line.
func (p *parser) parseSetKeyboard(cur *cursor) error {
	var bindings []ir.KeyboardBinding
	for !cur.atEnd() {
		keytok, ok := cur.next()
		if !ok {
			return cur.missing()
		}
		key, err := parseKeyToken(keytok, cur.line)
		if err != nil {
			return err
		}
		label, err := cur.identifier()
		if err != nil {
			return err
		}
		bindings = append(bindings, ir.KeyboardBinding{Key: key, Label: label})
	}
	if len(bindings) == 0 {
		return cur.missing()
	}
	p.emit(ir.SetKeyboard{Bindings: bindings})
	return nil
}

// parseKeyToken decodes one SetKeyboard key token. A quoted token is a
// physical key literal, checked immediately since its grammar is fixed.
// An unquoted token is a virtual-key IntOperand (literal or variable);
// range-checking against the Virtual-Key table happens at execution
// time, once a variable's value is known (spec.md §3, §4.2).
func parseKeyToken(tok token, line int) (ir.Key, error) {
	if tok.quoted {
		pk, ok := ir.ParsePhysicalKey(tok.text)
		if !ok {
			return ir.Key{}, &Error{Kind: KindInvalidPhysicalKey, Line: line, Col: tok.col, Lexeme: tok.text}
		}
		return ir.Key{IsPhysical: true, Physical: pk}, nil
	}
	iv, err := parseIntToken(tok, line)
	if err != nil {
		return ir.Key{}, err
	}
	return ir.Key{Virtual: iv}, nil
}

// parseSetMouse consumes repeated (x1,y1,x2,y2,label,xvar,yvar) groups of
// seven tokens through the end of the line.
func (p *parser) parseSetMouse(cur *cursor) error {
	var regions []ir.MouseRegion
	for !cur.atEnd() {
		v, err := cur.ints(4)
		if err != nil {
			return err
		}
		label, err := cur.identifier()
		if err != nil {
			return err
		}
		xvar, err := cur.identifier()
		if err != nil {
			return err
		}
		yvar, err := cur.identifier()
		if err != nil {
			return err
		}
		regions = append(regions, ir.MouseRegion{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3], Label: label, XVar: xvar, YVar: yvar})
	}
	if len(regions) == 0 {
		return cur.missing()
	}
	p.emit(ir.SetMouse{Regions: regions})
	return nil
}

// parseSetMenu consumes repeated menu categories through the end of the
// line: name labelOrIGNORE member* ENDPOPUP, where member is either
// SEPARATOR or "name" labelOrIGNORE.
func (p *parser) parseSetMenu(cur *cursor) error {
	var categories []ir.MenuCategory
	for !cur.atEnd() {
		nametok, ok := cur.next()
		if !ok {
			return cur.missing()
		}
		label, hasLabel, err := cur.labelOrIgnore()
		if err != nil {
			return err
		}
		cat := ir.MenuCategory{Name: nametok.text, Label: label, HasLabel: hasLabel}
		for {
			tok, ok := cur.peek()
			if !ok {
				return cur.missing()
			}
			if strings.EqualFold(tok.text, "ENDPOPUP") {
				cur.next()
				break
			}
			if strings.EqualFold(tok.text, "SEPARATOR") {
				cur.next()
				cat.Members = append(cat.Members, ir.MenuMember{IsSeparator: true})
				continue
			}
			mnametok, ok := cur.next()
			if !ok {
				return cur.missing()
			}
			mlabel, mhasLabel, err := cur.labelOrIgnore()
			if err != nil {
				return err
			}
			cat.Members = append(cat.Members, ir.MenuMember{Name: mnametok.text, Label: mlabel, HasLabel: mhasLabel})
		}
		categories = append(categories, cat)
	}
	if len(categories) == 0 {
		return cur.missing()
	}
	p.emit(ir.SetMenu{Categories: categories})
	return nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isIdentifierText(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
