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
	"strconv"
	"strings"

	"oriel/config"
	"oriel/ir"
)

// cursor walks the argument tokens of one statement (the command
// keyword already consumed by the caller).
type cursor struct {
	toks    []token
	idx     int
	line    int
	lastCol int
	cfg     config.Config
}

func (c *cursor) peek() (token, bool) {
	if c.idx >= len(c.toks) {
		return token{}, false
	}
	return c.toks[c.idx], true
}

func (c *cursor) next() (token, bool) {
	tok, ok := c.peek()
	if !ok {
		return token{}, false
	}
	c.idx++
	c.lastCol = tok.col + len(tok.text)
	return tok, true
}

func (c *cursor) atEnd() bool { return c.idx >= len(c.toks) }

func (c *cursor) missing() error {
	col := c.lastCol
	if col == 0 {
		col = 1
	}
	return &Error{Kind: KindMissingArg, Line: c.line, Col: col}
}

func (c *cursor) end() error {
	if !c.atEnd() {
		tok, _ := c.peek()
		return &Error{Kind: KindExtraneousArg, Line: c.line, Col: tok.col, Lexeme: tok.text}
	}
	return nil
}

func (c *cursor) expectKeyword(kw string) error {
	tok, ok := c.next()
	if !ok {
		return c.missing()
	}
	if !strings.EqualFold(tok.text, kw) {
		return &Error{Kind: KindGrammarSyntax, Line: c.line, Col: tok.col, Lexeme: tok.text}
	}
	return nil
}

func (c *cursor) identifier() (ir.Identifier, error) {
	tok, ok := c.next()
	if !ok {
		return "", c.missing()
	}
	if tok.quoted || !isIdentifierText(tok.text) {
		return "", &Error{Kind: KindArgType, Line: c.line, Col: tok.col, Lexeme: tok.text}
	}
	return ir.Identifier(tok.text), nil
}

// labelOrIgnore decodes a SetMenu category/member label: the literal
// keyword IGNORE means "no label", anything else is an identifier.
func (c *cursor) labelOrIgnore() (ir.Identifier, bool, error) {
	tok, ok := c.peek()
	if !ok {
		return "", false, c.missing()
	}
	if !tok.quoted && strings.EqualFold(tok.text, "IGNORE") {
		c.next()
		return "", false, nil
	}
	id, err := c.identifier()
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

// filename reads one raw string argument that is never a variable
// reference (DrawBitmap/DrawSizedBitmap/UseFont names).
func (c *cursor) filename() (string, error) {
	tok, ok := c.next()
	if !ok {
		return "", c.missing()
	}
	return tok.text, nil
}

func (c *cursor) intOperand() (ir.IntOperand, error) {
	tok, ok := c.next()
	if !ok {
		return ir.IntOperand{}, c.missing()
	}
	return parseIntToken(tok, c.line)
}

func parseIntToken(tok token, line int) (ir.IntOperand, error) {
	if tok.quoted {
		return ir.IntOperand{}, &Error{Kind: KindArgType, Line: line, Col: tok.col, Lexeme: tok.text}
	}
	if isAllDigits(tok.text) {
		v, err := strconv.ParseUint(tok.text, 10, 16)
		if err != nil {
			return ir.IntOperand{}, &Error{Kind: KindParseInt, Line: line, Col: tok.col, Lexeme: tok.text}
		}
		return ir.Int(uint16(v)), nil
	}
	if strings.HasPrefix(tok.text, "$") {
		return ir.IntOperand{}, &Error{Kind: KindArgType, Line: line, Col: tok.col, Lexeme: tok.text}
	}
	if isIdentifierText(tok.text) {
		return ir.IntVar(ir.Identifier(tok.text)), nil
	}
	return ir.IntOperand{}, &Error{Kind: KindArgType, Line: line, Col: tok.col, Lexeme: tok.text}
}

func (c *cursor) ints(n int) ([]ir.IntOperand, error) {
	out := make([]ir.IntOperand, n)
	for i := 0; i < n; i++ {
		v, err := c.intOperand()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (c *cursor) pair() (ir.IntOperand, ir.IntOperand, error) {
	v, err := c.ints(2)
	if err != nil {
		return ir.IntOperand{}, ir.IntOperand{}, err
	}
	return v[0], v[1], nil
}

// stringOperand reads a StringOperand: a quoted literal, or a "$name"
// token naming a string variable. String-variable references are a
// win3.1 feature; in pedantic win3.0 runs they're rejected with
// StandardUnsupported rather than silently accepted.
func (c *cursor) stringOperand() (ir.StringOperand, error) {
	tok, ok := c.next()
	if !ok {
		return ir.StringOperand{}, c.missing()
	}
	if tok.quoted {
		return ir.Str(tok.text), nil
	}
	if strings.HasPrefix(tok.text, "$") && len(tok.text) > 1 {
		if c.cfg.Pedantic && c.cfg.Dialect == config.Win30 {
			return ir.StringOperand{}, &Error{Kind: KindStandardUnsupported, Line: c.line, Col: tok.col, Lexeme: tok.text, Standard: c.cfg.Dialect.String()}
		}
		return ir.StrVar(ir.Identifier(tok.text)), nil
	}
	return ir.StringOperand{}, &Error{Kind: KindArgType, Line: c.line, Col: tok.col, Lexeme: tok.text}
}

// enumArg decodes one case-insensitive enum token via parse.
func enumArg[T any](c *cursor, parse func(string) (T, bool)) (T, error) {
	var zero T
	tok, ok := c.next()
	if !ok {
		return zero, c.missing()
	}
	v, ok := parse(strings.ToUpper(tok.text))
	if !ok {
		return zero, &Error{Kind: KindMatchToken, Line: c.line, Col: tok.col, Lexeme: tok.text}
	}
	return v, nil
}
