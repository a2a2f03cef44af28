// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// A SyntaxError is an error produced by parsing a malformed filter.
type SyntaxError struct {
	Query string // The original query string
	Off   int    // Byte offset of the error in Query
	Msg   string // Error message
}

func (e *SyntaxError) Error() string {
	pos := 0
	for i, r := range e.Query {
		if i >= e.Off {
			break
		}
		if unicode.IsGraphic(r) {
			pos++
		}
	}
	return fmt.Sprintf("syntax error: %s\n\t%s\n\t%*s^", e.Msg, e.Query, pos, "")
}

// Parse parses a textual filter such as
//
//	graph_num_edges=7999910 AND total_time > 0
//
// into a Filter. Constraints are separated by white space or by the
// keyword AND, which may also lead the string. Each constraint is a
// column name, one of the operators = != <> < <= > >= LIKE, and an
// operand: a number, a quoted string, another column name, or
// "N * column".
//
// An empty string parses to the empty Filter.
func Parse(q string) (Filter, error) {
	p := &parser{q: q}
	var f Filter
	for {
		save := p.pos
		t, err := p.next()
		if err != nil {
			return Filter{}, err
		}
		if t.kind == 0 {
			return f, nil
		}
		if t.kind == 'i' && strings.EqualFold(t.text, "AND") {
			continue
		}
		p.pos = save
		c, err := p.cond()
		if err != nil {
			return Filter{}, err
		}
		f = f.And(c)
	}
}

type token struct {
	// kind is 'i' for an identifier, 'n' for a number, 's' for a
	// quoted string, 'o' for a comparison operator, '*', or 0 at
	// the end of input.
	kind byte
	off  int
	text string
}

type parser struct {
	q   string
	pos int
}

func (p *parser) errorf(off int, format string, args ...interface{}) error {
	return &SyntaxError{p.q, off, fmt.Sprintf(format, args...)}
}

func (p *parser) peek() token {
	save := p.pos
	t, _ := p.next()
	p.pos = save
	return t
}

func (p *parser) next() (token, error) {
	for p.pos < len(p.q) && strings.IndexByte(" \t\n\v\f\r", p.q[p.pos]) >= 0 {
		p.pos++
	}
	start := p.pos
	if start >= len(p.q) {
		return token{off: start}, nil
	}
	ch := p.q[start]
	switch {
	case isIdentStart(ch):
		for p.pos < len(p.q) && (isIdentStart(p.q[p.pos]) || isDigit(p.q[p.pos])) {
			p.pos++
		}
		return token{'i', start, p.q[start:p.pos]}, nil
	case ch == '-' || ch == '+' || ch == '.' || isDigit(ch):
		p.pos++
		for p.pos < len(p.q) && strings.IndexByte("0123456789.eE", p.q[p.pos]) >= 0 {
			if (p.q[p.pos] == 'e' || p.q[p.pos] == 'E') && p.pos+1 < len(p.q) && (p.q[p.pos+1] == '-' || p.q[p.pos+1] == '+') {
				p.pos++
			}
			p.pos++
		}
		return token{'n', start, p.q[start:p.pos]}, nil
	case ch == '\'' || ch == '"':
		var buf strings.Builder
		p.pos++
		for {
			if p.pos >= len(p.q) {
				return token{}, p.errorf(start, "missing end quote")
			}
			c := p.q[p.pos]
			p.pos++
			if c == ch {
				// A doubled quote is an escaped quote.
				if p.pos < len(p.q) && p.q[p.pos] == ch {
					buf.WriteByte(ch)
					p.pos++
					continue
				}
				break
			}
			buf.WriteByte(c)
		}
		return token{'s', start, buf.String()}, nil
	case ch == '*':
		p.pos++
		return token{'*', start, "*"}, nil
	case strings.IndexByte("=!<>", ch) >= 0:
		p.pos++
		if p.pos < len(p.q) && (p.q[p.pos] == '=' || (ch == '<' && p.q[p.pos] == '>')) {
			p.pos++
		}
		text := p.q[start:p.pos]
		if text == "!" {
			return token{}, p.errorf(start, "unexpected \"!\"")
		}
		return token{'o', start, text}, nil
	}
	r, _ := utf8.DecodeRuneInString(p.q[start:])
	return token{}, p.errorf(start, "unexpected %q", r)
}

// Column names are ASCII only.
func isIdentStart(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

var parseOps = map[string]Op{
	"=":  OpEq,
	"==": OpEq,
	"!=": OpNe,
	"<>": OpNe,
	"<":  OpLt,
	"<=": OpLe,
	">":  OpGt,
	">=": OpGe,
}

func (p *parser) cond() (Cond, error) {
	field, err := p.next()
	if err != nil {
		return Cond{}, err
	}
	if field.kind != 'i' {
		return Cond{}, p.errorf(field.off, "expected column name")
	}

	opTok, err := p.next()
	if err != nil {
		return Cond{}, err
	}
	var op Op
	switch {
	case opTok.kind == 'o':
		op = parseOps[opTok.text]
	case opTok.kind == 'i' && strings.EqualFold(opTok.text, "LIKE"):
		op = OpLike
	default:
		return Cond{}, p.errorf(opTok.off, "expected operator after %s", field.text)
	}

	val, err := p.next()
	if err != nil {
		return Cond{}, err
	}
	var v interface{}
	switch val.kind {
	case 's':
		v = val.text
	case 'i':
		v = Column(val.text)
	case 'n':
		n, err := parseNumber(val.text)
		if err != nil {
			return Cond{}, p.errorf(val.off, "bad number %q", val.text)
		}
		v = n
		if p.peek().kind == '*' {
			p.next()
			col, err := p.next()
			if err != nil {
				return Cond{}, err
			}
			factor, ok := n.(int64)
			if col.kind != 'i' || !ok {
				return Cond{}, p.errorf(val.off, "expected integer * column")
			}
			v = Scaled{factor, Column(col.text)}
		}
	default:
		return Cond{}, p.errorf(val.off, "expected value")
	}
	if op == OpLike {
		if _, ok := v.(string); !ok {
			return Cond{}, p.errorf(val.off, "LIKE requires a quoted pattern")
		}
	}
	return NewCond(field.text, op, v), nil
}

func parseNumber(s string) (interface{}, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	return strconv.ParseFloat(s, 64)
}
