// SPDX-License-Identifier: MIT
// Package: units
//
// Purpose:
//   - Recursive-descent parser for unit expressions in the generic notation:
//     "km / h", "kg m2 / s2", "m s-2", "m^2", "m**-1", "m(1/2)",
//     "W / (m2 Hz)", "1e-26 W / (m2 Hz)", "deg / 60".
//
// Grammar:
//
//	expr    := product ( "/" product )*
//	product := power ( ["*" | "." | " "] power )*
//	power   := atom [ ("^" | "**") exponent | attached-number | attached "(n/d)" ]
//	atom    := NAME | NUMBER | "(" expr ")"
//
// A product after "/" divides as a whole: "erg / s cm2" is erg/(s cm2).

package units

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

type tokKind int

const (
	tkEOF tokKind = iota
	tkName
	tkNum
	tkSlash
	tkStar
	tkCaret
	tkLParen
	tkRParen
)

type token struct {
	kind     tokKind
	text     string
	attached bool // no whitespace before the token
	pos      int
}

// lex splits s into tokens.
func lex(s string) ([]token, error) {
	var toks []token
	space := true
	for i := 0; i < len(s); {
		r, w := utf8.DecodeRuneInString(s[i:])
		switch {
		case unicode.IsSpace(r):
			space = true
			i += w
			continue
		case r == '/':
			toks = append(toks, token{kind: tkSlash, text: "/", attached: !space, pos: i})
			i += w
		case r == '*':
			if i+1 < len(s) && s[i+1] == '*' {
				toks = append(toks, token{kind: tkCaret, text: "**", attached: !space, pos: i})
				i += 2
			} else {
				toks = append(toks, token{kind: tkStar, text: "*", attached: !space, pos: i})
				i += w
			}
		case r == '.' && !(i+1 < len(s) && isDigit(s[i+1])):
			toks = append(toks, token{kind: tkStar, text: ".", attached: !space, pos: i})
			i += w
		case r == '^':
			toks = append(toks, token{kind: tkCaret, text: "^", attached: !space, pos: i})
			i += w
		case r == '(':
			toks = append(toks, token{kind: tkLParen, text: "(", attached: !space, pos: i})
			i += w
		case r == ')':
			toks = append(toks, token{kind: tkRParen, text: ")", attached: !space, pos: i})
			i += w
		case isDigit(byte(r)) && r < utf8.RuneSelf, r == '.',
			(r == '-' || r == '+') && i+1 < len(s) && (isDigit(s[i+1]) || s[i+1] == '.'):
			j := scanNumber(s, i)
			toks = append(toks, token{kind: tkNum, text: s[i:j], attached: !space, pos: i})
			i = j
		case isNameRune(r):
			j := i
			for j < len(s) {
				rr, ww := utf8.DecodeRuneInString(s[j:])
				if !isNameRune(rr) {
					break
				}
				j += ww
			}
			toks = append(toks, token{kind: tkName, text: s[i:j], attached: !space, pos: i})
			i = j
		default:
			return nil, fmt.Errorf("%w: unexpected %q at %d in %q", ErrSyntax, r, i, s)
		}
		space = false
	}

	return append(toks, token{kind: tkEOF, pos: len(s)}), nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isNameRune(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '°' || r == '%'
}

// scanNumber consumes [sign] digits [. digits] [e [sign] digits].
func scanNumber(s string, i int) int {
	j := i
	if s[j] == '-' || s[j] == '+' {
		j++
	}
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	if j < len(s) && s[j] == '.' {
		j++
		for j < len(s) && isDigit(s[j]) {
			j++
		}
	}
	if j+1 < len(s) && (s[j] == 'e' || s[j] == 'E') {
		k := j + 1
		if s[k] == '-' || s[k] == '+' {
			k++
		}
		if k < len(s) && isDigit(s[k]) {
			for k < len(s) && isDigit(s[k]) {
				k++
			}
			j = k
		}
	}

	return j
}

// resolver maps a bare symbol to its single-term composite.
type resolver func(symbol string) (*Composite, error)

type parser struct {
	src     string
	toks    []token
	i       int
	resolve resolver
}

// parseExpression parses a complete unit expression.
func parseExpression(src string, resolve resolver) (*Composite, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks, resolve: resolve}
	c, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tkEOF {
		return nil, p.errorf(t, "unexpected %q", t.text)
	}

	return c, nil
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) peekAt(n int) token {
	if p.i+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i+n]
}

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tkEOF {
		p.i++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return fmt.Errorf("%w: %s at %d in %q", ErrSyntax, fmt.Sprintf(format, args...), t.pos, p.src)
}

func (p *parser) expr() (*Composite, error) {
	c, err := p.product()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tkSlash {
		p.next()
		d, err := p.product()
		if err != nil {
			return nil, err
		}
		c = c.mul(d, whole(-1))
	}

	return c, nil
}

func (p *parser) product() (*Composite, error) {
	c, err := p.power()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tkStar:
			p.next()
		case tkName, tkNum, tkLParen:
		default:
			return c, nil
		}
		f, err := p.power()
		if err != nil {
			return nil, err
		}
		c = c.mul(f, whole(1))
	}
}

func (p *parser) power() (*Composite, error) {
	first := p.peek()
	base, err := p.atom()
	if err != nil {
		return nil, err
	}
	t := p.peek()
	switch {
	case t.kind == tkCaret:
		p.next()
		e, err := p.exponent()
		if err != nil {
			return nil, err
		}
		return base.pow(e), nil
	case first.kind != tkNum && t.kind == tkNum && t.attached:
		p.next()
		e, err := p.number(t)
		if err != nil {
			return nil, err
		}
		return base.pow(e), nil
	case first.kind == tkName && t.kind == tkLParen && t.attached && p.peekAt(1).kind == tkNum:
		e, err := p.exponent()
		if err != nil {
			return nil, err
		}
		return base.pow(e), nil
	}

	return base, nil
}

func (p *parser) atom() (*Composite, error) {
	t := p.next()
	switch t.kind {
	case tkName:
		return p.resolve(t.text)
	case tkNum:
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil || v == 0 {
			return nil, p.errorf(t, "bad scale %q", t.text)
		}
		return finish(v, nil), nil
	case tkLParen:
		c, err := p.expr()
		if err != nil {
			return nil, err
		}
		if r := p.next(); r.kind != tkRParen {
			return nil, p.errorf(r, "missing ')'")
		}
		return c, nil
	default:
		return nil, p.errorf(t, "unexpected %q", t.text)
	}
}

// exponent parses NUMBER or "(" NUMBER [ "/" NUMBER ] ")".
func (p *parser) exponent() (Exp, error) {
	t := p.next()
	switch t.kind {
	case tkNum:
		return p.number(t)
	case tkLParen:
		n := p.next()
		num, err := p.number(n)
		if err != nil {
			return Exp{}, err
		}
		if p.peek().kind == tkSlash {
			p.next()
			d := p.next()
			den, err := p.number(d)
			if err != nil {
				return Exp{}, err
			}
			if den.IsZero() {
				return Exp{}, p.errorf(d, "zero denominator")
			}
			num = num.Mul(Exp{den.den, den.num})
		}
		if r := p.next(); r.kind != tkRParen {
			return Exp{}, p.errorf(r, "missing ')'")
		}
		return num, nil
	default:
		return Exp{}, p.errorf(t, "expected exponent")
	}
}

// number converts a numeric token into a rational exponent.
func (p *parser) number(t token) (Exp, error) {
	if t.kind != tkNum {
		return Exp{}, p.errorf(t, "expected number")
	}
	v, err := strconv.ParseFloat(t.text, 64)
	if err != nil {
		return Exp{}, p.errorf(t, "bad number %q", t.text)
	}
	e, ok := ExpFromFloat(v)
	if !ok {
		return Exp{}, fmt.Errorf("%w: %q in %q", ErrExponent, t.text, p.src)
	}

	return e, nil
}
