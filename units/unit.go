// SPDX-License-Identifier: MIT

package units

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Unit is a canonical unit descriptor. Descriptors are immutable; an
// Adapter only accepts descriptors it produced (or can re-canonicalize from
// their String form).
type Unit interface {
	String() string
}

// Op selects the composition applied by Adapter.Compose.
type Op int

const (
	// Mul multiplies two units.
	Mul Op = iota
	// Div divides the first unit by the second.
	Div
)

// String returns the operator symbol.
func (o Op) String() string {
	if o == Div {
		return "/"
	}
	return "*"
}

// Adapter is the unit algebra consumed by qfloat.
//
// Contract:
//   - Canonicalize accepts strings, Units and nil (dimensionless).
//   - ConversionFactor(from, to) returns k with value_in_to = k * value_in_from,
//     or ErrIncompatible.
//   - Compose and Power never check compatibility; units multiply freely.
//   - IsAngle reports whether u measures plane angle (rad, deg, arcsec, ...).
type Adapter interface {
	Canonicalize(spec any) (Unit, error)
	Compatible(a, b Unit) bool
	ConversionFactor(from, to Unit) (float64, error)
	Compose(a, b Unit, op Op) (Unit, error)
	Power(u Unit, p float64) (Unit, error)
	IsAngle(u Unit) bool
	Dimensionless() Unit
}

// term is one named factor of a composite unit, e.g. km^2.
type term struct {
	symbol string  // canonical symbol including prefix ("km")
	exp    Exp     // non-zero exponent
	scale  float64 // SI scale of symbol^1
	dims   dimVec  // dimension of symbol^1
}

// dimVec maps dimension names to exponents; zero exponents are never stored.
type dimVec map[string]Exp

func (d dimVec) add(o dimVec, times Exp) dimVec {
	out := make(dimVec, len(d)+len(o))
	for k, v := range d {
		out[k] = v
	}
	for k, v := range o {
		s := out[k].Add(v.Mul(times))
		if s.IsZero() {
			delete(out, k)
		} else {
			out[k] = s
		}
	}

	return out
}

func (d dimVec) equal(o dimVec) bool {
	if len(d) != len(o) {
		return false
	}
	for k, v := range d {
		w, ok := o[k]
		if !ok || w.norm() != v.norm() {
			return false
		}
	}

	return true
}

// Composite is the descriptor produced by System: a numeric factor times a
// product of named unit symbols raised to rational powers.
type Composite struct {
	factor float64 // pure numeric factor ("0.001 m")
	terms  []term  // canonical order, see sortTerms
	scale  float64 // factor × Π term.scale^exp, relative to SI base units
	dims   dimVec  // Σ term.dims × exp
	repr   string  // cached String()
}

// Compile-time assertion.
var _ Unit = (*Composite)(nil)

// dimensionless is the empty composite.
func dimensionless() *Composite {
	return finish(1, nil)
}

// finish merges duplicate symbols, drops zero exponents, orders the terms
// and computes the cached scale, dimension and string.
func finish(factor float64, terms []term) *Composite {
	merged := make([]term, 0, len(terms))
	pos := make(map[string]int, len(terms))
	for _, t := range terms {
		if i, ok := pos[t.symbol]; ok {
			merged[i].exp = merged[i].exp.Add(t.exp)
			continue
		}
		pos[t.symbol] = len(merged)
		merged = append(merged, t)
	}
	kept := merged[:0]
	for _, t := range merged {
		if !t.exp.IsZero() {
			kept = append(kept, t)
		}
	}
	sortTerms(kept)

	c := &Composite{factor: factor, terms: kept, scale: factor, dims: dimVec{}}
	for _, t := range kept {
		c.scale *= math.Pow(t.scale, t.exp.Float64())
		c.dims = c.dims.add(t.dims, t.exp)
	}
	c.repr = c.format()

	return c
}

// sortTerms orders symbols case-insensitively, then case-sensitively, so
// every composite has one stable spelling.
func sortTerms(ts []term) {
	sort.SliceStable(ts, func(i, j int) bool {
		a, b := strings.ToLower(ts[i].symbol), strings.ToLower(ts[j].symbol)
		if a != b {
			return a < b
		}
		return ts[i].symbol < ts[j].symbol
	})
}

// format renders "factor num / den", e.g. "kg m2 / s2", "1 / s", "W / (Hz m2)".
func (c *Composite) format() string {
	var num, den []string
	for _, t := range c.terms {
		if t.exp.num > 0 {
			num = append(num, t.symbol+expSuffix(t.exp))
		} else {
			den = append(den, t.symbol+expSuffix(t.exp.Neg()))
		}
	}
	if c.factor != 1 {
		num = append([]string{strconv.FormatFloat(c.factor, 'g', -1, 64)}, num...)
	}
	if len(den) == 0 {
		return strings.Join(num, " ")
	}
	head := strings.Join(num, " ")
	if head == "" {
		head = "1"
	}
	tail := strings.Join(den, " ")
	if len(den) > 1 {
		tail = "(" + tail + ")"
	}

	return head + " / " + tail
}

// expSuffix omits the exponent 1.
func expSuffix(e Exp) string {
	if e.norm() == whole(1) {
		return ""
	}
	return e.String()
}

// String returns the canonical spelling ("" for dimensionless).
func (c *Composite) String() string { return c.repr }

// Scale returns the factor relating this unit to its SI base expression.
func (c *Composite) Scale() float64 { return c.scale }

// IsDimensionless reports whether the unit has no physical dimension.
// A scaled dimensionless unit such as "m / km" or "%" still counts.
func (c *Composite) IsDimensionless() bool { return len(c.dims) == 0 }

// Dimensions returns the dimension exponents keyed by dimension name.
func (c *Composite) Dimensions() map[string]Exp {
	out := make(map[string]Exp, len(c.dims))
	for k, v := range c.dims {
		out[k] = v
	}

	return out
}

// mul returns c × o^times.
func (c *Composite) mul(o *Composite, times Exp) *Composite {
	terms := make([]term, 0, len(c.terms)+len(o.terms))
	terms = append(terms, c.terms...)
	for _, t := range o.terms {
		t.exp = t.exp.Mul(times)
		terms = append(terms, t)
	}

	return finish(c.factor*math.Pow(o.factor, times.Float64()), terms)
}

// pow returns c^p.
func (c *Composite) pow(p Exp) *Composite {
	terms := make([]term, len(c.terms))
	for i, t := range c.terms {
		t.exp = t.exp.Mul(p)
		terms[i] = t
	}

	return finish(math.Pow(c.factor, p.Float64()), terms)
}
