// SPDX-License-Identifier: MIT

package qfloat

import (
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/qfloat/ndarray"
)

// String renders nominal and uncertainty rounded to the first significant
// decimal of the uncertainty, followed by the unit:
//
//	1.235+-0.003 m
//	120+-30 s
//	[1.0+-0.1 2.0+-0.1] km
//
// Zero uncertainty prints the nominal at full precision with "+-0.0".
func (q QFloat) String() string {
	if !q.valid() {
		return "<invalid QFloat>"
	}
	body := ndarray.Format(q.nominal.Shape(), func(i int) string {
		return formatPair(q.nominal.Flat(i), q.std.Flat(i))
	})
	if u := q.unit.String(); u != "" {
		return body + " " + u
	}

	return body
}

// GoString implements fmt.GoStringer ("%#v").
func (q QFloat) GoString() string {
	return "<QFloat " + q.String() + ">"
}

// formatPair renders one nominal+-uncertainty element.
func formatPair(n, s float64) string {
	if s == 0 {
		return formatNumber(n) + "+-0.0"
	}
	if math.IsNaN(s) || math.IsInf(s, 0) || math.IsNaN(n) || math.IsInf(n, 0) {
		return formatNumber(n) + "+-" + formatNumber(s)
	}
	d := -leadingExponent(s)
	if d > 0 {
		return strconv.FormatFloat(n, 'f', d, 64) + "+-" + strconv.FormatFloat(s, 'f', d, 64)
	}
	p := math.Pow(10, float64(-d))

	return strconv.FormatFloat(math.Round(n/p)*p, 'f', 0, 64) +
		"+-" + strconv.FormatFloat(math.Round(s/p)*p, 'f', 0, 64)
}

// leadingExponent returns the decimal exponent of the first significant
// digit of s (0.0031 → -3, 25 → 1), read from the shortest 'e' rendering
// so exact powers of ten never fall on the wrong side of a log10.
func leadingExponent(s float64) int {
	r := strconv.FormatFloat(s, 'e', -1, 64)
	e, _ := strconv.Atoi(r[strings.IndexByte(r, 'e')+1:])

	return e
}

// formatNumber prints the shortest representation, keeping a decimal point
// on integral values ("2.0", not "2").
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}

	return s + ".0"
}
