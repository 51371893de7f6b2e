// SPDX-License-Identifier: MIT

package units

import (
	"math"
	"strconv"
)

// maxExpDen bounds the denominators recognized when turning a float64 power
// into a rational exponent (covers halves, thirds, ... up to 1/maxExpDen).
const maxExpDen = 64

// expTol is the tolerance for recognizing a float as p/q.
const expTol = 1e-9

// Exp is a reduced rational exponent num/den with den > 0.
// The zero value is the exponent 0.
type Exp struct {
	num int
	den int
}

// ratio builds a reduced exponent; den must be non-zero.
func ratio(num, den int) Exp {
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs(num), den)
	if g == 0 {
		return Exp{0, 1}
	}

	return Exp{num / g, den / g}
}

// whole is the integer exponent n.
func whole(n int) Exp { return Exp{n, 1} }

func (e Exp) norm() Exp {
	if e.den == 0 {
		return Exp{e.num, 1}
	}
	return e
}

// Add returns e+o.
func (e Exp) Add(o Exp) Exp {
	e, o = e.norm(), o.norm()
	return ratio(e.num*o.den+o.num*e.den, e.den*o.den)
}

// Mul returns e*o.
func (e Exp) Mul(o Exp) Exp {
	e, o = e.norm(), o.norm()
	return ratio(e.num*o.num, e.den*o.den)
}

// Neg returns -e.
func (e Exp) Neg() Exp {
	e = e.norm()
	return Exp{-e.num, e.den}
}

// IsZero reports e == 0.
func (e Exp) IsZero() bool { return e.num == 0 }

// Float64 returns e as a float.
func (e Exp) Float64() float64 {
	e = e.norm()
	return float64(e.num) / float64(e.den)
}

// String formats e the way it is written after a unit symbol: "2", "-1",
// "(1/2)".
func (e Exp) String() string {
	e = e.norm()
	if e.den == 1 {
		return strconv.Itoa(e.num)
	}

	return "(" + strconv.Itoa(e.num) + "/" + strconv.Itoa(e.den) + ")"
}

// ExpFromFloat recognizes p as a rational with denominator ≤ maxExpDen.
func ExpFromFloat(p float64) (Exp, bool) {
	if math.IsNaN(p) || math.IsInf(p, 0) || math.Abs(p) > 1<<20 {
		return Exp{}, false
	}
	for den := 1; den <= maxExpDen; den++ {
		n := math.Round(p * float64(den))
		if math.Abs(n-p*float64(den)) < expTol {
			return ratio(int(n), den), true
		}
	}

	return Exp{}, false
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

func abs(n int) int {
	if n < 0 {
		return -n
	}

	return n
}
