// SPDX-License-Identifier: MIT

package qfloat

import (
	"math"
	"slices"

	"github.com/katalvlaran/qfloat/ndarray"
)

const (
	ctxLess              = "Less"
	ctxLessEqual         = "LessEqual"
	ctxGreater           = "Greater"
	ctxGreaterEqual      = "GreaterEqual"
	ctxEqualWithinErrors = "EqualWithinErrors"
)

// aligned lifts a and b and converts b into a's unit.
func aligned(op string, a, b any) (x QFloat, yn, ys *ndarray.Array, err error) {
	qs, sys, err := operands(a, b)
	if err != nil {
		return QFloat{}, nil, nil, err
	}
	x = qs[0]
	yn, ys, err = convertTo(qs[1], x.unit, sys, op)
	if err != nil {
		return QFloat{}, nil, nil, err
	}

	return x, yn, ys, nil
}

// Equal reports whether a and b hold the same nominals and the same
// uncertainties elementwise once b is expressed in a's unit. Shapes must be
// identical: a scalar never equals an array, even one it broadcasts to.
// Incompatible units and invalid operands compare unequal; Equal never fails.
func Equal(a, b any) bool {
	x, yn, ys, err := aligned("Equal", a, b)
	if err != nil || !slices.Equal(x.nominal.Shape(), yn.Shape()) {
		return false
	}
	eq := func(p, q float64) bool { return p == q }
	nm, err := ndarray.Compare(x.nominal, yn, eq)
	if err != nil || !nm.All() {
		return false
	}
	sm, err := ndarray.Compare(x.std, ys, eq)

	return err == nil && sm.All()
}

// NotEqual is the negation of Equal.
func NotEqual(a, b any) bool { return !Equal(a, b) }

// Equal is the method form of Equal.
func (q QFloat) Equal(o any) bool { return Equal(q, o) }

// order compares nominals only, after unit conversion.
func order(op string, a, b any, pred func(x, y float64) bool) (*ndarray.Mask, error) {
	x, yn, _, err := aligned(op, a, b)
	if err != nil {
		return nil, err
	}
	m, err := ndarray.Compare(x.nominal, yn, pred)
	if err != nil {
		return nil, shapeErrorf(op, err)
	}

	return m, nil
}

// Less returns the elementwise mask a < b on nominal values.
func Less(a, b any) (*ndarray.Mask, error) {
	return order(ctxLess, a, b, func(x, y float64) bool { return x < y })
}

// LessEqual returns the elementwise mask a <= b on nominal values.
func LessEqual(a, b any) (*ndarray.Mask, error) {
	return order(ctxLessEqual, a, b, func(x, y float64) bool { return x <= y })
}

// Greater returns the elementwise mask a > b on nominal values.
func Greater(a, b any) (*ndarray.Mask, error) {
	return order(ctxGreater, a, b, func(x, y float64) bool { return x > y })
}

// GreaterEqual returns the elementwise mask a >= b on nominal values.
func GreaterEqual(a, b any) (*ndarray.Mask, error) {
	return order(ctxGreaterEqual, a, b, func(x, y float64) bool { return x >= y })
}

// EqualWithinErrors reports whether every element pair overlaps within the
// combined uncertainty: |a - b| <= σa + σb.
func EqualWithinErrors(a, b any) (bool, error) {
	x, yn, ys, err := aligned(ctxEqualWithinErrors, a, b)
	if err != nil {
		return false, err
	}
	ok, err := ndarray.MapN(func(v []float64) float64 {
		if math.Abs(v[0]-v[1]) <= v[2]+v[3] {
			return 1
		}
		return 0
	}, x.nominal, yn, x.std, ys)
	if err != nil {
		return false, shapeErrorf(ctxEqualWithinErrors, err)
	}
	for i := 0; i < ok.Size(); i++ {
		if ok.Flat(i) == 0 {
			return false, nil
		}
	}

	return true, nil
}
