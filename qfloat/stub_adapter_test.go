// SPDX-License-Identifier: MIT

package qfloat_test

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/qfloat/units"
)

var errStub = errors.New("stub: incompatible")

// stubUnit is a unit whose identity is its spelling.
type stubUnit string

func (u stubUnit) String() string { return string(u) }

// stubAdapter understands exactly what it is told: units are opaque strings
// that convert only to themselves, except rad and deg.
type stubAdapter struct{}

var _ units.Adapter = stubAdapter{}

func (stubAdapter) Canonicalize(spec any) (units.Unit, error) {
	switch v := spec.(type) {
	case nil:
		return stubUnit(""), nil
	case string:
		if v == "bogus" {
			return nil, fmt.Errorf("stub: unknown unit %q", v)
		}
		return stubUnit(v), nil
	case stubUnit:
		return v, nil
	default:
		return nil, fmt.Errorf("stub: cannot read %T", spec)
	}
}

func (a stubAdapter) Compatible(x, y units.Unit) bool {
	_, err := a.ConversionFactor(x, y)
	return err == nil
}

func (stubAdapter) ConversionFactor(from, to units.Unit) (float64, error) {
	f, t := from.String(), to.String()
	switch {
	case f == t:
		return 1, nil
	case f == "deg" && t == "rad":
		return math.Pi / 180, nil
	case f == "rad" && t == "deg":
		return 180 / math.Pi, nil
	}
	return 0, fmt.Errorf("%w: %q -> %q", errStub, f, t)
}

func (stubAdapter) Compose(x, y units.Unit, op units.Op) (units.Unit, error) {
	switch {
	case y.String() == "":
		return x, nil
	case x.String() == "" && op == units.Mul:
		return y, nil
	}
	return stubUnit(x.String() + op.String() + y.String()), nil
}

func (stubAdapter) Power(u units.Unit, p float64) (units.Unit, error) {
	if u.String() == "" || p == 1 {
		return u, nil
	}
	return stubUnit(fmt.Sprintf("(%s)^%g", u, p)), nil
}

func (stubAdapter) IsAngle(u units.Unit) bool {
	return u.String() == "rad" || u.String() == "deg"
}

func (stubAdapter) Dimensionless() units.Unit { return stubUnit("") }
