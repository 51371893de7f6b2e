// SPDX-License-Identifier: MIT

package qfloat

import (
	"math"

	"github.com/katalvlaran/qfloat/ndarray"
	"github.com/katalvlaran/qfloat/units"
)

// ---------- error context tags ----------

const (
	ctxAdd      = "Add"
	ctxSub      = "Sub"
	ctxMul      = "Mul"
	ctxDiv      = "Div"
	ctxPow      = "Pow"
	ctxFloorDiv = "FloorDiv"
	ctxMod      = "Mod"
	ctxNeg      = "Neg"
	ctxAbs      = "Abs"
	ctxPos      = "Pos"
	ctxMatMul   = "MatMul"
)

// Add returns x + y. The units must be compatible; y is converted to x's
// unit, which the result carries.
func Add(x, y any) (QFloat, error) { return additive(ctxAdd, addKernel, true, x, y) }

// Sub returns x - y under the same unit rules as Add.
func Sub(x, y any) (QFloat, error) { return additive(ctxSub, subKernel, true, x, y) }

// Mod returns the remainder of x / y with the sign of y, in x's unit.
func Mod(x, y any) (QFloat, error) { return additive(ctxMod, modKernel, true, x, y) }

// FloorDiv returns floor(x / y) after converting y to x's unit. The result
// is dimensionless with zero uncertainty.
func FloorDiv(x, y any) (QFloat, error) { return additive(ctxFloorDiv, floorDivKernel, false, x, y) }

// additive runs k on x and y converted to x's unit. keep selects x's unit for
// the result, dimensionless otherwise.
func additive(op string, k kernel, keep bool, x, y any) (QFloat, error) {
	qs, sys, err := operands(x, y)
	if err != nil {
		return QFloat{}, err
	}
	a, b := qs[0], qs[1]
	bn, bs, err := convertTo(b, a.unit, sys, op)
	if err != nil {
		return QFloat{}, err
	}
	nom, std, err := k.run(op, []*ndarray.Array{a.nominal, bn}, []*ndarray.Array{a.std, bs})
	if err != nil {
		return QFloat{}, err
	}
	unit := a.unit
	if !keep {
		unit = sys.Dimensionless()
	}

	return QFloat{nominal: nom, std: std, unit: unit, sys: sys}, nil
}

// Mul returns x * y; the unit is the product of the operand units.
func Mul(x, y any) (QFloat, error) { return multiplicative(ctxMul, mulKernel, units.Mul, x, y) }

// Div returns x / y; the unit is the quotient of the operand units.
func Div(x, y any) (QFloat, error) { return multiplicative(ctxDiv, divKernel, units.Div, x, y) }

func multiplicative(op string, k kernel, uop units.Op, x, y any) (QFloat, error) {
	qs, sys, err := operands(x, y)
	if err != nil {
		return QFloat{}, err
	}
	a, b := qs[0], qs[1]
	unit, err := sys.Compose(a.unit, b.unit, uop)
	if err != nil {
		return QFloat{}, unitsErrorf(op, err)
	}
	nom, std, err := k.run(op, []*ndarray.Array{a.nominal, b.nominal}, []*ndarray.Array{a.std, b.std})
	if err != nil {
		return QFloat{}, err
	}

	return QFloat{nominal: nom, std: std, unit: unit, sys: sys}, nil
}

// Pow returns x ** y.
//
// The exponent must be dimensionless. A dimensionless base accepts any
// exponent array, uncertain or not. A dimensional base needs a scalar exact
// exponent the adapter can raise the unit to (m ** 2 → m2, m ** 0.5 → m(1/2)).
func Pow(x, y any) (QFloat, error) {
	qs, sys, err := operands(x, y)
	if err != nil {
		return QFloat{}, err
	}
	base, exp := qs[0], qs[1]
	none := sys.Dimensionless()
	en, es, err := convertTo(exp, none, sys, ctxPow)
	if err != nil {
		return QFloat{}, err
	}

	var (
		bn, bs = base.nominal, base.std
		unit   = none
	)
	if sys.Compatible(base.unit, none) {
		if bn, bs, err = convertTo(base, none, sys, ctxPow); err != nil {
			return QFloat{}, err
		}
	} else {
		p, err := exactScalar(en, es)
		if err != nil {
			return QFloat{}, err
		}
		if unit, err = sys.Power(base.unit, p); err != nil {
			return QFloat{}, unitsErrorf(ctxPow, err)
		}
	}
	nom, std, err := powKernel.run(ctxPow, []*ndarray.Array{bn, en}, []*ndarray.Array{bs, es})
	if err != nil {
		return QFloat{}, err
	}

	return QFloat{nominal: nom, std: std, unit: unit, sys: sys}, nil
}

// exactScalar extracts the exponent applied to a dimensional base.
func exactScalar(nom, std *ndarray.Array) (float64, error) {
	if nom.Size() != 1 {
		return 0, unitsMsgf(ctxPow, "dimensional base needs a scalar exponent, got shape %v", nom.Shape())
	}
	p, _ := nom.Item()
	if s, _ := std.Item(); s != 0 {
		return 0, unitsMsgf(ctxPow, "dimensional base needs an exact exponent, got %g+-%g", p, s)
	}

	return p, nil
}

// Neg returns -x.
func Neg(x any) (QFloat, error) { return unitPreserving(ctxNeg, x, func(v float64) float64 { return -v }) }

// Abs returns |x| with unchanged uncertainty.
func Abs(x any) (QFloat, error) { return unitPreserving(ctxAbs, x, math.Abs) }

// Pos returns a copy of x.
func Pos(x any) (QFloat, error) { return unitPreserving(ctxPos, x, func(v float64) float64 { return v }) }

// unitPreserving applies f (|f'| = 1) to the nominal and copies the
// uncertainty.
func unitPreserving(op string, x any, f func(float64) float64) (QFloat, error) {
	qs, sys, err := operands(x)
	if err != nil {
		return QFloat{}, err
	}
	a := qs[0]

	return QFloat{nominal: ndarray.Map(a.nominal, f), std: a.std.Clone(), unit: a.unit, sys: sys}, nil
}

// MatMul always fails: tensor algebra on measurements is not provided.
func MatMul(_, _ any) (QFloat, error) {
	return QFloat{}, unsupportedf(ctxMatMul, "matrix multiplication")
}

// ---------- method forms ----------

// Add is the method form of the package function Add.
func (q QFloat) Add(y any) (QFloat, error) { return Add(q, y) }

// Sub is the method form of Sub.
func (q QFloat) Sub(y any) (QFloat, error) { return Sub(q, y) }

// Mul is the method form of Mul.
func (q QFloat) Mul(y any) (QFloat, error) { return Mul(q, y) }

// Div is the method form of Div.
func (q QFloat) Div(y any) (QFloat, error) { return Div(q, y) }

// Pow is the method form of Pow.
func (q QFloat) Pow(y any) (QFloat, error) { return Pow(q, y) }

// FloorDiv is the method form of FloorDiv.
func (q QFloat) FloorDiv(y any) (QFloat, error) { return FloorDiv(q, y) }

// Mod is the method form of Mod.
func (q QFloat) Mod(y any) (QFloat, error) { return Mod(q, y) }

// Neg is the method form of Neg.
func (q QFloat) Neg() (QFloat, error) { return Neg(q) }

// Abs is the method form of Abs.
func (q QFloat) Abs() (QFloat, error) { return Abs(q) }

// Pos is the method form of Pos.
func (q QFloat) Pos() (QFloat, error) { return Pos(q) }

// MatMul is the method form of MatMul; it always fails.
func (q QFloat) MatMul(y any) (QFloat, error) { return MatMul(q, y) }
