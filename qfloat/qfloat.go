// SPDX-License-Identifier: MIT

package qfloat

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qfloat/ndarray"
	"github.com/katalvlaran/qfloat/units"
)

// ---------- error context tags ----------

const (
	ctxNew       = "New"
	ctxTo        = "To"
	ctxDecompose = "Decompose"
	ctxFloat64   = "Float64"
	ctxOperand   = "operand"
)

// QFloat is a measurement: nominal values, their one-sigma uncertainties and
// a physical unit. Values are immutable; every operation returns a new
// QFloat with its own storage. The zero value is invalid.
type QFloat struct {
	nominal *ndarray.Array // rank 0 for scalars
	std     *ndarray.Array // same shape as nominal, elementwise >= 0 or NaN
	unit    units.Unit     // never nil on a valid value
	sys     units.Adapter  // adapter that produced unit
}

// New builds a QFloat from a nominal value and options.
//
// The nominal may be a number, a numeric slice ([]float64, []int,
// [][]float64, [][][]float64), an *ndarray.Array or another QFloat, whose
// uncertainty and unit are inherited unless overridden by options. WithUnit
// on a QFloat converts it (1 m with WithUnit("cm") is 100 cm); an explicit
// WithUncertainty is then read in the new unit.
//
// Errors:
//   - ErrConstruction: nil or unsupported nominal, uncertainty not
//     broadcastable to the nominal's shape, negative uncertainty.
//   - ErrUnits: unit unknown to the adapter, or not convertible from the
//     source QFloat's unit.
func New(nominal any, opts ...Option) (QFloat, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	switch v := nominal.(type) {
	case *QFloat:
		if v == nil {
			return QFloat{}, constructionErrorf(ctxNew, nil)
		}
		nominal = *v
	}
	if src, ok := nominal.(QFloat); ok {
		if !src.valid() {
			return QFloat{}, constructionErrorf(ctxNew, nil)
		}
		if !o.systemSet {
			o.system = src.sys
		}
		nom, std := src.nominal, src.std
		if o.unitSet {
			// a new unit converts the values; it never relabels them
			target, err := o.system.Canonicalize(o.unit)
			if err != nil {
				return QFloat{}, unitsErrorf(ctxNew, err)
			}
			if nom, std, err = convertTo(src, target, o.system, ctxNew); err != nil {
				return QFloat{}, err
			}
			o.unit = target
		} else {
			o.unit = src.unit
		}
		if !o.uncertaintySet {
			o.uncertainty = std
		}
		nominal = nom
	}

	nom, err := ndarray.FromAny(nominal)
	if err != nil {
		return QFloat{}, constructionErrorf(ctxNew, err)
	}
	std, err := uncertaintyFor(nom, o.uncertainty)
	if err != nil {
		return QFloat{}, err
	}
	u, err := o.system.Canonicalize(o.unit)
	if err != nil {
		return QFloat{}, unitsErrorf(ctxNew, err)
	}

	return QFloat{nominal: nom, std: std, unit: u, sys: o.system}, nil
}

// uncertaintyFor converts u to an array of exactly nom's shape.
func uncertaintyFor(nom *ndarray.Array, u any) (*ndarray.Array, error) {
	if u == nil {
		std, err := ndarray.New(nom.Shape()...)
		if err != nil {
			return nil, constructionErrorf(ctxNew, err)
		}
		return std, nil
	}
	raw, err := ndarray.FromAny(u)
	if err != nil {
		return nil, constructionErrorf(ctxNew, err)
	}
	std, err := ndarray.BroadcastTo(raw, nom.Shape()...)
	if err != nil {
		return nil, constructionErrorf(ctxNew, err)
	}
	for i := 0; i < std.Size(); i++ {
		if s := std.Flat(i); s < 0 {
			return nil, fmt.Errorf("qfloat.%s: %w: negative uncertainty %g at %d", ctxNew, ErrConstruction, s, i)
		}
	}

	return std, nil
}

// Scalar builds a scalar measurement.
func Scalar(nominal, uncertainty float64, unit string) (QFloat, error) {
	return New(nominal, WithUncertainty(uncertainty), WithUnit(unit))
}

// MustScalar is Scalar that panics on error; intended for tests and examples.
func MustScalar(nominal, uncertainty float64, unit string) QFloat {
	q, err := Scalar(nominal, uncertainty, unit)
	if err != nil {
		panic(err)
	}

	return q
}

func (q QFloat) valid() bool {
	return q.nominal != nil && q.std != nil && q.unit != nil && q.sys != nil
}

// Nominal returns a copy of the nominal values.
func (q QFloat) Nominal() *ndarray.Array {
	if q.nominal == nil {
		return nil
	}
	return q.nominal.Clone()
}

// Uncertainty returns a copy of the one-sigma uncertainties.
func (q QFloat) Uncertainty() *ndarray.Array {
	if q.std == nil {
		return nil
	}
	return q.std.Clone()
}

// Unit returns the unit descriptor.
func (q QFloat) Unit() units.Unit { return q.unit }

// System returns the unit adapter the value was built with.
func (q QFloat) System() units.Adapter { return q.sys }

// Shape returns the array shape; empty for scalars.
func (q QFloat) Shape() []int {
	if q.nominal == nil {
		return nil
	}
	return q.nominal.Shape()
}

// Size returns the number of elements.
func (q QFloat) Size() int {
	if q.nominal == nil {
		return 0
	}
	return q.nominal.Size()
}

// Ndim returns the number of dimensions.
func (q QFloat) Ndim() int {
	if q.nominal == nil {
		return 0
	}
	return q.nominal.Ndim()
}

// Float64 returns the nominal value and uncertainty of a size-1 value.
func (q QFloat) Float64() (nominal, uncertainty float64, err error) {
	if !q.valid() {
		return 0, 0, constructionErrorf(ctxFloat64, nil)
	}
	if nominal, err = q.nominal.Item(); err != nil {
		return 0, 0, shapeErrorf(ctxFloat64, err)
	}
	uncertainty, _ = q.std.Item()

	return nominal, uncertainty, nil
}

// To converts the value to target, which is anything the adapter can
// canonicalize (a unit string or descriptor). Nominals scale by the
// conversion factor k and uncertainties by |k|.
func (q QFloat) To(target any) (QFloat, error) {
	if !q.valid() {
		return QFloat{}, constructionErrorf(ctxTo, nil)
	}
	u, err := q.sys.Canonicalize(target)
	if err != nil {
		return QFloat{}, unitsErrorf(ctxTo, err)
	}
	nom, std, err := convertTo(q, u, q.sys, ctxTo)
	if err != nil {
		return QFloat{}, err
	}

	return QFloat{nominal: nom, std: std, unit: u, sys: q.sys}, nil
}

// decomposer is implemented by adapters able to express a unit in base units.
type decomposer interface {
	Decompose(u units.Unit) (units.Unit, error)
}

// Decompose converts the value to the adapter's base-unit expression, e.g.
// 36 km / h becomes 10 m / s. Adapters without base units report
// ErrOperationNotSupported.
func (q QFloat) Decompose() (QFloat, error) {
	if !q.valid() {
		return QFloat{}, constructionErrorf(ctxDecompose, nil)
	}
	d, ok := q.sys.(decomposer)
	if !ok {
		return QFloat{}, unsupportedf(ctxDecompose, "adapter %T has no base units", q.sys)
	}
	base, err := d.Decompose(q.unit)
	if err != nil {
		return QFloat{}, unitsErrorf(ctxDecompose, err)
	}

	return q.To(base)
}

// convertTo returns q's arrays expressed in target using sys. The result is
// always fresh storage.
func convertTo(q QFloat, target units.Unit, sys units.Adapter, op string) (nom, std *ndarray.Array, err error) {
	k, err := sys.ConversionFactor(q.unit, target)
	if err != nil {
		return nil, nil, unitsErrorf(op, err)
	}
	if k == 1 {
		return q.nominal.Clone(), q.std.Clone(), nil
	}
	ak := math.Abs(k)

	return ndarray.Map(q.nominal, func(v float64) float64 { return v * k }),
		ndarray.Map(q.std, func(v float64) float64 { return v * ak }),
		nil
}

// lift turns an operand into a QFloat. Plain numbers and arrays become
// dimensionless values without uncertainty in sys.
func lift(v any, sys units.Adapter) (QFloat, error) {
	switch x := v.(type) {
	case QFloat:
		if !x.valid() {
			return QFloat{}, constructionErrorf(ctxOperand, nil)
		}
		return x, nil
	case *QFloat:
		if x == nil || !x.valid() {
			return QFloat{}, constructionErrorf(ctxOperand, nil)
		}
		return *x, nil
	}
	nom, err := ndarray.FromAny(v)
	if err != nil {
		return QFloat{}, constructionErrorf(ctxOperand, err)
	}
	std, err := ndarray.New(nom.Shape()...)
	if err != nil {
		return QFloat{}, constructionErrorf(ctxOperand, err)
	}

	return QFloat{nominal: nom, std: std, unit: sys.Dimensionless(), sys: sys}, nil
}

// operands lifts args using the adapter of the first QFloat among them.
func operands(args ...any) ([]QFloat, units.Adapter, error) {
	var sys units.Adapter
	for _, a := range args {
		if q, ok := a.(QFloat); ok && q.sys != nil {
			sys = q.sys
			break
		}
		if q, ok := a.(*QFloat); ok && q != nil && q.sys != nil {
			sys = q.sys
			break
		}
	}
	if sys == nil {
		sys = units.Default()
	}
	out := make([]QFloat, len(args))
	for i, a := range args {
		q, err := lift(a, sys)
		if err != nil {
			return nil, nil, err
		}
		out[i] = q
	}

	return out, sys, nil
}
