// SPDX-License-Identifier: MIT
// Package qfloat: elementwise function dispatch table.
//
// Every supported function is described by a Handler stored in an explicit
// registry keyed by name. The table is validated at package init against the
// enumerated supported set: a missing or surplus entry is a programmer error
// and panics.

package qfloat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/qfloat/ndarray"
	"github.com/katalvlaran/qfloat/units"
)

// UnitConstraint states what a handler requires of its input units.
type UnitConstraint int

const (
	// AnyUnit accepts operands as they are.
	AnyUnit UnitConstraint = iota
	// DimensionlessInput converts every operand to the dimensionless unit.
	DimensionlessInput
	// AngleInput accepts angles or dimensionless values and converts them
	// to radians.
	AngleInput
	// SameUnitInput converts every operand to the first operand's unit.
	SameUnitInput
)

// String implements fmt.Stringer.
func (c UnitConstraint) String() string {
	switch c {
	case AnyUnit:
		return "any"
	case DimensionlessInput:
		return "dimensionless"
	case AngleInput:
		return "angle"
	case SameUnitInput:
		return "same-unit"
	default:
		return fmt.Sprintf("UnitConstraint(%d)", int(c))
	}
}

// UnitRule states the unit of a handler's result.
type UnitRule int

const (
	// KeepUnit carries the (converted) first operand's unit.
	KeepUnit UnitRule = iota
	// DimensionlessOutput yields a dimensionless result.
	DimensionlessOutput
	// RadianOutput yields radians.
	RadianOutput
	// DegreeOutput yields degrees.
	DegreeOutput
	// PowerOutput raises the first operand's unit to Handler.Exponent.
	PowerOutput
	// CustomOutput leaves units and values to Handler.Apply.
	CustomOutput
)

// String implements fmt.Stringer.
func (r UnitRule) String() string {
	switch r {
	case KeepUnit:
		return "keep"
	case DimensionlessOutput:
		return "dimensionless"
	case RadianOutput:
		return "rad"
	case DegreeOutput:
		return "deg"
	case PowerOutput:
		return "power"
	case CustomOutput:
		return "custom"
	default:
		return fmt.Sprintf("UnitRule(%d)", int(r))
	}
}

// Handler describes one registered elementwise function.
//
// Generic handlers set Eval and Deriv: Eval computes f from one value per
// operand and Deriv writes ∂f/∂xi into g. Handlers with Output ==
// CustomOutput set Apply instead and receive the raw operands.
type Handler struct {
	Name     string
	Arity    int
	Input    UnitConstraint
	Output   UnitRule
	Exponent float64 // PowerOutput only
	Eval     func(x []float64) float64
	Deriv    func(x, g []float64)
	Apply    func(args ...any) (QFloat, error)
}

// ---------- panic messages ----------

const (
	panicRegistryMissing    = "qfloat: registry: supported function %q has no handler"
	panicRegistryUnlisted   = "qfloat: registry: handler %q is not in the supported set"
	panicRegistryNameClash  = "qfloat: registry: handler registered under %q names itself %q"
	panicRegistryIncomplete = "qfloat: registry: handler %q lacks an implementation"
)

// checkRegistry enforces that reg holds exactly the supported names, each
// with a usable implementation.
func checkRegistry(reg map[string]Handler, supported []string) {
	want := make(map[string]bool, len(supported))
	for _, name := range supported {
		want[name] = true
		h, ok := reg[name]
		if !ok {
			panic(fmt.Sprintf(panicRegistryMissing, name))
		}
		if h.Name != name {
			panic(fmt.Sprintf(panicRegistryNameClash, name, h.Name))
		}
		if h.Output == CustomOutput && h.Apply == nil ||
			h.Output != CustomOutput && (h.Eval == nil || h.Deriv == nil) {
			panic(fmt.Sprintf(panicRegistryIncomplete, name))
		}
	}
	for name := range reg {
		if !want[name] {
			panic(fmt.Sprintf(panicRegistryUnlisted, name))
		}
	}
}

// Funcs returns the registered handlers sorted by name.
func Funcs() []Handler {
	out := make([]Handler, 0, len(ufuncs))
	for _, h := range ufuncs {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

// Lookup returns the handler registered under name.
func Lookup(name string) (Handler, bool) {
	h, ok := ufuncs[name]
	return h, ok
}

// Kwargs carries keyword arguments of CallUfunc and CallArrayFunc.
type Kwargs map[string]any

// auxiliaryKeys are output-placement controls. They are accepted and
// ignored: results are always freshly allocated.
var auxiliaryKeys = map[string]bool{
	"out": true, "where": true, "casting": true, "order": true, "dtype": true, "subok": true,
}

// checkKeys rejects keys that are neither auxiliary nor in allowed.
func (kw Kwargs) checkKeys(op string, allowed ...string) error {
	for k := range kw {
		if auxiliaryKeys[k] {
			continue
		}
		ok := false
		for _, a := range allowed {
			if k == a {
				ok = true
				break
			}
		}
		if !ok {
			return unsupportedf(op, "keyword %q", k)
		}
	}

	return nil
}

const ctxCallUfunc = "CallUfunc"

// CallUfunc applies the registered function name to args.
//
// Errors:
//   - ErrOperationNotSupported for unregistered names, wrong argument
//     counts or unknown keywords.
//   - ErrUnits when an operand violates the handler's unit constraint.
func CallUfunc(name string, kw Kwargs, args ...any) (QFloat, error) {
	h, ok := ufuncs[name]
	if !ok {
		return QFloat{}, unsupportedf(ctxCallUfunc, "function %q", name)
	}
	if err := kw.checkKeys(name); err != nil {
		return QFloat{}, err
	}
	if len(args) != h.Arity {
		return QFloat{}, unsupportedf(name, "%d operands, want %d", len(args), h.Arity)
	}
	if h.Output == CustomOutput {
		return h.Apply(args...)
	}

	return h.call(args)
}

// call runs a generic handler: unit preparation, kernel, output unit.
func (h Handler) call(args []any) (QFloat, error) {
	qs, sys, err := operands(args...)
	if err != nil {
		return QFloat{}, err
	}
	noms := make([]*ndarray.Array, len(qs))
	stds := make([]*ndarray.Array, len(qs))
	unit := qs[0].unit
	for i, q := range qs {
		target, err := h.inputUnit(sys, q, qs[0].unit)
		if err != nil {
			return QFloat{}, err
		}
		if i == 0 {
			unit = target
		}
		if noms[i], stds[i], err = convertTo(q, target, sys, h.Name); err != nil {
			return QFloat{}, err
		}
	}
	out, err := h.outputUnit(sys, unit)
	if err != nil {
		return QFloat{}, err
	}
	nom, std, err := kernel{eval: h.Eval, grad: h.Deriv}.run(h.Name, noms, stds)
	if err != nil {
		return QFloat{}, err
	}

	return QFloat{nominal: nom, std: std, unit: out, sys: sys}, nil
}

// inputUnit resolves the unit operand q is converted to before evaluation.
func (h Handler) inputUnit(sys units.Adapter, q QFloat, first units.Unit) (units.Unit, error) {
	switch h.Input {
	case DimensionlessInput:
		none := sys.Dimensionless()
		if !sys.Compatible(q.unit, none) {
			return nil, unitsMsgf(h.Name, "needs a dimensionless operand, got %q", q.unit.String())
		}
		return none, nil
	case AngleInput:
		if sys.IsAngle(q.unit) {
			return radian(sys, h.Name)
		}
		if none := sys.Dimensionless(); sys.Compatible(q.unit, none) {
			return none, nil
		}
		return nil, unitsMsgf(h.Name, "needs an angle, got %q", q.unit.String())
	case SameUnitInput:
		return first, nil
	default:
		return q.unit, nil
	}
}

// outputUnit applies the handler's unit rule to the prepared first unit.
func (h Handler) outputUnit(sys units.Adapter, first units.Unit) (units.Unit, error) {
	switch h.Output {
	case DimensionlessOutput:
		return sys.Dimensionless(), nil
	case RadianOutput:
		return radian(sys, h.Name)
	case DegreeOutput:
		u, err := sys.Canonicalize("deg")
		if err != nil {
			return nil, unitsErrorf(h.Name, err)
		}
		return u, nil
	case PowerOutput:
		u, err := sys.Power(first, h.Exponent)
		if err != nil {
			return nil, unitsErrorf(h.Name, err)
		}
		return u, nil
	default:
		return first, nil
	}
}

func radian(sys units.Adapter, op string) (units.Unit, error) {
	u, err := sys.Canonicalize("rad")
	if err != nil {
		return nil, unitsErrorf(op, err)
	}

	return u, nil
}

// String renders a one-line summary such as "sqrt/1 any -> power^0.5".
func (h Handler) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s/%d %s -> %s", h.Name, h.Arity, h.Input, h.Output)
	if h.Output == PowerOutput {
		fmt.Fprintf(&b, "^%s", formatNumber(h.Exponent))
	}

	return b.String()
}
