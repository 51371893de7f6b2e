// SPDX-License-Identifier: MIT
// Package qfloat: array-function registry.
//
// CallArrayFunc dispatches structural operations and reductions by their
// numpy names. Parameters travel as keywords:
//
//	CallArrayFunc("reshape", Kwargs{"shape": []int{2, 3}}, q)
//	CallArrayFunc("concatenate", Kwargs{"axis": 0}, a, b, c)
//	CallArrayFunc("sum", Kwargs{"axis": nil}, q)
//
// An "axis" of nil selects ndarray.AllAxes.

package qfloat

import (
	"sort"

	"github.com/katalvlaran/qfloat/ndarray"
)

const ctxCallArrayFunc = "CallArrayFunc"

// arrayFunc is one entry of the array-function registry.
type arrayFunc struct {
	keys []string // accepted keywords besides the auxiliary ones
	call func(kw Kwargs, args []any) (QFloat, error)
}

// unaryArrayFunc wraps an operation on a single receiver.
func unaryArrayFunc(keys []string, f func(q QFloat, kw Kwargs) (QFloat, error)) arrayFunc {
	return arrayFunc{keys: keys, call: func(kw Kwargs, args []any) (QFloat, error) {
		if len(args) != 1 {
			return QFloat{}, unsupportedf(ctxCallArrayFunc, "%d operands, want 1", len(args))
		}
		q, err := receiver(args[0])
		if err != nil {
			return QFloat{}, err
		}
		return f(q, kw)
	}}
}

// receiver lifts the first operand with its own or the default adapter.
func receiver(v any) (QFloat, error) {
	qs, _, err := operands(v)
	if err != nil {
		return QFloat{}, err
	}
	return qs[0], nil
}

var arrayFuncs = map[string]arrayFunc{
	"reshape": unaryArrayFunc([]string{"shape"}, func(q QFloat, kw Kwargs) (QFloat, error) {
		shape, err := kw.ints("reshape", "shape")
		if err != nil {
			return QFloat{}, err
		}
		return q.Reshape(shape...)
	}),
	"ravel":   unaryArrayFunc(nil, func(q QFloat, _ Kwargs) (QFloat, error) { return q.Ravel() }),
	"flatten": unaryArrayFunc(nil, func(q QFloat, _ Kwargs) (QFloat, error) { return q.Flatten() }),
	"transpose": unaryArrayFunc([]string{"axes"}, func(q QFloat, kw Kwargs) (QFloat, error) {
		axes, err := kw.optionalInts("transpose", "axes")
		if err != nil {
			return QFloat{}, err
		}
		return q.Transpose(axes...)
	}),
	"swapaxes": unaryArrayFunc([]string{"axis1", "axis2"}, func(q QFloat, kw Kwargs) (QFloat, error) {
		a1, err := kw.integer("swapaxes", "axis1", 0)
		if err != nil {
			return QFloat{}, err
		}
		a2, err := kw.integer("swapaxes", "axis2", 1)
		if err != nil {
			return QFloat{}, err
		}
		return q.SwapAxes(a1, a2)
	}),
	"flip": unaryArrayFunc([]string{"axis"}, func(q QFloat, kw Kwargs) (QFloat, error) {
		axes, err := kw.optionalInts("flip", "axis")
		if err != nil {
			return QFloat{}, err
		}
		return q.Flip(axes...)
	}),
	"fliplr": unaryArrayFunc(nil, func(q QFloat, _ Kwargs) (QFloat, error) { return q.Flip(1) }),
	"flipud": unaryArrayFunc(nil, func(q QFloat, _ Kwargs) (QFloat, error) { return q.Flip(0) }),
	"roll": unaryArrayFunc([]string{"shift", "axis"}, func(q QFloat, kw Kwargs) (QFloat, error) {
		shift, err := kw.integer("roll", "shift", 0)
		if err != nil {
			return QFloat{}, err
		}
		axis, err := kw.axis("roll")
		if err != nil {
			return QFloat{}, err
		}
		return q.Roll(shift, axis)
	}),
	"tile": unaryArrayFunc([]string{"reps"}, func(q QFloat, kw Kwargs) (QFloat, error) {
		reps, err := kw.ints("tile", "reps")
		if err != nil {
			return QFloat{}, err
		}
		return q.Tile(reps...)
	}),
	"repeat": unaryArrayFunc([]string{"repeats", "axis"}, func(q QFloat, kw Kwargs) (QFloat, error) {
		n, err := kw.integer("repeat", "repeats", 1)
		if err != nil {
			return QFloat{}, err
		}
		axis, err := kw.axis("repeat")
		if err != nil {
			return QFloat{}, err
		}
		return q.Repeat(n, axis)
	}),
	"take": unaryArrayFunc([]string{"indices", "axis"}, func(q QFloat, kw Kwargs) (QFloat, error) {
		idx, err := kw.ints("take", "indices")
		if err != nil {
			return QFloat{}, err
		}
		axis, err := kw.axis("take")
		if err != nil {
			return QFloat{}, err
		}
		return q.Take(idx, axis)
	}),
	"slice": unaryArrayFunc([]string{"axis", "start", "stop", "step"}, func(q QFloat, kw Kwargs) (QFloat, error) {
		axis, err := kw.integer("slice", "axis", 0)
		if err != nil {
			return QFloat{}, err
		}
		start, err := kw.integer("slice", "start", 0)
		if err != nil {
			return QFloat{}, err
		}
		step, err := kw.integer("slice", "step", 1)
		if err != nil {
			return QFloat{}, err
		}
		open := ndarray.SliceEnd
		if step < 0 {
			open = ndarray.SliceBegin
		}
		stop, err := kw.integer("slice", "stop", open)
		if err != nil {
			return QFloat{}, err
		}
		return q.Slice(axis, start, stop, step)
	}),
	"resize": unaryArrayFunc([]string{"shape"}, func(q QFloat, kw Kwargs) (QFloat, error) {
		shape, err := kw.ints("resize", "shape")
		if err != nil {
			return QFloat{}, err
		}
		return q.Resize(shape...)
	}),
	"squeeze": unaryArrayFunc([]string{"axis"}, func(q QFloat, kw Kwargs) (QFloat, error) {
		axes, err := kw.optionalInts("squeeze", "axis")
		if err != nil {
			return QFloat{}, err
		}
		return q.Squeeze(axes...)
	}),
	"expand_dims": unaryArrayFunc([]string{"axis"}, func(q QFloat, kw Kwargs) (QFloat, error) {
		axis, err := kw.integer("expand_dims", "axis", 0)
		if err != nil {
			return QFloat{}, err
		}
		return q.ExpandDims(axis)
	}),
	"delete": unaryArrayFunc([]string{"obj", "axis"}, func(q QFloat, kw Kwargs) (QFloat, error) {
		idx, err := kw.ints("delete", "obj")
		if err != nil {
			return QFloat{}, err
		}
		axis, err := kw.axis("delete")
		if err != nil {
			return QFloat{}, err
		}
		return q.Delete(idx, axis)
	}),
	"insert": unaryArrayFunc([]string{"obj", "values", "axis"}, func(q QFloat, kw Kwargs) (QFloat, error) {
		index, err := kw.integer("insert", "obj", 0)
		if err != nil {
			return QFloat{}, err
		}
		values, ok := kw["values"]
		if !ok {
			return QFloat{}, unsupportedf("insert", "missing keyword %q", "values")
		}
		axis, err := kw.axis("insert")
		if err != nil {
			return QFloat{}, err
		}
		return q.Insert(index, values, axis)
	}),
	"append": {keys: []string{"axis"}, call: func(kw Kwargs, args []any) (QFloat, error) {
		if len(args) != 2 {
			return QFloat{}, unsupportedf("append", "%d operands, want 2", len(args))
		}
		axis, err := kw.axis("append")
		if err != nil {
			return QFloat{}, err
		}
		return concatenate(ctxAppend, axis, args...)
	}},
	"concatenate": {keys: []string{"axis"}, call: func(kw Kwargs, args []any) (QFloat, error) {
		axis, err := kw.integerOrAll("concatenate", 0)
		if err != nil {
			return QFloat{}, err
		}
		return Concatenate(axis, args...)
	}},
	"sum": unaryArrayFunc([]string{"axis"}, func(q QFloat, kw Kwargs) (QFloat, error) {
		axis, err := kw.axis("sum")
		if err != nil {
			return QFloat{}, err
		}
		return q.Sum(axis)
	}),
	"mean": unaryArrayFunc([]string{"axis"}, func(q QFloat, kw Kwargs) (QFloat, error) {
		axis, err := kw.axis("mean")
		if err != nil {
			return QFloat{}, err
		}
		return q.Mean(axis)
	}),
	"amin": unaryArrayFunc([]string{"axis"}, func(q QFloat, kw Kwargs) (QFloat, error) {
		axis, err := kw.axis("amin")
		if err != nil {
			return QFloat{}, err
		}
		return q.Min(axis)
	}),
	"amax": unaryArrayFunc([]string{"axis"}, func(q QFloat, kw Kwargs) (QFloat, error) {
		axis, err := kw.axis("amax")
		if err != nil {
			return QFloat{}, err
		}
		return q.Max(axis)
	}),
	"cumsum": unaryArrayFunc([]string{"axis"}, func(q QFloat, kw Kwargs) (QFloat, error) {
		axis, err := kw.axis("cumsum")
		if err != nil {
			return QFloat{}, err
		}
		return q.CumSum(axis)
	}),
	"round": unaryArrayFunc([]string{"decimals"}, func(q QFloat, kw Kwargs) (QFloat, error) {
		d, err := kw.integer("round", "decimals", 0)
		if err != nil {
			return QFloat{}, err
		}
		return q.Round(d)
	}),
	"copy": unaryArrayFunc(nil, func(q QFloat, _ Kwargs) (QFloat, error) { return New(q) }),
}

func init() {
	arrayFuncs["min"] = arrayFuncs["amin"]
	arrayFuncs["max"] = arrayFuncs["amax"]
	arrayFuncs["around"] = arrayFuncs["round"]
}

// CallArrayFunc applies the array operation name to args.
//
// Errors:
//   - ErrOperationNotSupported for unknown names, unknown keywords and
//     keyword values of the wrong type.
func CallArrayFunc(name string, kw Kwargs, args ...any) (QFloat, error) {
	f, ok := arrayFuncs[name]
	if !ok {
		return QFloat{}, unsupportedf(ctxCallArrayFunc, "array function %q", name)
	}
	if err := kw.checkKeys(name, f.keys...); err != nil {
		return QFloat{}, err
	}

	return f.call(kw, args)
}

// ArrayFuncs lists the registered array-function names in order.
func ArrayFuncs() []string {
	out := make([]string, 0, len(arrayFuncs))
	for name := range arrayFuncs {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// ---------- keyword accessors ----------

// integer reads an int keyword, def when absent or nil.
func (kw Kwargs) integer(op, key string, def int) (int, error) {
	v, ok := kw[key]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case int32:
		return int(n), nil
	case float64:
		if n == float64(int(n)) {
			return int(n), nil
		}
	}

	return 0, unsupportedf(op, "keyword %q: want an integer, got %T", key, v)
}

// axis reads "axis"; absent or nil selects ndarray.AllAxes.
func (kw Kwargs) axis(op string) (int, error) {
	return kw.integer(op, "axis", ndarray.AllAxes)
}

// integerOrAll reads "axis" with a default, where an explicit nil selects
// ndarray.AllAxes.
func (kw Kwargs) integerOrAll(op string, def int) (int, error) {
	v, ok := kw["axis"]
	if !ok {
		return def, nil
	}
	if v == nil {
		return ndarray.AllAxes, nil
	}

	return kw.integer(op, "axis", def)
}

// ints reads a required integer list; a single integer is a list of one.
func (kw Kwargs) ints(op, key string) ([]int, error) {
	v, ok := kw[key]
	if !ok || v == nil {
		return nil, unsupportedf(op, "missing keyword %q", key)
	}
	return toInts(op, key, v)
}

// optionalInts reads an integer list that may be absent.
func (kw Kwargs) optionalInts(op, key string) ([]int, error) {
	v, ok := kw[key]
	if !ok || v == nil {
		return nil, nil
	}
	return toInts(op, key, v)
}

func toInts(op, key string, v any) ([]int, error) {
	switch x := v.(type) {
	case []int:
		out := make([]int, len(x))
		copy(out, x)
		return out, nil
	case int:
		return []int{x}, nil
	case []float64:
		out := make([]int, len(x))
		for i, f := range x {
			if f != float64(int(f)) {
				return nil, unsupportedf(op, "keyword %q: %g is not an integer", key, f)
			}
			out[i] = int(f)
		}
		return out, nil
	case []any:
		out := make([]int, len(x))
		for i, e := range x {
			if e == nil {
				return nil, unsupportedf(op, "keyword %q: element %d is nil", key, i)
			}
			n, err := Kwargs{key: e}.integer(op, key, 0)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	default:
		return nil, unsupportedf(op, "keyword %q: want integers, got %T", key, v)
	}
}
