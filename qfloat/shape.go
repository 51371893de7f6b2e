// SPDX-License-Identifier: MIT

package qfloat

import "github.com/katalvlaran/qfloat/ndarray"

// ---------- error context tags ----------

const (
	ctxReshape     = "Reshape"
	ctxRavel       = "Ravel"
	ctxTranspose   = "Transpose"
	ctxSwapAxes    = "SwapAxes"
	ctxFlip        = "Flip"
	ctxRoll        = "Roll"
	ctxTile        = "Tile"
	ctxRepeat      = "Repeat"
	ctxTake        = "Take"
	ctxSlice       = "Slice"
	ctxResize      = "Resize"
	ctxSqueeze     = "Squeeze"
	ctxExpandDims  = "ExpandDims"
	ctxDelete      = "Delete"
	ctxInsert      = "Insert"
	ctxAppend      = "Append"
	ctxConcatenate = "Concatenate"
)

// restructure applies the same rearrangement to nominal and uncertainty.
// The unit is kept and the result never shares storage with q.
func (q QFloat) restructure(op string, f func(a *ndarray.Array) (*ndarray.Array, error)) (QFloat, error) {
	if !q.valid() {
		return QFloat{}, constructionErrorf(op, nil)
	}
	nom, err := f(q.nominal)
	if err != nil {
		return QFloat{}, shapeErrorf(op, err)
	}
	std, err := f(q.std)
	if err != nil {
		return QFloat{}, shapeErrorf(op, err)
	}

	return QFloat{nominal: nom, std: std, unit: q.unit, sys: q.sys}, nil
}

// Reshape gives the value a new shape with the same size; one dimension
// may be -1 and is inferred.
func (q QFloat) Reshape(shape ...int) (QFloat, error) {
	return q.restructure(ctxReshape, func(a *ndarray.Array) (*ndarray.Array, error) { return a.Reshape(shape...) })
}

// Ravel returns the flattened value in row-major order.
func (q QFloat) Ravel() (QFloat, error) {
	return q.restructure(ctxRavel, func(a *ndarray.Array) (*ndarray.Array, error) { return a.Ravel(), nil })
}

// Flatten is Ravel; both always copy.
func (q QFloat) Flatten() (QFloat, error) { return q.Ravel() }

// Transpose permutes the axes; no axes reverses them.
func (q QFloat) Transpose(axes ...int) (QFloat, error) {
	return q.restructure(ctxTranspose, func(a *ndarray.Array) (*ndarray.Array, error) { return a.Transpose(axes...) })
}

// SwapAxes exchanges two axes.
func (q QFloat) SwapAxes(ax1, ax2 int) (QFloat, error) {
	return q.restructure(ctxSwapAxes, func(a *ndarray.Array) (*ndarray.Array, error) { return a.SwapAxes(ax1, ax2) })
}

// Flip reverses the given axes, or all of them.
func (q QFloat) Flip(axes ...int) (QFloat, error) {
	return q.restructure(ctxFlip, func(a *ndarray.Array) (*ndarray.Array, error) { return a.Flip(axes...) })
}

// Roll shifts elements cyclically along axis (ndarray.AllAxes: flattened).
func (q QFloat) Roll(shift, axis int) (QFloat, error) {
	return q.restructure(ctxRoll, func(a *ndarray.Array) (*ndarray.Array, error) { return a.Roll(shift, axis) })
}

// Tile repeats the whole value reps times per dimension.
func (q QFloat) Tile(reps ...int) (QFloat, error) {
	return q.restructure(ctxTile, func(a *ndarray.Array) (*ndarray.Array, error) { return a.Tile(reps...) })
}

// Repeat repeats each element n times along axis.
func (q QFloat) Repeat(n, axis int) (QFloat, error) {
	return q.restructure(ctxRepeat, func(a *ndarray.Array) (*ndarray.Array, error) { return a.Repeat(n, axis) })
}

// Take selects indices along axis.
func (q QFloat) Take(indices []int, axis int) (QFloat, error) {
	return q.restructure(ctxTake, func(a *ndarray.Array) (*ndarray.Array, error) { return a.Take(indices, axis) })
}

// Slice selects start:stop:step along axis with Python slice semantics.
// Use ndarray.SliceEnd / ndarray.SliceBegin for open bounds.
func (q QFloat) Slice(axis, start, stop, step int) (QFloat, error) {
	return q.restructure(ctxSlice, func(a *ndarray.Array) (*ndarray.Array, error) { return a.Slice(axis, start, stop, step) })
}

// Resize fills a new shape by cycling through the flattened elements.
func (q QFloat) Resize(shape ...int) (QFloat, error) {
	return q.restructure(ctxResize, func(a *ndarray.Array) (*ndarray.Array, error) { return a.Resize(shape...) })
}

// Squeeze drops unit dimensions.
func (q QFloat) Squeeze(axes ...int) (QFloat, error) {
	return q.restructure(ctxSqueeze, func(a *ndarray.Array) (*ndarray.Array, error) { return a.Squeeze(axes...) })
}

// ExpandDims inserts a unit dimension at axis.
func (q QFloat) ExpandDims(axis int) (QFloat, error) {
	return q.restructure(ctxExpandDims, func(a *ndarray.Array) (*ndarray.Array, error) { return a.ExpandDims(axis) })
}

// Delete removes indices along axis.
func (q QFloat) Delete(indices []int, axis int) (QFloat, error) {
	return q.restructure(ctxDelete, func(a *ndarray.Array) (*ndarray.Array, error) { return a.Delete(indices, axis) })
}

// Insert places values before index along axis. values is converted to the
// receiver's unit; plain numbers are dimensionless and only fit a
// dimensionless receiver.
func (q QFloat) Insert(index int, values any, axis int) (QFloat, error) {
	if !q.valid() {
		return QFloat{}, constructionErrorf(ctxInsert, nil)
	}
	v, err := lift(values, q.sys)
	if err != nil {
		return QFloat{}, err
	}
	vn, vs, err := convertTo(v, q.unit, q.sys, ctxInsert)
	if err != nil {
		return QFloat{}, err
	}
	nom, err := q.nominal.Insert(index, vn, axis)
	if err != nil {
		return QFloat{}, shapeErrorf(ctxInsert, err)
	}
	std, err := q.std.Insert(index, vs, axis)
	if err != nil {
		return QFloat{}, shapeErrorf(ctxInsert, err)
	}

	return QFloat{nominal: nom, std: std, unit: q.unit, sys: q.sys}, nil
}

// Append joins values after q along axis (ndarray.AllAxes flattens both),
// in q's unit.
func (q QFloat) Append(values any, axis int) (QFloat, error) {
	if !q.valid() {
		return QFloat{}, constructionErrorf(ctxAppend, nil)
	}
	return concatenate(ctxAppend, axis, q, values)
}

// Concatenate joins values along axis in the unit of the first one.
func Concatenate(axis int, values ...any) (QFloat, error) {
	return concatenate(ctxConcatenate, axis, values...)
}

func concatenate(op string, axis int, values ...any) (QFloat, error) {
	if len(values) == 0 {
		return QFloat{}, shapeErrorf(op, ndarray.ErrEmpty)
	}
	qs, sys, err := operands(values...)
	if err != nil {
		return QFloat{}, err
	}
	unit := qs[0].unit
	noms := make([]*ndarray.Array, len(qs))
	stds := make([]*ndarray.Array, len(qs))
	for i, v := range qs {
		if noms[i], stds[i], err = convertTo(v, unit, sys, op); err != nil {
			return QFloat{}, err
		}
	}
	nom, err := ndarray.Concatenate(axis, noms...)
	if err != nil {
		return QFloat{}, shapeErrorf(op, err)
	}
	std, err := ndarray.Concatenate(axis, stds...)
	if err != nil {
		return QFloat{}, shapeErrorf(op, err)
	}

	return QFloat{nominal: nom, std: std, unit: unit, sys: sys}, nil
}
