// SPDX-License-Identifier: MIT
// Package: ndarray
//
// Purpose:
//   - Pure structural rearrangements (no arithmetic on values).
//   - Every result owns a fresh buffer; no op returns a view of its input.
//
// Axis conventions:
//   - Negative axes count from the end (numpy).
//   - AllAxes means "operate on the flattened array" where numpy accepts axis=None.

package ndarray

import "fmt"

const (
	ctxReshape     = "Reshape"
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
	ctxConcatenate = "Concatenate"
	ctxDelete      = "Delete"
	ctxInsert      = "Insert"
)

// Reshape returns a copy with a new shape of the same size.
// At most one dimension may be -1; it is inferred from the others.
//
// Errors:
//   - ErrBadShape when sizes disagree, when more than one -1 is given, or on
//     other negative dimensions.
func (a *Array) Reshape(shape ...int) (*Array, error) {
	target := cloneInts(shape)
	infer := -1
	known := 1
	for k, d := range target {
		switch {
		case d == -1 && infer < 0:
			infer = k
		case d < 0:
			return nil, fmt.Errorf("ndarray.%s%v: %w", ctxReshape, shape, ErrBadShape)
		default:
			known *= d
		}
	}
	if infer >= 0 {
		if known == 0 || len(a.data)%known != 0 {
			return nil, fmt.Errorf("ndarray.%s%v: size %d: %w", ctxReshape, shape, len(a.data), ErrBadShape)
		}
		target[infer] = len(a.data) / known
	}
	if sizeOf(target) != len(a.data) {
		return nil, fmt.Errorf("ndarray.%s%v: size %d: %w", ctxReshape, shape, len(a.data), ErrBadShape)
	}
	out := a.Clone()
	out.shape = target

	return out, nil
}

// Ravel returns a one-dimensional copy in row-major order.
func (a *Array) Ravel() *Array {
	out := a.Clone()
	out.shape = []int{len(a.data)}

	return out
}

// Transpose permutes the axes. With no arguments the axis order is reversed.
//
// Errors:
//   - ErrAxis when axes is not a permutation of 0..ndim-1.
func (a *Array) Transpose(axes ...int) (*Array, error) {
	n := len(a.shape)
	perm := make([]int, n)
	if len(axes) == 0 {
		for k := range perm {
			perm[k] = n - 1 - k
		}
	} else {
		if len(axes) != n {
			return nil, fmt.Errorf("ndarray.%s%v: %w", ctxTranspose, axes, ErrAxis)
		}
		seen := make([]bool, n)
		for k, ax := range axes {
			v, err := normalizeAxis(ax, n)
			if err != nil || seen[v] {
				return nil, fmt.Errorf("ndarray.%s%v: %w", ctxTranspose, axes, ErrAxis)
			}
			seen[v] = true
			perm[k] = v
		}
	}

	return a.permute(perm), nil
}

// permute gathers a with a validated axis permutation.
func (a *Array) permute(perm []int) *Array {
	srcSt := stridesOf(a.shape)
	outShape := make([]int, len(perm))
	for k, p := range perm {
		outShape[k] = a.shape[p]
	}

	return gather(a, outShape, func(idx []int) int {
		off := 0
		for k, i := range idx {
			off += i * srcSt[perm[k]]
		}
		return off
	})
}

// SwapAxes exchanges two axes.
func (a *Array) SwapAxes(ax1, ax2 int) (*Array, error) {
	n := len(a.shape)
	i, err := normalizeAxis(ax1, n)
	if err != nil {
		return nil, fmt.Errorf("ndarray.%s(%d,%d): %w", ctxSwapAxes, ax1, ax2, err)
	}
	j, err := normalizeAxis(ax2, n)
	if err != nil {
		return nil, fmt.Errorf("ndarray.%s(%d,%d): %w", ctxSwapAxes, ax1, ax2, err)
	}
	perm := make([]int, n)
	for k := range perm {
		perm[k] = k
	}
	perm[i], perm[j] = perm[j], perm[i]

	return a.permute(perm), nil
}

// Flip reverses the order of elements along the given axes (all axes when
// none are given).
func (a *Array) Flip(axes ...int) (*Array, error) {
	n := len(a.shape)
	flip := make([]bool, n)
	if len(axes) == 0 {
		for k := range flip {
			flip[k] = true
		}
	}
	for _, ax := range axes {
		v, err := normalizeAxis(ax, n)
		if err != nil {
			return nil, fmt.Errorf("ndarray.%s%v: %w", ctxFlip, axes, err)
		}
		flip[v] = true
	}
	st := stridesOf(a.shape)

	return gather(a, a.shape, func(idx []int) int {
		off := 0
		for k, i := range idx {
			if flip[k] {
				i = a.shape[k] - 1 - i
			}
			off += i * st[k]
		}
		return off
	}), nil
}

// Roll shifts elements cyclically along axis; AllAxes rolls the flattened
// array and restores the original shape.
func (a *Array) Roll(shift, axis int) (*Array, error) {
	if axis == AllAxes {
		n := len(a.data)
		out := a.Clone()
		if n == 0 {
			return out, nil
		}
		for i := range a.data {
			out.data[mod(i+shift, n)] = a.data[i]
		}
		return out, nil
	}
	ax, err := normalizeAxis(axis, len(a.shape))
	if err != nil {
		return nil, fmt.Errorf("ndarray.%s(%d,%d): %w", ctxRoll, shift, axis, err)
	}
	st := stridesOf(a.shape)
	dim := a.shape[ax]

	return gather(a, a.shape, func(idx []int) int {
		off := 0
		for k, i := range idx {
			if k == ax {
				i = mod(i-shift, dim)
			}
			off += i * st[k]
		}
		return off
	}), nil
}

// Tile repeats the whole array reps times per dimension. When reps is
// shorter than the rank, it is padded with leading 1s; when longer, the
// array gains leading unit dimensions.
func (a *Array) Tile(reps ...int) (*Array, error) {
	for _, r := range reps {
		if r < 0 {
			return nil, fmt.Errorf("ndarray.%s%v: %w", ctxTile, reps, ErrBadShape)
		}
	}
	rank := len(a.shape)
	if len(reps) > rank {
		rank = len(reps)
	}
	src := padLeft(a.shape, rank)
	rp := padLeft(reps, rank)
	outShape := make([]int, rank)
	for k := range outShape {
		outShape[k] = src[k] * rp[k]
	}
	st := stridesOf(src)

	return gather(a, outShape, func(idx []int) int {
		off := 0
		for k, i := range idx {
			off += (i % src[k]) * st[k]
		}
		return off
	}), nil
}

// Repeat repeats each element n times along axis; AllAxes repeats the
// elements of the flattened array.
func (a *Array) Repeat(n, axis int) (*Array, error) {
	if n < 0 {
		return nil, fmt.Errorf("ndarray.%s(%d): %w", ctxRepeat, n, ErrBadShape)
	}
	if axis == AllAxes {
		return a.Ravel().Repeat(n, 0)
	}
	ax, err := normalizeAxis(axis, len(a.shape))
	if err != nil {
		return nil, fmt.Errorf("ndarray.%s(%d,%d): %w", ctxRepeat, n, axis, err)
	}
	outShape := cloneInts(a.shape)
	outShape[ax] *= n
	st := stridesOf(a.shape)

	return gather(a, outShape, func(idx []int) int {
		off := 0
		for k, i := range idx {
			if k == ax {
				i /= n
			}
			off += i * st[k]
		}
		return off
	}), nil
}

// Take selects elements at the given indices along axis; AllAxes indexes
// the flattened array. Negative indices count from the end.
//
// Errors:
//   - ErrOutOfRange for indices outside [-dim, dim).
func (a *Array) Take(indices []int, axis int) (*Array, error) {
	if axis == AllAxes {
		return a.Ravel().Take(indices, 0)
	}
	ax, err := normalizeAxis(axis, len(a.shape))
	if err != nil {
		return nil, fmt.Errorf("ndarray.%s(axis=%d): %w", ctxTake, axis, err)
	}
	dim := a.shape[ax]
	sel := make([]int, len(indices))
	for k, i := range indices {
		if i < 0 {
			i += dim
		}
		if i < 0 || i >= dim {
			return nil, fmt.Errorf("ndarray.%s: index %d for dim %d: %w", ctxTake, indices[k], dim, ErrOutOfRange)
		}
		sel[k] = i
	}
	outShape := cloneInts(a.shape)
	outShape[ax] = len(sel)
	st := stridesOf(a.shape)

	return gather(a, outShape, func(idx []int) int {
		off := 0
		for k, i := range idx {
			if k == ax {
				i = sel[i]
			}
			off += i * st[k]
		}
		return off
	}), nil
}

// Slice selects start:stop:step along axis with Python slice semantics
// (negative bounds count from the end, out-of-range bounds are clamped).
//
// Errors:
//   - ErrBadShape when step == 0.
func (a *Array) Slice(axis, start, stop, step int) (*Array, error) {
	if step == 0 {
		return nil, fmt.Errorf("ndarray.%s: zero step: %w", ctxSlice, ErrBadShape)
	}
	if axis == AllAxes {
		return a.Ravel().Slice(0, start, stop, step)
	}
	ax, err := normalizeAxis(axis, len(a.shape))
	if err != nil {
		return nil, fmt.Errorf("ndarray.%s(axis=%d): %w", ctxSlice, axis, err)
	}

	return a.Take(sliceIndices(a.shape[ax], start, stop, step), ax)
}

// sliceIndices expands a Python-style slice over a dimension of size n.
func sliceIndices(n, start, stop, step int) []int {
	clamp := func(v, lo, hi int) int {
		if v < 0 {
			v += n
		}
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	var idx []int
	if step > 0 {
		s, e := clamp(start, 0, n), clamp(stop, 0, n)
		for i := s; i < e; i += step {
			idx = append(idx, i)
		}
		return idx
	}
	s, e := clamp(start, -1, n-1), clamp(stop, -1, n-1)
	for i := s; i > e; i += step {
		idx = append(idx, i)
	}

	return idx
}

// SliceEnd and SliceBegin are stop values that run a positive or negative
// step through the last or first element of a dimension.
const (
	SliceEnd   = int(^uint(0) >> 1)
	SliceBegin = -SliceEnd
)

// Resize returns an array of the given shape filled by repeating the
// flattened input cyclically (numpy.resize). An empty input fills zeros.
func (a *Array) Resize(shape ...int) (*Array, error) {
	out, err := New(shape...)
	if err != nil {
		return nil, fmt.Errorf("ndarray.%s%v: %w", ctxResize, shape, ErrBadShape)
	}
	n := len(a.data)
	if n == 0 {
		return out, nil
	}
	for i := range out.data {
		out.data[i] = a.data[i%n]
	}

	return out, nil
}

// Squeeze removes unit dimensions: the given axes, or all of them when none
// are given.
//
// Errors:
//   - ErrAxis when a requested axis is not of size 1.
func (a *Array) Squeeze(axes ...int) (*Array, error) {
	n := len(a.shape)
	drop := make([]bool, n)
	if len(axes) == 0 {
		for k, d := range a.shape {
			drop[k] = d == 1
		}
	}
	for _, ax := range axes {
		v, err := normalizeAxis(ax, n)
		if err != nil || a.shape[v] != 1 {
			return nil, fmt.Errorf("ndarray.%s%v: %w", ctxSqueeze, axes, ErrAxis)
		}
		drop[v] = true
	}
	shape := make([]int, 0, n)
	for k, d := range a.shape {
		if !drop[k] {
			shape = append(shape, d)
		}
	}
	out := a.Clone()
	out.shape = shape

	return out, nil
}

// ExpandDims inserts a unit dimension at axis (valid range [-ndim-1, ndim]).
func (a *Array) ExpandDims(axis int) (*Array, error) {
	ax, err := normalizeAxis(axis, len(a.shape)+1)
	if err != nil {
		return nil, fmt.Errorf("ndarray.%s(%d): %w", ctxExpandDims, axis, err)
	}
	shape := make([]int, 0, len(a.shape)+1)
	shape = append(shape, a.shape[:ax]...)
	shape = append(shape, 1)
	shape = append(shape, a.shape[ax:]...)
	out := a.Clone()
	out.shape = shape

	return out, nil
}

// Concatenate joins arrays along axis; AllAxes joins their flattened forms.
// All inputs must share rank and every dimension except axis.
//
// Errors:
//   - ErrEmpty with no inputs; ErrAxis for scalars or an invalid axis;
//     ErrBadShape for mismatched dimensions.
func Concatenate(axis int, arrays ...*Array) (*Array, error) {
	if len(arrays) == 0 {
		return nil, arrayErrorf(ctxConcatenate, ErrEmpty)
	}
	for _, a := range arrays {
		if a == nil {
			return nil, arrayErrorf(ctxConcatenate, ErrNilArray)
		}
	}
	if axis == AllAxes {
		flat := make([]*Array, len(arrays))
		for i, a := range arrays {
			flat[i] = a.Ravel()
		}
		return Concatenate(0, flat...)
	}
	first := arrays[0]
	ax, err := normalizeAxis(axis, len(first.shape))
	if err != nil {
		return nil, fmt.Errorf("ndarray.%s(axis=%d): %w", ctxConcatenate, axis, err)
	}
	outShape := cloneInts(first.shape)
	outShape[ax] = 0
	for _, a := range arrays {
		if len(a.shape) != len(first.shape) {
			return nil, fmt.Errorf("ndarray.%s: rank %d vs %d: %w", ctxConcatenate, len(a.shape), len(first.shape), ErrBadShape)
		}
		for k := range a.shape {
			if k != ax && a.shape[k] != first.shape[k] {
				return nil, fmt.Errorf("ndarray.%s: shape %v vs %v: %w", ctxConcatenate, a.shape, first.shape, ErrBadShape)
			}
		}
		outShape[ax] += a.shape[ax]
	}

	// Copy outer blocks: for each index over the leading axes, append each
	// input's contiguous chunk for that block.
	outer := sizeOf(first.shape[:ax])
	out := &Array{shape: outShape, data: make([]float64, 0, sizeOf(outShape))}
	for o := 0; o < outer; o++ {
		for _, a := range arrays {
			chunk := sizeOf(a.shape[ax:])
			out.data = append(out.data, a.data[o*chunk:(o+1)*chunk]...)
		}
	}

	return out, nil
}

// Append joins b after a along axis (numpy.append); AllAxes flattens both.
func Append(a, b *Array, axis int) (*Array, error) {
	return Concatenate(axis, a, b)
}

// Delete removes the given indices along axis; AllAxes deletes from the
// flattened array. Duplicate indices are removed once.
func (a *Array) Delete(indices []int, axis int) (*Array, error) {
	if axis == AllAxes {
		return a.Ravel().Delete(indices, 0)
	}
	ax, err := normalizeAxis(axis, len(a.shape))
	if err != nil {
		return nil, fmt.Errorf("ndarray.%s(axis=%d): %w", ctxDelete, axis, err)
	}
	dim := a.shape[ax]
	drop := make([]bool, dim)
	for _, i := range indices {
		if i < 0 {
			i += dim
		}
		if i < 0 || i >= dim {
			return nil, fmt.Errorf("ndarray.%s: index %d for dim %d: %w", ctxDelete, i, dim, ErrOutOfRange)
		}
		drop[i] = true
	}
	keep := make([]int, 0, dim)
	for i := 0; i < dim; i++ {
		if !drop[i] {
			keep = append(keep, i)
		}
	}

	return a.Take(keep, ax)
}

// Insert places values before index along axis; AllAxes inserts into the
// flattened array. Along an axis, values either has the receiver's rank
// (all dimensions but axis equal) or broadcasts to a single slice.
func (a *Array) Insert(index int, values *Array, axis int) (*Array, error) {
	if values == nil {
		return nil, arrayErrorf(ctxInsert, ErrNilArray)
	}
	if axis == AllAxes {
		return a.Ravel().Insert(index, values.Ravel(), 0)
	}
	ax, err := normalizeAxis(axis, len(a.shape))
	if err != nil {
		return nil, fmt.Errorf("ndarray.%s(axis=%d): %w", ctxInsert, axis, err)
	}
	dim := a.shape[ax]
	if index < 0 {
		index += dim
	}
	if index < 0 || index > dim {
		return nil, fmt.Errorf("ndarray.%s: index %d for dim %d: %w", ctxInsert, index, dim, ErrOutOfRange)
	}
	block := values
	if len(values.shape) != len(a.shape) {
		slot := cloneInts(a.shape)
		slot[ax] = 1
		if block, err = BroadcastTo(values, slot...); err != nil {
			return nil, fmt.Errorf("ndarray.%s: %w", ctxInsert, err)
		}
	}
	head, err := a.Slice(ax, 0, index, 1)
	if err != nil {
		return nil, err
	}
	tail, err := a.Slice(ax, index, SliceEnd, 1)
	if err != nil {
		return nil, err
	}

	return Concatenate(ax, head, block, tail)
}

// padLeft prepends 1s to s until it has rank n.
func padLeft(s []int, n int) []int {
	out := make([]int, n)
	off := n - len(s)
	for k := range out {
		if k < off {
			out[k] = 1
		} else {
			out[k] = s[k-off]
		}
	}

	return out
}

// mod is the non-negative remainder of i by n (n > 0).
func mod(i, n int) int {
	r := i % n
	if r < 0 {
		r += n
	}

	return r
}
