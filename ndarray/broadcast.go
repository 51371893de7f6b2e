// SPDX-License-Identifier: MIT
// Package: ndarray
//
// Purpose:
//   - numpy-style broadcasting and the elementwise kernels built on it.
//
// Design:
//   - Shapes are right-aligned; a dimension of 1 stretches to match the other
//     operand; missing leading dimensions count as 1.
//   - Map/Map2/MapN always allocate the output. Equal-shape inputs take a
//     flat fast-path (one index for every operand).
//
// Complexity:
//   - O(n·rank) for n output elements on the generic path, O(n) on the fast-path.

package ndarray

import "fmt"

const (
	ctxBroadcast   = "BroadcastShapes"
	ctxBroadcastTo = "BroadcastTo"
	ctxMapN        = "MapN"
)

// BroadcastShapes computes the common shape of the given shapes.
//
// Errors:
//   - ErrBroadcast when two non-unit dimensions disagree.
func BroadcastShapes(shapes ...[]int) ([]int, error) {
	rank := 0
	for _, s := range shapes {
		if len(s) > rank {
			rank = len(s)
		}
	}
	out := make([]int, rank)
	for k := range out {
		out[k] = 1
	}
	for _, s := range shapes {
		off := rank - len(s)
		for k, d := range s {
			cur := out[off+k]
			switch {
			case cur == d || d == 1:
				// keep cur
			case cur == 1:
				out[off+k] = d
			default:
				return nil, fmt.Errorf("ndarray.%s: %v: %w", ctxBroadcast, shapes, ErrBroadcast)
			}
		}
	}

	return out, nil
}

// broadcastStrides returns per-output-dimension strides into a source of
// shape src; stretched and missing dimensions get stride 0.
func broadcastStrides(src, out []int) []int {
	st := make([]int, len(out))
	srcSt := stridesOf(src)
	off := len(out) - len(src)
	for k := range src {
		if src[k] != 1 {
			st[off+k] = srcSt[k]
		}
	}

	return st
}

// BroadcastTo materializes a broadcast to exactly shape.
//
// Errors:
//   - ErrBroadcast when a cannot be stretched to shape.
func BroadcastTo(a *Array, shape ...int) (*Array, error) {
	if a == nil {
		return nil, arrayErrorf(ctxBroadcastTo, ErrNilArray)
	}
	common, err := BroadcastShapes(a.shape, shape)
	if err != nil || !sameShape(common, shape) {
		return nil, fmt.Errorf("ndarray.%s: %v to %v: %w", ctxBroadcastTo, a.shape, shape, ErrBroadcast)
	}
	if sameShape(a.shape, shape) {
		return a.Clone(), nil
	}
	st := broadcastStrides(a.shape, shape)

	return gather(a, shape, func(idx []int) int {
		off := 0
		for k, i := range idx {
			off += i * st[k]
		}
		return off
	}), nil
}

// Map applies f to every element and returns a new array of the same shape.
func Map(a *Array, f func(float64) float64) *Array {
	out := &Array{shape: cloneInts(a.shape), data: make([]float64, len(a.data))}
	for i, v := range a.data {
		out.data[i] = f(v)
	}

	return out
}

// Map2 applies f pairwise over the broadcast of a and b.
func Map2(a, b *Array, f func(x, y float64) float64) (*Array, error) {
	return MapN(func(v []float64) float64 { return f(v[0], v[1]) }, a, b)
}

// MapN applies f over the broadcast of all operands. f receives one value
// per operand in argument order; the slice is reused between calls and must
// not be retained.
//
// Errors:
//   - ErrNilArray for a nil operand; ErrBroadcast for incompatible shapes.
func MapN(f func(v []float64) float64, arrays ...*Array) (*Array, error) {
	shapes := make([][]int, len(arrays))
	for i, a := range arrays {
		if a == nil {
			return nil, arrayErrorf(ctxMapN, ErrNilArray)
		}
		shapes[i] = a.shape
	}
	shape, err := BroadcastShapes(shapes...)
	if err != nil {
		return nil, err
	}
	out := &Array{shape: shape, data: make([]float64, sizeOf(shape))}
	vals := make([]float64, len(arrays))

	// Fast-path: every operand already has the output shape.
	uniform := true
	for _, a := range arrays {
		if !sameShape(a.shape, shape) {
			uniform = false
			break
		}
	}
	if uniform {
		for i := range out.data {
			for k, a := range arrays {
				vals[k] = a.data[i]
			}
			out.data[i] = f(vals)
		}
		return out, nil
	}

	// Generic path: per-operand broadcast strides over the output multi-index.
	strides := make([][]int, len(arrays))
	for k, a := range arrays {
		strides[k] = broadcastStrides(a.shape, shape)
	}
	idx := make([]int, len(shape))
	for i := range out.data {
		unravel(i, shape, idx)
		for k, a := range arrays {
			off := 0
			for d, j := range idx {
				off += j * strides[k][d]
			}
			vals[k] = a.data[off]
		}
		out.data[i] = f(vals)
	}

	return out, nil
}

// gather builds an array of outShape whose element at multi-index idx is
// src.data[srcOffset(idx)]. srcOffset receives a reused slice.
func gather(src *Array, outShape []int, srcOffset func(idx []int) int) *Array {
	out := &Array{shape: cloneInts(outShape), data: make([]float64, sizeOf(outShape))}
	idx := make([]int, len(outShape))
	for i := range out.data {
		unravel(i, outShape, idx)
		out.data[i] = src.data[srcOffset(idx)]
	}

	return out
}
