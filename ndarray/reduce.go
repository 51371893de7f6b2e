// SPDX-License-Identifier: MIT
// Package: ndarray
//
// Purpose:
//   - Lane-wise reductions. A lane is the set of flat offsets that collapse
//     into one output element when reducing along an axis.
//   - Callers needing paired reductions (e.g. a value and its uncertainty
//     selected at the same position) use Lanes directly.

package ndarray

import "fmt"

const (
	ctxLanes      = "Lanes"
	ctxReduce     = "Reduce"
	ctxAccumulate = "Accumulate"
)

// Lanes returns the output shape of a reduction along axis and, for every
// output element in row-major order, the flat offsets of its lane in input
// order. AllAxes yields a rank-0 output with a single lane over all elements.
func (a *Array) Lanes(axis int) ([]int, [][]int, error) {
	if axis == AllAxes {
		lane := make([]int, len(a.data))
		for i := range lane {
			lane[i] = i
		}
		return []int{}, [][]int{lane}, nil
	}
	ax, err := normalizeAxis(axis, len(a.shape))
	if err != nil {
		return nil, nil, fmt.Errorf("ndarray.%s(%d): %w", ctxLanes, axis, err)
	}
	outShape := make([]int, 0, len(a.shape)-1)
	outShape = append(outShape, a.shape[:ax]...)
	outShape = append(outShape, a.shape[ax+1:]...)

	st := stridesOf(a.shape)
	dim := a.shape[ax]
	outer := sizeOf(a.shape[:ax]) // blocks before axis
	inner := st[ax]               // contiguous run after axis
	lanes := make([][]int, 0, sizeOf(outShape))
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			lane := make([]int, dim)
			base := o*dim*inner + in
			for k := 0; k < dim; k++ {
				lane[k] = base + k*inner
			}
			lanes = append(lanes, lane)
		}
	}

	return outShape, lanes, nil
}

// Reduce collapses axis with f, which receives the lane values in order.
//
// Errors:
//   - ErrAxis for an invalid axis.
func (a *Array) Reduce(axis int, f func(lane []float64) float64) (*Array, error) {
	shape, lanes, err := a.Lanes(axis)
	if err != nil {
		return nil, fmt.Errorf("ndarray.%s: %w", ctxReduce, err)
	}
	out := &Array{shape: shape, data: make([]float64, len(lanes))}
	var buf []float64
	for i, lane := range lanes {
		buf = buf[:0]
		for _, off := range lane {
			buf = append(buf, a.data[off])
		}
		out.data[i] = f(buf)
	}

	return out, nil
}

// Accumulate runs a left fold along axis and keeps every partial result
// (cumsum-style). The output has the input shape, or is flattened for AllAxes.
func (a *Array) Accumulate(axis int, f func(acc, v float64) float64) (*Array, error) {
	src := a
	if axis == AllAxes {
		src = a.Ravel()
		axis = 0
	}
	_, lanes, err := src.Lanes(axis)
	if err != nil {
		return nil, fmt.Errorf("ndarray.%s: %w", ctxAccumulate, err)
	}
	out := src.Clone()
	for _, lane := range lanes {
		for k := 1; k < len(lane); k++ {
			out.data[lane[k]] = f(out.data[lane[k-1]], src.data[lane[k]])
		}
	}

	return out, nil
}

// Sum adds every lane along axis.
func (a *Array) Sum(axis int) (*Array, error) {
	return a.Reduce(axis, func(lane []float64) float64 {
		s := 0.0
		for _, v := range lane {
			s += v
		}
		return s
	})
}
