// SPDX-License-Identifier: MIT
// Package: ndarray
//
// Purpose:
//  - Single source of truth for shape/axis checks and index arithmetic.
//  - Validators return plain sentinels; call sites wrap with their op name.
//
// Determinism & Performance:
//  - All helpers are pure and allocate at most one small []int.

package ndarray

// validateShape rejects negative dimensions.
func validateShape(shape []int) error {
	for _, d := range shape {
		if d < 0 {
			return ErrBadShape
		}
	}

	return nil
}

// sizeOf returns Π shape (1 for the empty shape).
func sizeOf(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}

	return n
}

// cloneInts copies s; a nil input yields an empty, non-nil slice so that
// rank-0 shapes compare and print consistently.
func cloneInts(s []int) []int {
	out := make([]int, len(s))
	copy(out, s)

	return out
}

// sameShape compares two shapes dimension by dimension.
func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// stridesOf computes row-major element strides for shape.
func stridesOf(shape []int) []int {
	st := make([]int, len(shape))
	acc := 1
	for k := len(shape) - 1; k >= 0; k-- {
		st[k] = acc
		acc *= shape[k]
	}

	return st
}

// unravel writes the multi-index of flat offset into idx (len(idx)==len(shape)).
func unravel(flat int, shape []int, idx []int) {
	for k := len(shape) - 1; k >= 0; k-- {
		d := shape[k]
		if d == 0 {
			idx[k] = 0
			continue
		}
		idx[k] = flat % d
		flat /= d
	}
}

// normalizeAxis maps a possibly negative axis into [0, ndim).
// AllAxes is not accepted here; callers branch on it first.
func normalizeAxis(axis, ndim int) (int, error) {
	if axis < 0 {
		axis += ndim
	}
	if axis < 0 || axis >= ndim {
		return 0, ErrAxis
	}

	return axis, nil
}

// ValidateSameShape reports ErrBadShape when a and b differ in shape.
func ValidateSameShape(a, b *Array) error {
	if a == nil || b == nil {
		return ErrNilArray
	}
	if !sameShape(a.shape, b.shape) {
		return ErrBadShape
	}

	return nil
}
