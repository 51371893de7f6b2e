// SPDX-License-Identifier: MIT

// Package ndarray - Array storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit offset formula Σ idx[k]*stride[k].
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//
// Complexity quicksheet:
//   - New: O(n) zero-init; At/Set: O(rank); Clone: O(n).

package ndarray

import (
	"fmt"
	"math"
	"strconv"
)

// ---------- error context tags ----------

const (
	ctxNew     = "New"
	ctxFrom    = "FromSlice"
	ctxFromAny = "FromAny"
	ctxAt      = "At"
	ctxSet     = "Set"
	ctxItem    = "Item"
)

// AllAxes selects the flattened array in operations taking an axis argument
// (the equivalent of axis=None). It is distinct from every valid axis,
// including negative ones counted from the end.
const AllAxes = math.MinInt32

// Array is a contiguous row-major N-dimensional array of float64 values.
//   - shape holds the dimension sizes; len(shape)==0 is a scalar.
//   - data holds Π shape elements in row-major order.
type Array struct {
	shape []int     // dimension sizes (each >= 0)
	data  []float64 // contiguous row-major storage (len == Π shape)
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Array)(nil)

// New creates a zero-filled array with the given shape.
// No dimensions yields a rank-0 scalar holding 0.
//
// Errors:
//   - ErrBadShape when any dimension is negative.
//
// Complexity: Time O(n), Space O(n).
func New(shape ...int) (*Array, error) {
	if err := validateShape(shape); err != nil {
		return nil, arrayErrorf(ctxNew, err)
	}

	return &Array{shape: cloneInts(shape), data: make([]float64, sizeOf(shape))}, nil
}

// Full creates an array of the given shape with every element set to v.
func Full(v float64, shape ...int) (*Array, error) {
	a, err := New(shape...)
	if err != nil {
		return nil, err
	}
	for i := range a.data {
		a.data[i] = v
	}

	return a, nil
}

// Scalar wraps v into a rank-0 array.
func Scalar(v float64) *Array {
	return &Array{shape: []int{}, data: []float64{v}}
}

// FromSlice copies data into a new array with the given shape.
// Without a shape the result is one-dimensional with len(data) elements.
//
// Errors:
//   - ErrBadShape when a dimension is negative or Π shape != len(data).
//
// Complexity: Time O(n), Space O(n).
func FromSlice(data []float64, shape ...int) (*Array, error) {
	if len(shape) == 0 {
		shape = []int{len(data)}
	}
	if err := validateShape(shape); err != nil {
		return nil, arrayErrorf(ctxFrom, err)
	}
	if sizeOf(shape) != len(data) {
		return nil, fmt.Errorf("ndarray.%s: %d values into shape %v: %w", ctxFrom, len(data), shape, ErrBadShape)
	}
	buf := make([]float64, len(data))
	copy(buf, data)

	return &Array{shape: cloneInts(shape), data: buf}, nil
}

// FromShape copies data into a new array with an explicit shape slice; an
// empty shape yields a scalar. Unlike FromSlice it never infers a shape.
func FromShape(shape []int, data []float64) (*Array, error) {
	if err := validateShape(shape); err != nil {
		return nil, arrayErrorf(ctxFrom, err)
	}
	if sizeOf(shape) != len(data) {
		return nil, fmt.Errorf("ndarray.%s: %d values into shape %v: %w", ctxFrom, len(data), shape, ErrBadShape)
	}
	buf := make([]float64, len(data))
	copy(buf, data)

	return &Array{shape: cloneInts(shape), data: buf}, nil
}

// FromAny converts a Go value into a fresh Array.
// Accepted inputs: numeric scalars (float, int and uint kinds), []float64,
// []float32, []int, rectangular [][]float64 and [][][]float64, and *Array
// (deep copy).
//
// Errors:
//   - ErrNilArray for nil inputs (untyped nil or a nil *Array).
//   - ErrBadShape for ragged nested slices and for an *Array whose data
//     does not fill its shape (the zero Array, for one).
//   - ErrUnsupportedInput for any other type.
func FromAny(v any) (*Array, error) {
	switch x := v.(type) {
	case nil:
		return nil, arrayErrorf(ctxFromAny, ErrNilArray)
	case *Array:
		if x == nil {
			return nil, arrayErrorf(ctxFromAny, ErrNilArray)
		}
		if len(x.data) != sizeOf(x.shape) {
			return nil, fmt.Errorf("ndarray.%s: %d elements for shape %v: %w", ctxFromAny, len(x.data), x.shape, ErrBadShape)
		}
		return x.Clone(), nil
	case float64:
		return Scalar(x), nil
	case float32:
		return Scalar(float64(x)), nil
	case int:
		return Scalar(float64(x)), nil
	case int8:
		return Scalar(float64(x)), nil
	case int16:
		return Scalar(float64(x)), nil
	case int32:
		return Scalar(float64(x)), nil
	case int64:
		return Scalar(float64(x)), nil
	case uint:
		return Scalar(float64(x)), nil
	case uint8:
		return Scalar(float64(x)), nil
	case uint16:
		return Scalar(float64(x)), nil
	case uint32:
		return Scalar(float64(x)), nil
	case uint64:
		return Scalar(float64(x)), nil
	case []float64:
		return FromSlice(x)
	case []float32:
		buf := make([]float64, len(x))
		for i, f := range x {
			buf[i] = float64(f)
		}
		return &Array{shape: []int{len(buf)}, data: buf}, nil
	case []int:
		buf := make([]float64, len(x))
		for i, n := range x {
			buf[i] = float64(n)
		}
		return &Array{shape: []int{len(buf)}, data: buf}, nil
	case [][]float64:
		return from2D(x)
	case [][][]float64:
		return from3D(x)
	default:
		return nil, fmt.Errorf("ndarray.%s: %T: %w", ctxFromAny, v, ErrUnsupportedInput)
	}
}

// from2D flattens a rectangular [][]float64, rejecting ragged rows.
func from2D(rows [][]float64) (*Array, error) {
	r := len(rows)
	c := 0
	if r > 0 {
		c = len(rows[0])
	}
	buf := make([]float64, 0, r*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("ndarray.%s: row %d has %d values, want %d: %w", ctxFromAny, i, len(row), c, ErrBadShape)
		}
		buf = append(buf, row...)
	}

	return &Array{shape: []int{r, c}, data: buf}, nil
}

// from3D flattens a rectangular [][][]float64, rejecting ragged planes.
func from3D(planes [][][]float64) (*Array, error) {
	p := len(planes)
	if p == 0 {
		return &Array{shape: []int{0, 0, 0}, data: []float64{}}, nil
	}
	first, err := from2D(planes[0])
	if err != nil {
		return nil, err
	}
	r, c := first.shape[0], first.shape[1]
	buf := make([]float64, 0, p*r*c)
	for k, plane := range planes {
		a, err := from2D(plane)
		if err != nil {
			return nil, err
		}
		if a.shape[0] != r || a.shape[1] != c {
			return nil, fmt.Errorf("ndarray.%s: plane %d has shape %v, want [%d %d]: %w", ctxFromAny, k, a.shape, r, c, ErrBadShape)
		}
		buf = append(buf, a.data...)
	}

	return &Array{shape: []int{p, r, c}, data: buf}, nil
}

// Shape returns a copy of the dimension sizes.
// Complexity: O(rank).
func (a *Array) Shape() []int { return cloneInts(a.shape) }

// Ndim returns the number of dimensions (0 for scalars).
func (a *Array) Ndim() int { return len(a.shape) }

// Size returns the number of elements.
func (a *Array) Size() int { return len(a.data) }

// IsScalar reports whether the array is rank 0.
func (a *Array) IsScalar() bool { return len(a.shape) == 0 }

// offsetOf bounds-checks idx and computes the row-major offset.
// Negative indices are not accepted here; At/Set are strict accessors.
func (a *Array) offsetOf(idx []int) (int, error) {
	if len(idx) != len(a.shape) {
		return 0, ErrOutOfRange
	}
	off := 0
	for k, i := range idx {
		if i < 0 || i >= a.shape[k] {
			return 0, ErrOutOfRange
		}
		off = off*a.shape[k] + i
	}

	return off, nil
}

// At returns the element at idx or ErrOutOfRange.
// A scalar is read with no indices.
func (a *Array) At(idx ...int) (float64, error) {
	off, err := a.offsetOf(idx)
	if err != nil {
		return 0, fmt.Errorf("ndarray.%s%v: %w", ctxAt, idx, err)
	}

	return a.data[off], nil
}

// Set stores v at idx or returns ErrOutOfRange.
// Arrays handed out by qfloat accessors are copies, so Set never reaches
// the storage of a measurement value.
func (a *Array) Set(v float64, idx ...int) error {
	off, err := a.offsetOf(idx)
	if err != nil {
		return fmt.Errorf("ndarray.%s%v: %w", ctxSet, idx, err)
	}
	a.data[off] = v

	return nil
}

// Flat returns the i-th element in row-major order without bounds wrapping.
// Panics on out-of-range i, like slice indexing.
func (a *Array) Flat(i int) float64 { return a.data[i] }

// Item returns the only element of a size-1 array.
//
// Errors:
//   - ErrBadShape when Size() != 1.
func (a *Array) Item() (float64, error) {
	if len(a.data) != 1 {
		return 0, fmt.Errorf("ndarray.%s: size %d: %w", ctxItem, len(a.data), ErrBadShape)
	}

	return a.data[0], nil
}

// Values returns a copy of the row-major elements.
func (a *Array) Values() []float64 {
	out := make([]float64, len(a.data))
	copy(out, a.data)

	return out
}

// Clone returns a deep copy with an independent buffer.
// Complexity: O(n).
func (a *Array) Clone() *Array {
	buf := make([]float64, len(a.data))
	copy(buf, a.data)

	return &Array{shape: cloneInts(a.shape), data: buf}
}

// Equal reports whether a and b have identical shapes and elements.
// NaN never equals NaN.
func Equal(a, b *Array) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !sameShape(a.shape, b.shape) {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}

	return true
}

// SharesMemory reports whether a and b are backed by the same buffer.
// Arrays built by this package never share memory with one another.
func SharesMemory(a, b *Array) bool {
	if a == nil || b == nil || len(a.data) == 0 || len(b.data) == 0 {
		return false
	}

	return &a.data[0] == &b.data[0]
}

// String renders the array with numpy-style nested brackets.
func (a *Array) String() string {
	return Format(a.shape, func(i int) string {
		return strconv.FormatFloat(a.data[i], 'g', -1, 64)
	})
}
