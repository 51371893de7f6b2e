// SPDX-License-Identifier: MIT

package ndarray

import (
	"fmt"
	"strconv"
)

const ctxCompare = "Compare"

// Mask is an immutable boolean array produced by elementwise comparisons.
type Mask struct {
	shape []int
	data  []bool
}

// Compare evaluates pred over the broadcast of a and b.
//
// Errors:
//   - ErrNilArray for nil operands; ErrBroadcast for incompatible shapes.
func Compare(a, b *Array, pred func(x, y float64) bool) (*Mask, error) {
	if a == nil || b == nil {
		return nil, arrayErrorf(ctxCompare, ErrNilArray)
	}
	shape, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, err
	}
	out := &Mask{shape: shape, data: make([]bool, sizeOf(shape))}
	if sameShape(a.shape, shape) && sameShape(b.shape, shape) {
		for i := range out.data {
			out.data[i] = pred(a.data[i], b.data[i])
		}
		return out, nil
	}

	sa, sb := broadcastStrides(a.shape, shape), broadcastStrides(b.shape, shape)
	idx := make([]int, len(shape))
	for i := range out.data {
		unravel(i, shape, idx)
		oa, ob := 0, 0
		for d, j := range idx {
			oa += j * sa[d]
			ob += j * sb[d]
		}
		out.data[i] = pred(a.data[oa], b.data[ob])
	}

	return out, nil
}

// NewMask copies values into a mask of the given shape.
func NewMask(values []bool, shape ...int) (*Mask, error) {
	if len(shape) == 0 {
		shape = []int{len(values)}
	}
	if err := validateShape(shape); err != nil || sizeOf(shape) != len(values) {
		return nil, fmt.Errorf("ndarray.NewMask%v: %w", shape, ErrBadShape)
	}
	buf := make([]bool, len(values))
	copy(buf, values)

	return &Mask{shape: cloneInts(shape), data: buf}, nil
}

// Shape returns a copy of the mask's dimensions.
func (m *Mask) Shape() []int { return cloneInts(m.shape) }

// Size returns the number of elements.
func (m *Mask) Size() int { return len(m.data) }

// Values returns a copy of the row-major elements.
func (m *Mask) Values() []bool {
	out := make([]bool, len(m.data))
	copy(out, m.data)

	return out
}

// All reports whether every element is true (true for an empty mask).
func (m *Mask) All() bool {
	for _, v := range m.data {
		if !v {
			return false
		}
	}

	return true
}

// Any reports whether at least one element is true.
func (m *Mask) Any() bool {
	for _, v := range m.data {
		if v {
			return true
		}
	}

	return false
}

// Not returns the elementwise negation.
func (m *Mask) Not() *Mask {
	out := &Mask{shape: cloneInts(m.shape), data: make([]bool, len(m.data))}
	for i, v := range m.data {
		out.data[i] = !v
	}

	return out
}

// String renders the mask with numpy-style nested brackets.
func (m *Mask) String() string {
	return Format(m.shape, func(i int) string { return strconv.FormatBool(m.data[i]) })
}
