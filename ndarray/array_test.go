// SPDX-License-Identifier: MIT

package ndarray_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/qfloat/ndarray"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustArray(t testing.TB, data []float64, shape ...int) *ndarray.Array {
	t.Helper()
	a, err := ndarray.FromSlice(data, shape...)
	require.NoError(t, err)
	return a
}

func TestNew_ZeroFilledAndScalar(t *testing.T) {
	t.Parallel()

	a, err := ndarray.New(2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, a.Shape())
	assert.Equal(t, 6, a.Size())
	assert.Equal(t, make([]float64, 6), a.Values())

	s, err := ndarray.New()
	require.NoError(t, err)
	assert.True(t, s.IsScalar())
	assert.Equal(t, 0, s.Ndim())
	assert.Equal(t, 1, s.Size())

	_, err = ndarray.New(2, -1)
	assert.ErrorIs(t, err, ndarray.ErrBadShape)
}

func TestFromSlice_ShapeChecks(t *testing.T) {
	t.Parallel()

	a := mustArray(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)
	v, err := a.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	_, err = ndarray.FromSlice([]float64{1, 2, 3}, 2, 2)
	assert.ErrorIs(t, err, ndarray.ErrBadShape)

	flat := mustArray(t, []float64{1, 2, 3})
	assert.Equal(t, []int{3}, flat.Shape())

	sc, err := ndarray.FromShape(nil, []float64{7})
	require.NoError(t, err)
	assert.True(t, sc.IsScalar())
}

func TestFromAny_Inputs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		in    any
		shape []int
		vals  []float64
	}{
		{"float64", 2.5, []int{}, []float64{2.5}},
		{"int", 3, []int{}, []float64{3}},
		{"uint8", uint8(4), []int{}, []float64{4}},
		{"slice", []float64{1, 2}, []int{2}, []float64{1, 2}},
		{"ints", []int{1, 2, 3}, []int{3}, []float64{1, 2, 3}},
		{"float32", []float32{0.5}, []int{1}, []float64{0.5}},
		{"2d", [][]float64{{1, 2}, {3, 4}}, []int{2, 2}, []float64{1, 2, 3, 4}},
		{"3d", [][][]float64{{{1}, {2}}, {{3}, {4}}}, []int{2, 2, 1}, []float64{1, 2, 3, 4}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a, err := ndarray.FromAny(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.shape, a.Shape())
			assert.Equal(t, tc.vals, a.Values())
		})
	}

	_, err := ndarray.FromAny(nil)
	assert.ErrorIs(t, err, ndarray.ErrNilArray)
	_, err = ndarray.FromAny([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ndarray.ErrBadShape)
	_, err = ndarray.FromAny("1.0")
	assert.ErrorIs(t, err, ndarray.ErrUnsupportedInput)
}

func TestFromAny_CopiesArray(t *testing.T) {
	t.Parallel()

	src := mustArray(t, []float64{1, 2})
	cp, err := ndarray.FromAny(src)
	require.NoError(t, err)
	assert.False(t, ndarray.SharesMemory(src, cp))
	require.NoError(t, cp.Set(9, 0))
	v, _ := src.At(0)
	assert.Equal(t, 1.0, v)
}

func TestFromAny_ZeroArray(t *testing.T) {
	t.Parallel()

	_, err := ndarray.FromAny(&ndarray.Array{})
	assert.ErrorIs(t, err, ndarray.ErrBadShape)
}

func TestAtSet_Bounds(t *testing.T) {
	t.Parallel()

	a := mustArray(t, []float64{1, 2, 3, 4}, 2, 2)
	_, err := a.At(2, 0)
	assert.ErrorIs(t, err, ndarray.ErrOutOfRange)
	_, err = a.At(0)
	assert.ErrorIs(t, err, ndarray.ErrOutOfRange)
	assert.ErrorIs(t, a.Set(1, -1, 0), ndarray.ErrOutOfRange)

	require.NoError(t, a.Set(10, 1, 1))
	assert.Equal(t, 10.0, a.Flat(3))

	_, err = a.Item()
	assert.ErrorIs(t, err, ndarray.ErrBadShape)
}

func TestEqual_NaNAndShape(t *testing.T) {
	t.Parallel()

	a := mustArray(t, []float64{1, 2})
	b := mustArray(t, []float64{1, 2}, 1, 2)
	assert.False(t, ndarray.Equal(a, b))
	assert.True(t, ndarray.Equal(a, a.Clone()))

	n := mustArray(t, []float64{math.NaN()})
	assert.False(t, ndarray.Equal(n, n.Clone()))
	assert.True(t, ndarray.Equal(nil, nil))
}

func TestString_NestedBrackets(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2.5", ndarray.Scalar(2.5).String())
	assert.Equal(t, "[1 2 3]", mustArray(t, []float64{1, 2, 3}).String())
	assert.Equal(t, "[[1 2]\n [3 4]]", mustArray(t, []float64{1, 2, 3, 4}, 2, 2).String())
	assert.Equal(t, "[[[1]\n  [2]]\n [[3]\n  [4]]]", mustArray(t, []float64{1, 2, 3, 4}, 2, 2, 1).String())
}
