// SPDX-License-Identifier: MIT

package ndarray_test

import (
	"testing"

	"github.com/katalvlaran/qfloat/ndarray"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grid returns [[0 1 2] [3 4 5]].
func grid(t testing.TB) *ndarray.Array {
	t.Helper()
	return mustArray(t, []float64{0, 1, 2, 3, 4, 5}, 2, 3)
}

func TestReshape(t *testing.T) {
	t.Parallel()

	a := grid(t)
	r, err := a.Reshape(3, -1)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, r.Shape())
	assert.False(t, ndarray.SharesMemory(a, r))

	_, err = a.Reshape(4, -1)
	assert.ErrorIs(t, err, ndarray.ErrBadShape)
	_, err = a.Reshape(-1, -1)
	assert.ErrorIs(t, err, ndarray.ErrBadShape)
	assert.Equal(t, []int{6}, a.Ravel().Shape())
}

func TestTransposeAndSwapAxes(t *testing.T) {
	t.Parallel()

	a := grid(t)
	tr, err := a.Transpose()
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, tr.Shape())
	assert.Equal(t, []float64{0, 3, 1, 4, 2, 5}, tr.Values())

	sw, err := a.SwapAxes(0, -1)
	require.NoError(t, err)
	assert.True(t, ndarray.Equal(tr, sw))

	_, err = a.Transpose(0, 0)
	assert.ErrorIs(t, err, ndarray.ErrAxis)
}

func TestFlipRoll(t *testing.T) {
	t.Parallel()

	a := grid(t)
	f, err := a.Flip(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1, 0, 5, 4, 3}, f.Values())

	all, err := a.Flip()
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 4, 3, 2, 1, 0}, all.Values())

	r, err := a.Roll(1, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 0, 1, 5, 3, 4}, r.Values())

	flat, err := a.Roll(-1, ndarray.AllAxes)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, flat.Shape())
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 0}, flat.Values())
}

func TestTileRepeat(t *testing.T) {
	t.Parallel()

	a := mustArray(t, []float64{1, 2})
	tl, err := a.Tile(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 1, 2}, tl.Values())

	tl2, err := a.Tile(2, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, tl2.Shape())

	rp, err := a.Repeat(2, ndarray.AllAxes)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 2, 2}, rp.Values())

	g, err := grid(t).Repeat(2, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3}, g.Shape())
	assert.Equal(t, []float64{0, 1, 2, 0, 1, 2, 3, 4, 5, 3, 4, 5}, g.Values())
}

func TestTakeSlice(t *testing.T) {
	t.Parallel()

	a := grid(t)
	tk, err := a.Take([]int{-1, 0}, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 0, 5, 3}, tk.Values())

	_, err = a.Take([]int{3}, 1)
	assert.ErrorIs(t, err, ndarray.ErrOutOfRange)

	sl, err := a.Slice(1, 1, ndarray.SliceEnd, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 4, 5}, sl.Values())

	rev, err := a.Slice(ndarray.AllAxes, -1, ndarray.SliceBegin, -2)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 3, 1}, rev.Values())

	_, err = a.Slice(0, 0, 1, 0)
	assert.ErrorIs(t, err, ndarray.ErrBadShape)
}

func TestResizeSqueezeExpand(t *testing.T) {
	t.Parallel()

	r, err := mustArray(t, []float64{1, 2, 3}).Resize(2, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 1}, r.Values())

	a := mustArray(t, []float64{1, 2}, 1, 2, 1)
	sq, err := a.Squeeze()
	require.NoError(t, err)
	assert.Equal(t, []int{2}, sq.Shape())

	_, err = a.Squeeze(1)
	assert.ErrorIs(t, err, ndarray.ErrAxis)

	ex, err := sq.ExpandDims(-1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, ex.Shape())
}

func TestConcatenateAppend(t *testing.T) {
	t.Parallel()

	a := grid(t)
	rows, err := ndarray.Concatenate(0, a, a)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3}, rows.Shape())

	cols, err := ndarray.Concatenate(1, a, mustArray(t, []float64{9, 9}, 2, 1))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 9, 3, 4, 5, 9}, cols.Values())

	flat, err := ndarray.Append(a, mustArray(t, []float64{6}), ndarray.AllAxes)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, flat.Shape())

	_, err = ndarray.Concatenate(0, a, mustArray(t, []float64{1, 2}, 1, 2))
	assert.ErrorIs(t, err, ndarray.ErrBadShape)
	_, err = ndarray.Concatenate(0)
	assert.ErrorIs(t, err, ndarray.ErrEmpty)
}

func TestDeleteInsert(t *testing.T) {
	t.Parallel()

	a := grid(t)
	d, err := a.Delete([]int{0, -1}, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 4}, d.Values())

	in, err := a.Insert(1, ndarray.Scalar(7), 1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, in.Shape())
	assert.Equal(t, []float64{0, 7, 1, 2, 3, 7, 4, 5}, in.Values())

	tail, err := a.Insert(6, mustArray(t, []float64{8, 9}), ndarray.AllAxes)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5, 8, 9}, tail.Values())

	_, err = a.Insert(5, ndarray.Scalar(1), 1)
	assert.ErrorIs(t, err, ndarray.ErrOutOfRange)
}
