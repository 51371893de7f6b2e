// SPDX-License-Identifier: MIT

package qfloat_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/qfloat/ndarray"
	"github.com/katalvlaran/qfloat/qfloat"
	"github.com/katalvlaran/qfloat/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_PropagatesInQuadrature(t *testing.T) {
	t.Parallel()

	a := qfloat.MustScalar(1, 0.1, "m")
	b := qfloat.MustScalar(2, 0.1, "m")
	sum, err := qfloat.Add(a, b)
	require.NoError(t, err)

	want := qfloat.MustScalar(3, math.Sqrt(0.1*0.1+0.1*0.1), "m")
	assert.True(t, qfloat.Equal(want, sum), "%v", sum)

	rev, err := b.Add(a)
	require.NoError(t, err)
	assert.True(t, qfloat.Equal(sum, rev))
}

func TestAdd_ConvertsToLeftUnit(t *testing.T) {
	t.Parallel()

	km := qfloat.MustScalar(1, 0.1, "km")
	m := qfloat.MustScalar(100, 10, "m")
	sum, err := km.Add(m)
	require.NoError(t, err)
	assert.Equal(t, "km", sum.Unit().String())
	n, s := pair(t, sum)
	assert.InDelta(t, 1.1, n, 1e-12)
	assert.InDelta(t, math.Sqrt(0.1*0.1+0.01*0.01), s, 1e-12)

	rev, err := m.Add(km)
	require.NoError(t, err)
	assert.Equal(t, "m", rev.Unit().String())
	n, _ = pair(t, rev)
	assert.InDelta(t, 1100, n, 1e-9)
}

func TestAdd_IncompatibleUnits(t *testing.T) {
	t.Parallel()

	_, err := qfloat.Add(qfloat.MustScalar(1, 0, "kg"), qfloat.MustScalar(1, 0, "K"))
	assert.ErrorIs(t, err, qfloat.ErrUnits)
	assert.ErrorIs(t, err, units.ErrIncompatible)

	// a bare number is dimensionless and does not fit metres
	_, err = qfloat.MustScalar(1, 0, "m").Sub(1)
	assert.ErrorIs(t, err, qfloat.ErrUnits)

	_, err = qfloat.Add("one", 1)
	assert.ErrorIs(t, err, qfloat.ErrConstruction)
}

func TestSub(t *testing.T) {
	t.Parallel()

	d, err := qfloat.Sub(qfloat.MustScalar(5, 0.3, "s"), qfloat.MustScalar(2, 0.4, "s"))
	require.NoError(t, err)
	n, s := pair(t, d)
	assert.Equal(t, 3.0, n)
	assert.InDelta(t, 0.5, s, 1e-12)

	plain, err := qfloat.Sub(1, 2)
	require.NoError(t, err)
	n, _ = pair(t, plain)
	assert.Equal(t, -1.0, n)
	assert.Equal(t, "", plain.Unit().String())
}

func TestDiv_Velocity(t *testing.T) {
	t.Parallel()

	v, err := qfloat.Div(qfloat.MustScalar(60, 0.5, "km"), qfloat.MustScalar(2, 0.1, "h"))
	require.NoError(t, err)
	assert.Equal(t, "km / h", v.Unit().String())
	n, s := pair(t, v)
	assert.Equal(t, 30.0, n)
	// ∂/∂x = 1/y = 0.5, ∂/∂y = -x/y² = -15
	assert.InDelta(t, math.Sqrt(0.25*0.25+1.5*1.5), s, 1e-12)
}

func TestMul(t *testing.T) {
	t.Parallel()

	x := qfloat.MustScalar(2, 0.1, "m")
	tripled, err := x.Mul(3)
	require.NoError(t, err)
	n, s := pair(t, tripled)
	assert.Equal(t, 6.0, n)
	assert.InDelta(t, 0.3, s, 1e-15)
	assert.Equal(t, "m", tripled.Unit().String())

	area, err := x.Mul(x)
	require.NoError(t, err)
	assert.Equal(t, "m2", area.Unit().String())

	ms, err := x.Mul(qfloat.MustScalar(4, 0, "s"))
	require.NoError(t, err)
	assert.Equal(t, "m s", ms.Unit().String())
	_, s = pair(t, ms)
	assert.InDelta(t, 0.4, s, 1e-15)

	// multiplication never checks compatibility
	_, err = qfloat.MustScalar(1, 0, "kg").Mul(qfloat.MustScalar(1, 0, "K"))
	assert.NoError(t, err)
}

func TestCorrelationsAreNotTracked(t *testing.T) {
	t.Parallel()

	x := qfloat.MustScalar(1, 0.1, "")
	sum, err := x.Add(x)
	require.NoError(t, err)
	twice, err := x.Mul(2)
	require.NoError(t, err)

	_, sSum := pair(t, sum)
	_, sTwice := pair(t, twice)
	assert.InDelta(t, 0.1*math.Sqrt2, sSum, 1e-15)
	assert.InDelta(t, 0.2, sTwice, 1e-15)
}

func TestPow(t *testing.T) {
	t.Parallel()

	sq, err := qfloat.Pow(qfloat.MustScalar(2, 0.1, "m"), 2)
	require.NoError(t, err)
	assert.Equal(t, "m2", sq.Unit().String())
	n, s := pair(t, sq)
	assert.Equal(t, 4.0, n)
	assert.InDelta(t, 0.4, s, 1e-15)

	root, err := qfloat.MustScalar(4, 0, "m2").Pow(0.5)
	require.NoError(t, err)
	assert.Equal(t, "m", root.Unit().String())
	n, _ = pair(t, root)
	assert.Equal(t, 2.0, n)

	// dimensionless bases take any exponent, uncertain ones included
	e := qfloat.MustScalar(3, 0.1, "")
	p, err := qfloat.Pow(2, e)
	require.NoError(t, err)
	n, s = pair(t, p)
	assert.Equal(t, 8.0, n)
	assert.InDelta(t, 8*math.Ln2*0.1, s, 1e-12)

	pct, err := qfloat.Pow(qfloat.MustScalar(50, 0, "%"), 2)
	require.NoError(t, err)
	n, _ = pair(t, pct)
	assert.InDelta(t, 0.25, n, 1e-15)
	assert.Equal(t, "", pct.Unit().String())

	// log(0) in ∂/∂y is never evaluated into the result for an exact exponent
	zero, err := qfloat.Pow(qfloat.MustScalar(0, 0.1, ""), 2)
	require.NoError(t, err)
	_, s = pair(t, zero)
	assert.Zero(t, s)

	// x⁰ is exactly 1 even at x = 0
	one, err := qfloat.Pow(qfloat.MustScalar(0, 0.1, ""), 0)
	require.NoError(t, err)
	n, s = pair(t, one)
	assert.Equal(t, 1.0, n)
	assert.Zero(t, s)
	assert.False(t, math.IsNaN(s))
}

func TestPow_Errors(t *testing.T) {
	t.Parallel()

	m := qfloat.MustScalar(2, 0, "m")
	_, err := m.Pow(qfloat.MustScalar(2, 0.1, ""))
	assert.ErrorIs(t, err, qfloat.ErrUnits)

	_, err = m.Pow([]float64{1, 2})
	assert.ErrorIs(t, err, qfloat.ErrUnits)

	_, err = m.Pow(qfloat.MustScalar(2, 0, "s"))
	assert.ErrorIs(t, err, qfloat.ErrUnits)
	assert.ErrorIs(t, err, units.ErrIncompatible)

	_, err = m.Pow(0.1234567)
	assert.ErrorIs(t, err, qfloat.ErrUnits)
	assert.ErrorIs(t, err, units.ErrExponent)
}

func TestFloorDivMod(t *testing.T) {
	t.Parallel()

	q, err := qfloat.FloorDiv(qfloat.MustScalar(7, 0.1, "m"), qfloat.MustScalar(2, 0.1, "m"))
	require.NoError(t, err)
	n, s := pair(t, q)
	assert.Equal(t, 3.0, n)
	assert.Zero(t, s)
	assert.Equal(t, "", q.Unit().String())

	q, err = qfloat.MustScalar(1, 0, "km").FloorDiv(qfloat.MustScalar(300, 0, "m"))
	require.NoError(t, err)
	n, _ = pair(t, q)
	assert.Equal(t, 3.0, n)

	r, err := qfloat.MustScalar(7, 0.1, "m").Mod(qfloat.MustScalar(2, 0, "m"))
	require.NoError(t, err)
	n, s = pair(t, r)
	assert.Equal(t, 1.0, n)
	assert.InDelta(t, 0.1, s, 1e-15)
	assert.Equal(t, "m", r.Unit().String())

	neg, err := qfloat.Mod(-1, 3)
	require.NoError(t, err)
	n, _ = pair(t, neg)
	assert.Equal(t, 2.0, n)

	_, err = qfloat.Mod(qfloat.MustScalar(1, 0, "m"), qfloat.MustScalar(1, 0, "s"))
	assert.ErrorIs(t, err, qfloat.ErrUnits)
}

func TestUnaryArithmetic(t *testing.T) {
	t.Parallel()

	x := qfloat.MustScalar(-2, 0.1, "m")

	neg, err := x.Neg()
	require.NoError(t, err)
	assert.True(t, qfloat.Equal(qfloat.MustScalar(2, 0.1, "m"), neg))

	abs, err := x.Abs()
	require.NoError(t, err)
	assert.True(t, qfloat.Equal(qfloat.MustScalar(2, 0.1, "m"), abs))

	pos, err := x.Pos()
	require.NoError(t, err)
	assert.True(t, qfloat.Equal(x, pos))
}

func TestMatMul_Unsupported(t *testing.T) {
	t.Parallel()

	a, err := qfloat.New([][]float64{{1, 0}, {0, 1}})
	require.NoError(t, err)
	_, err = a.MatMul(a)
	assert.ErrorIs(t, err, qfloat.ErrOperationNotSupported)
	_, err = qfloat.CallUfunc("matmul", nil, a, a)
	assert.ErrorIs(t, err, qfloat.ErrOperationNotSupported)
}

func TestArithmetic_Broadcasting(t *testing.T) {
	t.Parallel()

	row, err := qfloat.New([]float64{1, 2, 3}, qfloat.WithUncertainty(0.1), qfloat.WithUnit("m"))
	require.NoError(t, err)
	col, err := qfloat.New([][]float64{{10}, {20}}, qfloat.WithUnit("m"))
	require.NoError(t, err)

	sum, err := row.Add(col)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, sum.Shape())
	assert.Equal(t, []float64{11, 12, 13, 21, 22, 23}, sum.Nominal().Values())
	assert.Equal(t, []float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.1}, sum.Uncertainty().Values())

	_, err = row.Add([]float64{1, 2})
	assert.ErrorIs(t, err, qfloat.ErrUnits)

	pair2, err := qfloat.New([]float64{1, 2}, qfloat.WithUnit("m"))
	require.NoError(t, err)
	_, err = row.Add(pair2)
	assert.ErrorIs(t, err, ndarray.ErrBroadcast)
}
