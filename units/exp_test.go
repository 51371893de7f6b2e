// SPDX-License-Identifier: MIT

package units_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/qfloat/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpFromFloat(t *testing.T) {
	t.Parallel()

	cases := map[float64]string{
		2:       "2",
		-1:      "-1",
		0.5:     "(1/2)",
		1.0 / 3: "(1/3)",
		-1.5:    "(-3/2)",
		0.25:    "(1/4)",
	}
	for in, want := range cases {
		e, ok := units.ExpFromFloat(in)
		require.True(t, ok, "%g", in)
		assert.Equal(t, want, e.String())
	}

	for _, in := range []float64{0.1234567, math.NaN(), math.Inf(1), 1 << 21} {
		_, ok := units.ExpFromFloat(in)
		assert.False(t, ok, "%g", in)
	}
}

func TestExpArithmetic(t *testing.T) {
	t.Parallel()

	half, _ := units.ExpFromFloat(0.5)
	third, _ := units.ExpFromFloat(1.0 / 3)

	assert.Equal(t, "(5/6)", half.Add(third).String())
	assert.Equal(t, "(1/6)", half.Mul(third).String())
	assert.True(t, half.Add(half.Neg()).IsZero())
	assert.Equal(t, 0.5, half.Float64())

	two, _ := units.ExpFromFloat(2)
	assert.Equal(t, "1", half.Mul(two).String())

	var zero units.Exp
	assert.True(t, zero.IsZero())
	assert.Equal(t, "0", zero.String())
	assert.Equal(t, "(1/2)", zero.Add(half).String())
}
