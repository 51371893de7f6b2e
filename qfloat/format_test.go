// SPDX-License-Identifier: MIT

package qfloat_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/katalvlaran/qfloat/qfloat"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func mustNew(t testing.TB, nominal any, opts ...qfloat.Option) qfloat.QFloat {
	t.Helper()
	q, err := qfloat.New(nominal, opts...)
	require.NoError(t, err)
	return q
}

func TestString_Golden(t *testing.T) {
	t.Parallel()

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	cases := map[string]qfloat.QFloat{
		"scalar":   qfloat.MustScalar(1.23456, 0.0031, "m"),
		"coarse":   qfloat.MustScalar(1234.5, 25, "s"),
		"exact":    qfloat.MustScalar(2, 0, ""),
		"velocity": qfloat.MustScalar(30, 1.52, "km / h"),
		"vector":   mustNew(t, []float64{1, 2.5}, qfloat.WithUncertainty(0.1), qfloat.WithUnit("km")),
		"matrix": mustNew(t, [][]float64{{1, 2}, {3, 4}},
			qfloat.WithUncertainty([][]float64{{0.1, 0.2}, {0.3, 0.4}}), qfloat.WithUnit("m")),
		"nan": mustNew(t, 1.0, qfloat.WithUncertainty(math.NaN())),
	}
	for name, q := range cases {
		g.Assert(t, name, []byte(q.String()))
	}
	g.Assert(t, "gostring", []byte(fmt.Sprintf("%#v", qfloat.MustScalar(1.23456, 0.0031, "m"))))
}
