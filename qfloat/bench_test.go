// SPDX-License-Identifier: MIT

// Benchmarks for propagation over arrays of growing size, with deterministic
// random fill.
package qfloat_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/qfloat/ndarray"
	"github.com/katalvlaran/qfloat/qfloat"
)

var benchSizes = []int{64, 1024, 16384}

// sinks to defeat dead-code elimination
var (
	sinkQ qfloat.QFloat
	sinkB bool
)

// randomQFloat fills n nominals in [1, 2) with uncertainties in [0, 0.1).
func randomQFloat(b *testing.B, n int, seed int64, unit string) qfloat.QFloat {
	b.Helper()
	r := rand.New(rand.NewSource(seed))
	nom := make([]float64, n)
	std := make([]float64, n)
	for i := range nom {
		nom[i] = 1 + r.Float64()
		std[i] = 0.1 * r.Float64()
	}
	q, err := qfloat.New(nom, qfloat.WithUncertainty(std), qfloat.WithUnit(unit))
	if err != nil {
		b.Fatal(err)
	}
	return q
}

func BenchmarkAddConverting(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			x := randomQFloat(b, n, 1337, "km")
			y := randomQFloat(b, n, 4242, "m")
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				q, err := x.Add(y)
				if err != nil {
					b.Fatal(err)
				}
				sinkQ = q
			}
		})
	}
}

func BenchmarkDiv(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			x := randomQFloat(b, n, 11, "km")
			y := randomQFloat(b, n, 22, "h")
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				q, err := x.Div(y)
				if err != nil {
					b.Fatal(err)
				}
				sinkQ = q
			}
		})
	}
}

func BenchmarkSinDegrees(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			x := randomQFloat(b, n, 7, "deg")
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				q, err := qfloat.Sin(x)
				if err != nil {
					b.Fatal(err)
				}
				sinkQ = q
			}
		})
	}
}

func BenchmarkSum(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			x := randomQFloat(b, n, 99, "s")
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				q, err := x.Sum(ndarray.AllAxes)
				if err != nil {
					b.Fatal(err)
				}
				sinkQ = q
			}
		})
	}
}

func BenchmarkEqualWithinErrors(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			x := randomQFloat(b, n, 5, "m")
			y := randomQFloat(b, n, 6, "cm")
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				ok, err := qfloat.EqualWithinErrors(x, y)
				if err != nil {
					b.Fatal(err)
				}
				sinkB = ok
			}
		})
	}
}
