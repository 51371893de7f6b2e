// SPDX-License-Identifier: MIT
// Package qfloat: first-order uncertainty propagation.
//
// For f(x1..xn) with independent one-sigma uncertainties σi:
//
//	σ_f = sqrt( Σ (∂f/∂xi)² σi² )
//
// Terms whose σi is exactly zero are skipped, so a partial derivative that is
// undefined (Inf, NaN) at an exact input never reaches the result.

package qfloat

import (
	"math"

	"github.com/katalvlaran/qfloat/ndarray"
)

// kernel is an elementwise function with its analytic partial derivatives.
// Both receive one value per operand; grad writes ∂f/∂xi into g[i].
type kernel struct {
	eval func(x []float64) float64
	grad func(x, g []float64)
}

// run evaluates k over the broadcast of the operands and propagates their
// uncertainties. noms and stds are parallel, one pair per operand.
func (k kernel) run(op string, noms, stds []*ndarray.Array) (nom, std *ndarray.Array, err error) {
	n := len(noms)
	nom, err = ndarray.MapN(k.eval, noms...)
	if err != nil {
		return nil, nil, shapeErrorf(op, err)
	}

	all := make([]*ndarray.Array, 0, 2*n)
	all = append(all, noms...)
	all = append(all, stds...)
	g := make([]float64, n)
	std, err = ndarray.MapN(func(v []float64) float64 {
		x, s := v[:n], v[n:]
		k.grad(x, g)
		var acc float64
		for i, d := range g {
			if s[i] == 0 {
				continue
			}
			t := d * s[i]
			acc += t * t
		}
		return math.Sqrt(acc)
	}, all...)
	if err != nil {
		return nil, nil, shapeErrorf(op, err)
	}

	return nom, std, nil
}

// unaryKernel adapts a scalar function and its derivative.
func unaryKernel(f, df func(float64) float64) kernel {
	return kernel{
		eval: func(x []float64) float64 { return f(x[0]) },
		grad: func(x, g []float64) { g[0] = df(x[0]) },
	}
}

// binaryKernel adapts a two-argument function and its partials.
func binaryKernel(f func(x, y float64) float64, df func(x, y float64) (dx, dy float64)) kernel {
	return kernel{
		eval: func(v []float64) float64 { return f(v[0], v[1]) },
		grad: func(v, g []float64) { g[0], g[1] = df(v[0], v[1]) },
	}
}

// Kernels of the arithmetic engine.
var (
	addKernel = binaryKernel(
		func(x, y float64) float64 { return x + y },
		func(_, _ float64) (float64, float64) { return 1, 1 })

	subKernel = binaryKernel(
		func(x, y float64) float64 { return x - y },
		func(_, _ float64) (float64, float64) { return 1, -1 })

	mulKernel = binaryKernel(
		func(x, y float64) float64 { return x * y },
		func(x, y float64) (float64, float64) { return y, x })

	divKernel = binaryKernel(
		func(x, y float64) float64 { return x / y },
		func(x, y float64) (float64, float64) { return 1 / y, -x / (y * y) })

	powKernel = binaryKernel(
		math.Pow,
		func(x, y float64) (float64, float64) {
			if y == 0 {
				// x⁰ is constant; y·x⁻¹ would be 0·Inf at x = 0.
				return 0, math.Log(x)
			}
			return y * math.Pow(x, y-1), math.Pow(x, y) * math.Log(x)
		})

	// floor division is piecewise constant.
	floorDivKernel = binaryKernel(
		func(x, y float64) float64 { return math.Floor(x / y) },
		func(_, _ float64) (float64, float64) { return 0, 0 })

	// remainder takes the sign of the divisor.
	modKernel = binaryKernel(
		func(x, y float64) float64 { return x - y*math.Floor(x/y) },
		func(x, y float64) (float64, float64) { return 1, -math.Floor(x / y) })
)
