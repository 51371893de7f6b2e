// SPDX-License-Identifier: MIT
// Package qfloat: reductions.
//
// Uncertainties of independent elements combine in quadrature:
//   - Sum:    σ = sqrt(Σσi²)
//   - Mean:   σ = sqrt(Σσi²) / N
//   - CumSum: running sqrt(Σσi²)
//   - Min/Max carry the uncertainty of the selected element.
//
// Pass ndarray.AllAxes to reduce over every element.

package qfloat

import (
	"math"

	"github.com/katalvlaran/qfloat/ndarray"
)

const (
	ctxSum    = "Sum"
	ctxMean   = "Mean"
	ctxMin    = "Min"
	ctxMax    = "Max"
	ctxCumSum = "CumSum"
	ctxRound  = "Round"
)

func quadrature(lane []float64) float64 {
	acc := 0.0
	for _, s := range lane {
		acc += s * s
	}
	return math.Sqrt(acc)
}

// Sum adds the elements along axis.
func (q QFloat) Sum(axis int) (QFloat, error) {
	if !q.valid() {
		return QFloat{}, constructionErrorf(ctxSum, nil)
	}
	nom, err := q.nominal.Sum(axis)
	if err != nil {
		return QFloat{}, shapeErrorf(ctxSum, err)
	}
	std, err := q.std.Reduce(axis, quadrature)
	if err != nil {
		return QFloat{}, shapeErrorf(ctxSum, err)
	}

	return QFloat{nominal: nom, std: std, unit: q.unit, sys: q.sys}, nil
}

// Mean averages the elements along axis.
//
// Errors:
//   - ndarray.ErrEmpty when a lane has no elements.
func (q QFloat) Mean(axis int) (QFloat, error) {
	if !q.valid() {
		return QFloat{}, constructionErrorf(ctxMean, nil)
	}
	mean := func(f func([]float64) float64) func([]float64) float64 {
		return func(lane []float64) float64 { return f(lane) / float64(len(lane)) }
	}
	_, lanes, err := q.nominal.Lanes(axis)
	if err != nil {
		return QFloat{}, shapeErrorf(ctxMean, err)
	}
	for _, lane := range lanes {
		if len(lane) == 0 {
			return QFloat{}, shapeErrorf(ctxMean, ndarray.ErrEmpty)
		}
	}
	nom, err := q.nominal.Reduce(axis, mean(func(lane []float64) float64 {
		s := 0.0
		for _, v := range lane {
			s += v
		}
		return s
	}))
	if err != nil {
		return QFloat{}, shapeErrorf(ctxMean, err)
	}
	std, err := q.std.Reduce(axis, mean(quadrature))
	if err != nil {
		return QFloat{}, shapeErrorf(ctxMean, err)
	}

	return QFloat{nominal: nom, std: std, unit: q.unit, sys: q.sys}, nil
}

// Min returns the smallest nominal along axis with its uncertainty.
func (q QFloat) Min(axis int) (QFloat, error) {
	return q.selectLane(ctxMin, axis, func(v, best float64) bool { return v < best })
}

// Max returns the largest nominal along axis with its uncertainty.
func (q QFloat) Max(axis int) (QFloat, error) {
	return q.selectLane(ctxMax, axis, func(v, best float64) bool { return v > best })
}

// selectLane picks one element per lane: the first whose nominal beats every
// other under better. A NaN nominal is selected and propagates.
func (q QFloat) selectLane(op string, axis int, better func(v, best float64) bool) (QFloat, error) {
	if !q.valid() {
		return QFloat{}, constructionErrorf(op, nil)
	}
	shape, lanes, err := q.nominal.Lanes(axis)
	if err != nil {
		return QFloat{}, shapeErrorf(op, err)
	}
	noms := make([]float64, len(lanes))
	stds := make([]float64, len(lanes))
	for i, lane := range lanes {
		if len(lane) == 0 {
			return QFloat{}, shapeErrorf(op, ndarray.ErrEmpty)
		}
		pick := lane[0]
		for _, off := range lane[1:] {
			if math.IsNaN(q.nominal.Flat(pick)) {
				break
			}
			if v := q.nominal.Flat(off); math.IsNaN(v) || better(v, q.nominal.Flat(pick)) {
				pick = off
			}
		}
		noms[i], stds[i] = q.nominal.Flat(pick), q.std.Flat(pick)
	}
	nom, err := ndarray.FromShape(shape, noms)
	if err != nil {
		return QFloat{}, shapeErrorf(op, err)
	}
	std, err := ndarray.FromShape(shape, stds)
	if err != nil {
		return QFloat{}, shapeErrorf(op, err)
	}

	return QFloat{nominal: nom, std: std, unit: q.unit, sys: q.sys}, nil
}

// CumSum returns running sums along axis (ndarray.AllAxes: flattened).
func (q QFloat) CumSum(axis int) (QFloat, error) {
	if !q.valid() {
		return QFloat{}, constructionErrorf(ctxCumSum, nil)
	}
	nom, err := q.nominal.Accumulate(axis, func(acc, v float64) float64 { return acc + v })
	if err != nil {
		return QFloat{}, shapeErrorf(ctxCumSum, err)
	}
	sq := ndarray.Map(q.std, func(s float64) float64 { return s * s })
	acc, err := sq.Accumulate(axis, func(acc, v float64) float64 { return acc + v })
	if err != nil {
		return QFloat{}, shapeErrorf(ctxCumSum, err)
	}

	return QFloat{nominal: nom, std: ndarray.Map(acc, math.Sqrt), unit: q.unit, sys: q.sys}, nil
}

// Round rounds nominal and uncertainty to decimals places, half to even.
// Negative decimals round to tens, hundreds and so on.
func (q QFloat) Round(decimals int) (QFloat, error) {
	if !q.valid() {
		return QFloat{}, constructionErrorf(ctxRound, nil)
	}
	p := math.Pow(10, float64(decimals))
	round := func(v float64) float64 { return math.RoundToEven(v*p) / p }

	return QFloat{
		nominal: ndarray.Map(q.nominal, round),
		std:     ndarray.Map(q.std, round),
		unit:    q.unit,
		sys:     q.sys,
	}, nil
}
