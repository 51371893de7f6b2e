// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/qfloat/qfloat"
	"github.com/katalvlaran/qfloat/units"
)

// ErrValue is returned for a value literal that cannot be read.
var ErrValue = errors.New("cli: malformed value")

// ParseValue reads a measurement literal of the form
//
//	NOMINAL[+-SIGMA] [UNIT]
//
// NOMINAL and SIGMA are numbers or comma-separated lists of numbers; "±" may
// stand for "+-". Everything after the first space is the unit expression.
func ParseValue(sys units.Adapter, s string) (qfloat.QFloat, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "±", "+-"))
	if s == "" {
		return qfloat.QFloat{}, fmt.Errorf("%w: empty", ErrValue)
	}

	numbers, unit, _ := strings.Cut(s, " ")
	nomText, sigmaText, hasSigma := strings.Cut(numbers, "+-")

	nominal, err := parseNumbers(nomText)
	if err != nil {
		return qfloat.QFloat{}, fmt.Errorf("%w: nominal of %q: %v", ErrValue, s, err)
	}
	opts := []qfloat.Option{qfloat.WithSystem(sys), qfloat.WithUnit(strings.TrimSpace(unit))}
	if hasSigma {
		sigma, err := parseNumbers(sigmaText)
		if err != nil {
			return qfloat.QFloat{}, fmt.Errorf("%w: uncertainty of %q: %v", ErrValue, s, err)
		}
		opts = append(opts, qfloat.WithUncertainty(sigma))
	}

	return qfloat.New(nominal, opts...)
}

// parseNumbers returns a float64 for one number and a []float64 for a list.
func parseNumbers(s string) (any, error) {
	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	if len(out) == 1 {
		return out[0], nil
	}
	return out, nil
}

// Value is the rendered form of a result.
type Value struct {
	Text        string    `json:"text"`
	Nominal     []float64 `json:"nominal"`
	Uncertainty []float64 `json:"uncertainty"`
	Shape       []int     `json:"shape"`
	Unit        string    `json:"unit"`
}

func (v Value) String() string { return v.Text }

func newValue(q qfloat.QFloat) Value {
	return Value{
		Text:        q.String(),
		Nominal:     q.Nominal().Values(),
		Uncertainty: q.Uncertainty().Values(),
		Shape:       q.Shape(),
		Unit:        q.Unit().String(),
	}
}
