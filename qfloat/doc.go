// SPDX-License-Identifier: MIT

// Package qfloat provides QFloat, a measurement value that carries nominal
// values, one-sigma uncertainties and a physical unit through arithmetic,
// elementwise functions, array rearrangements and comparisons.
//
// What & Why:
//
//   - Units are enforced: adding metres to seconds is an ErrUnits failure,
//     never a silent coercion. Compatible units are converted to the left
//     operand's unit first (1 km + 100 m = 1.1 km).
//   - Uncertainties propagate to first order, treating every operand as
//     independent: σ_f = sqrt(Σ (∂f/∂xi)² σi²). Exact operands (σ = 0)
//     contribute nothing, even where a derivative is undefined.
//   - Values are immutable. Every operation returns a new QFloat with its
//     own storage; accessors hand out copies.
//
// The unit algebra comes from a units.Adapter (units.Default() unless
// WithSystem says otherwise) and storage from the ndarray package.
//
// Dispatch:
//
//	CallUfunc("sqrt", nil, q)                  // registered elementwise functions
//	CallArrayFunc("reshape", Kwargs{"shape": []int{2, 2}}, q)
//
// Funcs lists the elementwise handlers; each states its input constraint
// (any unit, dimensionless, angle, same unit) and its output unit rule.
//
// Correlations are not tracked: x.Add(x) yields σ·√2 while x.Mul(2) yields
// 2σ. Matrix multiplication reports ErrOperationNotSupported.
//
// Errors:
//
//   - ErrConstruction: missing nominal, unmatched uncertainty shape,
//     negative uncertainty, zero-value QFloat.
//   - ErrUnits: incompatible or unknown units, violated unit preconditions.
//   - ErrOperationNotSupported: unregistered functions, matmul.
//
// Equal is the only operation that turns a failure into a result (false).
package qfloat
