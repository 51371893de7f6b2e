// SPDX-License-Identifier: MIT
// Package units: sentinel error set.
// Callers match these with errors.Is; qfloat additionally wraps every unit
// failure in its own ErrUnits so either sentinel matches.

package units

import "errors"

var (
	// ErrUnknownUnit indicates a symbol that is neither defined in the table
	// nor a prefix applied to a prefixable unit.
	ErrUnknownUnit = errors.New("units: unknown unit")

	// ErrSyntax indicates a unit expression that cannot be parsed.
	ErrSyntax = errors.New("units: invalid unit expression")

	// ErrIncompatible indicates units of different physical dimension.
	ErrIncompatible = errors.New("units: incompatible dimensions")

	// ErrExponent indicates a power that cannot be applied to a unit, e.g. an
	// irrational exponent on a dimensional unit.
	ErrExponent = errors.New("units: invalid exponent")

	// ErrUnsupportedSpec indicates a unit specification of an unsupported Go type.
	ErrUnsupportedSpec = errors.New("units: unsupported unit specification")

	// ErrTable indicates a malformed unit table (YAML syntax, duplicate
	// symbols, unknown dimensions or a bad definition).
	ErrTable = errors.New("units: invalid unit table")
)
