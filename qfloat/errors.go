// SPDX-License-Identifier: MIT
// Package qfloat: sentinel error set.
// Every failure returned by this package matches exactly one of the three
// sentinels below through errors.Is. The underlying cause (a units or
// ndarray sentinel) stays matchable as well.

package qfloat

import (
	"errors"
	"fmt"
)

var (
	// ErrConstruction indicates a missing nominal value, an uncertainty whose
	// shape cannot be matched to the nominal's, a negative uncertainty, or
	// use of the invalid zero QFloat.
	ErrConstruction = errors.New("qfloat: invalid construction")

	// ErrUnits indicates dimensionally incompatible operands, a violated unit
	// precondition (angle or dimensionless input), or an unknown unit.
	ErrUnits = errors.New("qfloat: unit error")

	// ErrOperationNotSupported indicates matrix multiplication, a function or
	// array operation missing from the registry, or an unsupported argument.
	ErrOperationNotSupported = errors.New("qfloat: operation not supported")
)

// constructionErrorf tags err (may be nil) as a construction failure of op.
func constructionErrorf(op string, err error) error {
	if err == nil {
		return fmt.Errorf("qfloat.%s: %w", op, ErrConstruction)
	}

	return fmt.Errorf("qfloat.%s: %w: %w", op, ErrConstruction, err)
}

// unitsErrorf tags an adapter failure of op as ErrUnits.
func unitsErrorf(op string, err error) error {
	if errors.Is(err, ErrUnits) {
		return err
	}

	return fmt.Errorf("qfloat.%s: %w: %w", op, ErrUnits, err)
}

// unitsMsgf builds an ErrUnits failure from a message.
func unitsMsgf(op, format string, args ...any) error {
	return fmt.Errorf("qfloat.%s: %w: %s", op, ErrUnits, fmt.Sprintf(format, args...))
}

// unsupportedf reports an operation or argument outside the registry.
func unsupportedf(op, format string, args ...any) error {
	return fmt.Errorf("qfloat.%s: %w: %s", op, ErrOperationNotSupported, fmt.Sprintf(format, args...))
}

// shapeErrorf wraps an array-engine failure (broadcast, axis, index) of op.
func shapeErrorf(op string, err error) error {
	return fmt.Errorf("qfloat.%s: %w", op, err)
}
