// SPDX-License-Identifier: MIT
// Package ndarray: sentinel error set.
// All routines return these sentinels (optionally wrapped with context via
// arrayErrorf) and tests match them with errors.Is. User-triggered error
// conditions never panic.

package ndarray

import (
	"errors"
	"fmt"
)

// Every message is prefixed with "ndarray: ..." for consistency and grepping.
var (
	// ErrBadShape is returned when a requested shape is invalid (negative
	// dimension, or a size that does not match the data length).
	ErrBadShape = errors.New("ndarray: invalid shape")

	// ErrBroadcast indicates operand shapes that cannot be broadcast together.
	ErrBroadcast = errors.New("ndarray: shapes cannot be broadcast")

	// ErrOutOfRange indicates an element or slice index outside valid bounds.
	ErrOutOfRange = errors.New("ndarray: index out of range")

	// ErrAxis indicates an axis argument that is invalid for the array rank,
	// or a structural operation whose axis preconditions are violated.
	ErrAxis = errors.New("ndarray: invalid axis")

	// ErrEmpty indicates a reduction that needs at least one element.
	ErrEmpty = errors.New("ndarray: empty input")

	// ErrNilArray indicates that a nil *Array was passed where a value is required.
	ErrNilArray = errors.New("ndarray: nil array")

	// ErrUnsupportedInput indicates a Go value FromAny cannot turn into an Array.
	ErrUnsupportedInput = errors.New("ndarray: unsupported input type")
)

// arrayErrorf wraps a sentinel with the name of the failing operation.
// The sentinel stays matchable through errors.Is.
func arrayErrorf(op string, err error) error {
	return fmt.Errorf("ndarray.%s: %w", op, err)
}
