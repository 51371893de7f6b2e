// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/qfloat/ndarray"
	"github.com/katalvlaran/qfloat/qfloat"
	"github.com/katalvlaran/qfloat/units"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // result printed
	ExitFailure      = 1 // the computation was rejected (bad units, unsupported function, ...)
	ExitCommandError = 2 // the command line itself was wrong (malformed value, bad flag, ...)
)

// Error codes reported in JSON and text error output.
const (
	ErrCodeGeneric     = "E001" // anything not classified below
	ErrCodeValue       = "E002" // malformed value literal or construction failure
	ErrCodeUnits       = "E003" // unknown unit or incompatible dimensions
	ErrCodeUnsupported = "E004" // function or argument outside the supported set
	ErrCodeShape       = "E005" // shape or axis mismatch
)

// ExitError is an error carrying the process exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError creates an ExitError without a cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps err with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from err; nil maps to ExitSuccess and
// foreign errors (cobra flag parsing, for one) to ExitCommandError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// classify maps a library error to its error code and exit code.
func classify(err error) (string, int) {
	switch {
	case errors.Is(err, ErrValue):
		return ErrCodeValue, ExitCommandError
	case errors.Is(err, qfloat.ErrUnits), errors.Is(err, units.ErrUnknownUnit),
		errors.Is(err, units.ErrIncompatible), errors.Is(err, units.ErrSyntax):
		return ErrCodeUnits, ExitFailure
	case errors.Is(err, qfloat.ErrOperationNotSupported):
		return ErrCodeUnsupported, ExitFailure
	case errors.Is(err, ndarray.ErrBroadcast), errors.Is(err, ndarray.ErrBadShape),
		errors.Is(err, ndarray.ErrAxis):
		return ErrCodeShape, ExitFailure
	case errors.Is(err, qfloat.ErrConstruction):
		return ErrCodeValue, ExitFailure
	default:
		return ErrCodeGeneric, ExitFailure
	}
}

// OutputFormatter renders results as text or JSON.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
	Verbose   bool
}

// CLIResponse is the JSON envelope of every command.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError is the error part of a CLIResponse.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Success writes data; text mode relies on its String method.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}

	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error writes an error report. Text goes to ErrWriter, JSON to Writer so
// scripted callers always read one document from stdout.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}

	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(w, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err and returns the ExitError the command should return.
func (f *OutputFormatter) Fail(message string, err error) error {
	code, exit := classify(err)
	_ = f.Error(code, fmt.Sprintf("%s: %v", message, err), nil)
	return WrapExitError(exit, message, err)
}
