// Package errors provides structured error types for the Anti-Virus solver.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: instance validation failures (precondition violations)
//   - NOT_FOUND_*: resource not found
//   - INTERNAL_*: unexpected internal errors
//
// Search exhaustion ("no solution") is deliberately NOT an error code here:
// it is an expected result, signaled by solver.ErrNoSolution.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeSizeMismatch, "tiles cover %d cells, board has %d", n, free)
//	if errors.Is(err, errors.ErrCodeSizeMismatch) {
//	    // handle the validation error
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Instance validation errors, raised at construction and never during search.
	ErrCodeInvalidInstance Code = "INVALID_INSTANCE"
	ErrCodeSizeMismatch    Code = "INVALID_SIZE_MISMATCH"
	ErrCodeOutOfBounds     Code = "INVALID_OUT_OF_BOUNDS"
	ErrCodeDuplicateTile   Code = "INVALID_DUPLICATE_TILE"
	ErrCodeInvalidTile     Code = "INVALID_TILE"
	ErrCodeInvalidMarker   Code = "INVALID_MARKER"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidRule     Code = "INVALID_RULE"

	// Resource not found errors.
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodePuzzleNotFound Code = "PUZZLE_NOT_FOUND"

	// Internal errors.
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err carries the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsValidation reports whether the error is an instance precondition
// violation (any INVALID_* code).
func IsValidation(err error) bool {
	code := GetCode(err)
	return len(code) >= 7 && code[:7] == "INVALID"
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
