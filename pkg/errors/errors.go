// Package errors provides structured error types for blockdiag.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the scene, the entities and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Configuration and input validation failures
//   - NOT_FOUND / DUPLICATE_ID: Entity lookup failures
//   - DANGLING_WIRE: Broken ownership invariant (always a bug)
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidMode, "unsupported color mode %q", mode)
//	if errors.Is(err, errors.ErrCodeInvalidMode) {
//	    // State was left untouched, report to the user
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidMode      Code = "INVALID_MODE"
	ErrCodeInvalidPortIndex Code = "INVALID_PORT_INDEX"
	ErrCodeInvalidWire      Code = "INVALID_WIRE"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"

	// Entity lookup errors
	ErrCodeNotFound    Code = "NOT_FOUND"
	ErrCodeDuplicateID Code = "DUPLICATE_ID"

	// Invariant violations
	ErrCodeDanglingWire Code = "DANGLING_WIRE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// Is reports whether err has the given error code.
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

// InvalidMode reports an unsupported color mode value.
func InvalidMode(value string) *Error {
	return New(ErrCodeInvalidMode, "unsupported color mode %q (want Light, Dark or Off)", value)
}

// InvalidPortIndex reports an out-of-range port lookup or a port cardinality
// the entity cannot take.
func InvalidPortIndex(format string, args ...any) *Error {
	return New(ErrCodeInvalidPortIndex, format, args...)
}

// DanglingWire reports a wire whose port belongs to a destroyed block.
func DanglingWire(wireID, blockID string) *Error {
	return New(ErrCodeDanglingWire, "wire %s references destroyed block %s", wireID, blockID)
}

// NotFound reports an unknown entity or wire ID.
func NotFound(kind, id string) *Error {
	return New(ErrCodeNotFound, "%s %q not found", kind, id)
}
