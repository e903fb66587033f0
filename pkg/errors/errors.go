// Package errors provides structured error types for metro.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - *_TRACK / SELF_JOIN: event contract violations raised by the track registry
//   - INVALID_*: Input validation failures (scripts, formats, text)
//   - IO_ERROR: failures of an output sink
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.Wrap(errors.ErrCodeMissingTrack, track.ErrMissingTrack, "track %d", id)
//	if errors.Is(err, errors.ErrCodeMissingTrack) {
//	    // Handle contract violation
//	}
//
// Because [Error] unwraps to its cause, the standard library's errors.Is
// still matches the wrapped sentinel.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Event contract violations
	ErrCodeDuplicateTrack Code = "DUPLICATE_TRACK"
	ErrCodeMissingTrack   Code = "MISSING_TRACK"
	ErrCodeSelfJoin       Code = "SELF_JOIN"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidScript Code = "INVALID_SCRIPT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidText   Code = "INVALID_TEXT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeIO           Code = "IO_ERROR"

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

// IsContractViolation reports whether err is one of the event contract
// violations (duplicate track, missing or closed track, self join). These
// are caller mistakes, never transient, and must not be retried.
func IsContractViolation(err error) bool {
	switch GetCode(err) {
	case ErrCodeDuplicateTrack, ErrCodeMissingTrack, ErrCodeSelfJoin:
		return true
	}
	return false
}

// IsInputError reports whether err was caused by invalid caller input,
// either a contract violation or a malformed script, format or text.
func IsInputError(err error) bool {
	if IsContractViolation(err) {
		return true
	}
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidScript, ErrCodeInvalidFormat, ErrCodeInvalidText, ErrCodeInvalidPath:
		return true
	}
	return false
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
