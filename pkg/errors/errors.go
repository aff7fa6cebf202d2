// Package errors provides structured error types for filtergen.
//
// Every failure surfaced by the synthesis core, the document model and the
// outer surfaces (CLI, HTTP API) carries a machine-readable code so callers
// can branch on the kind of failure without string matching.
//
// # Error Codes
//
// Codes follow a simple naming convention:
//   - INVALID_*: input validation failures (parameters, orders, values)
//   - UNKNOWN_*: lookups into fixed tables that found nothing
//   - NOT_FOUND: missing files or records
//   - INTERNAL_ERROR / UNSUPPORTED: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidParameter, "gain must be positive, got %g", h0)
//	if errors.Is(err, errors.ErrCodeInvalidParameter) {
//	    // reject the request
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidDesign, cause, "decode %s", path)
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
	ErrCodeInvalidParameter Code = "INVALID_PARAMETER"
	ErrCodeInvalidOrder     Code = "INVALID_ORDER"
	ErrCodeInvalidValue     Code = "INVALID_VALUE"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidDesign    Code = "INVALID_DESIGN"
	ErrCodeInvalidPath      Code = "INVALID_PATH"

	// Table lookups
	ErrCodeUnknownFamily   Code = "UNKNOWN_FAMILY"
	ErrCodeUnknownPageSize Code = "UNKNOWN_PAGE_SIZE"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

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

// IsValidation reports whether err was caused by bad caller input rather
// than an internal failure. The HTTP API maps these to 400 responses.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidParameter, ErrCodeInvalidOrder, ErrCodeInvalidValue,
		ErrCodeInvalidFormat, ErrCodeInvalidDesign, ErrCodeInvalidPath,
		ErrCodeUnknownFamily, ErrCodeUnknownPageSize:
		return true
	}
	return false
}
