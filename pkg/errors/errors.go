// Package errors provides structured error types for weekplan.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine, CLI and HTTP server
//   - Machine-readable error codes for programmatic handling
//   - Per-event diagnostics that travel alongside a finished document
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - Engine codes (MALFORMED_EVENT, OUT_OF_WINDOW, ...): layout outcomes
//   - INTERNAL_*: Unexpected internal errors
//
// Only LINK_RESOLUTION_FAILURE is returned as a hard error from document
// assembly. The other engine codes are reported as [Diagnostic] values.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedEvent, "event %s ends before it starts", id)
//	if errors.Is(err, errors.ErrCodeMalformedEvent) {
//	    // exclude the event, keep rendering
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "load %s", path)
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidWeek   Code = "INVALID_WEEK"

	// Engine outcomes
	ErrCodeMalformedEvent        Code = "MALFORMED_EVENT"
	ErrCodeOutOfWindow           Code = "OUT_OF_WINDOW"
	ErrCodeLaneOverflow          Code = "LANE_OVERFLOW"
	ErrCodePageRenderFailure     Code = "PAGE_RENDER_FAILURE"
	ErrCodeLinkResolutionFailure Code = "LINK_RESOLUTION_FAILURE"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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
// It unwraps the error chain looking for an *Error or *LinkError with a
// matching code.
func Is(err error, code Code) bool {
	return err != nil && code != "" && GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var le *LinkError
	if errors.As(err, &le) {
		return le.Code()
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

// LinkError reports a navigation anchor that could not be resolved to a page.
// It carries the page and anchor that failed so callers can diagnose the
// broken link without parsing the message.
type LinkError struct {
	PageIndex int    // Page the anchor was found on
	Anchor    string // Anchor role, e.g. "day-header"
	Target    string // Unresolved target, e.g. "day 9"
	Reason    string
}

// Error implements the error interface.
func (e *LinkError) Error() string {
	return fmt.Sprintf("%s: page %d anchor %q -> %s: %s",
		ErrCodeLinkResolutionFailure, e.PageIndex, e.Anchor, e.Target, e.Reason)
}

// Code returns the error code for this error type.
func (e *LinkError) Code() Code {
	return ErrCodeLinkResolutionFailure
}
