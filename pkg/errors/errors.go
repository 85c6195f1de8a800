// Package errors provides structured error types for reposcout.
//
// Two families live here. Coded errors ([Error]) describe local failures such
// as invalid flags or a broken config file and carry a machine-readable
// [Code]. Request failures describe what went wrong while talking to the
// search provider and are split into the taxonomy the search client logs:
//
//   - [ProviderRequestError]: the provider answered with an error response
//     (rate limit, invalid query, missing resource). Carries the HTTP status,
//     a name, the documentation link and any field-level validation errors.
//   - [TransportError]: the request never produced a structured provider
//     answer (connection refused, timeout, undecodable body). Carries a name,
//     message, cause and the stack captured where it was created.
//   - anything else is [KindUnknown].
//
// Use [Classify] to find out which one an error is.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "stars must be >= 0, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	switch errors.Classify(err) {
//	case errors.KindProvider:
//	    // inspect *ProviderRequestError
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for local failures. Request failures use the taxonomy in
// request.go instead.
const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidSort   Code = "INVALID_SORT"
	ErrCodeInvalidFilter Code = "INVALID_FILTER"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG" // config file, env or saved login
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
// Coded errors lose their code prefix, provider errors are reduced to status
// and provider message, everything else is returned as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var pe *ProviderRequestError
	if errors.As(err, &pe) {
		if pe.Message != "" {
			return fmt.Sprintf("GitHub returned %d: %s", pe.Status, pe.Message)
		}
		return fmt.Sprintf("GitHub returned %d", pe.Status)
	}
	return err.Error()
}
