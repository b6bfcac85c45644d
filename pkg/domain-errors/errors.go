// Package domainerrors defines the coded errors that cross the service
// boundary. Stores return sentinel errors for infrastructure facts; services
// wrap them into one of these codes so transport can translate without
// inspecting internals. Conventionally imported as dErrors.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for transport translation.
type Code string

const (
	CodeValidation   Code = "validation_failed"
	CodeBadRequest   Code = "bad_request"
	CodeInvalidInput Code = "invalid_input"
	CodeConflict     Code = "conflict"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeNotFound     Code = "not_found"
	CodeInternal     Code = "internal"
)

// DomainError carries a code, a caller-safe message, and optionally a
// field->message map for validation failures. The wrapped cause, if any, is
// for logs only and must never reach a response body.
type DomainError struct {
	Code    Code
	Message string
	Fields  map[string]string
	cause   error
}

func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error { return e.cause }

// New builds a DomainError with no underlying cause.
func New(code Code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Wrap attaches a code and caller-safe message to an underlying error.
func Wrap(err error, code Code, message string) *DomainError {
	return &DomainError{Code: code, Message: message, cause: err}
}

// NewValidation builds a validation error enumerating per-field problems.
func NewValidation(fields map[string]string) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: "validation failed",
		Fields:  fields,
	}
}

// Add records a field-level problem, allocating the map on first use.
func (e *DomainError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
}

// HasCode reports whether err is (or wraps) a DomainError with the given code.
func HasCode(err error, code Code) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is a readability alias for HasCode at call sites that read like
// dErrors.Is(err, dErrors.CodeConflict).
func Is(err error, code Code) bool { return HasCode(err, code) }

// Load extracts the DomainError from err, or nil when err carries none.
func Load(err error) *DomainError {
	var de *DomainError
	if errors.As(err, &de) {
		return de
	}
	return nil
}
