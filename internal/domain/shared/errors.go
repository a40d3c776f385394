package shared

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so that errors built with
// NewDomainErrorf still match the sentinels below via errors.Is.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewDomainErrorf creates a new domain error with a formatted message
func NewDomainErrorf(code, format string, args ...any) *DomainError {
	return NewDomainError(code, fmt.Sprintf(format, args...))
}

// Error codes shared by every bounded context
const (
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeInvalidState  = "INVALID_STATE"
	CodeConflict      = "CONFLICT"
)

// Common domain errors
var (
	ErrNotFound      = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput  = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrInvalidState  = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrConflict      = NewDomainError(CodeConflict, "Resource was modified by another process")
)

// NotFoundf returns a NOT_FOUND error with a specific message
func NotFoundf(format string, args ...any) *DomainError {
	return NewDomainErrorf(CodeNotFound, format, args...)
}

// InvalidInputf returns an INVALID_INPUT error with a specific message
func InvalidInputf(format string, args ...any) *DomainError {
	return NewDomainErrorf(CodeInvalidInput, format, args...)
}

// InvalidStatef returns an INVALID_STATE error with a specific message
func InvalidStatef(format string, args ...any) *DomainError {
	return NewDomainErrorf(CodeInvalidState, format, args...)
}

// AlreadyExistsf returns an ALREADY_EXISTS error with a specific message
func AlreadyExistsf(format string, args ...any) *DomainError {
	return NewDomainErrorf(CodeAlreadyExists, format, args...)
}
