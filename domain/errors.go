package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeNetwork      ErrorCode = "NETWORK"
	ErrCodeUpstream     ErrorCode = "UPSTREAM"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	// Status carries the remote HTTP status for ErrCodeUpstream errors.
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches domain errors by code and message so sentinel comparisons survive wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// InvalidInput reports a local validation failure. It never reaches the network.
func InvalidInput(message string) *Error {
	return NewError(ErrCodeInvalid, message)
}

// NetworkError reports a request that could not be sent or whose response could not be read.
func NetworkError(err error) *Error {
	return WrapError(ErrCodeNetwork, "task api unreachable", err)
}

// ServerError reports a non-2xx response from the remote task API.
func ServerError(status int) *Error {
	return &Error{Code: ErrCodeUpstream, Message: "task api error", Status: status}
}

// Common domain errors.
var (
	ErrInvalidCredentials = NewError(ErrCodeUnauthorized, "invalid username or password")
	ErrNoSession          = NewError(ErrCodeUnauthorized, "no active session")
	ErrForbidden          = NewError(ErrCodeForbidden, "not permitted for this role")
	ErrTaskNotFound       = NewError(ErrCodeNotFound, "task not found")
	ErrInvalidPayload     = NewError(ErrCodeInvalid, "invalid payload")
	ErrInvalidDueDate     = NewError(ErrCodeInvalid, "invalid due date")
	ErrInvalidFilter      = NewError(ErrCodeInvalid, "invalid status filter")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// UpstreamStatus returns the remote HTTP status carried by err, or 0.
func UpstreamStatus(err error) int {
	var dErr *Error
	if errors.As(err, &dErr) && dErr.Code == ErrCodeUpstream {
		return dErr.Status
	}
	return 0
}
