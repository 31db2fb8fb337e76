package errors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error so transports can translate it without
// inspecting message text.
type Code string

const (
	// CodeUnauthorized means no valid session was presented.
	CodeUnauthorized Code = "unauthorized"
	// CodeForbidden means the actor is authenticated but lacks the role or
	// scope for the operation.
	CodeForbidden Code = "forbidden"
	// CodeNotFound covers both "does not exist" and "exists in another
	// tenant". Callers must not be able to tell the two apart.
	CodeNotFound Code = "not_found"
	// CodeConflict signals a uniqueness violation (duplicate domain,
	// duplicate allow-list entry).
	CodeConflict  Code = "conflict"
	CodeBadRequest Code = "bad_request"
	// CodeInvalidInput is for trust-boundary parse failures (IDs, enums).
	CodeInvalidInput Code = "invalid_input"
	// CodeInvariantViolation marks a broken model invariant; services map it
	// to a caller-facing code before it leaves the domain layer.
	CodeInvariantViolation Code = "invariant_violation"
	CodeInternal           Code = "internal_error"
)

// Error is a domain error carrying a stable code and a human-readable
// message. Wrapped causes are preserved for errors.Is/As.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New constructs a domain error with the given code.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap annotates err with a code and message while keeping it unwrappable.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.cause
		de = nil
	}
	return false
}

// Is is an alias of HasCode kept for call-site readability.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the outermost code of err, or CodeInternal when err carries
// no domain code.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the outermost domain message of err, or empty when err
// carries none.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}
