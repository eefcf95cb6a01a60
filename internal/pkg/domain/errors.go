package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a domain error for transport-layer mapping.
type ErrorCode string

const (
	CodeNotFound    ErrorCode = "NOT_FOUND"
	CodeForbidden   ErrorCode = "FORBIDDEN"
	CodeValidation  ErrorCode = "VALIDATION"
	CodeConflict    ErrorCode = "CONFLICT"
	CodeUnsupported ErrorCode = "UNSUPPORTED"
)

// Error is a typed, catchable domain error. The message is diagnostic only;
// user-facing formatting is owned by the transport layer.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// NewNotFoundError reports that an entity with the given identifier does not exist.
func NewNotFoundError(entity, id string) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// NewForbiddenError reports that the caller lacks the required relationship.
func NewForbiddenError(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg}
}

// NewValidationError reports a business-rule violation.
func NewValidationError(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// NewConflictError reports a concurrent-modification or uniqueness conflict.
func NewConflictError(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

// NewInvalidStateError reports a disallowed state-machine transition.
func NewInvalidStateError(from, to string) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf("invalid transition from %s to %s", from, to)}
}

// NewUnsupportedError reports an enum value no branch handles.
func NewUnsupportedError(what string) *Error {
	return &Error{Code: CodeUnsupported, Message: "unsupported " + what}
}

// CodeOf extracts the error code from err, or "" if err is not a domain error.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsCode reports whether err is a domain error with the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
