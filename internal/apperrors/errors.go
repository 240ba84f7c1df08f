// Package apperrors defines the error taxonomy shared by repositories, services and handlers.
package apperrors

import (
	"errors"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindAuthentication
	KindAuthorization
)

// Error is a classified error that can be surfaced to API callers.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field messages for validation failures.
	Fields map[string][]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status code the error maps to.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthentication, KindAuthorization:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Validation reports bad input. fields may be nil.
func Validation(message string, fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// FieldError is a shorthand for a validation error on a single field.
func FieldError(field, message string) *Error {
	return Validation("Validation failed", map[string][]string{field: {message}})
}

// NotFound reports a missing entity.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// NotFoundWrap reports a missing entity and keeps the underlying cause.
func NotFoundWrap(message string, err error) *Error {
	return &Error{Kind: KindNotFound, Message: message, Err: err}
}

// Authentication reports bad credentials.
func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// Authorization reports a missing or invalid token on a protected route.
func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
