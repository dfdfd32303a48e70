// Package apperror defines the error taxonomy shared by every HTTP handler
// and the Fiber error handler that renders it.
package apperror

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies a failure into one of the response categories.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindThrottled
)

// Error is a classified failure. Message is always safe to return to the
// client; Err carries the internal cause.
type Error struct {
	Kind    Kind
	Message string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the error kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindThrottled:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

// InvalidField reports the first failing input field.
func InvalidField(field, msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Field: field}
}

func Authentication(msg string) *Error { return &Error{Kind: KindAuthentication, Message: msg} }

func Authorization(msg string) *Error { return &Error{Kind: KindAuthorization, Message: msg} }

func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

func Throttled(msg string) *Error { return &Error{Kind: KindThrottled, Message: msg} }

func Unexpected(msg string, err error) *Error {
	return &Error{Kind: KindUnexpected, Message: msg, Err: err}
}

// StatusOf returns the HTTP status an error will be rendered with, or 0 for nil.
func StatusOf(err error) int {
	if err == nil {
		return 0
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status()
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return http.StatusInternalServerError
}
