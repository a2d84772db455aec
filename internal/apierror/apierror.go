// Package apierror defines the single error shape returned by services:
// an HTTP-style status and a human readable message.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a service failure carrying the status the request adapter should render.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same status, so callers can write
// errors.Is(err, apierror.ErrNotFound).
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Status == t.Status
	}
	return false
}

// Sentinels for errors.Is.
var (
	ErrNotFound     = &Error{Status: http.StatusNotFound, Message: "not found"}
	ErrConflict     = &Error{Status: http.StatusConflict, Message: "conflict"}
	ErrValidation   = &Error{Status: http.StatusBadRequest, Message: "validation error"}
	ErrUnauthorized = &Error{Status: http.StatusUnauthorized, Message: "unauthorized"}
	ErrForbidden    = &Error{Status: http.StatusForbidden, Message: "forbidden"}
	ErrInternal     = &Error{Status: http.StatusInternalServerError, Message: "internal error"}
)

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, fmt.Sprintf(format, args...))
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

func Validation(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

// Internal builds a 500 error that keeps cause for logging and errors.Is.
func Internal(message string, cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message, cause: cause}
}

// Wrap converts any error into an *Error. Errors that already carry a status
// pass through untouched; everything else becomes Internal, using the
// underlying message when there is one and defaultMessage otherwise.
func Wrap(err error, defaultMessage string) *Error {
	if err == nil {
		return nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	message := defaultMessage
	if err.Error() != "" {
		message = err.Error()
	}
	return Internal(message, err)
}

// StatusOf reports the status for err, 500 for anything untagged.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}
