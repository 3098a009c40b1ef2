package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// StatusError carries an explicit HTTP status and client message. Handlers
// return it for conditions that have no domain or store sentinel.
type StatusError struct {
	Status  int
	Message string
	Err     error
}

// NewStatusError creates a StatusError. err may be nil.
func NewStatusError(status int, message string, err error) *StatusError {
	return &StatusError{Status: status, Message: message, Err: err}
}

// Error implements the error interface for StatusError.
func (e *StatusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StatusError) Unwrap() error {
	return e.Err
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var statusErr *StatusError

	switch {
	case errors.As(err, &statusErr):
		return statusErr.Status

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. Validation messages only name the field and the
// rule it broke, so they are passed through.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return http.StatusText(http.StatusInternalServerError)
	}

	var (
		statusErr *StatusError
		validErr  *domain.ValidationError
	)

	switch {
	case errors.As(err, &statusErr):
		return statusErr.Message

	case errors.As(err, &validErr):
		return validErr.Error()

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid task data"

	case errors.Is(err, store.ErrNotFound):
		return "Task not found"

	default:
		return http.StatusText(http.StatusInternalServerError)
	}
}

// HandlerFunc is an HTTP handler that reports failures by returning them.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts h to an http.HandlerFunc. It is the single place where
// errors become HTTP responses: the status and client message are derived
// from the error kind and the full error is logged with redaction. Handlers
// must not write to w before returning an error.
func Handle(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		shared.RespondWithErrorAndLog(
			w,
			r,
			MapErrorToStatusCode(err),
			GetSafeErrorMessage(err),
			err,
		)
	}
}
