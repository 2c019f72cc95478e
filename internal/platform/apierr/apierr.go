package apierr

import (
	"errors"
	"fmt"
	"net/http"

	apperr "github.com/yungbote/barisense-backend/internal/pkg/errors"
)

// Error carries the HTTP status and machine code an error is reported with.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// From classifies err. Errors it does not recognise become a 500 whose
// message does not leak the cause.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	var nf *apperr.NotFoundError
	if errors.As(err, &nf) {
		return New(http.StatusNotFound, nf.Code(), err)
	}
	var ule *apperr.UnknownLabelError
	if errors.As(err, &ule) {
		return New(http.StatusBadRequest, "unknown_label", err)
	}
	switch {
	case errors.Is(err, apperr.ErrMissingField):
		return New(http.StatusBadRequest, "missing_fields", err)
	case errors.Is(err, apperr.ErrNotFound):
		return New(http.StatusNotFound, "not_found", err)
	case errors.Is(err, apperr.ErrInvalidArgument):
		return New(http.StatusBadRequest, "invalid_argument", err)
	case errors.Is(err, apperr.ErrUnauthorized):
		return New(http.StatusUnauthorized, "unauthorized", err)
	}
	return New(http.StatusInternalServerError, "internal_error", errors.New("internal error"))
}
