package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMissingField is returned when a required input field is absent.
	ErrMissingField = errors.New("missing field")
	// ErrUnknownLabel is returned for sensory labels outside the label table.
	ErrUnknownLabel = errors.New("unknown label")
)

// MissingFieldError lists every required field absent from an input.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return "Champs manquants : " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// NotFoundError names the entity kind and id that could not be resolved.
type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func (e *NotFoundError) Error() string {
	if e.ID == uuid.Nil {
		return e.Code()
	}
	return fmt.Sprintf("%s_not_found:%s", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Code is the machine-readable code exposed to API clients, e.g. "coffee_not_found".
func (e *NotFoundError) Code() string { return e.Entity + "_not_found" }

type UnknownLabelError struct {
	Field string
	Label string
}

func (e *UnknownLabelError) Error() string {
	if e.Field == "" {
		return "unknown_label:" + e.Label
	}
	return fmt.Sprintf("unknown_label:%s (%s)", e.Label, e.Field)
}

func (e *UnknownLabelError) Is(target error) bool { return target == ErrUnknownLabel }

func NotFound(entity string, id uuid.UUID) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func Missing(fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return &MissingFieldError{Fields: fields}
}

func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
