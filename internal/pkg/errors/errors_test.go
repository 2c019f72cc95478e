package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	id := uuid.New()
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"not found", NotFound("coffee", id), ErrNotFound},
		{"missing", Missing("name", "roaster"), ErrMissingField},
		{"label", &UnknownLabelError{Field: "body_label", Label: "fade"}, ErrUnknownLabel},
		{"invalid", Invalid("bad status %q", "x"), ErrInvalidArgument},
	}
	for _, tc := range cases {
		wrapped := fmt.Errorf("wrap: %w", tc.err)
		if !errors.Is(wrapped, tc.want) {
			t.Fatalf("%s: errors.Is failed for %v", tc.name, wrapped)
		}
	}
}

func TestMissingFieldMessage(t *testing.T) {
	err := Missing("name", "price_eur")
	if got, want := err.Error(), "Champs manquants : name, price_eur"; got != want {
		t.Fatalf("message: want=%q got=%q", want, got)
	}
	if Missing() != nil {
		t.Fatalf("Missing() with no fields must be nil")
	}
}

func TestNotFoundCode(t *testing.T) {
	var nf *NotFoundError
	if !errors.As(NotFound("water", uuid.Nil), &nf) {
		t.Fatalf("expected NotFoundError")
	}
	if nf.Code() != "water_not_found" {
		t.Fatalf("code: got %q", nf.Code())
	}
}
