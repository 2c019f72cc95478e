package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"

	apperr "github.com/yungbote/barisense-backend/internal/pkg/errors"
)

func TestFromClassifiesDomainErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"missing", apperr.Missing("name"), http.StatusBadRequest, "missing_fields"},
		{"label", fmt.Errorf("create: %w", &apperr.UnknownLabelError{Label: "fade"}), http.StatusBadRequest, "unknown_label"},
		{"coffee", apperr.NotFound("coffee", uuid.New()), http.StatusNotFound, "coffee_not_found"},
		{"shot wrapped", fmt.Errorf("x: %w", apperr.NotFound("shot", uuid.New())), http.StatusNotFound, "shot_not_found"},
		{"invalid", apperr.Invalid("bad"), http.StatusBadRequest, "invalid_argument"},
		{"unauthorized", apperr.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"explicit", New(http.StatusConflict, "conflict", nil), http.StatusConflict, "conflict"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		got := From(tc.err)
		if got.Status != tc.status || got.Code != tc.code {
			t.Fatalf("%s: want %d/%s got %d/%s", tc.name, tc.status, tc.code, got.Status, got.Code)
		}
	}
	if From(errors.New("disk on fire")).Error() != "internal error" {
		t.Fatalf("internal errors must not leak their cause")
	}
	if From(nil) != nil {
		t.Fatalf("From(nil) must be nil")
	}
}
