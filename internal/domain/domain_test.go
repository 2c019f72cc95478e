package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	apperr "github.com/yungbote/barisense-backend/internal/pkg/errors"
)

func TestCoffeeInputValidateListsMissingFields(t *testing.T) {
	err := CoffeeInput{Name: "Ethiopie", Format: CoffeeFormatGrain}.Validate()
	var mf *apperr.MissingFieldError
	if !errors.As(err, &mf) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	want := []string{"roaster", "weight_grams", "price_eur", "purchased_at"}
	if len(mf.Fields) != len(want) {
		t.Fatalf("fields: want=%v got=%v", want, mf.Fields)
	}
	for i := range want {
		if mf.Fields[i] != want[i] {
			t.Fatalf("fields: want=%v got=%v", want, mf.Fields)
		}
	}
}

func TestCoffeeInputValidateRejectsUnknownFormat(t *testing.T) {
	in := CoffeeInput{Name: "a", Roaster: "b", Format: "capsule", WeightGrams: 250, PriceEUR: 12, PurchasedAt: "2024-01-02"}
	if err := in.Validate(); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestShotInputValidate(t *testing.T) {
	ok := ShotInput{
		CoffeeID:              uuid.New(),
		BeverageType:          BeverageExpresso,
		GrindSetting:          "12",
		DoseInGrams:           18,
		BeverageWeightGrams:   36,
		ExtractionTimeSeconds: 28,
	}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid shot rejected: %v", err)
	}
	bad := ok
	bad.BeverageType = "lungo"
	if err := bad.Validate(); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	if err := (ShotInput{}).Validate(); !errors.Is(err, apperr.ErrMissingField) {
		t.Fatalf("expected missing field, got %v", err)
	}
}

func TestTastingInputValidateRequiresAllLabels(t *testing.T) {
	in := TastingInput{ShotID: uuid.New(), AcidityLabel: "doux"}
	var mf *apperr.MissingFieldError
	if !errors.As(in.Validate(), &mf) {
		t.Fatalf("expected MissingFieldError")
	}
	if len(mf.Fields) != 6 {
		t.Fatalf("expected 6 missing labels, got %v", mf.Fields)
	}
}

func TestVerdictStatusLabel(t *testing.T) {
	cases := map[VerdictStatus]string{
		VerdictRacheter:      "racheter",
		VerdictAAffiner:      "à affiner",
		VerdictEnObservation: "en observation",
		VerdictAEviter:       "à éviter",
		VerdictStatus("??"):  "en observation",
	}
	for status, want := range cases {
		if got := status.Label(); got != want {
			t.Fatalf("%q: want=%q got=%q", status, want, got)
		}
	}
}
