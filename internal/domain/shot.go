package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperr "github.com/yungbote/barisense-backend/internal/pkg/errors"
)

// Shot is a single extraction of a coffee lot.
type Shot struct {
	ID                    uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	CoffeeID              uuid.UUID    `gorm:"type:uuid;not null;index" json:"coffee_id"`
	BeverageType          BeverageType `gorm:"column:beverage_type;not null" json:"beverage_type"`
	GrindSetting          string       `gorm:"column:grind_setting;not null" json:"grind_setting"`
	DoseInGrams           float64      `gorm:"column:dose_in_grams;not null" json:"dose_in_grams"`
	BeverageWeightGrams   float64      `gorm:"column:beverage_weight_grams;not null" json:"beverage_weight_grams"`
	ExtractionTimeSeconds float64      `gorm:"column:extraction_time_seconds;not null" json:"extraction_time_seconds"`
	WaterID               *uuid.UUID   `gorm:"type:uuid;column:water_id" json:"water_id"`
	Notes                 *string      `gorm:"column:notes" json:"notes"`
	BrewRatio             float64      `gorm:"column:brew_ratio;not null" json:"brew_ratio"`
	CreatedAt             time.Time    `gorm:"not null" json:"created_at"`
}

func (Shot) TableName() string { return "shot" }

type ShotInput struct {
	CoffeeID              uuid.UUID    `json:"coffee_id"`
	BeverageType          BeverageType `json:"beverage_type"`
	GrindSetting          string       `json:"grind_setting"`
	DoseInGrams           float64      `json:"dose_in_grams"`
	BeverageWeightGrams   float64      `json:"beverage_weight_grams"`
	ExtractionTimeSeconds float64      `json:"extraction_time_seconds"`
	WaterID               *uuid.UUID   `json:"water_id"`
	Notes                 *string      `json:"notes"`
}

func (in ShotInput) Validate() error {
	var missing []string
	if in.CoffeeID == uuid.Nil {
		missing = append(missing, "coffee_id")
	}
	if in.BeverageType == "" {
		missing = append(missing, "beverage_type")
	}
	if strings.TrimSpace(in.GrindSetting) == "" {
		missing = append(missing, "grind_setting")
	}
	if in.DoseInGrams == 0 {
		missing = append(missing, "dose_in_grams")
	}
	if in.BeverageWeightGrams == 0 {
		missing = append(missing, "beverage_weight_grams")
	}
	if in.ExtractionTimeSeconds == 0 {
		missing = append(missing, "extraction_time_seconds")
	}
	if err := apperr.Missing(missing...); err != nil {
		return err
	}
	if !in.BeverageType.Valid() {
		return apperr.Invalid("beverage_type must be ristretto, expresso or cafe_long, got %q", in.BeverageType)
	}
	if in.DoseInGrams < 0 || in.BeverageWeightGrams < 0 || in.ExtractionTimeSeconds < 0 {
		return apperr.Invalid("weights and extraction time must be positive")
	}
	return nil
}

func (in ShotInput) Apply(s *Shot) {
	s.CoffeeID = in.CoffeeID
	s.BeverageType = in.BeverageType
	s.GrindSetting = strings.TrimSpace(in.GrindSetting)
	s.DoseInGrams = in.DoseInGrams
	s.BeverageWeightGrams = in.BeverageWeightGrams
	s.ExtractionTimeSeconds = in.ExtractionTimeSeconds
	s.WaterID = in.WaterID
	s.Notes = in.Notes
}
