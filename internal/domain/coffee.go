package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperr "github.com/yungbote/barisense-backend/internal/pkg/errors"
)

// Coffee is one purchased lot of beans or ground coffee.
type Coffee struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string       `gorm:"column:name;not null" json:"name"`
	Roaster        string       `gorm:"column:roaster;not null" json:"roaster"`
	Reference      *string      `gorm:"column:reference" json:"reference"`
	Format         CoffeeFormat `gorm:"column:format;not null" json:"format"`
	WeightGrams    int          `gorm:"column:weight_grams;not null" json:"weight_grams"`
	PriceEUR       float64      `gorm:"column:price_eur;not null" json:"price_eur"`
	PurchasedAt    string       `gorm:"column:purchased_at;not null" json:"purchased_at"`
	DefaultWaterID *uuid.UUID   `gorm:"type:uuid;column:default_water_id" json:"default_water_id"`
	CostPerShotEUR float64      `gorm:"column:cost_per_shot_eur;not null" json:"cost_per_shot_eur"`
	CreatedAt      time.Time    `gorm:"not null" json:"created_at"`
}

func (Coffee) TableName() string { return "coffee" }

type CoffeeInput struct {
	Name           string       `json:"name"`
	Roaster        string       `json:"roaster"`
	Reference      *string      `json:"reference"`
	Format         CoffeeFormat `json:"format"`
	WeightGrams    int          `json:"weight_grams"`
	PriceEUR       float64      `json:"price_eur"`
	PurchasedAt    string       `json:"purchased_at"`
	DefaultWaterID *uuid.UUID   `json:"default_water_id"`
}

func (in CoffeeInput) Validate() error {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Roaster) == "" {
		missing = append(missing, "roaster")
	}
	if in.Format == "" {
		missing = append(missing, "format")
	}
	if in.WeightGrams == 0 {
		missing = append(missing, "weight_grams")
	}
	if in.PriceEUR == 0 {
		missing = append(missing, "price_eur")
	}
	if strings.TrimSpace(in.PurchasedAt) == "" {
		missing = append(missing, "purchased_at")
	}
	if err := apperr.Missing(missing...); err != nil {
		return err
	}
	if !in.Format.Valid() {
		return apperr.Invalid("format must be grain or moulu, got %q", in.Format)
	}
	if in.WeightGrams < 0 || in.PriceEUR < 0 {
		return apperr.Invalid("weight_grams and price_eur must be positive")
	}
	return nil
}

// Apply copies the input onto c. Derived fields are left to the caller.
func (in CoffeeInput) Apply(c *Coffee) {
	c.Name = strings.TrimSpace(in.Name)
	c.Roaster = strings.TrimSpace(in.Roaster)
	c.Reference = in.Reference
	c.Format = in.Format
	c.WeightGrams = in.WeightGrams
	c.PriceEUR = in.PriceEUR
	c.PurchasedAt = strings.TrimSpace(in.PurchasedAt)
	c.DefaultWaterID = in.DefaultWaterID
}
