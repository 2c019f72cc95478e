package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperr "github.com/yungbote/barisense-backend/internal/pkg/errors"
)

type Water struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Label     string      `gorm:"column:label;not null" json:"label"`
	Source    WaterSource `gorm:"column:source;not null" json:"source"`
	Brand     *string     `gorm:"column:brand" json:"brand"`
	CreatedAt time.Time   `gorm:"not null" json:"created_at"`
}

func (Water) TableName() string { return "water" }

type WaterInput struct {
	Label  string      `json:"label"`
	Source WaterSource `json:"source"`
	Brand  *string     `json:"brand"`
}

func (in WaterInput) Validate() error {
	var missing []string
	if strings.TrimSpace(in.Label) == "" {
		missing = append(missing, "label")
	}
	if in.Source == "" {
		missing = append(missing, "source")
	}
	if err := apperr.Missing(missing...); err != nil {
		return err
	}
	if !in.Source.Valid() {
		return apperr.Invalid("source must be robinet or bouteille, got %q", in.Source)
	}
	return nil
}

func (in WaterInput) Apply(w *Water) {
	w.Label = strings.TrimSpace(in.Label)
	w.Source = in.Source
	w.Brand = in.Brand
}
