package domain

import (
	"time"

	"github.com/google/uuid"

	apperr "github.com/yungbote/barisense-backend/internal/pkg/errors"
)

// Verdict is the current buy-again decision for a coffee. A coffee has at most one.
type Verdict struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	CoffeeID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"coffee_id"`
	Status    VerdictStatus `gorm:"column:status;not null" json:"status"`
	Rationale *string       `gorm:"column:rationale" json:"rationale"`
	CreatedAt time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null" json:"updated_at"`
}

func (Verdict) TableName() string { return "verdict" }

type VerdictInput struct {
	CoffeeID  uuid.UUID     `json:"coffee_id"`
	Status    VerdictStatus `json:"status"`
	Rationale *string       `json:"rationale"`
}

func (in VerdictInput) Validate() error {
	var missing []string
	if in.CoffeeID == uuid.Nil {
		missing = append(missing, "coffee_id")
	}
	if in.Status == "" {
		missing = append(missing, "status")
	}
	if err := apperr.Missing(missing...); err != nil {
		return err
	}
	if !in.Status.Valid() {
		return apperr.Invalid("status must be one of racheter, a_affiner, en_observation, a_eviter, got %q", in.Status)
	}
	return nil
}
