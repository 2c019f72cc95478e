package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperr "github.com/yungbote/barisense-backend/internal/pkg/errors"
)

// Tasting is an immutable sensory evaluation of one shot.
type Tasting struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ShotID          uuid.UUID `gorm:"type:uuid;not null;index" json:"shot_id"`
	AcidityLabel    string    `gorm:"column:acidity_label;not null" json:"acidity_label"`
	BitternessLabel string    `gorm:"column:bitterness_label;not null" json:"bitterness_label"`
	BodyLabel       string    `gorm:"column:body_label;not null" json:"body_label"`
	AromaLabel      string    `gorm:"column:aroma_label;not null" json:"aroma_label"`
	BalanceLabel    string    `gorm:"column:balance_label;not null" json:"balance_label"`
	FinishLabel     string    `gorm:"column:finish_label;not null" json:"finish_label"`
	OverallLabel    string    `gorm:"column:overall_label;not null" json:"overall_label"`
	AcidityScore    int       `gorm:"column:acidity_score;not null" json:"acidity_score"`
	BitternessScore int       `gorm:"column:bitterness_score;not null" json:"bitterness_score"`
	BodyScore       int       `gorm:"column:body_score;not null" json:"body_score"`
	AromaScore      int       `gorm:"column:aroma_score;not null" json:"aroma_score"`
	BalanceScore    int       `gorm:"column:balance_score;not null" json:"balance_score"`
	FinishScore     int       `gorm:"column:finish_score;not null" json:"finish_score"`
	OverallScore    int       `gorm:"column:overall_score;not null" json:"overall_score"`
	SensoryMean     float64   `gorm:"column:sensory_mean;not null" json:"sensory_mean"`
	Comments        *string   `gorm:"column:comments" json:"comments"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
}

func (Tasting) TableName() string { return "tasting" }

// Scores returns the seven attribute scores in attribute order.
func (t *Tasting) Scores() []int {
	return []int{
		t.AcidityScore,
		t.BitternessScore,
		t.BodyScore,
		t.AromaScore,
		t.BalanceScore,
		t.FinishScore,
		t.OverallScore,
	}
}

// SetScores is the inverse of Scores.
func (t *Tasting) SetScores(s [7]int) {
	t.AcidityScore = s[0]
	t.BitternessScore = s[1]
	t.BodyScore = s[2]
	t.AromaScore = s[3]
	t.BalanceScore = s[4]
	t.FinishScore = s[5]
	t.OverallScore = s[6]
}

type TastingInput struct {
	ShotID          uuid.UUID `json:"shot_id"`
	AcidityLabel    string    `json:"acidity_label"`
	BitternessLabel string    `json:"bitterness_label"`
	BodyLabel       string    `json:"body_label"`
	AromaLabel      string    `json:"aroma_label"`
	BalanceLabel    string    `json:"balance_label"`
	FinishLabel     string    `json:"finish_label"`
	OverallLabel    string    `json:"overall_label"`
	Comments        *string   `json:"comments"`
}

// AttributeLabel pairs an input field name with the label given for it.
type AttributeLabel struct {
	Field string
	Label string
}

// Labels returns the seven labels in attribute order.
func (in TastingInput) Labels() [7]AttributeLabel {
	return [7]AttributeLabel{
		{"acidity_label", in.AcidityLabel},
		{"bitterness_label", in.BitternessLabel},
		{"body_label", in.BodyLabel},
		{"aroma_label", in.AromaLabel},
		{"balance_label", in.BalanceLabel},
		{"finish_label", in.FinishLabel},
		{"overall_label", in.OverallLabel},
	}
}

func (in TastingInput) Validate() error {
	var missing []string
	if in.ShotID == uuid.Nil {
		missing = append(missing, "shot_id")
	}
	for _, l := range in.Labels() {
		if strings.TrimSpace(l.Label) == "" {
			missing = append(missing, l.Field)
		}
	}
	return apperr.Missing(missing...)
}
