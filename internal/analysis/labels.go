package analysis

import (
	"github.com/yungbote/barisense-backend/internal/normalization"
	apperr "github.com/yungbote/barisense-backend/internal/pkg/errors"
)

// SensoryLabel is one point of the five-step sensory scale. Its value is the score.
type SensoryLabel int

const (
	LabelInsipide SensoryLabel = iota + 1
	LabelDoux
	LabelEquilibre
	LabelExpressif
	LabelIntense
)

const (
	MinScore = int(LabelInsipide)
	MaxScore = int(LabelIntense)
)

var labelNames = [...]string{
	LabelInsipide:  "insipide",
	LabelDoux:      "doux",
	LabelEquilibre: "équilibré",
	LabelExpressif: "expressif",
	LabelIntense:   "intense",
}

// accepted spellings, NFC-normalised and lowercase
var labelLookup = map[string]SensoryLabel{
	"insipide":  LabelInsipide,
	"doux":      LabelDoux,
	"équilibré": LabelEquilibre,
	"equilibre": LabelEquilibre,
	"expressif": LabelExpressif,
	"intense":   LabelIntense,
}

// Labels lists the scale in ascending score order.
func Labels() []SensoryLabel {
	return []SensoryLabel{LabelInsipide, LabelDoux, LabelEquilibre, LabelExpressif, LabelIntense}
}

func (l SensoryLabel) String() string {
	if l < LabelInsipide || l > LabelIntense {
		return labelNames[LabelEquilibre]
	}
	return labelNames[l]
}

func (l SensoryLabel) Score() int { return int(l) }

// ParseLabel is a case-insensitive, whitespace-trimmed lookup in the label table.
func ParseLabel(raw string) (SensoryLabel, error) {
	key := normalization.ParseInputString(raw)
	if l, ok := labelLookup[key]; ok {
		return l, nil
	}
	return 0, &apperr.UnknownLabelError{Label: raw}
}

func LabelToScore(raw string) (int, error) {
	l, err := ParseLabel(raw)
	if err != nil {
		return 0, err
	}
	return l.Score(), nil
}

// ScoreToLabel clamps score into the scale before mapping it.
func ScoreToLabel(score int) SensoryLabel {
	if score < MinScore {
		score = MinScore
	}
	if score > MaxScore {
		score = MaxScore
	}
	return SensoryLabel(score)
}
