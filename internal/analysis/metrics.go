package analysis

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/yungbote/barisense-backend/internal/domain"
)

// ReferenceDoseGrams is the dry dose assumed when pricing a shot.
const ReferenceDoseGrams = 18.0

const (
	StabilityInsufficient = "données insuffisantes"
	StabilityVeryStable   = "très stable"
	StabilityFairlyStable = "assez stable"
	StabilityVariable     = "variable"
	StabilityVeryVariable = "très variable"
)

const (
	QualityPriceExcellent   = "excellent"
	QualityPriceGood        = "bon"
	QualityPriceAverage     = "moyen"
	QualityPriceUnfavorable = "défavorable"
	QualityPriceUnknown     = "non renseigné"
)

var qualityPricePriority = map[string]int{
	QualityPriceExcellent:   4,
	QualityPriceGood:        3,
	QualityPriceAverage:     2,
	QualityPriceUnfavorable: 1,
	QualityPriceUnknown:     0,
}

// QualityPricePriority orders quality/price buckets, best first. Unknown labels rank 0.
func QualityPricePriority(label string) int {
	return qualityPricePriority[label]
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return round2(decimal.NewFromFloat(v))
}

func CostPerShot(priceEUR float64, weightGrams int, doseGrams float64) float64 {
	if weightGrams <= 0 {
		return 0
	}
	unit := decimal.NewFromFloat(priceEUR).Div(decimal.NewFromInt(int64(weightGrams)))
	return round2(unit.Mul(decimal.NewFromFloat(doseGrams)))
}

func BrewRatio(beverageWeightGrams, doseGrams float64) float64 {
	if doseGrams <= 0 {
		return 0
	}
	return round2(decimal.NewFromFloat(beverageWeightGrams).Div(decimal.NewFromFloat(doseGrams)))
}

func SensoryMean(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return round2(decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(len(scores)))))
}

// MeanToLabel is for display only; it is not the verdict ladder.
func MeanToLabel(mean float64) SensoryLabel {
	return ScoreToLabel(int(math.Round(mean)))
}

func VerdictFromMean(mean float64) domain.VerdictStatus {
	switch {
	case mean >= 4.5:
		return domain.VerdictRacheter
	case mean >= 3.5:
		return domain.VerdictAAffiner
	case mean >= 2.5:
		return domain.VerdictEnObservation
	default:
		return domain.VerdictAEviter
	}
}

// Mean is the unrounded arithmetic mean; ok is false for an empty slice.
func Mean(values []float64) (mean float64, ok bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// PopulationStdDev divides by n, not n-1.
func PopulationStdDev(values []float64) float64 {
	m, ok := Mean(values)
	if !ok {
		return 0
	}
	acc := 0.0
	for _, v := range values {
		acc += (v - m) * (v - m)
	}
	return math.Sqrt(acc / float64(len(values)))
}

func StabilityLabel(means []float64) string {
	if len(means) < 2 {
		return StabilityInsufficient
	}
	spread := PopulationStdDev(means)
	switch {
	case spread < 0.25:
		return StabilityVeryStable
	case spread < 0.5:
		return StabilityFairlyStable
	case spread < 1:
		return StabilityVariable
	default:
		return StabilityVeryVariable
	}
}

func QualityPerPrice(meanQuality, costPerShot float64) string {
	if costPerShot <= 0 {
		return QualityPriceUnknown
	}
	ratio := meanQuality / costPerShot
	switch {
	case ratio >= 0.2:
		return QualityPriceExcellent
	case ratio >= 0.15:
		return QualityPriceGood
	case ratio >= 0.1:
		return QualityPriceAverage
	default:
		return QualityPriceUnfavorable
	}
}
