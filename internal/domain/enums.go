package domain

type CoffeeFormat string

const (
	CoffeeFormatGrain CoffeeFormat = "grain"
	CoffeeFormatMoulu CoffeeFormat = "moulu"
)

func (f CoffeeFormat) Valid() bool {
	switch f {
	case CoffeeFormatGrain, CoffeeFormatMoulu:
		return true
	}
	return false
}

type WaterSource string

const (
	WaterSourceTap     WaterSource = "robinet"
	WaterSourceBottled WaterSource = "bouteille"
)

func (s WaterSource) Valid() bool {
	switch s {
	case WaterSourceTap, WaterSourceBottled:
		return true
	}
	return false
}

type BeverageType string

const (
	BeverageRistretto BeverageType = "ristretto"
	BeverageExpresso  BeverageType = "expresso"
	BeverageCafeLong  BeverageType = "cafe_long"
)

func (b BeverageType) Valid() bool {
	switch b {
	case BeverageRistretto, BeverageExpresso, BeverageCafeLong:
		return true
	}
	return false
}

// VerdictStatus is the stored form of a purchase decision.
type VerdictStatus string

const (
	VerdictRacheter      VerdictStatus = "racheter"
	VerdictAAffiner      VerdictStatus = "a_affiner"
	VerdictEnObservation VerdictStatus = "en_observation"
	VerdictAEviter       VerdictStatus = "a_eviter"
)

func (v VerdictStatus) Valid() bool {
	switch v {
	case VerdictRacheter, VerdictAAffiner, VerdictEnObservation, VerdictAEviter:
		return true
	}
	return false
}

// Label is the display form. Unknown statuses read as "en observation".
func (v VerdictStatus) Label() string {
	switch v {
	case VerdictRacheter:
		return "racheter"
	case VerdictAAffiner:
		return "à affiner"
	case VerdictAEviter:
		return "à éviter"
	default:
		return "en observation"
	}
}
