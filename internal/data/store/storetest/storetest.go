// Package storetest holds fixtures shared by store, service and handler tests.
package storetest

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/barisense-backend/internal/data/store"
	"github.com/yungbote/barisense-backend/internal/domain"
	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// Gateway returns a gateway over a fresh in-memory store seeded with doc.
func Gateway(tb testing.TB, doc *store.Document) *store.Gateway {
	tb.Helper()
	return store.NewGateway(store.NewMemoryStore(doc), Logger(tb))
}

// Builder appends records to a document with increasing created_at values, so
// the last record added is the newest.
type Builder struct {
	Doc  *store.Document
	base time.Time
	n    int
}

func NewBuilder() *Builder {
	return &Builder{
		Doc:  store.NewDocument(),
		base: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (b *Builder) next() time.Time {
	b.n++
	return b.base.Add(time.Duration(b.n) * time.Minute)
}

func (b *Builder) Coffee(name string, priceEUR float64, weightGrams int, costPerShot float64) *domain.Coffee {
	c := &domain.Coffee{
		ID:             uuid.New(),
		Name:           name,
		Roaster:        "Roaster " + name,
		Format:         domain.CoffeeFormatGrain,
		WeightGrams:    weightGrams,
		PriceEUR:       priceEUR,
		PurchasedAt:    "2024-01-01",
		CostPerShotEUR: costPerShot,
		CreatedAt:      b.next(),
	}
	b.Doc.Coffees = append(b.Doc.Coffees, c)
	return c
}

func (b *Builder) Water(label string, source domain.WaterSource) *domain.Water {
	w := &domain.Water{
		ID:        uuid.New(),
		Label:     label,
		Source:    source,
		CreatedAt: b.next(),
	}
	b.Doc.Waters = append(b.Doc.Waters, w)
	return w
}

func (b *Builder) Shot(coffeeID uuid.UUID, beverage domain.BeverageType) *domain.Shot {
	s := &domain.Shot{
		ID:                    uuid.New(),
		CoffeeID:              coffeeID,
		BeverageType:          beverage,
		GrindSetting:          "12",
		DoseInGrams:           18,
		BeverageWeightGrams:   36,
		ExtractionTimeSeconds: 28,
		BrewRatio:             2,
		CreatedAt:             b.next(),
	}
	b.Doc.Shots = append(b.Doc.Shots, s)
	return s
}

// Tasting records a tasting whose seven scores all equal score.
func (b *Builder) Tasting(shotID uuid.UUID, score int, mean float64) *domain.Tasting {
	label := [...]string{"", "insipide", "doux", "équilibré", "expressif", "intense"}[score]
	t := &domain.Tasting{
		ID:              uuid.New(),
		ShotID:          shotID,
		AcidityLabel:    label,
		BitternessLabel: label,
		BodyLabel:       label,
		AromaLabel:      label,
		BalanceLabel:    label,
		FinishLabel:     label,
		OverallLabel:    label,
		SensoryMean:     mean,
		CreatedAt:       b.next(),
	}
	t.SetScores([7]int{score, score, score, score, score, score, score})
	b.Doc.Tastings = append(b.Doc.Tastings, t)
	return t
}

func (b *Builder) Verdict(coffeeID uuid.UUID, status domain.VerdictStatus) *domain.Verdict {
	at := b.next()
	v := &domain.Verdict{
		ID:        uuid.New(),
		CoffeeID:  coffeeID,
		Status:    status,
		CreatedAt: at,
		UpdatedAt: at,
	}
	b.Doc.Verdicts = append(b.Doc.Verdicts, v)
	return v
}
