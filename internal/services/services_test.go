package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/barisense-backend/internal/data/repos"
	"github.com/yungbote/barisense-backend/internal/data/store"
	"github.com/yungbote/barisense-backend/internal/data/store/storetest"
	"github.com/yungbote/barisense-backend/internal/domain"
	"github.com/yungbote/barisense-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/barisense-backend/internal/pkg/errors"
	"github.com/yungbote/barisense-backend/internal/pkg/pointers"
)

type fixture struct {
	gw        *store.Gateway
	coffees   CoffeeService
	waters    WaterService
	shots     ShotService
	tastings  TastingService
	verdicts  VerdictService
	analytics AnalyticsService
}

func newFixture(t *testing.T, doc *store.Document) *fixture {
	t.Helper()
	log := storetest.Logger(t)
	gw := storetest.Gateway(t, doc)
	coffeeRepo := repos.NewCoffeeRepo(gw, log)
	waterRepo := repos.NewWaterRepo(gw, log)
	shotRepo := repos.NewShotRepo(gw, log)
	tastingRepo := repos.NewTastingRepo(gw, log)
	verdictRepo := repos.NewVerdictRepo(gw, log)
	return &fixture{
		gw:        gw,
		coffees:   NewCoffeeService(gw, log, coffeeRepo, waterRepo, shotRepo, tastingRepo, verdictRepo),
		waters:    NewWaterService(gw, log, waterRepo),
		shots:     NewShotService(gw, log, coffeeRepo, waterRepo, shotRepo, tastingRepo),
		tastings:  NewTastingService(gw, log, nil, shotRepo, tastingRepo, verdictRepo),
		verdicts:  NewVerdictService(gw, log, coffeeRepo, verdictRepo),
		analytics: NewAnalyticsService(gw, log, coffeeRepo, shotRepo, tastingRepo, verdictRepo),
	}
}

func (f *fixture) doc(t *testing.T) *store.Document {
	t.Helper()
	var out *store.Document
	require.NoError(t, f.gw.View(context.Background(), func(tx *store.Document) error {
		out = tx
		return nil
	}))
	return out
}

func bg() dbctx.Context { return dbctx.Context{Ctx: context.Background()} }

func tastingInput(shotID uuid.UUID, label string) domain.TastingInput {
	return domain.TastingInput{
		ShotID:          shotID,
		AcidityLabel:    label,
		BitternessLabel: label,
		BodyLabel:       label,
		AromaLabel:      label,
		BalanceLabel:    label,
		FinishLabel:     label,
		OverallLabel:    label,
	}
}

func TestCoffeeCreateDerivesCostPerShot(t *testing.T) {
	f := newFixture(t, nil)
	c, err := f.coffees.Create(bg(), domain.CoffeeInput{
		Name:        "Ethiopie Guji",
		Roaster:     "Belleville",
		Format:      domain.CoffeeFormatGrain,
		WeightGrams: 250,
		PriceEUR:    12.5,
		PurchasedAt: "2024-03-01",
	})
	require.NoError(t, err)
	require.Equal(t, 0.9, c.CostPerShotEUR)

	updated, err := f.coffees.Update(bg(), c.ID, domain.CoffeeInput{
		Name:        "Ethiopie Guji",
		Roaster:     "Belleville",
		Format:      domain.CoffeeFormatGrain,
		WeightGrams: 1000,
		PriceEUR:    30,
		PurchasedAt: "2024-03-01",
	})
	require.NoError(t, err)
	require.Equal(t, 0.54, updated.CostPerShotEUR)
	require.Equal(t, c.CreatedAt, updated.CreatedAt)
}

func TestCoffeeCreateReportsMissingFields(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.coffees.Create(bg(), domain.CoffeeInput{Name: "x"})
	require.ErrorIs(t, err, apperr.ErrMissingField)
	require.Equal(t, "Champs manquants : roaster, format, weight_grams, price_eur, purchased_at", err.Error())
	require.Empty(t, f.doc(t).Coffees)
}

func TestCoffeeDeleteCascades(t *testing.T) {
	b := storetest.NewBuilder()
	c := b.Coffee("A", 10, 250, 0.72)
	other := b.Coffee("B", 10, 250, 0.72)
	s := b.Shot(c.ID, domain.BeverageExpresso)
	otherShot := b.Shot(other.ID, domain.BeverageExpresso)
	b.Tasting(s.ID, 4, 4)
	b.Tasting(otherShot.ID, 4, 4)
	b.Verdict(c.ID, domain.VerdictAAffiner)
	b.Verdict(other.ID, domain.VerdictAAffiner)
	f := newFixture(t, b.Doc)

	require.NoError(t, f.coffees.Delete(bg(), c.ID))

	doc := f.doc(t)
	require.Len(t, doc.Coffees, 1)
	require.Len(t, doc.Shots, 1)
	require.Equal(t, otherShot.ID, doc.Shots[0].ID)
	require.Len(t, doc.Tastings, 1)
	require.Equal(t, otherShot.ID, doc.Tastings[0].ShotID)
	require.Len(t, doc.Verdicts, 1)
	require.Equal(t, other.ID, doc.Verdicts[0].CoffeeID)

	err := f.coffees.Delete(bg(), c.ID)
	var nf *apperr.NotFoundError
	require.True(t, errors.As(err, &nf))
	require.Equal(t, "coffee_not_found", nf.Code())
}

func TestShotInheritsDefaultWaterAndChecksRefs(t *testing.T) {
	b := storetest.NewBuilder()
	w := b.Water("Volvic", domain.WaterSourceBottled)
	c := b.Coffee("A", 10, 250, 0.72)
	c.DefaultWaterID = &w.ID
	f := newFixture(t, b.Doc)

	in := domain.ShotInput{
		CoffeeID:              c.ID,
		BeverageType:          domain.BeverageExpresso,
		GrindSetting:          "2.5",
		DoseInGrams:           18,
		BeverageWeightGrams:   40,
		ExtractionTimeSeconds: 27,
	}
	shot, err := f.shots.Create(bg(), in)
	require.NoError(t, err)
	require.NotNil(t, shot.WaterID)
	require.Equal(t, w.ID, *shot.WaterID)
	require.Equal(t, 2.22, shot.BrewRatio)

	missingWater := uuid.New()
	in.WaterID = &missingWater
	_, err = f.shots.Create(bg(), in)
	var nf *apperr.NotFoundError
	require.True(t, errors.As(err, &nf))
	require.Equal(t, "water_not_found", nf.Code())

	in.WaterID = nil
	in.CoffeeID = uuid.New()
	_, err = f.shots.Create(bg(), in)
	require.True(t, errors.As(err, &nf))
	require.Equal(t, "coffee_not_found", nf.Code())

	require.Len(t, f.doc(t).Shots, 1)
}

func TestShotDeleteCascadesTastings(t *testing.T) {
	b := storetest.NewBuilder()
	c := b.Coffee("A", 10, 250, 0.72)
	s := b.Shot(c.ID, domain.BeverageExpresso)
	keep := b.Shot(c.ID, domain.BeverageRistretto)
	b.Tasting(s.ID, 3, 3)
	b.Tasting(keep.ID, 3, 3)
	f := newFixture(t, b.Doc)

	require.NoError(t, f.shots.Delete(bg(), s.ID))
	doc := f.doc(t)
	require.Len(t, doc.Shots, 1)
	require.Len(t, doc.Tastings, 1)
	require.Equal(t, keep.ID, doc.Tastings[0].ShotID)

	require.NoError(t, f.shots.Delete(bg(), uuid.New()))
}

func TestTastingCreateUpsertsVerdict(t *testing.T) {
	b := storetest.NewBuilder()
	c := b.Coffee("A", 10, 250, 0.72)
	s := b.Shot(c.ID, domain.BeverageExpresso)
	f := newFixture(t, b.Doc)

	tasting, err := f.tastings.Create(bg(), tastingInput(s.ID, "Expressif"))
	require.NoError(t, err)
	require.Equal(t, 4.0, tasting.SensoryMean)
	require.Equal(t, []int{4, 4, 4, 4, 4, 4, 4}, tasting.Scores())

	doc := f.doc(t)
	require.Len(t, doc.Verdicts, 1)
	v := doc.Verdicts[0]
	require.Equal(t, c.ID, v.CoffeeID)
	require.Equal(t, domain.VerdictAAffiner, v.Status)
	require.NotNil(t, v.Rationale)
	require.Equal(t, "Moyenne sensorielle expressif sur le dernier shot", *v.Rationale)

	_, err = f.tastings.Create(bg(), tastingInput(s.ID, "intense"))
	require.NoError(t, err)
	doc = f.doc(t)
	require.Len(t, doc.Verdicts, 1, "one verdict per coffee")
	require.Equal(t, v.ID, doc.Verdicts[0].ID)
	require.Equal(t, domain.VerdictRacheter, doc.Verdicts[0].Status)
}

func TestTastingUnknownLabelWritesNothing(t *testing.T) {
	b := storetest.NewBuilder()
	c := b.Coffee("A", 10, 250, 0.72)
	s := b.Shot(c.ID, domain.BeverageExpresso)
	f := newFixture(t, b.Doc)

	in := tastingInput(s.ID, "doux")
	in.FinishLabel = "fade"
	_, err := f.tastings.Create(bg(), in)
	require.ErrorIs(t, err, apperr.ErrUnknownLabel)
	var ule *apperr.UnknownLabelError
	require.True(t, errors.As(err, &ule))
	require.Equal(t, "finish_label", ule.Field)

	doc := f.doc(t)
	require.Empty(t, doc.Tastings)
	require.Empty(t, doc.Verdicts)

	_, err = f.tastings.Create(bg(), tastingInput(uuid.New(), "doux"))
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestVerdictUpsertPrecedence(t *testing.T) {
	b := storetest.NewBuilder()
	c1 := b.Coffee("A", 10, 250, 0.72)
	c2 := b.Coffee("B", 10, 250, 0.72)
	v1 := b.Verdict(c1.ID, domain.VerdictEnObservation)
	f := newFixture(t, b.Doc)

	// same coffee, no id: updates the stored one
	got, created, err := f.verdicts.Upsert(bg(), nil, domain.VerdictInput{CoffeeID: c1.ID, Status: domain.VerdictRacheter})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, v1.ID, got.ID)
	require.Equal(t, domain.VerdictRacheter, got.Status)

	// new coffee: creates
	got2, created, err := f.verdicts.Upsert(bg(), nil, domain.VerdictInput{CoffeeID: c2.ID, Status: domain.VerdictAEviter})
	require.NoError(t, err)
	require.True(t, created)
	require.NotEqual(t, v1.ID, got2.ID)

	// explicit id wins over coffee match
	got3, created, err := f.verdicts.Upsert(bg(), &v1.ID, domain.VerdictInput{CoffeeID: c2.ID, Status: domain.VerdictAAffiner})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, v1.ID, got3.ID)

	doc := f.doc(t)
	require.Len(t, doc.Verdicts, 1)
	require.Equal(t, c2.ID, doc.Verdicts[0].CoffeeID)

	_, _, err = f.verdicts.Upsert(bg(), nil, domain.VerdictInput{CoffeeID: uuid.New(), Status: domain.VerdictAEviter})
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, _, err = f.verdicts.Upsert(bg(), nil, domain.VerdictInput{CoffeeID: c1.ID, Status: "maybe"})
	require.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestVerdictUpsertKeepsRationaleWhenOmitted(t *testing.T) {
	b := storetest.NewBuilder()
	c := b.Coffee("A", 10, 250, 0.72)
	f := newFixture(t, b.Doc)

	v, created, err := f.verdicts.Upsert(bg(), nil, domain.VerdictInput{
		CoffeeID:  c.ID,
		Status:    domain.VerdictRacheter,
		Rationale: pointers.String("Très bon en espresso"),
	})
	require.NoError(t, err)
	require.True(t, created)

	got, created, err := f.verdicts.Upsert(bg(), &v.ID, domain.VerdictInput{CoffeeID: c.ID, Status: domain.VerdictAAffiner})
	require.NoError(t, err)
	require.False(t, created)
	require.NotNil(t, got.Rationale)
	require.Equal(t, "Très bon en espresso", *got.Rationale)
	require.Equal(t, domain.VerdictAAffiner, got.Status)
}
