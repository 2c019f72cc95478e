package services

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/barisense-backend/internal/analysis"
	"github.com/yungbote/barisense-backend/internal/data/repos"
	"github.com/yungbote/barisense-backend/internal/data/store"
	"github.com/yungbote/barisense-backend/internal/domain"
	"github.com/yungbote/barisense-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/barisense-backend/internal/pkg/errors"
	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

const RetestReason = "Une seule dégustation ou aucune"

type RankingItem struct {
	Position       int       `json:"position"`
	CoffeeID       uuid.UUID `json:"coffee_id"`
	Name           string    `json:"name"`
	Roaster        string    `json:"roaster"`
	ScoreLabel     string    `json:"score_label"`
	VerdictLabel   string    `json:"verdict_label"`
	BeverageFilter *string   `json:"beverage_filter"`
}

type QualityPriceItem struct {
	CoffeeID       uuid.UUID `json:"coffee_id"`
	Name           string    `json:"name"`
	Roaster        string    `json:"roaster"`
	CostPerShotEUR float64   `json:"cost_per_shot_eur"`
	QualityLabel   string    `json:"quality_label"`
	VerdictLabel   string    `json:"verdict_label"`
	RatioLabel     string    `json:"ratio_label"`
}

type StabilityItem struct {
	CoffeeID   uuid.UUID `json:"coffee_id"`
	Name       string    `json:"name"`
	Roaster    string    `json:"roaster"`
	Stability  string    `json:"stability"`
	SampleSize int       `json:"sample_size"`
}

type RetestItem struct {
	CoffeeID uuid.UUID `json:"coffee_id"`
	Name     string    `json:"name"`
	Roaster  string    `json:"roaster"`
	Reason   string    `json:"reason"`
}

// AnalyticsService recomputes every view from the stored records on each call.
type AnalyticsService interface {
	// Ranking accepts "", "global", "ristretto" or "expresso".
	Ranking(dbc dbctx.Context, beverage string) ([]RankingItem, error)
	QualityPrice(dbc dbctx.Context) ([]QualityPriceItem, error)
	Stability(dbc dbctx.Context) ([]StabilityItem, error)
	Retest(dbc dbctx.Context) ([]RetestItem, error)
}

type analyticsService struct {
	gw          *store.Gateway
	log         *logger.Logger
	coffeeRepo  repos.CoffeeRepo
	shotRepo    repos.ShotRepo
	tastingRepo repos.TastingRepo
	verdictRepo repos.VerdictRepo
}

func NewAnalyticsService(
	gw *store.Gateway,
	log *logger.Logger,
	coffeeRepo repos.CoffeeRepo,
	shotRepo repos.ShotRepo,
	tastingRepo repos.TastingRepo,
	verdictRepo repos.VerdictRepo,
) AnalyticsService {
	return &analyticsService{
		gw:          gw,
		log:         log.With("service", "AnalyticsService"),
		coffeeRepo:  coffeeRepo,
		shotRepo:    shotRepo,
		tastingRepo: tastingRepo,
		verdictRepo: verdictRepo,
	}
}

// ParseRankingFilter maps a ranking path segment to a beverage filter. A nil
// filter means the global ranking.
func ParseRankingFilter(raw string) (*domain.BeverageType, error) {
	switch strings.TrimSpace(raw) {
	case "", "global":
		return nil, nil
	case string(domain.BeverageRistretto):
		b := domain.BeverageRistretto
		return &b, nil
	case string(domain.BeverageExpresso):
		b := domain.BeverageExpresso
		return &b, nil
	}
	return nil, &apperr.NotFoundError{Entity: "ranking"}
}

// coffeeSample holds one coffee with the sensory means of its tastings in
// stored order.
type coffeeSample struct {
	coffee     *domain.Coffee
	verdict    *domain.Verdict
	means      []float64
	byBeverage map[domain.BeverageType][]float64
}

func (c *coffeeSample) meansFor(filter *domain.BeverageType) []float64 {
	if filter == nil {
		return c.means
	}
	return c.byBeverage[*filter]
}

// verdictLabel prefers the stored verdict, then the verdict the unfiltered mean implies.
func (c *coffeeSample) verdictLabel() string {
	if c.verdict != nil {
		return c.verdict.Status.Label()
	}
	if mean, ok := analysis.Mean(c.means); ok {
		return analysis.VerdictFromMean(mean).Label()
	}
	return domain.VerdictEnObservation.Label()
}

// samples returns one entry per coffee, newest coffee first.
func (s *analyticsService) samples(dbc dbctx.Context) ([]*coffeeSample, error) {
	var out []*coffeeSample
	err := inTx(s.gw, dbc, false, func(inner dbctx.Context) error {
		coffees, err := s.coffeeRepo.List(inner)
		if err != nil {
			return err
		}
		shots, err := s.shotRepo.List(inner)
		if err != nil {
			return err
		}
		verdicts, err := s.verdictRepo.List(inner)
		if err != nil {
			return err
		}

		byCoffee := make(map[uuid.UUID]*coffeeSample, len(coffees))
		out = make([]*coffeeSample, 0, len(coffees))
		for _, c := range coffees {
			cs := &coffeeSample{coffee: c, byBeverage: map[domain.BeverageType][]float64{}}
			byCoffee[c.ID] = cs
			out = append(out, cs)
		}
		for _, v := range verdicts {
			if cs, ok := byCoffee[v.CoffeeID]; ok && cs.verdict == nil {
				cs.verdict = v
			}
		}
		shotByID := make(map[uuid.UUID]*domain.Shot, len(shots))
		for _, sh := range shots {
			shotByID[sh.ID] = sh
		}
		// stored order, not the newest-first listing
		for _, t := range inner.Tx.Tastings {
			sh, ok := shotByID[t.ShotID]
			if !ok {
				continue
			}
			cs, ok := byCoffee[sh.CoffeeID]
			if !ok {
				continue
			}
			cs.means = append(cs.means, t.SensoryMean)
			cs.byBeverage[sh.BeverageType] = append(cs.byBeverage[sh.BeverageType], t.SensoryMean)
		}
		return nil
	})
	return out, err
}

func (s *analyticsService) Ranking(dbc dbctx.Context, beverage string) ([]RankingItem, error) {
	filter, err := ParseRankingFilter(beverage)
	if err != nil {
		return nil, err
	}
	samples, err := s.samples(dbc)
	if err != nil {
		return nil, err
	}

	entries := make([]analysis.RankEntry[*coffeeSample], 0, len(samples))
	for _, cs := range samples {
		mean, ok := analysis.Mean(cs.meansFor(filter))
		if !ok {
			continue
		}
		entries = append(entries, analysis.RankEntry[*coffeeSample]{ID: cs.coffee.ID, Item: cs, Score: mean})
	}

	var filterLabel *string
	if filter != nil {
		l := string(*filter)
		filterLabel = &l
	}
	out := make([]RankingItem, 0, len(entries))
	for _, r := range analysis.Rank(entries) {
		out = append(out, RankingItem{
			Position:       r.Position,
			CoffeeID:       r.ID,
			Name:           r.Item.coffee.Name,
			Roaster:        r.Item.coffee.Roaster,
			ScoreLabel:     analysis.MeanToLabel(r.Score).String(),
			VerdictLabel:   r.Item.verdictLabel(),
			BeverageFilter: filterLabel,
		})
	}
	return out, nil
}

func (s *analyticsService) QualityPrice(dbc dbctx.Context) ([]QualityPriceItem, error) {
	samples, err := s.samples(dbc)
	if err != nil {
		return nil, err
	}
	out := make([]QualityPriceItem, 0, len(samples))
	for _, cs := range samples {
		mean, ok := analysis.Mean(cs.means)
		if !ok {
			continue
		}
		out = append(out, QualityPriceItem{
			CoffeeID:       cs.coffee.ID,
			Name:           cs.coffee.Name,
			Roaster:        cs.coffee.Roaster,
			CostPerShotEUR: cs.coffee.CostPerShotEUR,
			QualityLabel:   analysis.MeanToLabel(mean).String(),
			VerdictLabel:   cs.verdictLabel(),
			RatioLabel:     analysis.QualityPerPrice(mean, cs.coffee.CostPerShotEUR),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return analysis.QualityPricePriority(out[i].RatioLabel) > analysis.QualityPricePriority(out[j].RatioLabel)
	})
	return out, nil
}

func (s *analyticsService) Stability(dbc dbctx.Context) ([]StabilityItem, error) {
	samples, err := s.samples(dbc)
	if err != nil {
		return nil, err
	}
	out := make([]StabilityItem, 0, len(samples))
	for _, cs := range samples {
		if len(cs.means) == 0 {
			continue
		}
		out = append(out, StabilityItem{
			CoffeeID:   cs.coffee.ID,
			Name:       cs.coffee.Name,
			Roaster:    cs.coffee.Roaster,
			Stability:  analysis.StabilityLabel(cs.means),
			SampleSize: len(cs.means),
		})
	}
	return out, nil
}

func (s *analyticsService) Retest(dbc dbctx.Context) ([]RetestItem, error) {
	samples, err := s.samples(dbc)
	if err != nil {
		return nil, err
	}
	counts := make([]analysis.ObservationCount, 0, len(samples))
	byID := make(map[uuid.UUID]*coffeeSample, len(samples))
	for _, cs := range samples {
		counts = append(counts, analysis.ObservationCount{ID: cs.coffee.ID, Count: len(cs.means)})
		byID[cs.coffee.ID] = cs
	}
	ids := analysis.RetestCandidates(counts)
	out := make([]RetestItem, 0, len(ids))
	for _, id := range ids {
		c := byID[id].coffee
		out = append(out, RetestItem{
			CoffeeID: c.ID,
			Name:     c.Name,
			Roaster:  c.Roaster,
			Reason:   RetestReason,
		})
	}
	return out, nil
}
