package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/barisense-backend/internal/analysis"
	"github.com/yungbote/barisense-backend/internal/data/repos"
	"github.com/yungbote/barisense-backend/internal/data/store"
	"github.com/yungbote/barisense-backend/internal/domain"
	"github.com/yungbote/barisense-backend/internal/observability"
	"github.com/yungbote/barisense-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/barisense-backend/internal/pkg/errors"
	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

type TastingService interface {
	List(dbc dbctx.Context) ([]*domain.Tasting, error)
	Get(dbc dbctx.Context, id uuid.UUID) (*domain.Tasting, error)
	// Create scores the labels, stores the tasting and refreshes the owning
	// coffee's verdict in the same write.
	Create(dbc dbctx.Context, in domain.TastingInput) (*domain.Tasting, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type tastingService struct {
	gw          *store.Gateway
	log         *logger.Logger
	shotRepo    repos.ShotRepo
	tastingRepo repos.TastingRepo
	verdictRepo repos.VerdictRepo
	metrics     *observability.Metrics
}

// NewTastingService accepts a nil metrics.
func NewTastingService(
	gw *store.Gateway,
	log *logger.Logger,
	metrics *observability.Metrics,
	shotRepo repos.ShotRepo,
	tastingRepo repos.TastingRepo,
	verdictRepo repos.VerdictRepo,
) TastingService {
	return &tastingService{
		gw:          gw,
		log:         log.With("service", "TastingService"),
		shotRepo:    shotRepo,
		tastingRepo: tastingRepo,
		verdictRepo: verdictRepo,
		metrics:     metrics,
	}
}

func (s *tastingService) List(dbc dbctx.Context) ([]*domain.Tasting, error) {
	return s.tastingRepo.List(dbc)
}

func (s *tastingService) Get(dbc dbctx.Context, id uuid.UUID) (*domain.Tasting, error) {
	t, err := s.tastingRepo.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("tasting", id)
	}
	return t, nil
}

func (s *tastingService) Create(dbc dbctx.Context, in domain.TastingInput) (*domain.Tasting, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	row := &domain.Tasting{}
	var status domain.VerdictStatus
	err := inTx(s.gw, dbc, true, func(inner dbctx.Context) error {
		shot, err := s.shotRepo.GetByID(inner, in.ShotID)
		if err != nil {
			return err
		}
		if shot == nil {
			return apperr.NotFound("shot", in.ShotID)
		}
		scored, err := ScoreTasting(in)
		if err != nil {
			return err
		}
		*row = *scored
		if err := s.tastingRepo.Create(inner, row); err != nil {
			return err
		}

		v, _, err := upsertVerdict(inner, s.verdictRepo, nil, DerivedVerdict(shot.CoffeeID, row.SensoryMean))
		if err != nil {
			return fmt.Errorf("upsert verdict: %w", err)
		}
		status = v.Status
		s.log.Debug("tasting recorded",
			"tasting_id", row.ID,
			"coffee_id", shot.CoffeeID,
			"sensory_mean", row.SensoryMean,
			"verdict", v.Status,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncTastingRecorded(string(status))
	return row, nil
}

// Delete is idempotent and leaves the coffee's verdict as it is.
func (s *tastingService) Delete(dbc dbctx.Context, id uuid.UUID) error {
	_, err := s.tastingRepo.Delete(dbc, id)
	return err
}

// ScoreTasting maps the input labels to scores and computes the sensory mean.
// ID and CreatedAt are left for the repo to stamp.
func ScoreTasting(in domain.TastingInput) (*domain.Tasting, error) {
	scores, err := scoreLabels(in)
	if err != nil {
		return nil, err
	}
	row := &domain.Tasting{
		ShotID:          in.ShotID,
		AcidityLabel:    strings.TrimSpace(in.AcidityLabel),
		BitternessLabel: strings.TrimSpace(in.BitternessLabel),
		BodyLabel:       strings.TrimSpace(in.BodyLabel),
		AromaLabel:      strings.TrimSpace(in.AromaLabel),
		BalanceLabel:    strings.TrimSpace(in.BalanceLabel),
		FinishLabel:     strings.TrimSpace(in.FinishLabel),
		OverallLabel:    strings.TrimSpace(in.OverallLabel),
		Comments:        in.Comments,
	}
	row.SetScores(scores)
	row.SensoryMean = analysis.SensoryMean(row.Scores())
	return row, nil
}

// DerivedVerdict is the verdict a tasting with the given mean implies for its coffee.
func DerivedVerdict(coffeeID uuid.UUID, mean float64) domain.VerdictInput {
	rationale := fmt.Sprintf("Moyenne sensorielle %s sur le dernier shot", analysis.MeanToLabel(mean))
	return domain.VerdictInput{
		CoffeeID:  coffeeID,
		Status:    analysis.VerdictFromMean(mean),
		Rationale: &rationale,
	}
}

func scoreLabels(in domain.TastingInput) ([7]int, error) {
	var scores [7]int
	for i, l := range in.Labels() {
		score, err := analysis.LabelToScore(l.Label)
		if err != nil {
			var ule *apperr.UnknownLabelError
			if errors.As(err, &ule) {
				ule.Field = l.Field
			}
			return scores, err
		}
		scores[i] = score
	}
	return scores, nil
}
