package services

import (
	"github.com/google/uuid"

	"github.com/yungbote/barisense-backend/internal/analysis"
	"github.com/yungbote/barisense-backend/internal/data/repos"
	"github.com/yungbote/barisense-backend/internal/data/store"
	"github.com/yungbote/barisense-backend/internal/domain"
	"github.com/yungbote/barisense-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/barisense-backend/internal/pkg/errors"
	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

type ShotService interface {
	List(dbc dbctx.Context) ([]*domain.Shot, error)
	Get(dbc dbctx.Context, id uuid.UUID) (*domain.Shot, error)
	Create(dbc dbctx.Context, in domain.ShotInput) (*domain.Shot, error)
	Update(dbc dbctx.Context, id uuid.UUID, in domain.ShotInput) (*domain.Shot, error)
	// Delete removes the shot and its tastings. Unknown ids are a no-op.
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type shotService struct {
	gw          *store.Gateway
	log         *logger.Logger
	coffeeRepo  repos.CoffeeRepo
	waterRepo   repos.WaterRepo
	shotRepo    repos.ShotRepo
	tastingRepo repos.TastingRepo
}

func NewShotService(
	gw *store.Gateway,
	log *logger.Logger,
	coffeeRepo repos.CoffeeRepo,
	waterRepo repos.WaterRepo,
	shotRepo repos.ShotRepo,
	tastingRepo repos.TastingRepo,
) ShotService {
	return &shotService{
		gw:          gw,
		log:         log.With("service", "ShotService"),
		coffeeRepo:  coffeeRepo,
		waterRepo:   waterRepo,
		shotRepo:    shotRepo,
		tastingRepo: tastingRepo,
	}
}

func (s *shotService) List(dbc dbctx.Context) ([]*domain.Shot, error) {
	return s.shotRepo.List(dbc)
}

func (s *shotService) Get(dbc dbctx.Context, id uuid.UUID) (*domain.Shot, error) {
	shot, err := s.shotRepo.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if shot == nil {
		return nil, apperr.NotFound("shot", id)
	}
	return shot, nil
}

func (s *shotService) Create(dbc dbctx.Context, in domain.ShotInput) (*domain.Shot, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	row := &domain.Shot{}
	err := inTx(s.gw, dbc, true, func(inner dbctx.Context) error {
		if err := s.resolveRefs(inner, &in); err != nil {
			return err
		}
		in.Apply(row)
		row.BrewRatio = analysis.BrewRatio(row.BeverageWeightGrams, row.DoseInGrams)
		return s.shotRepo.Create(inner, row)
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *shotService) Update(dbc dbctx.Context, id uuid.UUID, in domain.ShotInput) (*domain.Shot, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out *domain.Shot
	err := inTx(s.gw, dbc, true, func(inner dbctx.Context) error {
		existing, err := s.shotRepo.GetByID(inner, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperr.NotFound("shot", id)
		}
		if err := s.resolveRefs(inner, &in); err != nil {
			return err
		}
		row := *existing
		in.Apply(&row)
		row.BrewRatio = analysis.BrewRatio(row.BeverageWeightGrams, row.DoseInGrams)
		if _, err := s.shotRepo.Update(inner, &row); err != nil {
			return err
		}
		out = &row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *shotService) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return inTx(s.gw, dbc, true, func(inner dbctx.Context) error {
		found, err := s.shotRepo.Delete(inner, id)
		if err != nil || !found {
			return err
		}
		n, err := s.tastingRepo.DeleteByShots(inner, []uuid.UUID{id})
		if err != nil {
			return err
		}
		s.log.Debug("shot deleted", "shot_id", id, "tastings", n)
		return nil
	})
}

// resolveRefs checks the coffee and an explicit water exist, and falls back to
// the coffee's default water when none is given.
func (s *shotService) resolveRefs(dbc dbctx.Context, in *domain.ShotInput) error {
	coffee, err := s.coffeeRepo.GetByID(dbc, in.CoffeeID)
	if err != nil {
		return err
	}
	if coffee == nil {
		return apperr.NotFound("coffee", in.CoffeeID)
	}
	if in.WaterID == nil || *in.WaterID == uuid.Nil {
		in.WaterID = coffee.DefaultWaterID
		return nil
	}
	w, err := s.waterRepo.GetByID(dbc, *in.WaterID)
	if err != nil {
		return err
	}
	if w == nil {
		return apperr.NotFound("water", *in.WaterID)
	}
	return nil
}
