package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/barisense-backend/internal/analysis"
	"github.com/yungbote/barisense-backend/internal/data/repos"
	"github.com/yungbote/barisense-backend/internal/data/store"
	"github.com/yungbote/barisense-backend/internal/domain"
	"github.com/yungbote/barisense-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/barisense-backend/internal/pkg/errors"
	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

type CoffeeService interface {
	List(dbc dbctx.Context) ([]*domain.Coffee, error)
	Get(dbc dbctx.Context, id uuid.UUID) (*domain.Coffee, error)
	Create(dbc dbctx.Context, in domain.CoffeeInput) (*domain.Coffee, error)
	Update(dbc dbctx.Context, id uuid.UUID, in domain.CoffeeInput) (*domain.Coffee, error)
	// Delete removes the coffee, its shots, their tastings and its verdict.
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type coffeeService struct {
	gw          *store.Gateway
	log         *logger.Logger
	coffeeRepo  repos.CoffeeRepo
	waterRepo   repos.WaterRepo
	shotRepo    repos.ShotRepo
	tastingRepo repos.TastingRepo
	verdictRepo repos.VerdictRepo
}

func NewCoffeeService(
	gw *store.Gateway,
	log *logger.Logger,
	coffeeRepo repos.CoffeeRepo,
	waterRepo repos.WaterRepo,
	shotRepo repos.ShotRepo,
	tastingRepo repos.TastingRepo,
	verdictRepo repos.VerdictRepo,
) CoffeeService {
	return &coffeeService{
		gw:          gw,
		log:         log.With("service", "CoffeeService"),
		coffeeRepo:  coffeeRepo,
		waterRepo:   waterRepo,
		shotRepo:    shotRepo,
		tastingRepo: tastingRepo,
		verdictRepo: verdictRepo,
	}
}

func (s *coffeeService) List(dbc dbctx.Context) ([]*domain.Coffee, error) {
	return s.coffeeRepo.List(dbc)
}

func (s *coffeeService) Get(dbc dbctx.Context, id uuid.UUID) (*domain.Coffee, error) {
	c, err := s.coffeeRepo.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("coffee", id)
	}
	return c, nil
}

func (s *coffeeService) Create(dbc dbctx.Context, in domain.CoffeeInput) (*domain.Coffee, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	row := &domain.Coffee{}
	err := inTx(s.gw, dbc, true, func(inner dbctx.Context) error {
		if err := s.requireWater(inner, in.DefaultWaterID); err != nil {
			return err
		}
		in.Apply(row)
		row.CostPerShotEUR = analysis.CostPerShot(row.PriceEUR, row.WeightGrams, analysis.ReferenceDoseGrams)
		return s.coffeeRepo.Create(inner, row)
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("coffee created", "coffee_id", row.ID, "cost_per_shot_eur", row.CostPerShotEUR)
	return row, nil
}

func (s *coffeeService) Update(dbc dbctx.Context, id uuid.UUID, in domain.CoffeeInput) (*domain.Coffee, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out *domain.Coffee
	err := inTx(s.gw, dbc, true, func(inner dbctx.Context) error {
		existing, err := s.coffeeRepo.GetByID(inner, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperr.NotFound("coffee", id)
		}
		if err := s.requireWater(inner, in.DefaultWaterID); err != nil {
			return err
		}
		row := *existing
		in.Apply(&row)
		row.CostPerShotEUR = analysis.CostPerShot(row.PriceEUR, row.WeightGrams, analysis.ReferenceDoseGrams)
		if _, err := s.coffeeRepo.Update(inner, &row); err != nil {
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

func (s *coffeeService) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return inTx(s.gw, dbc, true, func(inner dbctx.Context) error {
		found, err := s.coffeeRepo.Delete(inner, id)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFound("coffee", id)
		}
		shotIDs, err := s.shotRepo.DeleteByCoffee(inner, id)
		if err != nil {
			return fmt.Errorf("delete shots: %w", err)
		}
		tastings, err := s.tastingRepo.DeleteByShots(inner, shotIDs)
		if err != nil {
			return fmt.Errorf("delete tastings: %w", err)
		}
		verdicts, err := s.verdictRepo.DeleteByCoffee(inner, id)
		if err != nil {
			return fmt.Errorf("delete verdict: %w", err)
		}
		s.log.Info("coffee deleted",
			"coffee_id", id,
			"shots", len(shotIDs),
			"tastings", tastings,
			"verdicts", verdicts,
		)
		return nil
	})
}

func (s *coffeeService) requireWater(dbc dbctx.Context, waterID *uuid.UUID) error {
	if waterID == nil || *waterID == uuid.Nil {
		return nil
	}
	w, err := s.waterRepo.GetByID(dbc, *waterID)
	if err != nil {
		return err
	}
	if w == nil {
		return apperr.NotFound("water", *waterID)
	}
	return nil
}
