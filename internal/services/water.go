package services

import (
	"github.com/google/uuid"

	"github.com/yungbote/barisense-backend/internal/data/repos"
	"github.com/yungbote/barisense-backend/internal/data/store"
	"github.com/yungbote/barisense-backend/internal/domain"
	"github.com/yungbote/barisense-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/barisense-backend/internal/pkg/errors"
	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

type WaterService interface {
	List(dbc dbctx.Context) ([]*domain.Water, error)
	Get(dbc dbctx.Context, id uuid.UUID) (*domain.Water, error)
	Create(dbc dbctx.Context, in domain.WaterInput) (*domain.Water, error)
	Update(dbc dbctx.Context, id uuid.UUID, in domain.WaterInput) (*domain.Water, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type waterService struct {
	gw        *store.Gateway
	log       *logger.Logger
	waterRepo repos.WaterRepo
}

func NewWaterService(gw *store.Gateway, log *logger.Logger, waterRepo repos.WaterRepo) WaterService {
	return &waterService{gw: gw, log: log.With("service", "WaterService"), waterRepo: waterRepo}
}

func (s *waterService) List(dbc dbctx.Context) ([]*domain.Water, error) {
	return s.waterRepo.List(dbc)
}

func (s *waterService) Get(dbc dbctx.Context, id uuid.UUID) (*domain.Water, error) {
	w, err := s.waterRepo.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, apperr.NotFound("water", id)
	}
	return w, nil
}

func (s *waterService) Create(dbc dbctx.Context, in domain.WaterInput) (*domain.Water, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	row := &domain.Water{}
	in.Apply(row)
	if err := s.waterRepo.Create(dbc, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *waterService) Update(dbc dbctx.Context, id uuid.UUID, in domain.WaterInput) (*domain.Water, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out *domain.Water
	err := inTx(s.gw, dbc, true, func(inner dbctx.Context) error {
		existing, err := s.waterRepo.GetByID(inner, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperr.NotFound("water", id)
		}
		row := *existing
		in.Apply(&row)
		if _, err := s.waterRepo.Update(inner, &row); err != nil {
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

// Delete is idempotent. Shots keep their water_id.
func (s *waterService) Delete(dbc dbctx.Context, id uuid.UUID) error {
	_, err := s.waterRepo.Delete(dbc, id)
	return err
}
