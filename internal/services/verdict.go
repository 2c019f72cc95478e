package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/barisense-backend/internal/data/repos"
	"github.com/yungbote/barisense-backend/internal/data/store"
	"github.com/yungbote/barisense-backend/internal/domain"
	"github.com/yungbote/barisense-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/barisense-backend/internal/pkg/errors"
	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

type VerdictService interface {
	List(dbc dbctx.Context) ([]*domain.Verdict, error)
	Get(dbc dbctx.Context, id uuid.UUID) (*domain.Verdict, error)
	// Upsert updates the verdict with id when it exists, else the verdict of
	// the same coffee, else creates one. created reports the last case.
	Upsert(dbc dbctx.Context, id *uuid.UUID, in domain.VerdictInput) (v *domain.Verdict, created bool, err error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type verdictService struct {
	gw          *store.Gateway
	log         *logger.Logger
	coffeeRepo  repos.CoffeeRepo
	verdictRepo repos.VerdictRepo
}

func NewVerdictService(gw *store.Gateway, log *logger.Logger, coffeeRepo repos.CoffeeRepo, verdictRepo repos.VerdictRepo) VerdictService {
	return &verdictService{
		gw:          gw,
		log:         log.With("service", "VerdictService"),
		coffeeRepo:  coffeeRepo,
		verdictRepo: verdictRepo,
	}
}

func (s *verdictService) List(dbc dbctx.Context) ([]*domain.Verdict, error) {
	return s.verdictRepo.List(dbc)
}

func (s *verdictService) Get(dbc dbctx.Context, id uuid.UUID) (*domain.Verdict, error) {
	v, err := s.verdictRepo.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperr.NotFound("verdict", id)
	}
	return v, nil
}

func (s *verdictService) Upsert(dbc dbctx.Context, id *uuid.UUID, in domain.VerdictInput) (*domain.Verdict, bool, error) {
	if err := in.Validate(); err != nil {
		return nil, false, err
	}
	var (
		out     *domain.Verdict
		created bool
	)
	err := inTx(s.gw, dbc, true, func(inner dbctx.Context) error {
		coffee, err := s.coffeeRepo.GetByID(inner, in.CoffeeID)
		if err != nil {
			return err
		}
		if coffee == nil {
			return apperr.NotFound("coffee", in.CoffeeID)
		}
		out, created, err = upsertVerdict(inner, s.verdictRepo, id, in)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return out, created, nil
}

// Delete is idempotent.
func (s *verdictService) Delete(dbc dbctx.Context, id uuid.UUID) error {
	_, err := s.verdictRepo.Delete(dbc, id)
	return err
}

// upsertVerdict applies the id, then coffee, then create precedence. A nil
// rationale keeps the stored one. Any other verdict left on the same coffee is
// removed so a coffee never carries two.
func upsertVerdict(dbc dbctx.Context, verdictRepo repos.VerdictRepo, id *uuid.UUID, in domain.VerdictInput) (*domain.Verdict, bool, error) {
	now := time.Now().UTC()

	var existing *domain.Verdict
	var err error
	if id != nil && *id != uuid.Nil {
		if existing, err = verdictRepo.GetByID(dbc, *id); err != nil {
			return nil, false, err
		}
	}
	if existing == nil {
		if existing, err = verdictRepo.GetByCoffeeID(dbc, in.CoffeeID); err != nil {
			return nil, false, err
		}
	}

	if existing == nil {
		row := &domain.Verdict{
			CoffeeID:  in.CoffeeID,
			Status:    in.Status,
			Rationale: in.Rationale,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := verdictRepo.Create(dbc, row); err != nil {
			return nil, false, err
		}
		return row, true, nil
	}

	row := *existing
	row.CoffeeID = in.CoffeeID
	row.Status = in.Status
	if in.Rationale != nil {
		row.Rationale = in.Rationale
	}
	row.UpdatedAt = now
	if _, err := verdictRepo.Update(dbc, &row); err != nil {
		return nil, false, err
	}
	if existing.CoffeeID != in.CoffeeID {
		if err := dropOtherVerdicts(dbc, verdictRepo, row.ID, in.CoffeeID); err != nil {
			return nil, false, err
		}
	}
	return &row, false, nil
}

func dropOtherVerdicts(dbc dbctx.Context, verdictRepo repos.VerdictRepo, keep, coffeeID uuid.UUID) error {
	all, err := verdictRepo.List(dbc)
	if err != nil {
		return err
	}
	for _, v := range all {
		if v.CoffeeID == coffeeID && v.ID != keep {
			if _, err := verdictRepo.Delete(dbc, v.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
