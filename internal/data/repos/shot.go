package repos

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/barisense-backend/internal/data/store"
	"github.com/yungbote/barisense-backend/internal/domain"
	"github.com/yungbote/barisense-backend/internal/pkg/dbctx"
	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

type ShotRepo interface {
	List(dbc dbctx.Context) ([]*domain.Shot, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Shot, error)
	Create(dbc dbctx.Context, row *domain.Shot) error
	Update(dbc dbctx.Context, row *domain.Shot) (bool, error)
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
	// DeleteByCoffee removes every shot of coffeeID and returns their ids.
	DeleteByCoffee(dbc dbctx.Context, coffeeID uuid.UUID) ([]uuid.UUID, error)
}

type shotRepo struct {
	gw  *store.Gateway
	log *logger.Logger
}

func NewShotRepo(gw *store.Gateway, baseLog *logger.Logger) ShotRepo {
	return &shotRepo{gw: gw, log: baseLog.With("repo", "ShotRepo")}
}

func shotID(s *domain.Shot) uuid.UUID        { return s.ID }
func shotCreatedAt(s *domain.Shot) time.Time { return s.CreatedAt }

func (r *shotRepo) List(dbc dbctx.Context) ([]*domain.Shot, error) {
	var out []*domain.Shot
	err := withDoc(r.gw, dbc, false, func(tx *store.Document) error {
		out = newestFirst(tx.Shots, shotCreatedAt)
		return nil
	})
	return out, err
}

func (r *shotRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Shot, error) {
	var out *domain.Shot
	err := withDoc(r.gw, dbc, false, func(tx *store.Document) error {
		if i := indexOf(tx.Shots, id, shotID); i >= 0 {
			out = tx.Shots[i]
		}
		return nil
	})
	return out, err
}

func (r *shotRepo) Create(dbc dbctx.Context, row *domain.Shot) error {
	return withDoc(r.gw, dbc, true, func(tx *store.Document) error {
		stamp(&row.ID, &row.CreatedAt)
		tx.Shots = append(tx.Shots, row)
		return nil
	})
}

func (r *shotRepo) Update(dbc dbctx.Context, row *domain.Shot) (bool, error) {
	found := false
	err := withDoc(r.gw, dbc, true, func(tx *store.Document) error {
		if i := indexOf(tx.Shots, row.ID, shotID); i >= 0 {
			tx.Shots[i] = row
			found = true
		}
		return nil
	})
	return found, err
}

func (r *shotRepo) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	found := false
	err := withDoc(r.gw, dbc, true, func(tx *store.Document) error {
		var removed []*domain.Shot
		tx.Shots, removed = removeWhere(tx.Shots, func(s *domain.Shot) bool { return s.ID == id })
		found = len(removed) > 0
		return nil
	})
	return found, err
}

func (r *shotRepo) DeleteByCoffee(dbc dbctx.Context, coffeeID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := withDoc(r.gw, dbc, true, func(tx *store.Document) error {
		var removed []*domain.Shot
		tx.Shots, removed = removeWhere(tx.Shots, func(s *domain.Shot) bool { return s.CoffeeID == coffeeID })
		for _, s := range removed {
			ids = append(ids, s.ID)
		}
		return nil
	})
	return ids, err
}
