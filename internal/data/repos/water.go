package repos

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/barisense-backend/internal/data/store"
	"github.com/yungbote/barisense-backend/internal/domain"
	"github.com/yungbote/barisense-backend/internal/pkg/dbctx"
	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

type WaterRepo interface {
	List(dbc dbctx.Context) ([]*domain.Water, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Water, error)
	Create(dbc dbctx.Context, row *domain.Water) error
	Update(dbc dbctx.Context, row *domain.Water) (bool, error)
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
}

type waterRepo struct {
	gw  *store.Gateway
	log *logger.Logger
}

func NewWaterRepo(gw *store.Gateway, baseLog *logger.Logger) WaterRepo {
	return &waterRepo{gw: gw, log: baseLog.With("repo", "WaterRepo")}
}

func waterID(w *domain.Water) uuid.UUID        { return w.ID }
func waterCreatedAt(w *domain.Water) time.Time { return w.CreatedAt }

func (r *waterRepo) List(dbc dbctx.Context) ([]*domain.Water, error) {
	var out []*domain.Water
	err := withDoc(r.gw, dbc, false, func(tx *store.Document) error {
		out = newestFirst(tx.Waters, waterCreatedAt)
		return nil
	})
	return out, err
}

func (r *waterRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Water, error) {
	var out *domain.Water
	err := withDoc(r.gw, dbc, false, func(tx *store.Document) error {
		if i := indexOf(tx.Waters, id, waterID); i >= 0 {
			out = tx.Waters[i]
		}
		return nil
	})
	return out, err
}

func (r *waterRepo) Create(dbc dbctx.Context, row *domain.Water) error {
	return withDoc(r.gw, dbc, true, func(tx *store.Document) error {
		stamp(&row.ID, &row.CreatedAt)
		tx.Waters = append(tx.Waters, row)
		return nil
	})
}

func (r *waterRepo) Update(dbc dbctx.Context, row *domain.Water) (bool, error) {
	found := false
	err := withDoc(r.gw, dbc, true, func(tx *store.Document) error {
		if i := indexOf(tx.Waters, row.ID, waterID); i >= 0 {
			tx.Waters[i] = row
			found = true
		}
		return nil
	})
	return found, err
}

// Delete leaves shots that reference the water untouched.
func (r *waterRepo) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	found := false
	err := withDoc(r.gw, dbc, true, func(tx *store.Document) error {
		var removed []*domain.Water
		tx.Waters, removed = removeWhere(tx.Waters, func(w *domain.Water) bool { return w.ID == id })
		found = len(removed) > 0
		return nil
	})
	return found, err
}
