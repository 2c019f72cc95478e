package repos

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/barisense-backend/internal/data/store"
	"github.com/yungbote/barisense-backend/internal/domain"
	"github.com/yungbote/barisense-backend/internal/pkg/dbctx"
	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

// TastingRepo has no Update: tastings are immutable once recorded.
type TastingRepo interface {
	List(dbc dbctx.Context) ([]*domain.Tasting, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Tasting, error)
	Create(dbc dbctx.Context, row *domain.Tasting) error
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
	DeleteByShots(dbc dbctx.Context, shotIDs []uuid.UUID) (int, error)
}

type tastingRepo struct {
	gw  *store.Gateway
	log *logger.Logger
}

func NewTastingRepo(gw *store.Gateway, baseLog *logger.Logger) TastingRepo {
	return &tastingRepo{gw: gw, log: baseLog.With("repo", "TastingRepo")}
}

func tastingID(t *domain.Tasting) uuid.UUID        { return t.ID }
func tastingCreatedAt(t *domain.Tasting) time.Time { return t.CreatedAt }

func (r *tastingRepo) List(dbc dbctx.Context) ([]*domain.Tasting, error) {
	var out []*domain.Tasting
	err := withDoc(r.gw, dbc, false, func(tx *store.Document) error {
		out = newestFirst(tx.Tastings, tastingCreatedAt)
		return nil
	})
	return out, err
}

func (r *tastingRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Tasting, error) {
	var out *domain.Tasting
	err := withDoc(r.gw, dbc, false, func(tx *store.Document) error {
		if i := indexOf(tx.Tastings, id, tastingID); i >= 0 {
			out = tx.Tastings[i]
		}
		return nil
	})
	return out, err
}

func (r *tastingRepo) Create(dbc dbctx.Context, row *domain.Tasting) error {
	return withDoc(r.gw, dbc, true, func(tx *store.Document) error {
		stamp(&row.ID, &row.CreatedAt)
		tx.Tastings = append(tx.Tastings, row)
		return nil
	})
}

func (r *tastingRepo) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	found := false
	err := withDoc(r.gw, dbc, true, func(tx *store.Document) error {
		var removed []*domain.Tasting
		tx.Tastings, removed = removeWhere(tx.Tastings, func(t *domain.Tasting) bool { return t.ID == id })
		found = len(removed) > 0
		return nil
	})
	return found, err
}

func (r *tastingRepo) DeleteByShots(dbc dbctx.Context, shotIDs []uuid.UUID) (int, error) {
	if len(shotIDs) == 0 {
		return 0, nil
	}
	set := make(map[uuid.UUID]struct{}, len(shotIDs))
	for _, id := range shotIDs {
		set[id] = struct{}{}
	}
	n := 0
	err := withDoc(r.gw, dbc, true, func(tx *store.Document) error {
		var removed []*domain.Tasting
		tx.Tastings, removed = removeWhere(tx.Tastings, func(t *domain.Tasting) bool {
			_, ok := set[t.ShotID]
			return ok
		})
		n = len(removed)
		return nil
	})
	return n, err
}
