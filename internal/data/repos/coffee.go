package repos

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/barisense-backend/internal/data/store"
	"github.com/yungbote/barisense-backend/internal/domain"
	"github.com/yungbote/barisense-backend/internal/pkg/dbctx"
	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

type CoffeeRepo interface {
	List(dbc dbctx.Context) ([]*domain.Coffee, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Coffee, error)
	Create(dbc dbctx.Context, row *domain.Coffee) error
	Update(dbc dbctx.Context, row *domain.Coffee) (bool, error)
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
}

type coffeeRepo struct {
	gw  *store.Gateway
	log *logger.Logger
}

func NewCoffeeRepo(gw *store.Gateway, baseLog *logger.Logger) CoffeeRepo {
	return &coffeeRepo{gw: gw, log: baseLog.With("repo", "CoffeeRepo")}
}

func coffeeID(c *domain.Coffee) uuid.UUID        { return c.ID }
func coffeeCreatedAt(c *domain.Coffee) time.Time { return c.CreatedAt }

func (r *coffeeRepo) List(dbc dbctx.Context) ([]*domain.Coffee, error) {
	var out []*domain.Coffee
	err := withDoc(r.gw, dbc, false, func(tx *store.Document) error {
		out = newestFirst(tx.Coffees, coffeeCreatedAt)
		return nil
	})
	return out, err
}

// GetByID returns nil, nil when no coffee has id.
func (r *coffeeRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Coffee, error) {
	var out *domain.Coffee
	err := withDoc(r.gw, dbc, false, func(tx *store.Document) error {
		if i := indexOf(tx.Coffees, id, coffeeID); i >= 0 {
			out = tx.Coffees[i]
		}
		return nil
	})
	return out, err
}

func (r *coffeeRepo) Create(dbc dbctx.Context, row *domain.Coffee) error {
	return withDoc(r.gw, dbc, true, func(tx *store.Document) error {
		stamp(&row.ID, &row.CreatedAt)
		tx.Coffees = append(tx.Coffees, row)
		return nil
	})
}

func (r *coffeeRepo) Update(dbc dbctx.Context, row *domain.Coffee) (bool, error) {
	found := false
	err := withDoc(r.gw, dbc, true, func(tx *store.Document) error {
		if i := indexOf(tx.Coffees, row.ID, coffeeID); i >= 0 {
			tx.Coffees[i] = row
			found = true
		}
		return nil
	})
	return found, err
}

func (r *coffeeRepo) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	found := false
	err := withDoc(r.gw, dbc, true, func(tx *store.Document) error {
		var removed []*domain.Coffee
		tx.Coffees, removed = removeWhere(tx.Coffees, func(c *domain.Coffee) bool { return c.ID == id })
		found = len(removed) > 0
		return nil
	})
	return found, err
}
