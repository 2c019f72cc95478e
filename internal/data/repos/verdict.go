package repos

import (
	"github.com/google/uuid"

	"github.com/yungbote/barisense-backend/internal/data/store"
	"github.com/yungbote/barisense-backend/internal/domain"
	"github.com/yungbote/barisense-backend/internal/pkg/dbctx"
	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

type VerdictRepo interface {
	List(dbc dbctx.Context) ([]*domain.Verdict, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Verdict, error)
	GetByCoffeeID(dbc dbctx.Context, coffeeID uuid.UUID) (*domain.Verdict, error)
	Create(dbc dbctx.Context, row *domain.Verdict) error
	Update(dbc dbctx.Context, row *domain.Verdict) (bool, error)
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
	DeleteByCoffee(dbc dbctx.Context, coffeeID uuid.UUID) (int, error)
}

type verdictRepo struct {
	gw  *store.Gateway
	log *logger.Logger
}

func NewVerdictRepo(gw *store.Gateway, baseLog *logger.Logger) VerdictRepo {
	return &verdictRepo{gw: gw, log: baseLog.With("repo", "VerdictRepo")}
}

func verdictID(v *domain.Verdict) uuid.UUID { return v.ID }

// List keeps stored order.
func (r *verdictRepo) List(dbc dbctx.Context) ([]*domain.Verdict, error) {
	var out []*domain.Verdict
	err := withDoc(r.gw, dbc, false, func(tx *store.Document) error {
		out = append(make([]*domain.Verdict, 0, len(tx.Verdicts)), tx.Verdicts...)
		return nil
	})
	return out, err
}

func (r *verdictRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Verdict, error) {
	var out *domain.Verdict
	err := withDoc(r.gw, dbc, false, func(tx *store.Document) error {
		if i := indexOf(tx.Verdicts, id, verdictID); i >= 0 {
			out = tx.Verdicts[i]
		}
		return nil
	})
	return out, err
}

// GetByCoffeeID returns the first verdict stored for coffeeID.
func (r *verdictRepo) GetByCoffeeID(dbc dbctx.Context, coffeeID uuid.UUID) (*domain.Verdict, error) {
	var out *domain.Verdict
	err := withDoc(r.gw, dbc, false, func(tx *store.Document) error {
		for _, v := range tx.Verdicts {
			if v.CoffeeID == coffeeID {
				out = v
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *verdictRepo) Create(dbc dbctx.Context, row *domain.Verdict) error {
	return withDoc(r.gw, dbc, true, func(tx *store.Document) error {
		stamp(&row.ID, &row.CreatedAt)
		if row.UpdatedAt.IsZero() {
			row.UpdatedAt = row.CreatedAt
		}
		tx.Verdicts = append(tx.Verdicts, row)
		return nil
	})
}

func (r *verdictRepo) Update(dbc dbctx.Context, row *domain.Verdict) (bool, error) {
	found := false
	err := withDoc(r.gw, dbc, true, func(tx *store.Document) error {
		if i := indexOf(tx.Verdicts, row.ID, verdictID); i >= 0 {
			tx.Verdicts[i] = row
			found = true
		}
		return nil
	})
	return found, err
}

func (r *verdictRepo) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	found := false
	err := withDoc(r.gw, dbc, true, func(tx *store.Document) error {
		var removed []*domain.Verdict
		tx.Verdicts, removed = removeWhere(tx.Verdicts, func(v *domain.Verdict) bool { return v.ID == id })
		found = len(removed) > 0
		return nil
	})
	return found, err
}

func (r *verdictRepo) DeleteByCoffee(dbc dbctx.Context, coffeeID uuid.UUID) (int, error) {
	n := 0
	err := withDoc(r.gw, dbc, true, func(tx *store.Document) error {
		var removed []*domain.Verdict
		tx.Verdicts, removed = removeWhere(tx.Verdicts, func(v *domain.Verdict) bool { return v.CoffeeID == coffeeID })
		n = len(removed)
		return nil
	})
	return n, err
}
