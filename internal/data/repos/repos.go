package repos

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/barisense-backend/internal/data/store"
	"github.com/yungbote/barisense-backend/internal/pkg/ctxutil"
	"github.com/yungbote/barisense-backend/internal/pkg/dbctx"
)

// withDoc runs fn on dbc.Tx when the caller already holds a document,
// otherwise through a gateway cycle of its own.
func withDoc(gw *store.Gateway, dbc dbctx.Context, write bool, fn func(tx *store.Document) error) error {
	if dbc.Tx != nil {
		return fn(dbc.Tx)
	}
	if write {
		return gw.Update(ctxutil.Default(dbc.Ctx), fn)
	}
	return gw.View(ctxutil.Default(dbc.Ctx), fn)
}

// newestFirst returns a copy of rows ordered by created_at descending. Records
// created at the same instant keep their stored order.
func newestFirst[T any](rows []*T, createdAt func(*T) time.Time) []*T {
	out := make([]*T, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return createdAt(out[i]).After(createdAt(out[j]))
	})
	return out
}

func indexOf[T any](rows []*T, id uuid.UUID, idOf func(*T) uuid.UUID) int {
	for i, row := range rows {
		if idOf(row) == id {
			return i
		}
	}
	return -1
}

// removeWhere drops matching rows in place and returns what was removed.
func removeWhere[T any](rows []*T, match func(*T) bool) ([]*T, []*T) {
	kept := rows[:0]
	var removed []*T
	for _, row := range rows {
		if match(row) {
			removed = append(removed, row)
			continue
		}
		kept = append(kept, row)
	}
	return kept, removed
}

func stamp(id *uuid.UUID, createdAt *time.Time) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now().UTC()
	}
}
