package services

import (
	"github.com/yungbote/barisense-backend/internal/data/store"
	"github.com/yungbote/barisense-backend/internal/pkg/ctxutil"
	"github.com/yungbote/barisense-backend/internal/pkg/dbctx"
)

// inTx runs fn against dbc.Tx when the caller already holds a document, or
// inside a fresh gateway cycle otherwise. Write cycles save only when fn succeeds.
func inTx(gw *store.Gateway, dbc dbctx.Context, write bool, fn func(inner dbctx.Context) error) error {
	if dbc.Tx != nil {
		return fn(dbc)
	}
	ctx := ctxutil.Default(dbc.Ctx)
	run := gw.View
	if write {
		run = gw.Update
	}
	return run(ctx, func(tx *store.Document) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
}
