package dbctx

import (
	"context"

	"github.com/yungbote/barisense-backend/internal/data/store"
)

// Context bundles a request context with an optional loaded document. When Tx
// is set, repos read and mutate it in place; the caller owns the save.
type Context struct {
	Ctx context.Context
	Tx  *store.Document
}
