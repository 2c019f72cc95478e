package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

// Store persists the whole document. Load is listAll over every collection and
// Save is replaceAll over every collection.
type Store interface {
	Load(ctx context.Context) (*Document, error)
	Save(ctx context.Context, doc *Document) error
	Close() error
}

// Gateway serialises load/mutate/save cycles inside one process. It does not
// coordinate with other processes sharing the same backend.
type Gateway struct {
	mu    sync.Mutex
	store Store
	log   *logger.Logger
}

func NewGateway(s Store, baseLog *logger.Logger) *Gateway {
	return &Gateway{store: s, log: baseLog.With("service", "StoreGateway")}
}

// View loads the current document and hands it to fn. Changes made by fn are discarded.
func (g *Gateway) View(ctx context.Context, fn func(tx *Document) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	doc, err := g.store.Load(ctx)
	if err != nil {
		g.log.Error("load document failed", "error", err)
		return fmt.Errorf("load document: %w", err)
	}
	return fn(doc)
}

// Update loads the document, applies fn and saves the result. Nothing is
// written when fn returns an error.
func (g *Gateway) Update(ctx context.Context, fn func(tx *Document) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	doc, err := g.store.Load(ctx)
	if err != nil {
		g.log.Error("load document failed", "error", err)
		return fmt.Errorf("load document: %w", err)
	}
	if err := fn(doc); err != nil {
		return err
	}
	if err := g.store.Save(ctx, doc.normalize()); err != nil {
		g.log.Error("save document failed", "error", err)
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func (g *Gateway) Close() error {
	return g.store.Close()
}
