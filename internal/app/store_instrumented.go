package app

import (
	"context"
	"time"

	"github.com/yungbote/barisense-backend/internal/data/store"
	"github.com/yungbote/barisense-backend/internal/observability"
)

type instrumentedStore struct {
	backend string
	inner   store.Store
	metrics *observability.Metrics
}

func instrumentStore(backend string, inner store.Store, metrics *observability.Metrics) store.Store {
	if inner == nil || metrics == nil {
		return inner
	}
	return &instrumentedStore{
		backend: backend,
		inner:   inner,
		metrics: metrics,
	}
}

func (s *instrumentedStore) Load(ctx context.Context) (*store.Document, error) {
	start := time.Now()
	out, err := s.inner.Load(ctx)
	s.metrics.ObserveStoreOperation(s.backend, "load", err, time.Since(start))
	return out, err
}

func (s *instrumentedStore) Save(ctx context.Context, doc *store.Document) error {
	start := time.Now()
	err := s.inner.Save(ctx, doc)
	s.metrics.ObserveStoreOperation(s.backend, "save", err, time.Since(start))
	return err
}

func (s *instrumentedStore) Close() error { return s.inner.Close() }
