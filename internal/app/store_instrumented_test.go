package app

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/barisense-backend/internal/data/store"
	"github.com/yungbote/barisense-backend/internal/observability"
)

type failingStore struct {
	store.Store
	saveErr error
}

func (s *failingStore) Save(ctx context.Context, doc *store.Document) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.Store.Save(ctx, doc)
}

func TestInstrumentedStoreRecordsOutcomes(t *testing.T) {
	metrics := observability.NewMetrics()
	inner := &failingStore{Store: store.NewMemoryStore(nil), saveErr: errors.New("disk full")}
	s := instrumentStore("memory", inner, metrics)

	ctx := context.Background()
	doc, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := s.Save(ctx, doc); err == nil {
		t.Fatalf("expected save error")
	}
	inner.saveErr = nil
	if err := s.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	checks := []struct {
		op, status string
		want       float64
	}{
		{"load", "success", 1},
		{"save", "error", 1},
		{"save", "success", 1},
	}
	for _, c := range checks {
		if got := metrics.StoreOperations("memory", c.op, c.status); got != c.want {
			t.Fatalf("%s/%s: want=%v got=%v", c.op, c.status, c.want, got)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestInstrumentStoreNil(t *testing.T) {
	if instrumentStore("file", nil, observability.NewMetrics()) != nil {
		t.Fatalf("nil inner must stay nil")
	}
}
