package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/barisense-backend/internal/data/store"
	"github.com/yungbote/barisense-backend/internal/data/store/storetest"
	"github.com/yungbote/barisense-backend/internal/domain"
)

func seeded() *store.Document {
	b := storetest.NewBuilder()
	c := b.Coffee("Ethiopie", 12.5, 250, 0.9)
	b.Water("Volvic", domain.WaterSourceBottled)
	s := b.Shot(c.ID, domain.BeverageExpresso)
	b.Tasting(s.ID, 4, 4)
	b.Verdict(c.ID, domain.VerdictAAffiner)
	return b.Doc
}

func TestMemoryStoreIsolatesLoadedDocuments(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore(seeded())

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	doc.Coffees[0].Name = "mutated"
	doc.Coffees = nil

	again, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, again.Coffees, 1)
	require.Equal(t, "Ethiopie", again.Coffees[0].Name)
}

func TestGatewayUpdateDiscardsOnError(t *testing.T) {
	ctx := context.Background()
	gw := storetest.Gateway(t, seeded())
	boom := errors.New("boom")

	err := gw.Update(ctx, func(tx *store.Document) error {
		tx.Coffees = tx.Coffees[:0]
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, gw.View(ctx, func(tx *store.Document) error {
		require.Len(t, tx.Coffees, 1)
		return nil
	}))
}

func TestGatewayUpdatePersists(t *testing.T) {
	ctx := context.Background()
	gw := storetest.Gateway(t, nil)

	require.NoError(t, gw.Update(ctx, func(tx *store.Document) error {
		tx.Waters = append(tx.Waters, &domain.Water{Label: "Robinet", Source: domain.WaterSourceTap})
		return nil
	}))
	require.NoError(t, gw.View(ctx, func(tx *store.Document) error {
		require.Len(t, tx.Waters, 1)
		require.Empty(t, tx.Coffees)
		return nil
	}))
}

func TestFileStoreInitialisesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.json")
	_, err := store.NewFileStore(path, storetest.Logger(t))
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, c := range store.Collections() {
		require.Contains(t, string(raw), `"`+string(c)+`": []`)
	}
	require.NoError(t, store.ValidateRaw(raw))
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")
	s, err := store.NewFileStore(path, storetest.Logger(t))
	require.NoError(t, err)

	want := seeded()
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), "équilibré", "labels must stay unescaped")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		require.False(t, strings.HasSuffix(e.Name(), ".tmp"), "temp file left behind: %s", e.Name())
	}
}

func TestFileStoreEmptyAndPartialFiles(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")
	s, err := store.NewFileStore(path, storetest.Logger(t))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, nil, 0o644))
	doc, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, doc.Coffees)

	require.NoError(t, os.WriteFile(path, []byte(`{"waters":[]}`), 0o644))
	doc, err = s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, doc.Verdicts)
}

func TestFileStoreRejectsInvalidDocument(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")
	s, err := store.NewFileStore(path, storetest.Logger(t))
	require.NoError(t, err)

	bad := `{"coffees":[{"id":"not-a-uuid","name":"x","roaster":"y","format":"grain","weight_grams":1,"price_eur":1}],
		"waters":[],"shots":[],"tastings":[],"verdicts":[]}`
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))
	_, err = s.Load(ctx)
	require.Error(t, err)
	require.Contains(t, err.Error(), "schema")
}

func TestFileStoreHonoursCancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s, err := store.NewFileStore(path, storetest.Logger(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, s.Save(ctx, store.NewDocument()), context.Canceled)
}

func TestSQLiteStoreReplacesTables(t *testing.T) {
	ctx := context.Background()
	s, err := store.OpenSQLite(filepath.Join(t.TempDir(), "barisense.db"), storetest.Logger(t))
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	first := seeded()
	require.NoError(t, s.Save(ctx, first))

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Coffees, 1)
	require.Len(t, doc.Tastings, 1)
	require.Equal(t, first.Coffees[0].ID, doc.Coffees[0].ID)
	require.Equal(t, domain.VerdictAAffiner, doc.Verdicts[0].Status)

	doc.Tastings = nil
	doc.Verdicts = nil
	require.NoError(t, s.Save(ctx, doc))

	again, err := s.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, again.Tastings)
	require.Empty(t, again.Verdicts)
	require.Len(t, again.Shots, 1)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis store tests")
	}
	ctx := context.Background()
	s, err := store.NewRedisStore(addr, "barisense:test:"+t.Name(), storetest.Logger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Save(ctx, seeded()))
	doc, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Coffees, 1)
	require.NoError(t, s.Save(ctx, store.NewDocument()))
}
