package store

import (
	"context"
	"sync"
)

// MemoryStore keeps the document in process memory. Load and Save copy, so a
// caller mutating a loaded document never changes stored state without Save.
type MemoryStore struct {
	mu  sync.Mutex
	doc *Document
}

func NewMemoryStore(seed *Document) *MemoryStore {
	if seed == nil {
		seed = NewDocument()
	}
	doc, err := seed.Clone()
	if err != nil {
		doc = NewDocument()
	}
	return &MemoryStore{doc: doc}
}

func (s *MemoryStore) Load(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

func (s *MemoryStore) Save(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cp, err := doc.Clone()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.doc = cp
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error { return nil }
