package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

// FileStore keeps the document in one pretty-printed JSON file.
type FileStore struct {
	path string
	log  *logger.Logger
}

// NewFileStore creates the parent directory and an empty document when the
// file does not exist yet.
func NewFileStore(path string, baseLog *logger.Logger) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("file store: empty path")
	}
	if _, err := DocumentSchema(); err != nil {
		return nil, err
	}
	s := &FileStore{path: path, log: baseLog.With("service", "FileStore", "path", path)}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.log.Info("initialising empty document")
		if err := s.write(NewDocument()); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("stat storage file: %w", err)
	case info.IsDir():
		return nil, fmt.Errorf("storage path %s is a directory", path)
	}
	return s, nil
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read storage file: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return NewDocument(), nil
	}
	raw, err = fillMissingCollections(raw)
	if err != nil {
		return nil, err
	}
	if err := ValidateRaw(raw); err != nil {
		return nil, err
	}
	doc := &Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("decode storage file: %w", err)
	}
	return doc.normalize(), nil
}

func (s *FileStore) Save(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.write(doc.normalize())
}

func (s *FileStore) Close() error { return nil }

// write replaces the file through a sibling temp file and a rename.
func (s *FileStore) write(doc *Document) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		return fmt.Errorf("replace storage file: %w", err)
	}
	return nil
}

// fillMissingCollections adds an empty array for every collection key absent
// from an existing document.
func fillMissingCollections(raw []byte) ([]byte, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("decode storage file: %w", err)
	}
	changed := false
	for _, c := range Collections() {
		v, ok := top[string(c)]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			top[string(c)] = json.RawMessage("[]")
			changed = true
		}
	}
	if !changed {
		return raw, nil
	}
	return json.Marshal(top)
}
