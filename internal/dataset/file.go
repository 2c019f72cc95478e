package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/yungbote/barisense-backend/internal/data/store"
	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

// Load reads and schema-validates an existing dataset file.
func Load(ctx context.Context, path string, log *logger.Logger) (*store.Document, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("dataset %s does not exist", path)
	}
	fsStore, err := store.NewFileStore(path, log)
	if err != nil {
		return nil, err
	}
	return fsStore.Load(ctx)
}

// Save writes doc to path atomically, replacing any previous content.
func Save(ctx context.Context, path string, doc *store.Document, log *logger.Logger) error {
	fsStore, err := store.NewFileStore(path, log)
	if err != nil {
		return err
	}
	return fsStore.Save(ctx, doc)
}
