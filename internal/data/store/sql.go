package store

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/barisense-backend/internal/domain"
	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

const createBatchSize = 200

// SQLStore maps each collection to a table. Save replaces every table inside
// one transaction.
type SQLStore struct {
	db  *gorm.DB
	log *logger.Logger
}

func OpenSQLite(path string, baseLog *logger.Logger) (*SQLStore, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	return NewSQLStore(db, baseLog)
}

func OpenPostgres(dsn string, baseLog *logger.Logger) (*SQLStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	return NewSQLStore(db, baseLog)
}

// NewSQLStore migrates the collection tables on db.
func NewSQLStore(db *gorm.DB, baseLog *logger.Logger) (*SQLStore, error) {
	if err := db.AutoMigrate(
		&domain.Coffee{},
		&domain.Water{},
		&domain.Shot{},
		&domain.Tasting{},
		&domain.Verdict{},
	); err != nil {
		return nil, fmt.Errorf("migrate tables: %w", err)
	}
	return &SQLStore{db: db, log: baseLog.With("service", "SQLStore", "dialect", db.Dialector.Name())}, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger: gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold:             1 * time.Second,
				LogLevel:                  gormLogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	}
}

func (s *SQLStore) DB() *gorm.DB { return s.db }

func (s *SQLStore) Load(ctx context.Context) (*Document, error) {
	doc := NewDocument()
	db := s.db.WithContext(ctx)
	if err := db.Order("created_at ASC").Find(&doc.Coffees).Error; err != nil {
		return nil, fmt.Errorf("load coffees: %w", err)
	}
	if err := db.Order("created_at ASC").Find(&doc.Waters).Error; err != nil {
		return nil, fmt.Errorf("load waters: %w", err)
	}
	if err := db.Order("created_at ASC").Find(&doc.Shots).Error; err != nil {
		return nil, fmt.Errorf("load shots: %w", err)
	}
	if err := db.Order("created_at ASC").Find(&doc.Tastings).Error; err != nil {
		return nil, fmt.Errorf("load tastings: %w", err)
	}
	if err := db.Order("created_at ASC").Find(&doc.Verdicts).Error; err != nil {
		return nil, fmt.Errorf("load verdicts: %w", err)
	}
	return doc.normalize(), nil
}

func (s *SQLStore) Save(ctx context.Context, doc *Document) error {
	doc.normalize()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := replaceTable(tx, &domain.Coffee{}, doc.Coffees); err != nil {
			return fmt.Errorf("replace coffees: %w", err)
		}
		if err := replaceTable(tx, &domain.Water{}, doc.Waters); err != nil {
			return fmt.Errorf("replace waters: %w", err)
		}
		if err := replaceTable(tx, &domain.Shot{}, doc.Shots); err != nil {
			return fmt.Errorf("replace shots: %w", err)
		}
		if err := replaceTable(tx, &domain.Tasting{}, doc.Tastings); err != nil {
			return fmt.Errorf("replace tastings: %w", err)
		}
		if err := replaceTable(tx, &domain.Verdict{}, doc.Verdicts); err != nil {
			return fmt.Errorf("replace verdicts: %w", err)
		}
		return nil
	})
}

func replaceTable[T any](tx *gorm.DB, model *T, rows []*T) error {
	if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(rows, createBatchSize).Error
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
