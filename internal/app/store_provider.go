package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yungbote/barisense-backend/internal/data/store"
	"github.com/yungbote/barisense-backend/internal/observability"
	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

type StoreMode string

const (
	StoreModeFile     StoreMode = "file"
	StoreModeMemory   StoreMode = "memory"
	StoreModeSQLite   StoreMode = "sqlite"
	StoreModePostgres StoreMode = "postgres"
	StoreModeRedis    StoreMode = "redis"
)

func IsSupportedStoreMode(mode StoreMode) bool {
	switch mode {
	case StoreModeFile, StoreModeMemory, StoreModeSQLite, StoreModePostgres, StoreModeRedis:
		return true
	}
	return false
}

var (
	newFileStore  = func(path string, log *logger.Logger) (store.Store, error) { return store.NewFileStore(path, log) }
	openSQLite    = func(dsn string, log *logger.Logger) (store.Store, error) { return store.OpenSQLite(dsn, log) }
	openPostgres  = func(dsn string, log *logger.Logger) (store.Store, error) { return store.OpenPostgres(dsn, log) }
	newRedisStore = func(addr, key string, log *logger.Logger) (store.Store, error) {
		return store.NewRedisStore(addr, key, log)
	}
)

type StoreBootstrapErrorCode string

const (
	StoreBootstrapErrorInvalidMode      StoreBootstrapErrorCode = "invalid_mode"
	StoreBootstrapErrorMissingPath      StoreBootstrapErrorCode = "missing_path"
	StoreBootstrapErrorMissingDSN       StoreBootstrapErrorCode = "missing_dsn"
	StoreBootstrapErrorMissingRedisAddr StoreBootstrapErrorCode = "missing_redis_addr"
	StoreBootstrapErrorConnectFailed    StoreBootstrapErrorCode = "connect_failed"
)

type StoreBootstrapError struct {
	Code  StoreBootstrapErrorCode
	Mode  string
	Cause error
}

func (e *StoreBootstrapError) Error() string {
	if e == nil {
		return "store bootstrap failed"
	}
	return fmt.Sprintf("store bootstrap failed (code=%s mode=%q): %v", e.Code, e.Mode, e.Cause)
}

func (e *StoreBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// resolveStore opens the backend named by cfg.StoreMode and wraps it with
// load/save metrics.
func resolveStore(log *logger.Logger, cfg Config, metrics *observability.Metrics) (store.Store, error) {
	mode := StoreMode(strings.ToLower(strings.TrimSpace(cfg.StoreMode)))
	if mode == "" {
		mode = StoreModeFile
	}
	if !IsSupportedStoreMode(mode) {
		err := &StoreBootstrapError{
			Code:  StoreBootstrapErrorInvalidMode,
			Mode:  string(mode),
			Cause: fmt.Errorf("unsupported store mode %q", mode),
		}
		log.Error("Store selection failed", "mode", mode, "error_code", err.Code, "error", err)
		return nil, err
	}
	if err := checkStoreConfig(mode, cfg); err != nil {
		log.Error("Store selection failed", "mode", mode, "error_code", err.Code, "error", err)
		return nil, err
	}

	log.Info("Selecting store backend", "mode", mode, "storage_file", cfg.StorageFile, "redis_addr", cfg.RedisAddr)

	var (
		s   store.Store
		err error
	)
	switch mode {
	case StoreModeFile:
		s, err = newFileStore(cfg.StorageFile, log)
	case StoreModeMemory:
		s = store.NewMemoryStore(nil)
	case StoreModeSQLite:
		s, err = openSQLite(cfg.DatabaseDSN, log)
	case StoreModePostgres:
		s, err = openPostgres(cfg.DatabaseDSN, log)
	case StoreModeRedis:
		s, err = newRedisStore(cfg.RedisAddr, cfg.RedisKey, log)
	}
	if err != nil {
		classified := classifyStoreBootstrapError(mode, err)
		log.Error("Store bootstrap failed", "mode", mode, "error_code", storeBootstrapErrorCode(classified), "error", classified)
		return nil, classified
	}
	return instrumentStore(string(mode), s, metrics), nil
}

func checkStoreConfig(mode StoreMode, cfg Config) *StoreBootstrapError {
	switch mode {
	case StoreModeFile:
		if cfg.StorageFile == "" {
			return &StoreBootstrapError{
				Code:  StoreBootstrapErrorMissingPath,
				Mode:  string(mode),
				Cause: errors.New("BARISENSE_STORAGE_FILE is empty"),
			}
		}
	case StoreModeSQLite, StoreModePostgres:
		if cfg.DatabaseDSN == "" {
			return &StoreBootstrapError{
				Code:  StoreBootstrapErrorMissingDSN,
				Mode:  string(mode),
				Cause: errors.New("BARISENSE_DATABASE_DSN is empty"),
			}
		}
	case StoreModeRedis:
		if cfg.RedisAddr == "" {
			return &StoreBootstrapError{
				Code:  StoreBootstrapErrorMissingRedisAddr,
				Mode:  string(mode),
				Cause: errors.New("BARISENSE_REDIS_ADDR is empty"),
			}
		}
	}
	return nil
}

func classifyStoreBootstrapError(mode StoreMode, err error) error {
	var bootstrapErr *StoreBootstrapError
	if errors.As(err, &bootstrapErr) {
		return err
	}
	return &StoreBootstrapError{
		Code:  StoreBootstrapErrorConnectFailed,
		Mode:  string(mode),
		Cause: err,
	}
}

func storeBootstrapErrorCode(err error) StoreBootstrapErrorCode {
	var bootstrapErr *StoreBootstrapError
	if errors.As(err, &bootstrapErr) {
		if bootstrapErr.Code != "" {
			return bootstrapErr.Code
		}
	}
	return StoreBootstrapErrorConnectFailed
}
