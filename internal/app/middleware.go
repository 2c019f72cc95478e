package app

import (
	httpMW "github.com/yungbote/barisense-backend/internal/http/middleware"
	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

type Middleware struct {
	APIKey *httpMW.APIKeyMiddleware
}

func wireMiddleware(log *logger.Logger, cfg Config) Middleware {
	log.Info("Wiring middleware...")
	if cfg.APIKey == "" {
		log.Warn("BARISENSE_API_KEY is empty; the API is open")
	}
	return Middleware{
		APIKey: httpMW.NewAPIKeyMiddleware(log, cfg.APIKey, cfg.APIKeyHeader),
	}
}
