package app

import (
	server "github.com/yungbote/barisense-backend/internal/http"
	"github.com/yungbote/barisense-backend/internal/observability"
	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

func routerConfig(log *logger.Logger, cfg Config, metrics *observability.Metrics, h Handlers, mw Middleware) server.RouterConfig {
	rc := server.RouterConfig{
		Log:              log,
		Metrics:          metrics,
		APIPrefix:        cfg.APIPrefix,
		AllowOrigins:     cfg.AllowOrigins,
		APIKeyMiddleware: mw.APIKey,
		HealthHandler:    h.Health,
		CoffeeHandler:    h.Coffee,
		WaterHandler:     h.Water,
		ShotHandler:      h.Shot,
		TastingHandler:   h.Tasting,
		VerdictHandler:   h.Verdict,
		AnalyticsHandler: h.Analytics,
	}
	if cfg.OTelEnabled {
		rc.ServiceName = cfg.AppName
	}
	return rc
}
