package app

import (
	httpH "github.com/yungbote/barisense-backend/internal/http/handlers"
	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

type Handlers struct {
	Health    *httpH.HealthHandler
	Coffee    *httpH.CoffeeHandler
	Water     *httpH.WaterHandler
	Shot      *httpH.ShotHandler
	Tasting   *httpH.TastingHandler
	Verdict   *httpH.VerdictHandler
	Analytics *httpH.AnalyticsHandler
}

func wireHandlers(log *logger.Logger, cfg Config, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(cfg.AppName, cfg.Version),
		Coffee:    httpH.NewCoffeeHandler(s.Coffee),
		Water:     httpH.NewWaterHandler(s.Water),
		Shot:      httpH.NewShotHandler(s.Shot),
		Tasting:   httpH.NewTastingHandler(s.Tasting),
		Verdict:   httpH.NewVerdictHandler(s.Verdict),
		Analytics: httpH.NewAnalyticsHandler(s.Analytics),
	}
}
