package app

import (
	"github.com/yungbote/barisense-backend/internal/data/store"
	"github.com/yungbote/barisense-backend/internal/observability"
	"github.com/yungbote/barisense-backend/internal/pkg/logger"
	"github.com/yungbote/barisense-backend/internal/services"
)

type Services struct {
	Coffee    services.CoffeeService
	Water     services.WaterService
	Shot      services.ShotService
	Tasting   services.TastingService
	Verdict   services.VerdictService
	Analytics services.AnalyticsService
}

func wireServices(gw *store.Gateway, log *logger.Logger, metrics *observability.Metrics, r Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Coffee:    services.NewCoffeeService(gw, log, r.Coffee, r.Water, r.Shot, r.Tasting, r.Verdict),
		Water:     services.NewWaterService(gw, log, r.Water),
		Shot:      services.NewShotService(gw, log, r.Coffee, r.Water, r.Shot, r.Tasting),
		Tasting:   services.NewTastingService(gw, log, metrics, r.Shot, r.Tasting, r.Verdict),
		Verdict:   services.NewVerdictService(gw, log, r.Coffee, r.Verdict),
		Analytics: services.NewAnalyticsService(gw, log, r.Coffee, r.Shot, r.Tasting, r.Verdict),
	}
}
