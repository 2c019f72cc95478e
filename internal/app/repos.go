package app

import (
	"github.com/yungbote/barisense-backend/internal/data/repos"
	"github.com/yungbote/barisense-backend/internal/data/store"
	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

type Repos struct {
	Coffee  repos.CoffeeRepo
	Water   repos.WaterRepo
	Shot    repos.ShotRepo
	Tasting repos.TastingRepo
	Verdict repos.VerdictRepo
}

func wireRepos(gw *store.Gateway, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Coffee:  repos.NewCoffeeRepo(gw, log),
		Water:   repos.NewWaterRepo(gw, log),
		Shot:    repos.NewShotRepo(gw, log),
		Tasting: repos.NewTastingRepo(gw, log),
		Verdict: repos.NewVerdictRepo(gw, log),
	}
}
