package app

import (
	"github.com/devfolio/devfolio-backend/internal/handlers"
	"github.com/devfolio/devfolio-backend/internal/logger"
)

type Handlers struct {
	Healthcheck    *handlers.HealthcheckHandler
	Recommendation *handlers.RecommendationHandler
	Admin          *handlers.AdminHandler
}

func wireHandlers(log *logger.Logger, svcs Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Healthcheck:    handlers.NewHealthcheckHandler(),
		Recommendation: handlers.NewRecommendationHandler(log, svcs.Recommendation),
		Admin:          handlers.NewAdminHandler(log, svcs.SimilarityUpdate),
	}
}
