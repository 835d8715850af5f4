package app

import (
	"github.com/devfolio/devfolio-backend/internal/logger"
	"github.com/devfolio/devfolio-backend/internal/middleware"
)

type Middleware struct {
	Admin *middleware.AdminMiddleware
}

func wireMiddleware(log *logger.Logger, cfg Config) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Admin: middleware.NewAdminMiddleware(log, cfg.AdminToken),
	}
}
