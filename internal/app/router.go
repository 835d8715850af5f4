package app

import (
	"github.com/gin-gonic/gin"

	"github.com/devfolio/devfolio-backend/internal/server"
)

func wireRouter(h Handlers, mw Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		HealthcheckHandler:    h.Healthcheck,
		RecommendationHandler: h.Recommendation,
		AdminHandler:          h.Admin,
		AdminMiddleware:       mw.Admin,
	})
}
