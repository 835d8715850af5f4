package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/devfolio/devfolio-backend/internal/handlers"
	"github.com/devfolio/devfolio-backend/internal/middleware"
)

type RouterConfig struct {
	HealthcheckHandler    *handlers.HealthcheckHandler
	RecommendationHandler *handlers.RecommendationHandler
	AdminHandler          *handlers.AdminHandler
	AdminMiddleware       *middleware.AdminMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)

	api := router.Group("/api")
	{
		api.GET("/users/:id/related", cfg.RecommendationHandler.RelatedUsers)
		api.GET("/users/:id/recommendations", cfg.RecommendationHandler.Recommendations)
		api.GET("/users/:id/graph", cfg.RecommendationHandler.Graph)
		api.GET("/projects/:id/related", cfg.RecommendationHandler.RelatedProjects)
	}

	// ===============
	// || Admin     ||
	// ===============
	admin := router.Group("/api/admin")
	admin.Use(cfg.AdminMiddleware.RequireAdmin())
	admin.POST("/update-similarities", cfg.AdminHandler.UpdateSimilarities)

	return router
}
