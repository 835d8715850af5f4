package app

import (
	"time"

	"github.com/devfolio/devfolio-backend/internal/logger"
	"github.com/devfolio/devfolio-backend/internal/utils"
)

type Config struct {
	Port            string
	AdminToken      string
	CacheTTL        time.Duration
	RefreshInterval time.Duration
	WeightsFile     string
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	adminToken := utils.GetEnv("ADMIN_API_TOKEN", "", log)
	cacheTTL := utils.GetEnvAsDuration("CACHE_TTL", time.Hour, log)
	refreshInterval := utils.GetEnvAsDuration("SIMILARITY_REFRESH_INTERVAL", 0, log)
	weightsFile := utils.GetEnv("SIMILARITY_WEIGHTS_FILE", "", log)
	return Config{
		Port:            port,
		AdminToken:      adminToken,
		CacheTTL:        cacheTTL,
		RefreshInterval: refreshInterval,
		WeightsFile:     weightsFile,
	}
}
