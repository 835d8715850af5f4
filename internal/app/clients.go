package app

import (
	"os"

	"github.com/devfolio/devfolio-backend/internal/cache"
	"github.com/devfolio/devfolio-backend/internal/clients/redis"
	"github.com/devfolio/devfolio-backend/internal/logger"
)

type Clients struct {
	Cache      cache.Cache
	RedisCache *redis.Cache
}

// wireClients picks the recommendation cache backend: Redis when REDIS_ADDR
// is set and reachable, in-process memory otherwise.
func wireClients(log *logger.Logger) Clients {
	log.Info("Wiring clients...")
	if os.Getenv("REDIS_ADDR") != "" {
		rc, err := redis.NewCache(log)
		if err != nil {
			log.Warn("Redis cache unavailable, falling back to in-memory cache", "error", err)
		} else {
			return Clients{Cache: rc, RedisCache: rc}
		}
	}
	return Clients{Cache: cache.NewMemory()}
}
