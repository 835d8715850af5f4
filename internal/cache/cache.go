package cache

import (
	"context"
	"time"
)

// Cache is the TTL-bounded byte cache in front of the recommendation read
// path. A key is either present-and-unexpired or treated as absent;
// concurrent writers racing on a key is fine, last write wins.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
