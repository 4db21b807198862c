package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/sharelink-go/internal/sharelink"
)

// RedisVisits deduplicates visitor fingerprints per short code using
// SET NX with a TTL equal to the dedup window. The key holds nothing
// but the fingerprint hash itself and expires on its own.
type RedisVisits struct {
	client *redis.Client
	prefix string
	window time.Duration
}

// NewRedisVisits creates a Redis-backed visit registry with the given
// dedup window.
func NewRedisVisits(client *redis.Client, window time.Duration) *RedisVisits {
	return &RedisVisits{
		client: client,
		prefix: "visit:",
		window: window,
	}
}

func (r *RedisVisits) Register(ctx context.Context, code sharelink.Code, fingerprint string) (bool, error) {
	key := r.prefix + string(code) + ":" + fingerprint

	// SET NX succeeds only for the first sighting within the window.
	return r.client.SetNX(ctx, key, 1, r.window).Result()
}
