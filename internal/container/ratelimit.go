package container

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/sharelink-go/internal/ratelimit"
	"github.com/serroba/sharelink-go/internal/store"
)

// RateLimitPackage provides the endpoint rate limiter and the per-code
// failed-password attempt limiter, both backed by the shared Redis
// store so limits hold across replicas.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*store.RateLimitRedisStore, error) {
		return store.NewRateLimitRedisStore(do.MustInvoke[*redis.Client](i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (*ratelimit.PolicyLimiter, error) {
		rlStore := do.MustInvoke[*store.RateLimitRedisStore](i)

		return ratelimit.NewPolicyLimiter(rlStore, ratelimit.DefaultPolicy()), nil
	})

	do.Provide(injector, func(i *do.Injector) (*ratelimit.AttemptLimiter, error) {
		options := do.MustInvoke[*Options](i)
		rlStore := do.MustInvoke[*store.RateLimitRedisStore](i)

		return ratelimit.NewAttemptLimiter(
			rlStore,
			int64(options.PasswordMaxFailures),
			time.Duration(options.PasswordFailureWindowMin)*time.Minute,
		), nil
	})
}
