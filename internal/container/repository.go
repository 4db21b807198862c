package container

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/sharelink-go/internal/analytics"
	"github.com/serroba/sharelink-go/internal/messaging"
	"github.com/serroba/sharelink-go/internal/password"
	"github.com/serroba/sharelink-go/internal/plan"
	"github.com/serroba/sharelink-go/internal/ratelimit"
	"github.com/serroba/sharelink-go/internal/sharelink"
	"github.com/serroba/sharelink-go/internal/storage"
	"github.com/serroba/sharelink-go/internal/store"
	"go.uber.org/zap"
)

// RepositoryPackage provides the share link repository, the visit
// registry and the assembled share link service.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (sharelink.Repository, error) {
		return store.NewPostgres(do.MustInvoke[*pgxpool.Pool](i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (sharelink.VisitRegistry, error) {
		options := do.MustInvoke[*Options](i)
		window := time.Duration(options.DedupWindowHours) * time.Hour

		return store.NewRedisVisits(do.MustInvoke[*redis.Client](i), window), nil
	})

	do.Provide(injector, func(i *do.Injector) (*sharelink.Service, error) {
		options := do.MustInvoke[*Options](i)

		generate, err := sharelink.NewCodeGenerator(options.CodeLength)
		if err != nil {
			return nil, err
		}

		s3 := do.MustInvoke[*storage.S3Store](i)
		maxTTL := time.Duration(options.MaxTTLDays) * 24 * time.Hour

		return sharelink.NewService(sharelink.Config{
			Repo:            do.MustInvoke[sharelink.Repository](i),
			Visits:          do.MustInvoke[sharelink.VisitRegistry](i),
			Guard:           password.NewGuard(),
			Gate:            do.MustInvoke[*plan.Gate](i),
			Files:           s3,
			Issuer:          s3,
			Expiry:          sharelink.NewExpiryPolicy(maxTTL),
			Generate:        generate,
			Attempts:        do.MustInvoke[*ratelimit.AttemptLimiter](i),
			PublishCreated:  do.MustInvoke[messaging.Publish[analytics.LinkCreatedEvent]](i),
			PublishAccessed: do.MustInvoke[messaging.Publish[analytics.LinkAccessedEvent]](i),
			BaseURL:         options.BaseURL,
			Logger:          do.MustInvoke[*zap.Logger](i),
		}), nil
	})
}
