package container

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/sharelink-go/internal/handlers"
	"github.com/serroba/sharelink-go/internal/health"
	"github.com/serroba/sharelink-go/internal/middleware"
	"github.com/serroba/sharelink-go/internal/ratelimit"
	"github.com/serroba/sharelink-go/internal/sharelink"
	"go.uber.org/zap"
)

// HTTPPackage provides the router and the configured huma API with all
// routes and middlewares registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)

		api := humachi.New(router, huma.DefaultConfig("Share Link Service", "1.0.0"))

		api.UseMiddleware(middleware.RequestMeta(api))
		api.UseMiddleware(middleware.Auth(api, []byte(options.JWTSecret)))
		api.UseMiddleware(middleware.PolicyRateLimiter(
			api,
			do.MustInvoke[*ratelimit.PolicyLimiter](i),
			ratelimit.NewOperationScopeResolver(),
			logger,
		))

		shareHandler := handlers.NewShareHandler(do.MustInvoke[*sharelink.Service](i), logger)
		handlers.RegisterRoutes(api, shareHandler)

		healthHandler := health.NewHandler(
			health.NewRedisChecker(do.MustInvoke[*redis.Client](i)),
			health.NewPostgresChecker(do.MustInvoke[*pgxpool.Pool](i)),
		)
		health.RegisterRoutes(api, healthHandler)

		return api, nil
	})
}
