package container

import (
	"net/http"

	"code.cloudfoundry.org/clock"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/samber/do"
	"github.com/serroba/fcc-microservices/internal/analytics"
	"github.com/serroba/fcc-microservices/internal/handlers"
	"github.com/serroba/fcc-microservices/internal/health"
	"github.com/serroba/fcc-microservices/internal/messaging"
	"github.com/serroba/fcc-microservices/internal/metrics"
	"github.com/serroba/fcc-microservices/internal/middleware"
	"github.com/serroba/fcc-microservices/internal/shortener"
	"go.uber.org/zap"
)

const apiVersion = "1.0.0"

// HTTPPackage provides the router and the huma API with every route registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*metrics.HTTP, error) {
		return metrics.New(), nil
	})

	do.Provide(injector, func(i *do.Injector) (*chi.Mux, error) {
		router := chi.NewMux()
		router.Use(
			chimw.RequestID,
			chimw.RealIP,
			chimw.Recoverer,
			cors.Handler(cors.Options{
				AllowedOrigins: []string{"*"},
				AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
				AllowedHeaders: []string{"*"},
			}),
			middleware.Metrics(do.MustInvoke[*metrics.HTTP](i)),
		)

		router.Method(http.MethodGet, "/metrics", do.MustInvoke[*metrics.HTTP](i).Handler())

		return router, nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)
		clk := do.MustInvoke[clock.Clock](i)
		service := do.MustInvoke[*shortener.Service](i)
		publisher := do.MustInvoke[*messaging.PublisherGroup](i).Publisher()

		api := humachi.New(router, handlers.NewAPIConfig("FCC Microservices", apiVersion))
		api.UseMiddleware(middleware.RequestMeta(api))

		urlHandler := handlers.NewURLHandler(
			service,
			opts.PublicBaseURL(),
			clk,
			messaging.NewPublishFunc[analytics.URLCreatedEvent](publisher, analytics.TopicURLCreated),
			messaging.NewPublishFunc[analytics.URLAccessedEvent](publisher, analytics.TopicURLAccessed),
			logger.Named("shortener"),
		)

		handlers.RegisterRoutes(api, urlHandler, handlers.NewTimestampHandler(clk))
		health.RegisterRoutes(api, health.NewHandler(healthCheckers(i, opts)))

		return api, nil
	})
}

func healthCheckers(i *do.Injector, opts *Options) map[string]health.Checker {
	checkers := make(map[string]health.Checker)

	if backend := do.MustInvoke[*Backend](i); backend.Checker != nil {
		checkers[opts.Store] = backend.Checker
	}

	if opts.Events {
		checkers["events"] = health.NewRedisChecker(do.MustInvoke[*RedisClient](i).UniversalClient)
	}

	return checkers
}
