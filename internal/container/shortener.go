package container

import (
	"context"
	"fmt"
	"net"

	"code.cloudfoundry.org/clock"
	"github.com/samber/do"
	"github.com/serroba/fcc-microservices/internal/health"
	"github.com/serroba/fcc-microservices/internal/shortener"
	"github.com/serroba/fcc-microservices/internal/store"
)

// Backend is the selected URL store together with its health probe.
type Backend struct {
	Repository shortener.Repository
	Checker    health.Checker
}

// RepositoryPackage provides the URL store chosen by Options.Store. Only the
// selected backend's connection is opened.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*Backend, error) {
		opts := do.MustInvoke[*Options](i)

		switch opts.Store {
		case StoreMemory:
			return &Backend{Repository: store.NewMemoryStore()}, nil
		case StorePostgres:
			pool, err := do.Invoke[*PostgresPool](i)
			if err != nil {
				return nil, fmt.Errorf("postgres: %w", err)
			}

			pgStore := store.NewPostgresStore(pool.Pool)

			return &Backend{Repository: pgStore, Checker: pgStore}, nil
		case StoreSQLite:
			db, err := do.Invoke[*SQLiteDB](i)
			if err != nil {
				return nil, fmt.Errorf("sqlite: %w", err)
			}

			sqliteStore, err := store.NewSQLiteStore(context.Background(), db.DB)
			if err != nil {
				return nil, fmt.Errorf("sqlite: %w", err)
			}

			return &Backend{Repository: sqliteStore, Checker: sqliteStore}, nil
		case StoreRedis:
			client := do.MustInvoke[*RedisClient](i)

			return &Backend{
				Repository: store.NewRedisStore(client.UniversalClient),
				Checker:    health.NewRedisChecker(client.UniversalClient),
			}, nil
		default:
			return nil, fmt.Errorf("unknown store %q", opts.Store)
		}
	})
}

// ShortenerPackage provides the shortener service.
func ShortenerPackage(injector *do.Injector) {
	do.ProvideValue[clock.Clock](injector, clock.NewClock())

	do.Provide(injector, func(i *do.Injector) (*shortener.Service, error) {
		opts := do.MustInvoke[*Options](i)
		backend := do.MustInvoke[*Backend](i)

		generator, err := shortener.NewCodeGenerator(opts.CodeFormat, opts.CodeLength)
		if err != nil {
			return nil, err
		}

		validator := shortener.NewValidator(net.DefaultResolver, opts.LookupTimeout())

		return shortener.NewService(backend.Repository, validator, generator, do.MustInvoke[clock.Clock](i)), nil
	})
}
