package container

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/fcc-microservices/internal/store"
	"github.com/serroba/fcc-microservices/internal/tracing"
	"go.uber.org/zap"
)

const connectTimeout = 5 * time.Second

// RedisClient closes the shared client on injector shutdown.
type RedisClient struct {
	redis.UniversalClient
}

func (c *RedisClient) Shutdown() error {
	return c.Close()
}

// PostgresPool closes the pool on injector shutdown.
type PostgresPool struct {
	*pgxpool.Pool
}

func (p *PostgresPool) Shutdown() error {
	p.Close()

	return nil
}

// SQLiteDB closes the database on injector shutdown.
type SQLiteDB struct {
	*sql.DB
}

func (d *SQLiteDB) Shutdown() error {
	return d.Close()
}

// RedisPackage provides the Redis client used by the redis store, the health
// check and the event streams.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*RedisClient, error) {
		opts := do.MustInvoke[*Options](i)

		client := redis.NewClient(&redis.Options{
			Addr: opts.RedisAddr,
		})

		return &RedisClient{UniversalClient: client}, nil
	})
}

// PostgresPackage provides the pgx pool. It fails fast when the database is unreachable.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*PostgresPool, error) {
		opts := do.MustInvoke[*Options](i)

		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		pool, err := pgxpool.New(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()

			return nil, err
		}

		return &PostgresPool{Pool: pool}, nil
	})
}

// SQLitePackage provides the sqlite database handle.
func SQLitePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*SQLiteDB, error) {
		opts := do.MustInvoke[*Options](i)

		db, err := store.OpenSQLite(opts.SQLitePath)
		if err != nil {
			return nil, err
		}

		return &SQLiteDB{DB: db}, nil
	})
}

// TracingPackage provides the tracer provider, a no-op without an OTLP endpoint.
func TracingPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*tracing.Provider, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		provider, err := tracing.Init(context.Background(), opts.OTLPEndpoint, serviceName)
		if err != nil {
			return nil, err
		}

		if provider.Enabled() {
			logger.Info("tracing enabled", zap.String("endpoint", opts.OTLPEndpoint))
		}

		return provider, nil
	})
}
