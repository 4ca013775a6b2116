package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/fcc-microservices/internal/shortener"
)

const pgUniqueViolation = "23505"

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
// It expects the short_urls table from deploy/schema.sql.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed URL store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Insert(ctx context.Context, shortURL *shortener.ShortURL) error {
	query := `
		INSERT INTO short_urls (code, original_url, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := p.pool.Exec(ctx, query,
		string(shortURL.Code),
		shortURL.OriginalURL,
		shortURL.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: %s", shortener.ErrDuplicateKey, pgErr.ConstraintName)
		}

		return err
	}

	return nil
}

func (p *PostgresStore) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	query := `
		SELECT code, original_url, created_at
		FROM short_urls
		WHERE code = $1
	`

	return p.queryOne(ctx, query, string(code))
}

func (p *PostgresStore) GetByURL(ctx context.Context, originalURL string) (*shortener.ShortURL, error) {
	query := `
		SELECT code, original_url, created_at
		FROM short_urls
		WHERE original_url = $1
	`

	return p.queryOne(ctx, query, originalURL)
}

func (p *PostgresStore) queryOne(ctx context.Context, query string, arg string) (*shortener.ShortURL, error) {
	var (
		url  shortener.ShortURL
		code string
	)

	err := p.pool.QueryRow(ctx, query, arg).Scan(&code, &url.OriginalURL, &url.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	url.Code = shortener.Code(code)

	return &url, nil
}

// Ping checks connectivity for health reporting.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}
