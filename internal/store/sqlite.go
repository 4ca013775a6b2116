package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/serroba/fcc-microservices/internal/shortener"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS short_urls (
		code         TEXT PRIMARY KEY,
		original_url TEXT NOT NULL UNIQUE,
		created_at   TIMESTAMP NOT NULL
	)
`

// SQLiteStore is a SQLite implementation of shortener.Repository.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates the short_urls table if needed and returns the store.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// OpenSQLite opens the database file at path with the sqlite3 driver.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// A single connection keeps ":memory:" databases shared across queries.
	db.SetMaxOpenConns(1)

	return db, nil
}

func (s *SQLiteStore) Insert(ctx context.Context, shortURL *shortener.ShortURL) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO short_urls (code, original_url, created_at) VALUES (?, ?, ?)",
		string(shortURL.Code), shortURL.OriginalURL, shortURL.CreatedAt.UTC(),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) &&
			(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
				sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
			return fmt.Errorf("%w: %s", shortener.ErrDuplicateKey, sqliteErr.Error())
		}

		return err
	}

	return nil
}

func (s *SQLiteStore) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	return s.queryOne(ctx,
		"SELECT code, original_url, created_at FROM short_urls WHERE code = ?",
		string(code))
}

func (s *SQLiteStore) GetByURL(ctx context.Context, originalURL string) (*shortener.ShortURL, error) {
	return s.queryOne(ctx,
		"SELECT code, original_url, created_at FROM short_urls WHERE original_url = ?",
		originalURL)
}

func (s *SQLiteStore) queryOne(ctx context.Context, query string, arg string) (*shortener.ShortURL, error) {
	var (
		url  shortener.ShortURL
		code string
	)

	err := s.db.QueryRowContext(ctx, query, arg).Scan(&code, &url.OriginalURL, &url.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	url.Code = shortener.Code(code)

	return &url, nil
}

// Ping checks connectivity for health reporting.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
