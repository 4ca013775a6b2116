package shortener

import "context"

// Repository persists short URLs. Implementations enforce uniqueness of both
// Code and OriginalURL and report violations with ErrDuplicateKey.
type Repository interface {
	// GetByCode returns ErrNotFound if the code was never issued.
	GetByCode(ctx context.Context, code Code) (*ShortURL, error)

	// GetByURL looks a record up by its normalized original URL.
	// Returns ErrNotFound if no mapping exists.
	GetByURL(ctx context.Context, originalURL string) (*ShortURL, error)

	Insert(ctx context.Context, shortURL *ShortURL) error
}
