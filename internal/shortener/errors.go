package shortener

import "errors"

var (
	// ErrInvalidURL is returned for malformed input or hosts that do not resolve.
	ErrInvalidURL = errors.New("invalid url")

	// ErrNotFound is returned when no record matches a code or URL.
	ErrNotFound = errors.New("short url not found")

	// ErrDuplicateKey is returned by a Repository when an insert violates
	// the uniqueness of either the code or the original URL.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrPersistence wraps store failures other than not-found lookups.
	ErrPersistence = errors.New("persistence failure")
)
