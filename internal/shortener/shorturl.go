package shortener

import "time"

// Code represents a short URL code.
type Code string

// ShortURL represents a shortened URL entity.
// OriginalURL holds the normalized form and is unique across the store, as is Code.
type ShortURL struct {
	Code        Code
	OriginalURL string
	CreatedAt   time.Time
}

// ShortenResult is the outcome of a successful Shorten call.
type ShortenResult struct {
	ShortURL *ShortURL
	// Created is false when an existing record for the URL was returned.
	Created bool
}
