package shortener

import (
	"context"
	"errors"
	"fmt"

	"code.cloudfoundry.org/clock"
)

// URLValidator normalizes raw input or rejects it with ErrInvalidURL.
type URLValidator interface {
	Validate(ctx context.Context, rawURL string) (string, error)
}

// Service implements the shorten and resolve operations on top of a Repository.
// It holds no mutable state; the store's uniqueness constraints serialize
// concurrent writers.
type Service struct {
	store        Repository
	validator    URLValidator
	generateCode CodeGenerator
	clock        clock.Clock
}

// NewService creates a shortener service.
func NewService(store Repository, validator URLValidator, generator CodeGenerator, clk clock.Clock) *Service {
	return &Service{
		store:        store,
		validator:    validator,
		generateCode: generator,
		clock:        clk,
	}
}

// Shorten returns the short URL for rawURL, creating it on first submission.
// Repeated submissions of the same normalized URL return the same code.
func (s *Service) Shorten(ctx context.Context, rawURL string) (ShortenResult, error) {
	normalizedURL, err := s.validator.Validate(ctx, rawURL)
	if err != nil {
		return ShortenResult{}, err
	}

	existing, err := s.store.GetByURL(ctx, normalizedURL)
	if err == nil {
		return ShortenResult{ShortURL: existing}, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return ShortenResult{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	shortURL := &ShortURL{
		Code:        Code(s.generateCode()),
		OriginalURL: normalizedURL,
		CreatedAt:   s.clock.Now(),
	}

	err = s.store.Insert(ctx, shortURL)
	if err == nil {
		return ShortenResult{ShortURL: shortURL, Created: true}, nil
	}

	if errors.Is(err, ErrDuplicateKey) {
		return s.readWinner(ctx, normalizedURL, err)
	}

	return ShortenResult{}, fmt.Errorf("%w: %w", ErrPersistence, err)
}

// readWinner re-reads the record after a lost insert race. If the URL is
// still absent the conflict was on the code, which the caller may retry.
func (s *Service) readWinner(ctx context.Context, normalizedURL string, insertErr error) (ShortenResult, error) {
	winner, err := s.store.GetByURL(ctx, normalizedURL)
	if err == nil {
		return ShortenResult{ShortURL: winner}, nil
	}

	if errors.Is(err, ErrNotFound) {
		return ShortenResult{}, fmt.Errorf("%w: %w", ErrPersistence, insertErr)
	}

	return ShortenResult{}, fmt.Errorf("%w: %w", ErrPersistence, err)
}

// Resolve returns the record for code, or ErrNotFound.
func (s *Service) Resolve(ctx context.Context, code Code) (*ShortURL, error) {
	shortURL, err := s.store.GetByCode(ctx, code)
	if err == nil {
		return shortURL, nil
	}

	if errors.Is(err, ErrNotFound) {
		return nil, err
	}

	return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
}
