package shortener_test

import (
	"context"
	"errors"
	"sync"

	"github.com/serroba/fcc-microservices/internal/shortener"
)

var errMock = errors.New("mock error")

// mockRepository is a scriptable Repository. getByURL results are consumed in
// order; once exhausted, the last entry repeats.
type mockRepository struct {
	mu           sync.Mutex
	getByURL     []lookupResult
	getByCode    lookupResult
	insertErr    error
	inserted     []*shortener.ShortURL
	getByURLHits int
}

type lookupResult struct {
	url *shortener.ShortURL
	err error
}

func (m *mockRepository) GetByCode(_ context.Context, _ shortener.Code) (*shortener.ShortURL, error) {
	return m.getByCode.url, m.getByCode.err
}

func (m *mockRepository) GetByURL(_ context.Context, _ string) (*shortener.ShortURL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.getByURLHits
	if idx >= len(m.getByURL) {
		idx = len(m.getByURL) - 1
	}

	m.getByURLHits++

	r := m.getByURL[idx]

	return r.url, r.err
}

func (m *mockRepository) Insert(_ context.Context, shortURL *shortener.ShortURL) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.inserted = append(m.inserted, shortURL)

	return m.insertErr
}
