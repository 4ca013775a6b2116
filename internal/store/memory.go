package store

import (
	"context"
	"sync"

	"github.com/serroba/fcc-microservices/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Repository.
type MemoryStore struct {
	mu     sync.RWMutex
	byCode map[shortener.Code]shortener.ShortURL
	byURL  map[string]shortener.Code
}

// NewMemoryStore creates a new in-memory URL store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byCode: make(map[shortener.Code]shortener.ShortURL),
		byURL:  make(map[string]shortener.Code),
	}
}

func (m *MemoryStore) Insert(_ context.Context, shortURL *shortener.ShortURL) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byCode[shortURL.Code]; ok {
		return shortener.ErrDuplicateKey
	}

	if _, ok := m.byURL[shortURL.OriginalURL]; ok {
		return shortener.ErrDuplicateKey
	}

	m.byCode[shortURL.Code] = *shortURL
	m.byURL[shortURL.OriginalURL] = shortURL.Code

	return nil
}

func (m *MemoryStore) GetByCode(_ context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	shortURL, ok := m.byCode[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return &shortURL, nil
}

func (m *MemoryStore) GetByURL(_ context.Context, originalURL string) (*shortener.ShortURL, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	code, ok := m.byURL[originalURL]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	shortURL := m.byCode[code]

	return &shortURL, nil
}

// Len reports the number of stored records.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.byCode)
}
