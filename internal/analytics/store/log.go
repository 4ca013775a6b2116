package store

import (
	"context"
	"sync"

	"github.com/serroba/fcc-microservices/internal/analytics"
	"go.uber.org/zap"
)

// Log records analytics events as structured log lines and keeps per-code
// visit counters for the lifetime of the process.
type Log struct {
	logger *zap.Logger

	mu     sync.Mutex
	visits map[string]int
}

// NewLog creates a log-backed analytics store.
func NewLog(logger *zap.Logger) *Log {
	return &Log{
		logger: logger,
		visits: make(map[string]int),
	}
}

func (l *Log) SaveURLCreated(_ context.Context, event *analytics.URLCreatedEvent) error {
	l.logger.Info("url created",
		zap.String("code", event.Code),
		zap.String("originalUrl", event.OriginalURL),
		zap.Time("createdAt", event.CreatedAt),
		zap.String("clientIp", event.ClientIP),
	)

	return nil
}

func (l *Log) SaveURLAccessed(_ context.Context, event *analytics.URLAccessedEvent) error {
	l.mu.Lock()
	l.visits[event.Code]++
	visits := l.visits[event.Code]
	l.mu.Unlock()

	l.logger.Info("url accessed",
		zap.String("code", event.Code),
		zap.Time("accessedAt", event.AccessedAt),
		zap.String("referrer", event.Referrer),
		zap.String("userAgent", event.UserAgent),
		zap.Int("visits", visits),
	)

	return nil
}

// Visits returns how many access events were recorded for code.
func (l *Log) Visits(code string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.visits[code]
}
