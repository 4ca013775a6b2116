package handlers_test

import (
	"context"
	"errors"
	"net"

	"github.com/serroba/fcc-microservices/internal/analytics"
	"github.com/serroba/fcc-microservices/internal/messaging"
	"github.com/serroba/fcc-microservices/internal/shortener"
)

var errMock = errors.New("mock error")

const testURL = "https://example.com"

// mockService is a test double for URLService.
type mockService struct {
	shortenResult shortener.ShortenResult
	shortenErr    error
	resolveResult *shortener.ShortURL
	resolveErr    error
	shortenedURLs []string
}

func (m *mockService) Shorten(_ context.Context, rawURL string) (shortener.ShortenResult, error) {
	m.shortenedURLs = append(m.shortenedURLs, rawURL)

	return m.shortenResult, m.shortenErr
}

func (m *mockService) Resolve(_ context.Context, _ shortener.Code) (*shortener.ShortURL, error) {
	return m.resolveResult, m.resolveErr
}

// staticResolver resolves every host except those in unknown.
type staticResolver struct {
	unknown map[string]bool
}

func (r staticResolver) LookupHost(_ context.Context, host string) ([]string, error) {
	if r.unknown[host] {
		return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
	}

	return []string{"93.184.216.34"}, nil
}

// recordingPublisher captures published events.
type recordingPublisher[T any] struct {
	events []*T
	err    error
}

func (r *recordingPublisher[T]) publish() messaging.Publish[T] {
	return func(_ context.Context, event *T) error {
		r.events = append(r.events, event)

		return r.err
	}
}

type publishers struct {
	created  *recordingPublisher[analytics.URLCreatedEvent]
	accessed *recordingPublisher[analytics.URLAccessedEvent]
}

func newPublishers(err error) publishers {
	return publishers{
		created:  &recordingPublisher[analytics.URLCreatedEvent]{err: err},
		accessed: &recordingPublisher[analytics.URLAccessedEvent]{err: err},
	}
}
