package analytics

import "context"

// Store records analytics events. Events are delivered at least once, so a
// redelivered message may reach the store twice; a returned error nacks the
// message for redelivery.
type Store interface {
	SaveURLCreated(ctx context.Context, event *URLCreatedEvent) error
	SaveURLAccessed(ctx context.Context, event *URLAccessedEvent) error
}
