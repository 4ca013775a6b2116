package analytics

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/fcc-microservices/internal/messaging"
	"go.uber.org/zap"
)

// RegisterConsumers adds one consumer per analytics topic to group, each
// writing to store.
func RegisterConsumers(
	group *messaging.ConsumerGroup,
	subscriber message.Subscriber,
	store Store,
	logger *zap.Logger,
) {
	group.Add(messaging.NewConsumer(subscriber, TopicURLCreated, store.SaveURLCreated, logger))
	group.Add(messaging.NewConsumer(subscriber, TopicURLAccessed, store.SaveURLAccessed, logger))
}
