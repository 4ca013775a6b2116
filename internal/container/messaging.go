package container

import (
	"github.com/samber/do"
	"github.com/serroba/fcc-microservices/internal/analytics"
	analyticsstore "github.com/serroba/fcc-microservices/internal/analytics/store"
	"github.com/serroba/fcc-microservices/internal/messaging"
	"go.uber.org/zap"
)

const consumerGroupName = "analytics"

// PublisherGroupPackage provides the event publisher. With events disabled
// messages go to an in-process channel nobody reads.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		wmLogger := messaging.NewZapLogger(logger)

		if !opts.Events {
			return messaging.NewPublisherGroup(messaging.NewInProcessPubSub(wmLogger)), nil
		}

		client := do.MustInvoke[*RedisClient](i)

		publisher, err := messaging.NewRedisPublisher(client.UniversalClient, wmLogger)
		if err != nil {
			return nil, err
		}

		return messaging.NewPublisherGroup(publisher), nil
	})
}

// ConsumerGroupPackage provides the analytics consumers reading from Redis streams.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		logger := do.MustInvoke[*zap.Logger](i)
		client := do.MustInvoke[*RedisClient](i)

		subscriber, err := messaging.NewRedisSubscriber(
			client.UniversalClient,
			consumerGroupName,
			messaging.NewZapLogger(logger),
		)
		if err != nil {
			return nil, err
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		analytics.RegisterConsumers(group, subscriber, analyticsstore.NewLog(logger), logger)

		return group, nil
	})
}
