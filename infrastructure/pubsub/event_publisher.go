package pubsub

import (
	"context"

	"cloud.google.com/go/pubsub"

	"github.com/ArnW0lf/ParaJose/infrastructure/logger"
)

// IEventPublisher is send-only: subscriptions belong to downstream consumers.
type IEventPublisher interface {
	Publish(ctx context.Context, topic string, payload []byte) (string, error)
}

// EventPublisher emits publish lifecycle events to a Google Cloud Pub/Sub
// topic so downstream consumers (analytics, alerting) can react to them.
type EventPublisher struct {
	PubSubClient *pubsub.Client
}

func NewEventPublisher(pubSubClient *pubsub.Client) IEventPublisher {
	return &EventPublisher{
		PubSubClient: pubSubClient,
	}
}

func (p *EventPublisher) Publish(
	ctx context.Context,
	topicName string,
	payload []byte,
) (string, error) {
	msg := &pubsub.Message{
		Data: payload,
	}

	topic := p.PubSubClient.Topic(topicName)

	// Create the topic if it doesn't exist.
	exists, err := topic.Exists(ctx)
	if err != nil {
		return "", err
	}
	if !exists {
		logger.GetLogger().WithField("topic", topicName).Info("Topic doesn't exist - creating it")
		_, err = p.PubSubClient.CreateTopic(ctx, topicName)
		if err != nil {
			return "", err
		}
	}

	serverId, err := topic.Publish(ctx, msg).Get(ctx)
	if err != nil {
		return "", err
	}

	logger.GetLogger().WithField("server ID", serverId).Info("Message published")
	return serverId, nil
}
