package servicebus

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"

	"github.com/ArnW0lf/ParaJose/infrastructure/logger"
)

// IEventBus is send-only: consumers of the queue live outside this service.
type IEventBus interface {
	SendMessage(message []byte) error
}

// EventBus mirrors publish lifecycle events onto an Azure Service Bus queue
// for deployments running on Azure infrastructure.
type EventBus struct {
	AzservicebusClient *azservicebus.Client
	QueueName          string
}

func NewEventBus(azServiceBusClient *azservicebus.Client, queueName string) IEventBus {
	return &EventBus{AzservicebusClient: azServiceBusClient, QueueName: queueName}
}

func (b *EventBus) SendMessage(message []byte) error {
	sender, err := b.AzservicebusClient.NewSender(b.QueueName, nil)
	if err != nil {
		logger.GetLogger().
			WithField("error", err).
			Error("Error while making new sender service bus.")
		return err
	}
	defer func(sender *azservicebus.Sender, ctx context.Context) {
		err := sender.Close(ctx)
		if err != nil {
			logger.GetLogger().
				WithField("error", err).
				Error("Error while closing sender.")
		}
	}(sender, context.Background())

	sbMessage := &azservicebus.Message{
		Body: message,
	}
	err = sender.SendMessage(context.Background(), sbMessage, nil)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while sending message.")
		return err
	}

	return nil
}
