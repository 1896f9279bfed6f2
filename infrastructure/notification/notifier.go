// Package notification fans publish outcomes out to the configured event
// transports. Logging always happens; Pub/Sub and Service Bus are optional
// and failures there never affect the publish result.
package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ArnW0lf/ParaJose/domain/model"
	"github.com/ArnW0lf/ParaJose/infrastructure/logger"
	"github.com/ArnW0lf/ParaJose/infrastructure/pubsub"
	"github.com/ArnW0lf/ParaJose/infrastructure/servicebus"
)

type publishEvent struct {
	Type       string `json:"type"`
	Platform   string `json:"platform"`
	PostID     int64  `json:"post_id"`
	ExternalID string `json:"external_id,omitempty"`
	Detail     string `json:"detail,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

type Notifier struct {
	events pubsub.IEventPublisher
	topic  string
	bus    servicebus.IEventBus
}

// NewNotifier wires the optional transports; pass nil for any that are not
// configured in this deployment.
func NewNotifier(events pubsub.IEventPublisher, topic string, bus servicebus.IEventBus) *Notifier {
	return &Notifier{events: events, topic: topic, bus: bus}
}

func (n *Notifier) NotifySuccess(ctx context.Context, platform model.Platform, postID int64, externalID string) {
	logger.GetLogger().
		WithField("platform", platform).
		WithField("post_id", postID).
		WithField("external_id", externalID).
		Info("publication succeeded")
	n.emit(ctx, publishEvent{Type: "publish.success", Platform: platform.String(), PostID: postID, ExternalID: externalID})
}

func (n *Notifier) NotifyError(ctx context.Context, platform model.Platform, postID int64, detail string) {
	logger.GetLogger().
		WithField("platform", platform).
		WithField("post_id", postID).
		WithField("detail", detail).
		Error("publication failed")
	n.emit(ctx, publishEvent{Type: "publish.error", Platform: platform.String(), PostID: postID, Detail: detail})
}

func (n *Notifier) NotifyManualAction(ctx context.Context, platform model.Platform, postID int64) {
	logger.GetLogger().
		WithField("platform", platform).
		WithField("post_id", postID).
		Info("publication requires manual action")
	n.emit(ctx, publishEvent{Type: "publish.manual_action", Platform: platform.String(), PostID: postID})
}

func (n *Notifier) emit(ctx context.Context, evt publishEvent) {
	if n == nil || (n.events == nil && n.bus == nil) {
		return
	}
	evt.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	payload, err := json.Marshal(evt)
	if err != nil {
		return
	}
	if n.events != nil {
		if _, err := n.events.Publish(ctx, n.topic, payload); err != nil {
			logger.GetLogger().WithField("error", err).Warn("failed to publish event to pubsub")
		}
	}
	if n.bus != nil {
		if err := n.bus.SendMessage(payload); err != nil {
			logger.GetLogger().WithField("error", err).Warn("failed to publish event to service bus")
		}
	}
}
