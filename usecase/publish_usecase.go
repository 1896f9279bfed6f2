package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ArnW0lf/ParaJose/domain/dto"
	"github.com/ArnW0lf/ParaJose/domain/model"
	"github.com/ArnW0lf/ParaJose/domain/repository"
	"github.com/ArnW0lf/ParaJose/infrastructure/logger"
)

var ErrPublicationNotFound = errors.New("publication not found")

type IPublishUsecase interface {
	Publish(ctx context.Context, req dto.PublishRequest) (*model.PublishResult, error)
}

type publishUsecase struct {
	publications repository.IPublication
	publishers   map[model.Platform]repository.IPublisher
	notifier     repository.INotifier

	// broadcast pushes the updated publication to live subscribers; nil is fine.
	broadcast func(*model.Publication)
}

func NewPublishUsecase(
	publications repository.IPublication,
	publishers []repository.IPublisher,
	notifier repository.INotifier,
	broadcast func(*model.Publication),
) IPublishUsecase {
	byPlatform := make(map[model.Platform]repository.IPublisher, len(publishers))
	for _, p := range publishers {
		byPlatform[p.Platform()] = p
	}
	return &publishUsecase{
		publications: publications,
		publishers:   byPlatform,
		notifier:     notifier,
		broadcast:    broadcast,
	}
}

// Publish runs one attempt against the draft's platform and records the
// outcome. There is no state gate: re-publishing an already-published payload
// re-runs the publisher and overwrites the stored result, so delivery is
// at-least-once, never exactly-once.
func (u *publishUsecase) Publish(ctx context.Context, req dto.PublishRequest) (*model.PublishResult, error) {
	pub, err := u.publications.GetByID(ctx, req.PublicationID)
	if err != nil {
		return nil, ErrPublicationNotFound
	}

	publisher, ok := u.publishers[pub.Platform]
	if !ok {
		return nil, fmt.Errorf("no publisher registered for platform %s", pub.Platform)
	}

	attempt, err := u.publications.IncrementRetryCount(ctx, pub.ID)
	if err != nil {
		return nil, fmt.Errorf("record publish attempt: %w", err)
	}
	pub.RetryCount = attempt
	logger.GetLogger().
		WithField("publication_id", pub.ID).
		WithField("platform", pub.Platform).
		WithField("attempt", attempt).
		Info("publishing draft")

	result := publisher.Publish(ctx, buildPublishRequest(pub, req))
	u.applyResult(pub, result)

	if err := u.publications.UpdatePublishResult(ctx, pub); err != nil {
		return nil, fmt.Errorf("persist publish outcome: %w", err)
	}
	u.notify(ctx, pub, result)
	if u.broadcast != nil {
		u.broadcast(pub)
	}
	return &result, nil
}

func buildPublishRequest(pub *model.Publication, req dto.PublishRequest) model.PublishRequest {
	out := model.PublishRequest{
		Text:              composeText(pub),
		DestinationNumber: req.WhatsappNumber,
	}
	if req.ImageURL != "" {
		out.ImageURL = req.ImageURL
	} else if pub.ImageURL != nil {
		out.ImageURL = *pub.ImageURL
	}
	if pub.VideoURL != nil {
		out.VideoURL = *pub.VideoURL
	}
	return out
}

// composeText appends hashtags since platforms receive them inline.
func composeText(pub *model.Publication) string {
	if len(pub.Hashtags) == 0 {
		return pub.Text
	}
	tags := make([]string, 0, len(pub.Hashtags))
	for _, tag := range pub.Hashtags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return pub.Text
	}
	return pub.Text + "\n\n" + strings.Join(tags, " ")
}

func (u *publishUsecase) applyResult(pub *model.Publication, result model.PublishResult) {
	switch result.Status {
	case model.StatusSuccess:
		pub.State = model.StatePublished
		now := time.Now().UTC()
		pub.PublishedAt = &now
		pub.LastError = nil
		if result.ID != "" {
			v := result.ID
			pub.ExternalID = &v
		}
		if result.URL != "" {
			v := result.URL
			pub.PublishedURL = &v
		}
	case model.StatusManualAction:
		pub.State = model.StateManual
		pub.LastError = nil
	default:
		pub.State = model.StateFailed
		if result.Message != "" {
			v := result.Message
			pub.LastError = &v
		}
	}
}

func (u *publishUsecase) notify(ctx context.Context, pub *model.Publication, result model.PublishResult) {
	if u.notifier == nil {
		return
	}
	switch result.Status {
	case model.StatusSuccess:
		u.notifier.NotifySuccess(ctx, pub.Platform, pub.PostID, result.ID)
	case model.StatusManualAction:
		u.notifier.NotifyManualAction(ctx, pub.Platform, pub.PostID)
	default:
		u.notifier.NotifyError(ctx, pub.Platform, pub.PostID, result.Message)
	}
}
