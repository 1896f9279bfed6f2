package repository

import (
	"context"

	"github.com/ArnW0lf/ParaJose/domain/model"
)

// ITextModel is the generative model collaborator. Generate must return the
// model's raw text for a prompt requesting strict structured JSON.
type ITextModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// IImageGenerator produces an image URL for a text prompt; an empty URL with a
// nil error means no image is available (non-fatal).
type IImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string, width, height int) (string, error)
}

// IVideoSearcher finds a stock video URL matching keywords; an empty URL with
// a nil error means nothing matched (non-fatal).
type IVideoSearcher interface {
	SearchVideo(ctx context.Context, keywords, orientation string) (string, error)
}

// IPublisher encapsulates one platform's wire protocol. Publish performs the
// outbound calls but never mutates local state; the caller persists the result.
type IPublisher interface {
	Platform() model.Platform
	Publish(ctx context.Context, req model.PublishRequest) model.PublishResult
}

// IAuditSink records every outbound platform API call for observability.
type IAuditSink interface {
	LogCall(ctx context.Context, platform, endpoint string, statusCode int, responseBody string)
}

// INotifier receives one notification per publish attempt outcome.
type INotifier interface {
	NotifySuccess(ctx context.Context, platform model.Platform, postID int64, externalID string)
	NotifyError(ctx context.Context, platform model.Platform, postID int64, detail string)
	NotifyManualAction(ctx context.Context, platform model.Platform, postID int64)
}
