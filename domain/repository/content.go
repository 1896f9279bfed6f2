package repository

import (
	"context"

	"github.com/ArnW0lf/ParaJose/domain/model"
)

// IPost persists seed content items.
type IPost interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	List(ctx context.Context) ([]*model.Post, error)
	Delete(ctx context.Context, id int64) error
}

// IPublication persists per-platform adapted payloads and their lifecycle state.
type IPublication interface {
	Create(ctx context.Context, pub *model.Publication) error
	GetByID(ctx context.Context, id int64) (*model.Publication, error)
	ListByPostID(ctx context.Context, postID int64) ([]*model.Publication, error)
	IncrementRetryCount(ctx context.Context, id int64) (int, error)
	UpdatePublishResult(ctx context.Context, pub *model.Publication) error
}

// ICredential stores per-platform OAuth credentials (last writer wins).
type ICredential interface {
	Upsert(ctx context.Context, cred *model.SocialCredential) error
	GetByPlatform(ctx context.Context, platform model.Platform) (*model.SocialCredential, error)
}
