package model

import "time"

// Publication lifecycle states.
const (
	StateDraft     = "draft"
	StatePublished = "published"
	StateManual    = "manual"
	StateFailed    = "failed"
)

// Post is the immutable seed content an adaptation request starts from.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

// Publication is one platform-specific adaptation derived from a Post.
// It is mutated only through publish-attempt transitions.
type Publication struct {
	ID            int64      `json:"id"`
	PostID        int64      `json:"post_id"`
	Platform      Platform   `json:"platform"`
	Text          string     `json:"text"`
	Hashtags      []string   `json:"hashtags"`
	ImagePrompt   *string    `json:"image_prompt,omitempty"`
	VideoHook     *string    `json:"video_hook,omitempty"`
	ImageURL      *string    `json:"image_url,omitempty"`
	VideoURL      *string    `json:"video_url,omitempty"`
	State         string     `json:"state"`
	ExternalID    *string    `json:"external_id,omitempty"`
	PublishedURL  *string    `json:"published_url,omitempty"`
	LastError     *string    `json:"last_error,omitempty"`
	RetryCount    int        `json:"retry_count"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime;index"`
}

// PostWithPublications groups a seed post with its derived records for read APIs.
type PostWithPublications struct {
	Post         Post           `json:"post"`
	Publications []*Publication `json:"publications"`
}
