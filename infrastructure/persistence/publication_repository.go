package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/ArnW0lf/ParaJose/domain/model"

	"github.com/lib/pq"
)

// PublicationRepository persists platform adaptations using PostgreSQL.
type PublicationRepository struct{ db *sql.DB }

func NewPublicationRepository(db *sql.DB) *PublicationRepository {
	return &PublicationRepository{db: db}
}

const publicationColumns = `id, post_id, platform, text_adapted, hashtags, image_prompt, video_hook, image_url, video_url, state, external_id, published_url, last_error, retry_count, published_at, created_at, updated_at`

func (r *PublicationRepository) Create(ctx context.Context, pub *model.Publication) error {
	now := time.Now().UTC()
	if pub.CreatedAt.IsZero() {
		pub.CreatedAt = now
	}
	pub.UpdatedAt = now
	if pub.State == "" {
		pub.State = model.StateDraft
	}
	q := `INSERT INTO publications (post_id, platform, text_adapted, hashtags, image_prompt, video_hook, image_url, video_url, state, retry_count, created_at, updated_at)
		  VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12) RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		pub.PostID, pub.Platform.String(), pub.Text, pq.Array(pub.Hashtags),
		pub.ImagePrompt, pub.VideoHook, pub.ImageURL, pub.VideoURL,
		pub.State, pub.RetryCount, pub.CreatedAt, pub.UpdatedAt,
	).Scan(&pub.ID)
}

func (r *PublicationRepository) GetByID(ctx context.Context, id int64) (*model.Publication, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+publicationColumns+` FROM publications WHERE id=$1`, id)
	return scanPublication(row)
}

func (r *PublicationRepository) ListByPostID(ctx context.Context, postID int64) ([]*model.Publication, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+publicationColumns+` FROM publications WHERE post_id=$1 ORDER BY id ASC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*model.Publication
	for rows.Next() {
		pub, err := scanPublication(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, pub)
	}
	return list, rows.Err()
}

// IncrementRetryCount bumps the attempt counter exactly once and returns the
// new value.
func (r *PublicationRepository) IncrementRetryCount(ctx context.Context, id int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`UPDATE publications SET retry_count = retry_count + 1, updated_at=$1 WHERE id=$2 RETURNING retry_count`,
		time.Now().UTC(), id,
	).Scan(&count)
	return count, err
}

func (r *PublicationRepository) UpdatePublishResult(ctx context.Context, pub *model.Publication) error {
	pub.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`UPDATE publications SET state=$1, external_id=$2, published_url=$3, last_error=$4, published_at=$5, updated_at=$6 WHERE id=$7`,
		pub.State, pub.ExternalID, pub.PublishedURL, pub.LastError, pub.PublishedAt, pub.UpdatedAt, pub.ID,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPublication(row rowScanner) (*model.Publication, error) {
	pub := &model.Publication{}
	var platform string
	var hashtags pq.StringArray
	var imagePrompt, videoHook, imageURL, videoURL, externalID, publishedURL, lastError sql.NullString
	var publishedAt sql.NullTime
	if err := row.Scan(
		&pub.ID, &pub.PostID, &platform, &pub.Text, &hashtags,
		&imagePrompt, &videoHook, &imageURL, &videoURL,
		&pub.State, &externalID, &publishedURL, &lastError,
		&pub.RetryCount, &publishedAt, &pub.CreatedAt, &pub.UpdatedAt,
	); err != nil {
		return nil, err
	}
	pub.Platform = model.Platform(platform)
	pub.Hashtags = []string(hashtags)
	if imagePrompt.Valid {
		v := imagePrompt.String
		pub.ImagePrompt = &v
	}
	if videoHook.Valid {
		v := videoHook.String
		pub.VideoHook = &v
	}
	if imageURL.Valid {
		v := imageURL.String
		pub.ImageURL = &v
	}
	if videoURL.Valid {
		v := videoURL.String
		pub.VideoURL = &v
	}
	if externalID.Valid {
		v := externalID.String
		pub.ExternalID = &v
	}
	if publishedURL.Valid {
		v := publishedURL.String
		pub.PublishedURL = &v
	}
	if lastError.Valid {
		v := lastError.String
		pub.LastError = &v
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		pub.PublishedAt = &t
	}
	return pub, nil
}
