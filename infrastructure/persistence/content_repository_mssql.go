package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ArnW0lf/ParaJose/domain/model"
)

// MSSQL variants of the content repositories for the production (Azure SQL)
// path. Hashtags are stored JSON-encoded since SQL Server has no array type.

type PostRepositoryMSSQL struct{ db *sql.DB }

func NewPostRepositoryMSSQL(db *sql.DB) *PostRepositoryMSSQL { return &PostRepositoryMSSQL{db: db} }

type PublicationRepositoryMSSQL struct{ db *sql.DB }

func NewPublicationRepositoryMSSQL(db *sql.DB) *PublicationRepositoryMSSQL {
	return &PublicationRepositoryMSSQL{db: db}
}

// EnsureContentSchemaMSSQL creates the posts and publications tables for SQL Server.
func EnsureContentSchemaMSSQL(db *sql.DB) error {
	ddls := []string{
		`IF NOT EXISTS (SELECT * FROM sys.objects WHERE object_id = OBJECT_ID(N'dbo.posts') AND type in (N'U'))
BEGIN
    CREATE TABLE dbo.[posts] (
        id BIGINT IDENTITY(1,1) PRIMARY KEY,
        title NVARCHAR(MAX) NOT NULL,
        body NVARCHAR(MAX) NOT NULL,
        created_at DATETIME2 NOT NULL
    );
END`,
		`IF NOT EXISTS (SELECT * FROM sys.objects WHERE object_id = OBJECT_ID(N'dbo.publications') AND type in (N'U'))
BEGIN
    CREATE TABLE dbo.[publications] (
        id BIGINT IDENTITY(1,1) PRIMARY KEY,
        post_id BIGINT NOT NULL,
        platform NVARCHAR(64) NOT NULL,
        text_adapted NVARCHAR(MAX) NOT NULL,
        hashtags NVARCHAR(MAX) NOT NULL DEFAULT '[]',
        image_prompt NVARCHAR(MAX) NULL,
        video_hook NVARCHAR(MAX) NULL,
        image_url NVARCHAR(MAX) NULL,
        video_url NVARCHAR(MAX) NULL,
        state NVARCHAR(32) NOT NULL DEFAULT 'draft',
        external_id NVARCHAR(255) NULL,
        published_url NVARCHAR(MAX) NULL,
        last_error NVARCHAR(MAX) NULL,
        retry_count INT NOT NULL DEFAULT 0,
        published_at DATETIME2 NULL,
        created_at DATETIME2 NOT NULL,
        updated_at DATETIME2 NOT NULL,
        CONSTRAINT FK_publications_posts FOREIGN KEY (post_id) REFERENCES dbo.[posts](id) ON DELETE CASCADE
    );
    CREATE INDEX IX_publications_post_id ON dbo.[publications](post_id);
END`,
	}
	for _, ddl := range ddls {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("create content schema (mssql): %w", err)
		}
	}
	return nil
}

func (r *PostRepositoryMSSQL) Create(ctx context.Context, post *model.Post) error {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	q := `INSERT INTO dbo.[posts] (title, body, created_at) OUTPUT INSERTED.id VALUES (@p1, @p2, @p3)`
	return r.db.QueryRowContext(ctx, q, post.Title, post.Body, post.CreatedAt).Scan(&post.ID)
}

func (r *PostRepositoryMSSQL) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, title, body, created_at FROM dbo.[posts] WHERE id=@p1`, id)
	post := &model.Post{}
	if err := row.Scan(&post.ID, &post.Title, &post.Body, &post.CreatedAt); err != nil {
		return nil, err
	}
	return post, nil
}

func (r *PostRepositoryMSSQL) List(ctx context.Context) ([]*model.Post, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, body, created_at FROM dbo.[posts] ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*model.Post
	for rows.Next() {
		post := &model.Post{}
		if err := rows.Scan(&post.ID, &post.Title, &post.Body, &post.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, post)
	}
	return list, rows.Err()
}

func (r *PostRepositoryMSSQL) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dbo.[posts] WHERE id=@p1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PublicationRepositoryMSSQL) Create(ctx context.Context, pub *model.Publication) error {
	now := time.Now().UTC()
	if pub.CreatedAt.IsZero() {
		pub.CreatedAt = now
	}
	pub.UpdatedAt = now
	if pub.State == "" {
		pub.State = model.StateDraft
	}
	tags, err := json.Marshal(pub.Hashtags)
	if err != nil {
		return err
	}
	q := `INSERT INTO dbo.[publications] (post_id, platform, text_adapted, hashtags, image_prompt, video_hook, image_url, video_url, state, retry_count, created_at, updated_at)
OUTPUT INSERTED.id
VALUES (@p1, @p2, @p3, @p4, @p5, @p6, @p7, @p8, @p9, @p10, @p11, @p12)`
	return r.db.QueryRowContext(ctx, q,
		pub.PostID, pub.Platform.String(), pub.Text, string(tags),
		nullString(pub.ImagePrompt), nullString(pub.VideoHook), nullString(pub.ImageURL), nullString(pub.VideoURL),
		pub.State, pub.RetryCount, pub.CreatedAt, pub.UpdatedAt,
	).Scan(&pub.ID)
}

func (r *PublicationRepositoryMSSQL) GetByID(ctx context.Context, id int64) (*model.Publication, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, post_id, platform, text_adapted, hashtags, image_prompt, video_hook, image_url, video_url, state, external_id, published_url, last_error, retry_count, published_at, created_at, updated_at
		 FROM dbo.[publications] WHERE id=@p1`, id)
	return scanPublicationMSSQL(row)
}

func (r *PublicationRepositoryMSSQL) ListByPostID(ctx context.Context, postID int64) ([]*model.Publication, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, post_id, platform, text_adapted, hashtags, image_prompt, video_hook, image_url, video_url, state, external_id, published_url, last_error, retry_count, published_at, created_at, updated_at
		 FROM dbo.[publications] WHERE post_id=@p1 ORDER BY id ASC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*model.Publication
	for rows.Next() {
		pub, err := scanPublicationMSSQL(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, pub)
	}
	return list, rows.Err()
}

func (r *PublicationRepositoryMSSQL) IncrementRetryCount(ctx context.Context, id int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`UPDATE dbo.[publications] SET retry_count = retry_count + 1, updated_at=@p1 OUTPUT INSERTED.retry_count WHERE id=@p2`,
		time.Now().UTC(), id,
	).Scan(&count)
	return count, err
}

func (r *PublicationRepositoryMSSQL) UpdatePublishResult(ctx context.Context, pub *model.Publication) error {
	pub.UpdatedAt = time.Now().UTC()
	var publishedAt sql.NullTime
	if pub.PublishedAt != nil {
		publishedAt.Valid = true
		publishedAt.Time = *pub.PublishedAt
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE dbo.[publications] SET state=@p1, external_id=@p2, published_url=@p3, last_error=@p4, published_at=@p5, updated_at=@p6 WHERE id=@p7`,
		pub.State, nullString(pub.ExternalID), nullString(pub.PublishedURL), nullString(pub.LastError), publishedAt, pub.UpdatedAt, pub.ID,
	)
	return err
}

func scanPublicationMSSQL(row rowScanner) (*model.Publication, error) {
	pub := &model.Publication{}
	var platform, tags string
	var imagePrompt, videoHook, imageURL, videoURL, externalID, publishedURL, lastError sql.NullString
	var publishedAt sql.NullTime
	if err := row.Scan(
		&pub.ID, &pub.PostID, &platform, &pub.Text, &tags,
		&imagePrompt, &videoHook, &imageURL, &videoURL,
		&pub.State, &externalID, &publishedURL, &lastError,
		&pub.RetryCount, &publishedAt, &pub.CreatedAt, &pub.UpdatedAt,
	); err != nil {
		return nil, err
	}
	pub.Platform = model.Platform(platform)
	if err := json.Unmarshal([]byte(tags), &pub.Hashtags); err != nil {
		pub.Hashtags = nil
	}
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

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{Valid: true, String: *s}
}
