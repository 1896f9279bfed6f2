package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// EnsureContentSchema creates the content tables if they do not exist.
// Safe to call at startup.
func EnsureContentSchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ddls := []string{
		`CREATE TABLE IF NOT EXISTS posts (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS publications (
			id BIGSERIAL PRIMARY KEY,
			post_id BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			platform TEXT NOT NULL,
			text_adapted TEXT NOT NULL,
			hashtags TEXT[] NOT NULL DEFAULT '{}',
			image_prompt TEXT,
			video_hook TEXT,
			image_url TEXT,
			video_url TEXT,
			state TEXT NOT NULL DEFAULT 'draft',
			external_id TEXT,
			published_url TEXT,
			last_error TEXT,
			retry_count INT NOT NULL DEFAULT 0,
			published_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_post_id ON publications(post_id)`,
		`CREATE TABLE IF NOT EXISTS social_credentials (
			id BIGSERIAL PRIMARY KEY,
			platform TEXT NOT NULL UNIQUE,
			access_token TEXT NOT NULL,
			refresh_token TEXT NOT NULL DEFAULT '',
			expires_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, ddl := range ddls {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("ensuring content schema: %w", err)
		}
	}
	return nil
}
