package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/ArnW0lf/ParaJose/domain/model"
)

// CredentialRepository stores per-platform OAuth credentials using PostgreSQL.
type CredentialRepository struct{ db *sql.DB }

func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) Upsert(ctx context.Context, cred *model.SocialCredential) error {
	now := time.Now().UTC()
	if cred.CreatedAt.IsZero() {
		cred.CreatedAt = now
	}
	cred.UpdatedAt = now
	q := `INSERT INTO social_credentials (platform, access_token, refresh_token, expires_at, created_at, updated_at)
		  VALUES ($1,$2,$3,$4,$5,$6)
		  ON CONFLICT (platform) DO UPDATE SET
			access_token=EXCLUDED.access_token,
			refresh_token=EXCLUDED.refresh_token,
			expires_at=EXCLUDED.expires_at,
			updated_at=EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, q, cred.Platform.String(), cred.AccessToken, cred.RefreshToken, cred.ExpiresAt, cred.CreatedAt, cred.UpdatedAt)
	return err
}

func (r *CredentialRepository) GetByPlatform(ctx context.Context, platform model.Platform) (*model.SocialCredential, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, platform, access_token, refresh_token, expires_at, created_at, updated_at FROM social_credentials WHERE platform=$1`,
		platform.String())
	cred := &model.SocialCredential{}
	var p string
	var exp sql.NullTime
	if err := row.Scan(&cred.ID, &p, &cred.AccessToken, &cred.RefreshToken, &exp, &cred.CreatedAt, &cred.UpdatedAt); err != nil {
		return nil, err
	}
	cred.Platform = model.Platform(p)
	if exp.Valid {
		cred.ExpiresAt = &exp.Time
	}
	return cred, nil
}
