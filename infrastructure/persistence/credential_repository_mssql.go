package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ArnW0lf/ParaJose/domain/model"
)

type CredentialRepositoryMSSQL struct{ db *sql.DB }

func NewCredentialRepositoryMSSQL(db *sql.DB) *CredentialRepositoryMSSQL {
	return &CredentialRepositoryMSSQL{db: db}
}

// EnsureCredentialSchemaMSSQL creates the social_credentials table for SQL Server.
func EnsureCredentialSchemaMSSQL(db *sql.DB) error {
	ddl := `IF NOT EXISTS (SELECT * FROM sys.objects WHERE object_id = OBJECT_ID(N'dbo.social_credentials') AND type in (N'U'))
BEGIN
    CREATE TABLE dbo.[social_credentials] (
        id BIGINT IDENTITY(1,1) PRIMARY KEY,
        platform NVARCHAR(64) NOT NULL,
        access_token NVARCHAR(MAX) NOT NULL,
        refresh_token NVARCHAR(MAX) NOT NULL DEFAULT '',
        expires_at DATETIME2 NULL,
        created_at DATETIME2 NOT NULL,
        updated_at DATETIME2 NOT NULL
    );
    CREATE UNIQUE INDEX UX_social_credentials_platform ON dbo.[social_credentials](platform);
END`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create social_credentials (mssql): %w", err)
	}
	return nil
}

func (r *CredentialRepositoryMSSQL) Upsert(ctx context.Context, cred *model.SocialCredential) error {
	now := time.Now().UTC()
	if cred.CreatedAt.IsZero() {
		cred.CreatedAt = now
	}
	cred.UpdatedAt = now
	var exp sql.NullTime
	if cred.ExpiresAt != nil {
		exp.Valid = true
		exp.Time = *cred.ExpiresAt
	}
	q := `MERGE dbo.[social_credentials] AS target
USING (SELECT @p1 AS platform) AS src
ON target.platform = src.platform
WHEN MATCHED THEN UPDATE SET access_token=@p2, refresh_token=@p3, expires_at=@p4, updated_at=@p6
WHEN NOT MATCHED THEN INSERT (platform, access_token, refresh_token, expires_at, created_at, updated_at)
VALUES (@p1, @p2, @p3, @p4, @p5, @p6);`
	_, err := r.db.ExecContext(ctx, q, cred.Platform.String(), cred.AccessToken, cred.RefreshToken, exp, cred.CreatedAt, cred.UpdatedAt)
	return err
}

func (r *CredentialRepositoryMSSQL) GetByPlatform(ctx context.Context, platform model.Platform) (*model.SocialCredential, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, platform, access_token, refresh_token, expires_at, created_at, updated_at FROM dbo.[social_credentials] WHERE platform=@p1`,
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
