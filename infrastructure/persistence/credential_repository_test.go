package persistence

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArnW0lf/ParaJose/domain/model"
)

func TestCredentialRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewCredentialRepository(db)
	expiresAt := time.Now().UTC().Add(24 * time.Hour)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO social_credentials`)).
		WithArgs("tiktok", "act.1", "rft.1", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repository.Upsert(context.Background(), &model.SocialCredential{
		Platform:     model.PlatformTikTok,
		AccessToken:  "act.1",
		RefreshToken: "rft.1",
		ExpiresAt:    &expiresAt,
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialRepository_GetByPlatform(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewCredentialRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, platform, access_token, refresh_token, expires_at, created_at, updated_at FROM social_credentials WHERE platform=$1`)).
		WithArgs("tiktok").
		WillReturnRows(sqlmock.NewRows([]string{"id", "platform", "access_token", "refresh_token", "expires_at", "created_at", "updated_at"}).
			AddRow(int64(1), "tiktok", "act.1", "rft.1", nil, now, now))

	cred, err := repository.GetByPlatform(context.Background(), model.PlatformTikTok)

	require.NoError(t, err)
	assert.Equal(t, model.PlatformTikTok, cred.Platform)
	assert.Equal(t, "act.1", cred.AccessToken)
	assert.Nil(t, cred.ExpiresAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialRepository_GetByPlatform_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewCredentialRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, platform`)).
		WithArgs("linkedin").
		WillReturnError(sql.ErrNoRows)

	_, err = repository.GetByPlatform(context.Background(), model.PlatformLinkedIn)

	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
