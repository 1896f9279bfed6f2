package persistence

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArnW0lf/ParaJose/domain/model"
)

func TestPublicationRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewPublicationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO publications`)).
		WithArgs(int64(1), "instagram", "caption", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "draft", 0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	pub := &model.Publication{
		PostID:   1,
		Platform: model.PlatformInstagram,
		Text:     "caption",
		Hashtags: []string{"go", "release"},
	}
	err = repository.Create(context.Background(), pub)

	require.NoError(t, err)
	assert.Equal(t, int64(11), pub.ID)
	assert.Equal(t, model.StateDraft, pub.State)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicationRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewPublicationRepository(db)
	now := time.Now().UTC()
	publishedAt := now.Add(-time.Minute)

	rows := sqlmock.NewRows([]string{
		"id", "post_id", "platform", "text_adapted", "hashtags",
		"image_prompt", "video_hook", "image_url", "video_url",
		"state", "external_id", "published_url", "last_error",
		"retry_count", "published_at", "created_at", "updated_at",
	}).AddRow(
		int64(11), int64(1), "facebook", "story", "{go,release}",
		nil, nil, "https://img.example/a.png", nil,
		"published", "fb-9", "https://www.facebook.com/fb-9", nil,
		2, publishedAt, now, now,
	)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT `+publicationColumns+` FROM publications WHERE id=$1`)).
		WithArgs(int64(11)).
		WillReturnRows(rows)

	pub, err := repository.GetByID(context.Background(), 11)

	require.NoError(t, err)
	assert.Equal(t, model.PlatformFacebook, pub.Platform)
	assert.Equal(t, []string{"go", "release"}, pub.Hashtags)
	assert.Nil(t, pub.ImagePrompt)
	require.NotNil(t, pub.ImageURL)
	assert.Equal(t, "https://img.example/a.png", *pub.ImageURL)
	require.NotNil(t, pub.ExternalID)
	assert.Equal(t, "fb-9", *pub.ExternalID)
	require.NotNil(t, pub.PublishedAt)
	assert.Equal(t, 2, pub.RetryCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicationRepository_IncrementRetryCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewPublicationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE publications SET retry_count = retry_count + 1, updated_at=$1 WHERE id=$2 RETURNING retry_count`)).
		WithArgs(sqlmock.AnyArg(), int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"retry_count"}).AddRow(3))

	count, err := repository.IncrementRetryCount(context.Background(), 11)

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicationRepository_UpdatePublishResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewPublicationRepository(db)
	externalID := "fb-9"
	url := "https://www.facebook.com/fb-9"
	publishedAt := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE publications SET state=$1, external_id=$2, published_url=$3, last_error=$4, published_at=$5, updated_at=$6 WHERE id=$7`)).
		WithArgs("published", "fb-9", url, nil, sqlmock.AnyArg(), sqlmock.AnyArg(), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	pub := &model.Publication{
		ID:           11,
		State:        model.StatePublished,
		ExternalID:   &externalID,
		PublishedURL: &url,
		PublishedAt:  &publishedAt,
	}
	err = repository.UpdatePublishResult(context.Background(), pub)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
