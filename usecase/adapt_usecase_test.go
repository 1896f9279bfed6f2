package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArnW0lf/ParaJose/domain/dto"
	"github.com/ArnW0lf/ParaJose/domain/model"
)

const fullModelResponse = `{
	"facebook": {"text": "FB story?", "hashtags": ["story"], "character_count": 9, "tone": "warm", "format": "post"},
	"instagram": {"text": "IG caption", "hashtags": ["insta"], "character_count": 10, "suggested_image_prompt": "sunset over a harbor"},
	"linkedin": {"text": "LI insight", "hashtags": ["leadership"], "character_count": 10, "tone": "professional"},
	"tiktok": {"text": "TT script", "hashtags": ["fyp"], "character_count": 9, "video_hook": "Wait for it", "stock_video_keywords": "harbor sunset"},
	"whatsapp": {"text": "WA message", "hashtags": [], "character_count": 10}
}`

func newAdaptFixture(modelOut string) (IAdaptUsecase, *memPostRepo, *memPublicationRepo, *fakeImageGenerator, *fakeVideoSearcher) {
	posts := &memPostRepo{}
	pubs := &memPublicationRepo{}
	images := &fakeImageGenerator{}
	videos := &fakeVideoSearcher{url: "https://videos.example/harbor.mp4"}
	uc := NewAdaptUsecase(&fakeTextModel{out: modelOut}, NewEnricher(images, videos), posts, pubs)
	return uc, posts, pubs, images, videos
}

func TestAdapt_CreatesDraftPerPlatform(t *testing.T) {
	uc, posts, pubs, _, _ := newAdaptFixture(fullModelResponse)

	resp, err := uc.Adapt(context.Background(), dto.AdaptRequest{Title: "Launch", Body: "We shipped."})

	require.NoError(t, err)
	require.Len(t, posts.posts, 1)
	assert.Equal(t, posts.posts[0].ID, resp.PostID)
	assert.Len(t, resp.Adaptations, 5)
	assert.Len(t, pubs.pubs, 5)
	for _, pub := range pubs.pubs {
		assert.Equal(t, model.StateDraft, pub.State)
		assert.Equal(t, resp.PostID, pub.PostID)
	}
	assert.Equal(t, "FB story?", resp.Adaptations["facebook"].Text)
	assert.Equal(t, []string{"fyp"}, resp.Adaptations["tiktok"].Hashtags)
}

func TestAdapt_EnrichmentPopulatesMedia(t *testing.T) {
	uc, _, _, images, videos := newAdaptFixture(fullModelResponse)

	resp, err := uc.Adapt(context.Background(), dto.AdaptRequest{Title: "t", Body: "b"})

	require.NoError(t, err)
	// Instagram gets a square image from its suggested prompt.
	assert.Equal(t, "https://img.example/1024x1024/sunset over a harbor", resp.Adaptations["instagram"].ImageURL)
	// Facebook inherits the Instagram visual.
	assert.Equal(t, resp.Adaptations["instagram"].ImageURL, resp.Adaptations["facebook"].ImageURL)
	// TikTok gets a portrait cover from its hook and a stock video.
	assert.Equal(t, "https://img.example/720x1280/Wait for it", resp.Adaptations["tiktok"].ImageURL)
	assert.Equal(t, "https://videos.example/harbor.mp4", resp.Adaptations["tiktok"].VideoURL)
	assert.Equal(t, []string{"harbor sunset"}, videos.calls)
	assert.Len(t, images.calls, 2)
}

func TestAdapt_MediaFailureDoesNotFailRequest(t *testing.T) {
	posts := &memPostRepo{}
	pubs := &memPublicationRepo{}
	images := &fakeImageGenerator{err: errors.New("image service down")}
	videos := &fakeVideoSearcher{err: errors.New("video service down")}
	uc := NewAdaptUsecase(&fakeTextModel{out: fullModelResponse}, NewEnricher(images, videos), posts, pubs)

	resp, err := uc.Adapt(context.Background(), dto.AdaptRequest{Title: "t", Body: "b"})

	require.NoError(t, err)
	assert.Len(t, resp.Adaptations, 5)
	assert.Empty(t, resp.Adaptations["instagram"].ImageURL)
	assert.Empty(t, resp.Adaptations["tiktok"].VideoURL)
}

func TestAdapt_TikTokCoverPromptPreferredOverHook(t *testing.T) {
	withCover := `{
		"tiktok": {"text": "TT script", "hashtags": [], "character_count": 9, "video_hook": "Wait for it", "suggested_image_prompt": "neon city vertical", "stock_video_keywords": "harbor sunset"}
	}`
	uc, _, _, _, _ := newAdaptFixture(withCover)

	resp, err := uc.Adapt(context.Background(), dto.AdaptRequest{Title: "t", Body: "b"})

	require.NoError(t, err)
	assert.Equal(t, "https://img.example/720x1280/neon city vertical", resp.Adaptations["tiktok"].ImageURL)
}

func TestAdapt_VideoFailureKeepsImageOnSamePlatform(t *testing.T) {
	posts := &memPostRepo{}
	pubs := &memPublicationRepo{}
	images := &fakeImageGenerator{}
	videos := &fakeVideoSearcher{err: errors.New("video service down")}
	uc := NewAdaptUsecase(&fakeTextModel{out: fullModelResponse}, NewEnricher(images, videos), posts, pubs)

	resp, err := uc.Adapt(context.Background(), dto.AdaptRequest{Title: "t", Body: "b"})

	require.NoError(t, err)
	assert.Equal(t, "https://img.example/720x1280/Wait for it", resp.Adaptations["tiktok"].ImageURL)
	assert.Empty(t, resp.Adaptations["tiktok"].VideoURL)
	assert.Equal(t, "https://img.example/1024x1024/sunset over a harbor", resp.Adaptations["instagram"].ImageURL)
}

func TestAdapt_ModelErrorPersistsNothing(t *testing.T) {
	posts := &memPostRepo{}
	pubs := &memPublicationRepo{}
	uc := NewAdaptUsecase(&fakeTextModel{err: errors.New("quota exceeded")}, NewEnricher(nil, nil), posts, pubs)

	_, err := uc.Adapt(context.Background(), dto.AdaptRequest{Title: "t", Body: "b"})

	require.Error(t, err)
	assert.Empty(t, posts.posts)
	assert.Empty(t, pubs.pubs)
}

func TestAdapt_UnparseableResponsePersistsNothing(t *testing.T) {
	uc, posts, pubs, _, _ := newAdaptFixture("I'm sorry, I cannot produce JSON today.")

	_, err := uc.Adapt(context.Background(), dto.AdaptRequest{Title: "t", Body: "b"})

	require.Error(t, err)
	assert.Empty(t, posts.posts)
	assert.Empty(t, pubs.pubs)
}

func TestAdapt_ToleratesMarkdownFences(t *testing.T) {
	uc, _, pubs, _, _ := newAdaptFixture("```json\n" + fullModelResponse + "\n```")

	resp, err := uc.Adapt(context.Background(), dto.AdaptRequest{Title: "t", Body: "b"})

	require.NoError(t, err)
	assert.Len(t, resp.Adaptations, 5)
	assert.Len(t, pubs.pubs, 5)
}

func TestAdapt_OmittedPlatformIsSkipped(t *testing.T) {
	partial := `{"facebook": {"text": "only one", "hashtags": [], "character_count": 8}}`
	uc, _, pubs, _, _ := newAdaptFixture(partial)

	resp, err := uc.Adapt(context.Background(), dto.AdaptRequest{Title: "t", Body: "b"})

	require.NoError(t, err)
	assert.Len(t, resp.Adaptations, 1)
	assert.Len(t, pubs.pubs, 1)
	assert.Equal(t, model.PlatformFacebook, pubs.pubs[0].Platform)
}

func TestAdapt_BlankInputRejected(t *testing.T) {
	uc, posts, _, _, _ := newAdaptFixture(fullModelResponse)

	_, err := uc.Adapt(context.Background(), dto.AdaptRequest{Title: "  ", Body: ""})

	require.Error(t, err)
	assert.Empty(t, posts.posts)
}

func TestGetPost_IncludesPublications(t *testing.T) {
	uc, posts, pubs, _, _ := newAdaptFixture(fullModelResponse)
	resp, err := uc.Adapt(context.Background(), dto.AdaptRequest{Title: "t", Body: "b"})
	require.NoError(t, err)

	detail, err := uc.GetPost(context.Background(), resp.PostID)

	require.NoError(t, err)
	assert.Equal(t, posts.posts[0].Title, detail.Post.Title)
	assert.Len(t, detail.Publications, len(pubs.pubs))
}

func TestDeletePost_Missing(t *testing.T) {
	uc, _, _, _, _ := newAdaptFixture(fullModelResponse)
	err := uc.DeletePost(context.Background(), 404)
	assert.Error(t, err)
}
