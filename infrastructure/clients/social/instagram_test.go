package social

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArnW0lf/ParaJose/domain/model"
)

func TestInstagramPublisher_TwoStepFlow(t *testing.T) {
	var paths []string
	var creationID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/acct1/media":
			assert.Equal(t, "https://img.example/pic.png", r.PostFormValue("image_url"))
			assert.Equal(t, "caption text", r.PostFormValue("caption"))
			w.Write([]byte(`{"id":"container-42"}`))
		case "/acct1/media_publish":
			creationID = r.PostFormValue("creation_id")
			w.Write([]byte(`{"id":"media-99"}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	var waited time.Duration
	p := NewInstagramPublisher("acct1", "token", nil)
	p.BaseURL = srv.URL
	p.Wait = func(d time.Duration) { waited = d }

	result := p.Publish(context.Background(), model.PublishRequest{
		Text:     "caption text",
		ImageURL: "https://img.example/pic.png",
	})

	assert.Equal(t, model.StatusSuccess, result.Status)
	assert.Equal(t, "media-99", result.ID)
	assert.Equal(t, "https://www.instagram.com/p/media-99/", result.URL)
	assert.Equal(t, []string{"/acct1/media", "/acct1/media_publish"}, paths)
	assert.Equal(t, "container-42", creationID, "media_publish must reference the container id")
	assert.Equal(t, instagramProcessingWait, waited)
}

func TestInstagramPublisher_PublishNeverRunsWithoutContainer(t *testing.T) {
	publishCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/acct1/media":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"invalid image"}}`))
		case "/acct1/media_publish":
			publishCalls++
		}
	}))
	defer srv.Close()

	p := NewInstagramPublisher("acct1", "token", nil)
	p.BaseURL = srv.URL
	p.Wait = func(time.Duration) { t.Fatal("must not wait when the container step failed") }
	p.policy.Sleep = func(time.Duration) {}

	result := p.Publish(context.Background(), model.PublishRequest{Text: "x", ImageURL: "https://img.example/p.png"})

	assert.Equal(t, model.StatusError, result.Status)
	assert.Zero(t, publishCalls)
}

func TestInstagramPublisher_MissingImageSkipsNetwork(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { requests++ }))
	defer srv.Close()

	p := NewInstagramPublisher("acct1", "token", nil)
	p.BaseURL = srv.URL

	result := p.Publish(context.Background(), model.PublishRequest{Text: "no image"})

	assert.Equal(t, model.StatusError, result.Status)
	assert.Contains(t, result.Message, "image")
	assert.Zero(t, requests)
}

func TestInstagramPublisher_MissingAccountRequiresManualAction(t *testing.T) {
	p := NewInstagramPublisher("", "", nil)
	result := p.Publish(context.Background(), model.PublishRequest{Text: "x", ImageURL: "https://img.example/p.png"})
	assert.Equal(t, model.StatusManualAction, result.Status)
	assert.Contains(t, result.Message, "not configured")
}
