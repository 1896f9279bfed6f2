package pexels

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchVideo_PrefersHDMP4(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/videos/search", r.URL.Path)
		assert.Equal(t, "api-key-1", r.Header.Get("Authorization"))
		q := r.URL.Query()
		assert.Equal(t, "city sunset", q.Get("query"))
		assert.Equal(t, "portrait", q.Get("orientation"))
		assert.Equal(t, "1", q.Get("per_page"))
		w.Write([]byte(`{"videos":[{"video_files":[
			{"quality":"sd","file_type":"video/mp4","link":"https://v.example/sd.mp4"},
			{"quality":"hd","file_type":"video/webm","link":"https://v.example/hd.webm"},
			{"quality":"hd","file_type":"video/mp4","link":"https://v.example/hd.mp4"}
		]}]}`))
	}))
	defer srv.Close()

	c := NewClient("api-key-1")
	c.BaseURL = srv.URL

	got, err := c.SearchVideo(context.Background(), "city sunset", "portrait")

	require.NoError(t, err)
	assert.Equal(t, "https://v.example/hd.mp4", got)
}

func TestSearchVideo_FallsBackToFirstFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"videos":[{"video_files":[
			{"quality":"sd","file_type":"video/webm","link":"https://v.example/first.webm"},
			{"quality":"sd","file_type":"video/mp4","link":"https://v.example/second.mp4"}
		]}]}`))
	}))
	defer srv.Close()

	c := NewClient("key")
	c.BaseURL = srv.URL

	got, err := c.SearchVideo(context.Background(), "anything", "")

	require.NoError(t, err)
	assert.Equal(t, "https://v.example/first.webm", got)
}

func TestSearchVideo_NoMatchesReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"videos":[]}`))
	}))
	defer srv.Close()

	c := NewClient("key")
	c.BaseURL = srv.URL

	got, err := c.SearchVideo(context.Background(), "nothing matches this", "")

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchVideo_NoKeyIsNoop(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { requests++ }))
	defer srv.Close()

	c := NewClient("")
	c.BaseURL = srv.URL

	got, err := c.SearchVideo(context.Background(), "keywords", "")

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, requests)
}

func TestSearchVideo_HTTPErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("key")
	c.BaseURL = srv.URL

	_, err := c.SearchVideo(context.Background(), "busy", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestPickFile_Empty(t *testing.T) {
	assert.Empty(t, pickFile(nil))
}
