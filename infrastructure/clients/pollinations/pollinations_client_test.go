package pollinations

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateImage_URLShape(t *testing.T) {
	c := NewClient()

	got, err := c.GenerateImage(context.Background(), "a red fox in the snow", 1024, 1024)
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "image.pollinations.ai", u.Host)
	assert.True(t, strings.HasPrefix(u.Path, "/prompt/"))
	assert.NotContains(t, u.EscapedPath(), " ", "prompt must be escaped")

	q := u.Query()
	assert.Equal(t, "1024", q.Get("width"))
	assert.Equal(t, "1024", q.Get("height"))
	assert.Equal(t, "true", q.Get("nologo"))
	assert.Len(t, q.Get("seed"), 8)
}

func TestGenerateImage_RandomSeed(t *testing.T) {
	c := NewClient()
	a, err := c.GenerateImage(context.Background(), "same prompt", 720, 1280)
	require.NoError(t, err)
	b, err := c.GenerateImage(context.Background(), "same prompt", 720, 1280)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestGenerateImage_EmptyPrompt(t *testing.T) {
	c := NewClient()
	got, err := c.GenerateImage(context.Background(), "", 100, 100)
	require.NoError(t, err)
	assert.Empty(t, got)
}
