// Package pollinations generates image URLs for the Pollinations service,
// which renders the image on first fetch of the URL.
package pollinations

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
)

const imageBaseURL = "https://image.pollinations.ai/prompt/"

type Client struct{}

func NewClient() *Client { return &Client{} }

// GenerateImage composes the prompt URL; no network call is made because the
// service renders lazily. A random seed keeps repeated prompts from
// collapsing onto a cached render.
func (c *Client) GenerateImage(_ context.Context, prompt string, width, height int) (string, error) {
	if prompt == "" {
		return "", nil
	}
	seed := make([]byte, 4)
	if _, err := rand.Read(seed); err != nil {
		return "", fmt.Errorf("generate image seed: %w", err)
	}
	return fmt.Sprintf("%s%s?width=%d&height=%d&nologo=true&seed=%s",
		imageBaseURL, url.PathEscape(prompt), width, height, hex.EncodeToString(seed)), nil
}
