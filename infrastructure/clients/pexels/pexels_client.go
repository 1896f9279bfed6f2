// Package pexels searches the Pexels stock video library.
package pexels

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-querystring/query"
)

const defaultBaseURL = "https://api.pexels.com"

type Client struct {
	apiKey string

	BaseURL string
	client  *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		BaseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type searchOptions struct {
	Query       string `url:"query"`
	Orientation string `url:"orientation,omitempty"`
	PerPage     int    `url:"per_page,omitempty"`
}

type searchResponse struct {
	Videos []video `json:"videos"`
}

type video struct {
	VideoFiles []videoFile `json:"video_files"`
}

type videoFile struct {
	Quality  string `json:"quality"`
	FileType string `json:"file_type"`
	Link     string `json:"link"`
}

// SearchVideo returns the best matching stock video URL for the keywords, or
// an empty URL when nothing matches. HD MP4 renditions win over everything
// else; otherwise the first file of the first hit is used.
func (c *Client) SearchVideo(ctx context.Context, keywords, orientation string) (string, error) {
	if c.apiKey == "" || keywords == "" {
		return "", nil
	}

	opts := searchOptions{Query: keywords, Orientation: orientation, PerPage: 1}
	qs, err := query.Values(opts)
	if err != nil {
		return "", err
	}

	endpoint := c.BaseURL + "/videos/search?" + qs.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("pexels search request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pexels search returned status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode pexels response: %w", err)
	}
	if len(parsed.Videos) == 0 {
		return "", nil
	}
	return pickFile(parsed.Videos[0].VideoFiles), nil
}

func pickFile(files []videoFile) string {
	for _, f := range files {
		if f.Quality == "hd" && f.FileType == "video/mp4" {
			return f.Link
		}
	}
	if len(files) > 0 {
		return files[0].Link
	}
	return ""
}
