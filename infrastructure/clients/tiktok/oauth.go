// Package tiktok implements the TikTok OAuth authorization-code flow with
// PKCE (RFC 7636, S256 method).
package tiktok

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ArnW0lf/ParaJose/domain/model"
)

const (
	authorizeURL = "https://www.tiktok.com/v2/auth/authorize/"
	tokenURL     = "https://open.tiktokapis.com/v2/oauth/token/"

	// Scopes requested on authorize; direct posting scopes are excluded
	// until the app passes TikTok's audit.
	oauthScopes = "user.info.basic,user.info.profile,user.info.stats,video.list"

	verifierLength = 128
	// RFC 7636 unreserved characters.
	verifierCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"
)

// OAuthClient drives the authorize/exchange handshake for one registered app.
type OAuthClient struct {
	clientKey    string
	clientSecret string
	redirectURI  string

	TokenURL string
	client   *http.Client
}

func NewOAuthClient(clientKey, clientSecret, redirectURI string) *OAuthClient {
	return &OAuthClient{
		clientKey:    clientKey,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		TokenURL:     tokenURL,
		client:       &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *OAuthClient) Configured() bool {
	return c.clientKey != "" && c.clientSecret != "" && c.redirectURI != ""
}

// NewCodeVerifier returns a fresh 128-character PKCE code verifier.
func NewCodeVerifier() (string, error) {
	raw := make([]byte, verifierLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate code verifier: %w", err)
	}
	out := make([]byte, verifierLength)
	for i, b := range raw {
		out[i] = verifierCharset[int(b)%len(verifierCharset)]
	}
	return string(out), nil
}

// ChallengeS256 derives the code challenge from a verifier per the S256 method.
func ChallengeS256(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// BuildAuthURL composes the user-facing authorization URL for a given CSRF
// state and code verifier.
func (c *OAuthClient) BuildAuthURL(state, verifier string) string {
	q := url.Values{}
	q.Set("client_key", c.clientKey)
	q.Set("response_type", "code")
	q.Set("scope", oauthScopes)
	q.Set("redirect_uri", c.redirectURI)
	q.Set("state", state)
	q.Set("code_challenge", ChallengeS256(verifier))
	q.Set("code_challenge_method", "S256")
	return authorizeURL + "?" + q.Encode()
}

// ExchangeCode redeems an authorization code plus its verifier for tokens.
func (c *OAuthClient) ExchangeCode(ctx context.Context, code, verifier string) (*model.TokenResponse, error) {
	form := url.Values{}
	form.Set("client_key", c.clientKey)
	form.Set("client_secret", c.clientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", c.redirectURI)
	form.Set("code_verifier", verifier)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tiktok token request: %w", err)
	}
	defer resp.Body.Close()

	var token model.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("decode tiktok token response: %w", err)
	}
	if token.Error != "" {
		return nil, fmt.Errorf("tiktok token exchange failed: %s: %s", token.Error, token.ErrorDescription)
	}
	if resp.StatusCode != http.StatusOK || token.AccessToken == "" {
		return nil, fmt.Errorf("tiktok token endpoint returned status %d without a token", resp.StatusCode)
	}
	return &token, nil
}
