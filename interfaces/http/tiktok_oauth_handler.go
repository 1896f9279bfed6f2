package http

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArnW0lf/ParaJose/domain/model"
	"github.com/ArnW0lf/ParaJose/domain/repository"
	"github.com/ArnW0lf/ParaJose/infrastructure/cache"
	"github.com/ArnW0lf/ParaJose/infrastructure/clients/tiktok"
	"github.com/ArnW0lf/ParaJose/infrastructure/logger"
)

type ITikTokOAuthHandler interface {
	GetAuthURL(ctx *gin.Context)
	Callback(ctx *gin.Context)
	TokenStatus(ctx *gin.Context)
}

type tikTokOAuthHandler struct {
	oauth       *tiktok.OAuthClient
	verifiers   cache.IVerifierStore
	credentials repository.ICredential
}

func NewTikTokOAuthHandler(oauth *tiktok.OAuthClient, verifiers cache.IVerifierStore, credentials repository.ICredential) ITikTokOAuthHandler {
	return &tikTokOAuthHandler{oauth: oauth, verifiers: verifiers, credentials: credentials}
}

func randomState() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// GetAuthURL starts the PKCE flow: generates a verifier, stashes it keyed by
// state, and returns the URL the user must approve in a browser.
func (h *tikTokOAuthHandler) GetAuthURL(c *gin.Context) {
	if !h.oauth.Configured() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tiktok oauth not configured"})
		return
	}
	verifier, err := tiktok.NewCodeVerifier()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	state := randomState()
	if err := h.verifiers.Save(c.Request.Context(), state, verifier); err != nil {
		logger.GetLogger().WithField("error", err).Error("failed to store pkce verifier")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start authorization flow"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"auth_url": h.oauth.BuildAuthURL(state, verifier), "state": state})
}

// Callback redeems the authorization code with the stored verifier and
// persists the resulting token pair.
func (h *tikTokOAuthHandler) Callback(c *gin.Context) {
	lg := logger.GetLogger()
	code := c.Query("code")
	state := c.Query("state")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code"})
		return
	}
	verifier, err := h.verifiers.Take(c.Request.Context(), state)
	if err != nil {
		if errors.Is(err, cache.ErrStateNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired state"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := h.oauth.ExchangeCode(c.Request.Context(), code, verifier)
	if err != nil {
		lg.WithField("error", err.Error()).Warn("tiktok code exchange failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	cred := &model.SocialCredential{
		Platform:     model.PlatformTikTok,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if token.ExpiresIn > 0 {
		expiresAt := time.Now().UTC().Add(time.Duration(token.ExpiresIn) * time.Second)
		cred.ExpiresAt = &expiresAt
	}
	if err := h.credentials.Upsert(c.Request.Context(), cred); err != nil {
		lg.WithField("error", err.Error()).Error("failed to persist tiktok credential")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store credential"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"connected": true, "open_id": token.OpenID, "scope": token.Scope})
}

// TokenStatus reports whether a TikTok account is connected without ever
// echoing the token itself.
func (h *tikTokOAuthHandler) TokenStatus(c *gin.Context) {
	cred, err := h.credentials.GetByPlatform(c.Request.Context(), model.PlatformTikTok)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusOK, gin.H{"connected": false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	resp := gin.H{"connected": cred.AccessToken != "", "updated_at": cred.UpdatedAt}
	if cred.ExpiresAt != nil {
		resp["expires_at"] = cred.ExpiresAt
		resp["expired"] = time.Now().After(*cred.ExpiresAt)
	}
	c.JSON(http.StatusOK, resp)
}
