package social

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"github.com/ArnW0lf/ParaJose/domain/model"
	"github.com/ArnW0lf/ParaJose/domain/repository"
	"github.com/ArnW0lf/ParaJose/infrastructure/logger"
)

const tikTokOpenAPIBaseURL = "https://open.tiktokapis.com"

// TikTokPublisher never posts directly: the Content Posting API is gated
// behind an app audit, so the outcome is always manual_action_required. When
// a connected account exists its creator info is fetched to enrich the
// message shown to the operator.
type TikTokPublisher struct {
	credentials repository.ICredential

	BaseURL string
	audit   repository.IAuditSink
}

func NewTikTokPublisher(credentials repository.ICredential, audit repository.IAuditSink) *TikTokPublisher {
	return &TikTokPublisher{
		credentials: credentials,
		BaseURL:     tikTokOpenAPIBaseURL,
		audit:       audit,
	}
}

func (p *TikTokPublisher) Platform() model.Platform { return model.PlatformTikTok }

func (p *TikTokPublisher) Publish(ctx context.Context, req model.PublishRequest) model.PublishResult {
	result := model.PublishResult{Platform: model.PlatformTikTok, Status: model.StatusManualAction}

	var parts []string
	parts = append(parts, "TikTok direct publishing is not enabled for this app; upload the prepared content manually")
	if req.VideoURL != "" {
		parts = append(parts, "suggested video: "+req.VideoURL)
	}

	if p.credentials != nil {
		if nickname := p.creatorNickname(ctx); nickname != "" {
			parts = append(parts, "connected account: "+nickname)
		}
	}
	result.Message = strings.Join(parts, ". ")
	return result
}

// creatorNickname queries the creator_info endpoint with the stored token.
// Any failure is non-fatal; the publish outcome stays manual either way.
func (p *TikTokPublisher) creatorNickname(ctx context.Context) string {
	cred, err := p.credentials.GetByPlatform(ctx, model.PlatformTikTok)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.GetLogger().WithField("error", err).Warn("failed to load tiktok credential")
		}
		return ""
	}
	if cred == nil || cred.AccessToken == "" {
		return ""
	}

	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cred.AccessToken}))
	client.Timeout = defaultHTTPTimeout

	endpoint := p.BaseURL + "/v2/post/publish/creator_info/query/"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return ""
	}
	httpReq.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := client.Do(httpReq)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("tiktok creator_info request failed")
		return ""
	}
	body := readBody(resp)
	auditCall(ctx, p.audit, model.PlatformTikTok.String(), endpoint, resp.StatusCode, body)

	if resp.StatusCode != http.StatusOK {
		return ""
	}
	var parsed struct {
		Data struct {
			CreatorNickname string `json:"creator_nickname"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return ""
	}
	return parsed.Data.CreatorNickname
}
