package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ArnW0lf/ParaJose/domain/model"
	"github.com/ArnW0lf/ParaJose/domain/repository"
	"github.com/ArnW0lf/ParaJose/infrastructure/retry"
)

const linkedinAPIBaseURL = "https://api.linkedin.com"

// LinkedInPublisher creates a UGC share on the token owner's profile. The
// author URN is resolved from the userinfo endpoint on every publish because
// tokens can be rotated between calls.
type LinkedInPublisher struct {
	accessToken string

	BaseURL string
	client  *http.Client
	policy  retry.Policy
	audit   repository.IAuditSink
}

func NewLinkedInPublisher(accessToken string, audit repository.IAuditSink) *LinkedInPublisher {
	return &LinkedInPublisher{
		accessToken: accessToken,
		BaseURL:     linkedinAPIBaseURL,
		client:      newHTTPClient(),
		policy:      retry.NewPolicy(3, 2*time.Second),
		audit:       audit,
	}
}

func (p *LinkedInPublisher) Platform() model.Platform { return model.PlatformLinkedIn }

func (p *LinkedInPublisher) Publish(ctx context.Context, req model.PublishRequest) model.PublishResult {
	result := model.PublishResult{Platform: model.PlatformLinkedIn, Status: model.StatusError}
	if p.accessToken == "" {
		result.Message = "linkedin access_token not configured"
		return result
	}

	shareID, err := retry.Value(p.policy, func() (string, error) {
		authorURN, err := p.resolveAuthor(ctx)
		if err != nil {
			return "", err
		}
		return p.createShare(ctx, authorURN, req.Text)
	})
	if err != nil {
		result.Message = err.Error()
		return result
	}

	result.Status = model.StatusSuccess
	result.ID = shareID
	result.URL = "https://www.linkedin.com/feed/"
	return result
}

func (p *LinkedInPublisher) resolveAuthor(ctx context.Context) (string, error) {
	endpoint := p.BaseURL + "/v2/userinfo"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	p.setHeaders(httpReq)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("linkedin userinfo request: %w", err)
	}
	body := readBody(resp)
	auditCall(ctx, p.audit, model.PlatformLinkedIn.String(), endpoint, resp.StatusCode, body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("linkedin userinfo returned status %d: %s", resp.StatusCode, body)
	}
	var parsed struct {
		Sub string `json:"sub"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil || parsed.Sub == "" {
		return "", fmt.Errorf("linkedin userinfo response missing sub: %s", body)
	}
	return "urn:li:person:" + parsed.Sub, nil
}

func (p *LinkedInPublisher) createShare(ctx context.Context, authorURN, text string) (string, error) {
	endpoint := p.BaseURL + "/v2/ugcPosts"
	payload := map[string]any{
		"author":         authorURN,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]any{
			"com.linkedin.ugc.ShareContent": map[string]any{
				"shareCommentary":    map[string]any{"text": text},
				"shareMediaCategory": "NONE",
			},
		},
		"visibility": map[string]any{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	p.setHeaders(httpReq)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("linkedin ugcPosts request: %w", err)
	}
	body := readBody(resp)
	auditCall(ctx, p.audit, model.PlatformLinkedIn.String(), endpoint, resp.StatusCode, body)

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("linkedin ugcPosts returned status %d: %s", resp.StatusCode, body)
	}
	if id := resp.Header.Get("X-RestLi-Id"); id != "" {
		return id, nil
	}
	var parsed struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err == nil && parsed.ID != "" {
		return parsed.ID, nil
	}
	// 201 without an identifiable id is still a created share
	return "", nil
}

func (p *LinkedInPublisher) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+p.accessToken)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")
}
