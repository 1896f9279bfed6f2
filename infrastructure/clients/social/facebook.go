package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ArnW0lf/ParaJose/domain/model"
	"github.com/ArnW0lf/ParaJose/domain/repository"
	"github.com/ArnW0lf/ParaJose/infrastructure/retry"
)

const facebookGraphBaseURL = "https://graph.facebook.com/v19.0"

// FacebookPublisher posts text to a Facebook Page feed via the Graph API.
type FacebookPublisher struct {
	pageID      string
	accessToken string

	BaseURL string
	client  *http.Client
	policy  retry.Policy
	audit   repository.IAuditSink
}

func NewFacebookPublisher(pageID, accessToken string, audit repository.IAuditSink) *FacebookPublisher {
	return &FacebookPublisher{
		pageID:      pageID,
		accessToken: accessToken,
		BaseURL:     facebookGraphBaseURL,
		client:      newHTTPClient(),
		policy:      retry.NewPolicy(3, 2*time.Second),
		audit:       audit,
	}
}

func (p *FacebookPublisher) Platform() model.Platform { return model.PlatformFacebook }

func (p *FacebookPublisher) Publish(ctx context.Context, req model.PublishRequest) model.PublishResult {
	result := model.PublishResult{Platform: model.PlatformFacebook, Status: model.StatusError}
	if p.pageID == "" || p.accessToken == "" {
		result.Message = "facebook page_id or access_token not configured"
		return result
	}
	if strings.TrimSpace(req.Text) == "" {
		result.Message = "nothing to publish: empty text"
		return result
	}

	endpoint := fmt.Sprintf("%s/%s/feed", p.BaseURL, p.pageID)
	postID, err := retry.Value(p.policy, func() (string, error) {
		return p.postToFeed(ctx, endpoint, req.Text)
	})
	if err != nil {
		result.Message = err.Error()
		return result
	}

	result.Status = model.StatusSuccess
	result.ID = postID
	result.URL = "https://www.facebook.com/" + postID
	return result
}

func (p *FacebookPublisher) postToFeed(ctx context.Context, endpoint, message string) (string, error) {
	form := url.Values{}
	form.Set("message", message)
	form.Set("access_token", p.accessToken)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("facebook feed request: %w", err)
	}
	body := readBody(resp)
	auditCall(ctx, p.audit, model.PlatformFacebook.String(), endpoint, resp.StatusCode, body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("facebook feed returned status %d: %s", resp.StatusCode, body)
	}
	var parsed struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil || parsed.ID == "" {
		return "", fmt.Errorf("facebook feed response missing post id: %s", body)
	}
	return parsed.ID, nil
}
