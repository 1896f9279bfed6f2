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

// Instagram requires the media container to finish server-side processing
// before media_publish will accept it.
const instagramProcessingWait = 25 * time.Second

// InstagramPublisher runs the Graph API two-step flow: create a media
// container from a public image URL, wait for processing, then publish it.
type InstagramPublisher struct {
	accountID   string
	accessToken string

	BaseURL string
	// Wait is swappable for tests; nil means time.Sleep.
	Wait   func(time.Duration)
	client *http.Client
	policy retry.Policy
	audit  repository.IAuditSink
}

func NewInstagramPublisher(accountID, accessToken string, audit repository.IAuditSink) *InstagramPublisher {
	return &InstagramPublisher{
		accountID:   accountID,
		accessToken: accessToken,
		BaseURL:     facebookGraphBaseURL,
		client:      newHTTPClient(),
		policy:      retry.NewPolicy(2, 3*time.Second),
		audit:       audit,
	}
}

func (p *InstagramPublisher) Platform() model.Platform { return model.PlatformInstagram }

func (p *InstagramPublisher) Publish(ctx context.Context, req model.PublishRequest) model.PublishResult {
	result := model.PublishResult{Platform: model.PlatformInstagram, Status: model.StatusError}
	if p.accountID == "" || p.accessToken == "" {
		// Config gaps mean an operator has to connect the account, not that
		// the publish attempt failed.
		result.Status = model.StatusManualAction
		result.Message = "instagram account_id or access_token not configured; manual action required"
		return result
	}
	if req.ImageURL == "" {
		result.Message = "instagram requires an image; no image URL on this draft"
		return result
	}

	mediaID, err := retry.Value(p.policy, func() (string, error) {
		creationID, err := p.createContainer(ctx, req)
		if err != nil {
			return "", err
		}
		wait := p.Wait
		if wait == nil {
			wait = time.Sleep
		}
		wait(instagramProcessingWait)
		return p.publishContainer(ctx, creationID)
	})
	if err != nil {
		result.Message = err.Error()
		return result
	}

	result.Status = model.StatusSuccess
	result.ID = mediaID
	result.URL = fmt.Sprintf("https://www.instagram.com/p/%s/", mediaID)
	return result
}

func (p *InstagramPublisher) createContainer(ctx context.Context, req model.PublishRequest) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/media", p.BaseURL, p.accountID)
	form := url.Values{}
	form.Set("image_url", req.ImageURL)
	form.Set("caption", req.Text)
	form.Set("access_token", p.accessToken)
	return p.postForm(ctx, endpoint, form, "media container")
}

func (p *InstagramPublisher) publishContainer(ctx context.Context, creationID string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/media_publish", p.BaseURL, p.accountID)
	form := url.Values{}
	form.Set("creation_id", creationID)
	form.Set("access_token", p.accessToken)
	return p.postForm(ctx, endpoint, form, "media publish")
}

func (p *InstagramPublisher) postForm(ctx context.Context, endpoint string, form url.Values, step string) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("instagram %s request: %w", step, err)
	}
	body := readBody(resp)
	auditCall(ctx, p.audit, model.PlatformInstagram.String(), endpoint, resp.StatusCode, body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("instagram %s returned status %d: %s", step, resp.StatusCode, body)
	}
	var parsed struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil || parsed.ID == "" {
		return "", fmt.Errorf("instagram %s response missing id: %s", step, body)
	}
	return parsed.ID, nil
}
