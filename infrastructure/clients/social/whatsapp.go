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

const twilioAPIBaseURL = "https://api.twilio.com"

// WhatsAppPublisher delivers the adapted text as a WhatsApp message through
// the Twilio Messages API.
type WhatsAppPublisher struct {
	accountSID string
	authToken  string
	fromNumber string

	BaseURL string
	client  *http.Client
	policy  retry.Policy
	audit   repository.IAuditSink
}

func NewWhatsAppPublisher(accountSID, authToken, fromNumber string, audit repository.IAuditSink) *WhatsAppPublisher {
	return &WhatsAppPublisher{
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		BaseURL:    twilioAPIBaseURL,
		client:     newHTTPClient(),
		policy:     retry.NewPolicy(3, 1*time.Second),
		audit:      audit,
	}
}

func (p *WhatsAppPublisher) Platform() model.Platform { return model.PlatformWhatsApp }

func (p *WhatsAppPublisher) Publish(ctx context.Context, req model.PublishRequest) model.PublishResult {
	result := model.PublishResult{Platform: model.PlatformWhatsApp, Status: model.StatusError}
	if p.accountSID == "" || p.authToken == "" || p.fromNumber == "" {
		result.Message = "twilio credentials or whatsapp sender number not configured"
		return result
	}
	if req.DestinationNumber == "" {
		result.Message = "whatsapp destination number is required"
		return result
	}

	sid, err := retry.Value(p.policy, func() (string, error) {
		return p.sendMessage(ctx, req)
	})
	if err != nil {
		result.Message = err.Error()
		return result
	}

	result.Status = model.StatusSuccess
	result.ID = sid
	return result
}

func (p *WhatsAppPublisher) sendMessage(ctx context.Context, req model.PublishRequest) (string, error) {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", p.BaseURL, p.accountSID)
	form := url.Values{}
	form.Set("From", "whatsapp:"+p.fromNumber)
	form.Set("To", "whatsapp:"+req.DestinationNumber)
	form.Set("Body", req.Text)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	httpReq.SetBasicAuth(p.accountSID, p.authToken)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("twilio messages request: %w", err)
	}
	body := readBody(resp)
	auditCall(ctx, p.audit, model.PlatformWhatsApp.String(), endpoint, resp.StatusCode, body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("twilio messages returned status %d: %s", resp.StatusCode, body)
	}
	var parsed struct {
		SID string `json:"sid"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil || parsed.SID == "" {
		return "", fmt.Errorf("twilio messages response missing sid: %s", body)
	}
	return parsed.SID, nil
}
