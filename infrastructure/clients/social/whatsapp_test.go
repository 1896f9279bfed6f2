package social

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArnW0lf/ParaJose/domain/model"
)

func TestWhatsAppPublisher_Success(t *testing.T) {
	var gotFrom, gotTo, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "AC123", user)
		assert.Equal(t, "secret", pass)
		assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotFrom = r.PostFormValue("From")
		gotTo = r.PostFormValue("To")
		gotBody = r.PostFormValue("Body")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"SM900"}`))
	}))
	defer srv.Close()

	p := NewWhatsAppPublisher("AC123", "secret", "+14155238886", nil)
	p.BaseURL = srv.URL

	result := p.Publish(context.Background(), model.PublishRequest{
		Text:              "hi there",
		DestinationNumber: "+5215512345678",
	})

	assert.Equal(t, model.StatusSuccess, result.Status)
	assert.Equal(t, "SM900", result.ID)
	assert.Equal(t, "whatsapp:+14155238886", gotFrom)
	assert.Equal(t, "whatsapp:+5215512345678", gotTo)
	assert.Equal(t, "hi there", gotBody)
}

func TestWhatsAppPublisher_MissingDestinationSkipsNetwork(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { requests++ }))
	defer srv.Close()

	p := NewWhatsAppPublisher("AC123", "secret", "+14155238886", nil)
	p.BaseURL = srv.URL

	result := p.Publish(context.Background(), model.PublishRequest{Text: "no dest"})

	assert.Equal(t, model.StatusError, result.Status)
	assert.Contains(t, result.Message, "destination")
	assert.Zero(t, requests)
}

func TestWhatsAppPublisher_RetriesThenFails(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewWhatsAppPublisher("AC123", "secret", "+14155238886", nil)
	p.BaseURL = srv.URL
	p.policy.Sleep = func(time.Duration) {}

	result := p.Publish(context.Background(), model.PublishRequest{Text: "x", DestinationNumber: "+52155"})

	assert.Equal(t, model.StatusError, result.Status)
	assert.Equal(t, p.policy.MaxAttempts, attempts)
}

func TestWhatsAppPublisher_MissingCredentials(t *testing.T) {
	p := NewWhatsAppPublisher("", "", "", nil)
	result := p.Publish(context.Background(), model.PublishRequest{Text: "x", DestinationNumber: "+52155"})
	assert.Equal(t, model.StatusError, result.Status)
	assert.Contains(t, result.Message, "not configured")
}
