package realtime

import (
	"encoding/json"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/ArnW0lf/ParaJose/domain/model"
)

// PublishStatusEvent represents an SSE payload for publication state changes.
type PublishStatusEvent struct {
	Type          string  `json:"type"`
	PublicationID int64   `json:"publication_id"`
	PostID        int64   `json:"post_id"`
	Platform      string  `json:"platform"`
	State         string  `json:"state"`
	ExternalID    *string `json:"external_id,omitempty"`
	PublishedURL  *string `json:"published_url,omitempty"`
	Error         *string `json:"error,omitempty"`
}

// Hub maintains SSE subscribers listening for publication state changes.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan PublishStatusEvent]struct{}
}

func NewPublishHub() *Hub {
	return &Hub{subs: make(map[chan PublishStatusEvent]struct{})}
}

// Serve registers an SSE stream on the request connection.
func (h *Hub) Serve(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // disable nginx buffering

	ch := make(chan PublishStatusEvent, 8)
	h.addSubscriber(ch)
	defer h.removeSubscriber(ch)

	// Initial comment to keep connection open
	c.Writer.Write([]byte(":ok\n\n"))
	c.Writer.Flush()

	for {
		select {
		case evt := <-ch:
			data, _ := json.Marshal(evt)
			_, _ = c.Writer.Write([]byte("event: publish_status\n"))
			_, _ = c.Writer.Write([]byte("data: "))
			_, _ = c.Writer.Write(data)
			_, _ = c.Writer.Write([]byte("\n\n"))
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}

func (h *Hub) addSubscriber(ch chan PublishStatusEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[ch] = struct{}{}
}

func (h *Hub) removeSubscriber(ch chan PublishStatusEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
}

// BroadcastPublishStatus broadcasts a publication's current state to all subscribers.
func (h *Hub) BroadcastPublishStatus(pub *model.Publication) {
	if pub == nil {
		return
	}
	evt := PublishStatusEvent{
		Type:          "publish_status",
		PublicationID: pub.ID,
		PostID:        pub.PostID,
		Platform:      pub.Platform.String(),
		State:         pub.State,
		ExternalID:    pub.ExternalID,
		PublishedURL:  pub.PublishedURL,
		Error:         pub.LastError,
	}
	h.mu.RLock()
	for ch := range h.subs {
		select { // non-blocking
		case ch <- evt:
		default:
		}
	}
	h.mu.RUnlock()
}
