package model

// Publish result statuses shared by every platform publisher.
const (
	StatusSuccess      = "success"
	StatusError        = "error"
	StatusManualAction = "manual_action_required"
)

// PublishRequest carries the adapted payload plus the auxiliary inputs a
// platform may need. Callers fill only the fields their platform uses.
type PublishRequest struct {
	Text              string `json:"text"`
	ImageURL          string `json:"image_url,omitempty"`
	VideoURL          string `json:"video_url,omitempty"`
	DestinationNumber string `json:"destination_number,omitempty"`
}

// PublishResult is the structured outcome of one publish attempt.
// Publishers return it instead of raising; the orchestrator alone maps it to a
// persisted state transition.
type PublishResult struct {
	Platform Platform `json:"platform"`
	Status   string   `json:"status"`
	ID       string   `json:"id,omitempty"`
	URL      string   `json:"url,omitempty"`
	Message  string   `json:"message,omitempty"`
}
