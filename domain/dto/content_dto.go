package dto

// Res is the generic envelope used by middleware and error paths.
type Res struct {
	ResponseCode    string `json:"responseCode"`
	ResponseMessage string `json:"responseMessage"`
}

// AdaptRequest carries the seed content to adapt.
type AdaptRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

// AdaptedDraft is the per-platform slice of an adaptation response.
type AdaptedDraft struct {
	DraftID     int64    `json:"draft_id"`
	Text        string   `json:"text"`
	Hashtags    []string `json:"hashtags"`
	ImagePrompt string   `json:"image_prompt,omitempty"`
	VideoHook   string   `json:"video_hook,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	VideoURL    string   `json:"video_url,omitempty"`
}

// AdaptResponse is returned by POST /api/adapt.
type AdaptResponse struct {
	PostID      int64                   `json:"post_id"`
	Adaptations map[string]AdaptedDraft `json:"adaptations"`
}

// PublishRequest carries the draft to publish plus optional auxiliary inputs.
type PublishRequest struct {
	PublicationID  int64  `json:"publication_id" binding:"required"`
	ImageURL       string `json:"image_url,omitempty"`
	WhatsappNumber string `json:"whatsapp_number,omitempty"`
}
