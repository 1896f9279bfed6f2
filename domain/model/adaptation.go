package model

// PlatformAdaptation is the generative model's output for a single platform,
// optionally augmented by the enricher with generated media URLs.
type PlatformAdaptation struct {
	Text                 string   `json:"text"`
	Hashtags             []string `json:"hashtags"`
	CharacterCount       int      `json:"character_count"`
	Tone                 string   `json:"tone,omitempty"`
	Format               string   `json:"format,omitempty"`
	SuggestedImagePrompt string   `json:"suggested_image_prompt,omitempty"`
	VideoHook            string   `json:"video_hook,omitempty"`
	StockVideoKeywords   string   `json:"stock_video_keywords,omitempty"`
	GeneratedImageURL    string   `json:"generated_image_url,omitempty"`
	GeneratedVideoURL    string   `json:"generated_video_url,omitempty"`
}

// AdaptationSet is the structured JSON contract the generative model must
// return: one entry per target platform.
type AdaptationSet struct {
	Facebook  *PlatformAdaptation `json:"facebook"`
	Instagram *PlatformAdaptation `json:"instagram"`
	LinkedIn  *PlatformAdaptation `json:"linkedin"`
	TikTok    *PlatformAdaptation `json:"tiktok"`
	WhatsApp  *PlatformAdaptation `json:"whatsapp"`
}

// Get returns the adaptation for a platform, nil when the model omitted it.
func (s *AdaptationSet) Get(p Platform) *PlatformAdaptation {
	switch p {
	case PlatformFacebook:
		return s.Facebook
	case PlatformInstagram:
		return s.Instagram
	case PlatformLinkedIn:
		return s.LinkedIn
	case PlatformTikTok:
		return s.TikTok
	case PlatformWhatsApp:
		return s.WhatsApp
	}
	return nil
}

// Empty reports whether the model produced no usable platform entry at all.
func (s *AdaptationSet) Empty() bool {
	for _, p := range AllPlatforms() {
		if s.Get(p) != nil {
			return false
		}
	}
	return true
}
