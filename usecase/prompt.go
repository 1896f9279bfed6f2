package usecase

import "fmt"

// buildAdaptationPrompt asks the model for one adaptation per platform as a
// single strict-JSON object. The contract mirrors model.AdaptationSet.
func buildAdaptationPrompt(title, body string) string {
	return fmt.Sprintf(`You are a social media content strategist. Adapt the post below for five platforms.

Respond with a single JSON object and nothing else: no markdown fences, no commentary. The object must have exactly these top-level keys: "facebook", "instagram", "linkedin", "tiktok", "whatsapp". Each value is an object with:
- "text": the adapted post text, ready to publish
- "hashtags": array of hashtag strings without the # prefix
- "character_count": integer length of "text"
- "tone": one or two words describing the tone used
- "format": short description of the format chosen

Platform guidance:
- facebook: storytelling style, end with a question that invites comments
- instagram: visual-first caption with line breaks and emoji; also include "suggested_image_prompt": a detailed English prompt for an image generator
- linkedin: professional thought-leadership voice, no emoji, short paragraphs
- tiktok: a video script concept; include "video_hook": the opening line that stops the scroll, "suggested_image_prompt": a detailed English prompt for a vertical 9:16 cover image, and "stock_video_keywords": 2-4 English words for searching stock footage
- whatsapp: short conversational message a friend would forward, one paragraph

Post title: %s

Post body:
%s`, title, body)
}
