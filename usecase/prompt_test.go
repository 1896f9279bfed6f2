package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAdaptationPrompt(t *testing.T) {
	prompt := buildAdaptationPrompt("Launch day", "We shipped the thing.")

	assert.Contains(t, prompt, "Launch day")
	assert.Contains(t, prompt, "We shipped the thing.")
	for _, key := range []string{"facebook", "instagram", "linkedin", "tiktok", "whatsapp"} {
		assert.Contains(t, prompt, `"`+key+`"`)
	}

	// TikTok guidance asks for all three media fields, including the
	// dedicated vertical cover prompt.
	tiktokLine := ""
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(line, "- tiktok:") {
			tiktokLine = line
		}
	}
	assert.Contains(t, tiktokLine, `"video_hook"`)
	assert.Contains(t, tiktokLine, `"suggested_image_prompt"`)
	assert.Contains(t, tiktokLine, `"stock_video_keywords"`)
}
