package model

import (
	"fmt"
	"strings"
)

// Platform identifies a supported destination network.
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTikTok    Platform = "tiktok"
	PlatformWhatsApp  Platform = "whatsapp"
)

// AllPlatforms lists every supported platform in the order adaptations are
// generated and persisted.
func AllPlatforms() []Platform {
	return []Platform{PlatformFacebook, PlatformInstagram, PlatformLinkedIn, PlatformTikTok, PlatformWhatsApp}
}

// ParsePlatform normalizes a platform string coming from storage or a request.
func ParsePlatform(s string) (Platform, error) {
	switch p := Platform(strings.ToLower(strings.TrimSpace(s))); p {
	case PlatformFacebook, PlatformInstagram, PlatformLinkedIn, PlatformTikTok, PlatformWhatsApp:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported platform: %s", s)
	}
}

func (p Platform) String() string { return string(p) }
