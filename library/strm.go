package library

import (
	"fmt"
	"strings"

	"bitbucket.org/jayflux/mypodcasts_library/config"
	"bitbucket.org/jayflux/mypodcasts_library/models"
	"bitbucket.org/jayflux/mypodcasts_library/stream"
)

// Extensions the media server can already play in a browser. Anything else
// is treated as audio.
var videoExtensions = []string{".mp4", ".webm", ".mkv", ".avi", ".mov", ".m4v", ".mpg", ".mpeg"}

// IsVideo reports whether a media URL points at a recognized video type.
func IsVideo(mediaURL string) bool {
	lower := strings.ToLower(mediaURL)
	for _, ext := range videoExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}
	return false
}

// strmContent decides what the pointer file references. Video is never
// proxied. Audio goes through the streaming endpoint in auto and alwaysOn
// modes; alwaysOff and any unrecognized mode fall back to the raw URL.
func strmContent(ep *models.Episode, cfg *config.Config, seasonDir string) string {
	if IsVideo(ep.MediaURL) {
		return ep.MediaURL
	}
	switch cfg.Library.WebCompatibilityMode {
	case config.ModeAlwaysOn, config.ModeAuto:
		base := strings.TrimRight(cfg.Server.BaseURL, "/")
		return fmt.Sprintf("%s/stream/%s", base, stream.EncodeToken(seasonDir))
	default:
		return ep.MediaURL
	}
}

// needsAudioURL reports whether the episode gets an .audiourl sidecar for
// the streaming proxy to read back later.
func needsAudioURL(ep *models.Episode, cfg *config.Config) bool {
	if IsVideo(ep.MediaURL) {
		return false
	}
	mode := cfg.Library.WebCompatibilityMode
	return mode == config.ModeAlwaysOn || mode == config.ModeAuto
}
