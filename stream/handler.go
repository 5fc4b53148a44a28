// Package stream serves episode playback. Web clients get audio transcoded
// into a video container on the fly, everything else is redirected to the
// original audio URL so encoder cost only tracks concurrent browser
// sessions.
package stream

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gorilla/mux"

	"bitbucket.org/jayflux/mypodcasts_library/config"
)

// Handler answers GET /stream/{token}.
func Handler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := mux.Vars(r)["token"]

		dir, err := DecodeToken(token)
		if err != nil {
			http.Error(w, "malformed stream token", http.StatusBadRequest)
			return
		}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			http.Error(w, "stream source not found", http.StatusNotFound)
			return
		}

		audioURL, err := findAudioURL(dir)
		if err != nil {
			log.Printf("stream: %s: %v", dir, err)
			http.Error(w, "no audio reference found", http.StatusNotFound)
			return
		}

		// Only browser playback needs the transcode, native players handle
		// the audio directly.
		if client := clientName(r); client != "" && !isWebClient(client) {
			http.Redirect(w, r, audioURL, http.StatusFound)
			return
		}

		artwork, err := findArtwork(dir)
		if err != nil {
			log.Printf("stream: %s: %v", dir, err)
			http.Error(w, "no artwork available", http.StatusNotFound)
			return
		}

		// The source cannot seek, so ranges are off, and sniffing a pipe
		// would only get in the way.
		w.Header().Set("Content-Type", "video/x-matroska")
		w.Header().Set("Accept-Ranges", "none")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.Header().Set("X-Content-Type-Options", "nosniff")

		if err := streamTranscoded(r.Context(), cfg.Transcoder.Path, artwork, audioURL, w); err != nil {
			log.Printf("stream: %s: %v", dir, err)
			http.Error(w, "transcode failed", http.StatusInternalServerError)
		}
	}
}

// findAudioURL reads the first .audiourl sidecar in the season directory.
func findAudioURL(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".audiourl") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return "", err
		}
		url := strings.TrimSpace(string(data))
		if url == "" {
			continue
		}
		return url, nil
	}
	return "", errors.New("no .audiourl file present")
}

// findArtwork picks a still image for the video track: an episode thumb
// first, then any jpg in the season folder, then the podcast folder image.
func findArtwork(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	var anyJPG string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.ToLower(e.Name())
		if strings.HasSuffix(name, "-thumb.jpg") {
			return filepath.Join(dir, e.Name()), nil
		}
		if anyJPG == "" && strings.HasSuffix(name, ".jpg") {
			anyJPG = filepath.Join(dir, e.Name())
		}
	}
	if anyJPG != "" {
		return anyJPG, nil
	}

	folderJPG := filepath.Join(filepath.Dir(dir), "folder.jpg")
	if _, err := os.Stat(folderJPG); err == nil {
		return folderJPG, nil
	}
	return "", errors.New("no artwork present")
}

var clientField = regexp.MustCompile(`Client="([^"]*)"`)

// clientName extracts the client identifier from the media server's
// authorization header scheme.
func clientName(r *http.Request) string {
	for _, h := range []string{"X-Emby-Authorization", "Authorization"} {
		if m := clientField.FindStringSubmatch(r.Header.Get(h)); m != nil {
			return m[1]
		}
	}
	return ""
}

func isWebClient(name string) bool {
	return strings.Contains(strings.ToLower(name), "web")
}
