// Package resolver rewrites podcast-directory URLs into the syndication feed
// URLs they front. Apple's podcast pages embed the feed URL inside a JSON
// blob in the page body, so resolution is a fetch plus a marker scan.
package resolver

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// feedURLMarker introduces the quoted feed-URL field inside the embedded
// page data.
const feedURLMarker = `"feedUrl":"`

var client = &http.Client{Timeout: 10 * time.Second}

// Resolve turns an Apple podcast directory URL into the underlying feed URL.
// Anything that is not a directory URL passes through unchanged, as does the
// input on any resolution failure - a URL we cannot resolve is treated as if
// it were already a feed URL and left for the parser to reject.
func Resolve(rawURL string) string {
	if !isDirectoryURL(rawURL) {
		return rawURL
	}

	resp, err := client.Get(rawURL)
	if err != nil {
		log.Printf("resolver: fetching %s: %v", rawURL, err)
		return rawURL
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("resolver: fetching %s: %s", rawURL, resp.Status)
		return rawURL
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("resolver: reading %s: %v", rawURL, err)
		return rawURL
	}

	feedURL, err := extractFeedURL(string(body))
	if err != nil {
		log.Printf("resolver: %s: %v", rawURL, err)
		return rawURL
	}
	return feedURL
}

// extractFeedURL scans a directory page body for the embedded feed URL. The
// value sits in JSON, so escaped forward slashes need undoing.
func extractFeedURL(body string) (string, error) {
	idx := strings.Index(body, feedURLMarker)
	if idx < 0 {
		return "", fmt.Errorf("no feed URL marker in page")
	}
	rest := body[idx+len(feedURLMarker):]
	end := strings.Index(rest, `"`)
	if end < 0 {
		return "", fmt.Errorf("unterminated feed URL in page")
	}
	return strings.ReplaceAll(rest[:end], `\/`, "/"), nil
}

func isDirectoryURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == "podcasts.apple.com" || host == "itunes.apple.com" ||
		strings.HasSuffix(host, ".podcasts.apple.com") || strings.HasSuffix(host, ".itunes.apple.com")
}
