// Package feed fetches syndication documents and normalizes them into the
// shared feed model. Both wire formats converge on the same episode type;
// the root element decides which extractor runs.
package feed

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"
	"github.com/mmcdole/gofeed/rss"
	uuid "github.com/satori/go.uuid"

	"bitbucket.org/jayflux/mypodcasts_library/models"
	"bitbucket.org/jayflux/mypodcasts_library/resolver"
)

const untitledEpisode = "Untitled Episode"

var client = &http.Client{Timeout: 30 * time.Second}

// Parse resolves, fetches and normalizes a feed. It returns nil on any
// failure - one bad feed must never take down the surrounding sync cycle,
// so every error path here ends in a log line, not a panic.
func Parse(feedURL string) *models.Feed {
	resolved := resolver.Resolve(feedURL)

	body, err := fetch(resolved)
	if err != nil {
		log.Printf("feed: fetching %s: %v", resolved, err)
		return nil
	}

	switch gofeed.DetectFeedType(bytes.NewReader(body)) {
	case gofeed.FeedTypeRSS:
		parsed, err := (&rss.Parser{}).Parse(bytes.NewReader(body))
		if err != nil {
			log.Printf("feed: parsing rss %s: %v", resolved, err)
			return nil
		}
		return fromRSS(parsed, resolved)
	case gofeed.FeedTypeAtom:
		parsed, err := (&atom.Parser{}).Parse(bytes.NewReader(body))
		if err != nil {
			log.Printf("feed: parsing atom %s: %v", resolved, err)
			return nil
		}
		return fromAtom(parsed, resolved)
	default:
		log.Printf("feed: %s is neither rss nor atom, skipping", resolved)
		return nil
	}
}

func fetch(url string) ([]byte, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{url: url, status: resp.Status}
	}
	return io.ReadAll(resp.Body)
}

type statusError struct {
	url    string
	status string
}

func (e *statusError) Error() string {
	return "unexpected status " + e.status + " from " + e.url
}

// fromRSS maps an RSS channel onto the normalized model. Items without an
// enclosure carry nothing we can stream and are dropped.
func fromRSS(parsed *rss.Feed, sourceURL string) *models.Feed {
	out := &models.Feed{
		SourceURL:   sourceURL,
		Title:       parsed.Title,
		Description: parsed.Description,
		Author:      parsed.ManagingEditor,
		Language:    parsed.Language,
	}
	if parsed.ITunesExt != nil && parsed.ITunesExt.Author != "" {
		out.Author = parsed.ITunesExt.Author
	}
	if parsed.ITunesExt != nil && parsed.ITunesExt.Image != "" {
		out.ImageURL = parsed.ITunesExt.Image
	} else if parsed.Image != nil {
		out.ImageURL = parsed.Image.URL
	}
	if out.Language == "" {
		out.Language = "en"
	}

	for _, item := range parsed.Items {
		if item.Enclosure == nil || item.Enclosure.URL == "" {
			continue
		}

		ep := &models.Episode{
			Title:       item.Title,
			Description: item.Description,
			MediaURL:    item.Enclosure.URL,
			MediaType:   item.Enclosure.Type,
			MediaLength: parseLength(item.Enclosure.Length),
			ImageURL:    out.ImageURL,
		}
		if ep.Title == "" {
			ep.Title = untitledEpisode
		}
		if item.PubDateParsed != nil {
			ep.PublishedAt = *item.PubDateParsed
		}
		if item.ITunesExt != nil {
			if ep.Description == "" {
				ep.Description = item.ITunesExt.Summary
			}
			if item.ITunesExt.Image != "" {
				ep.ImageURL = item.ITunesExt.Image
			}
			ep.Duration = ParseDuration(item.ITunesExt.Duration)
		}
		if item.GUID != nil && item.GUID.Value != "" {
			ep.GUID = item.GUID.Value
		} else {
			ep.GUID = uuid.NewV4().String()
		}

		out.Episodes = append(out.Episodes, ep)
	}
	return out
}

// fromAtom maps an Atom document onto the normalized model. Entries need a
// rel="enclosure" link to survive.
func fromAtom(parsed *atom.Feed, sourceURL string) *models.Feed {
	out := &models.Feed{
		SourceURL:   sourceURL,
		Title:       parsed.Title,
		Description: parsed.Subtitle,
		Language:    "en",
		ImageURL:    linkByRel(parsed.Links, "icon"),
	}
	if len(parsed.Authors) > 0 {
		out.Author = parsed.Authors[0].Name
	}

	for _, entry := range parsed.Entries {
		enclosure := entryEnclosure(entry.Links)
		if enclosure == nil {
			continue
		}

		ep := &models.Episode{
			Title:       entry.Title,
			Description: entry.Summary,
			MediaURL:    enclosure.Href,
			MediaType:   enclosure.Type,
			MediaLength: parseLength(enclosure.Length),
			ImageURL:    out.ImageURL,
		}
		if ep.Title == "" {
			ep.Title = untitledEpisode
		}
		if entry.PublishedParsed != nil {
			ep.PublishedAt = *entry.PublishedParsed
		}
		if entry.ID != "" {
			ep.GUID = entry.ID
		} else {
			ep.GUID = uuid.NewV4().String()
		}

		out.Episodes = append(out.Episodes, ep)
	}
	return out
}

func entryEnclosure(links []*atom.Link) *atom.Link {
	for _, l := range links {
		if l != nil && strings.EqualFold(l.Rel, "enclosure") && l.Href != "" {
			return l
		}
	}
	return nil
}

func linkByRel(links []*atom.Link, rel string) string {
	for _, l := range links {
		if l != nil && strings.EqualFold(l.Rel, rel) {
			return l.Href
		}
	}
	return ""
}

// parseLength tolerates the garbage feeds put in length attributes.
func parseLength(raw string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
