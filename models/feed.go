package models

import "time"

// Feed is the normalized result of parsing a syndication document.
// It is produced fresh on every fetch and handed to the library
// synchronizer, never persisted.
type Feed struct {
	SourceURL   string
	Title       string
	Description string
	Author      string
	ImageURL    string
	Language    string
	Episodes    []*Episode
}

// Episode is a single playable entry of a Feed. Episodes without a media
// reference are never constructed, the parser drops them at the source.
type Episode struct {
	Title       string
	Description string
	// PublishedAt is the zero time when the feed carried no parseable date.
	PublishedAt time.Time
	MediaURL    string
	MediaType   string
	MediaLength int64
	Duration    time.Duration
	ImageURL    string
	GUID        string
}

// HasPublishDate reports whether the episode carried a parseable publish date.
func (e *Episode) HasPublishDate() bool {
	return !e.PublishedAt.IsZero()
}
