package library

import (
	"encoding/xml"
	"os"

	"bitbucket.org/jayflux/mypodcasts_library/models"
)

// The NFO layout is dictated by the external scanner, element names and
// nesting must match exactly or the tree is not recognized as a TV show.

type tvShowNFO struct {
	XMLName xml.Name `xml:"tvshow"`
	Title   string   `xml:"title"`
	Plot    string   `xml:"plot"`
	Studio  string   `xml:"studio"`
	Genre   string   `xml:"genre"`
	Thumb   string   `xml:"thumb,omitempty"`
}

type episodeNFO struct {
	XMLName xml.Name `xml:"episodedetails"`
	Title   string   `xml:"title"`
	Plot    string   `xml:"plot"`
	Season  int      `xml:"season"`
	Episode int      `xml:"episode"`
	Aired   string   `xml:"aired,omitempty"`
	Year    int      `xml:"year,omitempty"`
	Runtime int      `xml:"runtime,omitempty"`
	Genre   string   `xml:"genre"`
	Thumb   string   `xml:"thumb,omitempty"`
}

func writeShowNFO(path string, feed *models.Feed) error {
	return writeNFO(path, tvShowNFO{
		Title:  feed.Title,
		Plot:   feed.Description,
		Studio: feed.Author,
		Genre:  "Podcast",
		Thumb:  feed.ImageURL,
	})
}

func writeEpisodeNFO(path string, ep *models.Episode, number int) error {
	doc := episodeNFO{
		Title:   ep.Title,
		Plot:    ep.Description,
		Season:  1,
		Episode: number,
		Genre:   "Podcast",
		Thumb:   ep.ImageURL,
	}
	if ep.HasPublishDate() {
		doc.Aired = ep.PublishedAt.Format("2006-01-02")
		doc.Year = ep.PublishedAt.Year()
	}
	if ep.Duration > 0 {
		doc.Runtime = int(ep.Duration.Minutes())
	}
	return writeNFO(path, doc)
}

func writeNFO(path string, doc interface{}) error {
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(xml.Header), append(data, '\n')...), 0644)
}
