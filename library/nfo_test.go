package library

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"bitbucket.org/jayflux/mypodcasts_library/models"
)

func TestWriteEpisodeNFO(t *testing.T) {
	Convey("writeEpisodeNFO", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "ep.nfo")

		Convey("writes the full schema for a complete episode", func() {
			ep := &models.Episode{
				Title:       "Tom & Jerry <3",
				Description: "cat \"versus\" mouse",
				PublishedAt: time.Date(2023, 4, 5, 0, 0, 0, 0, time.UTC),
				Duration:    31 * time.Minute,
				ImageURL:    "http://example.com/t.jpg",
			}
			So(writeEpisodeNFO(path, ep, 7), ShouldBeNil)

			data, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			content := string(data)
			So(content, ShouldContainSubstring, "<episodedetails>")
			So(content, ShouldContainSubstring, "<title>Tom &amp; Jerry &lt;3</title>")
			So(content, ShouldContainSubstring, "<season>1</season>")
			So(content, ShouldContainSubstring, "<episode>7</episode>")
			So(content, ShouldContainSubstring, "<aired>2023-04-05</aired>")
			So(content, ShouldContainSubstring, "<year>2023</year>")
			So(content, ShouldContainSubstring, "<runtime>31</runtime>")
			So(content, ShouldContainSubstring, "<genre>Podcast</genre>")
			So(content, ShouldContainSubstring, "<thumb>http://example.com/t.jpg</thumb>")
		})

		Convey("omits aired, year, runtime and thumb when source data is absent", func() {
			ep := &models.Episode{Title: "Sparse", Description: "no extras"}
			So(writeEpisodeNFO(path, ep, 2), ShouldBeNil)

			data, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			content := string(data)
			So(content, ShouldNotContainSubstring, "<aired>")
			So(content, ShouldNotContainSubstring, "<year>")
			So(content, ShouldNotContainSubstring, "<runtime>")
			So(content, ShouldNotContainSubstring, "<thumb>")
		})
	})
}

func TestWriteShowNFO(t *testing.T) {
	Convey("writeShowNFO emits the tvshow schema", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "tvshow.nfo")

		feed := &models.Feed{
			Title:       "Example Show",
			Description: "A show about examples.",
			Author:      "Jay Example",
			ImageURL:    "http://example.com/cover.jpg",
		}
		So(writeShowNFO(path, feed), ShouldBeNil)

		data, err := os.ReadFile(path)
		So(err, ShouldBeNil)
		content := string(data)
		So(content, ShouldContainSubstring, "<tvshow>")
		So(content, ShouldContainSubstring, "<title>Example Show</title>")
		So(content, ShouldContainSubstring, "<studio>Jay Example</studio>")
		So(content, ShouldContainSubstring, "<genre>Podcast</genre>")
		So(content, ShouldContainSubstring, "<thumb>http://example.com/cover.jpg</thumb>")
	})
}
