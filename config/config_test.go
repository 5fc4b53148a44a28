package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	Convey("LoadFrom", t, func() {
		Convey("reads a full configuration", func() {
			path := writeConfig(t, `{
				"library": {
					"path": "/srv/podcasts",
					"maxEpisodes": 25,
					"downloadThumbnails": false,
					"autoCleanup": true,
					"daysToKeepEpisodes": 14,
					"webCompatibilityMode": "alwaysOn"
				},
				"server": {"address": "127.0.0.1:9000", "adminToken": "s3cret"},
				"podcasts": [
					{"url": "https://example.com/feed.xml", "name": "Renamed", "enabled": true},
					{"url": "https://example.com/other.xml", "enabled": false}
				]
			}`)

			cfg, err := LoadFrom(path)
			So(err, ShouldBeNil)
			So(cfg.Library.Path, ShouldEqual, "/srv/podcasts")
			So(cfg.Library.MaxEpisodes, ShouldEqual, 25)
			So(cfg.Library.DownloadThumbnails, ShouldBeFalse)
			So(cfg.Library.AutoCleanup, ShouldBeTrue)
			So(cfg.Library.DaysToKeepEpisodes, ShouldEqual, 14)
			So(cfg.Library.WebCompatibilityMode, ShouldEqual, ModeAlwaysOn)
			So(cfg.Server.Address, ShouldEqual, "127.0.0.1:9000")
			So(cfg.Server.AdminToken, ShouldEqual, "s3cret")
			So(len(cfg.Podcasts), ShouldEqual, 2)
			So(cfg.Podcasts[0].Name, ShouldEqual, "Renamed")
			So(cfg.Podcasts[1].Enabled, ShouldBeFalse)
		})

		Convey("fills defaults for everything omitted", func() {
			path := writeConfig(t, `{"library": {"path": "/srv/podcasts"}}`)

			cfg, err := LoadFrom(path)
			So(err, ShouldBeNil)
			So(cfg.Library.MaxEpisodes, ShouldEqual, 50)
			So(cfg.Library.DownloadThumbnails, ShouldBeTrue)
			So(cfg.Library.WebCompatibilityMode, ShouldEqual, ModeAuto)
			So(cfg.Server.Address, ShouldEqual, "0.0.0.0:8060")
			So(cfg.Transcoder.Path, ShouldEqual, "ffmpeg")
		})

		Convey("rejects an explicitly empty library path", func() {
			path := writeConfig(t, `{"library": {"path": ""}}`)
			_, err := LoadFrom(path)
			So(err, ShouldNotBeNil)
		})

		Convey("errors on a missing file", func() {
			_, err := LoadFrom("/nope/config.json")
			So(err, ShouldNotBeNil)
		})
	})
}
