package library

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"bitbucket.org/jayflux/mypodcasts_library/config"
	"bitbucket.org/jayflux/mypodcasts_library/models"
	"bitbucket.org/jayflux/mypodcasts_library/stream"
)

func TestIsVideo(t *testing.T) {
	Convey("IsVideo", t, func() {
		So(IsVideo("http://example.com/show.mp4"), ShouldBeTrue)
		So(IsVideo("http://example.com/SHOW.MKV"), ShouldBeTrue)
		So(IsVideo("http://example.com/clip.webm?token=abc"), ShouldBeTrue)
		So(IsVideo("http://example.com/episode.mp3"), ShouldBeFalse)
		So(IsVideo("http://example.com/episode"), ShouldBeFalse)
	})
}

func TestStrmContent(t *testing.T) {
	Convey("strmContent", t, func() {
		seasonDir := "/library/Example Show/Season 1"
		audio := &models.Episode{MediaURL: "http://example.com/ep.mp3"}
		video := &models.Episode{MediaURL: "http://example.com/ep.mp4"}

		cfg := &config.Config{}
		cfg.Server.BaseURL = "http://127.0.0.1:8060"

		Convey("video is never proxied", func() {
			cfg.Library.WebCompatibilityMode = config.ModeAlwaysOn
			So(strmContent(video, cfg, seasonDir), ShouldEqual, video.MediaURL)
		})

		Convey("audio routes through the stream endpoint in auto and alwaysOn", func() {
			for _, mode := range []string{config.ModeAuto, config.ModeAlwaysOn} {
				cfg.Library.WebCompatibilityMode = mode
				expected := "http://127.0.0.1:8060/stream/" + stream.EncodeToken(seasonDir)
				So(strmContent(audio, cfg, seasonDir), ShouldEqual, expected)
			}
		})

		Convey("alwaysOff and unrecognized modes fall back to the raw URL", func() {
			for _, mode := range []string{config.ModeAlwaysOff, "banana", ""} {
				cfg.Library.WebCompatibilityMode = mode
				So(strmContent(audio, cfg, seasonDir), ShouldEqual, audio.MediaURL)
			}
		})
	})
}

func TestNeedsAudioURL(t *testing.T) {
	Convey("needsAudioURL", t, func() {
		audio := &models.Episode{MediaURL: "http://example.com/ep.mp3"}
		video := &models.Episode{MediaURL: "http://example.com/ep.mp4"}
		cfg := &config.Config{}

		cfg.Library.WebCompatibilityMode = config.ModeAuto
		So(needsAudioURL(audio, cfg), ShouldBeTrue)
		So(needsAudioURL(video, cfg), ShouldBeFalse)

		cfg.Library.WebCompatibilityMode = config.ModeAlwaysOff
		So(needsAudioURL(audio, cfg), ShouldBeFalse)
	})
}
