package feed

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseDuration(t *testing.T) {
	Convey("ParseDuration", t, func() {
		Convey("reads a bare integer as seconds", func() {
			So(ParseDuration("45"), ShouldEqual, 45*time.Second)
			So(ParseDuration("3600"), ShouldEqual, time.Hour)
		})

		Convey("reads clock-time spans", func() {
			So(ParseDuration("1:02:03"), ShouldEqual, time.Hour+2*time.Minute+3*time.Second)
			So(ParseDuration("02:03"), ShouldEqual, 2*time.Minute+3*time.Second)
		})

		Convey("falls back to zero on garbage", func() {
			So(ParseDuration("abc"), ShouldEqual, time.Duration(0))
			So(ParseDuration(""), ShouldEqual, time.Duration(0))
			So(ParseDuration("1:2:3:4"), ShouldEqual, time.Duration(0))
			So(ParseDuration("-45"), ShouldEqual, time.Duration(0))
			So(ParseDuration("1:xx"), ShouldEqual, time.Duration(0))
		})
	})
}
