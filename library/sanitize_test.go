package library

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeFileName(t *testing.T) {
	Convey("SanitizeFileName", t, func() {
		Convey("maps reserved characters to safe ones", func() {
			So(SanitizeFileName("a:b"), ShouldEqual, "a-b")
			So(SanitizeFileName("a/b"), ShouldEqual, "a-b")
			So(SanitizeFileName(`a\b`), ShouldEqual, "a-b")
			So(SanitizeFileName("a|b"), ShouldEqual, "a-b")
			So(SanitizeFileName(`say "hi"`), ShouldEqual, "say 'hi'")
			So(SanitizeFileName("what?*<>"), ShouldEqual, "what")
			So(SanitizeFileName("tab\there"), ShouldEqual, "tab_here")
		})

		Convey("trims surrounding whitespace", func() {
			So(SanitizeFileName("  padded  "), ShouldEqual, "padded")
		})

		Convey("truncates to 200 characters", func() {
			long := strings.Repeat("x", 500)
			So(len([]rune(SanitizeFileName(long))), ShouldEqual, 200)
		})

		Convey("is idempotent and never emits a path separator", func() {
			inputs := []string{
				"Plain Title",
				`Weird: / \ | ? * < > " title`,
				"  spaced : out  ",
				strings.Repeat("a:b/", 100),
				"",
			}
			for _, in := range inputs {
				once := SanitizeFileName(in)
				So(SanitizeFileName(once), ShouldEqual, once)
				So(strings.ContainsAny(once, `/\`), ShouldBeFalse)
				So(len([]rune(once)), ShouldBeLessThanOrEqualTo, 200)
			}
		})
	})
}
