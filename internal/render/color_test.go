package render_test

import (
	"testing"

	"github.com/gitaura/gitaura/internal/domain/palette"
	"github.com/gitaura/gitaura/internal/render"
	. "github.com/smartystreets/goconvey/convey"
)

func TestColor(t *testing.T) {
	Convey("Given hex color parsing", t, func() {
		Convey("When parsing valid colors", func() {
			Convey("Then components round-trip", func() {
				So(render.FromHex("#00add8").Hex(), ShouldEqual, "#00add8")
				So(render.FromHex("ffffff").Hex(), ShouldEqual, "#ffffff")
				So(render.FromHex("#000000").Hex(), ShouldEqual, "#000000")
			})
		})

		Convey("When parsing malformed colors", func() {
			Convey("Then mid gray is used", func() {
				for _, bad := range []string{"", "#fff", "#zzzzzz", "#12345"} {
					c := render.FromHex(bad)
					So(c.R, ShouldEqual, 0.5)
					So(c.G, ShouldEqual, 0.5)
					So(c.B, ShouldEqual, 0.5)
				}
			})
		})
	})

	Convey("Given color arithmetic", t, func() {
		base := render.FromHex("#804020")

		Convey("When lightening fully", func() {
			So(base.Lighten(1).Hex(), ShouldEqual, "#ffffff")
		})

		Convey("When darkening fully", func() {
			So(base.Darken(1).Hex(), ShouldEqual, "#000000")
		})

		Convey("When blending halfway", func() {
			mixed := render.RGB{R: 0, G: 0, B: 0}.Blend(render.RGB{R: 1, G: 1, B: 1}, 0.5)
			So(mixed.R, ShouldAlmostEqual, 0.5, 1e-12)
		})
	})

	Convey("Given palette averaging", t, func() {
		Convey("When the palette is empty", func() {
			Convey("Then the default accent is used", func() {
				So(render.BaseColor(nil).Hex(), ShouldEqual, palette.DefaultHex)
			})
		})

		Convey("When a single color has full weight", func() {
			got := render.BaseColor([]palette.Entry{{Hex: "#dea584", Weight: 1}})
			So(got.Hex(), ShouldEqual, "#dea584")
		})

		Convey("When two colors share weight", func() {
			got := render.BaseColor([]palette.Entry{
				{Hex: "#000000", Weight: 0.5},
				{Hex: "#ffffff", Weight: 0.5},
			})
			So(got.R, ShouldAlmostEqual, 0.5, 1e-12)
			So(got.G, ShouldAlmostEqual, 0.5, 1e-12)
			So(got.B, ShouldAlmostEqual, 0.5, 1e-12)
		})
	})
}
