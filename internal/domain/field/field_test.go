package field_test

import (
	"math"
	"testing"

	"github.com/gitaura/gitaura/internal/domain/field"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFieldSample(t *testing.T) {
	Convey("Given a flow field with a fixed seed", t, func() {
		f := field.New(42, 800, 800, field.WithTurbulence(0.8))

		Convey("When sampling the same point from an identical field", func() {
			other := field.New(42, 800, 800, field.WithTurbulence(0.8))

			Convey("Then the vectors match exactly", func() {
				for _, p := range [][2]float64{{0, 0}, {400, 400}, {123.5, 678.25}, {799, 1}} {
					a := f.Sample(p[0], p[1])
					b := other.Sample(p[0], p[1])
					So(a.X, ShouldEqual, b.X)
					So(a.Y, ShouldEqual, b.Y)
				}
			})
		})

		Convey("When sampling across the canvas", func() {
			Convey("Then magnitudes never exceed 1", func() {
				for x := 0.0; x <= 800; x += 97 {
					for y := 0.0; y <= 800; y += 89 {
						v := f.Sample(x, y)
						So(math.Hypot(v.X, v.Y), ShouldBeLessThanOrEqualTo, 1.0+1e-12)
					}
				}
			})

			Convey("And the field weakens toward the rim", func() {
				center := f.Sample(400, 400)
				corner := f.Sample(0, 0)
				So(math.Hypot(center.X, center.Y), ShouldAlmostEqual, 1.0, 1e-9)
				So(math.Hypot(corner.X, corner.Y), ShouldAlmostEqual, 0.5, 1e-9)
			})
		})

		Convey("When a different seed is used", func() {
			other := field.New(43, 800, 800, field.WithTurbulence(0.8))

			Convey("Then the fields diverge somewhere", func() {
				diverged := false
				for x := 10.0; x < 800 && !diverged; x += 50 {
					a := f.Sample(x, x)
					b := other.Sample(x, x)
					if a.X != b.X || a.Y != b.Y {
						diverged = true
					}
				}
				So(diverged, ShouldBeTrue)
			})
		})

		Convey("When turbulence differs", func() {
			calm := field.New(42, 800, 800, field.WithTurbulence(0.0))

			Convey("Then the sampled directions differ", func() {
				a := f.Sample(250, 310)
				b := calm.Sample(250, 310)
				So(a.X == b.X && a.Y == b.Y, ShouldBeFalse)
			})
		})
	})
}
