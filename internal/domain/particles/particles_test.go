package particles_test

import (
	"reflect"
	"testing"

	"github.com/gitaura/gitaura/internal/domain/field"
	"github.com/gitaura/gitaura/internal/domain/particles"
	. "github.com/smartystreets/goconvey/convey"
)

func newSystem(seed uint64) *particles.System {
	f := field.New(seed, 400, 400, field.WithTurbulence(0.7))
	return particles.New(f, seed, 400, 400,
		particles.WithCount(80),
		particles.WithSteps(60),
		particles.WithBlend(particles.BlendForTurbulence(0.7)),
	)
}

func TestCountForDensity(t *testing.T) {
	Convey("Given the density-to-count mapping", t, func() {
		Convey("When density spans its range", func() {
			Convey("Then counts stay within the documented bounds", func() {
				So(particles.CountForDensity(0), ShouldEqual, particles.MinCount)
				So(particles.CountForDensity(1), ShouldEqual, particles.MaxCount)
				So(particles.CountForDensity(0.9), ShouldEqual, 275)
				So(particles.CountForDensity(-3), ShouldEqual, particles.MinCount)
				So(particles.CountForDensity(42), ShouldEqual, particles.MaxCount)
			})
		})
	})
}

func TestBlendForTurbulence(t *testing.T) {
	Convey("Given the turbulence-to-blend mapping", t, func() {
		Convey("Then it spans [0.3, 0.7] and clamps outside input", func() {
			So(particles.BlendForTurbulence(0), ShouldAlmostEqual, 0.3, 1e-12)
			So(particles.BlendForTurbulence(1), ShouldAlmostEqual, 0.7, 1e-12)
			So(particles.BlendForTurbulence(-1), ShouldAlmostEqual, 0.3, 1e-12)
			So(particles.BlendForTurbulence(2), ShouldAlmostEqual, 0.7, 1e-12)
		})
	})
}

func TestSystemRun(t *testing.T) {
	Convey("Given a seeded particle system", t, func() {
		paths := newSystem(7).Run()

		Convey("When the simulation completes", func() {
			Convey("Then every particle produces one path", func() {
				So(paths, ShouldHaveLength, 80)
			})

			Convey("And every path has one point per step", func() {
				for _, p := range paths {
					So(p.Points, ShouldHaveLength, 60)
				}
			})

			Convey("And all points stay inside the canvas", func() {
				for _, p := range paths {
					for _, pt := range p.Points {
						So(pt.X, ShouldBeBetweenOrEqual, 0, 400)
						So(pt.Y, ShouldBeBetweenOrEqual, 0, 400)
					}
				}
			})

			Convey("And opacities are within the documented range", func() {
				for _, p := range paths {
					So(p.Opacity, ShouldBeBetweenOrEqual, 0.3, 1.0)
				}
			})
		})

		Convey("When running an identical system again", func() {
			again := newSystem(7).Run()

			Convey("Then the paths are bit-for-bit identical", func() {
				So(reflect.DeepEqual(paths, again), ShouldBeTrue)
			})
		})

		Convey("When running with a different seed", func() {
			other := newSystem(8).Run()

			Convey("Then the layout differs", func() {
				So(reflect.DeepEqual(paths, other), ShouldBeFalse)
			})
		})
	})
}
