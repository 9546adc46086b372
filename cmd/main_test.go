package main

import (
	"context"
	"testing"

	"github.com/gitaura/gitaura/internal/app"
	"github.com/gitaura/gitaura/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestParseFlags(t *testing.T) {
	convey.Convey("Given the command line", t, func() {
		convey.Convey("When passing a full set of flags", func() {
			opts, err := parseFlags([]string{"-o", "out.svg", "-width", "640", "-height", "480", "-no-animation", "-check-changes", "octocat"})
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then all values are captured", func() {
				convey.So(opts.output, convey.ShouldEqual, "out.svg")
				convey.So(opts.width, convey.ShouldEqual, 640)
				convey.So(opts.height, convey.ShouldEqual, 480)
				convey.So(opts.noAnimation, convey.ShouldBeTrue)
				convey.So(opts.checkChanges, convey.ShouldBeTrue)
				convey.So(opts.username, convey.ShouldEqual, "octocat")
			})
		})

		convey.Convey("When no arguments are given", func() {
			opts, err := parseFlags(nil)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then everything stays at its zero value", func() {
				convey.So(opts.username, convey.ShouldBeEmpty)
				convey.So(opts.serve, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When an unknown flag is given", func() {
			_, err := parseFlags([]string{"-bogus"})
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestFlagConfigPrecedence(t *testing.T) {
	convey.Convey("Given a loaded configuration", t, func() {
		cfg, err := config.Load(context.Background())
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When explicit flags are applied", func() {
			applyFlags(cfg, &options{output: "custom.svg", width: 1024, noAnimation: true})

			convey.Convey("Then flags win over config values", func() {
				convey.So(cfg.Output, convey.ShouldEqual, "custom.svg")
				convey.So(cfg.Width, convey.ShouldEqual, 1024)
				convey.So(cfg.Height, convey.ShouldEqual, 800)
				convey.So(cfg.Animate, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When no flags are set", func() {
			applyFlags(cfg, &options{})

			convey.Convey("Then config values survive", func() {
				convey.So(cfg.Output, convey.ShouldEqual, "aura.svg")
				convey.So(cfg.Animate, convey.ShouldBeTrue)
			})
		})
	})
}

func TestServiceWiring(t *testing.T) {
	convey.Convey("Given the service constructor", t, func() {
		convey.Convey("When building with config-derived options", func() {
			cfg := config.New()
			svc := app.New(
				app.WithCanvas(cfg.Width, cfg.Height),
				app.WithSteps(cfg.SimulationSteps),
				app.WithReferenceCommits(cfg.ReferenceCommits),
			)

			convey.Convey("Then the service is usable", func() {
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})
	})
}
