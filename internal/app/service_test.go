package app_test

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gitaura/gitaura/internal/app"
	"github.com/gitaura/gitaura/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

// stubFetcher serves canned stats without touching the network.
type stubFetcher struct {
	stats stats.RawStats
	err   error
}

func (s *stubFetcher) Stats(_ context.Context, _ string) (stats.RawStats, error) {
	return s.stats, s.err
}

func uniformHistogram() [stats.HourBuckets]int {
	var hist [stats.HourBuckets]int
	for i := range hist {
		hist[i] = 2
	}
	return hist
}

func scenarioStats() stats.RawStats {
	return stats.RawStats{
		Login:         "octocat",
		UserID:        583231,
		TotalCommits:  500,
		LongestStreak: 40,
		HourHistogram: uniformHistogram(),
		Languages: []stats.Language{
			{Name: "Go", Weight: 0.6},
			{Name: "Rust", Weight: 0.4},
		},
	}
}

func wellFormed(doc string) error {
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		if _, err := dec.Token(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func TestCompose(t *testing.T) {
	Convey("Given a service with defaults", t, func() {
		svc := app.New()
		req := app.Request{Width: 800, Height: 800, Animate: true}

		Convey("When composing the documented scenario", func() {
			doc, err := svc.Compose(scenarioStats(), req)
			So(err, ShouldBeNil)

			Convey("Then the canvas attributes match the request", func() {
				So(doc, ShouldContainSubstring, `width="800" height="800"`)
			})

			Convey("And the path count reflects density 0.90", func() {
				// rho = log1p(500)/log1p(1000) => 275 particles.
				So(strings.Count(doc, "<path "), ShouldEqual, 275)
			})

			Convey("And the document is well-formed", func() {
				So(wellFormed(doc), ShouldBeNil)
			})
		})

		Convey("When composing the same stats twice", func() {
			a, err := svc.Compose(scenarioStats(), req)
			So(err, ShouldBeNil)
			b, err := svc.Compose(scenarioStats(), req)
			So(err, ShouldBeNil)

			Convey("Then the output is byte-identical", func() {
				So(a, ShouldEqual, b)
			})
		})

		Convey("When two users share statistics but not identity", func() {
			first := scenarioStats()
			second := scenarioStats()
			second.UserID = 12345

			a, err := svc.Compose(first, req)
			So(err, ShouldBeNil)
			b, err := svc.Compose(second, req)
			So(err, ShouldBeNil)

			Convey("Then the rendered layouts differ", func() {
				So(a, ShouldNotEqual, b)
			})
		})

		Convey("When composing degenerate all-zero stats", func() {
			doc, err := svc.Compose(stats.RawStats{Login: "ghost"}, req)
			So(err, ShouldBeNil)

			Convey("Then a minimal valid aura is produced", func() {
				So(wellFormed(doc), ShouldBeNil)
				So(strings.Count(doc, "<path "), ShouldEqual, 50)
			})
		})

		Convey("When the stats are malformed", func() {
			_, err := svc.Compose(stats.RawStats{TotalCommits: -1}, req)

			Convey("Then the extractor error propagates", func() {
				So(errors.Is(err, stats.ErrInvalidInput), ShouldBeTrue)
			})
		})

		Convey("When the request omits the canvas size", func() {
			doc, err := svc.Compose(scenarioStats(), app.Request{Animate: false})
			So(err, ShouldBeNil)

			Convey("Then the service defaults apply", func() {
				So(doc, ShouldContainSubstring, `width="800" height="800"`)
			})
		})
	})
}

func TestAura(t *testing.T) {
	Convey("Given a service with a stub fetcher", t, func() {
		svc := app.New(app.WithFetcher(&stubFetcher{stats: scenarioStats()}))

		Convey("When generating an aura", func() {
			doc, err := svc.Aura(context.Background(), app.Request{Login: "octocat", Animate: true})
			So(err, ShouldBeNil)

			Convey("Then the document comes back rendered", func() {
				So(string(doc), ShouldContainSubstring, "<svg ")
			})
		})

		Convey("When the fetcher fails", func() {
			failing := app.New(app.WithFetcher(&stubFetcher{err: errors.New("boom")}))
			_, err := failing.Aura(context.Background(), app.Request{Login: "octocat"})

			Convey("Then the error propagates with context", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "octocat")
			})
		})

		Convey("When no fetcher is configured", func() {
			bare := app.New()
			_, err := bare.Aura(context.Background(), app.Request{Login: "octocat"})

			Convey("Then ErrNotConfigured is returned", func() {
				So(errors.Is(err, app.ErrNotConfigured), ShouldBeTrue)
			})
		})
	})
}

func TestWriteIfChanged(t *testing.T) {
	Convey("Given a target path in a temp dir", t, func() {
		path := filepath.Join(t.TempDir(), "aura.svg")

		Convey("When writing for the first time", func() {
			changed, err := app.WriteIfChanged(path, []byte("<svg/>"))
			So(err, ShouldBeNil)

			Convey("Then the file is created and reported changed", func() {
				So(changed, ShouldBeTrue)
				data, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, "<svg/>")
			})

			Convey("And rewriting identical content reports unchanged", func() {
				again, err := app.WriteIfChanged(path, []byte("<svg/>"))
				So(err, ShouldBeNil)
				So(again, ShouldBeFalse)
			})

			Convey("And writing different content reports changed", func() {
				again, err := app.WriteIfChanged(path, []byte("<svg></svg>"))
				So(err, ShouldBeNil)
				So(again, ShouldBeTrue)
			})
		})
	})
}
