// Package app wires the stats fetcher and the generative pipeline into the
// service used by both the CLI and the HTTP API.
package app

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"time"

	"github.com/gitaura/gitaura/internal/domain/field"
	"github.com/gitaura/gitaura/internal/domain/particles"
	"github.com/gitaura/gitaura/internal/domain/stats"
	"github.com/gitaura/gitaura/internal/render"
	"github.com/gitaura/gitaura/pkg/logger"
	"github.com/gitaura/gitaura/pkg/metrics"
)

// Default canvas and simulation parameters.
const (
	defaultWidth  = 800
	defaultHeight = 800
	defaultSteps  = 150

	outputFileMode = 0o644
)

// Fetcher supplies raw GitHub statistics for a login. Implementations own
// all network concerns; the service never talks to GitHub directly.
type Fetcher interface {
	Stats(ctx context.Context, login string) (stats.RawStats, error)
}

// Request describes one aura to generate. Zero Width/Height fall back to
// the service defaults; Animate is honored as given.
type Request struct {
	Login   string
	Width   int
	Height  int
	Animate bool
}

// Service orchestrates fetch, extract, simulate and render.
type Service struct {
	fetcher   Fetcher
	extractor *stats.Extractor
	width     int
	height    int
	steps     int
	log       logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFetcher sets the GitHub stats source.
func WithFetcher(f Fetcher) Option {
	return func(s *Service) {
		s.fetcher = f
	}
}

// WithCanvas sets the default canvas size.
func WithCanvas(width, height int) Option {
	return func(s *Service) {
		if width > 0 && height > 0 {
			s.width = width
			s.height = height
		}
	}
}

// WithSteps sets the fixed simulation step count.
func WithSteps(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.steps = n
		}
	}
}

// WithReferenceCommits tunes the density normalization anchor.
func WithReferenceCommits(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.extractor = stats.NewExtractor(stats.WithReferenceCommits(n))
		}
	}
}

// WithLogger sets the logger used for progress reporting.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

// New creates a Service with defaults applied.
func New(opts ...Option) *Service {
	s := &Service{
		extractor: stats.NewExtractor(),
		width:     defaultWidth,
		height:    defaultHeight,
		steps:     defaultSteps,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Aura fetches statistics for req.Login and renders the SVG document.
func (s *Service) Aura(ctx context.Context, req Request) ([]byte, error) {
	if s.fetcher == nil {
		return nil, fmt.Errorf("%w: no fetcher configured", ErrNotConfigured)
	}

	start := time.Now()
	rs, err := s.fetcher.Stats(ctx, req.Login)
	if err != nil {
		metrics.RecordFetchError()
		return nil, fmt.Errorf("fetch stats for %q: %w", req.Login, err)
	}
	if s.log != nil {
		s.log.Info(ctx, "fetched stats",
			logger.String("login", req.Login),
			logger.Int("commits", rs.TotalCommits),
			logger.Int("streak", rs.LongestStreak),
			logger.Int("languages", len(rs.Languages)))
	}

	doc, err := s.Compose(rs, req)
	if err != nil {
		metrics.RecordRenderError()
		return nil, err
	}

	metrics.RecordGeneration(time.Since(start).Seconds())
	return []byte(doc), nil
}

// Compose runs the pure pipeline over already-fetched statistics:
// stats -> features -> field -> paths -> SVG. No I/O, fully deterministic.
func (s *Service) Compose(rs stats.RawStats, req Request) (string, error) {
	width, height := req.Width, req.Height
	if width <= 0 || height <= 0 {
		width, height = s.width, s.height
	}

	fv, err := s.extractor.Extract(rs)
	if err != nil {
		return "", err
	}

	f := field.New(fv.Seed, width, height, field.WithTurbulence(fv.Turbulence))

	sys := particles.New(f, fv.Seed, width, height,
		particles.WithCount(particles.CountForDensity(fv.Density)),
		particles.WithSteps(s.steps),
		particles.WithBlend(particles.BlendForTurbulence(fv.Turbulence)),
	)
	paths := sys.Run()

	r := render.New(render.WithSize(width, height), render.WithAnimation(req.Animate))
	return r.Render(paths, fv)
}

// WriteIfChanged writes data to path only when its sha256 differs from the
// existing file, and reports whether a write happened. A missing file
// always counts as changed.
func WriteIfChanged(path string, data []byte) (bool, error) {
	if prev, err := os.ReadFile(path); err == nil {
		if sha256.Sum256(prev) == sha256.Sum256(data) {
			return false, nil
		}
	}
	if err := os.WriteFile(path, data, outputFileMode); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
