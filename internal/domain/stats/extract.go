package stats

import (
	"fmt"
	"math"

	"github.com/gitaura/gitaura/internal/domain/palette"
)

// Normalization constants. These are part of the determinism contract:
// changing any of them changes every generated aura.
const (
	// defaultReferenceCommits anchors the logarithmic density scale.
	defaultReferenceCommits = 1000

	// maxStreakDays is a full year of daily commits.
	maxStreakDays = 365.0

	// sigmoidMidpoint is the streak fraction mapping to intensity 0.5;
	// 0.15 of a year is roughly a 55-day streak.
	sigmoidMidpoint = 0.15

	// sigmoidSteepness controls how sharply intensity saturates.
	sigmoidSteepness = 8.0

	// defaultTurbulence is used when the hour histogram is empty.
	defaultTurbulence = 0.5

	// paletteSize caps the number of language colors carried forward.
	paletteSize = 5
)

// Extractor derives feature vectors from raw statistics. The zero value is
// not usable; construct with NewExtractor.
type Extractor struct {
	referenceCommits int
}

// Option applies a configuration option to the Extractor.
type Option func(*Extractor)

// WithReferenceCommits overrides the commit count at which density
// saturates toward 1.0.
func WithReferenceCommits(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.referenceCommits = n
		}
	}
}

// NewExtractor creates an Extractor with the documented defaults.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{referenceCommits: defaultReferenceCommits}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract maps raw statistics to a normalized feature vector. It is a total
// function over valid input: all-zero stats are not an error and produce
// the documented defaults. Malformed input returns ErrInvalidInput.
func (e *Extractor) Extract(rs RawStats) (FeatureVector, error) {
	if err := validate(rs); err != nil {
		return FeatureVector{}, err
	}

	langs := make([]palette.Entry, 0, len(rs.Languages))
	for _, l := range rs.Languages {
		langs = append(langs, palette.Entry{Name: l.Name, Hex: l.Hex, Weight: l.Weight})
	}

	return FeatureVector{
		Density:    e.density(rs.TotalCommits),
		Intensity:  intensity(rs.LongestStreak),
		Turbulence: turbulence(rs.HourHistogram),
		Palette:    palette.Build(langs, paletteSize),
		Seed:       rs.Seed(),
	}, nil
}

func validate(rs RawStats) error {
	if rs.TotalCommits < 0 {
		return fmt.Errorf("%w: negative commit count %d", ErrInvalidInput, rs.TotalCommits)
	}
	if rs.LongestStreak < 0 {
		return fmt.Errorf("%w: negative streak %d", ErrInvalidInput, rs.LongestStreak)
	}
	for hour, n := range rs.HourHistogram {
		if n < 0 {
			return fmt.Errorf("%w: negative histogram bucket at hour %d", ErrInvalidInput, hour)
		}
	}
	for _, l := range rs.Languages {
		if l.Weight < 0 || math.IsNaN(l.Weight) || math.IsInf(l.Weight, 0) {
			return fmt.Errorf("%w: bad weight for language %q", ErrInvalidInput, l.Name)
		}
	}
	return nil
}

// density maps a commit count to [0, 1] on a logarithmic scale, so heavy
// users approach 1.0 without flattening small accounts to 0.
func (e *Extractor) density(commits int) float64 {
	rho := math.Log1p(float64(commits)) / math.Log1p(float64(e.referenceCommits))
	return clamp01(rho)
}

// intensity maps the longest streak to (0, 1) with a re-centered logistic:
// 1/(1+exp(-steepness*(streak/365 - midpoint))).
func intensity(streak int) float64 {
	x := math.Min(float64(streak), maxStreakDays) / maxStreakDays
	return 1.0 / (1.0 + math.Exp(-sigmoidSteepness*(x-sigmoidMidpoint)))
}

// turbulence is the normalized Shannon entropy of the hour histogram. A
// uniform spread of commit hours yields 1 (chaotic field); a single spike
// yields 0 (calm field). An empty histogram defaults to 0.5.
func turbulence(hist [HourBuckets]int) float64 {
	var total float64
	for _, n := range hist {
		total += float64(n)
	}
	if total == 0 {
		return defaultTurbulence
	}

	var entropy float64
	for _, n := range hist {
		if n > 0 {
			p := float64(n) / total
			entropy -= p * math.Log2(p)
		}
	}
	return clamp01(entropy / math.Log2(HourBuckets))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
