// Package stats defines the raw GitHub statistics consumed by the pipeline
// and the normalized feature vector derived from them.
package stats

import (
	"github.com/cespare/xxhash/v2"

	"github.com/gitaura/gitaura/internal/domain/palette"
)

// HourBuckets is the number of buckets in the commit-hour histogram.
const HourBuckets = 24

// Language is one entry of the per-language usage breakdown.
type Language struct {
	Name string
	// Hex is the color reported by GitHub; may be empty.
	Hex string
	// Weight is the aggregated byte count across repositories.
	Weight float64
}

// RawStats is the immutable input produced by the fetcher. The zero value
// describes a brand-new account and is valid.
type RawStats struct {
	// Login is the GitHub username; used as seed fallback when UserID is 0.
	Login string
	// UserID is GitHub's numeric database ID for the user.
	UserID int64
	// TotalCommits counts commit contributions inside the lookback window.
	TotalCommits int
	// LongestStreak is the longest run of consecutive active days.
	LongestStreak int
	// HourHistogram counts commits per hour of day (UTC).
	HourHistogram [HourBuckets]int
	// Languages is the per-language usage breakdown; may be empty.
	Languages []Language
}

// Seed derives the deterministic 64-bit seed used by the flow field and the
// particle layout. The numeric ID wins when present so renames do not
// change a user's aura.
func (r RawStats) Seed() uint64 {
	if r.UserID != 0 {
		return uint64(r.UserID)
	}
	return xxhash.Sum64String(r.Login)
}

// FeatureVector is the normalized tuple driving aura generation. All three
// scalars are finite and within [0, 1]; palette weights sum to 1.0.
type FeatureVector struct {
	// Density scales the particle population.
	Density float64
	// Intensity scales the glow strength.
	Intensity float64
	// Turbulence scales the flow field frequency and force.
	Turbulence float64
	// Palette holds the weight-sorted top language colors.
	Palette []palette.Entry
	// Seed feeds the noise source and particle jitter.
	Seed uint64
}
