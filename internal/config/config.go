// Package config defines process configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers defaults, optional YAML file and environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address for serve mode, e.g. ":9090".
	Addr string `koanf:"addr"`

	// Width and Height set the canvas size in pixels.
	Width  int `koanf:"width"`
	Height int `koanf:"height"`

	// Animate toggles the CSS pulse animation in the output document.
	Animate bool `koanf:"animate"`

	// Output is the default path the CLI writes the SVG to.
	Output string `koanf:"output"`

	// SimulationSteps fixes how many steps each particle is advanced.
	SimulationSteps int `koanf:"simulation_steps"`

	// ReferenceCommits anchors the logarithmic density scale; users at or
	// above this yearly commit count approach full density.
	ReferenceCommits int `koanf:"reference_commits"`

	// FetchTimeoutSeconds bounds the GitHub GraphQL round trips.
	FetchTimeoutSeconds int `koanf:"fetch_timeout_seconds"`

	// LookbackDays sets the activity window fetched from GitHub.
	LookbackDays int `koanf:"lookback_days"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9090",
		Width:               800,
		Height:              800,
		Animate:             true,
		Output:              "aura.svg",
		SimulationSteps:     150,
		ReferenceCommits:    1000,
		FetchTimeoutSeconds: 30,
		LookbackDays:        365,
	}
}
