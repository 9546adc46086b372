package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if AURA_CONFIG is set
//  3. env (prefix AURA_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("AURA_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: AURA_WIDTH, AURA_SIMULATION_STEPS, ...
	// Map env keys like AURA_SIMULATION_STEPS -> simulation_steps, keeping
	// underscores to match the koanf tags on the struct.
	envProvider := env.Provider("AURA_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "aura_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: canvas size must be positive", ErrInvalidConfig)
	case c.SimulationSteps <= 0:
		return fmt.Errorf("%w: simulation_steps must be positive", ErrInvalidConfig)
	case c.ReferenceCommits <= 0:
		return fmt.Errorf("%w: reference_commits must be positive", ErrInvalidConfig)
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	return nil
}
