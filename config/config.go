// Package config provides configuration loading and validation for the
// renderer.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/spill/dist"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every parameter of a render run. Constructed once at
// startup, read-only thereafter.
type Config struct {
	// Size is the canvas edge length in pixels (the canvas is square).
	Size int `yaml:"size"`
	// Seed initializes the random stream. A -seed CLI flag overrides it.
	Seed uint64 `yaml:"seed"`

	Forces  ForcesConfig  `yaml:"forces"`
	Faucets FaucetsConfig `yaml:"faucets"`
	Streams StreamsConfig `yaml:"streams"`
}

// ForcesConfig holds force field generation parameters.
type ForcesConfig struct {
	Count    int         `yaml:"count"`
	Strength dist.Config `yaml:"strength"`
	Spread   dist.Config `yaml:"spread"`
}

// FaucetsConfig holds faucet set generation parameters.
type FaucetsConfig struct {
	Count          int         `yaml:"count"`
	ColorCenter    dist.Config `yaml:"color_center"`
	ColorSpread    dist.Config `yaml:"color_spread"`
	PositionSpread dist.Config `yaml:"position_spread"`
	VelocitySpread dist.Config `yaml:"velocity_spread"`
}

// StreamsConfig holds per-stream integration parameters.
type StreamsConfig struct {
	Count int `yaml:"count"`
	// Decay samples each stream's decay factor, its lifetime in steps.
	Decay dist.Config `yaml:"decay"`
	// MaxDecayFactor clamps sampled decay factors from above.
	MaxDecayFactor float64 `yaml:"max_decay_factor"`
	// VelocityCap saturates each velocity component to [-cap, cap].
	VelocityCap float64 `yaml:"velocity_cap"`
	// ColorCap saturates each color component to [-cap, cap].
	ColorCap float64 `yaml:"color_cap"`
}

// Load loads configuration from a YAML file, merging it over the
// embedded defaults. If path is empty, only the defaults are used.
// The result is validated; an invalid configuration fails here, never
// mid-run.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into the same struct - only overwrites fields present
		// in the file.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is like Load but panics on error. For tests.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load: %v", err))
	}
	return cfg
}

// Validate checks every invariant the simulation relies on: positive
// canvas size and caps, non-negative counts, and well-formed
// distributions.
func (c *Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("config: size must be > 0, got %d", c.Size)
	}
	if c.Forces.Count < 0 {
		return fmt.Errorf("config: forces.count must be >= 0, got %d", c.Forces.Count)
	}
	if c.Faucets.Count < 0 {
		return fmt.Errorf("config: faucets.count must be >= 0, got %d", c.Faucets.Count)
	}
	if c.Streams.Count < 0 {
		return fmt.Errorf("config: streams.count must be >= 0, got %d", c.Streams.Count)
	}
	if c.Streams.Count > 0 && c.Faucets.Count == 0 {
		return fmt.Errorf("config: streams.count is %d but there are no faucets to emit them", c.Streams.Count)
	}
	if !(c.Streams.MaxDecayFactor >= 0) || math.IsInf(c.Streams.MaxDecayFactor, 0) {
		return fmt.Errorf("config: streams.max_decay_factor must be finite and >= 0, got %v", c.Streams.MaxDecayFactor)
	}
	if !(c.Streams.VelocityCap > 0) || math.IsInf(c.Streams.VelocityCap, 0) {
		return fmt.Errorf("config: streams.velocity_cap must be finite and > 0, got %v", c.Streams.VelocityCap)
	}
	if !(c.Streams.ColorCap > 0) || math.IsInf(c.Streams.ColorCap, 0) {
		return fmt.Errorf("config: streams.color_cap must be finite and > 0, got %v", c.Streams.ColorCap)
	}

	dists := []struct {
		name string
		c    dist.Config
	}{
		{"forces.strength", c.Forces.Strength},
		{"forces.spread", c.Forces.Spread},
		{"faucets.color_center", c.Faucets.ColorCenter},
		{"faucets.color_spread", c.Faucets.ColorSpread},
		{"faucets.position_spread", c.Faucets.PositionSpread},
		{"faucets.velocity_spread", c.Faucets.VelocitySpread},
		{"streams.decay", c.Streams.Decay},
	}
	for _, d := range dists {
		if _, err := dist.New(d.c); err != nil {
			return fmt.Errorf("config: %s: %w", d.name, err)
		}
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
