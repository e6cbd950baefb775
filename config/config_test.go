package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/spill/dist"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}
	if cfg.Size != 1000 {
		t.Errorf("expected default size 1000, got %d", cfg.Size)
	}
	if cfg.Forces.Count != 200 {
		t.Errorf("expected 200 forces, got %d", cfg.Forces.Count)
	}
	if cfg.Faucets.Count != 40 {
		t.Errorf("expected 40 faucets, got %d", cfg.Faucets.Count)
	}
	if cfg.Streams.Count != 100000 {
		t.Errorf("expected 100000 streams, got %d", cfg.Streams.Count)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("size: 128\nstreams:\n  count: 500\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading user config: %v", err)
	}
	if cfg.Size != 128 {
		t.Errorf("expected overridden size 128, got %d", cfg.Size)
	}
	if cfg.Streams.Count != 500 {
		t.Errorf("expected overridden stream count 500, got %d", cfg.Streams.Count)
	}
	// Untouched fields keep defaults.
	if cfg.Faucets.Count != 40 {
		t.Errorf("expected default faucet count 40, got %d", cfg.Faucets.Count)
	}
}

func TestValidateRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero size", func(c *Config) { c.Size = 0 }},
		{"negative forces", func(c *Config) { c.Forces.Count = -1 }},
		{"negative faucets", func(c *Config) { c.Faucets.Count = -1 }},
		{"negative streams", func(c *Config) { c.Streams.Count = -1 }},
		{"streams without faucets", func(c *Config) { c.Faucets.Count = 0 }},
		{"negative max decay factor", func(c *Config) { c.Streams.MaxDecayFactor = -1 }},
		{"zero velocity cap", func(c *Config) { c.Streams.VelocityCap = 0 }},
		{"zero color cap", func(c *Config) { c.Streams.ColorCap = 0 }},
		{"bad strength dist", func(c *Config) { c.Forces.Strength = dist.Config{Kind: "lognormal", Mean: -1, Spread: 2} }},
		{"bad decay dist", func(c *Config) { c.Streams.Decay = dist.Config{Kind: "exp", Mean: 0} }},
		{"unknown dist kind", func(c *Config) { c.Faucets.ColorCenter = dist.Config{Kind: "weibull", Mean: 1, Spread: 1} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := MustLoad("")
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateAcceptsEmptyRun(t *testing.T) {
	cfg := MustLoad("")
	cfg.Forces.Count = 0
	cfg.Faucets.Count = 0
	cfg.Streams.Count = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("empty run should validate: %v", err)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := MustLoad("")
	cfg.Size = 321
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if loaded.Size != 321 {
		t.Errorf("round trip lost size: got %d", loaded.Size)
	}
	if loaded.Streams.Decay != cfg.Streams.Decay {
		t.Errorf("round trip changed decay dist: %+v vs %+v", loaded.Streams.Decay, cfg.Streams.Decay)
	}
}
