package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pthm-cable/spill/config"
	"github.com/pthm-cable/spill/render"
	"github.com/pthm-cable/spill/sim"
	"github.com/pthm-cable/spill/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = use config seed, or time-based if that is also 0)")
	size := flag.Int("size", 0, "Canvas size override in pixels (0 = use config)")
	streams := flag.Int("streams", -1, "Stream count override (-1 = use config)")
	out := flag.String("out", "", "Output image path (empty = img-<n>-<size>.png in cwd)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV stats and config snapshot")
	workers := flag.Int("workers", 0, "Parallel integration workers (0 = GOMAXPROCS)")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// CLI overrides, re-validated afterwards.
	if *size > 0 {
		cfg.Size = *size
	}
	if *streams >= 0 {
		cfg.Streams.Count = *streams
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Seed
	}
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	slog.Info("starting run",
		"seed", rngSeed,
		"size", cfg.Size,
		"forces", cfg.Forces.Count,
		"faucets", cfg.Faucets.Count,
		"streams", cfg.Streams.Count,
		"velocity_cap", cfg.Streams.VelocityCap,
		"color_cap", cfg.Streams.ColorCap,
		"max_decay_factor", cfg.Streams.MaxDecayFactor,
		"workers", *workers,
	)

	output, err := telemetry.NewOutput(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to snapshot config", "error", err)
		os.Exit(1)
	}

	result, err := sim.Run(cfg, sim.Options{Seed: rngSeed, Workers: *workers})
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}

	stats := result.Stats
	slog.Info("run complete",
		"elapsed", stats.Elapsed.Round(time.Millisecond).String(),
		"streams", stats.Streams,
		"decayed", stats.Decayed,
		"out_of_bounds", stats.OutOfBounds,
		"total_steps", stats.TotalSteps,
		"mean_steps", stats.MeanSteps(),
		"max_steps", stats.MaxSteps,
		"contributions", stats.TotalContribs,
	)

	if err := output.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
		os.Exit(1)
	}

	path := *out
	if path == "" {
		name, err := render.NextFilename(".", cfg.Size)
		if err != nil {
			slog.Error("failed to pick output filename", "error", err)
			os.Exit(1)
		}
		path = name
	}

	img := render.Image(result.Canvas, cfg.Streams.ColorCap)
	if err := render.SavePNG(path, img); err != nil {
		slog.Error("failed to save image", "error", err)
		os.Exit(1)
	}

	abs, _ := filepath.Abs(path)
	slog.Info("image saved", "path", abs)
}
