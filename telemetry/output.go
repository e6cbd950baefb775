package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/spill/config"
)

// Output writes run artifacts (CSV stats, config snapshot) into a
// directory. A nil Output discards everything, so callers don't guard
// every write.
type Output struct {
	dir string
}

// NewOutput creates the output directory. Returns nil if dir is empty
// (output disabled).
func NewOutput(dir string) (*Output, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Output{dir: dir}, nil
}

// WriteConfig saves the effective configuration as YAML.
func (o *Output) WriteConfig(cfg *config.Config) error {
	if o == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(o.dir, "config.yaml"))
}

// WriteStats writes per-faucet aggregates to faucets.csv.
func (o *Output) WriteStats(stats *RunStats) error {
	if o == nil {
		return nil
	}
	path := filepath.Join(o.dir, "faucets.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating faucets.csv: %w", err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&stats.Faucets, f); err != nil {
		return fmt.Errorf("writing faucets.csv: %w", err)
	}
	return nil
}
