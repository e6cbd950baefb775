// Package telemetry aggregates run statistics and writes them to a run
// directory.
package telemetry

import (
	"time"

	"github.com/pthm-cable/spill/stream"
)

// FaucetStats holds per-faucet aggregates for one run.
type FaucetStats struct {
	Faucet        int   `csv:"faucet"`
	Streams       int   `csv:"streams"`
	Steps         int64 `csv:"steps"`
	Contributions int64 `csv:"contributions"`
	Decayed       int   `csv:"decayed"`
	OutOfBounds   int   `csv:"out_of_bounds"`
}

// RunStats holds whole-run aggregates. Record is not safe for
// concurrent use; parallel workers keep their own RunStats and Merge
// them afterward.
type RunStats struct {
	Streams       int
	Decayed       int
	OutOfBounds   int
	TotalSteps    int64
	TotalContribs int64
	MaxSteps      int
	Elapsed       time.Duration

	Faucets []FaucetStats
}

// NewRunStats creates empty stats for a run with the given faucet count.
func NewRunStats(numFaucets int) *RunStats {
	s := &RunStats{Faucets: make([]FaucetStats, numFaucets)}
	for i := range s.Faucets {
		s.Faucets[i].Faucet = i
	}
	return s
}

// Record accounts one terminated stream.
func (s *RunStats) Record(faucet int, reason stream.Reason, steps, contribs int) {
	s.Streams++
	s.TotalSteps += int64(steps)
	s.TotalContribs += int64(contribs)
	if steps > s.MaxSteps {
		s.MaxSteps = steps
	}

	fs := &s.Faucets[faucet]
	fs.Streams++
	fs.Steps += int64(steps)
	fs.Contributions += int64(contribs)

	switch reason {
	case stream.Decayed:
		s.Decayed++
		fs.Decayed++
	case stream.OutOfBounds:
		s.OutOfBounds++
		fs.OutOfBounds++
	}
}

// Merge folds other into s. Both must describe the same faucet set.
func (s *RunStats) Merge(other *RunStats) {
	s.Streams += other.Streams
	s.Decayed += other.Decayed
	s.OutOfBounds += other.OutOfBounds
	s.TotalSteps += other.TotalSteps
	s.TotalContribs += other.TotalContribs
	if other.MaxSteps > s.MaxSteps {
		s.MaxSteps = other.MaxSteps
	}
	for i := range s.Faucets {
		fs, ofs := &s.Faucets[i], &other.Faucets[i]
		fs.Streams += ofs.Streams
		fs.Steps += ofs.Steps
		fs.Contributions += ofs.Contributions
		fs.Decayed += ofs.Decayed
		fs.OutOfBounds += ofs.OutOfBounds
	}
}

// MeanSteps returns the average step count per stream.
func (s *RunStats) MeanSteps() float64 {
	if s.Streams == 0 {
		return 0
	}
	return float64(s.TotalSteps) / float64(s.Streams)
}
