// Package faucet builds the emission points that spawn streams.
//
// A faucet fixes the center position, velocity and color for its share
// of the stream budget, plus the jitter scales applied when each stream
// spawns. The whole set is generated once per run.
package faucet

import (
	"math"
	"math/rand/v2"

	"github.com/pthm-cable/spill/config"
	"github.com/pthm-cable/spill/dist"
	"github.com/pthm-cable/spill/geom"
	"github.com/pthm-cable/spill/stream"
)

// Faucet is a single emission point. Immutable after generation.
type Faucet struct {
	Pos   geom.Vec
	Vel   geom.Vec
	Color geom.RGB

	// Per-stream spawn jitter scales, multiplied by standard normal
	// draws when a stream is emitted.
	PosJitter   geom.Vec
	VelJitter   geom.Vec
	ColorJitter geom.RGB
}

// Set is the fixed collection of faucets for one run.
type Set struct {
	faucets        []Faucet
	decay          dist.Dist
	maxDecayFactor float64
}

// Generate samples cfg.Faucets.Count faucets. A single color center is
// shared by the whole set; each faucet then gets its own position
// offset, launch velocity, per-channel color offset, and spawn jitter
// scales.
func Generate(cfg *config.Config, rng *rand.Rand) (*Set, error) {
	colorCenterDist, err := dist.New(cfg.Faucets.ColorCenter)
	if err != nil {
		return nil, err
	}
	colorSpreadDist, err := dist.New(cfg.Faucets.ColorSpread)
	if err != nil {
		return nil, err
	}
	posSpreadDist, err := dist.New(cfg.Faucets.PositionSpread)
	if err != nil {
		return nil, err
	}
	velSpreadDist, err := dist.New(cfg.Faucets.VelocitySpread)
	if err != nil {
		return nil, err
	}
	decayDist, err := dist.New(cfg.Streams.Decay)
	if err != nil {
		return nil, err
	}

	center := geom.Vec{X: float64(cfg.Size) / 2, Y: float64(cfg.Size) / 2}
	colorCenter := geom.RGB{
		R: colorCenterDist.Sample(rng),
		G: colorCenterDist.Sample(rng),
		B: colorCenterDist.Sample(rng),
	}

	faucets := make([]Faucet, cfg.Faucets.Count)
	for i := range faucets {
		f := &faucets[i]
		f.Pos = geom.Vec{
			X: center.X + sign(rng)*posSpreadDist.Sample(rng),
			Y: center.Y + sign(rng)*posSpreadDist.Sample(rng),
		}
		f.Vel = geom.Dir(rng.Float64() * 2 * math.Pi).Scale(velSpreadDist.Sample(rng))
		f.Color = colorCenter.Add(geom.RGB{
			R: sign(rng) * colorSpreadDist.Sample(rng),
			G: sign(rng) * colorSpreadDist.Sample(rng),
			B: sign(rng) * colorSpreadDist.Sample(rng),
		})
		f.PosJitter = geom.Vec{X: posSpreadDist.Sample(rng), Y: posSpreadDist.Sample(rng)}
		f.VelJitter = geom.Vec{X: velSpreadDist.Sample(rng), Y: velSpreadDist.Sample(rng)}
		f.ColorJitter = geom.RGB{
			R: colorSpreadDist.Sample(rng),
			G: colorSpreadDist.Sample(rng),
			B: colorSpreadDist.Sample(rng),
		}
	}

	return &Set{
		faucets:        faucets,
		decay:          decayDist,
		maxDecayFactor: cfg.Streams.MaxDecayFactor,
	}, nil
}

// Len returns the number of faucets.
func (s *Set) Len() int { return len(s.faucets) }

// At returns faucet i.
func (s *Set) At(i int) *Faucet { return &s.faucets[i] }

// ForStream returns the faucet index assigned to stream i. Streams are
// partitioned round-robin, so every faucet emits floor or ceil of
// streams/faucets - exact fairness, not an approximation.
func (s *Set) ForStream(i int) int { return i % len(s.faucets) }

// Spawn initializes stream i's state: its faucet's values plus
// independent standard-normal jitter scaled by the faucet's jitter
// fields, and a decay factor clamped to [0, max_decay_factor].
func (s *Set) Spawn(i int, rng *rand.Rand) stream.State {
	f := &s.faucets[s.ForStream(i)]
	return stream.State{
		Pos: geom.Vec{
			X: f.Pos.X + f.PosJitter.X*rng.NormFloat64(),
			Y: f.Pos.Y + f.PosJitter.Y*rng.NormFloat64(),
		},
		Vel: geom.Vec{
			X: f.Vel.X + f.VelJitter.X*rng.NormFloat64(),
			Y: f.Vel.Y + f.VelJitter.Y*rng.NormFloat64(),
		},
		Color: geom.RGB{
			R: f.Color.R + f.ColorJitter.R*rng.NormFloat64(),
			G: f.Color.G + f.ColorJitter.G*rng.NormFloat64(),
			B: f.Color.B + f.ColorJitter.B*rng.NormFloat64(),
		},
		DecayFactor: geom.Clamp(s.decay.Sample(rng), 0, s.maxDecayFactor),
	}
}

func sign(rng *rand.Rand) float64 {
	if rng.IntN(2) == 0 {
		return -1
	}
	return 1
}
