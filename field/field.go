// Package field implements the force field that bends stream
// trajectories.
//
// A field is a fixed set of point forces generated once per run. Each
// force pushes nearby points along a direction decided by its kind, with
// a Gaussian falloff scaled by its spread. Querying the field is pure
// and O(number of forces).
package field

import (
	"math"
	"math/rand/v2"

	"github.com/pthm-cable/spill/config"
	"github.com/pthm-cable/spill/dist"
	"github.com/pthm-cable/spill/geom"
)

// Kind selects the direction a force pushes in.
type Kind uint8

const (
	// Inward pulls points toward the force center.
	Inward Kind = iota
	// Outward pushes points away from the force center.
	Outward
	// Linear pushes points along a fixed direction regardless of where
	// they sit relative to the center.
	Linear
)

// Force is a single point force. Immutable after generation.
type Force struct {
	Pos      geom.Vec
	Kind     Kind
	Dir      geom.Vec // unit direction, Linear only
	Strength float64
	Spread   float64
}

// softening is the radial distance below which Inward/Outward forces
// contribute nothing; the push direction is undefined at the center.
const softening = 1e-9

// Apply returns the force's contribution at the target point.
func (f *Force) Apply(target geom.Vec) geom.Vec {
	off := target.Sub(f.Pos)
	d := off.Len()
	nd := d / f.Spread
	push := f.Strength / f.Spread * math.Exp(-nd*nd/2)

	var dir geom.Vec
	switch f.Kind {
	case Inward:
		if d < softening {
			return geom.Vec{}
		}
		dir = off.Scale(-1 / d)
	case Outward:
		if d < softening {
			return geom.Vec{}
		}
		dir = off.Scale(1 / d)
	case Linear:
		dir = f.Dir
	}
	return dir.Scale(push)
}

// Field is a fixed set of forces over a square canvas.
type Field struct {
	forces []Force
}

// Generate samples cfg.Forces.Count forces: positions uniform over the
// canvas, kinds uniform over the three kinds, strength and spread from
// their configured distributions. All draws happen here; the field is
// never regenerated mid-run.
func Generate(cfg *config.Config, rng *rand.Rand) (*Field, error) {
	strengthDist, err := dist.New(cfg.Forces.Strength)
	if err != nil {
		return nil, err
	}
	spreadDist, err := dist.New(cfg.Forces.Spread)
	if err != nil {
		return nil, err
	}

	size := float64(cfg.Size)
	forces := make([]Force, cfg.Forces.Count)
	for i := range forces {
		f := &forces[i]
		f.Pos = geom.Vec{X: rng.Float64() * size, Y: rng.Float64() * size}
		switch k := rng.Float64(); {
		case k < 1.0/3.0:
			f.Kind = Inward
		case k < 2.0/3.0:
			f.Kind = Outward
		default:
			f.Kind = Linear
			f.Dir = geom.Dir(rng.Float64() * 2 * math.Pi)
		}
		f.Strength = strengthDist.Sample(rng)
		f.Spread = spreadDist.Sample(rng)
	}
	return &Field{forces: forces}, nil
}

// At returns the net force at p: the vector sum of every force's
// contribution. With no forces the result is the zero vector.
func (f *Field) At(p geom.Vec) geom.Vec {
	var net geom.Vec
	for i := range f.forces {
		net = net.Add(f.forces[i].Apply(p))
	}
	return net
}

// Len returns the number of forces in the field.
func (f *Field) Len() int { return len(f.forces) }

// Forces returns the generated forces. Callers must not mutate them.
func (f *Field) Forces() []Force { return f.forces }
