// Package stream advances a single stream from emission to termination.
//
// A stream carries position, velocity, color and a decay factor. Every
// step it deposits its current color on the canvas, picks up the net
// force at its position, moves, and fades. Streams never interact with
// each other; the canvas is their only shared write target.
package stream

import (
	"math"

	"github.com/pthm-cable/spill/canvas"
	"github.com/pthm-cable/spill/config"
	"github.com/pthm-cable/spill/field"
	"github.com/pthm-cable/spill/geom"
)

// Reason records why a stream terminated.
type Reason uint8

const (
	// Active means the stream has not terminated yet.
	Active Reason = iota
	// OutOfBounds means the stream left the canvas margin.
	OutOfBounds
	// Decayed means the stream's color faded below visibility or its
	// lifetime budget ran out.
	Decayed
)

// String returns the reason name.
func (r Reason) String() string {
	switch r {
	case Active:
		return "active"
	case OutOfBounds:
		return "out_of_bounds"
	case Decayed:
		return "decayed"
	}
	return "unknown"
}

// State is the transient per-stream integration state. Created from a
// faucet, mutated every step, discarded on termination.
type State struct {
	Pos, Vel geom.Vec
	Color    geom.RGB
	// DecayFactor is the stream's lifetime in steps: each step scales the
	// color by exp(-1/DecayFactor). Zero terminates after the first
	// contribution.
	DecayFactor float64
	Steps       int
	Contribs    int
}

// minVisible is the color vector length below which a stream counts as
// invisible and terminates.
const minVisible = 1e-3

// Integrator advances streams under a fixed force field, accumulating
// onto a canvas. Safe to use from one goroutine at a time; independent
// integrators may share the read-only field but not the canvas.
type Integrator struct {
	field  *field.Field
	canvas *canvas.Canvas
	size   float64
	velCap float64
	colCap float64
	// maxSteps is the hard termination bound implied by the decay model:
	// the color falls below minVisible within
	// max_decay_factor * ln(sqrt(3)*color_cap/minVisible) steps.
	maxSteps int
}

// New creates an integrator for the given field and canvas.
func New(f *field.Field, cv *canvas.Canvas, cfg *config.Config) *Integrator {
	bound := cfg.Streams.MaxDecayFactor * math.Log(math.Sqrt(3)*cfg.Streams.ColorCap/minVisible)
	maxSteps := 1
	if bound > 0 {
		maxSteps += int(math.Ceil(bound))
	}
	return &Integrator{
		field:    f,
		canvas:   cv,
		size:     float64(cfg.Size),
		velCap:   cfg.Streams.VelocityCap,
		colCap:   cfg.Streams.ColorCap,
		maxSteps: maxSteps,
	}
}

// Run advances st until it terminates and returns the reason.
// Termination is guaranteed: the color strictly decays toward the
// visibility threshold and maxSteps backstops the loop.
func (it *Integrator) Run(st *State) Reason {
	for {
		if r := it.Step(st); r != Active {
			return r
		}
	}
}

// Step performs one integration step: contribute, accelerate, move,
// fade, then check termination.
func (it *Integrator) Step(st *State) Reason {
	// Contribution uses the pre-step position, so the spawn pixel is
	// painted before any movement.
	px := int(math.Floor(st.Pos.X))
	py := int(math.Floor(st.Pos.Y))
	if it.canvas.Add(px, py, st.Color) {
		st.Contribs++
	}
	st.Steps++

	if st.DecayFactor <= 0 {
		return Decayed
	}

	f := it.field.At(st.Pos)
	st.Vel = st.Vel.Add(f)
	// Hard per-component saturation, not a rescale: direction may change
	// when only one axis saturates.
	st.Vel.X = geom.Clamp(st.Vel.X, -it.velCap, it.velCap)
	st.Vel.Y = geom.Clamp(st.Vel.Y, -it.velCap, it.velCap)

	st.Pos = st.Pos.Add(st.Vel)

	st.Color = geom.ClampRGB(st.Color.Scale(math.Exp(-1/st.DecayFactor)), it.colCap)

	if st.Color.Len() < minVisible || st.Steps >= it.maxSteps {
		return Decayed
	}
	if it.outOfBounds(st.Pos) {
		return OutOfBounds
	}
	return Active
}

// outOfBounds reports whether p has left the integration margin. The
// margin extends one canvas length past every edge, so a stream that
// drifts off the canvas can still be pulled back by forces; beyond the
// margin it is not coming back.
func (it *Integrator) outOfBounds(p geom.Vec) bool {
	return p.X < -it.size || p.X >= 2*it.size || p.Y < -it.size || p.Y >= 2*it.size
}
