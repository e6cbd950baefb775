// Package dist draws scalars from the configured probability distributions.
//
// A Dist is a tagged variant over the supported shapes. All parameter
// validation happens in New; Sample never fails.
package dist

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Kind identifies a distribution shape.
type Kind string

const (
	// KindNormal is a Gaussian with mean Mean and standard deviation Spread.
	KindNormal Kind = "normal"
	// KindLogNormal is a log-normal with multiplicative center Mean and
	// multiplicative spread Spread (mu = ln Mean, sigma = ln Spread).
	KindLogNormal Kind = "lognormal"
	// KindExp is an exponential with mean Mean (rate 1/Mean).
	KindExp Kind = "exp"
	// KindFixed always yields Mean. Useful for pinning a parameter in a
	// preset or a test.
	KindFixed Kind = "fixed"
)

// Config is the YAML representation of a distribution.
type Config struct {
	Kind   string  `yaml:"kind"`
	Mean   float64 `yaml:"mean"`
	Spread float64 `yaml:"spread,omitempty"`
}

// Dist is a validated, immutable distribution.
type Dist struct {
	kind   Kind
	mean   float64
	spread float64
}

// New validates c and returns the distribution it describes.
func New(c Config) (Dist, error) {
	if !isFinite(c.Mean) || !isFinite(c.Spread) {
		return Dist{}, fmt.Errorf("dist %q: parameters must be finite (mean=%v spread=%v)", c.Kind, c.Mean, c.Spread)
	}
	kind := Kind(c.Kind)
	switch kind {
	case KindNormal:
		if c.Spread <= 0 {
			return Dist{}, fmt.Errorf("dist normal: spread must be > 0, got %v", c.Spread)
		}
	case KindLogNormal:
		if c.Mean <= 0 {
			return Dist{}, fmt.Errorf("dist lognormal: mean must be > 0, got %v", c.Mean)
		}
		if c.Spread <= 1 {
			return Dist{}, fmt.Errorf("dist lognormal: spread must be > 1, got %v", c.Spread)
		}
	case KindExp:
		if c.Mean <= 0 {
			return Dist{}, fmt.Errorf("dist exp: mean must be > 0, got %v", c.Mean)
		}
	case KindFixed:
		// Any finite value is a valid constant.
	default:
		return Dist{}, fmt.Errorf("dist: unknown kind %q", c.Kind)
	}
	return Dist{kind: kind, mean: c.Mean, spread: c.Spread}, nil
}

// MustNew is like New but panics on error. For tests and presets built
// from literals.
func MustNew(c Config) Dist {
	d, err := New(c)
	if err != nil {
		panic(err)
	}
	return d
}

// Kind returns the distribution shape.
func (d Dist) Kind() Kind { return d.kind }

// Sample draws one value from d using rng. The rng advances by exactly
// the draws the underlying sampler consumes; a Dist itself holds no
// random state.
func (d Dist) Sample(rng *rand.Rand) float64 {
	switch d.kind {
	case KindNormal:
		return distuv.Normal{Mu: d.mean, Sigma: d.spread, Src: rng}.Rand()
	case KindLogNormal:
		return distuv.LogNormal{Mu: math.Log(d.mean), Sigma: math.Log(d.spread), Src: rng}.Rand()
	case KindExp:
		return distuv.Exponential{Rate: 1 / d.mean, Src: rng}.Rand()
	case KindFixed:
		return d.mean
	}
	panic(fmt.Sprintf("dist: sample on invalid kind %q", d.kind))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
