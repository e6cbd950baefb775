package field

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/pthm-cable/spill/config"
	"github.com/pthm-cable/spill/dist"
	"github.com/pthm-cable/spill/geom"
)

func testConfig(numForces int) *config.Config {
	return &config.Config{
		Size: 100,
		Forces: config.ForcesConfig{
			Count:    numForces,
			Strength: dist.Config{Kind: "lognormal", Mean: 10, Spread: 2},
			Spread:   dist.Config{Kind: "lognormal", Mean: 20, Spread: 2},
		},
	}
}

func TestGenerateCountAndBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	f, err := Generate(testConfig(50), rng)
	if err != nil {
		t.Fatalf("generating field: %v", err)
	}
	if f.Len() != 50 {
		t.Fatalf("expected 50 forces, got %d", f.Len())
	}
	for i, fc := range f.Forces() {
		if fc.Pos.X < 0 || fc.Pos.X >= 100 || fc.Pos.Y < 0 || fc.Pos.Y >= 100 {
			t.Errorf("force %d placed outside canvas: %v", i, fc.Pos)
		}
		if fc.Strength <= 0 || fc.Spread <= 0 {
			t.Errorf("force %d has non-positive strength/spread: %v/%v", i, fc.Strength, fc.Spread)
		}
	}
}

func TestEmptyFieldIsZero(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	f, err := Generate(testConfig(0), rng)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.At(geom.Vec{X: 50, Y: 50}); got != (geom.Vec{}) {
		t.Errorf("empty field returned %v", got)
	}
}

func TestZeroStrengthForceContributesNothing(t *testing.T) {
	for _, kind := range []Kind{Inward, Outward, Linear} {
		f := Force{Pos: geom.Vec{X: 10, Y: 10}, Kind: kind, Dir: geom.Vec{X: 1}, Strength: 0, Spread: 5}
		if got := f.Apply(geom.Vec{X: 12, Y: 14}); got != (geom.Vec{}) {
			t.Errorf("kind %d: zero-strength force contributed %v", kind, got)
		}
	}
}

func TestApplyBoundedAtCenter(t *testing.T) {
	for _, kind := range []Kind{Inward, Outward, Linear} {
		f := Force{Pos: geom.Vec{X: 10, Y: 10}, Kind: kind, Dir: geom.Vec{X: 1}, Strength: 1000, Spread: 0.5}
		got := f.Apply(f.Pos)
		if math.IsNaN(got.X) || math.IsNaN(got.Y) || math.IsInf(got.X, 0) || math.IsInf(got.Y, 0) {
			t.Errorf("kind %d: force at its own center is %v", kind, got)
		}
		if got.Len() > f.Strength/f.Spread+1e-9 {
			t.Errorf("kind %d: magnitude %v exceeds bound %v", kind, got.Len(), f.Strength/f.Spread)
		}
	}
}

func TestApplyMonotonicFalloff(t *testing.T) {
	f := Force{Pos: geom.Vec{}, Kind: Inward, Strength: 10, Spread: 5}
	prev := math.Inf(1)
	for d := 1.0; d < 50; d += 1.0 {
		mag := f.Apply(geom.Vec{X: d}).Len()
		if mag > prev {
			t.Fatalf("magnitude increased with distance at d=%v: %v > %v", d, mag, prev)
		}
		prev = mag
	}
}

func TestInwardPullsTowardCenter(t *testing.T) {
	f := Force{Pos: geom.Vec{X: 10, Y: 0}, Kind: Inward, Strength: 10, Spread: 5}
	got := f.Apply(geom.Vec{X: 20, Y: 0})
	if got.X >= 0 {
		t.Errorf("inward force pushed away from center: %v", got)
	}
	f.Kind = Outward
	got = f.Apply(geom.Vec{X: 20, Y: 0})
	if got.X <= 0 {
		t.Errorf("outward force pulled toward center: %v", got)
	}
}

func TestGenerateDeterminism(t *testing.T) {
	a, err := Generate(testConfig(20), rand.New(rand.NewPCG(9, 9)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(testConfig(20), rand.New(rand.NewPCG(9, 9)))
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Forces() {
		if a.Forces()[i] != b.Forces()[i] {
			t.Fatalf("force %d diverged: %+v vs %+v", i, a.Forces()[i], b.Forces()[i])
		}
	}
	p := geom.Vec{X: 33, Y: 77}
	if a.At(p) != b.At(p) {
		t.Errorf("field queries diverged: %v vs %v", a.At(p), b.At(p))
	}
}
