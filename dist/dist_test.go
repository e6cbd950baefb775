package dist

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestNewRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown kind", Config{Kind: "uniform", Mean: 1}},
		{"normal zero spread", Config{Kind: "normal", Mean: 0, Spread: 0}},
		{"normal negative spread", Config{Kind: "normal", Mean: 0, Spread: -1}},
		{"lognormal zero mean", Config{Kind: "lognormal", Mean: 0, Spread: 2}},
		{"lognormal spread one", Config{Kind: "lognormal", Mean: 10, Spread: 1}},
		{"exp zero mean", Config{Kind: "exp", Mean: 0}},
		{"exp negative mean", Config{Kind: "exp", Mean: -3}},
		{"nan mean", Config{Kind: "normal", Mean: math.NaN(), Spread: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Errorf("expected error for %+v", tt.cfg)
			}
		})
	}
}

func TestNewAcceptsValid(t *testing.T) {
	tests := []Config{
		{Kind: "normal", Mean: 0, Spread: 0.03},
		{Kind: "lognormal", Mean: 10, Spread: 2},
		{Kind: "exp", Mean: 250},
		{Kind: "fixed", Mean: 0},
		{Kind: "fixed", Mean: -7.5},
	}
	for _, cfg := range tests {
		if _, err := New(cfg); err != nil {
			t.Errorf("unexpected error for %+v: %v", cfg, err)
		}
	}
}

func TestSampleSigns(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))

	logNorm := MustNew(Config{Kind: "lognormal", Mean: 10, Spread: 2})
	exp := MustNew(Config{Kind: "exp", Mean: 5})
	for i := 0; i < 1000; i++ {
		if v := logNorm.Sample(rng); v <= 0 {
			t.Fatalf("lognormal produced non-positive sample %v", v)
		}
		if v := exp.Sample(rng); v < 0 {
			t.Fatalf("exponential produced negative sample %v", v)
		}
	}

	// Normal must produce both signs around a zero mean.
	norm := MustNew(Config{Kind: "normal", Mean: 0, Spread: 1})
	var neg, pos int
	for i := 0; i < 1000; i++ {
		if norm.Sample(rng) < 0 {
			neg++
		} else {
			pos++
		}
	}
	if neg == 0 || pos == 0 {
		t.Errorf("normal samples one-sided: %d negative, %d positive", neg, pos)
	}
}

func TestSampleFixed(t *testing.T) {
	d := MustNew(Config{Kind: "fixed", Mean: 3.25})
	rng := rand.New(rand.NewPCG(1, 1))
	for i := 0; i < 10; i++ {
		if v := d.Sample(rng); v != 3.25 {
			t.Fatalf("fixed dist returned %v", v)
		}
	}
}

func TestSampleDeterminism(t *testing.T) {
	d := MustNew(Config{Kind: "lognormal", Mean: 10, Spread: 2})
	a := rand.New(rand.NewPCG(7, 7))
	b := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 100; i++ {
		va, vb := d.Sample(a), d.Sample(b)
		if va != vb {
			t.Fatalf("same seed diverged at draw %d: %v vs %v", i, va, vb)
		}
	}
}
