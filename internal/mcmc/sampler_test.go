package mcmc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/montanaflynn/stats"
)

// gaussianTarget is an isotropic unit normal, the standard analytic
// check for ensemble samplers.
type gaussianTarget struct {
	dim int
}

func (g gaussianTarget) Dim() int { return g.dim }

func (g gaussianTarget) Names() []string {
	names := make([]string, g.dim)
	for i := range names {
		names[i] = fmt.Sprintf("p%d", i)
	}
	return names
}

func (g gaussianTarget) Start() Params { return make(Params, g.dim) }

func (g gaussianTarget) LogProb(p Params) float64 {
	sum := 0.0
	for _, v := range p {
		sum += v * v
	}
	return -sum / 2
}

// rejectAllTarget has no support anywhere.
type rejectAllTarget struct{}

func (rejectAllTarget) Dim() int               { return 2 }
func (rejectAllTarget) Names() []string        { return []string{"a", "b"} }
func (rejectAllTarget) Start() Params          { return Params{1, 1} }
func (rejectAllTarget) LogProb(Params) float64 { return math.Inf(-1) }

func TestSamplerRecoversGaussian(t *testing.T) {
	cfg := RunConfig{Walkers: 16, Steps: 800, BurnIn: 300, Seed: 42}
	s, err := NewSampler(gaussianTarget{dim: 3}, NewStretch(), cfg)
	if err != nil {
		t.Fatalf("NewSampler: %v", err)
	}

	chain, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if chain.Len() != 800 {
		t.Fatalf("expected 800 recorded sweeps, got %d", chain.Len())
	}

	for j := 0; j < 3; j++ {
		vals := chain.FlatParam(j)
		median, _ := stats.Median(vals)
		std, _ := stats.StandardDeviation(vals)

		if math.Abs(median) > 0.25 {
			t.Errorf("param %d: median %f too far from 0", j, median)
		}
		if std < 0.75 || std > 1.25 {
			t.Errorf("param %d: std %f too far from 1", j, std)
		}
	}

	if a := s.Acceptance(); a < 0.2 || a > 0.95 {
		t.Errorf("implausible acceptance rate %f", a)
	}
}

func TestSamplerDeterminism(t *testing.T) {
	cfg := RunConfig{Walkers: 8, Steps: 50, BurnIn: 10, Seed: 7}

	run := func() *Chain {
		s, err := NewSampler(gaussianTarget{dim: 2}, NewStretch(), cfg)
		if err != nil {
			t.Fatalf("NewSampler: %v", err)
		}
		chain, err := s.Run(context.Background())
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		return chain
	}

	a, b := run(), run()
	for step := 0; step < a.Len(); step++ {
		for w := 0; w < a.Walkers(); w++ {
			pa, pb := a.At(step, w), b.At(step, w)
			if pa[0] != pb[0] || pa[1] != pb[1] {
				t.Fatalf("step %d walker %d diverged: %v vs %v", step, w, pa, pb)
			}
		}
	}
}

func TestSamplerSeedChangesRun(t *testing.T) {
	run := func(seed int64) Params {
		cfg := RunConfig{Walkers: 8, Steps: 20, BurnIn: 5, Seed: seed}
		s, _ := NewSampler(gaussianTarget{dim: 2}, NewStretch(), cfg)
		chain, err := s.Run(context.Background())
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		return chain.At(chain.Len()-1, 0)
	}

	if a, b := run(1), run(2); a[0] == b[0] && a[1] == b[1] {
		t.Error("different seeds produced identical chains")
	}
}

func TestSamplerInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  RunConfig
	}{
		{"odd walkers", RunConfig{Walkers: 15, Steps: 100, BurnIn: 10}},
		{"too few walkers", RunConfig{Walkers: 4, Steps: 100, BurnIn: 10}},
		{"zero steps", RunConfig{Walkers: 16, Steps: 0, BurnIn: 0}},
		{"burn-in beyond steps", RunConfig{Walkers: 16, Steps: 100, BurnIn: 100}},
		{"negative burn-in", RunConfig{Walkers: 16, Steps: 100, BurnIn: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSampler(gaussianTarget{dim: 3}, NewStretch(), tt.cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSamplerNoValidStart(t *testing.T) {
	cfg := RunConfig{Walkers: 8, Steps: 10, BurnIn: 2, Seed: 1}
	s, err := NewSampler(rejectAllTarget{}, NewStretch(), cfg)
	if err != nil {
		t.Fatalf("NewSampler: %v", err)
	}

	if err := s.Init(); !errors.Is(err, ErrNoValidStart) {
		t.Errorf("expected ErrNoValidStart, got %v", err)
	}
}

func TestSamplerCustomInitial(t *testing.T) {
	cfg := RunConfig{Walkers: 8, Steps: 10, BurnIn: 2, Seed: 1, Initial: Params{5, 5}}
	s, err := NewSampler(gaussianTarget{dim: 2}, NewStretch(), cfg)
	if err != nil {
		t.Fatalf("NewSampler: %v", err)
	}
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	for _, p := range s.Positions() {
		if math.Abs(p[0]-5) > 0.5 || math.Abs(p[1]-5) > 0.5 {
			t.Errorf("walker started at %v, expected near (5, 5)", p)
		}
	}
}

func TestSamplerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := RunConfig{Walkers: 8, Steps: 1000, BurnIn: 100, Seed: 1}
	s, _ := NewSampler(gaussianTarget{dim: 2}, NewStretch(), cfg)

	chain, err := s.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if chain == nil || chain.Len() != 0 {
		t.Errorf("expected empty partial chain")
	}
}

func TestSamplerMetropolisTunes(t *testing.T) {
	mv := NewMetropolis([]float64{0.5, 0.5})
	cfg := RunConfig{Walkers: 8, Steps: 300, BurnIn: 150, Seed: 3}
	s, err := NewSampler(gaussianTarget{dim: 2}, mv, cfg)
	if err != nil {
		t.Fatalf("NewSampler: %v", err)
	}

	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if mv.Scale() == 1 {
		t.Error("burn-in should have adjusted the Metropolis scale")
	}
	if a := s.Acceptance(); a < 0.05 || a > 0.95 {
		t.Errorf("implausible acceptance rate %f", a)
	}
}

type countingMetric struct {
	seen     int
	accepted int
}

func (c *countingMetric) Name() string { return "count" }
func (c *countingMetric) Observe(o Observation) {
	c.seen++
	if o.Accepted {
		c.accepted++
	}
}
func (c *countingMetric) Value() float64 { return float64(c.seen) }
func (c *countingMetric) Reset()         { c.seen, c.accepted = 0, 0 }

func TestSamplerMetricStream(t *testing.T) {
	cfg := RunConfig{Walkers: 8, Steps: 40, BurnIn: 10, Seed: 5}
	s, _ := NewSampler(gaussianTarget{dim: 2}, NewStretch(), cfg)

	m := &countingMetric{}
	s.AddMetric(m)

	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if m.seen != 8*40 {
		t.Errorf("expected %d observations, got %d", 8*40, m.seen)
	}
	if m.accepted == 0 {
		t.Error("expected some accepted transitions")
	}
}

func TestEnsembleRuns(t *testing.T) {
	cfg := RunConfig{Walkers: 8, Steps: 60, BurnIn: 20, Seed: 11}
	e := NewEnsemble(gaussianTarget{dim: 2}, func() Move { return NewStretch() }, 3)

	chains, err := e.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(chains) != 3 {
		t.Fatalf("expected 3 chains, got %d", len(chains))
	}

	for i, c := range chains {
		if c.Seed() != cfg.Seed+int64(i) {
			t.Errorf("chain %d: expected seed %d, got %d", i, cfg.Seed+int64(i), c.Seed())
		}
		if c.Len() != 60 {
			t.Errorf("chain %d: expected 60 sweeps, got %d", i, c.Len())
		}
	}

	// Different seeds must give different trajectories.
	a, b := chains[0].At(59, 0), chains[1].At(59, 0)
	if a[0] == b[0] && a[1] == b[1] {
		t.Error("ensemble chains with different seeds coincide")
	}
}
