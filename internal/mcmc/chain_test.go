package mcmc

import (
	"math"
	"testing"
)

func buildTestChain() *Chain {
	c := NewChain([]string{"a", "b"}, 2, 1, 42)

	// Sweep 0 (burn-in), then two retained sweeps.
	c.Append([]Params{{0, 0}, {100, 100}}, []float64{-1, -50})
	c.Append([]Params{{1, 2}, {3, 4}}, []float64{-2, -3})
	c.Append([]Params{{5, 6}, {7, 8}}, []float64{-4, -0.5})
	return c
}

func TestChainAccessors(t *testing.T) {
	c := buildTestChain()

	if c.Len() != 3 {
		t.Errorf("expected 3 sweeps, got %d", c.Len())
	}
	if c.Walkers() != 2 || c.Dim() != 2 {
		t.Errorf("unexpected shape %dx%d", c.Walkers(), c.Dim())
	}
	if c.Seed() != 42 {
		t.Errorf("expected seed 42, got %d", c.Seed())
	}

	p := c.At(1, 1)
	if p[0] != 3 || p[1] != 4 {
		t.Errorf("At(1,1) = %v, want [3 4]", p)
	}
	if c.LogProbAt(2, 0) != -4 {
		t.Errorf("LogProbAt(2,0) = %f, want -4", c.LogProbAt(2, 0))
	}
}

func TestChainFlatDiscardsBurnIn(t *testing.T) {
	c := buildTestChain()

	flat := c.Flat()
	if len(flat) != 4 {
		t.Fatalf("expected 4 post-burn-in samples, got %d", len(flat))
	}
	if flat[0][0] != 1 {
		t.Errorf("burn-in sample leaked into Flat: %v", flat[0])
	}

	a := c.FlatParam(0)
	want := []float64{1, 3, 5, 7}
	for i := range want {
		if a[i] != want[i] {
			t.Errorf("FlatParam(0)[%d] = %f, want %f", i, a[i], want[i])
		}
	}

	lp := c.FlatLogProb()
	if len(lp) != 4 || lp[0] != -2 {
		t.Errorf("FlatLogProb = %v", lp)
	}
}

func TestChainWalkerSeries(t *testing.T) {
	c := buildTestChain()

	series := c.WalkerSeries(1, 0)
	if len(series) != 2 || series[0] != 2 || series[1] != 6 {
		t.Errorf("WalkerSeries(1,0) = %v, want [2 6]", series)
	}
}

func TestChainMaxLogProb(t *testing.T) {
	c := buildTestChain()

	best, lp := c.MaxLogProb()
	if lp != -0.5 {
		t.Errorf("expected best log prob -0.5, got %f", lp)
	}
	if best[0] != 7 || best[1] != 8 {
		t.Errorf("expected best sample [7 8], got %v", best)
	}

	empty := NewChain([]string{"a"}, 2, 0, 1)
	if p, lp := empty.MaxLogProb(); p != nil || !math.IsInf(lp, -1) {
		t.Error("empty chain should report (nil, -Inf)")
	}
}

func TestChainSummary(t *testing.T) {
	c := buildTestChain()

	summary := c.Summary()
	if len(summary) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summary))
	}

	// Post-burn-in values of parameter a are 1, 3, 5, 7.
	s := summary[0]
	if s.Name != "a" {
		t.Errorf("expected name a, got %s", s.Name)
	}
	if math.Abs(s.Median-4) > 1e-9 {
		t.Errorf("expected median 4, got %f", s.Median)
	}
	if s.P16 > s.Median || s.P84 < s.Median {
		t.Errorf("percentiles out of order: p16=%f median=%f p84=%f", s.P16, s.Median, s.P84)
	}
	if s.Best != 7 {
		t.Errorf("expected best 7, got %f", s.Best)
	}

	if sh := NewChain([]string{"a"}, 2, 5, 1).Summary(); sh != nil {
		t.Error("chain without post-burn-in samples should summarize to nil")
	}
}
