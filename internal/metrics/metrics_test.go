package metrics

import (
	"math"
	"testing"

	"github.com/papari-man/LVILC/internal/mcmc"
)

func TestAcceptanceRate(t *testing.T) {
	m := NewAcceptance()

	if m.Value() != 0 {
		t.Error("expected zero rate before observations")
	}

	m.Observe(mcmc.Observation{Accepted: true})
	m.Observe(mcmc.Observation{Accepted: true})
	m.Observe(mcmc.Observation{Accepted: false})
	m.Observe(mcmc.Observation{Accepted: false})

	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected rate 0.5, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero rate after reset")
	}
}

func TestJumpDistance(t *testing.T) {
	m := NewJumpDistance()

	m.Observe(mcmc.Observation{Accepted: true, Jump: 2.0})
	m.Observe(mcmc.Observation{Accepted: false, Jump: 0})

	if math.Abs(m.Value()-1.0) > 1e-12 {
		t.Errorf("expected mean jump 1.0, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestBestFitTracksMaximum(t *testing.T) {
	m := NewBestFit()

	if m.Value() != 0 {
		t.Error("expected zero before observations")
	}

	m.Observe(mcmc.Observation{Position: mcmc.Params{1, 2}, LogProb: -10})
	m.Observe(mcmc.Observation{Position: mcmc.Params{3, 4}, LogProb: -2})
	m.Observe(mcmc.Observation{Position: mcmc.Params{5, 6}, LogProb: -7})

	if m.Value() != -2 {
		t.Errorf("expected best -2, got %f", m.Value())
	}
	best := m.Params()
	if best[0] != 3 || best[1] != 4 {
		t.Errorf("expected best position [3 4], got %v", best)
	}

	m.Reset()
	if m.Params() != nil {
		t.Error("expected nil position after reset")
	}
}
