package cosmo

import (
	"math"
	"testing"
)

func TestEdSClosedForm(t *testing.T) {
	m := NewEdS()

	// The closed form must agree with the generic quadrature path.
	dH := SpeedOfLight / 70.0
	for _, z := range []float64{0.5, 1.0, 2.0} {
		closed := m.LuminosityDistance(z) / (1 + z)
		quadrature := comovingDistance(m.E, dH, z)
		if math.Abs(closed-quadrature)/closed > 1e-8 {
			t.Errorf("z=%.1f: closed form %f differs from quadrature %f", z, closed, quadrature)
		}
	}
}

func TestEdSComovingDistance(t *testing.T) {
	m := NewEdS()

	cases := []struct {
		z, dC float64
	}{
		{0.5, 1571.798},
		{1.0, 2508.777},
		{2.0, 3620.206},
	}

	for _, c := range cases {
		dC := m.LuminosityDistance(c.z) / (1 + c.z)
		if math.Abs(dC-c.dC) > 1e-2 {
			t.Errorf("z=%.1f: expected d_C %f, got %f", c.z, c.dC, dC)
		}
	}
}

func TestEdSParams(t *testing.T) {
	m := NewEdS()

	if err := m.SetParam("H0", 67); err != nil {
		t.Fatalf("SetParam: %v", err)
	}
	if m.Params()[0] != 67 {
		t.Errorf("expected H0 67, got %f", m.Params()[0])
	}

	if err := m.SetParam("Omega_m", 1); err == nil {
		t.Errorf("expected error for unknown parameter")
	}
}
