package cosmo

import (
	"fmt"
	"math"
)

// EdS is the Einstein-de Sitter cosmology (flat, matter only). Its
// comoving distance has the closed form d_C = 2 d_H (1 - 1/sqrt(1+z)),
// which makes it a convenient cross-check for the numerical integrator.
type EdS struct {
	h0 float64 // Hubble constant, km/s/Mpc
}

// NewEdS returns Einstein-de Sitter at H0 = 70 km/s/Mpc.
func NewEdS() *EdS {
	return &EdS{h0: 70}
}

func (m *EdS) Name() string         { return "eds" }
func (m *EdS) ParamNames() []string { return []string{"H0"} }
func (m *EdS) Params() []float64    { return []float64{m.h0} }

func (m *EdS) SetParams(p []float64) error {
	if len(p) != 1 {
		return fmt.Errorf("eds: want 1 parameter, got %d", len(p))
	}
	m.h0 = p[0]
	return nil
}

func (m *EdS) SetParam(name string, value float64) error {
	if name != "H0" {
		return fmt.Errorf("eds: unknown parameter %q", name)
	}
	m.h0 = value
	return nil
}

func (m *EdS) E(z float64) float64 {
	return math.Pow(1+z, 1.5)
}

func (m *EdS) HubbleParameter(z float64) float64 {
	return m.h0 * m.E(z)
}

func (m *EdS) LuminosityDistance(z float64) float64 {
	if z <= 0 || !(m.h0 > 0) {
		return math.NaN()
	}
	dH := SpeedOfLight / m.h0
	dC := 2 * dH * (1 - 1/math.Sqrt(1+z))
	return (1 + z) * dC
}

func (m *EdS) DistanceModulus(z float64) float64 {
	return distanceModulus(m.LuminosityDistance(z))
}
