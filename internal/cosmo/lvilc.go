package cosmo

import (
	"fmt"
	"math"
)

// LVILC (local-void infall, late collapse) models the late-time
// expansion of an underdense region whose matter falls onto a central
// supermassive black hole on a timescale t_fall. The infall adds a
// 1/t_fall term to the locally measured rate H0, giving the effective
// present-day rate
//
//	H_eff0 = H0 + 977.792/t_fall  [km/s/Mpc]
//
// which must be positive for the model to describe expansion. The
// black hole contributes a drag term through the dimensionless ratio
// omega = r_g(M_bh)/d_H, steepening the expansion rate to
//
//	E(z) = (1+z) * sqrt(1 + omega*z)
//
// H0 is conventionally negative here (the void interior contracts
// relative to the infall flow); the defaults reproduce a present-day
// rate near 64 km/s/Mpc.
type LVILC struct {
	h0    float64 // local rate offset, km/s/Mpc
	mBH   float64 // central black hole mass, M_sun
	tFall float64 // infall timescale, Gyr
}

// NewLVILC returns the model at its fiducial parameters
// (H0 = -6.73 km/s/Mpc, M_bh = 1e23 M_sun, t_fall = 13.8 Gyr).
func NewLVILC() *LVILC {
	return &LVILC{h0: -6.73, mBH: 1e23, tFall: 13.8}
}

func (m *LVILC) Name() string         { return "lvilc" }
func (m *LVILC) ParamNames() []string { return []string{"H0", "M_bh", "t_fall"} }
func (m *LVILC) Params() []float64    { return []float64{m.h0, m.mBH, m.tFall} }

func (m *LVILC) SetParams(p []float64) error {
	if len(p) != 3 {
		return fmt.Errorf("lvilc: want 3 parameters, got %d", len(p))
	}
	m.h0, m.mBH, m.tFall = p[0], p[1], p[2]
	return nil
}

func (m *LVILC) SetParam(name string, value float64) error {
	switch name {
	case "H0":
		m.h0 = value
	case "M_bh":
		m.mBH = value
	case "t_fall":
		m.tFall = value
	default:
		return fmt.Errorf("lvilc: unknown parameter %q", name)
	}
	return nil
}

// EffectiveRate is H_eff0 = H0 + 977.792/t_fall in km/s/Mpc. Values
// <= 0 mark a non-expanding configuration; observables return NaN there.
func (m *LVILC) EffectiveRate() float64 {
	if m.tFall == 0 {
		return math.NaN()
	}
	return m.h0 + InvGyrToKmSMpc/m.tFall
}

// HubbleDistance is d_H = c/H_eff0 in Mpc.
func (m *LVILC) HubbleDistance() float64 {
	h := m.EffectiveRate()
	if !(h > 0) {
		return math.NaN()
	}
	return SpeedOfLight / h
}

// Omega is the black hole drag ratio r_g(M_bh)/d_H.
func (m *LVILC) Omega() float64 {
	dH := m.HubbleDistance()
	if math.IsNaN(dH) {
		return math.NaN()
	}
	return GravRadiusPerMsun * m.mBH / dH
}

func (m *LVILC) E(z float64) float64 {
	w := m.Omega()
	if math.IsNaN(w) {
		return math.NaN()
	}
	return (1 + z) * math.Sqrt(1+w*z)
}

func (m *LVILC) HubbleParameter(z float64) float64 {
	return m.EffectiveRate() * m.E(z)
}

func (m *LVILC) LuminosityDistance(z float64) float64 {
	dC := comovingDistance(m.E, m.HubbleDistance(), z)
	return (1 + z) * dC
}

func (m *LVILC) DistanceModulus(z float64) float64 {
	return distanceModulus(m.LuminosityDistance(z))
}
