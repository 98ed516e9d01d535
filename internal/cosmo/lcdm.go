package cosmo

import (
	"fmt"
	"math"
)

// LCDM is flat Lambda-CDM with E(z) = sqrt(Omega_m (1+z)^3 + 1 - Omega_m).
// Distances are integrated numerically.
type LCDM struct {
	h0     float64 // Hubble constant, km/s/Mpc
	omegaM float64 // matter density fraction
}

// NewLCDM returns flat Lambda-CDM at H0 = 70 km/s/Mpc, Omega_m = 0.3.
func NewLCDM() *LCDM {
	return &LCDM{h0: 70, omegaM: 0.3}
}

func (m *LCDM) Name() string         { return "lcdm" }
func (m *LCDM) ParamNames() []string { return []string{"H0", "Omega_m"} }
func (m *LCDM) Params() []float64    { return []float64{m.h0, m.omegaM} }

func (m *LCDM) SetParams(p []float64) error {
	if len(p) != 2 {
		return fmt.Errorf("lcdm: want 2 parameters, got %d", len(p))
	}
	m.h0, m.omegaM = p[0], p[1]
	return nil
}

func (m *LCDM) SetParam(name string, value float64) error {
	switch name {
	case "H0":
		m.h0 = value
	case "Omega_m":
		m.omegaM = value
	default:
		return fmt.Errorf("lcdm: unknown parameter %q", name)
	}
	return nil
}

func (m *LCDM) E(z float64) float64 {
	return math.Sqrt(m.omegaM*math.Pow(1+z, 3) + 1 - m.omegaM)
}

func (m *LCDM) HubbleParameter(z float64) float64 {
	return m.h0 * m.E(z)
}

func (m *LCDM) LuminosityDistance(z float64) float64 {
	dC := comovingDistance(m.E, SpeedOfLight/m.h0, z)
	return (1 + z) * dC
}

func (m *LCDM) DistanceModulus(z float64) float64 {
	return distanceModulus(m.LuminosityDistance(z))
}

// approxHubbleDistance is the h-unit Hubble distance c/(100 km/s/Mpc),
// rounded to 3000 Mpc as in the textbook low-z formula.
const approxHubbleDistance = 3000.0

// LCDMApprox is the quadratic low-redshift approximation
//
//	d_L = 3000 * z * (1 + z/2)  [Mpc]
//
// kept for cheap model comparisons. The luminosity distance carries no
// free parameter; H0 and Omega_m only enter the Hubble rate.
type LCDMApprox struct {
	h0     float64
	omegaM float64
}

// NewLCDMApprox returns the approximation tied to H0 = 70 km/s/Mpc,
// Omega_m = 0.3.
func NewLCDMApprox() *LCDMApprox {
	return &LCDMApprox{h0: 70, omegaM: 0.3}
}

func (m *LCDMApprox) Name() string         { return "lcdm-approx" }
func (m *LCDMApprox) ParamNames() []string { return []string{"H0", "Omega_m"} }
func (m *LCDMApprox) Params() []float64    { return []float64{m.h0, m.omegaM} }

func (m *LCDMApprox) SetParams(p []float64) error {
	if len(p) != 2 {
		return fmt.Errorf("lcdm-approx: want 2 parameters, got %d", len(p))
	}
	m.h0, m.omegaM = p[0], p[1]
	return nil
}

func (m *LCDMApprox) SetParam(name string, value float64) error {
	switch name {
	case "H0":
		m.h0 = value
	case "Omega_m":
		m.omegaM = value
	default:
		return fmt.Errorf("lcdm-approx: unknown parameter %q", name)
	}
	return nil
}

func (m *LCDMApprox) E(z float64) float64 {
	return math.Sqrt(m.omegaM*math.Pow(1+z, 3) + 1 - m.omegaM)
}

func (m *LCDMApprox) HubbleParameter(z float64) float64 {
	return m.h0 * m.E(z)
}

func (m *LCDMApprox) LuminosityDistance(z float64) float64 {
	if z <= 0 {
		return math.NaN()
	}
	return approxHubbleDistance * z * (1 + z/2)
}

func (m *LCDMApprox) DistanceModulus(z float64) float64 {
	return distanceModulus(m.LuminosityDistance(z))
}
