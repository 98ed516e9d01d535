package cosmo

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

const (
	// SpeedOfLight is c in km/s.
	SpeedOfLight = 299792.458

	// InvGyrToKmSMpc converts an expansion rate from Gyr^-1 to km/s/Mpc.
	InvGyrToKmSMpc = 977.792

	// GravRadiusPerMsun is the Schwarzschild radius of one solar mass in Mpc.
	GravRadiusPerMsun = 4.78541e-20
)

// quadOrder is the number of Gauss-Legendre nodes used for the comoving
// distance integral. 64 nodes hold the smooth E(z) integrands here well
// below the photometric errors of any supernova sample.
const quadOrder = 64

// Model is a cosmological expansion history. Implementations map
// redshift to observables; parameters are addressable positionally
// (in ParamNames order) for samplers and by name for interactive use.
//
// Observables return NaN for non-physical inputs (z <= 0, or parameter
// combinations outside the model's validity) rather than panicking, so
// likelihood code can reject them uniformly.
type Model interface {
	Name() string
	ParamNames() []string
	Params() []float64
	SetParams(p []float64) error
	SetParam(name string, value float64) error

	// E is the dimensionless expansion rate H(z)/H0.
	E(z float64) float64
	// HubbleParameter is H(z) in km/s/Mpc.
	HubbleParameter(z float64) float64
	// LuminosityDistance is d_L(z) in Mpc.
	LuminosityDistance(z float64) float64
	// DistanceModulus is mu(z) = 5 log10(d_L/Mpc) + 25.
	DistanceModulus(z float64) float64
}

// comovingDistance evaluates d_C = hubbleDistance * int_0^z du/E(u).
func comovingDistance(e func(float64) float64, hubbleDistance, z float64) float64 {
	if z <= 0 || !(hubbleDistance > 0) {
		return math.NaN()
	}
	return hubbleDistance * quad.Fixed(func(u float64) float64 { return 1 / e(u) }, 0, z, quadOrder, nil, 0)
}

// distanceModulus converts a luminosity distance in Mpc to magnitudes.
func distanceModulus(dL float64) float64 {
	if !(dL > 0) {
		return math.NaN()
	}
	return 5*math.Log10(dL) + 25
}
