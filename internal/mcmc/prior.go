package mcmc

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Prior is a one-dimensional prior density on a named parameter.
type Prior interface {
	Param() string
	LogDensity(x float64) float64
	Sample(rng *rand.Rand) float64
	// Bounds returns the effective support, used for proposal scales
	// and plot ranges.
	Bounds() (lo, hi float64)
}

// Uniform is a flat prior on [Lo, Hi].
type Uniform struct {
	Name   string
	Lo, Hi float64
}

func (u Uniform) Param() string { return u.Name }

func (u Uniform) LogDensity(x float64) float64 {
	if x < u.Lo || x > u.Hi {
		return math.Inf(-1)
	}
	return -math.Log(u.Hi - u.Lo)
}

func (u Uniform) Sample(rng *rand.Rand) float64 {
	return u.Lo + rng.Float64()*(u.Hi-u.Lo)
}

func (u Uniform) Bounds() (float64, float64) { return u.Lo, u.Hi }

// Normal is a Gaussian prior.
type Normal struct {
	Name  string
	Mean  float64
	Sigma float64
}

func (n Normal) Param() string { return n.Name }

func (n Normal) LogDensity(x float64) float64 {
	return distuv.Normal{Mu: n.Mean, Sigma: n.Sigma}.LogProb(x)
}

func (n Normal) Sample(rng *rand.Rand) float64 {
	return n.Mean + n.Sigma*rng.NormFloat64()
}

// Bounds clips the Gaussian to four sigma.
func (n Normal) Bounds() (float64, float64) {
	return n.Mean - 4*n.Sigma, n.Mean + 4*n.Sigma
}

// logPrior sums independent prior densities, short-circuiting on the
// first excluded parameter.
func logPrior(priors []Prior, p Params) float64 {
	total := 0.0
	for i, pr := range priors {
		lp := pr.LogDensity(p[i])
		if math.IsInf(lp, -1) {
			return lp
		}
		total += lp
	}
	return total
}
