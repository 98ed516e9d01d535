package mcmc

import "math"

// Params is a point in parameter space.
type Params []float64

func (p Params) Clone() Params {
	c := make(Params, len(p))
	copy(c, p)
	return c
}

func (p Params) IsValid() bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (p Params) Sub(other Params) Params {
	result := make(Params, len(p))
	for i := range p {
		if i < len(other) {
			result[i] = p[i] - other[i]
		} else {
			result[i] = p[i]
		}
	}
	return result
}

func (p Params) Norm() float64 {
	sum := 0.0
	for _, v := range p {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Target is a log posterior density. LogProb must be safe for
// concurrent calls and must return -Inf (never NaN) outside the
// support, so the sampler can reject uniformly.
type Target interface {
	Dim() int
	Names() []string
	Start() Params
	LogProb(p Params) float64
}

// Observation is one walker transition as seen by metrics: the
// position after the accept/reject decision and the Euclidean jump
// (zero when rejected).
type Observation struct {
	Step     int
	Walker   int
	Position Params
	LogProb  float64
	Accepted bool
	Jump     float64
}

// Metric accumulates a scalar over the transition stream.
type Metric interface {
	Name() string
	Observe(o Observation)
	Value() float64
	Reset()
}

// RunConfig controls a sampling run. Walkers must be even and at least
// twice the target dimension; Steps counts recorded sweeps including
// burn-in. A zero Workers uses GOMAXPROCS evaluation goroutines.
type RunConfig struct {
	Walkers  int
	Steps    int
	BurnIn   int
	Seed     int64
	Workers  int
	Initial  Params
	Progress bool
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Walkers: 16,
		Steps:   1000,
		BurnIn:  200,
		Seed:    42,
	}
}
