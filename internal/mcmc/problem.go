package mcmc

import (
	"fmt"
	"math"
	"sync"

	"github.com/papari-man/LVILC/internal/cosmo"
	"github.com/papari-man/LVILC/internal/dataset"
)

// ChiSquared is the weighted residual sum of the model against the
// sample. It returns NaN if any predicted modulus is non-finite.
func ChiSquared(m cosmo.Model, d *dataset.CosmologyData) float64 {
	chi2 := 0.0
	for i := range d.Z {
		mu := m.DistanceModulus(d.Z[i])
		if math.IsNaN(mu) || math.IsInf(mu, 0) {
			return math.NaN()
		}
		r := (d.Mu[i] - mu) / d.MuErr[i]
		chi2 += r * r
	}
	return chi2
}

// LogLikelihood is the Gaussian log likelihood -chi2/2, or -Inf where
// the model is non-physical.
func LogLikelihood(m cosmo.Model, d *dataset.CosmologyData) float64 {
	chi2 := ChiSquared(m, d)
	if math.IsNaN(chi2) {
		return math.Inf(-1)
	}
	return -chi2 / 2
}

// Problem binds a cosmological model family to a supernova sample
// under independent priors, forming the posterior Target. Each
// concurrent LogProb call works on its own model instance from an
// internal pool, so the Target is safe for the sampler's parallel
// evaluation.
type Problem struct {
	data   *dataset.CosmologyData
	priors []Prior
	names  []string
	start  Params
	models sync.Pool
}

// NewProblem validates that the priors line up one-to-one with the
// model's parameters (same names, same order). The model's default
// parameters become the starting point.
func NewProblem(newModel func() cosmo.Model, data *dataset.CosmologyData, priors []Prior) (*Problem, error) {
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("mcmc: %w", err)
	}

	m := newModel()
	names := m.ParamNames()
	if len(priors) != len(names) {
		return nil, fmt.Errorf("%w: %d priors for %d parameters", ErrPriorMismatch, len(priors), len(names))
	}
	for i, pr := range priors {
		if pr.Param() != names[i] {
			return nil, fmt.Errorf("%w: prior %d is %q, parameter is %q", ErrPriorMismatch, i, pr.Param(), names[i])
		}
	}

	p := &Problem{
		data:   data,
		priors: priors,
		names:  names,
		start:  Params(m.Params()).Clone(),
	}
	p.models.New = func() any { return newModel() }
	return p, nil
}

func (p *Problem) Dim() int                     { return len(p.priors) }
func (p *Problem) Names() []string              { return p.names }
func (p *Problem) Start() Params                { return p.start.Clone() }
func (p *Problem) Priors() []Prior              { return p.priors }
func (p *Problem) Data() *dataset.CosmologyData { return p.data }

func (p *Problem) LogProb(x Params) float64 {
	if len(x) != len(p.priors) {
		return math.Inf(-1)
	}
	lp := logPrior(p.priors, x)
	if math.IsInf(lp, -1) {
		return lp
	}

	m := p.models.Get().(cosmo.Model)
	defer p.models.Put(m)
	if err := m.SetParams(x); err != nil {
		return math.Inf(-1)
	}
	return lp + LogLikelihood(m, p.data)
}

// ChiSquaredAt evaluates the fit statistic at a point, for
// goodness-of-fit reporting.
func (p *Problem) ChiSquaredAt(x Params) float64 {
	m := p.models.Get().(cosmo.Model)
	defer p.models.Put(m)
	if err := m.SetParams(x); err != nil {
		return math.NaN()
	}
	return ChiSquared(m, p.data)
}
