// Package metrics implements [mcmc.Metric] accumulators over the
// sampler's transition stream.
package metrics

import "github.com/papari-man/LVILC/internal/mcmc"

// Acceptance tracks the fraction of accepted proposals.
type Acceptance struct {
	name     string
	accepted int
	total    int
}

func NewAcceptance() *Acceptance {
	return &Acceptance{name: "acceptance"}
}

func (a *Acceptance) Name() string { return a.name }

func (a *Acceptance) Observe(o mcmc.Observation) {
	a.total++
	if o.Accepted {
		a.accepted++
	}
}

func (a *Acceptance) Value() float64 {
	if a.total == 0 {
		return 0
	}
	return float64(a.accepted) / float64(a.total)
}

func (a *Acceptance) Reset() {
	a.accepted = 0
	a.total = 0
}
