package metrics

import (
	"math"

	"github.com/papari-man/LVILC/internal/mcmc"
)

// BestFit remembers the highest-density point seen during a run.
type BestFit struct {
	name    string
	best    float64
	at      mcmc.Params
	samples int
}

func NewBestFit() *BestFit {
	return &BestFit{name: "best_log_prob", best: math.Inf(-1)}
}

func (b *BestFit) Name() string { return b.name }

func (b *BestFit) Observe(o mcmc.Observation) {
	b.samples++
	if o.LogProb > b.best {
		b.best = o.LogProb
		b.at = o.Position.Clone()
	}
}

func (b *BestFit) Value() float64 {
	if b.samples == 0 {
		return 0
	}
	return b.best
}

// Params returns the position of the best point, or nil before any
// observation.
func (b *BestFit) Params() mcmc.Params {
	return b.at
}

func (b *BestFit) Reset() {
	b.best = math.Inf(-1)
	b.at = nil
	b.samples = 0
}
