package mcmc

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Ensemble runs independent chains of the same problem concurrently,
// offsetting the seed per chain. Each chain gets its own move instance
// because moves may carry tuning state.
type Ensemble struct {
	target  Target
	newMove func() Move
	runs    int
}

func NewEnsemble(target Target, newMove func() Move, runs int) *Ensemble {
	return &Ensemble{target: target, newMove: newMove, runs: runs}
}

// Run starts e.runs samplers with seeds cfg.Seed, cfg.Seed+1, ... and
// returns their chains in seed order. The first failing chain cancels
// the rest.
func (e *Ensemble) Run(ctx context.Context, cfg RunConfig) ([]*Chain, error) {
	chains := make([]*Chain, e.runs)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.runs; i++ {
		i := i
		g.Go(func() error {
			cfgCopy := cfg
			cfgCopy.Seed = cfg.Seed + int64(i)

			s, err := NewSampler(e.target, e.newMove(), cfgCopy)
			if err != nil {
				return err
			}
			chains[i], err = s.Run(ctx)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return chains, nil
}
