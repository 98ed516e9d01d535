package optim

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/papari-man/LVILC/internal/mcmc"
)

// GridSearch evaluates a posterior target on a regular grid and keeps
// the highest-density point. It is a cheap way to find a maximum a
// posteriori estimate for seeding samplers, or to sanity-check a prior
// box before a long run.
type GridSearch struct {
	names  []string
	ranges [][]float64
	limit  int64
}

func NewGridSearch(names []string, ranges [][]float64) *GridSearch {
	return &GridSearch{
		names:  names,
		ranges: ranges,
		limit:  int64(runtime.GOMAXPROCS(0)),
	}
}

// FromPriors spans an even grid of n points per dimension across the
// priors' bounds.
func FromPriors(priors []mcmc.Prior, n int) *GridSearch {
	names := make([]string, len(priors))
	ranges := make([][]float64, len(priors))
	for i, pr := range priors {
		lo, hi := pr.Bounds()
		names[i] = pr.Param()
		ranges[i] = linspace(lo, hi, n)
	}
	return NewGridSearch(names, ranges)
}

// Search evaluates every grid combination, fanning the density calls
// out over a bounded number of goroutines. It returns the best point
// and its log density.
func (g *GridSearch) Search(ctx context.Context, target mcmc.Target) (mcmc.Params, float64, error) {
	if len(g.names) != target.Dim() {
		return nil, 0, fmt.Errorf("optim: grid spans %d parameters, target has %d", len(g.names), target.Dim())
	}

	var points []mcmc.Params
	g.enumerate(0, make(mcmc.Params, 0, len(g.names)), &points)

	sem := semaphore.NewWeighted(g.limit)
	var mu sync.Mutex
	best := math.Inf(-1)
	var bestAt mcmc.Params

	for _, p := range points {
		p := p
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, 0, err
		}
		go func() {
			defer sem.Release(1)
			lp := target.LogProb(p)

			mu.Lock()
			if lp > best {
				best = lp
				bestAt = p
			}
			mu.Unlock()
		}()
	}

	// Draining the semaphore waits for the in-flight evaluations.
	if err := sem.Acquire(ctx, g.limit); err != nil {
		return nil, 0, err
	}

	if bestAt == nil {
		return nil, best, fmt.Errorf("optim: no grid point has finite density")
	}
	return bestAt, best, nil
}

func (g *GridSearch) enumerate(depth int, current mcmc.Params, out *[]mcmc.Params) {
	if depth == len(g.names) {
		*out = append(*out, current.Clone())
		return
	}
	for _, v := range g.ranges[depth] {
		g.enumerate(depth+1, append(current, v), out)
	}
}

func linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{(lo + hi) / 2}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
