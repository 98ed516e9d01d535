package mcmc

import "math"

// Chain is the recorded walker history of one run, step-major: sample
// (step, walker) lives at step*walkers + walker. Burn-in steps are
// recorded too; the Flat accessors discard them.
type Chain struct {
	names      []string
	walkers    int
	burnIn     int
	seed       int64
	params     []Params
	logp       []float64
	acceptance float64
}

func NewChain(names []string, walkers, burnIn int, seed int64) *Chain {
	return &Chain{
		names:   names,
		walkers: walkers,
		burnIn:  burnIn,
		seed:    seed,
	}
}

// Append records one sweep: positions[w] and logp[w] for every walker.
// The positions are cloned.
func (c *Chain) Append(positions []Params, logp []float64) {
	for w := range positions {
		c.params = append(c.params, positions[w].Clone())
		c.logp = append(c.logp, logp[w])
	}
}

// Len is the number of recorded sweeps, burn-in included.
func (c *Chain) Len() int {
	if c.walkers == 0 {
		return 0
	}
	return len(c.params) / c.walkers
}

func (c *Chain) Walkers() int    { return c.walkers }
func (c *Chain) Dim() int        { return len(c.names) }
func (c *Chain) Names() []string { return c.names }
func (c *Chain) BurnIn() int     { return c.burnIn }
func (c *Chain) Seed() int64     { return c.seed }

// At returns the stored position of a walker at a sweep. The slice is
// shared with the chain; callers must not modify it.
func (c *Chain) At(step, walker int) Params {
	return c.params[step*c.walkers+walker]
}

func (c *Chain) LogProbAt(step, walker int) float64 {
	return c.logp[step*c.walkers+walker]
}

func (c *Chain) SetAcceptance(a float64) { c.acceptance = a }

// Acceptance is the fraction of accepted proposals over the whole run.
func (c *Chain) Acceptance() float64 { return c.acceptance }

// discard clamps the burn-in to the recorded length, so partial chains
// still flatten cleanly.
func (c *Chain) discard() int {
	if c.burnIn > c.Len() {
		return c.Len()
	}
	return c.burnIn
}

// Flat returns the post-burn-in samples of all walkers, step-major.
// The positions are shared with the chain.
func (c *Chain) Flat() []Params {
	return c.params[c.discard()*c.walkers:]
}

// FlatParam returns the post-burn-in series of one parameter across
// all walkers.
func (c *Chain) FlatParam(j int) []float64 {
	flat := c.Flat()
	out := make([]float64, len(flat))
	for i, p := range flat {
		out[i] = p[j]
	}
	return out
}

// FlatLogProb returns the post-burn-in log densities.
func (c *Chain) FlatLogProb() []float64 {
	return c.logp[c.discard()*c.walkers:]
}

// WalkerSeries returns the post-burn-in series of parameter j for a
// single walker, preserving step order.
func (c *Chain) WalkerSeries(j, walker int) []float64 {
	n := c.Len() - c.discard()
	out := make([]float64, 0, n)
	for step := c.discard(); step < c.Len(); step++ {
		out = append(out, c.At(step, walker)[j])
	}
	return out
}

// MaxLogProb returns the best sample of the whole run, burn-in
// included. An empty chain yields (nil, -Inf).
func (c *Chain) MaxLogProb() (Params, float64) {
	best := math.Inf(-1)
	var at Params
	for i, lp := range c.logp {
		if lp > best {
			best = lp
			at = c.params[i]
		}
	}
	if at == nil {
		return nil, best
	}
	return at.Clone(), best
}
