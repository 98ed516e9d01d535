package mcmc

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/papari-man/LVILC/internal/logger"
)

const (
	// initBallScale is the relative width of the Gaussian ball walkers
	// start in. Zero-valued components get absolute jitter of the same
	// width instead, so the ensemble never collapses to a point.
	initBallScale = 1e-3

	// maxInitDraws bounds the redraws per walker while hunting for a
	// finite-density start.
	maxInitDraws = 100
)

// Sampler advances an even ensemble of walkers over a Target. All
// random draws come from one sequential stream seeded by the config,
// so runs are reproducible; density evaluations fan out over a worker
// pool.
type Sampler struct {
	target   Target
	move     Move
	cfg      RunConfig
	rng      *rand.Rand
	pos      []Params
	logp     []float64
	step     int
	accepted int
	proposed int
	metrics  []Metric
}

func NewSampler(target Target, move Move, cfg RunConfig) (*Sampler, error) {
	dim := target.Dim()
	if dim == 0 {
		return nil, fmt.Errorf("%w: target has no parameters", ErrInvalidConfig)
	}
	if cfg.Walkers < 2 || cfg.Walkers%2 != 0 {
		return nil, fmt.Errorf("%w: walkers must be even and positive, got %d", ErrInvalidConfig, cfg.Walkers)
	}
	if cfg.Walkers < 2*dim {
		return nil, fmt.Errorf("%w: need at least %d walkers for dimension %d, got %d", ErrInvalidConfig, 2*dim, dim, cfg.Walkers)
	}
	if cfg.Steps <= 0 {
		return nil, fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidConfig, cfg.Steps)
	}
	if cfg.BurnIn < 0 || cfg.BurnIn >= cfg.Steps {
		return nil, fmt.Errorf("%w: burn-in %d must lie in [0, %d)", ErrInvalidConfig, cfg.BurnIn, cfg.Steps)
	}

	return &Sampler{
		target: target,
		move:   move,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

func (s *Sampler) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

// Init scatters the walkers in a tight Gaussian ball around the
// starting point (cfg.Initial, or the target's default). Walkers that
// land at -Inf density are redrawn up to maxInitDraws times.
func (s *Sampler) Init() error {
	start := s.cfg.Initial
	if start == nil {
		start = s.target.Start()
	}
	if len(start) != s.target.Dim() {
		return fmt.Errorf("%w: initial point has %d parameters, want %d", ErrInvalidConfig, len(start), s.target.Dim())
	}
	if !start.IsValid() {
		return ErrInvalidParams
	}

	s.pos = make([]Params, s.cfg.Walkers)
	s.logp = make([]float64, s.cfg.Walkers)
	for w := range s.pos {
		placed := false
		for try := 0; try < maxInitDraws; try++ {
			p := s.ball(start)
			lp := s.target.LogProb(p)
			if !math.IsInf(lp, -1) && !math.IsNaN(lp) {
				s.pos[w] = p
				s.logp[w] = lp
				placed = true
				break
			}
		}
		if !placed {
			return &SampleError{Step: 0, Walker: w, Wrapped: ErrNoValidStart}
		}
	}

	s.step = 0
	s.accepted = 0
	s.proposed = 0
	for _, m := range s.metrics {
		m.Reset()
	}
	return nil
}

func (s *Sampler) ball(center Params) Params {
	p := make(Params, len(center))
	for i, c := range center {
		if c == 0 {
			p[i] = initBallScale * s.rng.NormFloat64()
		} else {
			p[i] = c * (1 + initBallScale*s.rng.NormFloat64())
		}
	}
	return p
}

// Sweep advances the whole ensemble by one red-black update: each half
// proposes against the frozen other half, proposals are evaluated
// concurrently, and accept draws replay sequentially. It returns the
// number of accepted proposals.
func (s *Sampler) Sweep() (int, error) {
	if s.pos == nil {
		if err := s.Init(); err != nil {
			return 0, err
		}
	}

	half := s.cfg.Walkers / 2
	accepted := 0
	for _, block := range [2][2]int{{0, half}, {half, s.cfg.Walkers}} {
		lo, hi := block[0], block[1]
		comp := s.pos[half:]
		if lo == half {
			comp = s.pos[:half]
		}

		props := make([]Params, hi-lo)
		corr := make([]float64, hi-lo)
		for k := range props {
			props[k], corr[k] = s.move.Propose(s.rng, s.pos[lo+k], comp)
		}
		lps := s.evalBatch(props)

		for k := range props {
			w := lo + k
			s.proposed++

			lnq := corr[k] + lps[k] - s.logp[w]
			acc := lnq >= 0 || s.rng.Float64() < math.Exp(lnq)
			jump := 0.0
			if acc {
				if !props[k].IsValid() {
					return accepted, &SampleError{Step: s.step, Walker: w, Wrapped: ErrInvalidParams}
				}
				jump = props[k].Sub(s.pos[w]).Norm()
				s.pos[w] = props[k]
				s.logp[w] = lps[k]
				s.accepted++
				accepted++
			}

			if tuner, ok := s.move.(Tuner); ok && s.step < s.cfg.BurnIn {
				tuner.Tune(acc)
			}

			obs := Observation{
				Step:     s.step,
				Walker:   w,
				Position: s.pos[w],
				LogProb:  s.logp[w],
				Accepted: acc,
				Jump:     jump,
			}
			for _, m := range s.metrics {
				m.Observe(obs)
			}
		}
	}

	s.step++
	return accepted, nil
}

// evalBatch computes target densities for all proposals, in parallel
// when more than one worker is configured.
func (s *Sampler) evalBatch(props []Params) []float64 {
	out := make([]float64, len(props))

	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || len(props) == 1 {
		for i, p := range props {
			out[i] = s.target.LogProb(p)
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, p := range props {
		i, p := i, p
		g.Go(func() error {
			out[i] = s.target.LogProb(p)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Run samples cfg.Steps sweeps and records every one of them. On
// cancellation the chain built so far is returned with the context's
// error.
func (s *Sampler) Run(ctx context.Context) (*Chain, error) {
	if s.pos == nil {
		if err := s.Init(); err != nil {
			return nil, err
		}
	}

	chain := NewChain(s.target.Names(), s.cfg.Walkers, s.cfg.BurnIn, s.cfg.Seed)
	logEvery := s.cfg.Steps / 10
	if logEvery == 0 {
		logEvery = 1
	}

	for i := 0; i < s.cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			chain.SetAcceptance(s.Acceptance())
			return chain, ctx.Err()
		default:
		}

		if _, err := s.Sweep(); err != nil {
			chain.SetAcceptance(s.Acceptance())
			return chain, err
		}
		chain.Append(s.pos, s.logp)

		if s.cfg.Progress && (i+1)%logEvery == 0 {
			logger.L().Info("sampling",
				"step", i+1,
				"steps", s.cfg.Steps,
				"acceptance", fmt.Sprintf("%.3f", s.Acceptance()),
			)
		}
	}

	chain.SetAcceptance(s.Acceptance())
	return chain, nil
}

// Acceptance is the running fraction of accepted proposals.
func (s *Sampler) Acceptance() float64 {
	if s.proposed == 0 {
		return 0
	}
	return float64(s.accepted) / float64(s.proposed)
}

// Positions exposes the current walker positions for live displays.
// The slices are shared; callers must not modify them.
func (s *Sampler) Positions() []Params { return s.pos }

// LogProbs exposes the current walker densities.
func (s *Sampler) LogProbs() []float64 { return s.logp }

// StepCount is the number of completed sweeps.
func (s *Sampler) StepCount() int { return s.step }
