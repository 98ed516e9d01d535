package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/papari-man/LVILC/internal/analysis"
	"github.com/papari-man/LVILC/internal/dataset"
	"github.com/papari-man/LVILC/internal/mcmc"
	"github.com/papari-man/LVILC/internal/metrics"
)

// Config names everything needed to reproduce one sampling run. Zero
// numeric fields fall back to the mcmc defaults.
type Config struct {
	Model    string
	Move     string
	Walkers  int
	Steps    int
	BurnIn   int
	Seed     int64
	Workers  int
	Initial  []float64
	Progress bool
}

// Result bundles the chain with its fit quality and run metrics.
type Result struct {
	Chain      *mcmc.Chain
	Summary    []mcmc.ParamSummary
	BestParams mcmc.Params
	BestChi2   float64
	Dof        int
	PValue     float64
	Metrics    map[string]float64
	Duration   time.Duration
}

// Experiment wires a registered model, a move and a dataset into a
// ready-to-run sampler.
type Experiment struct {
	cfg     Config
	problem *mcmc.Problem
	sampler *mcmc.Sampler
	metrics []mcmc.Metric
}

func New(cfg Config) *Experiment {
	if cfg.Model == "" {
		cfg.Model = "lvilc"
	}
	if cfg.Move == "" {
		cfg.Move = "stretch"
	}
	def := mcmc.DefaultRunConfig()
	if cfg.Walkers == 0 {
		cfg.Walkers = def.Walkers
	}
	if cfg.Steps == 0 {
		cfg.Steps = def.Steps
	}
	if cfg.BurnIn == 0 {
		cfg.BurnIn = def.BurnIn
	}
	if cfg.Seed == 0 {
		cfg.Seed = def.Seed
	}
	return &Experiment{cfg: cfg}
}

// Setup builds the posterior problem and sampler against a sample.
func (e *Experiment) Setup(data *dataset.CosmologyData) error {
	reg := NewRegistry()

	problem, err := reg.NewProblem(e.cfg.Model, data)
	if err != nil {
		return err
	}

	move, err := mcmc.NewMove(e.cfg.Move, problem.Priors())
	if err != nil {
		return err
	}

	runCfg := mcmc.RunConfig{
		Walkers:  e.cfg.Walkers,
		Steps:    e.cfg.Steps,
		BurnIn:   e.cfg.BurnIn,
		Seed:     e.cfg.Seed,
		Workers:  e.cfg.Workers,
		Progress: e.cfg.Progress,
	}
	if e.cfg.Initial != nil {
		runCfg.Initial = mcmc.Params(e.cfg.Initial).Clone()
	}

	sampler, err := mcmc.NewSampler(problem, move, runCfg)
	if err != nil {
		return err
	}

	e.problem = problem
	e.sampler = sampler
	e.metrics = []mcmc.Metric{
		metrics.NewAcceptance(),
		metrics.NewJumpDistance(),
		metrics.NewBestFit(),
	}
	for _, m := range e.metrics {
		sampler.AddMetric(m)
	}
	return nil
}

// Run samples the posterior and summarizes the result.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.sampler == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	start := time.Now()
	chain, err := e.sampler.Run(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Chain:    chain,
		Summary:  chain.Summary(),
		Metrics:  make(map[string]float64),
		Duration: time.Since(start),
	}
	for _, m := range e.metrics {
		res.Metrics[m.Name()] = m.Value()
	}

	best, _ := chain.MaxLogProb()
	if best != nil {
		res.BestParams = best
		res.BestChi2 = e.problem.ChiSquaredAt(best)
		res.Dof = e.problem.Data().Len() - e.problem.Dim()
		res.PValue = analysis.GoodnessOfFit(res.BestChi2, res.Dof)
	}
	return res, nil
}

// Config returns the effective configuration after defaulting.
func (e *Experiment) Config() Config {
	return e.cfg
}

// Problem exposes the posterior for diagnostics.
func (e *Experiment) Problem() *mcmc.Problem {
	return e.problem
}

// Sampler exposes the underlying sampler, mainly for live displays
// that step it manually.
func (e *Experiment) Sampler() *mcmc.Sampler {
	return e.sampler
}
