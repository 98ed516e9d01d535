package automation

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/papari-man/LVILC/internal/dataset"
	"github.com/papari-man/LVILC/internal/experiment"
	"github.com/papari-man/LVILC/internal/mcmc"
)

// Scenario defines a scripted sequence of sampling runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario
type ScenarioStep struct {
	Model   string    `yaml:"model"`
	Move    string    `yaml:"move"`
	Walkers int       `yaml:"walkers"`
	Steps   int       `yaml:"steps"`
	BurnIn  int       `yaml:"burn_in"`
	Seed    int64     `yaml:"seed"`
	Initial []float64 `yaml:"initial"`
	SaveAs  string    `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// RunScenario executes all steps in a scenario against one sample
func RunScenario(ctx context.Context, scenario *Scenario, data *dataset.CosmologyData) ([]experiment.Result, error) {
	results := make([]experiment.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		fmt.Printf("Running step %d/%d: %s\n", i+1, len(scenario.Steps), step.Model)

		cfg := experiment.Config{
			Model:   step.Model,
			Move:    step.Move,
			Walkers: step.Walkers,
			Steps:   step.Steps,
			BurnIn:  step.BurnIn,
			Seed:    step.Seed,
			Initial: step.Initial,
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(data); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, *result)
	}

	return results, nil
}

// ParameterSweep profiles the fit statistic along one parameter,
// holding the others at the model defaults
type ParameterSweep struct {
	Model     string
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds the fit at one grid value
type SweepResult struct {
	ParamValue float64
	Chi2       float64
}

// RunSweep evaluates the sweep grid
func RunSweep(ctx context.Context, sweep *ParameterSweep, data *dataset.CosmologyData) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}

	reg := experiment.NewRegistry()
	model, err := reg.GetModel(sweep.Model)
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		paramVal := sweep.ParamMin + float64(i)*paramStep
		if err := model.SetParam(sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Chi2:       mcmc.ChiSquared(model, data),
		})

		fmt.Printf("Sweep %d/%d: %s=%.4g\n", i+1, sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}

// RestartConfig defines repeated runs from perturbed starting points
type RestartConfig struct {
	Model        string
	Move         string
	Walkers      int
	Steps        int
	BurnIn       int
	Perturbation float64
	NumTrials    int
	Seed         int64
}

// RestartResult holds the outcome of one trial
type RestartResult struct {
	TrialID    int
	Seed       int64
	Initial    mcmc.Params
	BestParams mcmc.Params
	BestChi2   float64
	Acceptance float64
}

// RunRestarts executes multiple trials, each from a randomly perturbed
// copy of the model's default parameters and with its own seed. A
// multi-modal posterior shows up as a spread in the best fits.
func RunRestarts(ctx context.Context, cfg *RestartConfig, data *dataset.CosmologyData) ([]RestartResult, error) {
	results := make([]RestartResult, 0, cfg.NumTrials)

	reg := experiment.NewRegistry()
	model, err := reg.GetModel(cfg.Model)
	if err != nil {
		return nil, err
	}
	base := mcmc.Params(model.Params())

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for trial := 0; trial < cfg.NumTrials; trial++ {
		initial := base.Clone()
		for i := range initial {
			initial[i] *= 1 + (rng.Float64()-0.5)*2*cfg.Perturbation
		}

		expCfg := experiment.Config{
			Model:   cfg.Model,
			Move:    cfg.Move,
			Walkers: cfg.Walkers,
			Steps:   cfg.Steps,
			BurnIn:  cfg.BurnIn,
			Seed:    rng.Int63(),
			Initial: initial,
		}

		exp := experiment.New(expCfg)
		if err := exp.Setup(data); err != nil {
			return results, fmt.Errorf("trial %d setup: %w", trial+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("trial %d run: %w", trial+1, err)
		}

		results = append(results, RestartResult{
			TrialID:    trial,
			Seed:       expCfg.Seed,
			Initial:    initial,
			BestParams: result.BestParams,
			BestChi2:   result.BestChi2,
			Acceptance: result.Chain.Acceptance(),
		})

		if (trial+1)%10 == 0 {
			fmt.Printf("Restarts: %d/%d trials complete\n", trial+1, cfg.NumTrials)
		}
	}

	return results, nil
}

// RestartStats reports the best trial and the spread of best fits
// across trials
func RestartStats(results []RestartResult) (best int, spread float64) {
	if len(results) == 0 {
		return -1, 0
	}
	lo, hi := results[0].BestChi2, results[0].BestChi2
	for i, r := range results {
		if r.BestChi2 < lo {
			lo = r.BestChi2
			best = i
		}
		if r.BestChi2 > hi {
			hi = r.BestChi2
		}
	}
	return best, hi - lo
}
