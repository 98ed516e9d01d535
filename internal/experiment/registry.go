package experiment

import (
	"fmt"
	"sort"

	"github.com/papari-man/LVILC/internal/cosmo"
	"github.com/papari-man/LVILC/internal/dataset"
	"github.com/papari-man/LVILC/internal/mcmc"
)

// Registry maps model names to constructors and their default priors.
type Registry struct {
	models map[string]func() cosmo.Model
	priors map[string]func() []mcmc.Prior
}

func NewRegistry() *Registry {
	r := &Registry{
		models: make(map[string]func() cosmo.Model),
		priors: make(map[string]func() []mcmc.Prior),
	}

	r.models["lvilc"] = func() cosmo.Model { return cosmo.NewLVILC() }
	r.models["lcdm"] = func() cosmo.Model { return cosmo.NewLCDM() }
	r.models["lcdm-approx"] = func() cosmo.Model { return cosmo.NewLCDMApprox() }
	r.models["eds"] = func() cosmo.Model { return cosmo.NewEdS() }

	// The LVILC box keeps H_eff0 positive everywhere: even at
	// H0 = -20 and t_fall = 25 the infall term wins.
	r.priors["lvilc"] = func() []mcmc.Prior {
		return []mcmc.Prior{
			mcmc.Uniform{Name: "H0", Lo: -20, Hi: -0.5},
			mcmc.Uniform{Name: "M_bh", Lo: 1e21, Hi: 1e26},
			mcmc.Uniform{Name: "t_fall", Lo: 5, Hi: 25},
		}
	}
	lcdmPriors := func() []mcmc.Prior {
		return []mcmc.Prior{
			mcmc.Uniform{Name: "H0", Lo: 50, Hi: 90},
			mcmc.Uniform{Name: "Omega_m", Lo: 0.05, Hi: 0.6},
		}
	}
	r.priors["lcdm"] = lcdmPriors
	r.priors["lcdm-approx"] = lcdmPriors
	r.priors["eds"] = func() []mcmc.Prior {
		return []mcmc.Prior{
			mcmc.Uniform{Name: "H0", Lo: 50, Hi: 90},
		}
	}

	return r
}

// GetModel returns a fresh instance of a registered model.
func (r *Registry) GetModel(name string) (cosmo.Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(), nil
}

// Constructor returns the factory for a registered model.
func (r *Registry) Constructor(name string) (func() cosmo.Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn, nil
}

// GetPriors returns the default priors of a registered model.
func (r *Registry) GetPriors(name string) ([]mcmc.Prior, error) {
	fn, ok := r.priors[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(), nil
}

// NewProblem assembles the posterior of a registered model over a
// sample, under the model's default priors.
func (r *Registry) NewProblem(name string, data *dataset.CosmologyData) (*mcmc.Problem, error) {
	fn, err := r.Constructor(name)
	if err != nil {
		return nil, err
	}
	priors, err := r.GetPriors(name)
	if err != nil {
		return nil, err
	}
	return mcmc.NewProblem(fn, data, priors)
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListMoves enumerates the samplers' proposal strategies.
func (r *Registry) ListMoves() []string {
	return []string{"mh", "stretch", "walk"}
}
