package mcmc

import (
	"fmt"
	"math"
	"math/rand"
)

// Move proposes a new position for one walker. Propose returns the
// proposal and the log of the proposal-asymmetry correction that is
// added to the acceptance ratio; symmetric moves return 0. comp is the
// complementary half-ensemble, frozen for the current sweep.
type Move interface {
	Name() string
	Propose(rng *rand.Rand, cur Params, comp []Params) (Params, float64)
}

// Tuner is implemented by moves that adapt their proposal scale from
// the accept/reject stream. The sampler feeds it only during burn-in,
// so the post-burn-in chain keeps detailed balance.
type Tuner interface {
	Tune(accepted bool)
}

// NewMove builds a move by name: "stretch", "walk" or "mh". The priors
// seed the Metropolis step sizes; stretch and walk ignore them.
func NewMove(name string, priors []Prior) (Move, error) {
	switch name {
	case "stretch":
		return NewStretch(), nil
	case "walk":
		return NewWalk(), nil
	case "mh":
		steps := make([]float64, len(priors))
		for i, pr := range priors {
			lo, hi := pr.Bounds()
			steps[i] = 0.02 * (hi - lo)
		}
		return NewMetropolis(steps), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMove, name)
	}
}

// Stretch is the Goodman-Weare stretch move. A walker moves along the
// line through itself and a random complementary walker by a factor z
// drawn from g(z) ~ 1/sqrt(z) on [1/A, A]; the acceptance correction
// is (dim-1) ln z.
type Stretch struct {
	A float64
}

func NewStretch() *Stretch { return &Stretch{A: 2.0} }

func (st *Stretch) Name() string { return "stretch" }

func (st *Stretch) Propose(rng *rand.Rand, cur Params, comp []Params) (Params, float64) {
	other := comp[rng.Intn(len(comp))]
	u := rng.Float64()
	z := math.Pow((st.A-1)*u+1, 2) / st.A

	prop := make(Params, len(cur))
	for i := range cur {
		prop[i] = other[i] + z*(cur[i]-other[i])
	}
	return prop, float64(len(cur)-1) * math.Log(z)
}

// Walk is the Goodman-Weare walk move: a Gaussian step along the
// principal directions of a random subensemble of S complementary
// walkers. The move is symmetric.
type Walk struct {
	S int
}

func NewWalk() *Walk { return &Walk{S: 3} }

func (w *Walk) Name() string { return "walk" }

func (w *Walk) Propose(rng *rand.Rand, cur Params, comp []Params) (Params, float64) {
	s := w.S
	if s > len(comp) {
		s = len(comp)
	}
	idx := rng.Perm(len(comp))[:s]

	mean := make(Params, len(cur))
	for _, j := range idx {
		for i := range mean {
			mean[i] += comp[j][i] / float64(s)
		}
	}

	prop := cur.Clone()
	for _, j := range idx {
		g := rng.NormFloat64()
		for i := range prop {
			prop[i] += g * (comp[j][i] - mean[i])
		}
	}
	return prop, 0
}

// metropolisTarget is the classic optimal acceptance rate for random
// walk Metropolis in moderate dimension.
const metropolisTarget = 0.234

// Metropolis is an isotropic Gaussian random walk, independent of the
// complementary ensemble. The global scale adapts toward the target
// acceptance rate with Robbins-Monro decay while tuning is enabled.
type Metropolis struct {
	Step  []float64
	scale float64
	tunes int
}

func NewMetropolis(step []float64) *Metropolis {
	return &Metropolis{Step: step, scale: 1}
}

func (m *Metropolis) Name() string { return "mh" }

// Scale reports the current global step multiplier.
func (m *Metropolis) Scale() float64 { return m.scale }

func (m *Metropolis) Propose(rng *rand.Rand, cur Params, _ []Params) (Params, float64) {
	if len(m.Step) == 0 {
		m.Step = make([]float64, len(cur))
		for i := range m.Step {
			m.Step[i] = 1
		}
	}

	prop := make(Params, len(cur))
	for i := range cur {
		prop[i] = cur[i] + m.scale*m.Step[i]*rng.NormFloat64()
	}
	return prop, 0
}

func (m *Metropolis) Tune(accepted bool) {
	m.tunes++
	gain := 0.1 / math.Pow(float64(m.tunes), 0.6)
	a := 0.0
	if accepted {
		a = 1
	}
	m.scale *= math.Exp(gain * (a - metropolisTarget))
	if m.scale < 1e-3 {
		m.scale = 1e-3
	}
	if m.scale > 1e3 {
		m.scale = 1e3
	}
}
