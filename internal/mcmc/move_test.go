package mcmc

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func testComplementary() []Params {
	return []Params{
		{1, 10},
		{2, 20},
		{3, 30},
		{4, 40},
	}
}

func TestStretchProposal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	st := NewStretch()
	cur := Params{2.5, 25}

	for i := 0; i < 1000; i++ {
		prop, corr := st.Propose(rng, cur, testComplementary())

		if len(prop) != 2 || !prop.IsValid() {
			t.Fatalf("invalid proposal %v", prop)
		}

		// corr = (dim-1) ln z with z in [1/A, A].
		z := math.Exp(corr / float64(len(cur)-1))
		if z < 1/st.A-1e-12 || z > st.A+1e-12 {
			t.Fatalf("stretch factor %f outside [1/%f, %f]", z, st.A, st.A)
		}
	}
}

func TestStretchDeterminism(t *testing.T) {
	cur := Params{2.5, 25}

	a, _ := NewStretch().Propose(rand.New(rand.NewSource(9)), cur, testComplementary())
	b, _ := NewStretch().Propose(rand.New(rand.NewSource(9)), cur, testComplementary())

	if a[0] != b[0] || a[1] != b[1] {
		t.Errorf("same seed produced different proposals: %v vs %v", a, b)
	}
}

func TestWalkProposal(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	w := NewWalk()
	cur := Params{2.5, 25}

	for i := 0; i < 1000; i++ {
		prop, corr := w.Propose(rng, cur, testComplementary())
		if corr != 0 {
			t.Fatalf("walk move must be symmetric, got correction %f", corr)
		}
		if !prop.IsValid() {
			t.Fatalf("invalid proposal %v", prop)
		}
	}
}

func TestWalkSubensembleClamp(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	w := &Walk{S: 10}

	prop, _ := w.Propose(rng, Params{1, 1}, testComplementary()[:2])
	if !prop.IsValid() {
		t.Errorf("clamped walk produced invalid proposal %v", prop)
	}
}

func TestMetropolisTune(t *testing.T) {
	m := NewMetropolis([]float64{1, 1})

	for i := 0; i < 200; i++ {
		m.Tune(true)
	}
	if m.Scale() <= 1 {
		t.Errorf("all-accept tuning should grow the scale, got %f", m.Scale())
	}

	m = NewMetropolis([]float64{1, 1})
	for i := 0; i < 200; i++ {
		m.Tune(false)
	}
	if m.Scale() >= 1 {
		t.Errorf("all-reject tuning should shrink the scale, got %f", m.Scale())
	}
}

func TestNewMove(t *testing.T) {
	priors := []Prior{
		Uniform{Name: "H0", Lo: -20, Hi: -0.5},
		Uniform{Name: "t_fall", Lo: 5, Hi: 25},
	}

	for _, name := range []string{"stretch", "walk", "mh"} {
		mv, err := NewMove(name, priors)
		if err != nil {
			t.Fatalf("NewMove(%s): %v", name, err)
		}
		if mv.Name() != name {
			t.Errorf("expected move %s, got %s", name, mv.Name())
		}
	}

	mh, _ := NewMove("mh", priors)
	steps := mh.(*Metropolis).Step
	if math.Abs(steps[0]-0.39) > 1e-9 {
		t.Errorf("expected H0 step 0.39, got %f", steps[0])
	}

	if _, err := NewMove("hamiltonian", priors); !errors.Is(err, ErrUnknownMove) {
		t.Errorf("expected ErrUnknownMove, got %v", err)
	}
}
