package optim

import (
	"context"
	"math"
	"testing"

	"github.com/papari-man/LVILC/internal/mcmc"
)

// bowlTarget peaks at (1, -1).
type bowlTarget struct{}

func (bowlTarget) Dim() int           { return 2 }
func (bowlTarget) Names() []string    { return []string{"x", "y"} }
func (bowlTarget) Start() mcmc.Params { return mcmc.Params{0, 0} }

func (bowlTarget) LogProb(p mcmc.Params) float64 {
	dx, dy := p[0]-1, p[1]+1
	return -(dx*dx + dy*dy)
}

func TestGridSearchFindsPeak(t *testing.T) {
	g := NewGridSearch(
		[]string{"x", "y"},
		[][]float64{linspace(-2, 2, 21), linspace(-2, 2, 21)},
	)

	best, lp, err := g.Search(context.Background(), bowlTarget{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if math.Abs(best[0]-1) > 0.21 || math.Abs(best[1]+1) > 0.21 {
		t.Errorf("expected peak near (1,-1), got %v", best)
	}
	if lp < -0.1 {
		t.Errorf("expected near-zero log density at peak, got %f", lp)
	}
}

func TestGridSearchFromPriors(t *testing.T) {
	priors := []mcmc.Prior{
		mcmc.Uniform{Name: "x", Lo: 0, Hi: 2},
		mcmc.Uniform{Name: "y", Lo: -2, Hi: 0},
	}

	best, _, err := FromPriors(priors, 11).Search(context.Background(), bowlTarget{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if math.Abs(best[0]-1) > 0.21 || math.Abs(best[1]+1) > 0.21 {
		t.Errorf("expected peak near (1,-1), got %v", best)
	}
}

func TestGridSearchDimensionMismatch(t *testing.T) {
	g := NewGridSearch([]string{"x"}, [][]float64{{0, 1}})

	if _, _, err := g.Search(context.Background(), bowlTarget{}); err == nil {
		t.Error("expected dimension mismatch error")
	}
}

func TestGridSearchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGridSearch(
		[]string{"x", "y"},
		[][]float64{linspace(-2, 2, 50), linspace(-2, 2, 50)},
	)
	if _, _, err := g.Search(ctx, bowlTarget{}); err == nil {
		t.Error("expected cancellation error")
	}
}

func TestLinspace(t *testing.T) {
	pts := linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if math.Abs(pts[i]-want[i]) > 1e-12 {
			t.Errorf("linspace[%d] = %f, want %f", i, pts[i], want[i])
		}
	}

	if mid := linspace(2, 4, 1); len(mid) != 1 || mid[0] != 3 {
		t.Errorf("single-point linspace should return midpoint, got %v", mid)
	}
}
