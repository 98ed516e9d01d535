package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/papari-man/LVILC/internal/mcmc"
)

// GelmanRubin computes the potential scale reduction factor R-hat of
// one parameter, treating each walker's post-burn-in series as an
// independent chain. Values near 1 indicate the walkers agree on the
// marginal; above about 1.1 the run has not converged.
func GelmanRubin(c *mcmc.Chain, param int) float64 {
	m := c.Walkers()
	if m < 2 {
		return math.NaN()
	}

	n := 0
	means := make([]float64, m)
	vars := make([]float64, m)
	for w := 0; w < m; w++ {
		series := c.WalkerSeries(param, w)
		n = len(series)
		if n < 2 {
			return math.NaN()
		}
		means[w] = stat.Mean(series, nil)
		vars[w] = stat.Variance(series, nil)
	}

	w := stat.Mean(vars, nil)
	b := float64(n) * stat.Variance(means, nil)
	if w == 0 {
		return math.NaN()
	}

	v := (float64(n-1)/float64(n))*w + b/float64(n)
	return math.Sqrt(v / w)
}

// Geweke compares the mean of the first 10% of a series against the
// last 50%. For a stationary chain the z-score is approximately
// standard normal; the returned p-value is the two-sided tail.
func Geweke(series []float64) (z, p float64) {
	n := len(series)
	na := n / 10
	nb := n / 2
	if na < 2 || nb < 2 {
		return math.NaN(), math.NaN()
	}

	a := series[:na]
	b := series[n-nb:]

	meanA, varA := stat.Mean(a, nil), stat.Variance(a, nil)
	meanB, varB := stat.Mean(b, nil), stat.Variance(b, nil)

	se := math.Sqrt(varA/float64(na) + varB/float64(nb))
	if se == 0 {
		return math.NaN(), math.NaN()
	}

	z = (meanA - meanB) / se
	p = 2 * distuv.UnitNormal.Survival(math.Abs(z))
	return z, p
}

// GoodnessOfFit is the chi-squared tail probability of a fit with the
// given degrees of freedom. Small values mean the model cannot explain
// the data; values near 1 suggest overestimated errors.
func GoodnessOfFit(chi2 float64, dof int) float64 {
	if dof <= 0 || math.IsNaN(chi2) || chi2 < 0 {
		return math.NaN()
	}
	return distuv.ChiSquared{K: float64(dof)}.Survival(chi2)
}
