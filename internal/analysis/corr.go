package analysis

import (
	"gonum.org/v1/gonum/stat"

	"github.com/papari-man/LVILC/internal/mcmc"
)

// CorrelationMatrix computes pairwise Pearson correlations between the
// post-burn-in marginals of a chain, in parameter order.
func CorrelationMatrix(c *mcmc.Chain) [][]float64 {
	dim := c.Dim()
	series := make([][]float64, dim)
	for j := 0; j < dim; j++ {
		series[j] = c.FlatParam(j)
	}

	out := make([][]float64, dim)
	for i := range out {
		out[i] = make([]float64, dim)
		out[i][i] = 1
		for j := 0; j < i; j++ {
			r := stat.Correlation(series[i], series[j], nil)
			out[i][j] = r
			out[j][i] = r
		}
	}
	return out
}
