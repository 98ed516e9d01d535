package mcmc

import "github.com/montanaflynn/stats"

// ParamSummary condenses the marginal posterior of one parameter.
// Best is the parameter's value at the maximum-probability sample.
type ParamSummary struct {
	Name   string  `json:"name"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	P16    float64 `json:"p16"`
	P84    float64 `json:"p84"`
	Best   float64 `json:"best"`
}

// Summary computes marginal statistics over the post-burn-in samples.
// It returns nil when the chain holds no post-burn-in samples.
func (c *Chain) Summary() []ParamSummary {
	if len(c.Flat()) == 0 {
		return nil
	}

	best, _ := c.MaxLogProb()
	out := make([]ParamSummary, c.Dim())
	for j, name := range c.names {
		vals := c.FlatParam(j)
		median, _ := stats.Median(vals)
		std, _ := stats.StandardDeviation(vals)
		p16, _ := stats.Percentile(vals, 16)
		p84, _ := stats.Percentile(vals, 84)
		out[j] = ParamSummary{
			Name:   name,
			Median: median,
			Std:    std,
			P16:    p16,
			P84:    p84,
			Best:   best[j],
		}
	}
	return out
}
