package analysis

import "math"

// Histogram bins a sample into equal-width counts over its range.
type Histogram struct {
	Edges  []float64 // bin edges, len bins+1
	Counts []float64 // per-bin counts, len bins
}

// NewHistogram builds a histogram with the given number of bins.
// Non-finite values are skipped; a degenerate range collapses to a
// single occupied bin.
func NewHistogram(values []float64, bins int) *Histogram {
	if bins < 1 {
		bins = 1
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	n := 0
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		n++
	}

	h := &Histogram{
		Edges:  make([]float64, bins+1),
		Counts: make([]float64, bins),
	}
	if n == 0 {
		return h
	}
	if hi == lo {
		hi = lo + 1
	}

	width := (hi - lo) / float64(bins)
	for i := range h.Edges {
		h.Edges[i] = lo + float64(i)*width
	}

	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		h.Counts[idx]++
	}
	return h
}

// Mode returns the center of the fullest bin.
func (h *Histogram) Mode() float64 {
	best, at := -1.0, 0
	for i, c := range h.Counts {
		if c > best {
			best = c
			at = i
		}
	}
	return (h.Edges[at] + h.Edges[at+1]) / 2
}
