package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/papari-man/LVILC/internal/analysis"
)

// TracePlot renders one series as an ascii line chart.
func TracePlot(series []float64, width, height int, caption string) string {
	if len(series) < 2 {
		return Subtle.Render("(not enough samples to plot)")
	}
	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// WalkerTraces overlays the per-sweep series of several walkers.
func WalkerTraces(series [][]float64, width, height int, caption string) string {
	plottable := make([][]float64, 0, len(series))
	for _, s := range series {
		if len(s) >= 2 {
			plottable = append(plottable, s)
		}
	}
	if len(plottable) == 0 {
		return Subtle.Render("(not enough samples to plot)")
	}
	return asciigraph.PlotMany(plottable,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// HistogramPlot renders a marginal histogram as horizontal bars, one
// row per bin with the bin midpoint on the left.
func HistogramPlot(h *analysis.Histogram, width int) string {
	maxCount := 0.0
	for _, c := range h.Counts {
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount == 0 {
		return Subtle.Render("(empty histogram)")
	}

	var b strings.Builder
	for i, c := range h.Counts {
		mid := (h.Edges[i] + h.Edges[i+1]) / 2
		bars := int(math.Round(float64(c) / float64(maxCount) * float64(width)))
		line := fmt.Sprintf("%12.5g │%s %d", mid, strings.Repeat("█", bars), int(c))
		b.WriteString(line + "\n")
	}
	return b.String()
}
