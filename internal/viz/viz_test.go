package viz

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/papari-man/LVILC/internal/analysis"
)

func TestScatter(t *testing.T) {
	xs := []float64{-6.7, -6.8, -6.6, -6.75}
	ys := []float64{13.8, 13.9, 13.7, 13.85}

	out := Scatter(xs, ys, 20, 8, "H0", "t_fall")

	if !strings.Contains(out, "H0") || !strings.Contains(out, "t_fall") {
		t.Error("expected axis labels in output")
	}

	lit := false
	for _, r := range out {
		if r > 0x2800 && r <= 0x28FF {
			lit = true
			break
		}
	}
	if !lit {
		t.Error("expected at least one lit braille cell")
	}
}

func TestScatterDegenerateRange(t *testing.T) {
	xs := []float64{1.0, 1.0, 1.0}
	ys := []float64{2.0, 2.0, 2.0}

	out := Scatter(xs, ys, 10, 4, "x", "y")
	if out == "" {
		t.Error("expected non-empty plot for constant data")
	}
}

func TestTracePlot(t *testing.T) {
	series := []float64{-90, -88, -86, -85.5, -85.2, -85.1}
	out := TracePlot(series, 30, 4, "log posterior")

	if !strings.Contains(out, "log posterior") {
		t.Error("expected caption in output")
	}

	short := TracePlot([]float64{1}, 30, 4, "x")
	if !strings.Contains(short, "not enough samples") {
		t.Error("expected placeholder for short series")
	}
}

func TestHistogramPlot(t *testing.T) {
	values := []float64{1, 1, 1, 2, 2, 3}
	h := analysis.NewHistogram(values, 3)

	out := HistogramPlot(h, 20)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 bin rows, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "█") {
		t.Error("expected bars in the fullest bin")
	}
}

func TestRenderComparison(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comparison.png")

	z := []float64{0.1, 0.5, 1.0, 1.5, 2.0}
	muA := []float64{38.4, 42.0, 43.7, 44.7, 45.4}
	muB := []float64{37.5, 41.4, 43.3, 44.4, 45.1}

	err := RenderComparison(path, z, muA, muB, "LVILC", "ΛCDM (approx.)", "LVILC vs ΛCDM Comparison")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("png not created: %v", err)
	}
	if info.Size() == 0 {
		t.Error("png is empty")
	}
}

func TestRenderComparisonSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comparison.svg")

	z := []float64{0.1, 1.0, 2.0}
	mu := []float64{38.4, 43.7, 45.4}

	if err := RenderComparison(path, z, mu, mu, "a", "b", "t"); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("svg not created: %v", err)
	}
	if !strings.Contains(string(raw), "<svg") {
		t.Error("expected svg markup")
	}
}

func TestRenderComparisonMismatch(t *testing.T) {
	err := RenderComparison(filepath.Join(t.TempDir(), "x.png"),
		[]float64{0.1, 0.2}, []float64{1}, []float64{1, 2}, "a", "b", "t")
	if err == nil {
		t.Error("expected error for mismatched curves")
	}
}

func TestGetTheme(t *testing.T) {
	if GetTheme("retro").Name != "retro" {
		t.Error("expected retro theme")
	}
	if GetTheme("nonexistent").Name != ThemeNova.Name {
		t.Error("expected fallback to default theme")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme name list out of sync")
	}
}

func TestProgressBar(t *testing.T) {
	full := ProgressBar(1.0, 10)
	if !strings.Contains(full, strings.Repeat("█", 10)) {
		t.Error("expected full bar")
	}
	empty := ProgressBar(0.0, 10)
	if !strings.Contains(empty, strings.Repeat("░", 10)) {
		t.Error("expected empty bar")
	}
}
