package demo

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/papari-man/LVILC/internal/dataset"
)

func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	return New(buf, dataset.Default(), t.TempDir()), buf
}

func TestPredictionsTable(t *testing.T) {
	r, buf := newTestRunner(t)

	if err := r.Predictions(); err != nil {
		t.Fatalf("Predictions: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Example 3: Model Predictions",
		"H(z) (km/s/Mpc)",
		strings.Repeat("-", 60),
		"5460.33", // d_L at z=1
		"43.69",   // mu at z=1
		"182.44",  // H at z=1
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestCompareModelsOutput(t *testing.T) {
	r, buf := newTestRunner(t)

	if err := r.CompareModels(); err != nil {
		t.Fatalf("CompareModels: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Distance modulus comparison:",
		"38.40", // infall model at z=0.1
		"37.49", // approximate model at z=0.1
		"41.37", // approximate model at z=0.5
		"Comparison plot saved to:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	info, err := os.Stat(filepath.Join(r.dir, ComparisonPlotFile))
	if err != nil {
		t.Fatalf("comparison plot not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("comparison plot is empty")
	}
}

func TestSensitivityOutput(t *testing.T) {
	r, buf := newTestRunner(t)

	if err := r.Sensitivity(); err != nil {
		t.Fatalf("Sensitivity: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Sensitivity to H0 (at z=1.0):",
		"H0 =  -5.00 km/s/Mpc  →  μ = 43.620",
		"H0 = -10.00 km/s/Mpc  →  μ = 43.815",
		"M_bh = 1.00e+24 M_sun  →  μ = 42.511",
		"t_fall =  17.0 Gyr  →  μ = 44.256",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRunAll(t *testing.T) {
	r, buf := newTestRunner(t)

	r.RunAll(context.Background())

	out := buf.String()
	for _, want := range []string{
		"LVILC MCMC Examples",
		"Example 1: Basic MCMC Run",
		"Example 2: Custom Initial Parameters",
		"Example 3: Model Predictions",
		"Example 4: Model Comparison",
		"Example 5: Parameter Sensitivity Analysis",
		"Using initial parameters:",
		"  H0 = -8.0 km/s/Mpc",
		"  M_bh = 5.00e+23 M_sun",
		"  t_fall = 14.5 Gyr",
		"All examples completed!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	if strings.Contains(out, "error:") {
		t.Errorf("examples reported errors:\n%s", out)
	}
	if n := strings.Count(out, "\nResults:\n"); n != 2 {
		t.Errorf("expected 2 results blocks, got %d", n)
	}
	for _, param := range []string{"H0: ", "M_bh: ", "t_fall: "} {
		if strings.Count(out, param) < 2 {
			t.Errorf("expected %q in both sampling examples", param)
		}
	}
	if !strings.Contains(out, " ± ") {
		t.Error("results missing median ± std separator")
	}
}

func TestContainReportsErrors(t *testing.T) {
	r, buf := newTestRunner(t)

	r.contain(7, func() error { return fmt.Errorf("boom") })
	if got := buf.String(); got != "Example 7 error: boom\n" {
		t.Errorf("unexpected error report %q", got)
	}

	buf.Reset()
	r.contain(8, func() error { panic("bang") })
	if got := buf.String(); got != "Example 8 error: bang\n" {
		t.Errorf("unexpected panic report %q", got)
	}
}
