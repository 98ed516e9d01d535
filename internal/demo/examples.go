// Package demo walks through the sampler and the models end to end,
// printing each worked example to a writer. The examples run
// independently; a failure in one is reported and the rest continue.
package demo

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/papari-man/LVILC/internal/analysis"
	"github.com/papari-man/LVILC/internal/cosmo"
	"github.com/papari-man/LVILC/internal/dataset"
	"github.com/papari-man/LVILC/internal/experiment"
	"github.com/papari-man/LVILC/internal/mcmc"
	"github.com/papari-man/LVILC/internal/viz"
)

// ComparisonPlotFile is the name of the PNG written by the model
// comparison example.
const ComparisonPlotFile = "model_comparison_example.png"

var predictionRedshifts = []float64{0.1, 0.5, 1.0, 1.5, 2.0}

// Runner executes the worked examples against one supernova sample.
type Runner struct {
	out  io.Writer
	data *dataset.CosmologyData
	dir  string
}

// New builds a runner writing to out. Plots land in dir; an empty dir
// means the current directory.
func New(out io.Writer, data *dataset.CosmologyData, dir string) *Runner {
	return &Runner{out: out, data: data, dir: dir}
}

func (r *Runner) header(title string) {
	rule := strings.Repeat("=", 70)
	fmt.Fprintln(r.out, "\n"+rule)
	fmt.Fprintln(r.out, title)
	fmt.Fprintln(r.out, rule)
}

func (r *Runner) printResults(summary []mcmc.ParamSummary) {
	fmt.Fprintln(r.out, "\nResults:")
	for _, s := range summary {
		fmt.Fprintf(r.out, "%s: %.3e ± %.3e\n", s.Name, s.Median, s.Std)
	}
}

// BasicRun samples the posterior with the default settings and prints
// the marginal medians.
func (r *Runner) BasicRun(ctx context.Context) ([]mcmc.ParamSummary, error) {
	r.header("Example 1: Basic MCMC Run")

	exp := experiment.New(experiment.Config{
		Model:   "lvilc",
		Walkers: 16,
		Steps:   1000,
		BurnIn:  200,
	})
	if err := exp.Setup(r.data); err != nil {
		return nil, err
	}

	result, err := exp.Run(ctx)
	if err != nil {
		return nil, err
	}

	r.printResults(result.Summary)
	return result.Summary, nil
}

// CustomInitial repeats the run from a hand-picked starting point.
func (r *Runner) CustomInitial(ctx context.Context) ([]mcmc.ParamSummary, error) {
	r.header("Example 2: Custom Initial Parameters")

	initial := []float64{-8.0, 5e23, 14.5}
	fmt.Fprintln(r.out, "\nUsing initial parameters:")
	fmt.Fprintf(r.out, "  H0 = %.1f km/s/Mpc\n", initial[0])
	fmt.Fprintf(r.out, "  M_bh = %.2e M_sun\n", initial[1])
	fmt.Fprintf(r.out, "  t_fall = %.1f Gyr\n", initial[2])

	exp := experiment.New(experiment.Config{
		Model:   "lvilc",
		Walkers: 16,
		Steps:   1000,
		BurnIn:  200,
		Initial: initial,
	})
	if err := exp.Setup(r.data); err != nil {
		return nil, err
	}

	result, err := exp.Run(ctx)
	if err != nil {
		return nil, err
	}

	r.printResults(result.Summary)
	return result.Summary, nil
}

// Predictions tabulates the observables of the fiducial model over a
// few redshifts.
func (r *Runner) Predictions() error {
	r.header("Example 3: Model Predictions")

	model := cosmo.NewLVILC()

	fmt.Fprintln(r.out, "\nModel predictions:")
	fmt.Fprintf(r.out, "%-8s %-15s %-10s %-20s\n", "z", "d_L (Mpc)", "μ", "H(z) (km/s/Mpc)")
	fmt.Fprintln(r.out, strings.Repeat("-", 60))

	for _, z := range predictionRedshifts {
		fmt.Fprintf(r.out, "%-8.2f %-15.2f %-10.2f %-20.2f\n",
			z, model.LuminosityDistance(z), model.DistanceModulus(z), model.HubbleParameter(z))
	}
	return nil
}

// CompareModels prints distance moduli of the fiducial model next to
// the rough flat-cosmology formula and renders both curves to a PNG.
func (r *Runner) CompareModels() error {
	r.header("Example 4: Model Comparison")

	lvilc := cosmo.NewLVILC()
	approx := cosmo.NewLCDMApprox()

	const points = 20
	step := (2.0 - 0.1) / float64(points-1)
	zs := make([]float64, points)
	lvilcMu := make([]float64, points)
	approxMu := make([]float64, points)
	for i := 0; i < points; i++ {
		zs[i] = 0.1 + float64(i)*step
		lvilcMu[i] = lvilc.DistanceModulus(zs[i])
		approxMu[i] = approx.DistanceModulus(zs[i])
	}

	fmt.Fprintln(r.out, "\nDistance modulus comparison:")
	fmt.Fprintf(r.out, "%-8s %-12s %-12s %-12s\n", "z", "LVILC μ", "ΛCDM μ", "Difference")
	fmt.Fprintln(r.out, strings.Repeat("-", 50))

	for i := 0; i < points; i += 4 {
		fmt.Fprintf(r.out, "%-8.2f %-12.2f %-12.2f %-12.2f\n",
			zs[i], lvilcMu[i], approxMu[i], lvilcMu[i]-approxMu[i])
	}

	path := filepath.Join(r.dir, ComparisonPlotFile)
	if err := viz.RenderComparison(path, zs, lvilcMu, approxMu, "LVILC", "ΛCDM (approx.)", "LVILC vs ΛCDM Comparison"); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "\nComparison plot saved to: %s\n", path)
	return nil
}

// Sensitivity shows how the distance modulus at z=1 responds to each
// parameter in turn.
func (r *Runner) Sensitivity() error {
	r.header("Example 5: Parameter Sensitivity Analysis")

	model := cosmo.NewLVILC()
	const zTest = 1.0

	fmt.Fprintln(r.out, "\nSensitivity to H0 (at z=1.0):")
	points, err := analysis.Sensitivity(model, "H0", []float64{-5.0, -6.73, -8.0, -10.0}, zTest)
	if err != nil {
		return err
	}
	for _, p := range points {
		fmt.Fprintf(r.out, "  H0 = %6.2f km/s/Mpc  →  μ = %.3f\n", p.Value, p.Mu)
	}

	fmt.Fprintln(r.out, "\nSensitivity to M_bh (at z=1.0):")
	points, err = analysis.Sensitivity(model, "M_bh", []float64{1e22, 1e23, 1e24, 1e25}, zTest)
	if err != nil {
		return err
	}
	for _, p := range points {
		fmt.Fprintf(r.out, "  M_bh = %.2e M_sun  →  μ = %.3f\n", p.Value, p.Mu)
	}

	fmt.Fprintln(r.out, "\nSensitivity to t_fall (at z=1.0):")
	points, err = analysis.Sensitivity(model, "t_fall", []float64{12.0, 13.8, 15.0, 17.0}, zTest)
	if err != nil {
		return err
	}
	for _, p := range points {
		fmt.Fprintf(r.out, "  t_fall = %5.1f Gyr  →  μ = %.3f\n", p.Value, p.Mu)
	}
	return nil
}

// contain runs one example, reporting an error or panic without
// stopping the walkthrough.
func (r *Runner) contain(n int, fn func() error) {
	defer func() {
		if p := recover(); p != nil {
			fmt.Fprintf(r.out, "Example %d error: %v\n", n, p)
		}
	}()
	if err := fn(); err != nil {
		fmt.Fprintf(r.out, "Example %d error: %v\n", n, err)
	}
}

// RunAll executes the five examples in order.
func (r *Runner) RunAll(ctx context.Context) {
	rule := strings.Repeat("=", 70)
	fmt.Fprintln(r.out, "\n"+rule)
	fmt.Fprintln(r.out, "LVILC MCMC Examples")
	fmt.Fprintln(r.out, rule)

	r.contain(1, func() error { _, err := r.BasicRun(ctx); return err })
	r.contain(2, func() error { _, err := r.CustomInitial(ctx); return err })
	r.contain(3, r.Predictions)
	r.contain(4, r.CompareModels)
	r.contain(5, r.Sensitivity)

	fmt.Fprintln(r.out, "\n"+rule)
	fmt.Fprintln(r.out, "All examples completed!")
	fmt.Fprintln(r.out, rule+"\n")
}
