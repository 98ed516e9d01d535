package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/joho/godotenv"
	"github.com/papari-man/LVILC/internal/analysis"
	"github.com/papari-man/LVILC/internal/automation"
	"github.com/papari-man/LVILC/internal/config"
	"github.com/papari-man/LVILC/internal/dataset"
	"github.com/papari-man/LVILC/internal/demo"
	"github.com/papari-man/LVILC/internal/experiment"
	"github.com/papari-man/LVILC/internal/logger"
	"github.com/papari-man/LVILC/internal/mcmc"
	"github.com/papari-man/LVILC/internal/optim"
	"github.com/papari-man/LVILC/internal/storage"
	"github.com/papari-man/LVILC/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	debug    bool
	walkers  int
	steps    int
	burnIn   int
	seed     int64
	moveName string
	workers  int
	// Initial parameter values
	h0     float64
	mbh    float64
	tfall  float64
	omegaM float64
	// Sweep settings
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sensPoints int
	gridSteps  int
	zTest      float64
	// Prediction grid
	zValues []float64
	// Posterior plot axes
	xAxis int
	yAxis int
	bins  int
	// Trace filter
	paramName string
	// Run start mode
	initMode     string
	showProgress bool
	// Restart trials
	trials  int
	perturb float64
	// Grid search resolution
	gridPoints int
	// Comparison plot output
	plotFile string
	// Dataset files
	dataFile string
	saveFile string
	// Config file
	configFile string
	// Preset name
	preset string
)

// main is the entry point for the lvilc CLI; it registers commands and flags,
// runs the example walkthrough when no subcommand is provided, and executes
// the root command. It exits the process with status 1 if command execution
// returns an error.
func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "lvilc",
		Short: "black hole infall cosmology fitting lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the example walkthrough when no command given
			data, err := dataset.Load()
			if err != nil {
				return err
			}
			demo.New(os.Stdout, data, "").RunAll(context.Background())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".lvilc", "data directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")

	var closeLog func() error
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		c, err := logger.Setup(dataDir, debug)
		if err != nil {
			return err
		}
		closeLog = c
		return nil
	}

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "sample the posterior",
		Args:  cobra.ExactArgs(1),
		RunE:  runSampling,
	}
	runCmd.Flags().IntVar(&walkers, "walkers", config.DefaultWalkers, "ensemble walkers")
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "sampling steps")
	runCmd.Flags().IntVar(&burnIn, "burn-in", config.DefaultBurnIn, "burn-in steps to discard")
	runCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	runCmd.Flags().StringVar(&moveName, "move", "stretch", "proposal move (stretch, walk, mh)")
	runCmd.Flags().IntVar(&workers, "workers", 0, "density workers (0 = all cores)")
	runCmd.Flags().Float64Var(&h0, "h0", config.DefaultH0, "initial H0 (km/s/Mpc)")
	runCmd.Flags().Float64Var(&mbh, "mbh", config.DefaultMBH, "initial black hole mass (M_sun)")
	runCmd.Flags().Float64Var(&tfall, "tfall", config.DefaultTFall, "initial infall time (Gyr)")
	runCmd.Flags().Float64Var(&omegaM, "omega-m", config.DefaultOmegaM, "initial matter density (lcdm)")
	runCmd.Flags().StringVar(&dataFile, "data-file", "", "supernova csv (default builtin sample)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&showProgress, "progress", true, "log sweep progress")
	runCmd.Flags().StringVar(&initMode, "init", "", "start mode (grid = coarse grid search optimum)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	diagCmd := &cobra.Command{
		Use:   "diag [run_id]",
		Short: "convergence diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE:  diagnoseRun,
	}

	traceCmd := &cobra.Command{
		Use:   "trace [run_id]",
		Short: "plot parameter traces",
		Args:  cobra.ExactArgs(1),
		RunE:  traceRun,
	}
	traceCmd.Flags().StringVar(&paramName, "param", "", "single parameter to plot")

	posteriorCmd := &cobra.Command{
		Use:   "posterior [run_id]",
		Short: "plot the sampled posterior",
		Args:  cobra.ExactArgs(1),
		RunE:  posteriorRun,
	}
	posteriorCmd.Flags().IntVar(&xAxis, "x", 0, "parameter index for x-axis")
	posteriorCmd.Flags().IntVar(&yAxis, "y", 1, "parameter index for y-axis")
	posteriorCmd.Flags().IntVar(&bins, "bins", 30, "histogram bins")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run samples to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSONRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id] [file]",
		Short: "export run samples to CSV",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportCSVRun,
	}

	predictCmd := &cobra.Command{
		Use:   "predict [model]",
		Short: "tabulate model observables",
		Args:  cobra.ExactArgs(1),
		RunE:  predictModel,
	}
	predictCmd.Flags().Float64SliceVar(&zValues, "z", []float64{0.1, 0.5, 1.0, 1.5, 2.0}, "redshifts to evaluate")
	predictCmd.Flags().Float64Var(&h0, "h0", config.DefaultH0, "H0 (km/s/Mpc)")
	predictCmd.Flags().Float64Var(&mbh, "mbh", config.DefaultMBH, "black hole mass (M_sun)")
	predictCmd.Flags().Float64Var(&tfall, "tfall", config.DefaultTFall, "infall time (Gyr)")
	predictCmd.Flags().Float64Var(&omegaM, "omega-m", config.DefaultOmegaM, "matter density (lcdm)")

	compareCmd := &cobra.Command{
		Use:   "compare [model] [model]",
		Short: "compare distance moduli of two models",
		Args:  cobra.MaximumNArgs(2),
		RunE:  compareModels,
	}
	compareCmd.Flags().StringVar(&plotFile, "plot", "", "write comparison chart to PNG")

	sensitivityCmd := &cobra.Command{
		Use:   "sensitivity [model]",
		Short: "sweep one parameter and print the observable",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepSensitivity,
	}
	sensitivityCmd.Flags().StringVar(&sweepParam, "param", "H0", "parameter to sweep")
	sensitivityCmd.Flags().Float64Var(&sweepMin, "min", -10.0, "sweep lower bound")
	sensitivityCmd.Flags().Float64Var(&sweepMax, "max", -5.0, "sweep upper bound")
	sensitivityCmd.Flags().IntVar(&sensPoints, "points", 5, "sweep points")
	sensitivityCmd.Flags().Float64Var(&zTest, "z", 1.0, "redshift to evaluate")

	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "summarize the supernova sample",
		RunE:  showData,
	}
	dataCmd.Flags().StringVar(&dataFile, "data-file", "", "supernova csv (default builtin sample)")
	dataCmd.Flags().StringVar(&saveFile, "save", "", "write the sample to CSV")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "sample with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLiveView,
	}
	liveCmd.Flags().IntVar(&walkers, "walkers", config.DefaultWalkers, "ensemble walkers")
	liveCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "sampling steps")
	liveCmd.Flags().IntVar(&burnIn, "burn-in", config.DefaultBurnIn, "burn-in steps to discard")
	liveCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	liveCmd.Flags().StringVar(&moveName, "move", "stretch", "proposal move (stretch, walk, mh)")
	liveCmd.Flags().StringVar(&dataFile, "data-file", "", "supernova csv (default builtin sample)")

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive model explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadSample()
			if err != nil {
				return err
			}
			return viz.RunExplore(data)
		},
	}
	exploreCmd.Flags().StringVar(&dataFile, "data-file", "", "supernova csv (default builtin sample)")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "profile the fit statistic along one parameter",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepModel,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "H0", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", -10.0, "sweep lower bound")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", -5.0, "sweep upper bound")
	sweepCmd.Flags().IntVar(&gridSteps, "points", 20, "sweep points")
	sweepCmd.Flags().StringVar(&dataFile, "data-file", "", "supernova csv (default builtin sample)")

	restartsCmd := &cobra.Command{
		Use:   "restarts [model]",
		Short: "run repeated trials from perturbed starts",
		Args:  cobra.ExactArgs(1),
		RunE:  restartModel,
	}
	restartsCmd.Flags().IntVar(&trials, "trials", 8, "number of trials")
	restartsCmd.Flags().Float64Var(&perturb, "perturb", 0.05, "relative start perturbation")
	restartsCmd.Flags().IntVar(&walkers, "walkers", config.DefaultWalkers, "ensemble walkers")
	restartsCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "sampling steps")
	restartsCmd.Flags().IntVar(&burnIn, "burn-in", config.DefaultBurnIn, "burn-in steps to discard")
	restartsCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	restartsCmd.Flags().StringVar(&moveName, "move", "stretch", "proposal move (stretch, walk, mh)")

	studyCmd := &cobra.Command{
		Use:   "study [file]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runStudy,
	}
	studyCmd.Flags().StringVar(&dataFile, "data-file", "", "supernova csv (default builtin sample)")

	gridCmd := &cobra.Command{
		Use:   "grid [model]",
		Short: "grid search the prior box",
		Args:  cobra.ExactArgs(1),
		RunE:  gridSearch,
	}
	gridCmd.Flags().IntVar(&gridPoints, "points", 12, "grid points per axis")
	gridCmd.Flags().StringVar(&dataFile, "data-file", "", "supernova csv (default builtin sample)")

	benchCmd := &cobra.Command{
		Use:   "bench [model]",
		Short: "benchmark sampler throughput",
		Args:  cobra.ExactArgs(1),
		RunE:  benchModel,
	}

	examplesCmd := &cobra.Command{
		Use:   "examples",
		Short: "run the example walkthrough",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := dataset.Load()
			if err != nil {
				return err
			}
			demo.New(os.Stdout, data, "").RunAll(context.Background())
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, showCmd, diagCmd, traceCmd, posteriorCmd,
		exportCmd, exportJSONCmd, exportCSVCmd, predictCmd, compareCmd,
		sensitivityCmd, dataCmd, liveCmd, exploreCmd, presetsCmd, sweepCmd,
		restartsCmd, studyCmd, gridCmd, benchCmd, examplesCmd)

	err := rootCmd.Execute()
	if closeLog != nil {
		_ = closeLog()
	}
	if err != nil {
		os.Exit(1)
	}
}

func loadSample() (*dataset.CosmologyData, error) {
	if dataFile != "" {
		return dataset.LoadCSV(dataFile)
	}
	return dataset.Load()
}

func initialParams(model string) []float64 {
	cfg := config.Config{
		Model: model,
		Init:  config.InitConfig{H0: h0, MBH: mbh, TFall: tfall, OmegaM: omegaM},
	}
	return cfg.GetInitial()
}

func runSampling(cmd *cobra.Command, args []string) error {
	model := args[0]

	useInitial := preset != "" || configFile != ""
	for _, name := range []string{"h0", "mbh", "tfall", "omega-m"} {
		if cmd.Flags().Changed(name) {
			useInitial = true
		}
	}

	// Load preset if specified (explicit flags still win)
	if preset != "" {
		cfg := config.GetPreset(model, preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		if !cmd.Flags().Changed("move") {
			moveName = cfg.Move
		}
		if !cmd.Flags().Changed("walkers") {
			walkers = cfg.Walkers
		}
		if !cmd.Flags().Changed("steps") {
			steps = cfg.Steps
		}
		if !cmd.Flags().Changed("burn-in") {
			burnIn = cfg.BurnIn
		}
		if cfg.Seed != 0 && !cmd.Flags().Changed("seed") {
			seed = cfg.Seed
		}
		if !cmd.Flags().Changed("h0") {
			h0 = cfg.Init.H0
		}
		if !cmd.Flags().Changed("mbh") {
			mbh = cfg.Init.MBH
		}
		if !cmd.Flags().Changed("tfall") {
			tfall = cfg.Init.TFall
		}
		if !cmd.Flags().Changed("omega-m") {
			omegaM = cfg.Init.OmegaM
		}
	}

	// Load config file if specified (overrides preset)
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		// Apply config values (CLI flags override config)
		if !cmd.Flags().Changed("move") {
			moveName = cfg.Move
		}
		if !cmd.Flags().Changed("walkers") {
			walkers = cfg.Walkers
		}
		if !cmd.Flags().Changed("steps") {
			steps = cfg.Steps
		}
		if !cmd.Flags().Changed("burn-in") {
			burnIn = cfg.BurnIn
		}
		if !cmd.Flags().Changed("workers") {
			workers = cfg.Workers
		}
		if cfg.Seed != 0 && !cmd.Flags().Changed("seed") {
			seed = cfg.Seed
		}
		if !cmd.Flags().Changed("h0") {
			h0 = cfg.Init.H0
		}
		if !cmd.Flags().Changed("mbh") {
			mbh = cfg.Init.MBH
		}
		if !cmd.Flags().Changed("tfall") {
			tfall = cfg.Init.TFall
		}
		if !cmd.Flags().Changed("omega-m") {
			omegaM = cfg.Init.OmegaM
		}
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	data, err := loadSample()
	if err != nil {
		return err
	}

	cfg := experiment.Config{
		Model:    model,
		Move:     moveName,
		Walkers:  walkers,
		Steps:    steps,
		BurnIn:   burnIn,
		Seed:     seed,
		Workers:  workers,
		Progress: showProgress,
	}
	if useInitial {
		cfg.Initial = initialParams(model)
	}

	if initMode == "grid" {
		registry := experiment.NewRegistry()
		problem, err := registry.NewProblem(model, data)
		if err != nil {
			return err
		}
		g := optim.FromPriors(problem.Priors(), 8)
		best, _, err := g.Search(context.Background(), problem)
		if err != nil {
			return err
		}
		cfg.Initial = best
		fmt.Println("starting from grid search optimum")
	} else if initMode != "" {
		return fmt.Errorf("unknown init mode: %s", initMode)
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(data); err != nil {
		return err
	}

	fmt.Printf("running %s sampling (%d walkers, %d steps)...\n", model, walkers, steps)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(model, moveName, result.Chain, result.Summary, result.Metrics)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d walkers x %d steps (%d discarded as burn-in)\n\n", walkers, steps, burnIn)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARAM\tMEDIAN\tSTD\tP16\tP84\tBEST")
	for _, s := range result.Summary {
		fmt.Fprintf(w, "%s\t%.6g\t%.3g\t%.6g\t%.6g\t%.6g\n",
			s.Name, s.Median, s.Std, s.P16, s.P84, s.Best)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest chi2: %.2f (dof %d, p-value %.4f)\n", result.BestChi2, result.Dof, result.PValue)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tMOVE\tTIME\tWALKERS\tSTEPS\tBURN-IN")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Model,
			run.Move,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Walkers,
			run.Steps,
			run.BurnIn,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s (%s move)\n", meta.Model, meta.Move)
	fmt.Printf("time: %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("walkers: %d  steps: %d  burn-in: %d  seed: %d\n",
		meta.Walkers, meta.Steps, meta.BurnIn, meta.Seed)
	fmt.Printf("parameters: %s\n", strings.Join(meta.Params, ", "))

	summary, err := st.LoadSummary(meta.ID)
	if err != nil {
		return err
	}
	if summary != nil {
		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PARAM\tMEDIAN\tSTD\tP16\tP84\tBEST")
		for _, s := range summary {
			fmt.Fprintf(w, "%s\t%.6g\t%.3g\t%.6g\t%.6g\t%.6g\n",
				s.Name, s.Median, s.Std, s.P16, s.P84, s.Best)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if len(meta.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		for name, val := range meta.Metrics {
			fmt.Printf("  %s: %.6f\n", name, val)
		}
	}
	return nil
}

func diagnoseRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	chain, err := st.LoadChain(runID)
	if err != nil {
		return err
	}
	if len(chain.Flat()) == 0 {
		return fmt.Errorf("no post-burn-in samples in %s", runID)
	}

	fmt.Printf("convergence diagnostics: %s\n", runID)
	fmt.Printf("samples: %d walkers x %d sweeps (%d burn-in)\n\n",
		chain.Walkers(), chain.Len(), chain.BurnIn())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARAM\tIAT\tESS\tR-HAT\tGEWEKE Z\tGEWEKE P")
	for j, name := range chain.Names() {
		series := chain.FlatParam(j)
		iat, err := analysis.IntegratedTime(series)
		if err != nil {
			return err
		}
		ess := analysis.EffectiveSampleSize(series)
		rhat := analysis.GelmanRubin(chain, j)
		z, p := analysis.Geweke(series)
		fmt.Fprintf(w, "%s\t%.1f\t%.0f\t%.4f\t%.2f\t%.3f\n", name, iat, ess, rhat, z, p)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	corr := analysis.CorrelationMatrix(chain)
	names := chain.Names()
	fmt.Println("\ncorrelation matrix:")
	for i := range corr {
		fmt.Printf("  %-10s", names[i])
		for _, v := range corr[i] {
			fmt.Printf(" %8.4f", v)
		}
		fmt.Println()
	}
	return nil
}

func traceRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	chain, err := st.LoadChain(runID)
	if err != nil {
		return err
	}
	if chain.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("sweeps: %d\n\n", chain.Len())

	found := false
	for j, name := range chain.Names() {
		if paramName != "" && name != paramName {
			continue
		}
		found = true

		data := make([]float64, chain.Len())
		for step := 0; step < chain.Len(); step++ {
			sum := 0.0
			for walker := 0; walker < chain.Walkers(); walker++ {
				sum += chain.At(step, walker)[j]
			}
			data[step] = sum / float64(chain.Walkers())
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s (ensemble mean)", name)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	if !found {
		return fmt.Errorf("unknown parameter: %s (have %v)", paramName, chain.Names())
	}

	return nil
}

func posteriorRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	chain, err := st.LoadChain(runID)
	if err != nil {
		return err
	}
	if len(chain.Flat()) == 0 {
		return fmt.Errorf("no post-burn-in samples in %s", runID)
	}

	names := chain.Names()
	if xAxis < 0 || xAxis >= chain.Dim() || yAxis < 0 || yAxis >= chain.Dim() {
		if chain.Dim() > 1 {
			return fmt.Errorf("parameter index out of range (model has %d)", chain.Dim())
		}
		xAxis, yAxis = 0, 0
	}

	if xAxis != yAxis {
		xs := chain.FlatParam(xAxis)
		ys := chain.FlatParam(yAxis)
		fmt.Printf("posterior: %s vs %s (%d samples)\n\n", names[xAxis], names[yAxis], len(xs))
		fmt.Println(viz.Scatter(xs, ys, 60, 18, names[xAxis], names[yAxis]))
	}

	for _, j := range []int{xAxis, yAxis} {
		h := analysis.NewHistogram(chain.FlatParam(j), bins)
		fmt.Printf("\n%s marginal (mode %.5g):\n", names[j], h.Mode())
		fmt.Println(viz.HistogramPlot(h, 46))
		if xAxis == yAxis {
			break
		}
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	summary, err := st.LoadSummary(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Metadata *storage.RunMetadata `json:"metadata"`
		Summary  []mcmc.ParamSummary  `json:"summary,omitempty"`
	}{meta, summary})
}

func exportJSONRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	chain, err := st.LoadChain(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta.Model, meta.Move, chain, chain.Summary())
}

func exportCSVRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	chain, err := st.LoadChain(runID)
	if err != nil {
		return err
	}

	if len(args) == 2 {
		if err := storage.ExportCSV(args[1], chain); err != nil {
			return err
		}
		fmt.Printf("samples written to: %s\n", args[1])
		return nil
	}

	flat := chain.Flat()
	if len(flat) == 0 {
		return fmt.Errorf("no data to export")
	}
	logp := chain.FlatLogProb()

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := append([]string{}, chain.Names()...)
	header = append(header, "log_prob")
	if err := w.Write(header); err != nil {
		return err
	}

	for i, p := range flat {
		row := make([]string, 0, len(p)+1)
		for _, val := range p {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		row = append(row, strconv.FormatFloat(logp[i], 'g', -1, 64))
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func predictModel(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	model, err := registry.GetModel(args[0])
	if err != nil {
		return err
	}

	flagParams := map[string]string{
		"h0":      "H0",
		"mbh":     "M_bh",
		"tfall":   "t_fall",
		"omega-m": "Omega_m",
	}
	for flag, param := range flagParams {
		if !cmd.Flags().Changed(flag) {
			continue
		}
		val, err := cmd.Flags().GetFloat64(flag)
		if err != nil {
			return err
		}
		if err := model.SetParam(param, val); err != nil {
			return err
		}
	}

	fmt.Printf("model: %s\n", model.Name())
	for i, name := range model.ParamNames() {
		fmt.Printf("  %s = %g\n", name, model.Params()[i])
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Z\tD_L (MPC)\tMU\tH (KM/S/MPC)")
	for _, z := range zValues {
		fmt.Fprintf(w, "%.3f\t%.2f\t%.4f\t%.2f\n",
			z, model.LuminosityDistance(z), model.DistanceModulus(z), model.HubbleParameter(z))
	}
	return w.Flush()
}

func compareModels(cmd *cobra.Command, args []string) error {
	nameA, nameB := "lvilc", "lcdm-approx"
	if len(args) > 0 {
		nameA = args[0]
	}
	if len(args) > 1 {
		nameB = args[1]
	}

	registry := experiment.NewRegistry()
	modelA, err := registry.GetModel(nameA)
	if err != nil {
		return err
	}
	modelB, err := registry.GetModel(nameB)
	if err != nil {
		return err
	}

	const points = 20
	zs := linspace(0.1, 2.0, points)
	muA := make([]float64, points)
	muB := make([]float64, points)
	for i, z := range zs {
		muA[i] = modelA.DistanceModulus(z)
		muB[i] = modelB.DistanceModulus(z)
	}

	fmt.Printf("distance modulus: %s vs %s\n\n", nameA, nameB)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Z\t%s\t%s\tDIFF\n", strings.ToUpper(nameA), strings.ToUpper(nameB))
	for i, z := range zs {
		fmt.Fprintf(w, "%.2f\t%.4f\t%.4f\t%.4f\n", z, muA[i], muB[i], muA[i]-muB[i])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if plotFile != "" {
		title := fmt.Sprintf("%s vs %s", nameA, nameB)
		if err := viz.RenderComparison(plotFile, zs, muA, muB, nameA, nameB, title); err != nil {
			return err
		}
		fmt.Printf("\ncomparison plot saved to: %s\n", plotFile)
	}
	return nil
}

func sweepSensitivity(cmd *cobra.Command, args []string) error {
	if sensPoints < 2 {
		return fmt.Errorf("need at least 2 sweep points")
	}

	registry := experiment.NewRegistry()
	model, err := registry.GetModel(args[0])
	if err != nil {
		return err
	}

	values := linspace(sweepMin, sweepMax, sensPoints)
	points, err := analysis.Sensitivity(model, sweepParam, values, zTest)
	if err != nil {
		return err
	}

	fmt.Printf("sensitivity of mu to %s at z=%.2f\n\n", sweepParam, zTest)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tMU")
	for _, p := range points {
		fmt.Fprintf(w, "%.6g\t%.4f\n", p.Value, p.Mu)
	}
	return w.Flush()
}

func showData(cmd *cobra.Command, args []string) error {
	data, err := loadSample()
	if err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	s := data.Summarize()
	fmt.Printf("source: %s\n", data.Source)
	fmt.Printf("points: %d\n", s.N)
	fmt.Printf("z range: [%.3f, %.3f]\n", s.ZMin, s.ZMax)
	fmt.Printf("mean mu: %.3f\n", s.MeanMu)
	fmt.Printf("mean mu error: %.4f\n", s.MeanErr)

	if saveFile != "" {
		if err := data.SaveCSV(saveFile); err != nil {
			return err
		}
		fmt.Printf("sample written to: %s\n", saveFile)
	}
	return nil
}

func runLiveView(cmd *cobra.Command, args []string) error {
	model := args[0]

	data, err := loadSample()
	if err != nil {
		return err
	}

	cfg := experiment.Config{
		Model:   model,
		Move:    moveName,
		Walkers: walkers,
		Steps:   steps,
		BurnIn:  burnIn,
		Seed:    seed,
	}
	exp := experiment.New(cfg)
	if err := exp.Setup(data); err != nil {
		return err
	}

	chain, err := viz.RunLive(exp, data, model)
	if err != nil {
		return err
	}
	if chain == nil || chain.Len() == 0 {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runID, err := st.Save(model, moveName, chain, chain.Summary(), nil)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("sweeps: %d\n", chain.Len())
	return nil
}

func sweepModel(cmd *cobra.Command, args []string) error {
	data, err := loadSample()
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Model:     args[0],
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  gridSteps,
	}

	results, err := automation.RunSweep(context.Background(), sweep, data)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tCHI2")
	for _, r := range results {
		fmt.Fprintf(w, "%.6g\t%.2f\n", r.ParamValue, r.Chi2)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	finite := make([]float64, 0, len(results))
	for _, r := range results {
		if !math.IsNaN(r.Chi2) && !math.IsInf(r.Chi2, 0) {
			finite = append(finite, r.Chi2)
		}
	}
	if len(finite) >= 2 {
		graph := asciigraph.Plot(finite,
			asciigraph.Height(12),
			asciigraph.Width(70),
			asciigraph.Caption(fmt.Sprintf("chi2 vs %s [%g, %g]", sweepParam, sweepMin, sweepMax)),
		)
		fmt.Println("\n" + graph)
	}

	best := -1
	for i, r := range results {
		if math.IsNaN(r.Chi2) || math.IsInf(r.Chi2, 0) {
			continue
		}
		if best < 0 || r.Chi2 < results[best].Chi2 {
			best = i
		}
	}
	if best >= 0 {
		fmt.Printf("\nminimum chi2 %.2f at %s = %.6g\n",
			results[best].Chi2, sweepParam, results[best].ParamValue)
	}
	return nil
}

func restartModel(cmd *cobra.Command, args []string) error {
	model := args[0]

	data, err := loadSample()
	if err != nil {
		return err
	}

	cfg := &automation.RestartConfig{
		Model:        model,
		Move:         moveName,
		Walkers:      walkers,
		Steps:        steps,
		BurnIn:       burnIn,
		Perturbation: perturb,
		NumTrials:    trials,
		Seed:         seed,
	}

	fmt.Printf("running %d trials of %s...\n", trials, model)
	results, err := automation.RunRestarts(context.Background(), cfg, data)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tSEED\tBEST CHI2\tACCEPT")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%.2f\t%.3f\n", r.TrialID, r.Seed, r.BestChi2, r.Acceptance)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	best, spread := automation.RestartStats(results)
	if best >= 0 {
		fmt.Printf("\nbest trial: %d (chi2 %.2f)\n", results[best].TrialID, results[best].BestChi2)
		fmt.Printf("chi2 spread: %.3g\n", spread)
	}
	return nil
}

func runStudy(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}

	data, err := loadSample()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	results, err := automation.RunScenario(context.Background(), scenario, data)
	if err != nil {
		return err
	}

	for i, result := range results {
		step := scenario.Steps[i]
		move := step.Move
		if move == "" {
			move = "stretch"
		}

		runID, err := st.Save(step.Model, move, result.Chain, result.Summary, result.Metrics)
		if err != nil {
			return err
		}
		fmt.Printf("step %d saved as run %s (chi2 %.2f)\n", i+1, runID, result.BestChi2)

		if step.SaveAs != "" {
			if err := storage.ExportJSON(step.SaveAs, step.Model, move, result.Chain, result.Summary); err != nil {
				return err
			}
			fmt.Printf("step %d exported to %s\n", i+1, step.SaveAs)
		}
	}
	return nil
}

func gridSearch(cmd *cobra.Command, args []string) error {
	data, err := loadSample()
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	problem, err := registry.NewProblem(args[0], data)
	if err != nil {
		return err
	}

	fmt.Printf("grid search: %d points per axis, %d parameters...\n", gridPoints, problem.Dim())
	start := time.Now()

	g := optim.FromPriors(problem.Priors(), gridPoints)
	best, logp, err := g.Search(context.Background(), problem)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))
	for i, name := range problem.Names() {
		fmt.Printf("  %s = %.6g\n", name, best[i])
	}
	fmt.Printf("\nlog probability: %.4f\n", logp)
	fmt.Printf("chi2: %.2f\n", problem.ChiSquaredAt(best))
	return nil
}

func benchModel(cmd *cobra.Command, args []string) error {
	model := args[0]

	data, err := loadSample()
	if err != nil {
		return err
	}

	walkerGrid := []int{8, 16, 32}
	stepGrid := []int{200, 500}

	fmt.Printf("benchmarking %s sampling\n\n", model)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WALKERS\tSTEPS\tEVALS\tTIME\tSTEPS/SEC")

	for _, nw := range walkerGrid {
		for _, ns := range stepGrid {
			cfg := experiment.Config{
				Model:   model,
				Walkers: nw,
				Steps:   ns,
				BurnIn:  1,
				Seed:    42,
			}

			exp := experiment.New(cfg)
			if err := exp.Setup(data); err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			sweeps := result.Chain.Len()
			fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.0f\n",
				nw, ns, nw*ns, elapsed, float64(sweeps)/elapsed.Seconds())
		}
	}

	return w.Flush()
}

func linspace(lo, hi float64, n int) []float64 {
	vals := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range vals {
		vals[i] = lo + float64(i)*step
	}
	return vals
}
