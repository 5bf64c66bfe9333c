package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/forcekit/internal/analysis"
	"github.com/san-kum/forcekit/internal/backend"
	"github.com/san-kum/forcekit/internal/config"
	"github.com/san-kum/forcekit/internal/experiment"
	"github.com/san-kum/forcekit/internal/force"
	"github.com/san-kum/forcekit/internal/forces"
	"github.com/san-kum/forcekit/internal/metrics"
	"github.com/san-kum/forcekit/internal/storage"
	"github.com/san-kum/forcekit/internal/vector"
	"github.com/san-kum/forcekit/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	save       bool
	frameRate  int
	series     string
	spectrumOf string
	dts        string
	members    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "forcekit",
		Short:         "backend-keyed force registry lab",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().String("data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run an experiment and print per-backend aggregates",
		Args:  cobra.NoArgs,
		RunE:  runExperiment,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", false, "store the run under the data directory")
	runCmd.Flags().Bool("plot", false, "plot every series after the run")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "step an experiment with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	backendsCmd := &cobra.Command{
		Use:   "backends",
		Short: "list backends and the forces registered for each",
		Args:  cobra.NoArgs,
		RunE:  listBackends,
	}
	backendsCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().StringVar(&series, "series", "", "plot only this series ("+strings.Join(viz.SeriesNames(), ", ")+")")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p, err := config.GetPreset(name)
				if err != nil {
					return err
				}
				fmt.Printf("  %-12s %3d forces, %d steps, dt=%g\n", name, len(p.Forces), p.Steps, p.Dt)
			}
			return nil
		},
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&spectrumOf, "series", viz.SeriesF64, "series to analyze")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the same forces over several timesteps concurrently",
		Args:  cobra.NoArgs,
		RunE:  sweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&dts, "dts", "0.01,0.05,0.1", "comma separated timesteps")
	sweepCmd.Flags().IntVar(&members, "concurrency", 0, "concurrent runs (0 = unbounded)")

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	rootCmd.AddCommand(runCmd, liveCmd, backendsCmd, listCmd, showCmd, exportCmd, analyzeCmd, sweepCmd, presetsCmd, initCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Int("steps", config.DefaultSteps, "number of steps")
	cmd.Flags().Float64("dt", config.DefaultDt, "timestep")
	cmd.Flags().Bool("parallel", false, "evaluate CPU[float64] forces concurrently")
	cmd.Flags().Int("workers", config.DefaultWorkers, "parallel evaluation limit (0 = unbounded)")
}

// loadConfig resolves the effective configuration. A preset replaces the
// run parameters and forces from file and env, but explicit flags still win.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, nil, err
		}
		p.DataDir, p.LogLevel, p.Plot = cfg.DataDir, cfg.LogLevel, cfg.Plot
		flags := cmd.Flags()
		if flags.Changed("steps") {
			p.Steps = cfg.Steps
		}
		if flags.Changed("dt") {
			p.Dt = cfg.Dt
		}
		if flags.Changed("parallel") {
			p.Parallel = cfg.Parallel
		}
		if flags.Changed("workers") {
			p.Workers = cfg.Workers
		}
		cfg = p
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, newLogger(cfg.LogLevel), nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func setup(cfg *config.Config, logger *slog.Logger) (*experiment.Experiment, *experiment.Registry, error) {
	reg := experiment.NewRegistry()
	exp := experiment.New(cfg.Experiment(), logger)
	if err := exp.Setup(reg); err != nil {
		return nil, nil, err
	}
	return exp, reg, nil
}

func runExperiment(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	exp, _, err := setup(cfg, logger)
	if err != nil {
		return err
	}

	fmt.Printf("running %d forces for %d steps...\n", exp.System().Forces().Len(), cfg.Steps)
	start := time.Now()
	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("session: %s\n\n", exp.System().ID)
	if n := len(result.Samples); n > 0 {
		fmt.Print(viz.Summary(result.Samples[n-1]))
	}

	values := metrics.Collect(result.Samples, metrics.Default()...)
	printMetrics(values)

	if cfg.Plot {
		for _, name := range viz.SeriesNames() {
			graph, err := viz.Plot(result.Samples, name, 10, 80)
			if err != nil {
				return err
			}
			fmt.Println()
			fmt.Println(graph)
		}
	}

	if save {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(exp.System().ID, cfg.Experiment(), result, values)
		if err != nil {
			return err
		}
		logger.Info("run saved", "id", runID, "dir", cfg.DataDir)
		fmt.Printf("\nrun id: %s\n", runID)
	}
	return nil
}

func printMetrics(values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, values[name])
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// The TUI owns the terminal, so session logs are dropped.
	exp, reg, err := setup(cfg, nil)
	if err != nil {
		return err
	}

	interval := time.Second / 60
	if frameRate > 0 {
		interval = time.Second / time.Duration(frameRate)
	}

	m := viz.NewLiveModel(cmd.Context(), exp, reg, cfg.Steps, interval)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	if live, ok := final.(viz.LiveModel); ok {
		return live.Err()
	}
	return nil
}

func listBackends(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	exp, _, err := setup(cfg, logger)
	if err != nil {
		return err
	}
	reg := exp.System().Forces()

	rows := []viz.BackendRow{
		{Info: backend.Describe[forces.CPU64, float64](), Registered: force.Count[forces.CPU64](reg)},
		{Info: backend.Describe[forces.CPU32, float32](), Registered: force.Count[forces.CPU32](reg)},
		{Info: backend.Describe[forces.CPUVec, vector.Vec3[float64]](), Registered: force.Count[forces.CPUVec](reg)},
		{Info: backend.Describe[backend.CUDA[float64], float64](), Registered: force.Count[backend.CUDA[float64]](reg)},
		{Info: backend.Describe[backend.CUDA[float32], float32](), Registered: force.Count[backend.CUDA[float32]](reg)},
	}
	if err := viz.WriteBackends(os.Stdout, rows); err != nil {
		return err
	}
	fmt.Printf("\npreferred device: %s\n", backend.PreferredKind())
	fmt.Printf("registry: %s\n", reg)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}
	return viz.WriteRuns(os.Stdout, runs)
}

func showRun(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("session: %s\n", meta.Session)
	fmt.Printf("time: %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("samples: %d (dt=%g)\n", len(samples), meta.Dt)
	for _, b := range meta.Backends {
		fmt.Printf("backend: %s on %s\n", b.Type, b.Device)
	}
	fmt.Println()
	fmt.Print(viz.Summary(samples[len(samples)-1]))

	names := viz.SeriesNames()
	if series != "" {
		names = []string{series}
	}
	for _, name := range names {
		graph, err := viz.Plot(samples, name, 10, 80)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(graph)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	meta, err := storage.New(cfg.DataDir).Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return err
		}
		cfg = p
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	data, err := viz.Extract(samples, spectrumOf)
	if err != nil {
		return err
	}

	freq, err := analysis.DominantFrequency(data, meta.Dt)
	if err != nil {
		return err
	}

	ps := analysis.PowerSpectrum(data)
	graph := viz.PlotValues(ps[:max(len(ps)/4, 1)], 15, 80, fmt.Sprintf("power spectrum (%s)", spectrumOf))
	fmt.Printf("frequency analysis: %s\n\n", meta.ID)
	fmt.Println(graph)
	fmt.Println()

	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	return nil
}

func parseDts(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid dt %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func sweep(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	steps, err := parseDts(dts)
	if err != nil {
		return err
	}

	base := cfg.Experiment()
	cfgs := make([]experiment.Config, len(steps))
	for i, dt := range steps {
		c := base
		c.Dt = dt
		cfgs[i] = c
	}

	start := time.Now()
	results, err := experiment.NewEnsemble(experiment.NewRegistry(), members, logger).Run(cmd.Context(), cfgs)
	if err != nil {
		return err
	}
	logger.Debug("sweep finished", "members", len(results), "elapsed", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tSTEPS\tFINAL_F64\tMEAN_F64\tPEAK_VEC\tENERGY_DRIFT")
	for i, res := range results {
		values := metrics.Collect(res.Samples, metrics.Default()...)
		final := 0.0
		if n := len(res.Samples); n > 0 {
			final = res.Samples[n-1].F64
		}
		fmt.Fprintf(w, "%.4f\t%d\t%12.6f\t%12.6f\t%12.6f\t%12.2e\n",
			cfgs[i].Dt, len(res.Samples), final, values["mean_f64"], values["peak_vec"], values["energy_drift"])
	}
	return w.Flush()
}
