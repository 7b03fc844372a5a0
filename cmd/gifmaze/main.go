package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/fangj99/gifmaze/internal/automation"
	"github.com/fangj99/gifmaze/internal/config"
	"github.com/fangj99/gifmaze/internal/experiment"
	"github.com/fangj99/gifmaze/internal/export"
	"github.com/fangj99/gifmaze/internal/maze"
	"github.com/fangj99/gifmaze/internal/optim"
	"github.com/fangj99/gifmaze/internal/storage"
	"github.com/fangj99/gifmaze/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	outFile    string
	noStore    bool
	seed       int64
	speed      int
	delay      int
	cellSize   int
	width      int
	height     int
	// watch
	stride int
	// show, plot
	braille bool
	svgFile string
	// batch
	batchOut string
	// ensemble
	runs    int
	workers int
	// tune
	tuneParams []string
	tuneMetric string
	// config
	savePath string

	logger = slog.New(slog.DiscardHandler)
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "gifmaze",
		Short:         "animated GIFs of maze algorithms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gifmaze", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log setup, phases and frames to stderr")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "render a preset or config file to a GIF",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnimation,
	}
	addCanvasFlags(runCmd.Flags())
	runCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <name>.gif)")
	runCmd.Flags().BoolVar(&noStore, "no-store", false, "do not record the run in the data directory")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [preset]",
		Short: "print a preset (or the default config) as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printConfig,
	}
	configCmd.Flags().StringVar(&savePath, "save", "", "write the config to this file instead")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the encoded size of every frame of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "also write the plot to this SVG file")

	showCmd := &cobra.Command{
		Use:   "show [preset]",
		Short: "render the final picture in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showMaze,
	}
	addCanvasFlags(showCmd.Flags())
	showCmd.Flags().BoolVar(&braille, "braille", false, "draw passages with braille dots")
	showCmd.Flags().StringVar(&svgFile, "svg", "", "also write the picture to this SVG file")

	watchCmd := &cobra.Command{
		Use:   "watch [preset]",
		Short: "play the animation in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  watchAnimation,
	}
	addCanvasFlags(watchCmd.Flags())
	watchCmd.Flags().IntVar(&stride, "stride", 1, "keep every n-th frame")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "render every step of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", ".", "directory for save_as outputs")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [preset]",
		Short: "render one config over many seeds and summarize file sizes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	addCanvasFlags(ensembleCmd.Flags())
	ensembleCmd.Flags().IntVar(&runs, "runs", 10, "number of seeds")
	ensembleCmd.Flags().IntVar(&workers, "workers", 0, "parallel renders (default GOMAXPROCS)")

	tuneCmd := &cobra.Command{
		Use:   "tune [preset]",
		Short: "grid search render parameters for the smallest metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTune,
	}
	addCanvasFlags(tuneCmd.Flags())
	tuneCmd.Flags().StringArrayVarP(&tuneParams, "param", "p", nil, "name=v1,v2,... (one of "+strings.Join(optim.ParamNames(), ", ")+")")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "total_bytes", "metric to minimize")

	rootCmd.AddCommand(runCmd, presetsCmd, configCmd, listCmd, plotCmd, showCmd, watchCmd, batchCmd, ensembleCmd, tuneCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, viz.Failure.Render("error:"), err)
		stop()
		os.Exit(1)
	}
}

func addCanvasFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&configFile, "config", "c", "", "config file path (yaml)")
	fs.Int64Var(&seed, "seed", 0, "random seed (default: preset seed, or time based when zero)")
	fs.IntVar(&speed, "speed", config.DefaultSpeed, "cell changes per frame, all phases")
	fs.IntVar(&delay, "delay", config.DefaultDelay, "frame delay in 1/100 s, all phases")
	fs.IntVar(&cellSize, "cell", config.DefaultCellSize, "cell size in pixels")
	fs.IntVar(&width, "width", config.DefaultWidth, "canvas width")
	fs.IntVar(&height, "height", config.DefaultHeight, "canvas height")
}

// loadConfig resolves the config file or preset, then applies the flags
// the user set explicitly.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if len(args) > 0 {
			return nil, fmt.Errorf("give either a preset or --config, not both")
		}
	default:
		name := "prim"
		if len(args) > 0 {
			name = args[0]
		}
		cfg = config.GetPreset(name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("cell") {
		cfg.CellSize = cellSize
	}
	for i := range cfg.Phases {
		if flags.Changed("speed") {
			cfg.Phases[i].Speed = speed
		}
		if flags.Changed("delay") {
			cfg.Phases[i].Delay = config.Int(delay)
		}
	}
	return cfg, nil
}

func prepare(cmd *cobra.Command, args []string) (*config.Config, *experiment.Experiment, error) {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	exp := experiment.New(cfg, experiment.NewRegistry(), logger)
	if err := exp.Setup(); err != nil {
		return nil, nil, err
	}
	return cfg, exp, nil
}

func runAnimation(cmd *cobra.Command, args []string) error {
	cfg, exp, err := prepare(cmd, args)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	out := outFile
	if out == "" {
		name := cfg.Name
		if name == "" {
			name = "maze"
		}
		out = name + ".gif"
	}
	if err := res.Surface.Save(out); err != nil {
		return err
	}

	fmt.Println(viz.GradientText("gifmaze "+cfg.Name, "#00ffff", "#ff00ff"))
	fmt.Println(viz.Metric("output", out))
	fmt.Println(viz.Metric("seed", fmt.Sprintf("%d", cfg.Seed)))
	fmt.Println(viz.Metric("maze", res.Maze.String()))
	fmt.Println(viz.Metric("frames", fmt.Sprintf("%d", res.Frames)))
	fmt.Println(viz.Metric("size", fmt.Sprintf("%d bytes", len(res.Surface.Export()))))
	fmt.Println(viz.Metric("playback", fmt.Sprintf("%.2fs", float64(res.Duration)/100)))
	fmt.Println(viz.Metric("encoded in", elapsed.Round(time.Millisecond).String()))
	fmt.Println(viz.Metric("bytes/pixel", fmt.Sprintf("%.4f", res.Metrics["bytes_per_pixel"])))
	fmt.Println(viz.Sparkline(res.Sizes, 60))

	if noStore {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg, res)
	if err != nil {
		return err
	}
	fmt.Println(viz.Metric("run", runID))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSIZE\tDEPTH\tPHASES\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		phases := ""
		for i, ph := range p.Phases {
			if i > 0 {
				phases += ","
			}
			phases += ph.Algorithm
		}
		fmt.Fprintf(w, "%s\t%dx%d\t%d\t%s\t%s\n", name, p.Width, p.Height, p.ColorDepth, phases, p.Description)
	}
	return w.Flush()
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
	}
	if savePath != "" {
		return config.Save(savePath, cfg)
	}
	return writeYAML(os.Stdout, cfg)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tSIZE\tFRAMES\tBYTES\tPLAYBACK\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%d\t%.2fs\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Frames,
			run.Bytes,
			float64(run.Duration)/100,
			run.Seed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	sizes, err := st.LoadFrameSizes(runID)
	if err != nil {
		return err
	}
	if len(sizes) == 0 {
		return fmt.Errorf("no frames to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("algorithms: %v\n", meta.Algorithms)
	fmt.Printf("%s\n\n", viz.SizeSummary(sizes))
	fmt.Println(viz.FramePlot(sizes, 80, 12, "encoded bytes per frame"))

	if svgFile != "" {
		return os.WriteFile(svgFile, []byte(export.SizesSVG(sizes, 800, 300, "#00ff00")), 0644)
	}
	return nil
}

func showMaze(cmd *cobra.Command, args []string) error {
	cfg, exp, err := prepare(cmd, args)
	if err != nil {
		return err
	}
	rec := viz.NewRecorder(exp.Maze(), exp.Engine().Colormap, cfg.Background, 1<<30)
	exp.Observe(rec)

	if _, err := exp.Run(cmd.Context()); err != nil {
		return err
	}

	if svgFile != "" {
		svg := export.MazeSVG(rec.Current(), cfg.ColorTable(), cfg.CellSize)
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return err
		}
	}

	if braille {
		c := viz.BrailleGrid(exp.Maze().Snapshot(), func(v int) bool { return v != maze.Wall })
		fmt.Print(c.String())
		return nil
	}
	fmt.Print(viz.RenderGrid(rec.Current(), cfg.ColorTable()))
	return nil
}

func watchAnimation(cmd *cobra.Command, args []string) error {
	cfg, exp, err := prepare(cmd, args)
	if err != nil {
		return err
	}
	rec := viz.NewRecorder(exp.Maze(), exp.Engine().Colormap, cfg.Background, stride)
	exp.Observe(rec)

	if _, err := exp.Run(cmd.Context()); err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewPlayer(cfg.Name, rec.Frames(), cfg.ColorTable()), tea.WithContext(cmd.Context()))
	_, err = p.Run()
	return err
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if err := os.MkdirAll(batchOut, 0755); err != nil {
		return err
	}

	fmt.Println(viz.GradientText("scenario "+sc.Name, "#00ffff", "#ff00ff"))
	results, err := automation.RunScenario(cmd.Context(), sc, experiment.NewRegistry(), batchOut, logger)
	for i, r := range results {
		line := fmt.Sprintf("%d frames, %d bytes", r.Result.Frames, len(r.Result.Surface.Export()))
		if r.Output != "" {
			line += " -> " + r.Output
		}
		fmt.Println(viz.Metric(fmt.Sprintf("%d %s", i+1, r.Config.Name), line))
	}
	return err
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	results, err := automation.RunEnsemble(cmd.Context(), cfg, runs, cfg.Seed, experiment.NewRegistry(), workers)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tFRAMES\tBYTES")
	sizes := make([]int, len(results))
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\n", r.Seed, r.Frames, r.Bytes)
		sizes[i] = r.Bytes
	}
	if err := w.Flush(); err != nil {
		return err
	}

	lo, mean, hi := automation.EnsembleStats(results)
	fmt.Println()
	fmt.Println(viz.Metric("min bytes", strconv.Itoa(lo)))
	fmt.Println(viz.Metric("mean bytes", fmt.Sprintf("%.1f", mean)))
	fmt.Println(viz.Metric("max bytes", strconv.Itoa(hi)))
	fmt.Println(viz.Sparkline(sizes, 60))
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	names, ranges, err := parseParams(tuneParams)
	if err != nil {
		return err
	}

	gs := optim.NewGridSearch(names, ranges)
	best, val, trials, err := gs.Search(cmd.Context(), cfg, experiment.NewRegistry(), tuneMetric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(strings.Join(names, "\t")), strings.ToUpper(tuneMetric))
	for _, tr := range trials {
		for _, n := range names {
			fmt.Fprintf(w, "%d\t", tr.Params[n])
		}
		fmt.Fprintf(w, "%g\n", tr.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	for _, n := range names {
		fmt.Println(viz.Metric(n, strconv.Itoa(best[n])))
	}
	fmt.Println(viz.Success.Render(fmt.Sprintf("best %s: %g", tuneMetric, val)))
	return nil
}

// parseParams reads name=v1,v2 flags into grid axes.
func parseParams(specs []string) ([]string, [][]int, error) {
	if len(specs) == 0 {
		return nil, nil, fmt.Errorf("at least one --param is required")
	}
	names := make([]string, 0, len(specs))
	ranges := make([][]int, 0, len(specs))
	for _, p := range specs {
		name, values, ok := strings.Cut(p, "=")
		if !ok || values == "" {
			return nil, nil, fmt.Errorf("bad --param %q, want name=v1,v2", p)
		}
		var axis []int
		for _, v := range strings.Split(values, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, nil, fmt.Errorf("bad value in --param %q: %w", p, err)
			}
			axis = append(axis, n)
		}
		names = append(names, name)
		ranges = append(ranges, axis)
	}
	return names, ranges, nil
}
