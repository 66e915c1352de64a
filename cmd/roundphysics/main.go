package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/roundphysics/internal/body"
	"github.com/san-kum/roundphysics/internal/clock"
	"github.com/san-kum/roundphysics/internal/config"
	"github.com/san-kum/roundphysics/internal/engine"
	"github.com/san-kum/roundphysics/internal/gui"
	"github.com/san-kum/roundphysics/internal/integrator"
	"github.com/san-kum/roundphysics/internal/metrics"
	"github.com/san-kum/roundphysics/internal/render"
	"github.com/san-kum/roundphysics/internal/scene"
	"github.com/san-kum/roundphysics/internal/storage"
	"github.com/san-kum/roundphysics/internal/tui"
	"github.com/san-kum/roundphysics/internal/watch"
)

var (
	dataDir    string
	sceneFile  string
	integ      string
	frames     int
	fps        float64
	seed       int64
	sampleRate int
	show       bool
	watchFiles bool
	theme      string
	workers    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "roundphysics",
		Short: "2d particle sandbox",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".roundphysics", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scene headless and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScene,
	}
	addSceneFlags(runCmd)
	runCmd.Flags().IntVar(&frames, "frames", 600, "frames to simulate")
	runCmd.Flags().IntVar(&sampleRate, "sample", 1, "store every nth frame")
	runCmd.Flags().IntVar(&workers, "workers", 0, "goroutines for body behaviors (0 = serial)")
	runCmd.Flags().BoolVar(&show, "show", false, "draw frames in real time while running")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run a scene in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)
	liveCmd.Flags().BoolVar(&watchFiles, "watch", false, "reload the scene file when it changes")
	liveCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")

	guiCmd := &cobra.Command{
		Use:   "gui [preset]",
		Short: "run a scene in a desktop window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	addSceneFlags(guiCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot kinetic energy of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency and phase analysis of one body",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&analyzeBody, "body", 0, "body index")
	analyzeCmd.Flags().StringVar(&analyzeAxis, "axis", "y", "axis (x or y)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [file]",
		Short: "export the last frame of a run as SVG",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().BoolVar(&svgTracks, "tracks", true, "draw body paths")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id] [file]",
		Short: "export run data to JSON",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available scene presets",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write a scene file to start from",
		Args:  cobra.ExactArgs(1),
		RunE:  initScene,
	}

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, plotCmd, analyzeCmd, exportSVGCmd, exportJSONCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sceneFile, "scene", "", "scene file path (yaml)")
	cmd.Flags().StringVar(&integ, "integrator", config.DefaultIntegrator, "integrator ("+fmt.Sprint(integrator.NewRegistry().Names())+")")
	cmd.Flags().Float64Var(&fps, "fps", config.DefaultFPS, "frames per second")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
}

// loadScene resolves the scene for a command. A preset is the base, a scene
// file replaces it and flags the user set override both.
func loadScene(cmd *cobra.Command, args []string) (*config.Scene, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
	}

	if sceneFile != "" {
		loaded, err := config.Load(sceneFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load scene: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integ
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = fps
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runScene(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd, args)
	if err != nil {
		return err
	}
	if frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", frames)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ms := append(metrics.Defaults(), metrics.NewContainment(cfg.Bounds()))
	rec := metrics.NewRecorder(sampleRate, ms...)

	interval := 1000 / cfg.FPS
	term := render.NewTerminal(60, 20, cfg.Bounds())

	var (
		renderer engine.Renderer = term
		manual   *clock.Manual
		ticker   *clock.Ticker
		clk      engine.Clock
	)
	if show {
		live := tui.NewLiveRenderer(os.Stdout, cfg.Name, cfg.Bounds(), int(cfg.FPS))
		live.Start()
		defer live.Stop()
		renderer = live
		ticker = clock.NewTicker(time.Duration(interval * float64(time.Millisecond)))
		defer ticker.Close()
		clk = ticker
	} else {
		manual = clock.NewManual()
		clk = manual
	}

	eng := engine.New(clk, renderer,
		engine.WithBounds(cfg.Bounds()),
		engine.WithParallel(workers),
		engine.WithObserver(rec),
	)
	usedSeed, err := scene.Build(cfg, eng)
	if err != nil {
		return err
	}

	eng.AddObserver(engine.ObserverFunc(func(frame int, t float64, _ []*body.Body) {
		if frame >= frames {
			eng.Stop()
		}
	}))

	fmt.Printf("running %s with %d bodies...\n", cfg.Name, len(eng.Bodies()))
	start := time.Now()

	if err := eng.Start(context.Background()); err != nil {
		return err
	}
	if show {
		<-eng.Done()
	} else {
		manual.Run(frames, interval)
		eng.Stop()
	}

	elapsed := time.Since(start)
	stats := eng.Stats()
	summary := rec.Summary()

	meta := storage.RunMetadata{
		Scene:      cfg.Name,
		Timestamp:  time.Now(),
		Seed:       usedSeed,
		Integrator: stats.Stepper,
		FPS:        cfg.FPS,
		Frames:     stats.Frame,
		Duration:   stats.Time,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Background: eng.Background(),
		Bodies:     stats.Bodies,
		Metrics:    summary,
	}
	runID, err := st.Save(meta, rec.Frames())
	if err != nil {
		return err
	}

	if !show {
		_, final := term.Frame()
		fmt.Println(final)
	}
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("seed: %d\n", usedSeed)
	fmt.Printf("frames: %d (%.2fs simulated)\n", stats.Frame, stats.Time)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(summary))
	for name := range summary {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, summary[name])
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd, args)
	if err != nil {
		return err
	}

	opts := tui.Options{Theme: theme}
	if watchFiles {
		if sceneFile == "" {
			return fmt.Errorf("--watch needs --scene")
		}
		w, err := watch.NewWatcher(sceneFile)
		if err != nil {
			return err
		}
		defer w.Close()
		go func() {
			for err := range w.Errors {
				log.Printf("watch: %v", err)
			}
		}()
		opts.Reload = w.Events
	}

	return tui.Run(cfg, opts)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd, args)
	if err != nil {
		return err
	}

	win := gui.NewWindow(int32(cfg.Width), int32(cfg.Height), "roundphysics - "+cfg.Name, int32(cfg.FPS))
	eng := engine.New(win, win,
		engine.WithBounds(cfg.Bounds()),
		engine.WithInput(win),
	)
	if _, err := scene.Build(cfg, eng); err != nil {
		return err
	}

	return win.Run(eng, func() error {
		_, err := scene.Build(cfg, eng)
		return err
	})
}

func initScene(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
