package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/logging"
	"github.com/spf13/cobra"
)

var (
	dataDir       string
	settingsFile  string
	logLevel      string
	logFormat     string
	dt            float64
	ticks         int
	autoOrbit     bool
	frameRate     int
	stepsPerFrame int
	fit           bool
	theme         string
	bodyID        string
	lyapunovTicks int
	workers       int
	benchBodies   []int
	benchTicks    int
	outPath       string
	svgPath       string
	noSave        bool
	force         bool

	settings config.Settings
	logger   = zerolog.Nop()
)

// main registers the commands and flags and executes the root command.
// It exits with status 1 if the command returns an error, including a
// collision during a run.
func main() {
	rootCmd := &cobra.Command{
		Use:               "orbitsim",
		Short:             "n-body gravity simulator",
		PersistentPreRunE: setup,
	}

	defaults := config.DefaultSettings()
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", defaults.DataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "settings file (default ./orbitsim.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaults.LogLevel, "log level")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", defaults.LogFormat, "log format (console, json)")

	runCmd := &cobra.Command{
		Use:   "run [preset|file]",
		Short: "run a scenario and save its summary",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not save the run summary")

	liveCmd := &cobra.Command{
		Use:   "live [preset|file]",
		Short: "run a scenario with live terminal visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	addDisplayFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")

	guiCmd := &cobra.Command{
		Use:   "gui [preset|file]",
		Short: "run a scenario in a window",
		Args:  cobra.ExactArgs(1),
		RunE:  runGUI,
	}
	addScenarioFlags(guiCmd)
	addDisplayFlags(guiCmd)

	plotCmd := &cobra.Command{
		Use:   "plot [preset|file]",
		Short: "plot energy and separation of a scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  plotScenario,
	}
	addScenarioFlags(plotCmd)
	plotCmd.Flags().StringVar(&bodyID, "body", "", "body whose coordinates to plot (default second body)")
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also draw the orbits to an svg file")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [preset|file]",
		Short: "orbital period and divergence analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeScenario,
	}
	addScenarioFlags(analyzeCmd)
	analyzeCmd.Flags().StringVar(&bodyID, "body", "", "body to analyze (default second body)")
	analyzeCmd.Flags().IntVar(&lyapunovTicks, "lyapunov-ticks", 0, "ticks for the Lyapunov estimate (0 to skip)")

	compareCmd := &cobra.Command{
		Use:   "compare [preset|file] [dt...]",
		Short: "compare time steps over the same simulated time",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareTimeSteps,
	}
	addScenarioFlags(compareCmd)
	compareCmd.Flags().IntVar(&workers, "workers", 0, "concurrent simulations (0 for one per time step)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the integrator",
		Args:  cobra.NoArgs,
		RunE:  benchIntegrator,
	}
	benchCmd.Flags().IntSliceVar(&benchBodies, "bodies", []int{2, 10, 100, 500}, "body counts")
	benchCmd.Flags().IntVar(&benchTicks, "ticks", 100, "ticks per body count")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [preset] [file]",
		Short: "write a preset as a scenario file",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  initScenario,
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run summary as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, plotCmd, analyzeCmd, compareCmd, benchCmd, presetsCmd, initCmd, listCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup merges flags, environment and the settings file, then builds the
// logger.
func setup(cmd *cobra.Command, args []string) error {
	v := config.NewViper(settingsFile)
	flags := cmd.Root().PersistentFlags()
	for key, flag := range map[string]string{
		"data_dir":   "data",
		"log_level":  "log-level",
		"log_format": "log-format",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return err
		}
	}

	var err error
	settings, err = config.LoadSettings(v)
	if err != nil {
		return err
	}

	logger, err = logging.New(settings.LogLevel, settings.LogFormat, os.Stderr)
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	return nil
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "time step in seconds")
	cmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	cmd.Flags().BoolVar(&autoOrbit, "auto-orbit", false, "give bodies at rest a circular orbit around the first body")
}

func addDisplayFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().IntVar(&stepsPerFrame, "steps", config.DefaultStepsPerFrame, "ticks per frame")
	cmd.Flags().BoolVar(&fit, "fit", false, "fit the view to the initial bodies instead of the scenario display")
}
