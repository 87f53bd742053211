package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/analysis"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/export"
	"github.com/san-kum/orbitsim/internal/gui"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/san-kum/orbitsim/internal/viz"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd, args[0])
	if err != nil {
		return err
	}

	s, err := newMeasuredSimulation(sc)
	if err != nil {
		return err
	}

	every := max(1, sc.Ticks/10)
	s.AddObserver(sim.ObserverFunc(func(tick int, t float64, bodies []physics.Body) {
		if tick%every == 0 {
			logger.Debug().
				Int("tick", tick).
				Str("t", viz.FormatDuration(t)).
				Float64("energy", physics.TotalEnergy(bodies)).
				Msg("progress")
		}
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info().Str("scenario", sc.Name).Int("bodies", s.Len()).Float64("dt", sc.Dt).Int("ticks", sc.Ticks).Msg("running")
	start := time.Now()
	result, runErr := s.Run(ctx, sc.Ticks)
	elapsed := time.Since(start)

	collision := runErr
	if runErr != nil && !errors.Is(runErr, physics.ErrCollision) {
		logger.Warn().Err(runErr).Int("ticks", result.Ticks).Msg("run interrupted")
		collision = nil
	}

	if !noSave {
		st := storage.New(settings.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(sc.Name, sc.Dt, result, collision)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		logger.Info().Str("run", runID).Msg("saved")
	}

	fmt.Printf("completed %d ticks (%s simulated) in %v\n", result.Ticks, viz.FormatDuration(result.Time), elapsed)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, result.Metrics[name])
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tMASS\tX\tY\tVX\tVY")
	for _, b := range result.Final {
		fmt.Fprintf(w, "%s\t%.4g\t%.6g\t%.6g\t%.6g\t%.6g\n", b.ID, b.Mass, b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if runErr != nil {
		reportCollision(runErr)
		return runErr
	}
	return nil
}

// projection maps the scenario display onto a w x h screen, or fits the
// bodies when --fit is set.
func projection(sc *config.Scenario, s *sim.Simulation, w, h float64) viz.Projection {
	if fit {
		return viz.FitProjection(s.Bodies(), w, h, 0.2)
	}
	d := sc.Display
	p := viz.Projection{Scale: d.Scale, OriginX: d.OriginX, OriginY: d.OriginY}
	return p.Resize(float64(d.Width), float64(d.Height), w, h)
}

func runLive(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd, args[0])
	if err != nil {
		return err
	}

	s, err := newSimulation(sc)
	if err != nil {
		return err
	}

	maxTicks := 0
	if cmd.Flags().Changed("ticks") {
		maxTicks = sc.Ticks
	}

	w, h := viz.CanvasDots()
	m := viz.NewModel(s, projection(sc, s, w, h), viz.Options{
		Name:          sc.Name,
		FPS:           sc.Display.FPS,
		StepsPerFrame: sc.Display.StepsPerFrame,
		MaxTicks:      maxTicks,
		Theme:         theme,
	})

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(viz.Model); ok && fm.Err() != nil {
		reportCollision(fm.Err())
		return fm.Err()
	}
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd, args[0])
	if err != nil {
		return err
	}

	s, err := newSimulation(sc)
	if err != nil {
		return err
	}

	maxTicks := 0
	if cmd.Flags().Changed("ticks") {
		maxTicks = sc.Ticks
	}

	d := sc.Display
	err = gui.Run(s, projection(sc, s, float64(d.Width), float64(d.Height)), gui.Options{
		Name:          sc.Name,
		Width:         d.Width,
		Height:        d.Height,
		FPS:           d.FPS,
		StepsPerFrame: d.StepsPerFrame,
		MaxTicks:      maxTicks,
	})
	if err != nil {
		reportCollision(err)
	}
	return err
}

// series records one value per committed tick, starting from the initial
// state.
type series struct {
	energy     []float64
	separation []float64
	x, y       []float64
	paths      [][]r2.Vec
	final      []physics.Body
	index      int
}

func newSeries(bodies []physics.Body, index int) *series {
	s := &series{index: index, paths: make([][]r2.Vec, len(bodies))}
	s.observe(bodies)
	return s
}

func (s *series) observe(bodies []physics.Body) {
	s.energy = append(s.energy, physics.TotalEnergy(bodies))
	if len(bodies) >= 2 {
		s.separation = append(s.separation, physics.Separation(bodies[0], bodies[1]))
	}
	s.x = append(s.x, bodies[s.index].Pos.X)
	s.y = append(s.y, bodies[s.index].Pos.Y)
	for i, b := range bodies {
		s.paths[i] = append(s.paths[i], b.Pos)
	}
	s.final = bodies
}

func (s *series) OnTick(_ int, _ float64, bodies []physics.Body) { s.observe(bodies) }

// record runs the scenario and collects its series. A collision ends the
// run early; the series up to that tick are still returned.
func record(sc *config.Scenario, id string) (*series, []physics.Body, error) {
	s, err := newSimulation(sc)
	if err != nil {
		return nil, nil, err
	}
	initial := s.Bodies()

	idx, err := bodyIndex(initial, id)
	if err != nil {
		return nil, nil, err
	}

	ser := newSeries(initial, idx)
	s.AddObserver(ser)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, err = s.Run(ctx, sc.Ticks)
	return ser, initial, err
}

func plotScenario(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd, args[0])
	if err != nil {
		return err
	}

	ser, initial, runErr := record(sc, bodyID)
	if ser == nil {
		return runErr
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	fmt.Printf("samples: %d (dt=%gs)\n\n", len(ser.energy), sc.Dt)

	plots := []struct {
		data    []float64
		caption string
	}{
		{ser.energy, "total energy (J)"},
		{ser.separation, fmt.Sprintf("separation %s-%s (m)", initial[0].ID, idOf(initial, 1))},
		{ser.x, fmt.Sprintf("%s x (m)", initial[ser.index].ID)},
		{ser.y, fmt.Sprintf("%s y (m)", initial[ser.index].ID)},
	}
	for _, p := range plots {
		if len(p.data) < 2 {
			continue
		}
		graph := asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if svgPath != "" {
		svg := export.OrbitsSVG(ser.paths, ser.final, sc.Display.Width, sc.Display.Height)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		logger.Info().Str("path", svgPath).Msg("orbits written")
	}

	if runErr != nil {
		reportCollision(runErr)
	}
	return runErr
}

func idOf(bodies []physics.Body, i int) string {
	if i < len(bodies) {
		return bodies[i].ID
	}
	return "-"
}

func analyzeScenario(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd, args[0])
	if err != nil {
		return err
	}

	ser, initial, runErr := record(sc, bodyID)
	if ser == nil {
		return runErr
	}
	if runErr != nil {
		reportCollision(runErr)
		return runErr
	}

	target := initial[ser.index]
	fmt.Printf("orbit analysis: %s (body %s)\n", sc.Name, target.ID)
	fmt.Printf("samples: %d over %s\n\n", len(ser.x), viz.FormatDuration(float64(len(ser.x)-1)*sc.Dt))

	ps := analysis.PowerSpectrum(ser.x)
	if len(ps) > 4 {
		graph := asciigraph.Plot(ps[:max(len(ps)/4, 4)],
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("power spectrum (%s x)", target.ID)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	period, err := analysis.DominantPeriod(ser.x, sc.Dt)
	if err != nil {
		fmt.Printf("dominant period: n/a (%v)\n", err)
	} else {
		fmt.Printf("dominant period: %s\n", viz.FormatDuration(period))
	}

	if len(initial) == 2 {
		if p, ok := keplerPeriod(initial[0], initial[1]); ok {
			fmt.Printf("kepler period:   %s\n", viz.FormatDuration(p))
		} else {
			fmt.Println("kepler period:   unbound")
		}
	}

	if lyapunovTicks > 0 {
		scale := 1.0
		if len(initial) >= 2 {
			scale = physics.Separation(initial[0], initial[1])
		}
		lambda, err := analysis.LyapunovExponent(initial, sc.Dt, lyapunovTicks, 1e-9*scale)
		if err != nil {
			reportCollision(err)
			return err
		}
		fmt.Printf("lyapunov exponent: %.4g 1/s\n", lambda)
	}

	return nil
}

// keplerPeriod returns the two-body orbital period from the vis-viva
// semi-major axis, or false for an unbound pair.
func keplerPeriod(a, b physics.Body) (float64, bool) {
	mu := physics.G * (a.Mass + b.Mass)
	r := physics.Separation(a, b)
	v := r2.Norm(r2.Sub(b.Vel, a.Vel))

	inv := 2/r - v*v/mu
	if !(inv > 0) {
		return 0, false
	}
	sma := 1 / inv
	return 2 * math.Pi * math.Sqrt(sma*sma*sma/mu), true
}

func compareTimeSteps(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd, args[0])
	if err != nil {
		return err
	}

	dts := make([]float64, 0, len(args)-1)
	for _, arg := range args[1:] {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("time step %q: %w", arg, err)
		}
		dts = append(dts, v)
	}
	if len(dts) == 0 {
		dts = []float64{sc.Dt / 4, sc.Dt / 2, sc.Dt, sc.Dt * 2}
	}

	sims := make([]*sim.Simulation, len(dts))
	for i, step := range dts {
		variant := *sc
		variant.Dt = step
		sims[i], err = newMeasuredSimulation(&variant)
		if err != nil {
			return fmt.Errorf("dt=%g: %w", step, err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	duration := float64(sc.Ticks) * sc.Dt
	fmt.Printf("comparing time steps for %s over %s\n\n", sc.Name, viz.FormatDuration(duration))

	start := time.Now()
	results, errs := sim.NewEnsemble(sims, workers).RunDuration(ctx, duration)
	logger.Debug().Dur("elapsed", time.Since(start)).Int("runs", len(sims)).Msg("ensemble done")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tTICKS\tENERGY_DRIFT\tSEPARATION_DRIFT\tMOMENTUM_DRIFT\tSTATUS")
	for i, res := range results {
		status := "ok"
		if errs[i] != nil {
			status = errs[i].Error()
		}
		fmt.Fprintf(w, "%g\t%d\t%.3e\t%.3e\t%.3e\t%s\n",
			dts[i],
			res.Ticks,
			res.Metrics["energy_drift"],
			res.Metrics["separation_drift"],
			res.Metrics["momentum_drift"],
			status,
		)
	}
	return w.Flush()
}

// ringBodies places n equal masses on a circle, each moving tangentially.
func ringBodies(n int) []physics.Body {
	bodies := make([]physics.Body, n)
	for i := range bodies {
		angle := 2 * math.Pi * float64(i) / float64(n)
		bodies[i] = physics.Body{
			ID:   strconv.Itoa(i),
			Mass: 1e6,
			Pos:  r2.Vec{X: 1000 * math.Cos(angle), Y: 1000 * math.Sin(angle)},
			Vel:  r2.Vec{X: -math.Sin(angle) * 1e-3, Y: math.Cos(angle) * 1e-3},
		}
	}
	return bodies
}

func benchIntegrator(cmd *cobra.Command, args []string) error {
	if benchTicks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", benchTicks)
	}

	fmt.Println("benchmarking semi-implicit euler")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tTICKS\tTIME\tTICKS/SEC\tFORCES/SEC")

	for _, n := range benchBodies {
		if n < 1 {
			return fmt.Errorf("body count must be positive, got %d", n)
		}
		bodies := ringBodies(n)
		integ := integrators.NewSemiImplicitEuler(physics.Gravity{})

		start := time.Now()
		for i := 0; i < benchTicks; i++ {
			if err := integ.Step(bodies, 1); err != nil {
				return err
			}
		}
		elapsed := time.Since(start)

		ticksPerSec := float64(benchTicks) / elapsed.Seconds()
		forcesPerSec := ticksPerSec * float64(n*(n-1))
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%.3g\n", n, benchTicks, elapsed, ticksPerSec, forcesPerSec)
	}

	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	for _, name := range config.ListPresets() {
		sc := config.GetPreset(name)
		fmt.Println(viz.HeaderStyle.Render(name))
		fmt.Println(viz.Row("bodies", fmt.Sprintf("%d", len(sc.Bodies))))
		fmt.Println(viz.Row("dt", viz.FormatDuration(sc.Dt)))
		fmt.Println(viz.Row("ticks", fmt.Sprintf("%d", sc.Ticks)))
		fmt.Println(viz.Row("span", viz.FormatDuration(float64(sc.Ticks)*sc.Dt)))
		if sc.AutoOrbit {
			fmt.Println(viz.Row("auto orbit", "yes"))
		}
		fmt.Println()
	}
	return nil
}

func initScenario(cmd *cobra.Command, args []string) error {
	sc := config.GetPreset(args[0])
	if sc == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
	}

	path := args[0] + ".yaml"
	if len(args) > 1 {
		path = args[1]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s exists (use --force to overwrite)", path)
	}

	if err := config.Save(path, sc); err != nil {
		return err
	}
	logger.Info().Str("path", path).Str("preset", sc.Name).Msg("scenario written")
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(settings.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tBODIES\tDT\tTICKS\tSIMULATED\tSTATUS")

	for _, run := range runs {
		status := "ok"
		if run.Collision != "" {
			status = "collision"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%gs\t%d\t%s\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.Dt,
			run.Ticks,
			viz.FormatDuration(run.SimTime),
			status,
		)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(settings.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	if outPath == "" {
		return storage.Export(os.Stdout, meta)
	}
	if err := storage.ExportFile(outPath, meta); err != nil {
		return err
	}
	logger.Info().Str("run", meta.ID).Str("path", outPath).Msg("exported")
	return nil
}
