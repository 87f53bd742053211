package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/spf13/cobra"
)

// loadScenario resolves arg as a preset name or a scenario file and
// applies the flags the user set explicitly.
func loadScenario(cmd *cobra.Command, arg string) (*config.Scenario, error) {
	sc := config.GetPreset(arg)
	if sc == nil {
		loaded, err := config.Load(arg)
		if err != nil {
			return nil, fmt.Errorf("%q is not a preset (%s) or a readable scenario: %w",
				arg, strings.Join(config.ListPresets(), ", "), err)
		}
		sc = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		sc.Dt = dt
	}
	if flags.Changed("ticks") {
		sc.Ticks = ticks
	}
	if flags.Changed("auto-orbit") {
		sc.AutoOrbit = autoOrbit
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		sc.Display.FPS = frameRate
	}
	if flags.Lookup("steps") != nil && flags.Changed("steps") {
		sc.Display.StepsPerFrame = stepsPerFrame
	}

	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	return sc, nil
}

func newSimulation(sc *config.Scenario) (*sim.Simulation, error) {
	bodies, err := sc.Build()
	if err != nil {
		return nil, err
	}
	return sim.New(bodies, sc.Dt, nil)
}

// newMeasuredSimulation is newSimulation with the default metrics attached.
func newMeasuredSimulation(sc *config.Scenario) (*sim.Simulation, error) {
	s, err := newSimulation(sc)
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Default(s.Bodies()) {
		s.AddMetric(m)
	}
	return s, nil
}

// bodyIndex finds id among bodies. An empty id picks the second body, or
// the first when there is only one.
func bodyIndex(bodies []physics.Body, id string) (int, error) {
	if id == "" {
		if len(bodies) > 1 {
			return 1, nil
		}
		return 0, nil
	}
	for i, b := range bodies {
		if b.ID == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no body %q", id)
}

func reportCollision(err error) {
	var ce *physics.CollisionError
	if !errors.As(err, &ce) {
		return
	}
	ev := logger.Error().
		Str("a", ce.A).
		Str("b", ce.B).
		Float64("x", ce.At.X).
		Float64("y", ce.At.Y)

	var te *sim.TickError
	if errors.As(err, &te) {
		ev = ev.Int("tick", te.Tick).Float64("t", te.Time)
	}
	ev.Msg("collision")
}
