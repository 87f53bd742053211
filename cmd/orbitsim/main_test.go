package main

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"
)

func scenarioCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	addScenarioFlags(cmd)
	addDisplayFlags(cmd)
	return cmd
}

func TestLoadScenarioPreset(t *testing.T) {
	cmd := scenarioCmd()
	if err := cmd.Flags().Parse([]string{"--dt", "60", "--steps", "5"}); err != nil {
		t.Fatal(err)
	}

	sc, err := loadScenario(cmd, "orbit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Dt != 60 {
		t.Errorf("expected dt override 60, got %g", sc.Dt)
	}
	if sc.Ticks != config.Presets["orbit"].Ticks {
		t.Errorf("ticks should keep the preset value, got %d", sc.Ticks)
	}
	if sc.Display.StepsPerFrame != 5 {
		t.Errorf("expected 5 steps per frame, got %d", sc.Display.StepsPerFrame)
	}
}

func TestLoadScenarioFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pair.yaml")
	data := []byte("name: pair\ndt: 1\nbodies:\n  - {id: a, mass: 1}\n  - {id: b, mass: 1, position: [10, 0]}\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := loadScenario(scenarioCmd(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Name != "pair" || len(sc.Bodies) != 2 {
		t.Errorf("unexpected scenario: %+v", sc)
	}
}

func TestLoadScenarioRejects(t *testing.T) {
	if _, err := loadScenario(scenarioCmd(), "no-such-preset"); err == nil {
		t.Error("expected error for unknown scenario")
	}

	cmd := scenarioCmd()
	if err := cmd.Flags().Parse([]string{"--dt", "0"}); err != nil {
		t.Fatal(err)
	}
	_, err := loadScenario(cmd, "orbit")
	if !errors.Is(err, physics.ErrNonPositiveTimeStep) {
		t.Errorf("expected ErrNonPositiveTimeStep, got %v", err)
	}
}

func TestBodyIndex(t *testing.T) {
	bodies := []physics.Body{{ID: "sun"}, {ID: "earth"}, {ID: "moon"}}

	tests := []struct {
		id       string
		expected int
	}{
		{"", 1},
		{"sun", 0},
		{"moon", 2},
	}
	for _, tt := range tests {
		got, err := bodyIndex(bodies, tt.id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.expected {
			t.Errorf("id %q: expected %d, got %d", tt.id, tt.expected, got)
		}
	}

	if got, _ := bodyIndex(bodies[:1], ""); got != 0 {
		t.Errorf("single body should default to index 0, got %d", got)
	}
	if _, err := bodyIndex(bodies, "pluto"); err == nil {
		t.Error("expected error for missing body")
	}
}

func TestKeplerPeriod(t *testing.T) {
	m, r := 1e7, 100.0
	v := physics.CircularSpeed(m, r)
	a := physics.Body{Mass: m}
	b := physics.Body{Mass: 1e-9, Pos: r2.Vec{X: r}, Vel: r2.Vec{Y: v}}

	period, ok := keplerPeriod(a, b)
	if !ok {
		t.Fatal("expected a bound orbit")
	}
	expected := 2 * math.Pi * r / v
	if math.Abs(period-expected)/expected > 1e-6 {
		t.Errorf("expected period %g, got %g", expected, period)
	}

	b.Vel = r2.Vec{Y: 2 * v}
	if _, ok := keplerPeriod(a, b); ok {
		t.Error("expected an unbound orbit at twice circular speed")
	}
}

func TestRingBodies(t *testing.T) {
	bodies := ringBodies(8)
	for i, b := range bodies {
		if err := b.Validate(); err != nil {
			t.Errorf("body %d invalid: %v", i, err)
		}
		if d := r2.Norm(b.Pos); math.Abs(d-1000) > 1e-9 {
			t.Errorf("body %d at radius %g", i, d)
		}
	}
}
