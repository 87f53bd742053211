package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

func orbitPair() []physics.Body {
	return []physics.Body{
		{ID: "1", Mass: 1e7},
		{ID: "2", Mass: 100, Pos: r2.Vec{X: 100}, Vel: r2.Vec{Y: physics.CircularSpeed(1e7, 100)}},
	}
}

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift()
	bodies := orbitPair()

	m.Observe(bodies, 0)
	if m.Value() != 0 {
		t.Errorf("expected zero drift after first sample, got %g", m.Value())
	}

	e0 := physics.TotalEnergy(bodies)
	bodies[1].Vel.Y *= 1.1
	e1 := physics.TotalEnergy(bodies)
	m.Observe(bodies, 1)

	expected := math.Abs(e1-e0) / math.Abs(e0)
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("expected drift %g, got %g", expected, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestMomentumDrift(t *testing.T) {
	m := NewMomentumDrift()
	bodies := orbitPair()

	m.Observe(bodies, 0)
	bodies[0].Vel.X = 2
	m.Observe(bodies, 1)

	if math.Abs(m.Value()-2e7) > 1e-6 {
		t.Errorf("expected drift 2e7, got %g", m.Value())
	}
}

func TestAngularMomentumDrift(t *testing.T) {
	m := NewAngularMomentumDrift()
	bodies := orbitPair()

	m.Observe(bodies, 0)
	bodies[1].Vel.Y *= 2
	m.Observe(bodies, 1)

	if math.Abs(m.Value()-1) > 1e-12 {
		t.Errorf("expected drift 1, got %g", m.Value())
	}
}

func TestSeparation(t *testing.T) {
	m := NewSeparation("1", "2")
	bodies := orbitPair()

	m.Observe(bodies, 0)
	bodies[1].Pos.X = 110
	m.Observe(bodies, 10)
	bodies[1].Pos.X = 95
	m.Observe(bodies, 20)

	if math.Abs(m.Value()-0.1) > 1e-12 {
		t.Errorf("expected drift 0.1, got %g", m.Value())
	}

	mean, std := m.Summary()
	if math.Abs(mean-305.0/3) > 1e-9 {
		t.Errorf("expected mean %g, got %g", 305.0/3, mean)
	}
	if std <= 0 {
		t.Errorf("expected positive stddev, got %g", std)
	}

	d, times := m.Series()
	if len(d) != 3 || len(times) != 3 || times[2] != 20 {
		t.Errorf("unexpected series %v %v", d, times)
	}
}

func TestSeparation_MissingBody(t *testing.T) {
	m := NewSeparation("1", "missing")
	m.Observe(orbitPair(), 0)
	if m.Value() != 0 {
		t.Errorf("expected 0 for missing body, got %g", m.Value())
	}
	if mean, std := m.Summary(); mean != 0 || std != 0 {
		t.Errorf("expected empty summary, got %g %g", mean, std)
	}
}

func TestBounded(t *testing.T) {
	m := NewBounded(500)
	bodies := orbitPair()

	m.Observe(bodies, 0)
	bodies[1].Pos.X = 1e6
	m.Observe(bodies, 1)

	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %g", m.Value())
	}

	m.Reset()
	if m.Value() != 1 {
		t.Errorf("expected 1 after reset, got %g", m.Value())
	}
}

func TestCentreOfMass(t *testing.T) {
	bodies := []physics.Body{
		{Mass: 1, Pos: r2.Vec{X: 0}},
		{Mass: 3, Pos: r2.Vec{X: 4}},
	}
	if com := CentreOfMass(bodies); com != (r2.Vec{X: 3}) {
		t.Errorf("expected (3,0), got %v", com)
	}
}

func TestDefaultMetricsOnOrbit(t *testing.T) {
	s, err := sim.New(orbitPair(), 60, nil)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	for _, m := range Default(s.Bodies()) {
		s.AddMetric(m)
	}

	res, err := s.Run(context.Background(), 2000)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, name := range []string{"energy_drift", "momentum_drift", "angular_momentum_drift", "separation_drift", "bounded"} {
		if _, ok := res.Metrics[name]; !ok {
			t.Errorf("metric %s not found in result", name)
		}
	}

	if res.Metrics["separation_drift"] > 0.01 {
		t.Errorf("separation drift too large: %g", res.Metrics["separation_drift"])
	}
	if res.Metrics["bounded"] != 1 {
		t.Errorf("orbit should stay bounded, got %g", res.Metrics["bounded"])
	}
	if res.Metrics["momentum_drift"] > 1e-9 {
		t.Errorf("momentum should be conserved, drift %g", res.Metrics["momentum_drift"])
	}
}
