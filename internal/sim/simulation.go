package sim

import (
	"context"
	"math"
	"strconv"

	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/physics"
)

type Simulation struct {
	bodies    []physics.Body
	dt        float64
	tick      int
	stepper   Stepper
	metrics   []Metric
	observers []Observer
}

// New validates the bodies and the time step and returns a simulation at
// tick zero. Bodies without an ID are named after their index. A nil
// stepper selects semi-implicit Euler with Newtonian gravity.
func New(bodies []physics.Body, dt float64, stepper Stepper) (*Simulation, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, &physics.ConstructionError{Value: dt, Err: physics.ErrNonPositiveTimeStep}
	}

	owned := physics.Clone(bodies)
	seen := make(map[string]bool, len(owned))
	for i := range owned {
		if owned[i].ID == "" {
			owned[i].ID = strconv.Itoa(i)
		}
		if err := owned[i].Validate(); err != nil {
			return nil, err
		}
		if seen[owned[i].ID] {
			return nil, &physics.ConstructionError{Body: owned[i].ID, Value: float64(i), Err: physics.ErrDuplicateID}
		}
		seen[owned[i].ID] = true
	}

	if stepper == nil {
		stepper = integrators.NewSemiImplicitEuler(physics.Gravity{})
	}

	return &Simulation{
		bodies:    owned,
		dt:        dt,
		stepper:   stepper,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}, nil
}

func (s *Simulation) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulation) Dt() float64   { return s.dt }
func (s *Simulation) Tick() int     { return s.tick }
func (s *Simulation) Len() int      { return len(s.bodies) }
func (s *Simulation) Time() float64 { return float64(s.tick) * s.dt }

// Bodies returns a copy of the current body collection.
func (s *Simulation) Bodies() []physics.Body {
	return physics.Clone(s.bodies)
}

// Step runs exactly one tick and returns a copy of the updated bodies. On
// failure the state is unchanged and the error is a *TickError.
func (s *Simulation) Step() ([]physics.Body, error) {
	if err := s.stepper.Step(s.bodies, s.dt); err != nil {
		return nil, &TickError{Tick: s.tick, Time: s.Time(), Err: err}
	}
	s.tick++

	t, out := s.Time(), s.Bodies()
	for _, m := range s.metrics {
		m.Observe(out, t)
	}
	for _, o := range s.observers {
		o.OnTick(s.tick, t, out)
	}

	return out, nil
}

func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{Tick: s.tick, Bodies: s.Bodies()}
}

// Restore rewinds to a snapshot taken from a simulation with the same
// bodies. Metrics are not rewound.
func (s *Simulation) Restore(snap Snapshot) {
	s.tick = snap.Tick
	s.bodies = physics.Clone(snap.Bodies)
}

// Run resets the metrics, observes the current state and then steps up to
// ticks times. It stops at the first failing tick, returning the partial
// result together with the error. The context is checked between ticks.
func (s *Simulation) Run(ctx context.Context, ticks int) (*Result, error) {
	result := &Result{Metrics: make(map[string]float64)}

	for _, m := range s.metrics {
		m.Reset()
		m.Observe(s.bodies, s.Time())
	}

	var runErr error
	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		if _, err := s.Step(); err != nil {
			runErr = err
			break
		}
		result.Ticks++
	}

	result.Time = s.Time()
	result.Final = s.Bodies()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, runErr
}
