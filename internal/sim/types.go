package sim

import (
	"fmt"

	"github.com/san-kum/orbitsim/internal/physics"
)

// Stepper advances a body collection by one fixed step. It must either
// apply the whole step or leave the bodies untouched, and must not keep a
// reference to the slice after returning.
type Stepper interface {
	Step(bodies []physics.Body, dt float64) error
}

// Metric accumulates a scalar over the states of a run.
type Metric interface {
	Name() string
	Observe(bodies []physics.Body, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every committed tick.
type Observer interface {
	OnTick(tick int, t float64, bodies []physics.Body)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(tick int, t float64, bodies []physics.Body)

func (f ObserverFunc) OnTick(tick int, t float64, bodies []physics.Body) { f(tick, t, bodies) }

// Snapshot is a saved simulation state that can be restored later.
type Snapshot struct {
	Tick   int
	Bodies []physics.Body
}

type Result struct {
	Ticks   int
	Time    float64
	Final   []physics.Body
	Metrics map[string]float64
}

// TickError wraps a failure of one tick with the tick it happened in.
type TickError struct {
	Tick int
	Time float64
	Err  error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d (t=%gs): %v", e.Tick, e.Time, e.Err)
}

func (e *TickError) Unwrap() error {
	return e.Err
}
