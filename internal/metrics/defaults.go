package metrics

import (
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
)

// Default returns the metrics collected for every run. The separation of
// the first two bodies is tracked when there are at least two.
func Default(bodies []physics.Body) []sim.Metric {
	ms := []sim.Metric{
		NewEnergyDrift(),
		NewMomentumDrift(),
		NewAngularMomentumDrift(),
	}
	if len(bodies) >= 2 {
		ms = append(ms, NewSeparation(bodies[0].ID, bodies[1].ID))
		ms = append(ms, NewBounded(10*physics.Separation(bodies[0], bodies[1])))
	}
	return ms
}
