package integrators

import (
	"math"

	"github.com/san-kum/orbitsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// SemiImplicitEuler advances bodies by one fixed step: velocities first,
// from forces evaluated at the start of the step, then positions from the
// updated velocities.
type SemiImplicitEuler struct {
	Model physics.ForceModel
	pool  *ForcePool
}

func NewSemiImplicitEuler(model physics.ForceModel) *SemiImplicitEuler {
	if model == nil {
		model = physics.Gravity{}
	}
	return &SemiImplicitEuler{Model: model, pool: NewForcePool()}
}

// NetForces writes the net force on every body into dst, which must have
// the same length as bodies. Bodies are only read.
func (e *SemiImplicitEuler) NetForces(bodies []physics.Body, dst []r2.Vec) error {
	for i := range bodies {
		var net r2.Vec
		for j := range bodies {
			if i == j {
				continue
			}
			f, err := e.Model.Force(&bodies[i], &bodies[j])
			if err != nil {
				return err
			}
			net = r2.Add(net, f)
		}
		dst[i] = net
	}
	return nil
}

// Step advances every body by dt seconds. If any pair collides no body is
// modified.
func (e *SemiImplicitEuler) Step(bodies []physics.Body, dt float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return &physics.ConstructionError{Value: dt, Err: physics.ErrNonPositiveTimeStep}
	}
	if e.pool == nil {
		e.pool = NewForcePool()
	}

	forces := e.pool.Get(len(bodies))
	defer e.pool.Put(forces)

	if err := e.NetForces(bodies, forces); err != nil {
		return err
	}

	for i := range bodies {
		b := &bodies[i]
		b.Vel = r2.Add(b.Vel, r2.Scale(dt/b.Mass, forces[i]))
		b.Pos = r2.Add(b.Pos, r2.Scale(dt, b.Vel))
	}
	return nil
}
