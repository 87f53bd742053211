package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Body is a point mass. Mass is in kilograms, Pos in meters, Vel in meters
// per second. Radius is only used for drawing.
type Body struct {
	ID     string
	Mass   float64
	Pos    r2.Vec
	Vel    r2.Vec
	Radius float64
}

// NewBody returns a validated body.
func NewBody(id string, mass float64, pos, vel r2.Vec, radius float64) (Body, error) {
	b := Body{ID: id, Mass: mass, Pos: pos, Vel: vel, Radius: radius}
	if err := b.Validate(); err != nil {
		return Body{}, err
	}
	return b, nil
}

// Validate checks the construction invariants: positive finite mass,
// non-negative radius and finite kinematic state.
func (b Body) Validate() error {
	if !(b.Mass > 0) {
		return &ConstructionError{Body: b.ID, Value: b.Mass, Err: ErrNonPositiveMass}
	}
	if math.IsInf(b.Mass, 0) {
		return &ConstructionError{Body: b.ID, Value: b.Mass, Err: ErrNonFinite}
	}
	if b.Radius < 0 {
		return &ConstructionError{Body: b.ID, Value: b.Radius, Err: ErrNegativeRadius}
	}
	for _, v := range []float64{b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y, b.Radius} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ConstructionError{Body: b.ID, Value: v, Err: ErrNonFinite}
		}
	}
	return nil
}

// Speed returns the magnitude of the velocity.
func (b Body) Speed() float64 {
	return r2.Norm(b.Vel)
}

// CircularSpeed is the speed of a circular orbit of radius r around a
// central mass m: sqrt(G m / r).
func CircularSpeed(m, r float64) float64 {
	return math.Sqrt(G * m / r)
}

// Clone copies a body slice.
func Clone(bodies []Body) []Body {
	c := make([]Body, len(bodies))
	copy(c, bodies)
	return c
}
