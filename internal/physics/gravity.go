package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// G is the gravitational constant in m³/(kg·s²).
const G = 6.67408e-11

// ForceModel computes the force that b exerts on a. a and b must be
// distinct bodies; callers exclude self-interaction.
type ForceModel interface {
	Force(a, b *Body) (r2.Vec, error)
}

// Gravity is Newtonian point-mass gravity.
type Gravity struct{}

// Force returns the attraction of a toward b with magnitude G·ma·mb/d².
// A zero separation, or one so small that the magnitude is not
// representable, yields a *CollisionError.
func (Gravity) Force(a, b *Body) (r2.Vec, error) {
	delta := r2.Sub(b.Pos, a.Pos)
	d := math.Hypot(delta.X, delta.Y)
	if d == 0 {
		return r2.Vec{}, &CollisionError{A: a.ID, B: b.ID, At: a.Pos}
	}

	f := G * a.Mass * b.Mass / (d * d)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return r2.Vec{}, &CollisionError{A: a.ID, B: b.ID, At: a.Pos}
	}

	theta := math.Atan2(delta.Y, delta.X)
	return r2.Vec{X: f * math.Cos(theta), Y: f * math.Sin(theta)}, nil
}
