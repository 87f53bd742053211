package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

func KineticEnergy(bodies []Body) float64 {
	ke := 0.0
	for _, b := range bodies {
		ke += 0.5 * b.Mass * r2.Dot(b.Vel, b.Vel)
	}
	return ke
}

// PotentialEnergy sums -G·mi·mj/r over all pairs. Coincident pairs are
// skipped; a step from such a state fails with a collision anyway.
func PotentialEnergy(bodies []Body) float64 {
	pe := 0.0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			r := r2.Norm(r2.Sub(bodies[j].Pos, bodies[i].Pos))
			if r == 0 {
				continue
			}
			pe -= G * bodies[i].Mass * bodies[j].Mass / r
		}
	}
	return pe
}

func TotalEnergy(bodies []Body) float64 {
	return KineticEnergy(bodies) + PotentialEnergy(bodies)
}

// Momentum returns the total linear momentum in kg·m/s.
func Momentum(bodies []Body) r2.Vec {
	var p r2.Vec
	for _, b := range bodies {
		p = r2.Add(p, r2.Scale(b.Mass, b.Vel))
	}
	return p
}

// AngularMomentum returns the z component of the total angular momentum
// about the origin.
func AngularMomentum(bodies []Body) float64 {
	l := 0.0
	for _, b := range bodies {
		l += b.Mass * r2.Cross(b.Pos, b.Vel)
	}
	return l
}

// Separation returns the distance between two bodies.
func Separation(a, b Body) float64 {
	return math.Hypot(b.Pos.X-a.Pos.X, b.Pos.Y-a.Pos.Y)
}
