// Package physics holds the gravitational core of orbitsim: point-mass
// bodies, the pairwise force model and the conserved quantities used to
// judge integration quality.
//
//   - [Body]: mutable state of one point mass
//   - [ForceModel]: pairwise force between two distinct bodies
//   - [Gravity]: Newtonian gravity with the fixed constant [G]
//
// # Errors
//
// Invalid inputs are rejected with a [*ConstructionError] before any tick
// runs. Two bodies at zero separation make [Gravity.Force] fail with a
// [*CollisionError]; the package never returns NaN or infinite forces.
//
//	f, err := physics.Gravity{}.Force(&a, &b)
//	if errors.Is(err, physics.ErrCollision) {
//	    // stop the run
//	}
package physics
