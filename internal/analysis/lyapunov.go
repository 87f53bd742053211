package analysis

import (
	"math"

	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// LyapunovExponent estimates the largest Lyapunov exponent, in 1/s, by
// trajectory separation. A copy of the bodies has its first body displaced
// by perturbation meters along x; both are stepped side by side and the
// perturbed copy is pulled back to the original distance after every tick.
// A collision in either copy ends the estimate with that error.
func LyapunovExponent(bodies []physics.Body, dt float64, ticks int, perturbation float64) (float64, error) {
	if len(bodies) == 0 || ticks <= 0 || !(perturbation > 0) {
		return 0, nil
	}

	ref := physics.Clone(bodies)
	pert := physics.Clone(bodies)
	pert[0].Pos.X += perturbation

	d0 := separation(ref, pert)
	stepper := integrators.NewSemiImplicitEuler(physics.Gravity{})

	sumLog := 0.0
	count := 0
	for i := 0; i < ticks; i++ {
		if err := stepper.Step(ref, dt); err != nil {
			return 0, err
		}
		if err := stepper.Step(pert, dt); err != nil {
			return 0, err
		}

		d := separation(ref, pert)
		if d == 0 {
			continue
		}
		sumLog += math.Log(d / d0)
		count++

		// renormalize
		scale := d0 / d
		for j := range pert {
			pert[j].Pos = r2.Add(ref[j].Pos, r2.Scale(scale, r2.Sub(pert[j].Pos, ref[j].Pos)))
			pert[j].Vel = r2.Add(ref[j].Vel, r2.Scale(scale, r2.Sub(pert[j].Vel, ref[j].Vel)))
		}
	}

	if count == 0 {
		return 0, nil
	}
	return sumLog / (float64(count) * dt), nil
}

// separation is the distance between two configurations in position space.
func separation(a, b []physics.Body) float64 {
	sum := 0.0
	for i := range a {
		d := r2.Norm(r2.Sub(b[i].Pos, a[i].Pos))
		sum += d * d
	}
	return math.Sqrt(sum)
}
