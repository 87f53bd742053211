package integrators

import (
	"fmt"
	"math"
	"testing"

	"github.com/san-kum/orbitsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

func ring(n int) []physics.Body {
	bodies := make([]physics.Body, n)
	for i := range bodies {
		angle := 2 * math.Pi * float64(i) / float64(n)
		bodies[i] = physics.Body{
			ID:   fmt.Sprint(i),
			Mass: 1e6,
			Pos:  r2.Vec{X: 1000 * math.Cos(angle), Y: 1000 * math.Sin(angle)},
			Vel:  r2.Vec{X: -math.Sin(angle) * 1e-3, Y: math.Cos(angle) * 1e-3},
		}
	}
	return bodies
}

func BenchmarkSemiImplicitEuler(b *testing.B) {
	for _, n := range []int{2, 10, 100, 500} {
		b.Run(fmt.Sprintf("Bodies-%d", n), func(b *testing.B) {
			integ := NewSemiImplicitEuler(physics.Gravity{})
			bodies := ring(n)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := integ.Step(bodies, 1); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkGravityForce(b *testing.B) {
	bodies := ring(2)
	g := physics.Gravity{}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.Force(&bodies[0], &bodies[1]); err != nil {
			b.Fatal(err)
		}
	}
}
