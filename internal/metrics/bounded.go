package metrics

import (
	"github.com/san-kum/orbitsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// Bounded is the fraction of observed states in which every body stays
// within radius of the centre of mass. Escaping bodies pull it below one.
type Bounded struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewBounded(radius float64) *Bounded {
	return &Bounded{name: "bounded", radius: radius}
}

func (b *Bounded) Name() string { return b.name }

func (b *Bounded) Observe(bodies []physics.Body, t float64) {
	b.samples++
	com := CentreOfMass(bodies)
	for _, body := range bodies {
		if r2.Norm(r2.Sub(body.Pos, com)) > b.radius {
			b.violations++
			break
		}
	}
}

func (b *Bounded) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Bounded) Reset() {
	b.violations = 0
	b.samples = 0
}

func CentreOfMass(bodies []physics.Body) r2.Vec {
	var sum r2.Vec
	total := 0.0
	for _, body := range bodies {
		sum = r2.Add(sum, r2.Scale(body.Mass, body.Pos))
		total += body.Mass
	}
	if total == 0 {
		return r2.Vec{}
	}
	return r2.Scale(1/total, sum)
}
