package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/physics"
	"gonum.org/v1/gonum/stat"
)

// Separation follows the distance between two bodies. Value is the
// largest relative deviation from the first observed distance, which for
// a circular orbit is the radius drift.
type Separation struct {
	name      string
	a, b      string
	distances []float64
	times     []float64
}

func NewSeparation(a, b string) *Separation {
	return &Separation{name: "separation_drift", a: a, b: b}
}

func (s *Separation) Name() string { return s.name }

func (s *Separation) Observe(bodies []physics.Body, t float64) {
	ia, ib := -1, -1
	for i := range bodies {
		switch bodies[i].ID {
		case s.a:
			ia = i
		case s.b:
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return
	}
	s.distances = append(s.distances, physics.Separation(bodies[ia], bodies[ib]))
	s.times = append(s.times, t)
}

func (s *Separation) Value() float64 {
	if len(s.distances) == 0 || s.distances[0] == 0 {
		return 0
	}
	r0 := s.distances[0]
	drift := 0.0
	for _, d := range s.distances {
		drift = math.Max(drift, math.Abs(d-r0)/r0)
	}
	return drift
}

func (s *Separation) Reset() {
	s.distances = s.distances[:0]
	s.times = s.times[:0]
}

// Series returns the recorded distances and their times.
func (s *Separation) Series() (distances, times []float64) {
	return s.distances, s.times
}

// Summary returns the mean and standard deviation of the distance.
func (s *Separation) Summary() (mean, stddev float64) {
	if len(s.distances) < 2 {
		if len(s.distances) == 1 {
			return s.distances[0], 0
		}
		return 0, 0
	}
	return stat.MeanStdDev(s.distances, nil)
}
