package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/orbitsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestPowerSpectrumPeak(t *testing.T) {
	n := 256
	data := make([]float64, n)
	for i := range data {
		data[i] = 5 + math.Sin(2*math.Pi*8*float64(i)/float64(n))
	}

	ps := PowerSpectrum(data)
	if len(ps) != n/2+1 {
		t.Fatalf("expected %d bins, got %d", n/2+1, len(ps))
	}
	if ps[0] > 1e-9 {
		t.Errorf("mean should be removed, got dc %g", ps[0])
	}
	for k := 1; k < len(ps); k++ {
		if k != 8 && ps[k] >= ps[8] {
			t.Errorf("expected peak at 8, bin %d has %g >= %g", k, ps[k], ps[8])
		}
	}
}

func TestDominantPeriod(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		cycles   float64
		interval float64
	}{
		{"power of two", 1024, 10, 1},
		{"odd length", 1000, 10, 60},
		{"hourly samples", 720, 3, 3600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]float64, tt.n)
			for i := range data {
				data[i] = math.Cos(2 * math.Pi * tt.cycles * float64(i) / float64(tt.n))
			}

			period, err := DominantPeriod(data, tt.interval)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			expected := float64(tt.n) * tt.interval / tt.cycles
			if math.Abs(period-expected) > 1e-9*expected {
				t.Errorf("expected period %g, got %g", expected, period)
			}
		})
	}
}

func TestDominantPeriodErrors(t *testing.T) {
	if _, err := DominantPeriod([]float64{1, 2}, 1); !errors.Is(err, ErrShortSeries) {
		t.Errorf("expected ErrShortSeries, got %v", err)
	}
	if _, err := DominantPeriod(make([]float64, 16), 1); err == nil {
		t.Error("expected error for constant series")
	}
	if _, err := DominantPeriod([]float64{1, 2, 3, 4}, 0); err == nil {
		t.Error("expected error for zero interval")
	}
}

func TestLyapunovExponentCircularOrbit(t *testing.T) {
	v := physics.CircularSpeed(1e7, 100)
	bodies := []physics.Body{
		{ID: "1", Mass: 1e7},
		{ID: "2", Mass: 100, Pos: r2.Vec{X: 100}, Vel: r2.Vec{Y: v}},
	}

	lambda, err := LyapunovExponent(bodies, 60, 1000, 1e-6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) {
		t.Fatalf("expected finite exponent, got %g", lambda)
	}
	// a two-body orbit is regular: no sustained exponential growth
	if lambda > 1e-4 {
		t.Errorf("expected near-zero exponent, got %g", lambda)
	}
	if bodies[0].Pos.X != 0 {
		t.Error("input bodies should not be modified")
	}
}

func TestLyapunovExponentCollision(t *testing.T) {
	bodies := []physics.Body{
		{ID: "a", Mass: 1, Pos: r2.Vec{X: 3}},
		{ID: "b", Mass: 1, Pos: r2.Vec{X: 3}},
	}

	_, err := LyapunovExponent(bodies, 1, 5, 0.5)
	if !errors.Is(err, physics.ErrCollision) {
		t.Errorf("expected collision, got %v", err)
	}
}
