package sim

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
)

// Ensemble runs independent simulations concurrently, one goroutine per
// simulation. Each simulation is still stepped sequentially.
type Ensemble struct {
	sims    []*Simulation
	workers int
}

// NewEnsemble returns an ensemble over sims. workers <= 0 means one
// goroutine per simulation.
func NewEnsemble(sims []*Simulation, workers int) *Ensemble {
	return &Ensemble{sims: sims, workers: workers}
}

// Run advances every simulation by up to ticks ticks. A failing simulation
// does not stop the others; its error is reported at the same index.
func (e *Ensemble) Run(ctx context.Context, ticks int) ([]*Result, []error) {
	return e.run(ctx, func(*Simulation) int { return ticks })
}

// RunDuration advances every simulation by the number of ticks that covers
// duration seconds of simulated time at its own step size, so runs with
// different dt end at comparable times.
func (e *Ensemble) RunDuration(ctx context.Context, duration float64) ([]*Result, []error) {
	return e.run(ctx, func(s *Simulation) int {
		return int(math.Ceil(duration/s.Dt() - 1e-9))
	})
}

func (e *Ensemble) run(ctx context.Context, ticksFor func(*Simulation) int) ([]*Result, []error) {
	results := make([]*Result, len(e.sims))
	errs := make([]error, len(e.sims))

	var g errgroup.Group
	if e.workers > 0 {
		g.SetLimit(e.workers)
	}

	for i, s := range e.sims {
		g.Go(func() error {
			results[i], errs[i] = s.Run(ctx, ticksFor(s))
			return nil
		})
	}
	_ = g.Wait()

	return results, errs
}
