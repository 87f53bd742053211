// Package sim drives a gravitational simulation one fixed tick at a time.
//
// A [Simulation] owns the bodies and the time step. Presentation code calls
// [Simulation.Step] at whatever cadence it likes and draws the returned
// bodies; the package never sleeps, renders or logs.
//
//	s, err := sim.New(bodies, 3600, nil)
//	for {
//	    bodies, err := s.Step()
//	    if err != nil {
//	        // a *physics.CollisionError is wrapped in a *TickError
//	        break
//	    }
//	    draw(bodies)
//	}
//
// # Thread Safety
//
// A Simulation is NOT safe for concurrent use. Independent simulations
// share no state and may run in parallel, see [Ensemble].
package sim
