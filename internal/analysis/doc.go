// Package analysis extracts orbital properties from simulated series.
//
//   - [PowerSpectrum]: one-sided power spectrum of a sampled coordinate
//   - [DominantPeriod]: period of the strongest non-constant component
//   - [LyapunovExponent]: divergence rate of two nearby configurations
//
// # Orbital Period
//
// Sample a coordinate once per tick and pass the tick length:
//
//	period, err := analysis.DominantPeriod(xs, dt)
//
// A bound two-body orbit gives its orbital period; an unbound or
// colliding system gives noise.
package analysis
