// Package viz renders a running simulation in the terminal.
//
// The package implements a live view using the Bubble Tea framework:
//
//   - [Model]: steps a [sim.Simulation] once per frame and draws it
//   - [Canvas]: Braille-based dot canvas for bodies and trails
//   - [Projection]: world-to-screen mapping, pixel = world*scale + origin
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	+/-   - Zoom
//	C     - Toggle trails
//	T     - Cycle color themes
//	[]    - Step back/forward one frame
//	?     - Show help overlay
//
// A collision stops stepping and shows the colliding bodies; R resets.
package viz
