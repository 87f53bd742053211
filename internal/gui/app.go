// Package gui shows a running simulation in a raylib window.
package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/viz"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColBanner  = rl.NewColor(170, 0, 0, 220)

	bodyColors = []rl.Color{
		rl.NewColor(255, 210, 80, 255),
		rl.NewColor(90, 170, 255, 255),
		rl.NewColor(255, 110, 110, 255),
		rl.NewColor(120, 230, 140, 255),
		rl.NewColor(210, 140, 255, 255),
	}
)

const (
	maxTrail    = 400
	maxTelem    = 200
	minRadiusPx = 2
	zoomStep    = 1.1
)

type Options struct {
	Name          string
	Width         int
	Height        int
	FPS           int
	StepsPerFrame int
	MaxTicks      int
}

type App struct {
	Sim           *sim.Simulation
	Initial       sim.Snapshot
	Proj          Projection
	InitialProj   Projection
	Name          string
	Width, Height int32
	StepsPerFrame int
	MaxTicks      int
	Running       bool
	ShowTrails    bool
	Err           error
	Trails        [][]r2.Vec
	Telemetry     []float64
}

// Projection is the world-to-pixel mapping shared with the terminal view.
type Projection = viz.Projection

func NewApp(s *sim.Simulation, proj Projection, opts Options) *App {
	if opts.StepsPerFrame <= 0 {
		opts.StepsPerFrame = 1
	}
	a := &App{
		Sim:           s,
		Initial:       s.Snapshot(),
		Proj:          proj,
		InitialProj:   proj,
		Name:          opts.Name,
		Width:         int32(opts.Width),
		Height:        int32(opts.Height),
		StepsPerFrame: opts.StepsPerFrame,
		MaxTicks:      opts.MaxTicks,
		Running:       true,
		ShowTrails:    true,
		Trails:        make([][]r2.Vec, s.Len()),
		Telemetry:     make([]float64, 0, maxTelem),
	}
	a.record(s.Bodies())
	return a
}

// Run opens a window and drives the simulation until the window is
// closed. It returns the collision that stopped the simulation, if any.
func Run(s *sim.Simulation, proj Projection, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}

	title := "orbitsim"
	if opts.Name != "" {
		title += " :: " + opts.Name
	}
	rl.InitWindow(int32(opts.Width), int32(opts.Height), title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)

	app := NewApp(s, proj, opts)
	app.RunLoop()
	return app.Err
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if quit := a.Update(); quit {
			return
		}
		a.Draw()
	}
}

// Update handles input and advances one frame. It reports whether the
// user asked to quit.
func (a *App) Update() bool {
	switch {
	case rl.IsKeyPressed(rl.KeyQ), rl.IsKeyPressed(rl.KeyEscape):
		return true
	case rl.IsKeyPressed(rl.KeySpace):
		if a.Err == nil {
			a.Running = !a.Running
		}
	case rl.IsKeyPressed(rl.KeyR):
		a.Reset()
	case rl.IsKeyPressed(rl.KeyT):
		a.ShowTrails = !a.ShowTrails
	case rl.IsKeyPressed(rl.KeyEqual), rl.IsKeyPressed(rl.KeyKpAdd):
		a.Zoom(zoomStep)
	case rl.IsKeyPressed(rl.KeyMinus), rl.IsKeyPressed(rl.KeyKpSubtract):
		a.Zoom(1 / zoomStep)
	case rl.IsKeyPressed(rl.KeyZero):
		a.Proj = a.InitialProj
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.Zoom(math.Pow(zoomStep, float64(wheel)))
	}

	if a.Running {
		a.Frame()
	}
	return false
}

// Frame advances StepsPerFrame ticks, stopping at a collision or at
// MaxTicks.
func (a *App) Frame() {
	for i := 0; i < a.StepsPerFrame; i++ {
		if a.Err != nil || (a.MaxTicks > 0 && a.Sim.Tick() >= a.MaxTicks) {
			a.Running = false
			return
		}
		bodies, err := a.Sim.Step()
		if err != nil {
			a.Err = err
			a.Running = false
			return
		}
		a.record(bodies)
	}
}

func (a *App) record(bodies []physics.Body) {
	for i, b := range bodies {
		a.Trails[i] = append(a.Trails[i], b.Pos)
		if len(a.Trails[i]) > maxTrail {
			a.Trails[i] = a.Trails[i][1:]
		}
	}
	a.Telemetry = append(a.Telemetry, physics.TotalEnergy(bodies))
	if len(a.Telemetry) > maxTelem {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) Reset() {
	a.Sim.Restore(a.Initial)
	a.Err = nil
	a.Running = true
	for i := range a.Trails {
		a.Trails[i] = a.Trails[i][:0]
	}
	a.Telemetry = a.Telemetry[:0]
	a.record(a.Sim.Bodies())
}

func (a *App) Zoom(f float64) {
	a.Proj = a.Proj.Zoom(f, float64(a.Width)/2, float64(a.Height)/2)
}
