package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/orbitsim/internal/viz"
	"gonum.org/v1/gonum/spatial/r2"
)

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.ShowTrails {
		a.drawTrails()
	}
	a.drawBodies()
	a.DrawHUD()
	if a.Err != nil {
		a.drawCollision()
	}

	rl.EndDrawing()
}

func (a *App) screen(v r2.Vec) rl.Vector2 {
	x, y := a.Proj.ToScreen(v)
	return rl.NewVector2(float32(x), float32(y))
}

func colorFor(i int) rl.Color {
	return bodyColors[i%len(bodyColors)]
}

func (a *App) drawTrails() {
	for i, trail := range a.Trails {
		if len(trail) < 2 {
			continue
		}
		c := colorFor(i)
		c.A = 90
		points := make([]rl.Vector2, len(trail))
		for j, p := range trail {
			points[j] = a.screen(p)
		}
		rl.DrawLineStrip(points, c)
	}
}

func (a *App) drawBodies() {
	for i, b := range a.Sim.Bodies() {
		pos := a.screen(b.Pos)
		r := float32(math.Max(b.Radius*a.Proj.Scale, minRadiusPx))
		rl.DrawCircleV(pos, r, colorFor(i))
		rl.DrawText(b.ID, int32(pos.X+r+4), int32(pos.Y-6), 12, ColText)
	}
}

func (a *App) DrawHUD() {
	rl.DrawText("orbitsim", 30, 30, 24, ColSelect)
	if a.Name != "" {
		rl.DrawText(":: "+a.Name, 150, 34, 16, ColText)
	}

	rl.DrawText(fmt.Sprintf("tick %d   t = %s", a.Sim.Tick(), viz.FormatDuration(a.Sim.Time())), 30, 60, 14, ColText)

	a.DrawTelemetry()

	status, col := "RUNNING", ColSelect
	switch {
	case a.Err != nil:
		status, col = "COLLISION", rl.Red
	case !a.Running:
		status, col = "PAUSED", ColTextDim
	}
	rl.DrawText(status, a.Width-130, 30, 16, col)

	rl.DrawText("[SPACE] PAUSE  [R] RESET  [T] TRAILS  [+/-] ZOOM  [Q] QUIT", a.Width-580, a.Height-40, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, a.Height-40, 14, ColTextDim)
}

func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := int32(30), a.Height-120
	width, height := int32(400), int32(60)

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	rl.DrawText(fmt.Sprintf("E: %.3e J", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}

func (a *App) drawCollision() {
	w, h := a.Width-200, int32(60)
	x, y := int32(100), a.Height/2-h/2
	rl.DrawRectangle(x, y, w, h, ColBanner)
	rl.DrawText(a.Err.Error(), x+16, y+14, 16, ColSelect)
	rl.DrawText("[R] RESET  [Q] QUIT", x+16, y+36, 12, ColSelect)
}
