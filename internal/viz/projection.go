package viz

import (
	"math"

	"github.com/san-kum/orbitsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// Projection maps world meters to screen pixels:
// pixel = world * Scale + Origin. The y axis is not flipped.
type Projection struct {
	Scale   float64
	OriginX float64
	OriginY float64
}

func (p Projection) ToScreen(v r2.Vec) (float64, float64) {
	return v.X*p.Scale + p.OriginX, v.Y*p.Scale + p.OriginY
}

// ToWorld inverts ToScreen.
func (p Projection) ToWorld(x, y float64) r2.Vec {
	return r2.Vec{X: (x - p.OriginX) / p.Scale, Y: (y - p.OriginY) / p.Scale}
}

// Zoom scales by f keeping the screen point (cx, cy) fixed.
func (p Projection) Zoom(f, cx, cy float64) Projection {
	return Projection{
		Scale:   p.Scale * f,
		OriginX: (p.OriginX-cx)*f + cx,
		OriginY: (p.OriginY-cy)*f + cy,
	}
}

// Resize adapts a projection made for a w0 x h0 screen to a w x h one,
// keeping the aspect ratio and centring the old screen in the new one.
func (p Projection) Resize(w0, h0, w, h float64) Projection {
	k := math.Min(w/w0, h/h0)
	return Projection{
		Scale:   p.Scale * k,
		OriginX: p.OriginX*k + (w-w0*k)/2,
		OriginY: p.OriginY*k + (h-h0*k)/2,
	}
}

// FitProjection centres the bodies on a w x h screen, leaving margin
// (a fraction of the smaller side) free around them.
func FitProjection(bodies []physics.Body, w, h, margin float64) Projection {
	if len(bodies) == 0 {
		return Projection{Scale: 1, OriginX: w / 2, OriginY: h / 2}
	}

	minX, maxX := bodies[0].Pos.X, bodies[0].Pos.X
	minY, maxY := bodies[0].Pos.Y, bodies[0].Pos.Y
	for _, b := range bodies[1:] {
		minX = math.Min(minX, b.Pos.X)
		maxX = math.Max(maxX, b.Pos.X)
		minY = math.Min(minY, b.Pos.Y)
		maxY = math.Max(maxY, b.Pos.Y)
	}

	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	extent := math.Max(maxX-minX, maxY-minY) / 2

	scale := 1.0
	if extent > 0 {
		scale = math.Min(w, h) / 2 * (1 - margin) / extent
	}
	return Projection{
		Scale:   scale,
		OriginX: w/2 - cx*scale,
		OriginY: h/2 - cy*scale,
	}
}
