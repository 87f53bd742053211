// Package export renders simulation results to files.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/viz"
	"gonum.org/v1/gonum/spatial/r2"
)

// maxPathPoints bounds the vertices written per path.
const maxPathPoints = 2000

var palette = []string{"#ffd250", "#5aaaff", "#ff6e6e", "#78e68c", "#d28cff"}

// OrbitsSVG draws each body's path and its final position on a width x
// height image, using one scale for both axes. paths[i] belongs to
// bodies[i].
func OrbitsSVG(paths [][]r2.Vec, bodies []physics.Body, width, height int) string {
	proj := fit(paths, bodies, float64(width), float64(height))

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for i, path := range paths {
		if len(path) < 2 {
			continue
		}
		stride := max(1, len(path)/maxPathPoints)

		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-opacity="0.6" stroke-width="1.5" d="`, palette[i%len(palette)])
		for j := 0; j < len(path); j += stride {
			x, y := proj.ToScreen(path[j])
			if j == 0 {
				fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		x, y := proj.ToScreen(path[len(path)-1])
		fmt.Fprintf(&sb, " L%.1f,%.1f\"/>\n", x, y)
	}

	for i, b := range bodies {
		x, y := proj.ToScreen(b.Pos)
		r := math.Max(3, b.Radius*proj.Scale)
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"><title>%s</title></circle>
`, x, y, r, palette[i%len(palette)], b.ID)
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// fit returns a projection with 10% padding around every point.
func fit(paths [][]r2.Vec, bodies []physics.Body, w, h float64) viz.Projection {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	extend := func(p r2.Vec) {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	for _, path := range paths {
		for _, p := range path {
			extend(p)
		}
	}
	for _, b := range bodies {
		extend(b.Pos)
	}
	if math.IsInf(minX, 0) {
		return viz.Projection{Scale: 1, OriginX: w / 2, OriginY: h / 2}
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	scale := 1.0
	if rangeX > 0 || rangeY > 0 {
		scale = math.Min(w/(rangeX*1.2), h/(rangeY*1.2))
	}

	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	return viz.Projection{Scale: scale, OriginX: w/2 - cx*scale, OriginY: h/2 - cy*scale}
}
