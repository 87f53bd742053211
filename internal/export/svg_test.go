package export

import (
	"strconv"
	"strings"
	"testing"

	"github.com/san-kum/orbitsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestOrbitsSVG(t *testing.T) {
	paths := [][]r2.Vec{
		{{X: 0, Y: 0}},
		{{X: 100, Y: 0}, {X: 0, Y: 100}, {X: -100, Y: 0}},
	}
	bodies := []physics.Body{
		{ID: "sun", Pos: r2.Vec{}},
		{ID: "planet", Pos: r2.Vec{X: -100}},
	}

	svg := OrbitsSVG(paths, bodies, 400, 300)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("expected a complete svg document")
	}
	if n := strings.Count(svg, "<path"); n != 1 {
		t.Errorf("expected 1 path, got %d", n)
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 circles, got %d", n)
	}
	if !strings.Contains(svg, "<title>planet</title>") {
		t.Error("expected body labels")
	}
}

func TestOrbitsSVGFitsPoints(t *testing.T) {
	paths := [][]r2.Vec{{{X: -1e11, Y: -5e10}, {X: 1e11, Y: 5e10}}}
	svg := OrbitsSVG(paths, nil, 200, 200)

	d := svg[strings.Index(svg, `d="`)+3:]
	d = d[:strings.Index(d, `"`)]
	for _, tok := range strings.FieldsFunc(d, func(r rune) bool { return r == 'M' || r == 'L' || r == ' ' || r == ',' }) {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			t.Fatalf("bad coordinate %q", tok)
		}
		if v < 0 || v > 200 {
			t.Errorf("coordinate %g outside the image", v)
		}
	}
}

func TestOrbitsSVGSinglePoint(t *testing.T) {
	svg := OrbitsSVG(nil, []physics.Body{{ID: "a", Pos: r2.Vec{X: 5, Y: 5}}}, 100, 100)
	if !strings.Contains(svg, `cx="50.0" cy="50.0"`) {
		t.Errorf("expected a lone body in the centre, got %s", svg)
	}
}
