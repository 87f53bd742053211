package config

import (
	"math"
	"sort"

	"github.com/san-kum/orbitsim/internal/physics"
)

// AU is the astronomical unit in meters.
const AU = 1.495978707e11

const (
	solarMass   = 1.989e30
	earthMass   = 5.972e24
	jupiterMass = 1.898e27
	jupiterAU   = 5.2
)

var Presets = map[string]*Scenario{
	"orbit": {
		Name: "orbit", Dt: 3600, Ticks: 2000,
		Bodies: []BodyConfig{
			{ID: "1", Mass: 1e7, Position: [2]float64{0, 0}, Radius: 50},
			{ID: "2", Mass: 100, Position: [2]float64{100, 0}, Velocity: [2]float64{0, physics.CircularSpeed(1e7, 100)}, Radius: 10},
		},
		Display: Display{Width: 1280, Height: 720, Scale: 2, OriginX: 640, OriginY: 360, FPS: 60, StepsPerFrame: 1},
	},
	"solar": {
		Name: "solar", Dt: 3600, Ticks: 24 * 365,
		Bodies: []BodyConfig{
			{ID: "sun", Mass: solarMass, Radius: 6.9634e8},
			{ID: "earth", Mass: earthMass, Position: [2]float64{AU, 0}, Velocity: [2]float64{0, 29780}, Radius: 6.371e6},
		},
		Display: Display{Width: 1280, Height: 720, Scale: 300 / AU, OriginX: 640, OriginY: 360, FPS: 60, StepsPerFrame: 24},
	},
	"binary": {
		Name: "binary", Dt: 600, Ticks: 5000,
		Bodies: []BodyConfig{
			{ID: "a", Mass: 1e7, Position: [2]float64{-50, 0}, Velocity: [2]float64{0, -binarySpeed(1e7, 100)}, Radius: 20},
			{ID: "b", Mass: 1e7, Position: [2]float64{50, 0}, Velocity: [2]float64{0, binarySpeed(1e7, 100)}, Radius: 20},
		},
		Display: Display{Width: 1280, Height: 720, Scale: 3, OriginX: 640, OriginY: 360, FPS: 60, StepsPerFrame: 4},
	},
	"trojan": {
		Name: "trojan", Dt: 86400, Ticks: 365 * 24, AutoOrbit: true,
		Bodies: []BodyConfig{
			{ID: "sun", Mass: solarMass, Radius: 6.9634e8},
			{ID: "jupiter", Mass: jupiterMass, Position: [2]float64{jupiterAU * AU, 0}, Radius: 6.9911e7},
			{ID: "achilles", Mass: 1e18, Position: [2]float64{jupiterAU * AU * math.Cos(math.Pi / 3), jupiterAU * AU * math.Sin(math.Pi / 3)}, Radius: 6.5e4},
		},
		Display: Display{Width: 1280, Height: 720, Scale: 60 / AU, OriginX: 640, OriginY: 360, FPS: 60, StepsPerFrame: 10},
	},
}

// binarySpeed is the speed of each of two equal masses m circling their
// barycentre at separation d.
func binarySpeed(m, d float64) float64 {
	return math.Sqrt(physics.G * m / (2 * d))
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Scenario {
	sc, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *sc
	c.Bodies = make([]BodyConfig, len(sc.Bodies))
	copy(c.Bodies, sc.Bodies)
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
