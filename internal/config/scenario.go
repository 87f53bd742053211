package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/orbitsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt            = 3600.0
	DefaultTicks         = 1000
	DefaultWidth         = 1280
	DefaultHeight        = 720
	DefaultScale         = 1.0
	DefaultFPS           = 60
	DefaultStepsPerFrame = 1
)

// Scenario is a simulation setup as stored in YAML files and presets.
type Scenario struct {
	Name      string       `yaml:"name"`
	Dt        float64      `yaml:"dt"`
	Ticks     int          `yaml:"ticks"`
	AutoOrbit bool         `yaml:"auto_orbit,omitempty"`
	Bodies    []BodyConfig `yaml:"bodies"`
	Display   Display      `yaml:"display"`
}

type BodyConfig struct {
	ID       string     `yaml:"id"`
	Mass     float64    `yaml:"mass"`
	Position [2]float64 `yaml:"position"`
	Velocity [2]float64 `yaml:"velocity"`
	Radius   float64    `yaml:"radius"`
}

// Display holds presentation parameters. The physics core never sees
// them: pixel = world * Scale + Origin.
type Display struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Scale         float64 `yaml:"scale"`
	OriginX       float64 `yaml:"origin_x"`
	OriginY       float64 `yaml:"origin_y"`
	FPS           int     `yaml:"fps"`
	StepsPerFrame int     `yaml:"steps_per_frame"`
}

func DefaultDisplay() Display {
	return Display{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Scale:         DefaultScale,
		OriginX:       DefaultWidth / 2,
		OriginY:       DefaultHeight / 2,
		FPS:           DefaultFPS,
		StepsPerFrame: DefaultStepsPerFrame,
	}
}

func DefaultScenario() *Scenario {
	return &Scenario{
		Name:    "custom",
		Dt:      DefaultDt,
		Ticks:   DefaultTicks,
		Display: DefaultDisplay(),
	}
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := DefaultScenario()
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return sc, nil
}

func Save(path string, sc *Scenario) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects scenarios that cannot be simulated. Body-level checks
// produce the same *physics.ConstructionError as the simulation itself.
func (s *Scenario) Validate() error {
	if !(s.Dt > 0) || math.IsInf(s.Dt, 0) {
		return &physics.ConstructionError{Value: s.Dt, Err: physics.ErrNonPositiveTimeStep}
	}
	if s.Ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d", s.Ticks)
	}
	if len(s.Bodies) == 0 {
		return errors.New("scenario has no bodies")
	}
	if s.Display.Scale <= 0 {
		return fmt.Errorf("display scale must be positive, got %g", s.Display.Scale)
	}
	if s.Display.FPS <= 0 {
		return fmt.Errorf("display fps must be positive, got %d", s.Display.FPS)
	}
	if s.Display.StepsPerFrame <= 0 {
		return fmt.Errorf("display steps_per_frame must be positive, got %d", s.Display.StepsPerFrame)
	}
	_, err := s.Build()
	return err
}

// Build turns the body configs into validated physics bodies, applying
// auto_orbit when set.
func (s *Scenario) Build() ([]physics.Body, error) {
	cfgs := make([]BodyConfig, len(s.Bodies))
	copy(cfgs, s.Bodies)
	if s.AutoOrbit {
		SetOrbitalVelocities(cfgs)
	}

	bodies := make([]physics.Body, 0, len(cfgs))
	for _, c := range cfgs {
		b, err := physics.NewBody(c.ID,
			c.Mass,
			r2.Vec{X: c.Position[0], Y: c.Position[1]},
			r2.Vec{X: c.Velocity[0], Y: c.Velocity[1]},
			c.Radius,
		)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// SetOrbitalVelocities gives every body at rest, other than the first,
// the circular speed around the first body, perpendicular to the line
// joining them. Bodies that already move or sit on the central body are
// left alone.
func SetOrbitalVelocities(bodies []BodyConfig) {
	if len(bodies) == 0 {
		return
	}
	central := bodies[0]
	for i := 1; i < len(bodies); i++ {
		if bodies[i].Velocity != [2]float64{} {
			continue
		}
		dx := bodies[i].Position[0] - central.Position[0]
		dy := bodies[i].Position[1] - central.Position[1]
		r := math.Hypot(dx, dy)
		if r == 0 || !(central.Mass > 0) {
			continue
		}
		v := physics.CircularSpeed(central.Mass, r)
		bodies[i].Velocity = [2]float64{
			central.Velocity[0] - dy/r*v,
			central.Velocity[1] + dx/r*v,
		}
	}
}
