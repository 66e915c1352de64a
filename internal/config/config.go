package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/roundphysics/internal/behavior"
	"github.com/san-kum/roundphysics/internal/integrator"
	"github.com/san-kum/roundphysics/internal/palette"
	"github.com/san-kum/roundphysics/internal/vec"
)

const (
	DefaultWidth      = 800.0
	DefaultHeight     = 600.0
	DefaultBackground = "black"
	DefaultIntegrator = "euler"
	DefaultFPS        = 60.0
	DefaultBodies     = 10
)

var ErrInvalidScene = errors.New("config: invalid scene")

type Scene struct {
	Name       string  `yaml:"name"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Background string  `yaml:"background"`
	Integrator string  `yaml:"integrator"`
	FPS        float64 `yaml:"fps"`
	// Seed 0 picks a time-based seed.
	Seed int64 `yaml:"seed"`

	// Gravity is an acceleration shared by every body.
	Gravity vec.Vec2 `yaml:"gravity"`
	// Wind is the air velocity DragFriction pulls bodies towards.
	Wind         vec.Vec2 `yaml:"wind"`
	DragFriction float64  `yaml:"drag_friction"`
	// EnergyRetained is the default for bounce behaviors that set none.
	// Unset leaves them elastic.
	EnergyRetained *float64 `yaml:"energy_retained,omitempty"`

	RandomBodies    int             `yaml:"random_bodies"`
	RandomBehaviors []behavior.Spec `yaml:"random_behaviors,omitempty"`
	Bodies          []BodyConfig    `yaml:"bodies,omitempty"`
}

type BodyConfig struct {
	Mass      float64         `yaml:"mass"`
	Radius    float64         `yaml:"radius"`
	Color     string          `yaml:"color"`
	X         float64         `yaml:"x"`
	Y         float64         `yaml:"y"`
	VX        float64         `yaml:"vx,omitempty"`
	VY        float64         `yaml:"vy,omitempty"`
	Behaviors []behavior.Spec `yaml:"behaviors,omitempty"`
}

func DefaultConfig() *Scene {
	return &Scene{
		Name:         "default",
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Background:   DefaultBackground,
		Integrator:   DefaultIntegrator,
		FPS:          DefaultFPS,
		RandomBodies: DefaultBodies,
		RandomBehaviors: []behavior.Spec{
			{Kind: behavior.KindWander, Insanity: 0.5, Speed: 50},
			{Kind: behavior.KindEdgeBounce},
		},
	}
}

func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidScene, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Scene) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy so presets can be tweaked by callers.
func (c *Scene) Clone() *Scene {
	out := *c
	if c.EnergyRetained != nil {
		out.EnergyRetained = behavior.Retain(*c.EnergyRetained)
	}
	out.RandomBehaviors = cloneSpecs(c.RandomBehaviors)
	out.Bodies = make([]BodyConfig, len(c.Bodies))
	for i, b := range c.Bodies {
		b.Behaviors = cloneSpecs(b.Behaviors)
		out.Bodies[i] = b
	}
	return &out
}

func cloneSpecs(specs []behavior.Spec) []behavior.Spec {
	if specs == nil {
		return nil
	}
	out := make([]behavior.Spec, len(specs))
	for i, s := range specs {
		if s.Retained != nil {
			s.Retained = behavior.Retain(*s.Retained)
		}
		out[i] = s
	}
	return out
}

func (c *Scene) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidScene, fmt.Sprintf(format, args...))
	}

	if !(c.Width > 0) || !(c.Height > 0) {
		return invalid("viewport must be positive, got %vx%v", c.Width, c.Height)
	}
	if !(c.FPS > 0) {
		return invalid("fps must be positive, got %v", c.FPS)
	}
	if _, err := integrator.NewRegistry().Get(c.Integrator); err != nil {
		return invalid("%v", err)
	}
	if c.Background != "" && !palette.Valid(c.Background) {
		return invalid("unknown background color %q", c.Background)
	}
	if c.DragFriction < 0 {
		return invalid("drag friction must not be negative, got %v", c.DragFriction)
	}
	if r := c.EnergyRetained; r != nil && !(*r >= 0 && *r <= 1) {
		return invalid("energy retained must be within [0, 1], got %v", *r)
	}
	if c.RandomBodies < 0 {
		return invalid("random bodies must not be negative, got %d", c.RandomBodies)
	}
	if err := validateSpecs(c.RandomBehaviors); err != nil {
		return invalid("random behaviors: %v", err)
	}

	for i, b := range c.Bodies {
		if !(b.Mass > 0) {
			return invalid("body %d: mass must be positive, got %v", i, b.Mass)
		}
		if !(b.Radius > 0) {
			return invalid("body %d: radius must be positive, got %v", i, b.Radius)
		}
		if b.Color != "" && !palette.Valid(b.Color) {
			return invalid("body %d: unknown color %q", i, b.Color)
		}
		if err := validateSpecs(b.Behaviors); err != nil {
			return invalid("body %d: %v", i, err)
		}
	}
	return nil
}

func validateSpecs(specs []behavior.Spec) error {
	for _, s := range specs {
		known := false
		for _, k := range behavior.Kinds {
			if s.Kind == k {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("%w: %q", behavior.ErrUnknownKind, s.Kind)
		}
		if r := s.Retained; r != nil && !(*r >= 0 && *r <= 1) {
			return fmt.Errorf("retained must be within [0, 1], got %v", *r)
		}
		if s.Friction < 0 || s.MinRadius < 0 {
			return fmt.Errorf("%s: negative parameter", s.Kind)
		}
	}
	return nil
}

func (c *Scene) Bounds() behavior.FixedBounds {
	return behavior.FixedBounds{W: c.Width, H: c.Height}
}
