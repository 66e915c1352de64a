// Package body defines the simulated circular mass point and the Behavior
// contract that force generators implement.
package body

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/san-kum/roundphysics/internal/vec"
)

// Behavior pushes forces onto a body once per frame.
type Behavior interface {
	Apply(b *Body, dt float64)
	Name() string
}

// Body is a circle with mass moving in screen space.
//
// Acc accumulates the forces applied since the last integration step and is
// cleared by the integrator. PosPrev and AccPrev are only read by the
// time-corrected Verlet integrator; Vel is authoritative for Improved Euler
// and an estimate under Verlet.
type Body struct {
	Mass   float64
	Radius float64
	Color  string

	Pos     vec.Vec2
	PosPrev vec.Vec2
	Vel     vec.Vec2
	Acc     vec.Vec2
	AccPrev vec.Vec2

	behaviors []Behavior
}

func New(mass, radius float64, color string, x, y float64) (*Body, error) {
	if !(mass > 0) || math.IsInf(mass, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidMass, mass)
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRadius, radius)
	}
	pos := vec.New(x, y)
	if !pos.IsValid() {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidPosition, pos)
	}
	return &Body{
		Mass:    mass,
		Radius:  radius,
		Color:   color,
		Pos:     pos,
		PosPrev: pos,
	}, nil
}

func (b *Body) String() string {
	names := make([]string, len(b.behaviors))
	for i, bh := range b.behaviors {
		names[i] = bh.Name()
	}
	return fmt.Sprintf("body{mass=%.3f radius=%.3f color=%s pos=%v vel=%v behaviors=[%s]}",
		b.Mass, b.Radius, b.Color, b.Pos, b.Vel, strings.Join(names, ","))
}

// Equals reports structural equivalence: same mass, radius and colour.
// Kinematic state and identity are ignored.
func (b *Body) Equals(o *Body) bool {
	if o == nil {
		return false
	}
	return b.Mass == o.Mass && b.Radius == o.Radius && b.Color == o.Color
}

// ApplyForce accumulates F/m into the acceleration.
func (b *Body) ApplyForce(force vec.Vec2) *Body {
	b.Acc.MutableAdd(force.Scale(1 / b.Mass))
	return b
}

// ApplyImpulse changes velocity directly by J/m.
func (b *Body) ApplyImpulse(impulse vec.Vec2) *Body {
	b.Vel.MutableAdd(impulse.Scale(1 / b.Mass))
	return b
}

func (b *Body) AddBehavior(bh Behavior) *Body {
	b.behaviors = append(b.behaviors, bh)
	return b
}

// RemoveBehavior removes the first attached behavior structurally equal to
// bh: same concrete type and same Name. Name is expected to encode the
// behavior's parameters.
func (b *Body) RemoveBehavior(bh Behavior) *Body {
	if bh == nil {
		return b
	}
	for i, cur := range b.behaviors {
		if sameBehavior(cur, bh) {
			b.behaviors = append(b.behaviors[:i], b.behaviors[i+1:]...)
			break
		}
	}
	return b
}

func (b *Body) Behaviors() []Behavior {
	out := make([]Behavior, len(b.behaviors))
	copy(out, b.behaviors)
	return out
}

// ApplyBehaviors runs every attached behavior in insertion order.
func (b *Body) ApplyBehaviors(dt float64) *Body {
	for _, bh := range b.behaviors {
		bh.Apply(b, dt)
	}
	return b
}

func sameBehavior(a, b Behavior) bool {
	if a == nil || b == nil {
		return false
	}
	return reflect.TypeOf(a) == reflect.TypeOf(b) && a.Name() == b.Name()
}
