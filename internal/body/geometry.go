package body

import (
	"math"

	"github.com/san-kum/roundphysics/internal/vec"
)

func (b *Body) Diameter() float64      { return 2 * b.Radius }
func (b *Body) Circumference() float64 { return math.Pi * b.Diameter() }
func (b *Body) Area() float64          { return math.Pi * b.Radius * b.Radius }

// Density is mass per unit area.
func (b *Body) Density() float64 { return b.Mass / b.Area() }

func (b *Body) KineticEnergy() float64 {
	v := b.Vel.Length()
	return 0.5 * b.Mass * v * v
}

func (b *Body) Momentum() vec.Vec2 { return b.Vel.Scale(b.Mass) }

// Contains reports whether point lies inside or on the body's circle.
func (b *Body) Contains(point vec.Vec2) bool {
	return b.Pos.DistanceTo(point) <= b.Radius
}

// Overlaps reports whether two bodies intersect. Nothing resolves the
// overlap; it is exposed for inspection only.
func (b *Body) Overlaps(o *Body) bool {
	return b.Pos.DistanceTo(o.Pos) < b.Radius+o.Radius
}

// DragForce is the force the surrounding medium moving at wind exerts on
// the body: quadratic in the relative velocity and scaled by density and
// half the circumference.
func (b *Body) DragForce(wind vec.Vec2, friction float64) vec.Vec2 {
	diff := wind.Sub(b.Vel)
	return diff.Scale(diff.Length() * friction * b.Density() * b.Circumference() / 2)
}

// State is a value copy of a body's kinematic state.
type State struct {
	Mass   float64
	Radius float64
	Color  string
	Pos    vec.Vec2
	Vel    vec.Vec2
}

func (b *Body) Snapshot() State {
	return State{Mass: b.Mass, Radius: b.Radius, Color: b.Color, Pos: b.Pos, Vel: b.Vel}
}
