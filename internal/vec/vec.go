// Package vec provides the 2-D vector used for positions, velocities,
// accelerations and forces.
//
// Value methods (Add, Sub, Scale, Normalize) never modify their operands.
// The Mutable* methods modify the receiver and return it so hot per-frame
// code can chain updates without allocating:
//
//	b.Pos.MutableAdd(b.Vel.Scale(dt)).MutableAdd(b.Acc.Scale(0.5 * dt * dt))
package vec

import (
	"fmt"
	"math"
)

type Vec2 struct {
	X, Y float64
}

var Zero = Vec2{}

func New(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Unit returns the unit x-vector rotated by angle radians.
func Unit(angle float64) Vec2 {
	v := Vec2{X: 1}
	return *v.MutableRotate(angle)
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", v.X, v.Y)
}

func (v Vec2) Equals(o Vec2) bool { return v.X == o.X && v.Y == o.Y }

func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func (v Vec2) Length() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

// Angle is the atan2 heading of v. The zero vector has angle 0.
func (v Vec2) Angle() float64 {
	if v.IsZero() {
		return 0
	}
	return math.Atan2(v.Y, v.X)
}

// Normalize returns the unit vector in the direction of v, or the zero
// vector when v is zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Zero
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{X: v.X * f, Y: v.Y * f} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }

func (v Vec2) DistanceTo(o Vec2) float64 { return v.Sub(o).Length() }

func (v *Vec2) MutableSet(o Vec2) *Vec2 {
	v.X, v.Y = o.X, o.Y
	return v
}

func (v *Vec2) SetXY(x, y float64) *Vec2 {
	v.X, v.Y = x, y
	return v
}

func (v *Vec2) MutableAdd(o Vec2) *Vec2 {
	v.X += o.X
	v.Y += o.Y
	return v
}

func (v *Vec2) MutableSub(o Vec2) *Vec2 {
	v.X -= o.X
	v.Y -= o.Y
	return v
}

func (v *Vec2) MutableScale(f float64) *Vec2 {
	v.X *= f
	v.Y *= f
	return v
}

// MutableRotate rotates v by angle radians with the standard rotation
// matrix. In y-down screen space a positive angle turns clockwise on
// screen, which is counter-clockwise in the mathematical frame.
func (v *Vec2) MutableRotate(angle float64) *Vec2 {
	cs, sn := math.Cos(angle), math.Sin(angle)
	x := v.X*cs - v.Y*sn
	y := v.X*sn + v.Y*cs
	v.X, v.Y = x, y
	return v
}
