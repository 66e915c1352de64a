package behavior

import "github.com/san-kum/roundphysics/internal/vec"

// Scalar yields a parameter value each time a behavior is applied.
type Scalar func() float64

// Vector yields a vector parameter each time a behavior is applied.
type Vector func() vec.Vec2

func Const(v float64) Scalar { return func() float64 { return v } }

func ConstVec(v vec.Vec2) Vector { return func() vec.Vec2 { return v } }

// Bounds is the viewport that edge behaviors keep bodies inside.
type Bounds interface {
	Size() (w, h float64)
}

type FixedBounds struct {
	W, H float64
}

func (f FixedBounds) Size() (float64, float64) { return f.W, f.H }
