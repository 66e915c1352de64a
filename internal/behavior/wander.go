package behavior

import (
	"fmt"
	"math"

	"github.com/san-kum/roundphysics/internal/body"
	"github.com/san-kum/roundphysics/internal/vec"
)

// Source is the uniform [0, 1) generator Wander draws from.
type Source interface {
	Float64() float64
}

// Wander steers a body along a randomly drifting heading. Each frame the
// heading moves by a uniform amount in [-insanity/2, insanity/2]; the force
// pair cancels the previous heading and applies the new one, so the body is
// redirected without net speed gain.
type Wander struct {
	insanity Scalar
	speed    Scalar
	rng      Source
	angle    float64
}

func NewWander(insanity, speed Scalar, rng Source) *Wander {
	return &Wander{
		insanity: insanity,
		speed:    speed,
		rng:      rng,
		angle:    rng.Float64() * 2 * math.Pi,
	}
}

// Heading is the current wander angle in radians.
func (w *Wander) Heading() float64 { return w.angle }

func (w *Wander) Apply(b *body.Body, dt float64) {
	if dt <= 0 {
		return
	}
	prev := vec.Unit(w.angle)
	w.angle += (w.rng.Float64() - 0.5) * w.insanity()
	next := vec.Unit(w.angle)

	s := w.speed() / dt
	b.ApplyForce(prev.Scale(-s))
	b.ApplyForce(next.Scale(s))
}

func (w *Wander) Name() string {
	return fmt.Sprintf("wander{insanity=%.2f speed=%.2f}", w.insanity(), w.speed())
}
