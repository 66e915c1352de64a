package behavior

import (
	"fmt"

	"github.com/san-kum/roundphysics/internal/body"
)

// GravitationScale maps human-friendly strengths (10..500) to visible
// accelerations in pixel space.
const GravitationScale = 1e5

// Gravitation attracts bodies toward a point with inverse-square falloff.
// Inside minRadius no force is applied.
type Gravitation struct {
	position  Vector
	strength  Scalar
	minRadius Scalar
}

func NewGravitation(position Vector, strength, minRadius Scalar) *Gravitation {
	return &Gravitation{position: position, strength: strength, minRadius: minRadius}
}

func (g *Gravitation) Apply(b *body.Body, dt float64) {
	dist := g.position().Sub(b.Pos)
	d := dist.Length()
	if d <= g.minRadius() || d == 0 {
		return
	}
	magnitude := GravitationScale * g.strength() * b.Mass / (d * d)
	b.ApplyForce(dist.Normalize().Scale(magnitude))
}

func (g *Gravitation) Name() string {
	return fmt.Sprintf("gravitation{pos=%v strength=%.2f min=%.2f}", g.position(), g.strength(), g.minRadius())
}
