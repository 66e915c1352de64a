package behavior

import (
	"fmt"

	"github.com/san-kum/roundphysics/internal/body"
)

// ConstantForce pushes the same force every frame.
type ConstantForce struct {
	force Vector
}

func NewConstantForce(force Vector) *ConstantForce {
	return &ConstantForce{force: force}
}

func (c *ConstantForce) Apply(b *body.Body, dt float64) {
	b.ApplyForce(c.force())
}

func (c *ConstantForce) Name() string { return fmt.Sprintf("constant%v", c.force()) }

// Gravity is a uniform field: the force on each body scales with its mass,
// so every body accelerates by g.
type Gravity struct {
	g Vector
}

func NewGravity(g Vector) *Gravity { return &Gravity{g: g} }

func (gr *Gravity) Apply(b *body.Body, dt float64) {
	b.ApplyForce(gr.g().Scale(b.Mass))
}

func (gr *Gravity) Name() string { return fmt.Sprintf("gravity%v", gr.g()) }

// Drag applies the quadratic drag of a medium moving at wind.
type Drag struct {
	wind     Vector
	friction Scalar
}

func NewDrag(wind Vector, friction Scalar) *Drag {
	return &Drag{wind: wind, friction: friction}
}

func (d *Drag) Apply(b *body.Body, dt float64) {
	f := d.friction()
	if f == 0 {
		return
	}
	b.ApplyForce(b.DragForce(d.wind(), f))
}

func (d *Drag) Name() string {
	return fmt.Sprintf("drag{wind=%v friction=%.4f}", d.wind(), d.friction())
}
