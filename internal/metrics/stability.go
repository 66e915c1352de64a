package metrics

import (
	"github.com/san-kum/roundphysics/internal/behavior"
	"github.com/san-kum/roundphysics/internal/body"
)

// Containment is the fraction of frames in which every body center stayed
// inside the viewport.
type Containment struct {
	name       string
	bounds     behavior.Bounds
	violations int
	samples    int
}

func NewContainment(bounds behavior.Bounds) *Containment {
	return &Containment{
		name:   "containment",
		bounds: bounds,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(bodies []*body.Body, t float64) {
	c.samples++
	w, h := c.bounds.Size()
	for _, b := range bodies {
		if b.Pos.X < 0 || b.Pos.X > w || b.Pos.Y < 0 || b.Pos.Y > h {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
