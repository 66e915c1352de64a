package behavior

import (
	"fmt"
	"math"

	"github.com/san-kum/roundphysics/internal/body"
	"github.com/san-kum/roundphysics/internal/vec"
)

// edgeSlack tolerates tiny overshoot before a bounce is triggered.
const edgeSlack = 0.1

// EdgeBounce keeps a body inside the viewport. When the body's extent
// crosses an edge its position is clamped and an impulsive counter-force
// reverses the normal velocity component, keeping sqrt(retained) of it.
type EdgeBounce struct {
	bounds   Bounds
	retained Scalar
}

// NewEdgeBounce returns a perfectly elastic bounce.
func NewEdgeBounce(bounds Bounds) *EdgeBounce {
	return &EdgeBounce{bounds: bounds, retained: Const(1)}
}

// NewLossyEdgeBounce keeps the given fraction of normal kinetic energy per
// bounce. Values outside [0, 1] are clamped.
func NewLossyEdgeBounce(bounds Bounds, retained Scalar) *EdgeBounce {
	return &EdgeBounce{bounds: bounds, retained: retained}
}

func (e *EdgeBounce) Apply(b *body.Body, dt float64) {
	w, h := e.bounds.Size()
	k := 1 + math.Sqrt(math.Max(0, math.Min(1, e.retained())))

	if b.Pos.X-b.Radius < -edgeSlack {
		b.Pos.X = b.Radius
		e.reflect(b, vec.New(-k*b.Mass*b.Vel.X, 0), dt)
	} else if b.Pos.X+b.Radius > w+edgeSlack {
		b.Pos.X = w - b.Radius
		e.reflect(b, vec.New(-k*b.Mass*b.Vel.X, 0), dt)
	}

	if b.Pos.Y-b.Radius < -edgeSlack {
		b.Pos.Y = b.Radius
		e.reflect(b, vec.New(0, -k*b.Mass*b.Vel.Y), dt)
	} else if b.Pos.Y+b.Radius > h+edgeSlack {
		b.Pos.Y = h - b.Radius
		e.reflect(b, vec.New(0, -k*b.Mass*b.Vel.Y), dt)
	}
}

func (e *EdgeBounce) reflect(b *body.Body, impulse vec.Vec2, dt float64) {
	if dt <= 0 {
		return
	}
	b.ApplyForce(impulse.Scale(1 / dt))
}

func (e *EdgeBounce) Name() string {
	return fmt.Sprintf("edge-bounce{retained=%.2f}", e.retained())
}

// EdgeWrap moves a body that has fully left the viewport to just beyond
// the opposite edge.
type EdgeWrap struct {
	bounds Bounds
}

func NewEdgeWrap(bounds Bounds) *EdgeWrap { return &EdgeWrap{bounds: bounds} }

func (e *EdgeWrap) Apply(b *body.Body, dt float64) {
	w, h := e.bounds.Size()
	var shift vec.Vec2

	if b.Pos.X+b.Radius < 0 {
		shift.X = w + b.Radius - b.Pos.X
	} else if b.Pos.X-b.Radius > w {
		shift.X = -b.Radius - b.Pos.X
	}

	if b.Pos.Y+b.Radius < 0 {
		shift.Y = h + b.Radius - b.Pos.Y
	} else if b.Pos.Y-b.Radius > h {
		shift.Y = -b.Radius - b.Pos.Y
	}

	if shift.IsZero() {
		return
	}
	b.Pos.MutableAdd(shift)
	// keep the Verlet history continuous across the teleport
	b.PosPrev.MutableAdd(shift)
}

func (e *EdgeWrap) Name() string { return "edge-wrap" }
