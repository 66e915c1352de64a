package integrator

import (
	"github.com/san-kum/roundphysics/internal/body"
	"github.com/san-kum/roundphysics/internal/vec"
)

// ImprovedEuler integrates position with the initial velocity and
// acceleration, then velocity with the initial acceleration:
//
//	p += v*dt + a*dt²/2
//	v += a*dt
type ImprovedEuler struct{}

func NewImprovedEuler() *ImprovedEuler {
	return &ImprovedEuler{}
}

func (e *ImprovedEuler) Name() string { return string(KindEuler) }

func (e *ImprovedEuler) Integrate(bodies []*body.Body, dt, dtPrev float64) {
	for _, b := range bodies {
		if dt > 0 {
			b.PosPrev = b.Pos
			b.Pos.MutableAdd(b.Vel.Scale(dt)).MutableAdd(b.Acc.Scale(0.5 * dt * dt))
			b.Vel.MutableAdd(b.Acc.Scale(dt))
			b.AccPrev = b.Acc
		}
		b.Acc = vec.Zero
	}
}
