package integrator

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/roundphysics/internal/body"
	"github.com/san-kum/roundphysics/internal/vec"
)

func mustBody(t *testing.T, mass, x, y float64) *body.Body {
	t.Helper()
	b, err := body.New(mass, 10, "Coral", x, y)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func closeTo(a, b vec.Vec2, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol
}

func TestImprovedEuler_ConstantForceScenario(t *testing.T) {
	b := mustBody(t, 1, 50, 50)
	b.ApplyForce(vec.New(0, 10))

	NewImprovedEuler().Integrate([]*body.Body{b}, 1, 0)

	if !closeTo(b.Vel, vec.New(0, 10), 1e-12) {
		t.Errorf("Vel = %v, want (0, 10)", b.Vel)
	}
	if !closeTo(b.Pos, vec.New(50, 55), 1e-12) {
		t.Errorf("Pos = %v, want (50, 55)", b.Pos)
	}
	if b.Acc != vec.Zero {
		t.Errorf("Acc = %v, want zero", b.Acc)
	}
}

func TestImprovedEuler_ForceLaw(t *testing.T) {
	tests := []struct {
		mass  float64
		force vec.Vec2
	}{
		{1, vec.New(3, -4)},
		{2.5, vec.New(10, 0)},
		{0.5, vec.New(-1, 7)},
	}
	for _, tt := range tests {
		b := mustBody(t, tt.mass, 0, 0)
		b.ApplyForce(tt.force)
		NewImprovedEuler().Integrate([]*body.Body{b}, 1, 0)

		accel := tt.force.Scale(1 / tt.mass)
		if !closeTo(b.Vel, accel, 1e-12) {
			t.Errorf("m=%v: Vel = %v, want %v", tt.mass, b.Vel, accel)
		}
		if !closeTo(b.Pos, accel.Scale(0.5), 1e-12) {
			t.Errorf("m=%v: Pos = %v, want %v", tt.mass, b.Pos, accel.Scale(0.5))
		}
	}
}

func TestIntegrate_NonPositiveDt(t *testing.T) {
	for _, integ := range []Integrator{NewImprovedEuler(), NewVerlet()} {
		for _, dt := range []float64{0, -0.016} {
			b := mustBody(t, 1, 5, 6)
			b.Vel = vec.New(1, 2)
			b.ApplyForce(vec.New(100, 100))

			integ.Integrate([]*body.Body{b}, dt, 0.016)

			if b.Pos != vec.New(5, 6) {
				t.Errorf("%s dt=%v: Pos moved to %v", integ.Name(), dt, b.Pos)
			}
			if b.Vel != vec.New(1, 2) {
				t.Errorf("%s dt=%v: Vel changed to %v", integ.Name(), dt, b.Vel)
			}
			if b.Acc != vec.Zero {
				t.Errorf("%s dt=%v: Acc not reset: %v", integ.Name(), dt, b.Acc)
			}
		}
	}
}

func TestVerlet_NeedsTwoPositiveDeltas(t *testing.T) {
	b := mustBody(t, 1, 100, 100)
	v := NewVerlet()
	bodies := []*body.Body{b}
	dt := 0.016

	b.ApplyForce(vec.New(0, 1000))
	v.Integrate(bodies, dt, 0)
	if b.Pos != vec.New(100, 100) {
		t.Fatalf("frame 1 moved the body to %v", b.Pos)
	}

	b.ApplyForce(vec.New(0, 1000))
	v.Integrate(bodies, dt, dt)
	want := vec.New(100, 100+0.5*1000*dt*dt)
	if !closeTo(b.Pos, want, 1e-9) {
		t.Fatalf("frame 2 Pos = %v, want %v", b.Pos, want)
	}

	b.ApplyForce(vec.New(0, 1000))
	v.Integrate(bodies, dt, dt)
	if b.Pos.Y <= want.Y {
		t.Errorf("frame 3 should keep advancing, got %v", b.Pos)
	}
}

func TestVerlet_KeepsInitialVelocity(t *testing.T) {
	b := mustBody(t, 1, 0, 0)
	b.Vel = vec.New(10, 0)
	v := NewVerlet()
	bodies := []*body.Body{b}

	v.Integrate(bodies, 0.1, 0)
	v.Integrate(bodies, 0.1, 0.1)
	if !closeTo(b.Pos, vec.New(1, 0), 1e-12) {
		t.Errorf("Pos = %v, want (1, 0)", b.Pos)
	}
	if !closeTo(b.Vel, vec.New(10, 0), 1e-9) {
		t.Errorf("Vel estimate = %v, want (10, 0)", b.Vel)
	}
}

func TestVerlet_TimeCorrection(t *testing.T) {
	// uniform motion must stay uniform when the frame time changes
	b := mustBody(t, 1, 0, 0)
	b.Vel = vec.New(5, 0)
	v := NewVerlet()
	bodies := []*body.Body{b}

	v.Integrate(bodies, 0.02, 0)
	steps := []float64{0.02, 0.01, 0.05, 0.016, 0.033}
	prev := 0.02
	elapsed := 0.0
	for _, dt := range steps {
		v.Integrate(bodies, dt, prev)
		elapsed += dt
		prev = dt
	}
	if math.Abs(b.Pos.X-5*elapsed) > 1e-9 {
		t.Errorf("Pos.X = %v, want %v", b.Pos.X, 5*elapsed)
	}
}

func TestVerlet_MatchesEulerUnderConstantAcceleration(t *testing.T) {
	e := mustBody(t, 1, 0, 0)
	vb := mustBody(t, 1, 0, 0)
	euler, verlet := NewImprovedEuler(), NewVerlet()
	g := vec.New(0, 9.81)
	dt := 0.01

	verlet.Integrate([]*body.Body{vb}, dt, 0)
	for i := 0; i < 100; i++ {
		e.ApplyForce(g)
		vb.ApplyForce(g)
		euler.Integrate([]*body.Body{e}, dt, dt)
		verlet.Integrate([]*body.Body{vb}, dt, dt)
	}
	if !closeTo(e.Pos, vb.Pos, 1e-6) {
		t.Errorf("euler %v and verlet %v diverged", e.Pos, vb.Pos)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	for _, name := range r.Names() {
		integ, err := r.Get(name)
		if err != nil {
			t.Fatalf("Get(%s): %v", name, err)
		}
		if integ.Name() != name {
			t.Errorf("Get(%s).Name() = %s", name, integ.Name())
		}
	}
	if _, err := r.Get("rk4"); !errors.Is(err, ErrUnknown) {
		t.Errorf("expected ErrUnknown, got %v", err)
	}
}
