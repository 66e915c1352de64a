package random

import (
	"math"
	"testing"

	"github.com/san-kum/roundphysics/internal/behavior"
)

func TestDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		if x, y := a.Number(-5, 5), b.Number(-5, 5); x != y {
			t.Fatalf("step %d: %v != %v", i, x, y)
		}
		if x, y := a.Color(), b.Color(); x != y {
			t.Fatalf("step %d: %s != %s", i, x, y)
		}
	}
}

func TestNumberRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
	}{
		{"ordered", 1, 3},
		{"reversed", 3, 1},
		{"negative", -10, -2},
		{"empty", 4, 4},
	}

	r := New(1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := math.Min(tt.min, tt.max), math.Max(tt.min, tt.max)
			for i := 0; i < 1000; i++ {
				v := r.Number(tt.min, tt.max)
				if v < lo || (v >= hi && lo != hi) {
					t.Fatalf("Number(%v, %v) = %v out of range", tt.min, tt.max, v)
				}
			}
		})
	}
}

func TestAngle(t *testing.T) {
	r := New(7)
	for i := 0; i < 1000; i++ {
		if a := r.Angle(); a < 0 || a >= 2*math.Pi {
			t.Fatalf("Angle() = %v", a)
		}
	}
}

func TestBody(t *testing.T) {
	r := New(3)
	bounds := behavior.FixedBounds{W: 800, H: 600}

	for i := 0; i < 200; i++ {
		b := r.Body(bounds)
		if b.Mass < MinMass || b.Mass >= MaxMass {
			t.Fatalf("mass %v out of range", b.Mass)
		}
		if b.Radius != b.Mass*RadiusPerMass {
			t.Fatalf("radius %v, want %v", b.Radius, b.Mass*RadiusPerMass)
		}
		if b.Pos.X < Margin || b.Pos.X >= 800-Margin || b.Pos.Y < Margin || b.Pos.Y >= 600-Margin {
			t.Fatalf("position %v outside margin", b.Pos)
		}
		if b.Pos.X != math.Floor(b.Pos.X) || b.Pos.Y != math.Floor(b.Pos.Y) {
			t.Fatalf("position %v not whole pixels", b.Pos)
		}
		if !b.Vel.IsZero() {
			t.Fatalf("velocity %v, want zero", b.Vel)
		}
	}
}

func TestFork(t *testing.T) {
	a, b := New(9), New(9)
	fa, fb := a.Fork(), b.Fork()
	if fa.Seed() != fb.Seed() {
		t.Fatal("forks of equal generators should match")
	}
	if fa == a {
		t.Fatal("fork must be a new generator")
	}
	if fa.Float64() != fb.Float64() {
		t.Error("forked sequences differ")
	}
}
