package config

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/san-kum/roundphysics/internal/behavior"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Integrator != "euler" {
		t.Errorf("expected integrator euler, got %s", cfg.Integrator)
	}
	if cfg.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("orbit")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Integrator != "verlet" {
		t.Errorf("expected verlet, got %s", cfg.Integrator)
	}

	cfg.Bodies[0].Behaviors[0].Strength = 999
	if Presets["orbit"].Bodies[0].Behaviors[0].Strength == 999 {
		t.Error("GetPreset must return a copy")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	if !sort.StringsAreSorted(presets) {
		t.Errorf("presets not sorted: %v", presets)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Scene)
	}{
		{"zero width", func(s *Scene) { s.Width = 0 }},
		{"negative fps", func(s *Scene) { s.FPS = -1 }},
		{"unknown integrator", func(s *Scene) { s.Integrator = "rk4" }},
		{"unknown background", func(s *Scene) { s.Background = "notacolor" }},
		{"retained above one", func(s *Scene) { s.EnergyRetained = behavior.Retain(1.5) }},
		{"negative behavior retained", func(s *Scene) {
			s.RandomBehaviors = []behavior.Spec{{Kind: behavior.KindEdgeBounce, Retained: behavior.Retain(-0.1)}}
		}},
		{"negative friction", func(s *Scene) { s.DragFriction = -0.1 }},
		{"negative random bodies", func(s *Scene) { s.RandomBodies = -1 }},
		{"zero mass", func(s *Scene) { s.Bodies = []BodyConfig{{Mass: 0, Radius: 1}} }},
		{"zero radius", func(s *Scene) { s.Bodies = []BodyConfig{{Mass: 1, Radius: 0}} }},
		{"unknown behavior", func(s *Scene) {
			s.Bodies = []BodyConfig{{Mass: 1, Radius: 1, Behaviors: []behavior.Spec{{Kind: "magnet"}}}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidScene) {
				t.Errorf("expected ErrInvalidScene, got %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")

	data := `
name: test
integrator: verlet
gravity: {x: 0, y: 9.8}
random_bodies: 0
bodies:
  - mass: 2
    radius: 8
    color: Gold
    x: 100
    y: 200
    vx: 5
    behaviors:
      - kind: bounce
        retained: 0.5
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Name != "test" || cfg.Integrator != "verlet" {
		t.Errorf("unexpected header %+v", cfg)
	}
	if cfg.Width != DefaultWidth {
		t.Errorf("missing fields should keep defaults, width = %v", cfg.Width)
	}
	if cfg.Gravity.Y != 9.8 {
		t.Errorf("gravity = %v", cfg.Gravity)
	}
	if len(cfg.Bodies) != 1 || cfg.Bodies[0].VX != 5 {
		t.Fatalf("bodies = %+v", cfg.Bodies)
	}
	spec := cfg.Bodies[0].Behaviors[0]
	if spec.Kind != behavior.KindEdgeBounce || spec.Retained == nil || *spec.Retained != 0.5 {
		t.Errorf("behavior = %+v", spec)
	}

	out := filepath.Join(dir, "saved.yaml")
	if err := Save(out, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	again, err := Load(out)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if again.Bodies[0].Color != "Gold" {
		t.Errorf("reloaded color = %q", again.Bodies[0].Color)
	}
}

func TestLoadRejectsBadScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("fps: -5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidScene) {
		t.Errorf("expected ErrInvalidScene, got %v", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestZeroRetainedIsValid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnergyRetained = behavior.Retain(0)
	cfg.RandomBehaviors = []behavior.Spec{{Kind: behavior.KindEdgeBounce, Retained: behavior.Retain(0)}}
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero retained should be valid: %v", err)
	}
}

func TestCloneCopiesRetained(t *testing.T) {
	orig := GetPreset("bounce")
	clone := orig.Clone()

	*clone.EnergyRetained = 0.1
	*clone.Bodies[1].Behaviors[0].Retained = 0.2

	if *orig.EnergyRetained != 0.7 {
		t.Errorf("scene retained shared with clone: %v", *orig.EnergyRetained)
	}
	if *orig.Bodies[1].Behaviors[0].Retained != 0.95 {
		t.Errorf("behavior retained shared with clone: %v", *orig.Bodies[1].Behaviors[0].Retained)
	}
}
