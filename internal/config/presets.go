package config

import (
	"sort"

	"github.com/san-kum/roundphysics/internal/behavior"
	"github.com/san-kum/roundphysics/internal/vec"
)

var Presets = map[string]*Scene{
	"fountain": {
		Name: "fountain", Width: 800, Height: 600, Background: "black", Integrator: "euler", FPS: 60,
		Gravity: vec.New(0, 200), EnergyRetained: behavior.Retain(0.8),
		RandomBodies: 25,
		RandomBehaviors: []behavior.Spec{
			{Kind: behavior.KindEdgeBounce},
		},
	},
	"orbit": {
		Name: "orbit", Width: 800, Height: 600, Background: "MidnightBlue", Integrator: "verlet", FPS: 60,
		Bodies: []BodyConfig{
			{Mass: 2, Radius: 8, Color: "Gold", X: 400, Y: 150, VX: 180, Behaviors: []behavior.Spec{
				{Kind: behavior.KindGravitation, X: 400, Y: 300, Strength: 50, MinRadius: 20},
			}},
			{Mass: 1, Radius: 5, Color: "DeepSkyBlue", X: 400, Y: 450, VX: -180, Behaviors: []behavior.Spec{
				{Kind: behavior.KindGravitation, X: 400, Y: 300, Strength: 50, MinRadius: 20},
			}},
			{Mass: 1, Radius: 4, Color: "Tomato", X: 150, Y: 300, VY: 120, Behaviors: []behavior.Spec{
				{Kind: behavior.KindGravitation, X: 400, Y: 300, Strength: 50, MinRadius: 20},
				{Kind: behavior.KindEdgeWrap},
			}},
		},
	},
	"wander": {
		Name: "wander", Width: 800, Height: 600, Background: "black", Integrator: "euler", FPS: 60,
		RandomBodies: 30,
		RandomBehaviors: []behavior.Spec{
			{Kind: behavior.KindWander, Insanity: 0.8, Speed: 40},
			{Kind: behavior.KindEdgeWrap},
		},
	},
	"bounce": {
		Name: "bounce", Width: 800, Height: 600, Background: "DarkSlateGray", Integrator: "euler", FPS: 60,
		Gravity: vec.New(0, 300), Wind: vec.New(40, 0), DragFriction: 0.05, EnergyRetained: behavior.Retain(0.7),
		Bodies: []BodyConfig{
			{Mass: 3, Radius: 12, Color: "Coral", X: 200, Y: 100, VX: 150, Behaviors: []behavior.Spec{
				{Kind: behavior.KindEdgeBounce},
			}},
			{Mass: 1, Radius: 6, Color: "Chartreuse", X: 600, Y: 200, VX: -100, Behaviors: []behavior.Spec{
				{Kind: behavior.KindEdgeBounce, Retained: behavior.Retain(0.95)},
			}},
		},
	},
	"wrap": {
		Name: "wrap", Width: 800, Height: 600, Background: "black", Integrator: "verlet", FPS: 60,
		Wind: vec.New(60, 0), DragFriction: 0.5,
		RandomBodies: 15,
		RandomBehaviors: []behavior.Spec{
			{Kind: behavior.KindEdgeWrap},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Scene {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
