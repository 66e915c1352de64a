// Package palette turns body color tags into concrete colors.
//
// Tags are CSS color strings: names such as "CornflowerBlue", hex codes or
// rgb() forms. Unparseable tags fall back to Fallback so renderers never fail
// mid-frame.
package palette

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/mazznoer/csscolorparser"
)

// Names is the set of bright colors handed out to random bodies.
var Names = []string{
	"BlueViolet", "Chartreuse", "Coral", "CornflowerBlue", "Crimson",
	"DeepPink", "DeepSkyBlue", "Fuchsia", "Gold", "GreenYellow",
	"HotPink", "LightGreen", "LightPink", "LightSalmon", "LightSeaGreen",
	"LightSkyBlue", "LightSteelBlue", "MediumSlateBlue", "MediumTurquoise", "MediumVioletRed",
	"Orange", "OrangeRed", "Orchid", "Plum", "Red",
	"RoyalBlue", "SlateBlue", "Tomato", "Violet", "YellowGreen",
}

var Fallback = color.RGBA{R: 255, G: 255, B: 255, A: 255}

var cache sync.Map // tag -> color.RGBA

func Parse(tag string) (color.RGBA, error) {
	if c, ok := cache.Load(tag); ok {
		return c.(color.RGBA), nil
	}
	c, err := csscolorparser.Parse(tag)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("palette: %q: %w", tag, err)
	}
	r, g, b, a := c.RGBA255()
	rgba := color.RGBA{R: r, G: g, B: b, A: a}
	cache.Store(tag, rgba)
	return rgba, nil
}

// RGBA resolves tag, returning Fallback when it cannot be parsed.
func RGBA(tag string) color.RGBA {
	c, err := Parse(tag)
	if err != nil {
		return Fallback
	}
	return c
}

// Hex resolves tag to a #rrggbb string.
func Hex(tag string) string {
	c := RGBA(tag)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func Valid(tag string) bool {
	_, err := Parse(tag)
	return err == nil
}
