// Package render draws bodies onto text and vector surfaces.
//
// Terminal rasterizes the world onto a braille Canvas, where every terminal
// cell holds a 2x4 grid of dots. The SVG writers turn body snapshots and
// recorded tracks into standalone images.
package render
