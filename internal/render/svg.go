package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/roundphysics/internal/body"
	"github.com/san-kum/roundphysics/internal/palette"
	"github.com/san-kum/roundphysics/internal/vec"
)

// Track is the recorded path of one body.
type Track struct {
	Color  string
	Points []vec.Vec2
}

// WriteSVG renders a single frame: the background and one filled circle per
// body, in world coordinates.
func WriteSVG(w io.Writer, width, height float64, background string, bodies []body.State, tracks []Track) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, palette.Hex(background)))

	for _, t := range tracks {
		if len(t.Points) < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-opacity="0.5" stroke-width="1" d="`,
			palette.Hex(t.Color)))
		for i, p := range t.Points {
			if i == 0 {
				sb.WriteString(fmt.Sprintf("M%.1f,%.1f", p.X, p.Y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	for _, b := range bodies {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, b.Pos.X, b.Pos.Y, b.Radius, palette.Hex(b.Color)))
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// CanvasToSVG converts a braille canvas to SVG, one dot per set sub-pixel.
func CanvasToSVG(canvas *Canvas, scale float64, background string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.DotsWide()) * scale
	height := float64(canvas.DotsHigh()) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, palette.Hex(background)))

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= blank {
				continue
			}
			pattern := int(r - blank)
			fill := palette.Hex(canvas.Colors[row][col])

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, fill))
					}
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}
