package analysis

import (
	"math"

	"github.com/san-kum/roundphysics/internal/metrics"
	"github.com/san-kum/roundphysics/internal/render"
)

type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// PhasePortrait2D holds position against velocity for one body.
type PhasePortrait2D struct {
	Body   int
	Axis   Axis
	Points []struct{ X, Y float64 }
}

// Phase collects the (position, velocity) pairs of body along axis. Frames
// where the body does not exist are skipped.
func Phase(frames []metrics.Frame, body int, axis Axis) *PhasePortrait2D {
	if body < 0 {
		return nil
	}

	portrait := &PhasePortrait2D{
		Body:   body,
		Axis:   axis,
		Points: make([]struct{ X, Y float64 }, 0, len(frames)),
	}

	for _, f := range frames {
		if body >= len(f.States) {
			continue
		}
		st := f.States[body]
		p := struct{ X, Y float64 }{X: st.Pos.X, Y: st.Vel.X}
		if axis == AxisY {
			p = struct{ X, Y float64 }{X: st.Pos.Y, Y: st.Vel.Y}
		}
		portrait.Points = append(portrait.Points, p)
	}

	return portrait
}

// PhasePlot draws the portrait as a connected trajectory on a braille canvas
// of cols x rows cells, with dotted axes where zero is in range.
func PhasePlot(portrait *PhasePortrait2D, cols, rows int) string {
	if portrait == nil || len(portrait.Points) == 0 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y
	for _, p := range portrait.Points[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	if maxX == minX {
		minX, maxX = minX-0.5, maxX+0.5
	}
	if maxY == minY {
		minY, maxY = minY-0.5, maxY+0.5
	}

	c := render.NewCanvas(cols, rows)
	w, h := float64(c.DotsWide()-1), float64(c.DotsHigh()-1)
	dot := func(x, y float64) (int, int) {
		return int(math.Round((x - minX) / (maxX - minX) * w)),
			int(math.Round(h - (y-minY)/(maxY-minY)*h))
	}

	if minX < 0 && maxX > 0 {
		ax, _ := dot(0, minY)
		for y := 0; y < c.DotsHigh(); y += 2 {
			c.Set(ax, y, "")
		}
	}
	if minY < 0 && maxY > 0 {
		_, ay := dot(minX, 0)
		for x := 0; x < c.DotsWide(); x += 2 {
			c.Set(x, ay, "")
		}
	}

	px, py := dot(portrait.Points[0].X, portrait.Points[0].Y)
	c.Set(px, py, "")
	for _, p := range portrait.Points[1:] {
		x, y := dot(p.X, p.Y)
		c.DrawLine(px, py, x, y, "")
		px, py = x, y
	}
	return c.String()
}
