package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/roundphysics/internal/engine"
)

const (
	hudX        = 12
	hudY        = 12
	hudFontSize = 16
	hudLine     = 20
)

// drawHUD prints the frame counters in the top-left corner and the key
// hints along the bottom edge.
func (w *Window) drawHUD(stats engine.Stats, status string) {
	lines := []string{
		fmt.Sprintf("%s  %s", stats.State, stats.Stepper),
		fmt.Sprintf("frame %d  t=%.2fs  dt=%.1fms", stats.Frame, stats.Time, stats.Dt*1000),
		fmt.Sprintf("bodies %d", stats.Bodies),
	}
	if status != "" {
		lines = append(lines, status)
	}

	for i, line := range lines {
		rl.DrawText(line, hudX, hudY+int32(i*hudLine), hudFontSize, ColText)
	}

	rl.DrawText("drag bodies   space pause   i integrator   r reset   esc quit",
		hudX, w.Height-hudLine-4, hudFontSize-2, ColTextDim)
	rl.DrawFPS(w.Width-90, hudY)
}
