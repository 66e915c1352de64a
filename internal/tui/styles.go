package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/roundphysics/internal/palette"
)

type styles struct {
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	graph  lipgloss.Style
	help   lipgloss.Style
	status map[string]lipgloss.Style
	panel  lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		header: lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(11),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		graph:  lipgloss.NewStyle().Foreground(t.Accent),
		help:   lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		status: map[string]lipgloss.Style{
			"running": lipgloss.NewStyle().Bold(true).Foreground(t.Success),
			"stopped": lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
			"idle":    lipgloss.NewStyle().Bold(true).Foreground(t.Muted),
		},
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),
	}
}

// Shade blends the color tag toward the background tag by amount in [0, 1]
// and returns a lipgloss color. Blending happens in Lab space so dimmed
// bodies keep their hue.
func Shade(tag, background string, amount float64) lipgloss.Color {
	c, ok := colorful.MakeColor(palette.RGBA(tag))
	if !ok {
		return lipgloss.Color(palette.Hex(tag))
	}
	if amount <= 0 {
		return lipgloss.Color(c.Hex())
	}
	bg, ok := colorful.MakeColor(palette.RGBA(background))
	if !ok {
		return lipgloss.Color(c.Hex())
	}
	if amount > 1 {
		amount = 1
	}
	return lipgloss.Color(c.BlendLab(bg, amount).Clamped().Hex())
}

// GradientText colors text from start to end, one rune at a time.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	from, err1 := colorful.Hex(string(start))
	to, err2 := colorful.Hex(string(end))
	if err1 != nil || err2 != nil {
		return lipgloss.NewStyle().Foreground(start).Render(text)
	}

	var result strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		color := lipgloss.Color(from.BlendLuv(to, t).Clamped().Hex())
		result.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(r)))
	}

	return result.String()
}

// SparklineChart renders values as a one-line bar chart of the given width.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		result.WriteRune(chars[idx])
	}

	return result.String()
}
