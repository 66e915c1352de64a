package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/roundphysics/internal/config"
	"github.com/san-kum/roundphysics/internal/engine"
	"github.com/san-kum/roundphysics/internal/integrator"
	"github.com/san-kum/roundphysics/internal/metrics"
	"github.com/san-kum/roundphysics/internal/random"
	"github.com/san-kum/roundphysics/internal/render"
	"github.com/san-kum/roundphysics/internal/scene"
)

const (
	defaultCols     = 60
	defaultRows     = 20
	statsWidth      = 36
	historyCapacity = 300
	pausedShade     = 0.6
)

type reloadMsg string

type Options struct {
	Theme string
	// Reload delivers paths of scene files that changed on disk.
	Reload <-chan string
}

// session is shared by every copy of Model.
type session struct {
	cfg      *config.Scene
	eng      *engine.Engine
	clock    *Clock
	term     *render.Terminal
	rec      *metrics.Recorder
	rnd      *random.Random
	seed     int64
	interval time.Duration
	reload   <-chan string
}

type Model struct {
	s             *session
	width, height int
	theme         Theme
	styles        styles
	showHelp      bool
	status        string
}

func NewModel(cfg *config.Scene, opts Options) (Model, error) {
	clk := NewClock()
	term := render.NewTerminal(defaultCols, defaultRows, cfg.Bounds())
	rec := metrics.NewRecorder(1, metrics.NewMaxSpeed()).WithLimit(historyCapacity)
	eng := engine.New(clk, term,
		engine.WithBounds(cfg.Bounds()),
		engine.WithObserver(rec),
	)

	s := &session{
		cfg:      cfg,
		eng:      eng,
		clock:    clk,
		term:     term,
		rec:      rec,
		interval: time.Duration(float64(time.Second) / cfg.FPS),
		reload:   opts.Reload,
	}
	if err := s.build(); err != nil {
		return Model{}, err
	}

	theme := GetTheme(opts.Theme)
	return Model{
		s:      s,
		width:  defaultCols + statsWidth + 6,
		height: defaultRows + 6,
		theme:  theme,
		styles: newStyles(theme),
	}, nil
}

func (s *session) build() error {
	seed, err := scene.Build(s.cfg, s.eng)
	if err != nil {
		return err
	}
	s.seed = seed
	s.rnd = random.New(seed).Fork()
	s.rec.Reset()
	s.eng.Stop()
	return s.eng.Start(context.Background())
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(m.s.interval), m.waitReload())
}

func (m Model) waitReload() tea.Cmd {
	if m.s.reload == nil {
		return nil
	}
	ch := m.s.reload
	return func() tea.Msg {
		path, ok := <-ch
		if !ok {
			return nil
		}
		return reloadMsg(path)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		cols := max(msg.Width-statsWidth-8, 10)
		rows := max(msg.Height-6, 5)
		m.s.term.Resize(cols, rows)
	case TickMsg:
		m.s.clock.Fire(time.Time(msg))
		return m, tick(m.s.interval)
	case reloadMsg:
		cfg, err := config.Load(string(msg))
		if err != nil {
			m.status = "reload failed: " + err.Error()
		} else {
			m.s.cfg = cfg
			if err := m.s.build(); err != nil {
				m.status = "reload failed: " + err.Error()
			} else {
				m.status = "reloaded " + cfg.Name
			}
		}
		return m, m.waitReload()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	eng := m.s.eng
	switch msg.String() {
	case "q", "ctrl+c":
		eng.Stop()
		return m, tea.Quit
	case " ":
		if eng.State() == engine.Running {
			eng.Stop()
		} else if err := eng.Start(context.Background()); err != nil {
			m.status = err.Error()
		}
	case "r":
		if err := m.s.build(); err != nil {
			m.status = err.Error()
		} else {
			m.status = "reset"
		}
	case "i":
		next := integrator.KindVerlet
		if eng.Integrator().Name() == string(integrator.KindVerlet) {
			next = integrator.KindEuler
		}
		if err := eng.ChangeIntegrator(next); err != nil {
			m.status = err.Error()
		} else {
			m.status = "integrator " + string(next)
		}
	case "a":
		if _, err := scene.AddRandomBody(m.s.cfg, eng, m.s.rnd); err != nil {
			m.status = err.Error()
		}
	case "d":
		bodies := eng.Bodies()
		if len(bodies) > 0 {
			eng.Remove(bodies[len(bodies)-1])
		}
	case "t":
		m.theme = nextTheme(m.theme.Name)
		m.styles = newStyles(m.theme)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m Model) View() string {
	canvas, background := m.s.term.Frame()
	stats := m.s.eng.Stats()

	shade := 0.0
	if stats.State != engine.Running {
		shade = pausedShade
	}

	var view strings.Builder
	for _, line := range colorRows(canvas, background, shade) {
		view.WriteString(line)
		view.WriteByte('\n')
	}

	left := m.styles.panel.Render(strings.TrimRight(view.String(), "\n"))
	right := m.viewStats(stats)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)

	title := GradientText("roundphysics", m.theme.Primary, m.theme.Secondary)
	header := title + "  " + m.styles.header.Render(m.s.cfg.Name)

	help := "space pause  r reset  i integrator  a add  d remove  t theme  ? help  q quit"
	if m.showHelp {
		help = "space pause/resume the loop\nr rebuild the scene\ni toggle euler/verlet\n" +
			"a add a random body\nd remove the last body\nt cycle theme\nq quit"
	}

	footer := m.styles.help.Render(help)
	if m.status != "" {
		footer = m.styles.value.Render(m.status) + "\n" + footer
	}

	return header + "\n\n" + body + "\n" + footer
}

func (m Model) viewStats(stats engine.Stats) string {
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(m.styles.label.Render(label) + m.styles.value.Render(value) + "\n")
	}

	status, ok := m.styles.status[stats.State.String()]
	if !ok {
		status = m.styles.value
	}
	b.WriteString(status.Render(strings.ToUpper(stats.State.String())) + "\n\n")

	row("integrator", stats.Stepper)
	row("frame", fmt.Sprintf("%d", stats.Frame))
	row("time", fmt.Sprintf("%.2fs", stats.Time))
	row("dt", fmt.Sprintf("%.1fms", stats.Dt*1000))
	row("bodies", fmt.Sprintf("%d", stats.Bodies))
	row("seed", fmt.Sprintf("%d", m.s.seed))
	row("max speed", fmt.Sprintf("%.1f", m.s.rec.Summary()["max_speed"]))

	_, energy := m.s.rec.Energy()
	if len(energy) > 1 {
		b.WriteString("\n")
		chart := asciigraph.Plot(energy,
			asciigraph.Height(6),
			asciigraph.Width(statsWidth-10),
			asciigraph.Caption("kinetic energy"))
		b.WriteString(m.styles.graph.Render(chart))
		b.WriteString("\n" + SparklineChart(energy, statsWidth-4))
	}

	return b.String()
}

// colorRows renders each canvas row, grouping runs of cells that share a
// color into one styled segment.
func colorRows(c *render.Canvas, background string, shade float64) []string {
	rows := make([]string, c.Height)
	for y := 0; y < c.Height; y++ {
		var line strings.Builder
		start := 0
		for x := 1; x <= c.Width; x++ {
			if x < c.Width && c.Colors[y][x] == c.Colors[y][start] {
				continue
			}
			seg := string(c.Grid[y][start:x])
			if tag := c.Colors[y][start]; tag != "" {
				seg = lipgloss.NewStyle().Foreground(Shade(tag, background, shade)).Render(seg)
			}
			line.WriteString(seg)
			start = x
		}
		rows[y] = line.String()
	}
	return rows
}

// Run starts the live terminal view and blocks until the user quits.
func Run(cfg *config.Scene, opts Options) error {
	m, err := NewModel(cfg, opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
