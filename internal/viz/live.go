package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/forcekit/internal/experiment"
)

const historyCapacity = 600

type TickMsg time.Time

// LiveModel steps an experiment on every tick and renders its aggregates.
type LiveModel struct {
	ctx      context.Context
	exp      *experiment.Experiment
	registry *experiment.Registry
	steps    int
	interval time.Duration

	history []experiment.Sample
	last    experiment.Sample
	series  int
	running bool
	done    bool
	err     error

	theme  Theme
	styles Styles
}

// NewLiveModel wraps an experiment that has already been set up. steps
// bounds the run; interval is the delay between ticks.
func NewLiveModel(ctx context.Context, exp *experiment.Experiment, reg *experiment.Registry, steps int, interval time.Duration) LiveModel {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return LiveModel{
		ctx:      ctx,
		exp:      exp,
		registry: reg,
		steps:    steps,
		interval: interval,
		history:  make([]experiment.Sample, 0, historyCapacity),
		running:  true,
		theme:    ThemeNeon,
		styles:   NewStyles(ThemeNeon),
	}
}

func (m LiveModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Init() tea.Cmd {
	return m.tick()
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.restart()
		case "tab":
			m.series = (m.series + 1) % len(seriesNames)
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.styles = NewStyles(m.theme)
		}
	case TickMsg:
		if m.running && !m.done {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *LiveModel) step() {
	s, err := m.exp.Step(m.ctx)
	if err != nil {
		m.err = err
		m.done = true
		return
	}
	m.last = s
	m.history = append(m.history, s)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
	if m.steps > 0 && int(s.Step) >= m.steps {
		m.done = true
	}
}

// restart rebuilds the session so the clock and force set start over.
func (m *LiveModel) restart() {
	m.history = m.history[:0]
	m.last = experiment.Sample{}
	m.done = false
	m.err = m.exp.Setup(m.registry)
	if m.err != nil {
		m.done = true
	}
}

// Samples returns the retained history, oldest first.
func (m LiveModel) Samples() []experiment.Sample {
	return m.history
}

func (m LiveModel) Err() error {
	return m.err
}

func (m LiveModel) status() string {
	switch {
	case m.err != nil:
		return m.styles.Bad.Render("ERROR: " + m.err.Error())
	case m.done:
		return m.styles.Good.Render("DONE")
	case !m.running:
		return m.styles.Muted.Render("PAUSED")
	default:
		return m.styles.Good.Render("RUNNING")
	}
}

func (m LiveModel) View() string {
	st := m.styles
	var b strings.Builder

	title := "FORCEKIT"
	if sys := m.exp.System(); sys != nil {
		title += " " + sys.ID.String()[:8]
	}
	b.WriteString(st.Header.Render(title) + "\n")
	b.WriteString(m.status() + "\n\n")

	name := seriesNames[m.series]
	if len(m.history) > 1 {
		data, _ := Extract(m.history, name)
		chart := asciigraph.Plot(data, asciigraph.Height(8), asciigraph.Width(50), asciigraph.Caption(seriesCaptions[name]))
		b.WriteString(chart + "\n\n")
	}

	row := func(label, value string, selected bool) {
		l := st.Label.Render(label)
		if selected {
			l = st.Selected.Render("> " + label)
			l = lipgloss.NewStyle().Width(12).Render(l)
		}
		b.WriteString(l + st.Value.Render(value) + "\n")
	}
	row("step", fmt.Sprintf("%d", m.last.Step), false)
	row("time", fmt.Sprintf("%.2f", m.last.Time), false)
	row(SeriesF64, fmt.Sprintf("%.6f", m.last.F64), name == SeriesF64)
	row(SeriesF32, fmt.Sprintf("%.6f", m.last.F32), name == SeriesF32)
	row(SeriesVec, m.last.Vec.String(), name == SeriesVec)
	row(SeriesEnergy, fmt.Sprintf("%.6f", m.last.Energy), name == SeriesEnergy)

	if m.steps > 0 {
		b.WriteString("\n" + st.ProgressBar(float64(m.last.Step)/float64(m.steps), 30) + "\n")
	}
	if data, err := Extract(m.history, name); err == nil {
		b.WriteString(st.Muted.Render(Sparkline(data, 30)) + "\n")
	}

	b.WriteString(st.KeyHint.Render("\nSP:Pause R:Restart TAB:Series T:Theme Q:Quit"))
	return st.Panel.Render(b.String())
}
