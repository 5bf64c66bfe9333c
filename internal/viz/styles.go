package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the rendered styles for one theme.
type Styles struct {
	Header   lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style
	Panel    lipgloss.Style
	Good     lipgloss.Style
	Bad      lipgloss.Style
	KeyHint  lipgloss.Style
	Selected lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Title).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border),
		Label: lipgloss.NewStyle().Foreground(t.Label).Width(12),
		Value: lipgloss.NewStyle().Foreground(t.Value).Bold(true),
		Muted: lipgloss.NewStyle().Foreground(t.Muted),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		Good:     lipgloss.NewStyle().Foreground(t.Good),
		Bad:      lipgloss.NewStyle().Foreground(t.Bad),
		KeyHint:  lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Selected: lipgloss.NewStyle().Foreground(t.Title).Bold(true),
	}
}

// DefaultStyles is used by the non-interactive renderers.
var DefaultStyles = NewStyles(ThemeNeon)

// ProgressBar renders a bar filled to percent (0..1) of width cells.
func (s Styles) ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if percent >= 1 {
		return s.Good.Render(bar)
	}
	return s.Value.Render(bar)
}

// Sparkline renders values as a one-line bar chart of at most width cells.
func Sparkline(values []float64, width int) string {
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

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		idx := int((values[i*step] - lo) / rng * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)
		b.WriteRune(chars[idx])
	}
	return b.String()
}
