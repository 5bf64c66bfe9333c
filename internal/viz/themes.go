package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the palette every style in the package is derived from.
type Theme struct {
	Name   string
	Title  lipgloss.Color
	Label  lipgloss.Color
	Value  lipgloss.Color
	Muted  lipgloss.Color
	Border lipgloss.Color
	Good   lipgloss.Color
	Bad    lipgloss.Color
}

var (
	ThemeNeon = Theme{
		Name:   "neon",
		Title:  lipgloss.Color("#00ffff"),
		Label:  lipgloss.Color("#888899"),
		Value:  lipgloss.Color("#00ccff"),
		Muted:  lipgloss.Color("#666688"),
		Border: lipgloss.Color("#444466"),
		Good:   lipgloss.Color("#00ff88"),
		Bad:    lipgloss.Color("#ff4444"),
	}

	ThemePhosphor = Theme{
		Name:   "phosphor",
		Title:  lipgloss.Color("#88ff88"),
		Label:  lipgloss.Color("#00aa00"),
		Value:  lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Border: lipgloss.Color("#007700"),
		Good:   lipgloss.Color("#88ff88"),
		Bad:    lipgloss.Color("#ffff00"),
	}

	ThemePlain = Theme{
		Name:   "plain",
		Title:  lipgloss.Color("#ffffff"),
		Label:  lipgloss.Color("#aaaaaa"),
		Value:  lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#777777"),
		Border: lipgloss.Color("#555555"),
		Good:   lipgloss.Color("#00ff00"),
		Bad:    lipgloss.Color("#ff0000"),
	}

	Themes = []Theme{ThemeNeon, ThemePhosphor, ThemePlain}
)

// GetTheme returns the named theme, or ThemeNeon if there is none.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNeon
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
