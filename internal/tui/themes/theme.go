// Package themes defines the color schemes of the summary explorer.
package themes

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Selected    lipgloss.Style
	Header      lipgloss.Style
	Bar         lipgloss.Style
	StatusError lipgloss.Style
	Primary     lipgloss.Color
	Border      lipgloss.Color
	Muted       lipgloss.Color
}

func newTheme(primary, foreground, background, border, muted, errColor lipgloss.Color) Theme {
	return Theme{
		Primary: primary,
		Border:  border,
		Muted:   muted,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(foreground).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted),
		Tab: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Background(primary).
			Foreground(background).
			Bold(true).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Background(primary).
			Foreground(background).
			Bold(true),
		Header: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(border).
			BorderBottom(true).
			Bold(false),
		Bar: lipgloss.NewStyle().
			Foreground(primary),
		StatusError: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
	}
}

// Default is the default theme.
var Default = newTheme(
	lipgloss.Color("#7c3aed"),
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#1a1a1a"),
	lipgloss.Color("#404040"),
	lipgloss.Color("#737373"),
	lipgloss.Color("#ef4444"),
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(
	lipgloss.Color("#cba6f7"),
	lipgloss.Color("#cdd6f4"),
	lipgloss.Color("#1e1e2e"),
	lipgloss.Color("#45475a"),
	lipgloss.Color("#6c7086"),
	lipgloss.Color("#f38ba8"),
)

var byName = map[string]Theme{
	"default":          Default,
	"catppuccin-mocha": CatppuccinMocha,
}

// Names lists the available theme names.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName returns the theme called name. An empty name is the default.
func ByName(name string) (Theme, error) {
	if name == "" {
		return Default, nil
	}
	t, ok := byName[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (available: %v)", name, Names())
	}
	return t, nil
}
