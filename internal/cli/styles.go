// Package cli renders censusprep terminal output with lipgloss.
package cli

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Palette.
var (
	PrimaryColor = lipgloss.Color("#5B8DEF")
	GoodColor    = lipgloss.Color("#4ECDC4")
	WarnColor    = lipgloss.Color("#FFE66D")
	BadColor     = lipgloss.Color("#FF6B6B")
	NoteColor    = lipgloss.Color("#95E1D3")
	MutedColor   = lipgloss.Color("#666666")
	RuleColor    = lipgloss.Color("#333333")
)

var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).MarginBottom(1)
	GoodStyle  = lipgloss.NewStyle().Foreground(GoodColor)
	WarnStyle  = lipgloss.NewStyle().Foreground(WarnColor)
	BadStyle   = lipgloss.NewStyle().Foreground(BadColor)
	NoteStyle  = lipgloss.NewStyle().Foreground(NoteColor)
	MutedStyle = lipgloss.NewStyle().Foreground(MutedColor)
	BoldStyle  = lipgloss.NewStyle().Bold(true)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(RuleColor).
			Padding(1, 2)

	HeaderCellStyle = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(RuleColor)

	CellStyle = lipgloss.NewStyle().PaddingRight(2)
)

// Coverage below these shares is flagged in summaries.
const (
	coverageWarn = 0.9
	coverageBad  = 0.5
)

// CoverageStyle picks a color for a matched share of customers.
func CoverageStyle(ratio float64) lipgloss.Style {
	switch {
	case math.IsNaN(ratio):
		return MutedStyle
	case ratio < coverageBad:
		return BadStyle
	case ratio < coverageWarn:
		return WarnStyle
	default:
		return GoodStyle
	}
}

// FormatSuccess prefixes message with a check mark.
func FormatSuccess(message string) string {
	return GoodStyle.Render("✓ " + message)
}

// FormatError prefixes message with a cross.
func FormatError(message string) string {
	return BadStyle.Render("✗ " + message)
}

// FormatWarning prefixes message with a warning sign.
func FormatWarning(message string) string {
	return WarnStyle.Render("⚠️ " + message)
}

// FormatInfo prefixes message with an info sign.
func FormatInfo(message string) string {
	return NoteStyle.Render("ℹ️ " + message)
}

// FormatTitle renders a section heading.
func FormatTitle(title string) string {
	return TitleStyle.Render("📊 " + title)
}

// RenderBox draws content in a rounded panel under a bold title.
func RenderBox(title, content string) string {
	return PanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.UnsetMargins().Render(title),
		content,
	))
}
