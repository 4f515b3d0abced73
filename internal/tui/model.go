// Package tui provides an interactive browser over per-attribute census
// summaries.
package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Veraticus/census-prep/internal/census"
	"github.com/Veraticus/census-prep/internal/model"
	"github.com/Veraticus/census-prep/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Sort columns, in the order the sort key cycles through them.
const (
	sortValue = iota
	sortRows
	sortMigration
	sortBirth
	sortMarriage
	sortDivorce
	sortColumns
)

var sortNames = [sortColumns]string{"VALUE", "ROWS",
	model.ColMigrationProb, model.ColBirthProb, model.ColMarriageProb, model.ColDivorceProb}

// Model holds the explorer state.
type Model struct {
	theme      themes.Theme
	summaries  map[string][]model.CategorySummary
	keymap     KeyMap
	help       help.Model
	attributes []string
	rows       []model.CategorySummary
	table      table.Model
	current    int
	sortColumn int
	width      int
	height     int
	descending bool
	quitting   bool
}

// Option configures the explorer.
type Option func(*Model)

// WithTheme sets the color scheme.
func WithTheme(t themes.Theme) Option {
	return func(m *Model) {
		m.theme = t
	}
}

// WithSize sets the initial terminal size, before the first resize message.
func WithSize(width, height int) Option {
	return func(m *Model) {
		m.width = width
		m.height = height
	}
}

// New creates an explorer over summaries keyed by attribute column.
// Attributes appear in pipeline order, followed by any others sorted by name.
func New(summaries map[string][]model.CategorySummary, opts ...Option) Model {
	m := Model{
		theme:     themes.Default,
		summaries: summaries,
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		width:     100,
		height:    24,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.attributes = orderAttributes(summaries)

	m.table = table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
	)
	s := table.DefaultStyles()
	s.Header = m.theme.Header
	s.Selected = m.theme.Selected
	m.table.SetStyles(s)

	m.resize()
	m.refresh()
	return m
}

func orderAttributes(summaries map[string][]model.CategorySummary) []string {
	known := make(map[string]bool, len(census.Attributes))
	var attrs []string
	for _, a := range census.Attributes {
		known[a] = true
		if _, ok := summaries[a]; ok {
			attrs = append(attrs, a)
		}
	}
	var extra []string
	for a := range summaries {
		if !known[a] {
			extra = append(extra, a)
		}
	}
	sort.Strings(extra)
	return append(attrs, extra...)
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
			return m, nil
		case key.Matches(msg, m.keymap.NextAttribute):
			m.selectAttribute(m.current + 1)
			return m, nil
		case key.Matches(msg, m.keymap.PrevAttribute):
			m.selectAttribute(m.current - 1)
			return m, nil
		case key.Matches(msg, m.keymap.Sort):
			m.sortColumn = (m.sortColumn + 1) % sortColumns
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keymap.Reverse):
			m.descending = !m.descending
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the explorer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if len(m.attributes) == 0 {
		return m.theme.StatusError.Render("No census summaries to show.") + "\n" + m.help.View(m.keymap)
	}

	tabs := make([]string, len(m.attributes))
	for i, a := range m.attributes {
		style := m.theme.Tab
		if i == m.current {
			style = m.theme.ActiveTab
		}
		tabs[i] = style.Render(a)
	}

	order := "ascending"
	if m.descending {
		order = "descending"
	}
	status := fmt.Sprintf("%d categories, sorted by %s (%s)", len(m.rows), sortNames[m.sortColumn], order)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("Census summary"),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		m.theme.Subtitle.Render(status),
		m.table.View(),
		m.help.View(m.keymap),
	)
}

// Attribute returns the attribute being shown.
func (m Model) Attribute() string {
	if len(m.attributes) == 0 {
		return ""
	}
	return m.attributes[m.current]
}

// Selected returns the summary under the cursor.
func (m Model) Selected() (model.CategorySummary, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return model.CategorySummary{}, false
	}
	return m.rows[i], true
}

func (m *Model) selectAttribute(i int) {
	n := len(m.attributes)
	if n == 0 {
		return
	}
	m.current = ((i % n) + n) % n
	m.refresh()
	m.table.SetCursor(0)
}

func (m *Model) columns() []table.Column {
	valueWidth := 24
	probWidth := max((m.width-valueWidth-8)/4, 10)
	cols := []table.Column{
		{Title: "VALUE", Width: valueWidth},
		{Title: "ROWS", Width: 6},
	}
	for _, c := range model.ProbabilityColumns {
		cols = append(cols, table.Column{Title: strings.TrimSuffix(c, "_PROB"), Width: probWidth})
	}
	return cols
}

func (m *Model) resize() {
	m.help.Width = m.width
	m.table.SetColumns(m.columns())
	// Title, tabs, status and help lines.
	reserved := 6
	if m.help.ShowAll {
		reserved += 3
	}
	m.table.SetHeight(max(m.height-reserved, 3))
}

func (m *Model) refresh() {
	if len(m.attributes) == 0 {
		m.rows = nil
		m.table.SetRows(nil)
		return
	}
	rows := append([]model.CategorySummary(nil), m.summaries[m.Attribute()]...)
	sortSummaries(rows, m.sortColumn, m.descending)
	m.rows = rows

	tableRows := make([]table.Row, len(rows))
	for i, r := range rows {
		row := table.Row{r.Value, fmt.Sprint(r.Rows)}
		for _, v := range r.Values() {
			row = append(row, formatProb(v))
		}
		tableRows[i] = row
	}
	m.table.SetRows(tableRows)
}

// sortSummaries orders rows by column. Missing probabilities sort last in
// either direction.
func sortSummaries(rows []model.CategorySummary, column int, descending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch column {
		case sortValue:
			if descending {
				return a.Value > b.Value
			}
			return a.Value < b.Value
		case sortRows:
			if descending {
				return a.Rows > b.Rows
			}
			return a.Rows < b.Rows
		default:
			x, y := a.Values()[column-sortMigration], b.Values()[column-sortMigration]
			switch {
			case math.IsNaN(x):
				return false
			case math.IsNaN(y):
				return true
			case descending:
				return x > y
			default:
				return x < y
			}
		}
	})
}

func formatProb(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", v)
}
