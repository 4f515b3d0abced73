// Package plot renders per-attribute census summaries as terminal bar
// charts.
package plot

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/Veraticus/census-prep/internal/cli"
	"github.com/Veraticus/census-prep/internal/model"
	"github.com/charmbracelet/lipgloss"
)

const defaultWidth = 40

// BarPlotter writes one chart per probability column for each attribute
// it is given. It is safe for concurrent use.
type BarPlotter struct {
	w        io.Writer
	barStyle lipgloss.Style
	width    int
	mu       sync.Mutex
}

// Option configures a BarPlotter.
type Option func(*BarPlotter)

// WithWidth sets the width in cells of the longest bar.
func WithWidth(width int) Option {
	return func(p *BarPlotter) {
		if width > 0 {
			p.width = width
		}
	}
}

// NewBarPlotter creates a plotter writing to w.
func NewBarPlotter(w io.Writer, opts ...Option) *BarPlotter {
	p := &BarPlotter{
		w:        w,
		width:    defaultWidth,
		barStyle: lipgloss.NewStyle().Foreground(cli.PrimaryColor),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plot renders summary for attribute.
func (p *BarPlotter) Plot(ctx context.Context, attribute string, summary []model.CategorySummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	charts := make([]string, 0, len(model.ProbabilityColumns))
	for i, col := range model.ProbabilityColumns {
		charts = append(charts, p.chart(col, summary, i))
	}
	out := cli.RenderBox("Mean probability by "+attribute,
		strings.Join(charts, "\n\n"))

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := fmt.Fprintln(p.w, out); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}

func (p *BarPlotter) chart(column string, summary []model.CategorySummary, idx int) string {
	labelWidth := 0
	peak := 0.0
	for _, s := range summary {
		labelWidth = max(labelWidth, lipgloss.Width(s.Value))
		if v := s.Values()[idx]; !math.IsNaN(v) {
			peak = math.Max(peak, v)
		}
	}

	lines := []string{cli.BoldStyle.Render(column)}
	if len(summary) == 0 {
		return lines[0] + "\n" + cli.MutedStyle.Render("  no data")
	}
	for _, s := range summary {
		v := s.Values()[idx]
		label := s.Value + strings.Repeat(" ", labelWidth-lipgloss.Width(s.Value))
		lines = append(lines, fmt.Sprintf("  %s %s %s", label, p.bar(v, peak), formatValue(v)))
	}
	return strings.Join(lines, "\n")
}

// bar returns the bar for v scaled so that peak fills the full width.
func (p *BarPlotter) bar(v, peak float64) string {
	if math.IsNaN(v) {
		return strings.Repeat(" ", p.width)
	}
	n := 0
	if peak > 0 {
		n = int(math.Round(v / peak * float64(p.width)))
	}
	n = min(max(n, 0), p.width)
	return p.barStyle.Render(strings.Repeat("█", n)) + strings.Repeat(" ", p.width-n)
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return cli.MutedStyle.Render("n/a")
	}
	return fmt.Sprintf("%.4f", v)
}
