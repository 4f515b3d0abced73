package cli

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/census-prep/internal/engine"
	"github.com/Veraticus/census-prep/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// RenderSummary renders the outcome of a pipeline run.
func RenderSummary(res *engine.Result, written map[string]string) string {
	s := res.Stats
	var b strings.Builder

	fmt.Fprintf(&b, "Mode:              %s\n", res.Mode)
	fmt.Fprintf(&b, "Census rows:       %d (%d groups)\n", s.CensusRows, s.AggregatedRows)
	fmt.Fprintf(&b, "Customers:         %d rows, %d latest\n", s.CustomerRows, s.LatestCustomers)
	ratio := s.Coverage.Ratio()
	fmt.Fprintf(&b, "Matched:           %d (%s)\n", s.Coverage.Matched, CoverageStyle(ratio).Render(formatRatio(ratio)))
	if n := len(s.Coverage.Unmatched); n > 0 {
		b.WriteString(WarnStyle.Render(fmt.Sprintf("Unmatched:         %d", n)))
		b.WriteString("\n")
	}
	if s.FilledValues > 0 {
		fmt.Fprintf(&b, "Filled values:     %d\n", s.FilledValues)
	}

	if len(res.Outputs) > 0 {
		b.WriteString("\n")
		b.WriteString(BoldStyle.Render("Outputs"))
		b.WriteString("\n")
		for _, name := range sortedKeys(res.Outputs) {
			line := fmt.Sprintf("  %-16s %d -> %d rows", name, s.OutputRowsBefore[name], s.OutputRowsAfter[name])
			if path, ok := written[name]; ok {
				line += MutedStyle.Render("  " + path)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return RenderBox("Census preparation", strings.TrimRight(b.String(), "\n"))
}

// RenderRuns renders run history as a table, newest first.
func RenderRuns(runs []model.Run) string {
	if len(runs) == 0 {
		return MutedStyle.Render("No runs recorded.")
	}

	headers := []string{"ID", "STARTED", "MODE", "CUSTOMERS", "MATCHED", "COVERAGE"}
	rows := make([][]string, len(runs))
	for i, r := range runs {
		rows[i] = []string{
			r.ID,
			r.StartedAt.Local().Format(time.DateTime),
			string(r.Mode),
			fmt.Sprint(r.LatestCustomers),
			fmt.Sprint(r.MatchedRows),
			formatRatio(r.Coverage()),
		}
	}
	return renderTable(headers, rows)
}

// RenderRun renders one run with its first limit probability rows.
func RenderRun(run *model.Run, probs []model.CustomerProbabilities, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run:        %s\n", run.ID)
	fmt.Fprintf(&b, "Started:    %s\n", run.StartedAt.Local().Format(time.DateTime))
	fmt.Fprintf(&b, "Mode:       %s\n", run.Mode)
	if run.CensusPath != "" {
		fmt.Fprintf(&b, "Census:     %s (%d rows, %d groups)\n", run.CensusPath, run.CensusRows, run.AggregatedRows)
	}
	if run.CustomersPath != "" {
		fmt.Fprintf(&b, "Customers:  %s (%d rows)\n", run.CustomersPath, run.CustomerRows)
	}
	fmt.Fprintf(&b, "Coverage:   %d of %d (%s)\n", run.MatchedRows, run.LatestCustomers, formatRatio(run.Coverage()))
	for _, name := range sortedKeys(run.Outputs) {
		fmt.Fprintf(&b, "Output:     %s (%d rows)\n", name, run.Outputs[name])
	}

	if len(probs) > 0 {
		b.WriteString("\n")
		headers := append([]string{model.ColCustomerID}, model.ProbabilityColumns...)
		n := len(probs)
		if limit > 0 && n > limit {
			n = limit
		}
		rows := make([][]string, 0, n)
		for _, p := range probs[:n] {
			row := []string{p.CustomerID}
			for _, v := range p.Values() {
				row = append(row, formatProb(v))
			}
			rows = append(rows, row)
		}
		b.WriteString(renderTable(headers, rows))
		if n < len(probs) {
			b.WriteString("\n")
			b.WriteString(MutedStyle.Render(fmt.Sprintf("... %d more", len(probs)-n)))
		}
	}
	return b.String()
}

func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	render := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = CellStyle.Render(c + strings.Repeat(" ", widths[i]-lipgloss.Width(c)))
		}
		return style.Render(strings.Join(parts, ""))
	}

	lines := []string{render(headers, HeaderCellStyle)}
	for _, row := range rows {
		lines = append(lines, render(row, lipgloss.NewStyle()))
	}
	return strings.Join(lines, "\n")
}

func formatRatio(r float64) string {
	if math.IsNaN(r) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", r*100)
}

func formatProb(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.4f", v)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
