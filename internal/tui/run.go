package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/census-prep/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// Run opens the explorer on the terminal and blocks until the user quits
// or ctx is canceled.
func Run(ctx context.Context, summaries map[string][]model.CategorySummary, opts ...Option) error {
	p := tea.NewProgram(New(summaries, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("explorer failed: %w", err)
	}
	return nil
}
