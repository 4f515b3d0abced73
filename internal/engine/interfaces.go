package engine

import (
	"context"

	"github.com/Veraticus/census-prep/internal/model"
)

// Plotter presents per-attribute probability summaries of the aggregated
// census table. It is invoked once per attribute in train mode.
type Plotter interface {
	Plot(ctx context.Context, attribute string, summary []model.CategorySummary) error
}

// PlotterFunc adapts a function to the Plotter interface.
type PlotterFunc func(ctx context.Context, attribute string, summary []model.CategorySummary) error

// Plot calls f.
func (f PlotterFunc) Plot(ctx context.Context, attribute string, summary []model.CategorySummary) error {
	return f(ctx, attribute, summary)
}
