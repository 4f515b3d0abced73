// Package engine runs the census preparation pipeline: it aligns the
// census and customer vocabularies, aggregates census probabilities,
// matches each customer's latest record and annotates the output tables.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/Veraticus/census-prep/internal/categories"
	"github.com/Veraticus/census-prep/internal/census"
	"github.com/Veraticus/census-prep/internal/customers"
	"github.com/Veraticus/census-prep/internal/join"
	"github.com/Veraticus/census-prep/internal/merge"
	"github.com/Veraticus/census-prep/internal/model"
)

// Engine holds the static configuration of the pipeline. It keeps no
// per-run state, so one Engine may serve concurrent runs.
type Engine struct {
	plotter  Plotter
	logger   *slog.Logger
	mappings categories.Mappings
}

// Option configures an Engine.
type Option func(*Engine)

// WithMappings replaces the default category mappings.
func WithMappings(m categories.Mappings) Option {
	return func(e *Engine) {
		e.mappings = m
	}
}

// WithPlotter sets the collaborator that receives train-mode summaries.
func WithPlotter(p Plotter) Option {
	return func(e *Engine) {
		e.plotter = p
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		mappings: categories.DefaultMappings(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.mappings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mappings: %w", err)
	}
	return e, nil
}

// Mappings returns the category mappings in use.
func (e *Engine) Mappings() categories.Mappings {
	return e.mappings
}

// Input is one pipeline invocation.
type Input struct {
	Census    *model.Table
	Customers *model.Table
	Outputs   map[string]*model.Table
	Mode      model.Mode
}

// Stats counts rows at each stage of a run.
type Stats struct {
	Coverage         join.Coverage
	CensusRows       int
	AggregatedRows   int
	CustomerRows     int
	LatestCustomers  int
	TiedCustomers    int
	ProbabilityRows  int
	FilledValues     int
	OutputRowsBefore map[string]int
	OutputRowsAfter  map[string]int
}

// Result is the outcome of a run.
type Result struct {
	Outputs       map[string]*model.Table
	Probabilities []model.CustomerProbabilities
	Census        []model.CensusRow
	FillValues    model.Probabilities
	Stats         Stats
	Mode          model.Mode
}

// Run executes the pipeline. The input tables are not modified.
func (e *Engine) Run(ctx context.Context, in Input) (*Result, error) {
	mode := model.ModeScore
	if in.Mode != "" {
		parsed, err := model.ParseMode(string(in.Mode))
		if err != nil {
			return nil, err
		}
		mode = parsed
	}

	rawCensus, err := model.CensusFromTable(in.Census)
	if err != nil {
		return nil, err
	}
	rawCustomers, err := model.CustomersFromTable(in.Customers)
	if err != nil {
		return nil, err
	}
	for _, name := range merge.Names(in.Outputs) {
		if _, err := in.Outputs[name].Require(name, model.ColCustomerID); err != nil {
			return nil, err
		}
	}

	stats := Stats{
		CensusRows:       len(rawCensus),
		CustomerRows:     len(rawCustomers),
		OutputRowsBefore: make(map[string]int, len(in.Outputs)),
		OutputRowsAfter:  make(map[string]int, len(in.Outputs)),
	}

	aggregated, err := e.PrepareCensus(ctx, rawCensus, mode)
	if err != nil {
		return nil, err
	}
	stats.AggregatedRows = len(aggregated)

	normCustomers := categories.NormalizeCustomers(rawCustomers, categories.LocationVocabulary(rawCensus), e.mappings)
	latest := customers.Latest(normCustomers)
	stats.LatestCustomers = len(latest)
	if tied := customers.Duplicates(latest); len(tied) > 0 {
		stats.TiedCustomers = len(tied)
		e.logger.Debug("Customers tied on latest effective date", "count", len(tied), "ids", tied)
	}

	matched, coverage := join.Match(latest, aggregated)
	stats.Coverage = coverage
	if !coverage.Complete() {
		e.logger.Warn("Customers without a census match were dropped",
			"dropped", len(coverage.Unmatched),
			"customers", coverage.Customers)
	}

	filled, fill := join.FillGaps(matched)
	stats.ProbabilityRows = len(filled)
	stats.FilledValues = countGaps(matched)
	if fill.HasMissing() && len(filled) > 0 {
		e.logger.Warn("Probability column has no values to fill from", "fill", fill)
	}

	outputs, err := merge.Outputs(in.Outputs, filled)
	if err != nil {
		return nil, err
	}
	for name, t := range in.Outputs {
		stats.OutputRowsBefore[name] = t.Len()
		stats.OutputRowsAfter[name] = outputs[name].Len()
	}

	e.logger.Debug("Census preparation complete",
		"mode", mode,
		"census_rows", stats.CensusRows,
		"aggregated_rows", stats.AggregatedRows,
		"customers", stats.LatestCustomers,
		"matched", coverage.Matched,
		"filled_values", stats.FilledValues,
		"outputs", len(outputs))

	return &Result{
		Outputs:       outputs,
		Probabilities: filled,
		Census:        aggregated,
		FillValues:    fill,
		Stats:         stats,
		Mode:          mode,
	}, nil
}

// PrepareCensus normalizes and aggregates census rows, and in train mode
// hands the per-attribute summaries to the plotter.
func (e *Engine) PrepareCensus(ctx context.Context, rows []model.CensusRow, mode model.Mode) ([]model.CensusRow, error) {
	aggregated := census.Aggregate(categories.NormalizeCensus(rows, e.mappings))
	e.logger.Debug("Aggregated census table", "rows", len(rows), "groups", len(aggregated))

	if mode != model.ModeTrain || e.plotter == nil {
		return aggregated, nil
	}
	for _, attr := range census.Attributes {
		summary, err := census.Summarize(aggregated, attr)
		if err != nil {
			return nil, err
		}
		if err := e.plotter.Plot(ctx, attr, summary); err != nil {
			return nil, fmt.Errorf("plotting %s: %w", attr, err)
		}
	}
	return aggregated, nil
}

func countGaps(rows []model.CustomerProbabilities) int {
	n := 0
	for _, r := range rows {
		for _, v := range r.Values() {
			if math.IsNaN(v) {
				n++
			}
		}
	}
	return n
}
