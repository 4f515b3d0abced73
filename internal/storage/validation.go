// Package storage persists censusprep run history in SQLite.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/census-prep/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidRun   = errors.New("invalid run")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateRun(run *model.Run) error {
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	if _, err := model.ParseMode(string(run.Mode)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRun, err)
	}
	if run.StartedAt.IsZero() {
		return fmt.Errorf("%w: start time is required", ErrInvalidRun)
	}
	counts := []int{
		run.CensusRows, run.AggregatedRows, run.CustomerRows,
		run.LatestCustomers, run.MatchedRows, run.UnmatchedRows, run.FilledValues,
	}
	for _, n := range counts {
		if n < 0 {
			return fmt.Errorf("%w: negative row count", ErrInvalidRun)
		}
	}
	return nil
}

func validateProbabilities(rows []model.CustomerProbabilities) error {
	for i, r := range rows {
		if strings.TrimSpace(r.CustomerID) == "" {
			return fmt.Errorf("%w: probability row %d has no customer id", ErrInvalidRun, i)
		}
	}
	return nil
}
