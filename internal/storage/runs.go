package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Veraticus/census-prep/internal/common"
	"github.com/Veraticus/census-prep/internal/model"
	"github.com/google/uuid"
)

const runColumns = `id, mode, started_at, census_path, customers_path,
	census_rows, aggregated_rows, customer_rows, latest_customers,
	matched_rows, unmatched_rows, filled_values`

// SaveRun stores a run and the per-customer probabilities it produced in
// one transaction. A run without an ID is assigned a new UUID, which is
// written back to run.ID.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *model.Run, probs []model.CustomerProbabilities) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}
	if err := validateProbabilities(probs); err != nil {
		return err
	}

	id := run.ID
	if id == "" {
		id = uuid.New().String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `INSERT INTO runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, string(run.Mode), run.StartedAt.UTC(), run.CensusPath, run.CustomersPath,
		run.CensusRows, run.AggregatedRows, run.CustomerRows, run.LatestCustomers,
		run.MatchedRows, run.UnmatchedRows, run.FilledValues)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO customer_probabilities
		(run_id, position, customer_id, migration_prob, birth_prob, marriage_prob, divorce_prob)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, p := range probs {
		if _, err := stmt.ExecContext(ctx, id, i, p.CustomerID,
			nullable(p.Migration), nullable(p.Birth), nullable(p.Marriage), nullable(p.Divorce)); err != nil {
			return fmt.Errorf("failed to insert probabilities for %s: %w", p.CustomerID, err)
		}
	}

	for name, rows := range run.Outputs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_outputs (run_id, name, rows_after) VALUES (?, ?, ?)`,
			id, name, rows); err != nil {
			return fmt.Errorf("failed to insert output %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	run.ID = id
	return nil
}

// ListRuns returns the most recent runs first. A limit of 0 or less
// returns every run.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []model.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	for i := range runs {
		if runs[i].Outputs, err = s.runOutputs(ctx, runs[i].ID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// GetRun returns one run by ID, or common.ErrNotFound.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (*model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if run.Outputs, err = s.runOutputs(ctx, id); err != nil {
		return nil, err
	}
	return run, nil
}

// GetRunProbabilities returns the probabilities recorded for a run in the
// order they were saved. Missing values come back as NaN.
func (s *SQLiteStorage) GetRunProbabilities(ctx context.Context, id string) ([]model.CustomerProbabilities, error) {
	if _, err := s.GetRun(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT customer_id, migration_prob, birth_prob, marriage_prob, divorce_prob
		FROM customer_probabilities WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query probabilities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.CustomerProbabilities
	for rows.Next() {
		var (
			p    model.CustomerProbabilities
			vals [4]sql.NullFloat64
		)
		if err := rows.Scan(&p.CustomerID, &vals[0], &vals[1], &vals[2], &vals[3]); err != nil {
			return nil, fmt.Errorf("failed to scan probabilities: %w", err)
		}
		var probs [4]float64
		for i, v := range vals {
			probs[i] = math.NaN()
			if v.Valid {
				probs[i] = v.Float64
			}
		}
		p.Probabilities = model.ProbabilitiesFrom(probs)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating probabilities: %w", err)
	}
	return out, nil
}

// DeleteRun removes a run and everything recorded with it.
func (s *SQLiteStorage) DeleteRun(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("run %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStorage) runOutputs(ctx context.Context, id string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, rows_after FROM run_outputs WHERE run_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query outputs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	outputs := make(map[string]int)
	for rows.Next() {
		var (
			name string
			n    int
		)
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("failed to scan output: %w", err)
		}
		outputs[name] = n
	}
	return outputs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*model.Run, error) {
	var (
		run           model.Run
		mode          string
		startedAt     time.Time
		censusPath    sql.NullString
		customersPath sql.NullString
	)
	err := row.Scan(&run.ID, &mode, &startedAt, &censusPath, &customersPath,
		&run.CensusRows, &run.AggregatedRows, &run.CustomerRows, &run.LatestCustomers,
		&run.MatchedRows, &run.UnmatchedRows, &run.FilledValues)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	run.Mode = model.Mode(mode)
	run.StartedAt = startedAt
	run.CensusPath = censusPath.String
	run.CustomersPath = customersPath.String
	return &run, nil
}

func nullable(v float64) sql.NullFloat64 {
	if math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
