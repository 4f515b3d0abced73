// Package merge annotates named output tables with per-customer probabilities.
package merge

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/census-prep/internal/model"
)

// Outputs joins every named table with the per-customer probabilities on
// CUSTOMER_ID and returns new tables carrying the four probability columns
// in place of CUSTOMER_ID.
//
// The join is inner: a row whose customer has no probabilities is dropped,
// and a row whose customer has several probability rows is repeated once
// per probability row. Row order follows the output table. The caller's
// tables are not modified.
func Outputs(tables map[string]*model.Table, probs []model.CustomerProbabilities) (map[string]*model.Table, error) {
	index := make(map[string][]model.Probabilities, len(probs))
	for _, p := range probs {
		index[p.CustomerID] = append(index[p.CustomerID], p.Probabilities)
	}

	out := make(map[string]*model.Table, len(tables))
	for name, t := range tables {
		merged, err := Table(name, t, index)
		if err != nil {
			return nil, err
		}
		out[name] = merged
	}
	return out, nil
}

// Table merges a single output table against an index of probabilities by
// customer id.
func Table(name string, t *model.Table, index map[string][]model.Probabilities) (*model.Table, error) {
	idx, err := t.Require(name, model.ColCustomerID)
	if err != nil {
		return nil, err
	}
	idCol := idx[0]
	for _, col := range model.ProbabilityColumns {
		if t.ColumnIndex(col) >= 0 {
			return nil, &model.SchemaError{Table: name, Column: col, Err: model.ErrColumnExists}
		}
	}

	columns := make([]string, 0, len(t.Columns)-1+len(model.ProbabilityColumns))
	for i, c := range t.Columns {
		if i != idCol {
			columns = append(columns, c)
		}
	}
	columns = append(columns, model.ProbabilityColumns...)

	merged := &model.Table{Columns: columns}
	for r, row := range t.Rows {
		matches := index[strings.TrimSpace(model.String(t.Cell(r, idCol)))]
		for _, p := range matches {
			cells := make([]any, 0, len(columns))
			for i := range t.Columns {
				if i == idCol {
					continue
				}
				if i < len(row) {
					cells = append(cells, row[i])
				} else {
					cells = append(cells, nil)
				}
			}
			for _, v := range p.Values() {
				cells = append(cells, v)
			}
			merged.Rows = append(merged.Rows, cells)
		}
	}
	return merged, nil
}

// Names returns the table names in sorted order.
func Names(tables map[string]*model.Table) []string {
	names := make([]string, 0, len(tables))
	for n := range tables {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Describe summarises row counts before and after a merge.
func Describe(before, after map[string]*model.Table) []string {
	lines := make([]string, 0, len(after))
	for _, n := range Names(after) {
		lines = append(lines, fmt.Sprintf("%s: %d -> %d rows", n, before[n].Len(), after[n].Len()))
	}
	return lines
}
