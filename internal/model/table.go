// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Table is a named-column table of untyped cells.
// Cells read from CSV are strings; probability cells appended by the
// pipeline are float64, with NaN standing for a missing value.
type Table struct {
	Columns []string
	Rows    [][]any
}

// NewTable creates an empty table with the given columns.
func NewTable(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// AddRow appends a row. Missing trailing cells are left nil.
func (t *Table) AddRow(cells ...any) *Table {
	row := make([]any, len(t.Columns))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Clone returns a deep copy of the table's column list and row slices.
// Cell values are copied by assignment.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := &Table{
		Columns: make([]string, len(t.Columns)),
		Rows:    make([][]any, len(t.Rows)),
	}
	copy(out.Columns, t.Columns)
	for i, row := range t.Rows {
		out.Rows[i] = make([]any, len(row))
		copy(out.Rows[i], row)
	}
	return out
}

// ColumnIndex returns the position of a column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Require returns the positions of the named columns in order, or a
// SchemaError for the first column the table lacks.
func (t *Table) Require(table string, columns ...string) ([]int, error) {
	if t == nil {
		return nil, &SchemaError{Table: table, Err: ErrNilTable}
	}
	idx := make([]int, len(columns))
	for i, col := range columns {
		pos := t.ColumnIndex(col)
		if pos < 0 {
			return nil, &SchemaError{Table: table, Column: col, Err: ErrMissingColumn}
		}
		idx[i] = pos
	}
	return idx, nil
}

// Cell returns the value at row r, column c, or nil if the row is short.
func (t *Table) Cell(r, c int) any {
	row := t.Rows[r]
	if c >= len(row) {
		return nil
	}
	return row[c]
}

// String renders a cell as text. Numbers use the shortest exact form, so
// the integer 1001, the float 1001 and the string "1001" all render alike.
func String(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if math.IsNaN(x) {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return String(float64(x))
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case time.Time:
		return x.Format(time.DateOnly)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// text reads a categorical cell with surrounding whitespace removed.
func text(v any) string {
	return strings.TrimSpace(String(v))
}

// Float reads a numeric cell. Empty cells and nil read as NaN.
func Float(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return math.NaN(), nil
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "null") {
			return math.NaN(), nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, x)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: unsupported numeric type %T", ErrInvalidValue, v)
	}
}

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
	"1/2/2006",
}

// Date reads a date cell from a time.Time or one of the accepted layouts.
func Date(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q is not a date", ErrInvalidValue, x)
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported date type %T", ErrInvalidValue, v)
	}
}
