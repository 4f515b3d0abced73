package model

import (
	"errors"
	"fmt"
)

// Schema errors.
var (
	ErrNilTable      = errors.New("table cannot be nil")
	ErrMissingColumn = errors.New("missing required column")
	ErrInvalidValue  = errors.New("invalid value")
	ErrColumnExists  = errors.New("column already exists")
)

// SchemaError reports a malformed input table.
type SchemaError struct {
	Err    error
	Table  string
	Column string
	Row    int // 1-based data row, 0 when the error is not tied to a row
}

func (e *SchemaError) Error() string {
	switch {
	case e.Column != "" && e.Row > 0:
		return fmt.Sprintf("%s table: column %s, row %d: %v", e.Table, e.Column, e.Row, e.Err)
	case e.Column != "":
		return fmt.Sprintf("%s table: column %s: %v", e.Table, e.Column, e.Err)
	default:
		return fmt.Sprintf("%s table: %v", e.Table, e.Err)
	}
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
