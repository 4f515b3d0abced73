package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_CloneIsIndependent(t *testing.T) {
	orig := NewTable("A", "B").AddRow("x", 1).AddRow("y", 2)
	clone := orig.Clone()

	clone.Rows[0][0] = "changed"
	clone.Columns[1] = "C"
	clone.AddRow("z", 3)

	assert.Equal(t, "x", orig.Rows[0][0])
	assert.Equal(t, "B", orig.Columns[1])
	assert.Equal(t, 2, orig.Len())
}

func TestTable_Require(t *testing.T) {
	tbl := NewTable("A", "B", "C")

	idx, err := tbl.Require("test", "C", "A")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0}, idx)

	_, err = tbl.Require("test", "A", "D")
	require.ErrorIs(t, err, ErrMissingColumn)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "D", schemaErr.Column)
	assert.Equal(t, "test table: column D: missing required column", err.Error())

	var nilTable *Table
	_, err = nilTable.Require("test", "A")
	assert.ErrorIs(t, err, ErrNilTable)
}

func TestString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"abc", "abc"},
		{1001, "1001"},
		{int64(1001), "1001"},
		{1001.0, "1001"},
		{0.25, "0.25"},
		{math.NaN(), ""},
		{time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC), "2020-06-01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, String(tt.in), "String(%v)", tt.in)
	}
}

func TestFloat(t *testing.T) {
	v, err := Float("  0.5 ")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-12)

	for _, missing := range []any{nil, "", "NaN", "null"} {
		v, err := Float(missing)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(v), "Float(%v) should be NaN", missing)
	}

	_, err = Float("abc")
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = Float(true)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestDate(t *testing.T) {
	want := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, in := range []any{"2020-06-01", "2020-06-01T00:00:00Z", "2020-06-01 00:00:00", "6/1/2020", want} {
		got, err := Date(in)
		require.NoError(t, err, "Date(%v)", in)
		assert.True(t, want.Equal(got), "Date(%v) = %v", in, got)
	}

	_, err := Date("June first")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("TRAIN")
	require.NoError(t, err)
	assert.Equal(t, ModeTrain, m)

	m, err = ParseMode("score")
	require.NoError(t, err)
	assert.Equal(t, ModeScore, m)

	_, err = ParseMode("predict")
	assert.ErrorIs(t, err, ErrInvalidMode)
}
