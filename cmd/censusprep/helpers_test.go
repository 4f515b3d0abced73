package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/census-prep/internal/common"
	"github.com/Veraticus/census-prep/internal/engine"
	"github.com/Veraticus/census-prep/internal/join"
	"github.com/Veraticus/census-prep/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutputs(t *testing.T) {
	got, err := parseOutputs([]string{"migration=events/m.csv", "data/birth_events.csv", " divorce = d.csv "})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"migration":    "events/m.csv",
		"birth_events": "data/birth_events.csv",
		"divorce":      "d.csv",
	}, got)

	_, err = parseOutputs([]string{"=x.csv"})
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	_, err = parseOutputs([]string{"a=x.csv", "a=y.csv"})
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestReadTable(t *testing.T) {
	_, err := readTable("census", "")
	assert.ErrorIs(t, err, common.ErrMissingConfig)

	path := filepath.Join(t.TempDir(), "events.csv")
	require.NoError(t, os.WriteFile(path, []byte("CUSTOMER_ID,EVENT\n1,moved\n"), 0o600))
	tbl, err := readTable("events", path)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())

	_, err = readTable("events", filepath.Join(t.TempDir(), "missing.csv"))
	var ue *common.UserError
	assert.ErrorAs(t, err, &ue)
}

func TestNewRun(t *testing.T) {
	started := time.Now()
	res := &engine.Result{
		Mode: model.ModeTrain,
		Stats: engine.Stats{
			CensusRows:      8,
			AggregatedRows:  3,
			CustomerRows:    5,
			LatestCustomers: 4,
			FilledValues:    1,
			Coverage:        join.Coverage{Customers: 4, Matched: 3, Unmatched: []string{"x"}},
			OutputRowsAfter: map[string]int{"migration": 6},
		},
	}

	run := newRun(res, started, "c.csv", "u.csv")
	assert.Equal(t, model.ModeTrain, run.Mode)
	assert.Equal(t, 3, run.MatchedRows)
	assert.Equal(t, 1, run.UnmatchedRows)
	assert.Equal(t, "u.csv", run.CustomersPath)
	assert.Equal(t, 6, run.Outputs["migration"])
	assert.False(t, math.IsNaN(run.Coverage()))
}
