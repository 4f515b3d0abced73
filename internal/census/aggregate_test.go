package census

import (
	"math"
	"testing"

	"github.com/Veraticus/census-prep/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(loc, age string, p model.Probabilities) model.CensusRow {
	return model.CensusRow{
		Location:      loc,
		MaritalStatus: "Single",
		Education:     "University",
		Gender:        "F",
		Employment:    "Employed",
		Income:        "35k-75k",
		Age:           age,
		Probabilities: p,
	}
}

func probs(m, b, ma, d float64) model.Probabilities {
	return model.Probabilities{Migration: m, Birth: b, Marriage: ma, Divorce: d}
}

func TestAggregate_AveragesDuplicates(t *testing.T) {
	rows := []model.CensusRow{
		row("CA", "30 to 40", probs(0.1, 0.2, 0.3, 0.4)),
		row("CA", "30 to 40", probs(0.3, 0.4, 0.5, 0.6)),
		row("NY", "30 to 40", probs(0.5, 0.5, 0.5, 0.5)),
	}

	got := Aggregate(rows)
	require.Len(t, got, 2)

	assert.Equal(t, "CA", got[0].Location)
	assert.InDelta(t, 0.2, got[0].Migration, 1e-12)
	assert.InDelta(t, 0.3, got[0].Birth, 1e-12)
	assert.InDelta(t, 0.4, got[0].Marriage, 1e-12)
	assert.InDelta(t, 0.5, got[0].Divorce, 1e-12)
	assert.Equal(t, "NY", got[1].Location)
	assert.InDelta(t, 0.5, got[1].Migration, 1e-12)
}

func TestAggregate_OneRowPerKey(t *testing.T) {
	var rows []model.CensusRow
	for _, loc := range []string{"CA", "NY", "TX"} {
		for _, age := range []string{"18-24", "65 and over"} {
			for i := 0; i < 3; i++ {
				rows = append(rows, row(loc, age, probs(float64(i)/10, 0, 0, 0)))
			}
		}
	}

	got := Aggregate(rows)
	require.Len(t, got, 6)

	seen := make(map[groupKey]bool)
	for _, r := range got {
		k := keyOf(r)
		assert.False(t, seen[k], "duplicate key %v", k)
		seen[k] = true
		assert.InDelta(t, 0.1, r.Migration, 1e-12)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	rows := []model.CensusRow{
		row("NY", "18-24", probs(0.1, 0.2, 0.3, 0.4)),
		row("CA", "18-24", probs(0.3, 0.2, 0.1, 0.0)),
		row("CA", "18-24", probs(0.5, 0.2, 0.1, 0.2)),
		row("CA", "65 and over", probs(0.5, math.NaN(), 0.1, 0.2)),
	}

	once := Aggregate(rows)
	twice := Aggregate(once)
	require.Len(t, twice, len(once))
	for i := range once {
		assert.Equal(t, keyOf(once[i]), keyOf(twice[i]))
		for j, v := range once[i].Values() {
			w := twice[i].Values()[j]
			if math.IsNaN(v) {
				assert.True(t, math.IsNaN(w))
				continue
			}
			assert.InDelta(t, v, w, 1e-15)
		}
	}
}

func TestAggregate_MissingValues(t *testing.T) {
	nan := math.NaN()
	rows := []model.CensusRow{
		row("CA", "18-24", probs(nan, 0.2, nan, 0.4)),
		row("CA", "18-24", probs(0.6, nan, nan, 0.2)),
	}

	got := Aggregate(rows)
	require.Len(t, got, 1)
	assert.InDelta(t, 0.6, got[0].Migration, 1e-12, "mean skips missing values")
	assert.InDelta(t, 0.2, got[0].Birth, 1e-12)
	assert.True(t, math.IsNaN(got[0].Marriage), "all-missing group stays missing")
	assert.InDelta(t, 0.3, got[0].Divorce, 1e-12)
}

func TestAggregate_SkipsIncompleteKeys(t *testing.T) {
	rows := []model.CensusRow{
		row("", "18-24", probs(0.1, 0.1, 0.1, 0.1)),
		row("CA", "18-24", probs(0.2, 0.2, 0.2, 0.2)),
	}
	got := Aggregate(rows)
	require.Len(t, got, 1)
	assert.Equal(t, "CA", got[0].Location)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
	assert.Empty(t, Aggregate([]model.CensusRow{}))
}

func TestAggregate_SortedByKey(t *testing.T) {
	rows := []model.CensusRow{
		row("TX", "18-24", probs(0, 0, 0, 0)),
		row("CA", "65 and over", probs(0, 0, 0, 0)),
		row("CA", "18-24", probs(0, 0, 0, 0)),
	}
	got := Aggregate(rows)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"CA/18-24", "CA/65 and over", "TX/18-24"}, []string{
		got[0].Location + "/" + got[0].Age,
		got[1].Location + "/" + got[1].Age,
		got[2].Location + "/" + got[2].Age,
	})
}
