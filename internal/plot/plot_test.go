package plot

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/Veraticus/census-prep/internal/engine"
	"github.com/Veraticus/census-prep/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ engine.Plotter = (*BarPlotter)(nil)

func TestBarPlotter_Plot(t *testing.T) {
	var buf bytes.Buffer
	p := NewBarPlotter(&buf, WithWidth(10))

	summary := []model.CategorySummary{
		{Value: "F", Probabilities: model.Probabilities{Migration: 0.2, Birth: 0.1, Marriage: math.NaN(), Divorce: 0}},
		{Value: "M", Probabilities: model.Probabilities{Migration: 0.1, Birth: 0.1, Marriage: math.NaN(), Divorce: 0}},
	}
	require.NoError(t, p.Plot(context.Background(), model.ColGender, summary))

	out := buf.String()
	assert.Contains(t, out, "Mean probability by GENDER")
	for _, col := range model.ProbabilityColumns {
		assert.Contains(t, out, col)
	}
	assert.Contains(t, out, strings.Repeat("█", 10)+" 0.2000", "the peak fills the width")
	assert.Contains(t, out, strings.Repeat("█", 5)+strings.Repeat(" ", 5)+" 0.1000")
	assert.Contains(t, out, "n/a")
}

func TestBarPlotter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewBarPlotter(&buf).Plot(context.Background(), model.ColAge, nil))
	assert.Contains(t, buf.String(), "no data")
}

func TestBarPlotter_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := NewBarPlotter(&buf).Plot(ctx, model.ColAge, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.String())
}

func TestBar(t *testing.T) {
	p := NewBarPlotter(&bytes.Buffer{}, WithWidth(4))
	assert.Equal(t, "    ", p.bar(math.NaN(), 1))
	assert.Equal(t, "    ", p.bar(0.5, 0), "no peak means no bar")
	assert.Equal(t, "██  ", p.bar(0.5, 1))
	assert.Equal(t, "████", p.bar(2, 1))
}
