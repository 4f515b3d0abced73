package join

import (
	"math"

	"github.com/Veraticus/census-prep/internal/model"
)

// FillGaps replaces each missing probability with the mean of the
// non-missing values of the same column across rows. A column with no
// values at all has a NaN mean, so its gaps stay missing. The returned
// Probabilities hold the fill value used for each column. The input slice
// is not modified.
func FillGaps(rows []model.CustomerProbabilities) ([]model.CustomerProbabilities, model.Probabilities) {
	var (
		sum   [4]float64
		count [4]int
	)
	for _, r := range rows {
		for i, v := range r.Values() {
			if !math.IsNaN(v) {
				sum[i] += v
				count[i]++
			}
		}
	}

	var fill [4]float64
	for i := range fill {
		if count[i] == 0 {
			fill[i] = math.NaN()
			continue
		}
		fill[i] = sum[i] / float64(count[i])
	}

	out := make([]model.CustomerProbabilities, len(rows))
	for j, r := range rows {
		vals := r.Values()
		for i, v := range vals {
			if math.IsNaN(v) {
				vals[i] = fill[i]
			}
		}
		out[j] = model.CustomerProbabilities{CustomerID: r.CustomerID, Probabilities: model.ProbabilitiesFrom(vals)}
	}
	return out, model.ProbabilitiesFrom(fill)
}
