// Package census aggregates the normalized census probability table.
package census

import (
	"cmp"
	"math"
	"slices"

	"github.com/Veraticus/census-prep/internal/model"
)

// Attributes lists the categorical census attributes in grouping order.
var Attributes = []string{
	model.ColLocation,
	model.ColMaritalStatus,
	model.ColEducation,
	model.ColGender,
	model.ColEmployment,
	model.ColIncome,
	model.ColAge,
}

type groupKey [7]string

func keyOf(r model.CensusRow) groupKey {
	return groupKey{r.Location, r.MaritalStatus, r.Education, r.Gender, r.Employment, r.Income, r.Age}
}

func (k groupKey) complete() bool {
	for _, v := range k {
		if v == "" {
			return false
		}
	}
	return true
}

// meanAcc accumulates a NaN-skipping mean for each probability column.
type meanAcc struct {
	sum   [4]float64
	count [4]int
	rows  int
}

func (a *meanAcc) add(p model.Probabilities) {
	a.rows++
	for i, v := range p.Values() {
		if math.IsNaN(v) {
			continue
		}
		a.sum[i] += v
		a.count[i]++
	}
}

func (a *meanAcc) mean() model.Probabilities {
	var out [4]float64
	for i := range out {
		if a.count[i] == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = a.sum[i] / float64(a.count[i])
	}
	return model.ProbabilitiesFrom(out)
}

// Aggregate collapses the census table to one row per distinct combination
// of the seven categorical attributes, averaging each probability over the
// group's non-missing values. A group whose values are all missing keeps a
// missing mean. Rows with an empty attribute are not grouped. The result is
// sorted by the attributes in Attributes order.
func Aggregate(rows []model.CensusRow) []model.CensusRow {
	groups := make(map[groupKey]*meanAcc)
	for _, r := range rows {
		k := keyOf(r)
		if !k.complete() {
			continue
		}
		acc, ok := groups[k]
		if !ok {
			acc = &meanAcc{}
			groups[k] = acc
		}
		acc.add(r.Probabilities)
	}

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeys)

	out := make([]model.CensusRow, 0, len(keys))
	for _, k := range keys {
		out = append(out, model.CensusRow{
			Location:      k[0],
			MaritalStatus: k[1],
			Education:     k[2],
			Gender:        k[3],
			Employment:    k[4],
			Income:        k[5],
			Age:           k[6],
			Probabilities: groups[k].mean(),
		})
	}
	return out
}

func compareKeys(a, b groupKey) int {
	for i := range a {
		if c := cmp.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}
