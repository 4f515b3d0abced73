package census

import (
	"fmt"
	"slices"

	"github.com/Veraticus/census-prep/internal/model"
)

// Summarize averages the probabilities of aggregated census rows per value
// of one attribute, sorted by value.
func Summarize(rows []model.CensusRow, attribute string) ([]model.CategorySummary, error) {
	if !slices.Contains(Attributes, attribute) {
		return nil, fmt.Errorf("unknown census attribute %q", attribute)
	}

	groups := make(map[string]*meanAcc)
	for _, r := range rows {
		v, _ := r.Attribute(attribute)
		acc, ok := groups[v]
		if !ok {
			acc = &meanAcc{}
			groups[v] = acc
		}
		acc.add(r.Probabilities)
	}

	values := make([]string, 0, len(groups))
	for v := range groups {
		values = append(values, v)
	}
	slices.Sort(values)

	out := make([]model.CategorySummary, 0, len(values))
	for _, v := range values {
		out = append(out, model.CategorySummary{
			Value:         v,
			Probabilities: groups[v].mean(),
			Rows:          groups[v].rows,
		})
	}
	return out, nil
}

// SummarizeAll returns a summary for every attribute in Attributes.
func SummarizeAll(rows []model.CensusRow) map[string][]model.CategorySummary {
	out := make(map[string][]model.CategorySummary, len(Attributes))
	for _, attr := range Attributes {
		// Attributes are always known here.
		s, _ := Summarize(rows, attr)
		out[attr] = s
	}
	return out
}
