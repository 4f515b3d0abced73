// Package join matches customers to aggregated census probabilities and
// fills the gaps left in the result.
package join

import (
	"math"

	"github.com/Veraticus/census-prep/internal/model"
)

// Key is the seven-attribute tuple both tables are matched on:
// age, marital status, education, employment, location, income, gender.
type Key [7]string

// CensusKey builds the key of an aggregated census row.
func CensusKey(r model.CensusRow) Key {
	return Key{r.Age, r.MaritalStatus, r.Education, r.Employment, r.Location, r.Income, r.Gender}
}

// CustomerKey builds the key of a normalized customer row.
func CustomerKey(r model.CustomerRow) Key {
	return Key{r.AgeRange, r.MaritalStatus, r.EducationLevel, r.EmploymentStatus, r.Location, r.IncomeBand, r.Gender}
}

// Coverage describes how many customer rows found a census match.
type Coverage struct {
	Unmatched []string
	Customers int
	Matched   int
}

// Complete reports whether every customer row matched.
func (c Coverage) Complete() bool {
	return c.Matched == c.Customers
}

// Ratio returns the matched share of customer rows, or NaN for no customers.
func (c Coverage) Ratio() float64 {
	if c.Customers == 0 {
		return math.NaN()
	}
	return float64(c.Matched) / float64(c.Customers)
}

// Match inner-joins customers with census rows on every Key attribute and
// projects the result to customer id plus probabilities. Customers without
// a matching census row are dropped and listed in the coverage. A customer
// matches every census row sharing its key, so duplicate census keys would
// repeat the customer. Customer order is preserved.
func Match(customers []model.CustomerRow, census []model.CensusRow) ([]model.CustomerProbabilities, Coverage) {
	index := make(map[Key][]model.Probabilities, len(census))
	for _, r := range census {
		k := CensusKey(r)
		index[k] = append(index[k], r.Probabilities)
	}

	cov := Coverage{Customers: len(customers)}
	out := make([]model.CustomerProbabilities, 0, len(customers))
	for _, c := range customers {
		matches, ok := index[CustomerKey(c)]
		if !ok {
			cov.Unmatched = append(cov.Unmatched, c.CustomerID)
			continue
		}
		cov.Matched++
		for _, p := range matches {
			out = append(out, model.CustomerProbabilities{CustomerID: c.CustomerID, Probabilities: p})
		}
	}
	return out, cov
}
