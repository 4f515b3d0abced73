package categories

import (
	"sort"

	"github.com/Veraticus/census-prep/internal/model"
)

// Vocabulary is a set of category values.
type Vocabulary map[string]struct{}

// Contains reports whether v is in the vocabulary.
func (v Vocabulary) Contains(value string) bool {
	_, ok := v[value]
	return ok
}

// Sorted returns the values in ascending order.
func (v Vocabulary) Sorted() []string {
	out := make([]string, 0, len(v))
	for value := range v {
		out = append(out, value)
	}
	sort.Strings(out)
	return out
}

// LocationVocabulary collects the distinct non-empty census locations.
func LocationVocabulary(rows []model.CensusRow) Vocabulary {
	vocab := make(Vocabulary)
	for _, r := range rows {
		if r.Location != "" {
			vocab[r.Location] = struct{}{}
		}
	}
	return vocab
}

// NormalizeCensus rewrites the census age, marital status and education
// attributes onto the shared vocabulary. The input slice is not modified.
func NormalizeCensus(rows []model.CensusRow, m Mappings) []model.CensusRow {
	out := make([]model.CensusRow, len(rows))
	for i, r := range rows {
		r.Age = m.CensusAge.Apply(r.Age)
		r.MaritalStatus = m.CensusMaritalStatus.Apply(r.MaritalStatus)
		r.Education = m.CensusEducation.Apply(r.Education)
		out[i] = r
	}
	return out
}

// NormalizeCustomers rewrites customer education and employment, bins
// annual income, and derives Location from the home state. States outside
// locations are resolved by m.LocationUnknown. The input slice is not
// modified.
func NormalizeCustomers(rows []model.CustomerRow, locations Vocabulary, m Mappings) []model.CustomerRow {
	out := make([]model.CustomerRow, len(rows))
	for i, r := range rows {
		r.EducationLevel = m.CustomerEducation.Apply(r.EducationLevel)
		r.EmploymentStatus = m.CustomerEmployment.Apply(r.EmploymentStatus)
		r.IncomeBand = m.Income.Band(r.AnnualIncome)
		if locations.Contains(r.HomeState) {
			r.Location = r.HomeState
		} else {
			r.Location = m.LocationUnknown.resolve(r.HomeState)
		}
		out[i] = r
	}
	return out
}
