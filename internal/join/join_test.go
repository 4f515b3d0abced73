package join

import (
	"math"
	"testing"

	"github.com/Veraticus/census-prep/internal/categories"
	"github.com/Veraticus/census-prep/internal/census"
	"github.com/Veraticus/census-prep/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func censusRow(loc string, p model.Probabilities) model.CensusRow {
	return model.CensusRow{
		Location: loc, MaritalStatus: "Married", Education: "University", Gender: "F",
		Employment: "Employed", Income: "35k-75k", Age: "30 to 40", Probabilities: p,
	}
}

func customer(id, state string) model.CustomerRow {
	return model.CustomerRow{
		CustomerID: id, AgeRange: "30 to 40", MaritalStatus: "Married", EducationLevel: "University",
		EmploymentStatus: "Employed", HomeState: state, Location: state, IncomeBand: "35k-75k", Gender: "F",
	}
}

func TestMatch_ExactTupleYieldsAggregatedMean(t *testing.T) {
	agg := census.Aggregate([]model.CensusRow{
		censusRow("CA", model.Probabilities{Migration: 0.1, Birth: 0.2, Marriage: 0.3, Divorce: 0.4}),
		censusRow("CA", model.Probabilities{Migration: 0.3, Birth: 0.2, Marriage: 0.1, Divorce: 0.0}),
	})

	got, cov := Match([]model.CustomerRow{customer("1", "CA")}, agg)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].CustomerID)
	assert.InDelta(t, 0.2, got[0].Migration, 1e-12)
	assert.InDelta(t, 0.2, got[0].Birth, 1e-12)
	assert.InDelta(t, 0.2, got[0].Marriage, 1e-12)
	assert.InDelta(t, 0.2, got[0].Divorce, 1e-12)
	assert.True(t, cov.Complete())
	assert.InDelta(t, 1.0, cov.Ratio(), 1e-12)
}

func TestMatch_EveryKeyMustAgree(t *testing.T) {
	agg := []model.CensusRow{censusRow("CA", model.Probabilities{})}
	base := customer("1", "CA")

	mutations := map[string]func(*model.CustomerRow){
		"age":        func(c *model.CustomerRow) { c.AgeRange = "18-24" },
		"marital":    func(c *model.CustomerRow) { c.MaritalStatus = "Single" },
		"education":  func(c *model.CustomerRow) { c.EducationLevel = "PhD" },
		"employment": func(c *model.CustomerRow) { c.EmploymentStatus = "Unemployed" },
		"location":   func(c *model.CustomerRow) { c.Location = "NY" },
		"income":     func(c *model.CustomerRow) { c.IncomeBand = "200K+" },
		"gender":     func(c *model.CustomerRow) { c.Gender = "M" },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			c := base
			mutate(&c)
			got, cov := Match([]model.CustomerRow{c}, agg)
			assert.Empty(t, got)
			assert.Equal(t, []string{"1"}, cov.Unmatched)
		})
	}
}

func TestMatch_CoverageDependsOnAlignment(t *testing.T) {
	m := categories.DefaultMappings()
	rawCensus := []model.CensusRow{{
		Location: "CA", MaritalStatus: "Divorced or Separated", Education: "Doctorate Degree", Gender: "M",
		Employment: "Not in Labor Force", Income: "75k-125k", Age: "65-74",
		Probabilities: model.Probabilities{Migration: 0.05, Birth: 0.01, Marriage: 0.02, Divorce: 0.03},
	}}
	rawCustomers := []model.CustomerRow{
		{CustomerID: "1", AgeRange: "65 and over", MaritalStatus: "Divorced", EducationLevel: "PhD",
			EmploymentStatus: "Retired", AnnualIncome: 90000, HomeState: "CA", Gender: "M"},
		{CustomerID: "2", AgeRange: "65 and over", MaritalStatus: "Divorced", EducationLevel: "PhD",
			EmploymentStatus: "Homemaker", AnnualIncome: 80000, HomeState: "CA", Gender: "M"},
	}

	normCensus := categories.NormalizeCensus(rawCensus, m)
	agg := census.Aggregate(normCensus)
	normCustomers := categories.NormalizeCustomers(rawCustomers, categories.LocationVocabulary(normCensus), m)

	got, cov := Match(normCustomers, agg)
	assert.Len(t, got, 2)
	assert.True(t, cov.Complete(), "aligned vocabularies cover every customer")

	// Skipping census normalization leaves the vocabularies misaligned.
	got, cov = Match(normCustomers, census.Aggregate(rawCensus))
	assert.Empty(t, got)
	assert.False(t, cov.Complete())

	// Skipping only the employment rewrite drops part of the customers.
	m2 := m
	m2.CustomerEmployment = categories.CategoryMap{Attribute: "EMPLOYMENT_STATUS", Values: map[string]string{"Retired": "Not in Labor Force"}, Unknown: categories.PolicyPassThrough}
	partial := categories.NormalizeCustomers(rawCustomers, categories.LocationVocabulary(normCensus), m2)
	got, cov = Match(partial, agg)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].CustomerID)
	assert.Equal(t, []string{"2"}, cov.Unmatched)
	assert.InDelta(t, 0.5, cov.Ratio(), 1e-12)
}

func TestMatch_UnknownLocationWithoutCensusRowIsDropped(t *testing.T) {
	m := categories.DefaultMappings()
	rawCensus := []model.CensusRow{censusRow("CA", model.Probabilities{Migration: 0.1})}
	rawCustomers := []model.CustomerRow{
		{CustomerID: "9", AgeRange: "30 to 40", MaritalStatus: "Married", EducationLevel: "University",
			EmploymentStatus: "Employed", AnnualIncome: 40000, HomeState: "Ontario", Gender: "F"},
	}

	normCustomers := categories.NormalizeCustomers(rawCustomers, categories.LocationVocabulary(rawCensus), m)
	require.Equal(t, categories.Unknown, normCustomers[0].Location)

	got, cov := Match(normCustomers, census.Aggregate(rawCensus))
	assert.Empty(t, got)
	assert.Equal(t, []string{"9"}, cov.Unmatched)

	// A census row for the Unknown location picks the customer up.
	withUnknown := append(rawCensus, censusRow(categories.Unknown, model.Probabilities{Migration: 0.7}))
	normCustomers = categories.NormalizeCustomers(rawCustomers, categories.LocationVocabulary(withUnknown), m)
	got, _ = Match(normCustomers, census.Aggregate(withUnknown))
	require.Len(t, got, 1)
	assert.InDelta(t, 0.7, got[0].Migration, 1e-12)
}

func TestMatch_PreservesCustomerOrder(t *testing.T) {
	agg := []model.CensusRow{censusRow("CA", model.Probabilities{}), censusRow("NY", model.Probabilities{})}
	got, _ := Match([]model.CustomerRow{customer("b", "NY"), customer("a", "CA"), customer("c", "NY")}, agg)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{got[0].CustomerID, got[1].CustomerID, got[2].CustomerID})
}

func TestCoverage_RatioWithoutCustomers(t *testing.T) {
	_, cov := Match(nil, nil)
	assert.True(t, cov.Complete())
	assert.True(t, math.IsNaN(cov.Ratio()))
}
