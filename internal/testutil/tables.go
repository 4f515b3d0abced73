// Package testutil provides fixtures for census preparation tests.
// Builders produce raw input tables in the shape the data loader hands to
// the engine, so tests can exercise schema conversion along with the
// pipeline.
//
// Example:
//
//	census := testutil.NewCensus().
//		Row(testutil.Demographic{Age: "30-34", Location: "CA"}, 0.1, 0.2, 0.3, 0.4).
//		Table()
package testutil

import (
	"github.com/Veraticus/census-prep/internal/model"
)

// Demographic is the categorical part of a census or customer row.
// Empty fields take the defaults used across tests.
type Demographic struct {
	Location      string
	MaritalStatus string
	Education     string
	Gender        string
	Employment    string
	Income        string
	Age           string
}

func (d Demographic) withDefaults() Demographic {
	def := func(v *string, fallback string) {
		if *v == "" {
			*v = fallback
		}
	}
	def(&d.Location, "CA")
	def(&d.MaritalStatus, "Married")
	def(&d.Education, "University")
	def(&d.Gender, "F")
	def(&d.Employment, "Employed")
	def(&d.Income, "35k-75k")
	def(&d.Age, "30-34")
	return d
}

// CensusBuilder builds a raw census table.
type CensusBuilder struct {
	table *model.Table
}

// NewCensus starts an empty census table.
func NewCensus() *CensusBuilder {
	return &CensusBuilder{table: model.NewTable(model.CensusColumns...)}
}

// Row appends a census row. Probability arguments may be float64 or string
// (use "" for a missing value).
func (b *CensusBuilder) Row(d Demographic, migration, birth, marriage, divorce any) *CensusBuilder {
	d = d.withDefaults()
	b.table.AddRow(d.Age, d.MaritalStatus, d.Education, d.Gender, d.Employment, d.Income, d.Location,
		migration, birth, marriage, divorce)
	return b
}

// Table returns the built table.
func (b *CensusBuilder) Table() *model.Table {
	return b.table
}

// Customer is a raw customer record. Empty categorical fields take the
// defaults that line up with a default census Demographic after
// normalization.
type Customer struct {
	ID               any
	EffectiveDate    string
	AgeRange         string
	MaritalStatus    string
	EducationLevel   string
	EmploymentStatus string
	AnnualIncome     any
	HomeState        string
	Gender           string
}

// CustomerBuilder builds a raw customer table.
type CustomerBuilder struct {
	table *model.Table
}

// NewCustomers starts an empty customer table.
func NewCustomers() *CustomerBuilder {
	return &CustomerBuilder{table: model.NewTable(model.CustomerColumns...)}
}

// Row appends a customer row.
func (b *CustomerBuilder) Row(c Customer) *CustomerBuilder {
	if c.EffectiveDate == "" {
		c.EffectiveDate = "2020-01-01"
	}
	if c.AgeRange == "" {
		c.AgeRange = "30 to 40"
	}
	if c.MaritalStatus == "" {
		c.MaritalStatus = "Married"
	}
	if c.EducationLevel == "" {
		c.EducationLevel = "College"
	}
	if c.EmploymentStatus == "" {
		c.EmploymentStatus = "Selfemployed"
	}
	if c.AnnualIncome == nil {
		c.AnnualIncome = "50000"
	}
	if c.HomeState == "" {
		c.HomeState = "CA"
	}
	if c.Gender == "" {
		c.Gender = "F"
	}
	b.table.AddRow(c.ID, c.EffectiveDate, c.AgeRange, c.MaritalStatus, c.EducationLevel,
		c.EmploymentStatus, c.AnnualIncome, c.HomeState, c.Gender)
	return b
}

// Table returns the built table.
func (b *CustomerBuilder) Table() *model.Table {
	return b.table
}

// Events builds an output table with one row per (customer id, event) pair.
func Events(pairs ...string) *model.Table {
	t := model.NewTable(model.ColCustomerID, "EVENT")
	for i := 0; i+1 < len(pairs); i += 2 {
		t.AddRow(pairs[i], pairs[i+1])
	}
	return t
}
