package model

import (
	"time"
)

// Customer table columns.
const (
	ColCustomerID       = "CUSTOMER_ID"
	ColEffectiveDate    = "EFFECTIVE_DATE"
	ColAgeRange         = "AGE_RANGE"
	ColEducationLevel   = "EDUCATION_LEVEL"
	ColEmploymentStatus = "EMPLOYMENT_STATUS"
	ColAnnualIncome     = "ANNUAL_INCOME"
	ColAddressHomeState = "ADDRESS_HOME_STATE"
)

// CustomerColumns lists every column a customer table must carry.
var CustomerColumns = []string{
	ColCustomerID, ColEffectiveDate, ColAgeRange, ColMaritalStatus,
	ColEducationLevel, ColEmploymentStatus, ColAnnualIncome,
	ColAddressHomeState, ColGender,
}

// CustomerRow is one dated snapshot of a customer's attributes.
// IncomeBand and Location are derived during normalization.
type CustomerRow struct {
	EffectiveDate    time.Time
	CustomerID       string
	AgeRange         string
	MaritalStatus    string
	EducationLevel   string
	EmploymentStatus string
	HomeState        string
	Gender           string
	IncomeBand       string
	Location         string
	AnnualIncome     float64
}

// CustomerProbabilities is the census annotation for one customer.
type CustomerProbabilities struct {
	CustomerID string
	Probabilities
}

// CustomersFromTable converts a customer table into typed rows.
func CustomersFromTable(t *Table) ([]CustomerRow, error) {
	const name = "customer"
	idx, err := t.Require(name, CustomerColumns...)
	if err != nil {
		return nil, err
	}

	rows := make([]CustomerRow, 0, t.Len())
	for r := range t.Rows {
		id := text(t.Cell(r, idx[0]))
		if id == "" {
			return nil, &SchemaError{Table: name, Column: ColCustomerID, Row: r + 1, Err: ErrInvalidValue}
		}
		date, err := Date(t.Cell(r, idx[1]))
		if err != nil {
			return nil, &SchemaError{Table: name, Column: ColEffectiveDate, Row: r + 1, Err: err}
		}
		income, err := Float(t.Cell(r, idx[6]))
		if err != nil {
			return nil, &SchemaError{Table: name, Column: ColAnnualIncome, Row: r + 1, Err: err}
		}
		rows = append(rows, CustomerRow{
			CustomerID:       id,
			EffectiveDate:    date,
			AgeRange:         text(t.Cell(r, idx[2])),
			MaritalStatus:    text(t.Cell(r, idx[3])),
			EducationLevel:   text(t.Cell(r, idx[4])),
			EmploymentStatus: text(t.Cell(r, idx[5])),
			AnnualIncome:     income,
			HomeState:        text(t.Cell(r, idx[7])),
			Gender:           text(t.Cell(r, idx[8])),
		})
	}
	return rows, nil
}
