package model

import "math"

// Census table columns.
const (
	ColAge           = "AGE"
	ColMaritalStatus = "MARITAL_STATUS"
	ColEducation     = "EDUCATION"
	ColGender        = "GENDER"
	ColEmployment    = "EMPLOYMENT"
	ColIncome        = "INCOME"
	ColLocation      = "LOCATION"
)

// Probability columns, shared by the census table and annotated outputs.
const (
	ColMigrationProb = "MIGRATION_PROB"
	ColBirthProb     = "BIRTH_PROB"
	ColMarriageProb  = "MARRIAGE_PROB"
	ColDivorceProb   = "DIVORCE_PROB"
)

// CensusColumns lists every column a census table must carry.
var CensusColumns = []string{
	ColAge, ColMaritalStatus, ColEducation, ColGender, ColEmployment,
	ColIncome, ColLocation,
	ColMigrationProb, ColBirthProb, ColMarriageProb, ColDivorceProb,
}

// ProbabilityColumns lists the probability columns in output order.
var ProbabilityColumns = []string{ColMigrationProb, ColBirthProb, ColMarriageProb, ColDivorceProb}

// Probabilities holds the four event probabilities. NaN marks a missing value.
type Probabilities struct {
	Migration float64
	Birth     float64
	Marriage  float64
	Divorce   float64
}

// MissingProbabilities returns a value with every probability missing.
func MissingProbabilities() Probabilities {
	nan := math.NaN()
	return Probabilities{Migration: nan, Birth: nan, Marriage: nan, Divorce: nan}
}

// Values returns the probabilities in ProbabilityColumns order.
func (p Probabilities) Values() [4]float64 {
	return [4]float64{p.Migration, p.Birth, p.Marriage, p.Divorce}
}

// ProbabilitiesFrom builds Probabilities from values in ProbabilityColumns order.
func ProbabilitiesFrom(v [4]float64) Probabilities {
	return Probabilities{Migration: v[0], Birth: v[1], Marriage: v[2], Divorce: v[3]}
}

// HasMissing reports whether any probability is NaN.
func (p Probabilities) HasMissing() bool {
	for _, v := range p.Values() {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// CensusRow is one demographic combination and its event probabilities.
type CensusRow struct {
	Location      string
	MaritalStatus string
	Education     string
	Gender        string
	Employment    string
	Income        string
	Age           string
	Probabilities
}

// Attribute returns the value of a categorical census column.
func (r CensusRow) Attribute(column string) (string, bool) {
	switch column {
	case ColLocation:
		return r.Location, true
	case ColMaritalStatus:
		return r.MaritalStatus, true
	case ColEducation:
		return r.Education, true
	case ColGender:
		return r.Gender, true
	case ColEmployment:
		return r.Employment, true
	case ColIncome:
		return r.Income, true
	case ColAge:
		return r.Age, true
	default:
		return "", false
	}
}

// CategorySummary is the mean probability set of every aggregated census
// row sharing one attribute value.
type CategorySummary struct {
	Value string
	Probabilities
	Rows int
}

// CensusFromTable converts a census table into typed rows.
func CensusFromTable(t *Table) ([]CensusRow, error) {
	const name = "census"
	idx, err := t.Require(name, CensusColumns...)
	if err != nil {
		return nil, err
	}

	rows := make([]CensusRow, 0, t.Len())
	for r := range t.Rows {
		row := CensusRow{
			Age:           text(t.Cell(r, idx[0])),
			MaritalStatus: text(t.Cell(r, idx[1])),
			Education:     text(t.Cell(r, idx[2])),
			Gender:        text(t.Cell(r, idx[3])),
			Employment:    text(t.Cell(r, idx[4])),
			Income:        text(t.Cell(r, idx[5])),
			Location:      text(t.Cell(r, idx[6])),
		}
		var probs [4]float64
		for i := range probs {
			col := CensusColumns[7+i]
			v, err := Float(t.Cell(r, idx[7+i]))
			if err != nil {
				return nil, &SchemaError{Table: name, Column: col, Row: r + 1, Err: err}
			}
			probs[i] = v
		}
		row.Probabilities = ProbabilitiesFrom(probs)
		rows = append(rows, row)
	}
	return rows, nil
}

// CensusToTable renders census rows as a table with CensusColumns.
func CensusToTable(rows []CensusRow) *Table {
	t := NewTable(CensusColumns...)
	for _, r := range rows {
		t.AddRow(r.Age, r.MaritalStatus, r.Education, r.Gender, r.Employment,
			r.Income, r.Location, r.Migration, r.Birth, r.Marriage, r.Divorce)
	}
	return t
}
