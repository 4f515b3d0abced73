// Package customers reduces the customer table to current records.
package customers

import (
	"time"

	"github.com/Veraticus/census-prep/internal/model"
)

// Latest keeps, for each customer, the rows carrying that customer's
// maximum effective date. Rows tied on the maximum are all kept; no
// further tie-break is applied. Input order is preserved.
func Latest(rows []model.CustomerRow) []model.CustomerRow {
	maxDate := make(map[string]time.Time, len(rows))
	for _, r := range rows {
		if cur, ok := maxDate[r.CustomerID]; !ok || r.EffectiveDate.After(cur) {
			maxDate[r.CustomerID] = r.EffectiveDate
		}
	}

	out := make([]model.CustomerRow, 0, len(maxDate))
	for _, r := range rows {
		if r.EffectiveDate.Equal(maxDate[r.CustomerID]) {
			out = append(out, r)
		}
	}
	return out
}

// Duplicates returns the ids that still have more than one row, which after
// Latest means ties on the maximal effective date.
func Duplicates(rows []model.CustomerRow) []string {
	counts := make(map[string]int, len(rows))
	var ids []string
	for _, r := range rows {
		counts[r.CustomerID]++
		if counts[r.CustomerID] == 2 {
			ids = append(ids, r.CustomerID)
		}
	}
	return ids
}
