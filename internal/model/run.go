package model

import (
	"math"
	"time"
)

// Run records one completed pipeline invocation.
type Run struct {
	StartedAt       time.Time
	Outputs         map[string]int
	ID              string
	Mode            Mode
	CensusPath      string
	CustomersPath   string
	CensusRows      int
	AggregatedRows  int
	CustomerRows    int
	LatestCustomers int
	MatchedRows     int
	UnmatchedRows   int
	FilledValues    int
}

// Coverage returns the share of latest customers that matched a census
// group, or NaN for a run without customers.
func (r *Run) Coverage() float64 {
	if r.LatestCustomers == 0 {
		return math.NaN()
	}
	return float64(r.MatchedRows) / float64(r.LatestCustomers)
}
