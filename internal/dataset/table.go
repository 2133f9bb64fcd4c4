// Package dataset holds the in-memory observation table and the pure
// transformations the dashboard runs over it: country and date filtering,
// per-country summaries, daily resampling and box-plot distributions.
package dataset

import (
	"time"

	"github.com/Danielmituku/solar-challenge-week0/internal/models"
)

// Table is an immutable, ordered set of observations.
// Transformations return new tables and never modify the receiver.
type Table struct {
	records []models.Observation
}

// NewTable wraps records in a Table. The slice is copied.
func NewTable(records []models.Observation) *Table {
	cp := make([]models.Observation, len(records))
	copy(cp, records)
	return &Table{records: cp}
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// Records returns a copy of the rows
func (t *Table) Records() []models.Observation {
	if t == nil {
		return nil
	}
	cp := make([]models.Observation, len(t.records))
	copy(cp, t.records)
	return cp
}

// TimeRange returns the earliest and latest timestamp; ok is false for an empty table
func (t *Table) TimeRange() (min, max time.Time, ok bool) {
	if t.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}
	min, max = t.records[0].Timestamp, t.records[0].Timestamp
	for _, r := range t.records[1:] {
		if r.Timestamp.Before(min) {
			min = r.Timestamp
		}
		if r.Timestamp.After(max) {
			max = r.Timestamp
		}
	}
	return min, max, true
}

// CountByCountry returns the number of rows per country
func (t *Table) CountByCountry() map[models.Country]int {
	counts := make(map[models.Country]int)
	if t == nil {
		return counts
	}
	for _, r := range t.records {
		counts[r.Country]++
	}
	return counts
}

// Head returns a table of the first n rows (all rows when n <= 0 or n >= Len)
func (t *Table) Head(n int) *Table {
	if n <= 0 || n >= t.Len() {
		return t
	}
	return &Table{records: t.records[:n:n]}
}

// groupByCountry splits rows by country, preserving row order inside each group.
// Groups come back in AllCountries order followed by any unknown labels.
func (t *Table) groupByCountry() ([]models.Country, map[models.Country][]models.Observation) {
	groups := make(map[models.Country][]models.Observation)
	if t.Len() == 0 {
		return nil, groups
	}
	var extra []models.Country
	known := make(map[models.Country]bool, len(models.AllCountries))
	for _, c := range models.AllCountries {
		known[c] = true
	}

	for _, r := range t.records {
		if _, seen := groups[r.Country]; !seen && !known[r.Country] {
			extra = append(extra, r.Country)
		}
		groups[r.Country] = append(groups[r.Country], r)
	}

	var order []models.Country
	for _, c := range models.AllCountries {
		if _, ok := groups[c]; ok {
			order = append(order, c)
		}
	}
	return append(order, extra...), groups
}
