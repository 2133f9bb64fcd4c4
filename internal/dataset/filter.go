package dataset

import (
	"time"

	"github.com/Danielmituku/solar-challenge-week0/internal/models"
)

// FilterByCountries returns the rows whose country is in countries.
// An empty set applies no restriction and returns t itself.
func FilterByCountries(t *Table, countries []models.Country) *Table {
	if len(countries) == 0 || t.Len() == 0 {
		return t
	}

	allowed := make(map[models.Country]bool, len(countries))
	for _, c := range countries {
		allowed[c] = true
	}

	out := make([]models.Observation, 0, t.Len())
	for _, r := range t.records {
		if allowed[r.Country] {
			out = append(out, r)
		}
	}
	return &Table{records: out}
}

// FilterByDateRange returns the rows with start <= timestamp < end + 1 day,
// where start and end are calendar days (the time of day is ignored).
func FilterByDateRange(t *Table, start, end time.Time) *Table {
	lo := StartOfDay(start)
	hi := StartOfDay(end).AddDate(0, 0, 1)
	return filterBetween(t, &lo, &hi)
}

// FilterSince returns the rows on or after the start of day
func FilterSince(t *Table, start time.Time) *Table {
	lo := StartOfDay(start)
	return filterBetween(t, &lo, nil)
}

// FilterUntil returns the rows before the end of day
func FilterUntil(t *Table, end time.Time) *Table {
	hi := StartOfDay(end).AddDate(0, 0, 1)
	return filterBetween(t, nil, &hi)
}

func filterBetween(t *Table, lo, hi *time.Time) *Table {
	if t.Len() == 0 {
		return t
	}
	out := make([]models.Observation, 0, t.Len())
	for _, r := range t.records {
		if lo != nil && r.Timestamp.Before(*lo) {
			continue
		}
		if hi != nil && !r.Timestamp.Before(*hi) {
			continue
		}
		out = append(out, r)
	}
	return &Table{records: out}
}

// StartOfDay truncates t to midnight UTC of its calendar day
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
