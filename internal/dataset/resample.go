package dataset

import (
	"math"
	"sort"
	"time"

	"github.com/Danielmituku/solar-challenge-week0/internal/models"
)

// DailyMean resamples metric to one mean value per (country, UTC day).
// Days without a finite reading produce no point; nothing is gap-filled.
// Points are ordered by country, then by day.
func DailyMean(t *Table, metric models.Metric) []models.DailyPoint {
	type bucket struct {
		sum float64
		n   int
	}

	order, groups := t.groupByCountry()
	var points []models.DailyPoint

	for _, country := range order {
		buckets := make(map[time.Time]*bucket)
		for _, o := range groups[country] {
			v := o.Value(metric)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			day := StartOfDay(o.Timestamp)
			b, ok := buckets[day]
			if !ok {
				b = &bucket{}
				buckets[day] = b
			}
			b.sum += v
			b.n++
		}

		days := make([]time.Time, 0, len(buckets))
		for day := range buckets {
			days = append(days, day)
		}
		sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

		for _, day := range days {
			b := buckets[day]
			points = append(points, models.DailyPoint{
				Country: country,
				Date:    day,
				Value:   b.sum / float64(b.n),
				Samples: b.n,
			})
		}
	}

	return points
}
