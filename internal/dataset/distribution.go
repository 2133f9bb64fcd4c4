package dataset

import (
	"github.com/Danielmituku/solar-challenge-week0/internal/models"
	"github.com/Danielmituku/solar-challenge-week0/internal/stats"
)

// Distributions computes the per-country box-plot statistics of metric.
// Countries whose readings are all missing are omitted.
func Distributions(t *Table, metric models.Metric) []models.Distribution {
	order, groups := t.groupByCountry()

	out := make([]models.Distribution, 0, len(order))
	for _, country := range order {
		values := make([]float64, len(groups[country]))
		for i, o := range groups[country] {
			values[i] = o.Value(metric)
		}

		b := stats.Box(values)
		if b.Count == 0 {
			continue
		}
		out = append(out, models.Distribution{
			Country:      country,
			Count:        b.Count,
			Min:          b.Min,
			Q1:           b.Q1,
			Median:       b.Median,
			Q3:           b.Q3,
			Max:          b.Max,
			LowerWhisker: b.LowerWhisker,
			UpperWhisker: b.UpperWhisker,
			Outliers:     b.Outliers,
		})
	}
	return out
}
