package dataset

import (
	"math"
	"sort"

	"github.com/Danielmituku/solar-challenge-week0/internal/models"
	"github.com/Danielmituku/solar-challenge-week0/internal/stats"
)

// summaryDecimals is the rounding applied to every statistic in the table
const summaryDecimals = 2

// Summarize groups t by country and computes the ranking table.
// Rows are sorted by descending GHI mean; countries with no GHI readings sort last.
func Summarize(t *Table) models.SummaryTable {
	order, groups := t.groupByCountry()

	rows := make([]models.SummaryRow, 0, len(order))
	for _, country := range order {
		rows = append(rows, summarizeGroup(country, groups[country]))
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := float64(rows[i].GHI.Mean), float64(rows[j].GHI.Mean)
		if math.IsNaN(b) {
			return !math.IsNaN(a)
		}
		if math.IsNaN(a) {
			return false
		}
		return a > b
	})

	return models.SummaryTable{
		Columns: models.SummaryColumns,
		Rows:    rows,
	}
}

func summarizeGroup(country models.Country, group []models.Observation) models.SummaryRow {
	row := models.SummaryRow{
		Country: country,
		Records: len(group),
	}

	values := make(map[models.Metric][]float64, len(models.AllMetrics))
	for i, o := range group {
		for _, m := range models.AllMetrics {
			values[m] = append(values[m], o.Value(m))
		}
		if i == 0 || o.Timestamp.Before(row.StartDate) {
			row.StartDate = o.Timestamp
		}
		if i == 0 || o.Timestamp.After(row.EndDate) {
			row.EndDate = o.Timestamp
		}
	}

	row.GHI = metricStats(values[models.MetricGHI])
	row.DNI = metricStats(values[models.MetricDNI])
	row.DHI = metricStats(values[models.MetricDHI])
	return row
}

func metricStats(values []float64) models.MetricStats {
	return models.MetricStats{
		Mean:   models.Float(stats.Round(stats.Mean(values), summaryDecimals)),
		Median: models.Float(stats.Round(stats.Median(values), summaryDecimals)),
		Std:    models.Float(stats.Round(stats.StdDev(values), summaryDecimals)),
	}
}
