package stats

import (
	"math"
)

// Quantile calculates the q-th quantile (0 <= q <= 1)
// Uses linear interpolation between closest ranks
func Quantile(values []float64, q float64) float64 {
	return quantileSorted(sortedFinite(values), q)
}

func quantileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q < 0 {
		q = 0
	}
	if q > 1 {
		q = 1
	}

	n := float64(len(sorted))
	index := q * (n - 1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))

	if lower == upper {
		return sorted[lower]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// BoxSummary is the five-number summary plus Tukey whiskers
type BoxSummary struct {
	Count        int
	Min          float64
	Q1           float64
	Median       float64
	Q3           float64
	Max          float64
	LowerWhisker float64 // smallest value >= Q1 - 1.5*IQR
	UpperWhisker float64 // largest value <= Q3 + 1.5*IQR
	Outliers     int     // values outside the whiskers
}

// Box computes the box-plot summary of the finite values.
// The zero BoxSummary (with NaN statistics) is returned for no data.
func Box(values []float64) BoxSummary {
	sorted := sortedFinite(values)
	if len(sorted) == 0 {
		nan := math.NaN()
		return BoxSummary{Min: nan, Q1: nan, Median: nan, Q3: nan, Max: nan, LowerWhisker: nan, UpperWhisker: nan}
	}

	b := BoxSummary{
		Count:  len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     quantileSorted(sorted, 0.25),
		Median: quantileSorted(sorted, 0.5),
		Q3:     quantileSorted(sorted, 0.75),
	}

	lowerBound, upperBound := OutliersBounds(b.Q1, b.Q3)
	b.LowerWhisker = b.Max
	b.UpperWhisker = b.Min
	for _, v := range sorted {
		if v < lowerBound || v > upperBound {
			b.Outliers++
			continue
		}
		if v < b.LowerWhisker {
			b.LowerWhisker = v
		}
		if v > b.UpperWhisker {
			b.UpperWhisker = v
		}
	}

	return b
}

// OutliersBounds calculates the lower and upper bounds for outliers using IQR method
// Outliers are values < Q1 - 1.5*IQR or > Q3 + 1.5*IQR
func OutliersBounds(q1, q3 float64) (lowerBound, upperBound float64) {
	iqr := q3 - q1
	return q1 - 1.5*iqr, q3 + 1.5*iqr
}
