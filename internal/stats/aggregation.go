package stats

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// Finite returns the values that are neither NaN nor infinite.
// All aggregates in this package skip missing readings the same way.
func Finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// Mean calculates the arithmetic mean, NaN when there are no finite values
func Mean(values []float64) float64 {
	vals := Finite(values)
	if len(vals) == 0 {
		return math.NaN()
	}

	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// Variance calculates the sample variance (n-1), NaN below two values
func Variance(values []float64) float64 {
	vals := Finite(values)
	if len(vals) < 2 {
		return math.NaN()
	}

	mean := Mean(vals)
	var sumSquaredDiff float64
	for _, v := range vals {
		diff := v - mean
		sumSquaredDiff += diff * diff
	}

	return sumSquaredDiff / float64(len(vals)-1)
}

// StdDev calculates the sample standard deviation
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// Median calculates the median value
func Median(values []float64) float64 {
	sorted := sortedFinite(values)
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Min returns the minimum value
func Min(values []float64) float64 {
	vals := Finite(values)
	if len(vals) == 0 {
		return math.NaN()
	}

	min := vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum value
func Max(values []float64) float64 {
	vals := Finite(values)
	if len(vals) == 0 {
		return math.NaN()
	}

	max := vals[0]
	for _, v := range vals[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Round scales v by 10^places, rounds half to even and scales back, so
// 0.125 becomes 0.12 and 1.005 (100.49999... once scaled) becomes 1.
// NaN and infinities pass through.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	scaled := v * math.Pow10(int(places))
	if math.IsInf(scaled, 0) {
		return v
	}
	return decimal.NewFromFloat(scaled).RoundBank(0).Shift(-places).InexactFloat64()
}

func sortedFinite(values []float64) []float64 {
	sorted := Finite(values)
	sort.Float64s(sorted)
	return sorted
}
