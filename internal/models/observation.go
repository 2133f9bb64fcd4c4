package models

import (
	"math"
	"strings"
	"time"
)

// Country identifies one of the three measurement sites
type Country string

// Country constants
const (
	CountryBenin       Country = "Benin"
	CountrySierraLeone Country = "Sierra Leone"
	CountryTogo        Country = "Togo"
)

// AllCountries lists the known countries in load order
var AllCountries = []Country{CountryBenin, CountrySierraLeone, CountryTogo}

// ParseCountry resolves a country label, tolerating case and the
// underscore/hyphen spellings used in file names ("sierra_leone").
func ParseCountry(s string) (Country, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	for _, c := range AllCountries {
		if strings.ToLower(string(c)) == norm {
			return c, true
		}
	}
	return "", false
}

// Slug returns the lowercase underscore form used in file names
func (c Country) Slug() string {
	return strings.ReplaceAll(strings.ToLower(string(c)), " ", "_")
}

// Metric names one of the irradiance columns
type Metric string

// Metric constants
const (
	MetricGHI Metric = "GHI" // Global Horizontal Irradiance
	MetricDNI Metric = "DNI" // Direct Normal Irradiance
	MetricDHI Metric = "DHI" // Diffuse Horizontal Irradiance
)

// AllMetrics lists the irradiance metrics in display order
var AllMetrics = []Metric{MetricGHI, MetricDNI, MetricDHI}

// ParseMetric resolves a metric name case-insensitively
func ParseMetric(s string) (Metric, bool) {
	up := Metric(strings.ToUpper(strings.TrimSpace(s)))
	for _, m := range AllMetrics {
		if m == up {
			return m, true
		}
	}
	return "", false
}

// Observation is a single timestamped irradiance measurement
type Observation struct {
	Timestamp time.Time `json:"timestamp"`
	GHI       float64   `json:"ghi"` // W/m², NaN when the source cell was empty
	DNI       float64   `json:"dni"` // W/m²
	DHI       float64   `json:"dhi"` // W/m²
	Country   Country   `json:"country"`
}

// Value returns the reading for the given metric
func (o Observation) Value(m Metric) float64 {
	switch m {
	case MetricGHI:
		return o.GHI
	case MetricDNI:
		return o.DNI
	case MetricDHI:
		return o.DHI
	}
	return math.NaN()
}

// ObservationJSON is the wire form of an Observation; NaN readings become null.
type ObservationJSON struct {
	Timestamp time.Time `json:"timestamp"`
	Country   Country   `json:"country"`
	GHI       Float     `json:"ghi"`
	DNI       Float     `json:"dni"`
	DHI       Float     `json:"dhi"`
}

// ToJSON converts observations to their wire form
func ToJSON(obs []Observation) []ObservationJSON {
	out := make([]ObservationJSON, len(obs))
	for i, o := range obs {
		out[i] = ObservationJSON{
			Timestamp: o.Timestamp,
			Country:   o.Country,
			GHI:       Float(o.GHI),
			DNI:       Float(o.DNI),
			DHI:       Float(o.DHI),
		}
	}
	return out
}
