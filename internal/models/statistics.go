package models

import "time"

// MetricStats holds the rounded descriptive statistics of one metric
type MetricStats struct {
	Mean   Float `json:"mean"`
	Median Float `json:"median"`
	Std    Float `json:"std"` // sample standard deviation (n-1)
}

// SummaryRow is one country's line in the ranking table
type SummaryRow struct {
	Country Country     `json:"country"`
	GHI     MetricStats `json:"ghi"`
	DNI     MetricStats `json:"dni"`
	DHI     MetricStats `json:"dhi"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Records   int       `json:"records"`
}

// SummaryColumns are the display labels of the ranking table, in column order
var SummaryColumns = []string{
	"Country",
	"Avg GHI (W/m²)", "Median GHI (W/m²)", "Std Dev GHI",
	"Avg DNI (W/m²)", "Median DNI (W/m²)", "Std Dev DNI",
	"Avg DHI (W/m²)", "Median DHI (W/m²)", "Std Dev DHI",
	"Start Date", "End Date", "Records",
}

// Cells returns the row's values in SummaryColumns order
func (r SummaryRow) Cells() []interface{} {
	return []interface{}{
		string(r.Country),
		r.GHI.Mean, r.GHI.Median, r.GHI.Std,
		r.DNI.Mean, r.DNI.Median, r.DNI.Std,
		r.DHI.Mean, r.DHI.Median, r.DHI.Std,
		r.StartDate, r.EndDate, r.Records,
	}
}

// SummaryTable is the ranking table with its display labels
type SummaryTable struct {
	Columns []string     `json:"columns"`
	Rows    []SummaryRow `json:"rows"`
}

// DailyPoint is one (country, day) bucket of a resampled series
type DailyPoint struct {
	Country Country   `json:"country"`
	Date    time.Time `json:"date"`
	Value   float64   `json:"value"`
	Samples int       `json:"samples"` // non-NaN observations averaged
}

// DailySeries is the response body of the daily time-series query
type DailySeries struct {
	Metric Metric       `json:"metric"`
	Points []DailyPoint `json:"points"`
}

// Distribution is the box-plot data of one metric for one country
type Distribution struct {
	Country      Country `json:"country"`
	Count        int     `json:"count"`
	Min          float64 `json:"min"`
	Q1           float64 `json:"q1"`
	Median       float64 `json:"median"`
	Q3           float64 `json:"q3"`
	Max          float64 `json:"max"`
	LowerWhisker float64 `json:"lower_whisker"`
	UpperWhisker float64 `json:"upper_whisker"`
	Outliers     int     `json:"outliers"`
}

// DistributionSet groups the per-country distributions of one metric
type DistributionSet struct {
	Metric        Metric         `json:"metric"`
	Distributions []Distribution `json:"distributions"`
}

// Overview holds the headline numbers of a filtered selection
type Overview struct {
	TotalRecords      int        `json:"total_records"`
	CountriesSelected int        `json:"countries_selected"`
	StartDate         *time.Time `json:"start_date,omitempty"`
	EndDate           *time.Time `json:"end_date,omitempty"`
}

// DatasetMeta describes the currently loaded dataset
type DatasetMeta struct {
	Source    string          `json:"source"`
	LoadedAt  time.Time       `json:"loaded_at"`
	Countries []Country       `json:"countries"`
	Metrics   []Metric        `json:"metrics"`
	Records   int             `json:"records"`
	ByCountry map[Country]int `json:"by_country"`
	MinDate   *time.Time      `json:"min_date,omitempty"`
	MaxDate   *time.Time      `json:"max_date,omitempty"`
}
