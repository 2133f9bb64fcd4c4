package service

import (
	"context"

	"github.com/Danielmituku/solar-challenge-week0/internal/dataset"
	"github.com/Danielmituku/solar-challenge-week0/internal/models"
)

// DefaultObservationLimit caps the raw observations endpoint when no limit is given
const DefaultObservationLimit = 1000

// DashboardService answers dashboard queries against the loaded dataset
type DashboardService struct {
	store *DatasetStore
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(store *DatasetStore) *DashboardService {
	return &DashboardService{
		store: store,
	}
}

// Select applies the country and date filters of q to the current table
func (s *DashboardService) Select(q models.ObservationQuery) (*dataset.Table, error) {
	if err := ValidateQuery(q); err != nil {
		return nil, err
	}

	table, err := s.store.Table()
	if err != nil {
		return nil, err
	}

	table = dataset.FilterByCountries(table, q.Countries)
	switch {
	case q.Start != nil && q.End != nil:
		table = dataset.FilterByDateRange(table, *q.Start, *q.End)
	case q.Start != nil:
		table = dataset.FilterSince(table, *q.Start)
	case q.End != nil:
		table = dataset.FilterUntil(table, *q.End)
	}
	return table, nil
}

// Observations returns the selected rows, truncated to the query limit
func (s *DashboardService) Observations(q models.ObservationQuery) ([]models.Observation, int, error) {
	table, err := s.Select(q)
	if err != nil {
		return nil, 0, err
	}

	limit := q.Limit
	if limit == 0 {
		limit = DefaultObservationLimit
	}
	return table.Head(limit).Records(), table.Len(), nil
}

// Overview returns the headline numbers of the selection
func (s *DashboardService) Overview(q models.ObservationQuery) (*models.Overview, error) {
	table, err := s.Select(q)
	if err != nil {
		return nil, err
	}

	ov := &models.Overview{
		TotalRecords:      table.Len(),
		CountriesSelected: len(q.Countries),
	}
	if min, max, ok := table.TimeRange(); ok {
		ov.StartDate = &min
		ov.EndDate = &max
	}
	return ov, nil
}

// Summary returns the per-country ranking table of the selection
func (s *DashboardService) Summary(q models.ObservationQuery) (*models.SummaryTable, error) {
	table, err := s.Select(q)
	if err != nil {
		return nil, err
	}
	summary := dataset.Summarize(table)
	return &summary, nil
}

// Daily returns the daily mean series of the query metric
func (s *DashboardService) Daily(q models.ObservationQuery) (*models.DailySeries, error) {
	table, err := s.Select(q)
	if err != nil {
		return nil, err
	}
	metric := q.Metric
	if metric == "" {
		metric = models.MetricGHI
	}
	return &models.DailySeries{
		Metric: metric,
		Points: dataset.DailyMean(table, metric),
	}, nil
}

// Distribution returns per-country box-plot statistics of the query metric
func (s *DashboardService) Distribution(q models.ObservationQuery) (*models.DistributionSet, error) {
	table, err := s.Select(q)
	if err != nil {
		return nil, err
	}
	metric := q.Metric
	if metric == "" {
		metric = models.MetricGHI
	}
	return &models.DistributionSet{
		Metric:        metric,
		Distributions: dataset.Distributions(table, metric),
	}, nil
}

// Meta describes the loaded dataset
func (s *DashboardService) Meta() (*models.DatasetMeta, error) {
	table, err := s.store.Table()
	if err != nil {
		return nil, err
	}

	meta := &models.DatasetMeta{
		Source:    s.store.SourceName(),
		LoadedAt:  s.store.LoadedAt(),
		Countries: models.AllCountries,
		Metrics:   models.AllMetrics,
		Records:   table.Len(),
		ByCountry: table.CountByCountry(),
	}
	if min, max, ok := table.TimeRange(); ok {
		meta.MinDate = &min
		meta.MaxDate = &max
	}
	return meta, nil
}

// Reload refreshes the dataset from its source
func (s *DashboardService) Reload(ctx context.Context) (*models.DatasetMeta, error) {
	if err := s.store.Reload(ctx); err != nil {
		return nil, err
	}
	return s.Meta()
}
