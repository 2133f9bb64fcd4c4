package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/Danielmituku/solar-challenge-week0/internal/models"
)

type fakeSource struct {
	rows []models.Observation
	err  error
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Load(ctx context.Context) ([]models.Observation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func at(day string, hour int) time.Time {
	t, err := time.Parse(models.DateLayout, day)
	if err != nil {
		panic(err)
	}
	return t.Add(time.Duration(hour) * time.Hour)
}

func fixtureRows() []models.Observation {
	return []models.Observation{
		{Timestamp: at("2021-08-09", 12), Country: models.CountryBenin, GHI: 200, DNI: 100, DHI: 50},
		{Timestamp: at("2021-08-10", 12), Country: models.CountryBenin, GHI: 400, DNI: 300, DHI: 70},
		{Timestamp: at("2021-08-10", 12), Country: models.CountryTogo, GHI: 500, DNI: 350, DHI: 90},
		{Timestamp: at("2021-08-11", 12), Country: models.CountrySierraLeone, GHI: 100, DNI: math.NaN(), DHI: 30},
	}
}

func newTestService(t *testing.T) (*DashboardService, *fakeSource) {
	t.Helper()
	src := &fakeSource{rows: fixtureRows()}
	store := NewDatasetStore(src)
	if err := store.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	return NewDashboardService(store), src
}

func allQuery() models.ObservationQuery {
	return models.ObservationQuery{Countries: models.AllCountries, Metric: models.MetricGHI}
}

func TestDatasetStoreNotLoaded(t *testing.T) {
	store := NewDatasetStore(&fakeSource{})
	if _, err := store.Table(); err != ErrNotLoaded {
		t.Fatalf("err = %v, want ErrNotLoaded", err)
	}
}

func TestDatasetStoreFailedReloadKeepsTable(t *testing.T) {
	svc, src := newTestService(t)

	src.err = errors.New("disk on fire")
	if _, err := svc.Reload(context.Background()); err == nil {
		t.Fatal("expected reload error")
	}

	meta, err := svc.Meta()
	if err != nil {
		t.Fatalf("Meta failed: %v", err)
	}
	if meta.Records != 4 {
		t.Errorf("Records = %d, want previous 4", meta.Records)
	}
}

func TestDatasetStoreReloadSwapsTable(t *testing.T) {
	svc, src := newTestService(t)
	src.rows = src.rows[:1]

	meta, err := svc.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if meta.Records != 1 {
		t.Errorf("Records = %d, want 1", meta.Records)
	}
	if meta.Source != "fake" {
		t.Errorf("Source = %q", meta.Source)
	}
}

func TestBuildQuery(t *testing.T) {
	t.Run("AbsentCountryMeansAll", func(t *testing.T) {
		q, err := BuildQuery(models.QueryParams{}, false)
		if err != nil {
			t.Fatalf("BuildQuery failed: %v", err)
		}
		if len(q.Countries) != len(models.AllCountries) {
			t.Errorf("countries = %v", q.Countries)
		}
		if q.Metric != models.MetricGHI {
			t.Errorf("default metric = %q", q.Metric)
		}
	})

	t.Run("EmptySelection", func(t *testing.T) {
		_, err := BuildQuery(models.QueryParams{Country: []string{""}}, true)
		if err != ErrNoCountrySelected {
			t.Fatalf("err = %v, want ErrNoCountrySelected", err)
		}
	})

	t.Run("CommaSeparatedAndDeduplicated", func(t *testing.T) {
		q, err := BuildQuery(models.QueryParams{Country: []string{"benin,sierra_leone", "Benin"}}, true)
		if err != nil {
			t.Fatalf("BuildQuery failed: %v", err)
		}
		if len(q.Countries) != 2 || q.Countries[0] != models.CountryBenin || q.Countries[1] != models.CountrySierraLeone {
			t.Errorf("countries = %v", q.Countries)
		}
	})

	t.Run("UnknownCountry", func(t *testing.T) {
		_, err := BuildQuery(models.QueryParams{Country: []string{"Ghana"}}, true)
		if errors.Cause(err) != ErrInvalidQuery {
			t.Fatalf("err = %v, want ErrInvalidQuery", err)
		}
	})

	t.Run("BadDate", func(t *testing.T) {
		_, err := BuildQuery(models.QueryParams{Start: "09/08/2021"}, false)
		if errors.Cause(err) != ErrInvalidQuery {
			t.Fatalf("err = %v, want ErrInvalidQuery", err)
		}
	})

	t.Run("StartAfterEnd", func(t *testing.T) {
		_, err := BuildQuery(models.QueryParams{Start: "2021-08-11", End: "2021-08-10"}, false)
		if err != ErrInvalidDateRange {
			t.Fatalf("err = %v, want ErrInvalidDateRange", err)
		}
	})

	t.Run("UnknownMetric", func(t *testing.T) {
		_, err := BuildQuery(models.QueryParams{Metric: "Tamb"}, false)
		if errors.Cause(err) != ErrInvalidQuery {
			t.Fatalf("err = %v, want ErrInvalidQuery", err)
		}
	})

	t.Run("NegativeLimit", func(t *testing.T) {
		_, err := BuildQuery(models.QueryParams{Limit: -1}, false)
		if errors.Cause(err) != ErrInvalidQuery {
			t.Fatalf("err = %v, want ErrInvalidQuery", err)
		}
	})
}

func TestValidateQueryRejectsUnknownCountry(t *testing.T) {
	q := models.ObservationQuery{Countries: []models.Country{"Atlantis"}}
	if errors.Cause(ValidateQuery(q)) != ErrInvalidQuery {
		t.Error("expected validator to reject unknown country")
	}
}

func TestOverview(t *testing.T) {
	svc, _ := newTestService(t)

	day := at("2021-08-10", 0)
	q := allQuery()
	q.Start, q.End = &day, &day

	ov, err := svc.Overview(q)
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}
	if ov.TotalRecords != 2 || ov.CountriesSelected != 3 {
		t.Errorf("overview = %+v", ov)
	}
	if ov.StartDate == nil || !ov.StartDate.Equal(at("2021-08-10", 12)) {
		t.Errorf("StartDate = %v", ov.StartDate)
	}
}

func TestOverviewEmptySelection(t *testing.T) {
	svc, _ := newTestService(t)

	day := at("2022-01-01", 0)
	q := allQuery()
	q.Start = &day

	ov, err := svc.Overview(q)
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}
	if ov.TotalRecords != 0 || ov.StartDate != nil {
		t.Errorf("overview = %+v", ov)
	}
}

func TestSummaryOrder(t *testing.T) {
	svc, _ := newTestService(t)

	summary, err := svc.Summary(allQuery())
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if len(summary.Rows) != 3 {
		t.Fatalf("rows = %d", len(summary.Rows))
	}
	if summary.Rows[0].Country != models.CountryTogo || summary.Rows[2].Country != models.CountrySierraLeone {
		t.Errorf("unexpected order %v, %v, %v", summary.Rows[0].Country, summary.Rows[1].Country, summary.Rows[2].Country)
	}
	if summary.Rows[1].GHI.Mean != 300 {
		t.Errorf("Benin mean = %v", summary.Rows[1].GHI.Mean)
	}
	if summary.Rows[2].DNI.Mean.Valid() {
		t.Errorf("Sierra Leone DNI mean should be missing, got %v", summary.Rows[2].DNI.Mean)
	}
}

func TestDailyAndDistribution(t *testing.T) {
	svc, _ := newTestService(t)

	q := allQuery()
	q.Countries = []models.Country{models.CountryBenin}
	q.Metric = models.MetricDNI

	series, err := svc.Daily(q)
	if err != nil {
		t.Fatalf("Daily failed: %v", err)
	}
	if series.Metric != models.MetricDNI || len(series.Points) != 2 || series.Points[1].Value != 300 {
		t.Errorf("series = %+v", series)
	}

	dists, err := svc.Distribution(q)
	if err != nil {
		t.Fatalf("Distribution failed: %v", err)
	}
	if len(dists.Distributions) != 1 || dists.Distributions[0].Median != 200 {
		t.Errorf("distributions = %+v", dists)
	}
}

func TestObservationsLimit(t *testing.T) {
	svc, _ := newTestService(t)

	q := allQuery()
	q.Limit = 2
	rows, total, err := svc.Observations(q)
	if err != nil {
		t.Fatalf("Observations failed: %v", err)
	}
	if len(rows) != 2 || total != 4 {
		t.Errorf("rows = %d total = %d", len(rows), total)
	}
}

func TestSelectRejectsEmptyCountries(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Select(models.ObservationQuery{}); err != ErrNoCountrySelected {
		t.Fatalf("err = %v, want ErrNoCountrySelected", err)
	}
}
