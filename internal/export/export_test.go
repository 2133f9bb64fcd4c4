package export

import (
	"bytes"
	"encoding/csv"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Danielmituku/solar-challenge-week0/internal/models"
)

func sampleObs() []models.Observation {
	base := time.Date(2021, 8, 9, 12, 30, 0, 0, time.UTC)
	return []models.Observation{
		{Timestamp: base, Country: models.CountryBenin, GHI: 512.25, DNI: 300, DHI: 88.5},
		{Timestamp: base.Add(time.Minute), Country: models.CountryTogo, GHI: math.NaN(), DNI: 10, DHI: 5},
	}
}

func sampleSummary() models.SummaryTable {
	start := time.Date(2021, 8, 9, 0, 1, 0, 0, time.UTC)
	return models.SummaryTable{
		Columns: models.SummaryColumns,
		Rows: []models.SummaryRow{
			{
				Country:   models.CountryBenin,
				GHI:       models.MetricStats{Mean: 240.56, Median: 1.8, Std: 331.13},
				DNI:       models.MetricStats{Mean: 167.19, Median: 0, Std: 261.71},
				DHI:       models.MetricStats{Mean: 115.36, Median: 1.6, Std: 158.69},
				StartDate: start,
				EndDate:   start.AddDate(1, 0, 0),
				Records:   525600,
			},
			{
				Country:   models.CountryTogo,
				GHI:       models.MetricStats{Mean: 230.55, Median: 2.1, Std: models.Float(math.NaN())},
				StartDate: start,
				EndDate:   start,
				Records:   1,
			},
		},
	}
}

func TestWriteObservationsCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteObservationsCSV(&buf, sampleObs()); err != nil {
		t.Fatalf("WriteObservationsCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want header + 2", len(records))
	}
	if strings.Join(records[0], ",") != "Timestamp,Country,GHI,DNI,DHI" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][0] != "2021-08-09 12:30:00" || records[1][2] != "512.25" {
		t.Errorf("row 1 = %v", records[1])
	}
	if records[2][2] != "" {
		t.Errorf("missing GHI should be empty, got %q", records[2][2])
	}
}

func TestWriteSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummaryCSV(&buf, sampleSummary()); err != nil {
		t.Fatalf("WriteSummaryCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if records[0][1] != "Avg GHI (W/m²)" || len(records[0]) != 13 {
		t.Errorf("header = %v", records[0])
	}
	if records[1][0] != "Benin" || records[1][1] != "240.56" || records[1][12] != "525600" {
		t.Errorf("Benin row = %v", records[1])
	}
	if records[2][3] != "" {
		t.Errorf("undefined std should be empty, got %q", records[2][3])
	}
}

func TestParquetRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteObservationsParquet(&buf, sampleObs()); err != nil {
		t.Fatalf("WriteObservationsParquet failed: %v", err)
	}

	got, err := ReadObservationsParquet(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadObservationsParquet failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("rows = %d, want 2", len(got))
	}
	want := sampleObs()
	if !got[0].Timestamp.Equal(want[0].Timestamp) || got[0].GHI != 512.25 || got[0].Country != models.CountryBenin {
		t.Errorf("row 0 = %+v", got[0])
	}
	if !math.IsNaN(got[1].GHI) || got[1].DNI != 10 {
		t.Errorf("row 1 = %+v", got[1])
	}
}

func TestWriteSummaryXLSX(t *testing.T) {
	daily := []models.DailyPoint{
		{Country: models.CountryBenin, Date: time.Date(2021, 8, 9, 0, 0, 0, 0, time.UTC), Value: 250.5, Samples: 1440},
	}

	var buf bytes.Buffer
	if err := WriteSummaryXLSX(&buf, sampleSummary(), daily); err != nil {
		t.Fatalf("WriteSummaryXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	if v, _ := f.GetCellValue("Summary", "A1"); v != "Country" {
		t.Errorf("A1 = %q", v)
	}
	if v, _ := f.GetCellValue("Summary", "A2"); v != "Benin" {
		t.Errorf("A2 = %q", v)
	}
	if v, _ := f.GetCellValue("Summary", "D3"); v != "" {
		t.Errorf("D3 = %q, want blank for undefined std", v)
	}
	if v, _ := f.GetCellValue("Daily GHI", "A2"); v != "Benin" {
		t.Errorf("daily A2 = %q", v)
	}
}
