// Package export renders dashboard data as downloadable files.
package export

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/Danielmituku/solar-challenge-week0/internal/models"
)

// TimestampLayout is the timestamp format written to text exports
const TimestampLayout = "2006-01-02 15:04:05"

// ObservationColumns is the header of the observation exports
var ObservationColumns = []string{"Timestamp", "Country", "GHI", "DNI", "DHI"}

// WriteObservationsCSV writes obs as CSV. Missing readings are empty cells.
func WriteObservationsCSV(w io.Writer, obs []models.Observation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ObservationColumns); err != nil {
		return errors.Wrap(err, "write header")
	}

	record := make([]string, len(ObservationColumns))
	for _, o := range obs {
		record[0] = o.Timestamp.UTC().Format(TimestampLayout)
		record[1] = string(o.Country)
		record[2] = formatFloat(o.GHI)
		record[3] = formatFloat(o.DNI)
		record[4] = formatFloat(o.DHI)
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "write row")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}

// WriteSummaryCSV writes the ranking table with its display labels as header
func WriteSummaryCSV(w io.Writer, table models.SummaryTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Columns); err != nil {
		return errors.Wrap(err, "write header")
	}

	for _, row := range table.Rows {
		cells := row.Cells()
		record := make([]string, len(cells))
		for i, c := range cells {
			record[i] = formatCell(c)
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "write row")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}

func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatCell(c interface{}) string {
	switch v := c.(type) {
	case string:
		return v
	case models.Float:
		return formatFloat(float64(v))
	case float64:
		return formatFloat(v)
	case int:
		return strconv.Itoa(v)
	case time.Time:
		return v.UTC().Format(TimestampLayout)
	default:
		return ""
	}
}

// cellValue converts a summary cell to a spreadsheet value; nil leaves the cell blank
func cellValue(c interface{}) interface{} {
	switch v := c.(type) {
	case models.Float:
		if !v.Valid() {
			return nil
		}
		return float64(v)
	case time.Time:
		return v.UTC()
	default:
		return v
	}
}
