package export

import (
	"io"
	"math"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"

	"github.com/Danielmituku/solar-challenge-week0/internal/models"
)

// ObservationRecord is the Parquet row layout of an observation.
// Missing readings are stored as nulls.
type ObservationRecord struct {
	Timestamp int64    `parquet:"timestamp,timestamp(millisecond)"`
	Country   string   `parquet:"country,dict"`
	GHI       *float64 `parquet:"ghi,optional"`
	DNI       *float64 `parquet:"dni,optional"`
	DHI       *float64 `parquet:"dhi,optional"`
}

func toRecord(o models.Observation) ObservationRecord {
	return ObservationRecord{
		Timestamp: o.Timestamp.UnixMilli(),
		Country:   string(o.Country),
		GHI:       optional(o.GHI),
		DNI:       optional(o.DNI),
		DHI:       optional(o.DHI),
	}
}

// Observation converts the record back to the in-memory form
func (r ObservationRecord) Observation() models.Observation {
	return models.Observation{
		Timestamp: time.UnixMilli(r.Timestamp).UTC(),
		Country:   models.Country(r.Country),
		GHI:       deref(r.GHI),
		DNI:       deref(r.DNI),
		DHI:       deref(r.DHI),
	}
}

func optional(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func deref(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

const parquetRowGroup = 10_000

// WriteObservationsParquet writes obs as a single Parquet file
func WriteObservationsParquet(w io.Writer, obs []models.Observation) error {
	pw := parquet.NewGenericWriter[ObservationRecord](w, parquet.Compression(&parquet.Zstd))

	rows := make([]ObservationRecord, 0, parquetRowGroup)
	for _, o := range obs {
		rows = append(rows, toRecord(o))
		if len(rows) == parquetRowGroup {
			if _, err := pw.Write(rows); err != nil {
				return errors.Wrap(err, "write parquet rows")
			}
			rows = rows[:0]
		}
	}
	if len(rows) > 0 {
		if _, err := pw.Write(rows); err != nil {
			return errors.Wrap(err, "write parquet rows")
		}
	}

	return errors.Wrap(pw.Close(), "close parquet writer")
}

// ReadObservationsParquet reads back a file written by WriteObservationsParquet
func ReadObservationsParquet(r io.ReaderAt) ([]models.Observation, error) {
	reader := parquet.NewGenericReader[ObservationRecord](r)
	defer reader.Close()

	out := make([]models.Observation, 0, reader.NumRows())
	buf := make([]ObservationRecord, 1000)
	for {
		n, err := reader.Read(buf)
		for i := 0; i < n; i++ {
			out = append(out, buf[i].Observation())
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read parquet rows")
		}
		if n == 0 {
			break
		}
	}
	return out, nil
}
