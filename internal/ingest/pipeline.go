package ingest

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/Danielmituku/solar-challenge-week0/internal/models"
)

// Sink is a store that can take over a full observation set
type Sink interface {
	Name() string
	Replace(ctx context.Context, obs []models.Observation) error
}

// Source produces the observation set to ingest
type Source interface {
	Name() string
	Load(ctx context.Context) ([]models.Observation, error)
}

// Store is a sink that can read its rows back
type Store interface {
	Sink
	Count(ctx context.Context) (int64, error)
	Find(ctx context.Context, q models.ObservationQuery) ([]models.Observation, error)
}

// ErrVerifyMismatch is returned when a store does not hold what was written to it
var ErrVerifyMismatch = errors.New("stored rows do not match ingested rows")

// Report summarizes one ingest run
type Report struct {
	Source    string
	Records   int
	ByCountry map[models.Country]int
	Sinks     []string
	Elapsed   time.Duration
}

// Run loads src once and replaces the contents of every sink with it.
// With no sinks the run only parses and counts (dry run).
func Run(ctx context.Context, src Source, sinks ...Sink) (*Report, error) {
	start := time.Now()

	obs, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", src.Name())
	}

	report := &Report{
		Source:    src.Name(),
		Records:   len(obs),
		ByCountry: make(map[models.Country]int),
	}
	for _, o := range obs {
		report.ByCountry[o.Country]++
	}

	for _, sink := range sinks {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		t := time.Now()
		if err := sink.Replace(ctx, obs); err != nil {
			return report, errors.Wrapf(err, "write %s", sink.Name())
		}
		log.Printf("[ingest] %s: %d rows in %v", sink.Name(), len(obs), time.Since(t).Round(time.Millisecond))
		report.Sinks = append(report.Sinks, sink.Name())
	}

	report.Elapsed = time.Since(start)
	return report, nil
}

// Verify reads the rows of store back and checks the total and per-country
// counts against report.
func Verify(ctx context.Context, store Store, report *Report) error {
	total, err := store.Count(ctx)
	if err != nil {
		return errors.Wrapf(err, "count %s", store.Name())
	}
	if total != int64(report.Records) {
		return errors.Wrapf(ErrVerifyMismatch, "%s: %d rows stored, %d ingested", store.Name(), total, report.Records)
	}

	for _, c := range models.AllCountries {
		rows, err := store.Find(ctx, models.ObservationQuery{Countries: []models.Country{c}})
		if err != nil {
			return errors.Wrapf(err, "read back %s from %s", c, store.Name())
		}
		if len(rows) != report.ByCountry[c] {
			return errors.Wrapf(ErrVerifyMismatch, "%s: %d %s rows stored, %d ingested",
				store.Name(), len(rows), c, report.ByCountry[c])
		}
	}
	log.Printf("[ingest] %s verified: %d rows", store.Name(), total)
	return nil
}
