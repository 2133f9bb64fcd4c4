package repository

import (
	"context"
	"database/sql"
	"math"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Danielmituku/solar-challenge-week0/internal/database"
	"github.com/Danielmituku/solar-challenge-week0/internal/models"
)

// observationRow is the SQLite shape of an observation; missing readings are NULL
type observationRow struct {
	ID      int64           `db:"id"`
	TS      int64           `db:"ts"`
	Country string          `db:"country"`
	GHI     sql.NullFloat64 `db:"ghi"`
	DNI     sql.NullFloat64 `db:"dni"`
	DHI     sql.NullFloat64 `db:"dhi"`
}

func toRow(o models.Observation) observationRow {
	return observationRow{
		TS:      o.Timestamp.Unix(),
		Country: string(o.Country),
		GHI:     nullable(o.GHI),
		DNI:     nullable(o.DNI),
		DHI:     nullable(o.DHI),
	}
}

func (r observationRow) observation() models.Observation {
	return models.Observation{
		Timestamp: time.Unix(r.TS, 0).UTC(),
		Country:   models.Country(r.Country),
		GHI:       orNaN(r.GHI),
		DNI:       orNaN(r.DNI),
		DHI:       orNaN(r.DHI),
	}
}

func nullable(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func orNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

// ObservationRepository handles database operations for observations
type ObservationRepository struct {
	db *sqlx.DB
}

// NewObservationRepository creates a new observation repository
func NewObservationRepository(db *sqlx.DB) *ObservationRepository {
	return &ObservationRepository{db: db}
}

// Name identifies the repository as a data source
func (r *ObservationRepository) Name() string {
	return "sqlite:observations"
}

// Load returns every observation in insertion order
func (r *ObservationRepository) Load(ctx context.Context) ([]models.Observation, error) {
	var rows []observationRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, ts, country, ghi, dni, dhi FROM observations ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "select observations")
	}

	out := make([]models.Observation, len(rows))
	for i, row := range rows {
		out[i] = row.observation()
	}
	return out, nil
}

// Find returns the observations matching the country and date filters of q,
// in insertion order. A zero Limit means no limit.
func (r *ObservationRepository) Find(ctx context.Context, q models.ObservationQuery) ([]models.Observation, error) {
	query := `SELECT id, ts, country, ghi, dni, dhi FROM observations`

	var conditions []string
	var args []interface{}

	if len(q.Countries) > 0 {
		names := make([]string, len(q.Countries))
		for i, c := range q.Countries {
			names[i] = string(c)
		}
		in, inArgs, err := sqlx.In("country IN (?)", names)
		if err != nil {
			return nil, errors.Wrap(err, "expand country filter")
		}
		conditions = append(conditions, in)
		args = append(args, inArgs...)
	}
	if q.Start != nil {
		conditions = append(conditions, "ts >= ?")
		args = append(args, startOfDay(*q.Start).Unix())
	}
	if q.End != nil {
		conditions = append(conditions, "ts < ?")
		args = append(args, startOfDay(*q.End).AddDate(0, 0, 1).Unix())
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	var rows []observationRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "select observations")
	}

	out := make([]models.Observation, len(rows))
	for i, row := range rows {
		out[i] = row.observation()
	}
	return out, nil
}

// Count returns the number of stored observations
func (r *ObservationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM observations`); err != nil {
		return 0, errors.Wrap(err, "count observations")
	}
	return n, nil
}

// Replace swaps the stored observations for obs in a single transaction
func (r *ObservationRepository) Replace(ctx context.Context, obs []models.Observation) error {
	return database.Transaction(r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM observations`); err != nil {
			return errors.Wrap(err, "clear observations")
		}

		stmt, err := tx.PrepareNamedContext(ctx,
			`INSERT INTO observations (ts, country, ghi, dni, dhi) VALUES (:ts, :country, :ghi, :dni, :dhi)`)
		if err != nil {
			return errors.Wrap(err, "prepare insert")
		}
		defer stmt.Close()

		for i, o := range obs {
			if _, err := stmt.ExecContext(ctx, toRow(o)); err != nil {
				return errors.Wrapf(err, "insert observation %d", i)
			}
		}
		return nil
	})
}

// RecordRun stores the outcome of an ingest run
func (r *ObservationRepository) RecordRun(ctx context.Context, source string, records int, started, finished time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ingest_runs (source, records, started_at, finished_at) VALUES (?, ?, ?, ?)`,
		source, records, started.Unix(), finished.Unix())
	return errors.Wrap(err, "record ingest run")
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
