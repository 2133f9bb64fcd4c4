package ingest

import (
	"context"
	"fmt"
	"log"

	"github.com/ClickHouse/ch-go"
	"github.com/pkg/errors"

	"github.com/Danielmituku/solar-challenge-week0/internal/database"
	"github.com/Danielmituku/solar-challenge-week0/internal/models"
)

// DefaultBatchSize is the number of rows sent per native insert
const DefaultBatchSize = 100_000

// ClickHouseWriter bulk-loads observations with the native protocol
type ClickHouseWriter struct {
	conn      *ch.Client
	table     string
	batchSize int
}

// DialClickHouse opens a native connection and ensures table exists
func DialClickHouse(ctx context.Context, addr, db, user, password, table string) (*ClickHouseWriter, error) {
	conn, err := ch.Dial(ctx, ch.Options{
		Address:     addr,
		Database:    db,
		User:        user,
		Password:    password,
		Compression: ch.CompressionLZ4,
	})
	if err != nil {
		return nil, errors.Wrap(err, "dial clickhouse")
	}

	w := &ClickHouseWriter{conn: conn, table: table, batchSize: DefaultBatchSize}
	if err := conn.Do(ctx, ch.Query{Body: fmt.Sprintf(database.ObservationsDDL, table)}); err != nil {
		conn.Close()
		return nil, errors.Wrapf(err, "create table %s", table)
	}
	return w, nil
}

// Name identifies the writer in logs
func (w *ClickHouseWriter) Name() string {
	return "clickhouse:" + w.table
}

// Replace truncates the table and inserts obs in batches
func (w *ClickHouseWriter) Replace(ctx context.Context, obs []models.Observation) error {
	if err := w.conn.Do(ctx, ch.Query{Body: fmt.Sprintf("TRUNCATE TABLE %s", w.table)}); err != nil {
		return errors.Wrapf(err, "truncate %s", w.table)
	}

	batch := NewObservationBatch()
	inserted := 0
	for _, o := range obs {
		batch.Add(o)
		if batch.Len() >= w.batchSize {
			n := batch.Len()
			if err := batch.Flush(ctx, w.conn, w.table); err != nil {
				return errors.Wrapf(err, "insert into %s after %d rows", w.table, inserted)
			}
			inserted += n
		}
	}

	n := batch.Len()
	if err := batch.Flush(ctx, w.conn, w.table); err != nil {
		return errors.Wrapf(err, "insert into %s after %d rows", w.table, inserted)
	}
	inserted += n

	log.Printf("[ingest] inserted %d rows into %s", inserted, w.table)
	return nil
}

// Close closes the connection
func (w *ClickHouseWriter) Close() error {
	return w.conn.Close()
}
