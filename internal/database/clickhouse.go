package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/pkg/errors"

	"github.com/Danielmituku/solar-challenge-week0/internal/models"
)

// ObservationsDDL creates the columnar observation table. %s is the table name.
const ObservationsDDL = `
CREATE TABLE IF NOT EXISTS %s (
	ts      DateTime,
	country String,
	ghi     Float64,
	dni     Float64,
	dhi     Float64
) ENGINE = MergeTree
ORDER BY (country, ts)`

// ClickHouseDB reads observations from a ClickHouse table
type ClickHouseDB struct {
	conn  driver.Conn
	table string
}

// NewClickHouseDB connects to ClickHouse and ensures the observation table exists
func NewClickHouseDB(ctx context.Context, addr, database, username, password, table string) (*ClickHouseDB, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: database,
			Username: username,
			Password: password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout: 5 * time.Second,
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect to clickhouse")
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "ping clickhouse")
	}

	db := &ClickHouseDB{conn: conn, table: table}
	if err := db.InitSchema(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	log.Printf("[database] connected to clickhouse at %s (table %s)", addr, table)
	return db, nil
}

// InitSchema creates the observation table if it does not exist
func (db *ClickHouseDB) InitSchema(ctx context.Context) error {
	if err := db.conn.Exec(ctx, fmt.Sprintf(ObservationsDDL, db.table)); err != nil {
		return errors.Wrapf(err, "create table %s", db.table)
	}
	return nil
}

// Name identifies the source in logs and metadata
func (db *ClickHouseDB) Name() string {
	return "clickhouse:" + db.table
}

// Load reads every observation ordered by country and time
func (db *ClickHouseDB) Load(ctx context.Context) ([]models.Observation, error) {
	rows, err := db.conn.Query(ctx, fmt.Sprintf(
		"SELECT ts, country, ghi, dni, dhi FROM %s ORDER BY country, ts", db.table))
	if err != nil {
		return nil, errors.Wrap(err, "query observations")
	}
	defer rows.Close()

	var out []models.Observation
	for rows.Next() {
		var (
			ts            time.Time
			country       string
			ghi, dni, dhi float64
		)
		if err := rows.Scan(&ts, &country, &ghi, &dni, &dhi); err != nil {
			return nil, errors.Wrap(err, "scan observation")
		}
		out = append(out, models.Observation{
			Timestamp: ts.UTC(),
			Country:   models.Country(country),
			GHI:       ghi,
			DNI:       dni,
			DHI:       dhi,
		})
	}
	return out, errors.Wrap(rows.Err(), "iterate observations")
}

// Close closes the connection
func (db *ClickHouseDB) Close() error {
	return db.conn.Close()
}
