package repository

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Danielmituku/solar-challenge-week0/internal/database"
	"github.com/Danielmituku/solar-challenge-week0/internal/models"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "solar.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func fixture() []models.Observation {
	day := time.Date(2021, 8, 9, 0, 0, 0, 0, time.UTC)
	return []models.Observation{
		{Timestamp: day.Add(6 * time.Hour), Country: models.CountryBenin, GHI: 120.5, DNI: 80, DHI: 40},
		{Timestamp: day.Add(30 * time.Hour), Country: models.CountryBenin, GHI: math.NaN(), DNI: 90, DHI: 45},
		{Timestamp: day.Add(12 * time.Hour), Country: models.CountryTogo, GHI: 600, DNI: 400, DHI: 120},
	}
}

func TestReplaceAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewObservationRepository(openTestDB(t))

	if err := repo.Replace(ctx, fixture()); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Load returned %d rows, want 3", len(got))
	}
	if got[0].GHI != 120.5 || got[0].Country != models.CountryBenin {
		t.Errorf("row 0 = %+v", got[0])
	}
	if !math.IsNaN(got[1].GHI) {
		t.Errorf("row 1 GHI = %v, want NaN from NULL", got[1].GHI)
	}
	if !got[2].Timestamp.Equal(fixture()[2].Timestamp) || got[2].Timestamp.Location() != time.UTC {
		t.Errorf("row 2 timestamp = %v", got[2].Timestamp)
	}

	// a second replace must not append
	if err := repo.Replace(ctx, fixture()[:1]); err != nil {
		t.Fatalf("second Replace failed: %v", err)
	}
	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

func TestFind(t *testing.T) {
	ctx := context.Background()
	repo := NewObservationRepository(openTestDB(t))
	if err := repo.Replace(ctx, fixture()); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	day := time.Date(2021, 8, 9, 0, 0, 0, 0, time.UTC)

	t.Run("ByCountry", func(t *testing.T) {
		got, err := repo.Find(ctx, models.ObservationQuery{Countries: []models.Country{models.CountryTogo}})
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		if len(got) != 1 || got[0].Country != models.CountryTogo {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("ByDay", func(t *testing.T) {
		got, err := repo.Find(ctx, models.ObservationQuery{Start: &day, End: &day})
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("got %d rows, want 2", len(got))
		}
	})

	t.Run("Limit", func(t *testing.T) {
		got, err := repo.Find(ctx, models.ObservationQuery{Limit: 1})
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("got %d rows, want 1", len(got))
		}
	})
}

func TestRecordRun(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewObservationRepository(db)

	now := time.Now()
	if err := repo.RecordRun(ctx, "csv:data", 42, now.Add(-time.Second), now); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	var records int
	if err := db.Get(&records, `SELECT records FROM ingest_runs`); err != nil {
		t.Fatalf("select ingest_runs: %v", err)
	}
	if records != 42 {
		t.Errorf("records = %d", records)
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	db := openTestDB(t)
	if err := database.NewMigrationManager(db).RunMigrations(); err != nil {
		t.Fatalf("second RunMigrations failed: %v", err)
	}

	var versions []int
	if err := db.Select(&versions, `SELECT version FROM migrations ORDER BY version`); err != nil {
		t.Fatalf("select migrations: %v", err)
	}
	if len(versions) != 2 || versions[0] != 1 || versions[1] != 2 {
		t.Errorf("versions = %v", versions)
	}
}
