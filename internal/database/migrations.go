package database

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"path"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// MigrationManager applies the versioned SQL files in a filesystem
type MigrationManager struct {
	db    *sqlx.DB
	files fs.FS
	dir   string
}

// NewMigrationManager creates a migration manager over the embedded migrations
func NewMigrationManager(db *sqlx.DB) *MigrationManager {
	return &MigrationManager{
		db:    db,
		files: migrationFiles,
		dir:   "migrations",
	}
}

// InitMigrationsTable creates the migrations tracking table
func (m *MigrationManager) InitMigrationsTable() error {
	_, err := m.db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return errors.Wrap(err, "create migrations table")
}

// AppliedVersions returns the set of applied migration versions
func (m *MigrationManager) AppliedVersions() (map[int]bool, error) {
	var versions []int
	if err := m.db.Select(&versions, "SELECT version FROM migrations ORDER BY version"); err != nil {
		return nil, errors.Wrap(err, "query migrations")
	}

	applied := make(map[int]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}

// LoadMigrations reads the migration files sorted by version.
// File names follow NNN_description.sql.
func (m *MigrationManager) LoadMigrations() ([]Migration, error) {
	entries, err := fs.ReadDir(m.files, m.dir)
	if err != nil {
		return nil, errors.Wrap(err, "read migrations directory")
	}

	var migrations []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		var version int
		var name string
		if _, err := fmt.Sscanf(entry.Name(), "%d_%s", &version, &name); err != nil {
			log.Printf("[database] skipping migration with invalid name: %s", entry.Name())
			continue
		}

		content, err := fs.ReadFile(m.files, path.Join(m.dir, entry.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "read migration %s", entry.Name())
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    strings.TrimSuffix(entry.Name(), ".sql"),
			SQL:     string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

// ApplyMigration runs one migration and records it
func (m *MigrationManager) ApplyMigration(mig Migration) error {
	err := Transaction(m.db, func(tx *sqlx.Tx) error {
		if _, err := tx.Exec(mig.SQL); err != nil {
			return errors.Wrapf(err, "execute migration %d", mig.Version)
		}
		if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", mig.Version, mig.Name); err != nil {
			return errors.Wrapf(err, "record migration %d", mig.Version)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("[database] applied migration %d: %s", mig.Version, mig.Name)
	return nil
}

// RunMigrations applies all pending migrations
func (m *MigrationManager) RunMigrations() error {
	if err := m.InitMigrationsTable(); err != nil {
		return err
	}

	applied, err := m.AppliedVersions()
	if err != nil {
		return err
	}

	migrations, err := m.LoadMigrations()
	if err != nil {
		return err
	}

	for _, mig := range migrations {
		if applied[mig.Version] {
			continue
		}
		if err := m.ApplyMigration(mig); err != nil {
			return err
		}
	}
	return nil
}
