package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/Danielmituku/solar-challenge-week0/internal/dataset"
	"github.com/Danielmituku/solar-challenge-week0/internal/models"
)

// Source loads the full observation set from some backing store
type Source interface {
	Name() string
	Load(ctx context.Context) ([]models.Observation, error)
}

// ErrNotLoaded is returned when the store is queried before the first load
var ErrNotLoaded = errors.New("dataset not loaded")

// DatasetStore holds the current observation table and swaps it on reload
type DatasetStore struct {
	source Source

	mu       sync.RWMutex
	table    *dataset.Table
	loadedAt time.Time
}

// NewDatasetStore creates an empty store backed by source
func NewDatasetStore(source Source) *DatasetStore {
	return &DatasetStore{source: source}
}

// Reload loads the source and replaces the current table.
// On failure the previous table stays in place.
func (s *DatasetStore) Reload(ctx context.Context) error {
	start := time.Now()
	rows, err := s.source.Load(ctx)
	if err != nil {
		return errors.Wrapf(err, "load %s", s.source.Name())
	}

	table := dataset.NewTable(rows)

	s.mu.Lock()
	s.table = table
	s.loadedAt = time.Now()
	s.mu.Unlock()

	log.Printf("[store] loaded %d observations from %s in %v", table.Len(), s.source.Name(), time.Since(start).Round(time.Millisecond))
	return nil
}

// Table returns the current table
func (s *DatasetStore) Table() (*dataset.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return nil, ErrNotLoaded
	}
	return s.table, nil
}

// LoadedAt returns when the current table was loaded
func (s *DatasetStore) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// SourceName returns the name of the backing source
func (s *DatasetStore) SourceName() string {
	return s.source.Name()
}
