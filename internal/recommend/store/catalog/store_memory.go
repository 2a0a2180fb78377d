package catalog

import (
	"context"
	"fmt"
	"sync"

	"dayzero/internal/recommend/models"
)

type statsKey struct {
	countryCode   string
	programTypeID int
}

// InMemoryStore holds popularity records in memory, keyed by country and
// program. Used in tests and local development.
type InMemoryStore struct {
	mu    sync.RWMutex
	stats map[statsKey][]models.PopularityRecord
}

// NewInMemory constructs an empty in-memory catalog store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{stats: make(map[statsKey][]models.PopularityRecord)}
}

// Put replaces the records for a country/program pair.
func (s *InMemoryStore) Put(countryCode string, programTypeID int, records []models.PopularityRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats[statsKey{countryCode, programTypeID}] = records
}

func (s *InMemoryStore) LookupPopularity(_ context.Context, countryCode string, programTypeID int) ([]models.PopularityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.stats[statsKey{countryCode, programTypeID}]
	// Copy so callers cannot mutate the stored slice.
	out := make([]models.PopularityRecord, len(records))
	copy(out, records)
	return out, nil
}

// failingStore returns a fixed error from every lookup; used in tests to
// exercise upstream-unavailable handling.
type failingStore struct{ err error }

// NewFailing constructs a Store whose lookups always fail.
func NewFailing(msg string) Store {
	return &failingStore{err: fmt.Errorf("%s", msg)}
}

func (s *failingStore) LookupPopularity(context.Context, string, int) ([]models.PopularityRecord, error) {
	return nil, s.err
}
