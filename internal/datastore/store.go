// Package datastore keeps uploaded datasets in memory, keyed by ID, with
// capacity and idle-time eviction. Nothing is persisted; a restart forgets
// every dataset.
package datastore

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/trendlens/internal/loader"
	"github.com/wonny/trendlens/pkg/logger"
)

// ErrNotFound is returned when a dataset ID is unknown or already evicted.
var ErrNotFound = errors.New("dataset not found")

// Dataset is one stored upload. Bundles are immutable once stored, so the
// same Dataset may be read by many requests at once.
type Dataset struct {
	ID         string
	Bundle     *loader.Bundle
	CreatedAt  time.Time
	LastAccess time.Time
}

// Store is a bounded in-memory dataset registry.
type Store struct {
	mu       sync.RWMutex
	datasets map[string]*Dataset
	capacity int
	log      *logger.Logger
}

// New creates a store that holds at most capacity datasets.
func New(capacity int, log *logger.Logger) *Store {
	return &Store{
		datasets: make(map[string]*Dataset),
		capacity: capacity,
		log:      log,
	}
}

// Put stores a bundle under a fresh ID. When the store is full the dataset
// with the oldest access time is evicted first.
func (s *Store) Put(bundle *loader.Bundle) *Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.datasets) >= s.capacity {
		s.evictOldestLocked()
	}

	now := time.Now().UTC()
	d := &Dataset{
		ID:         uuid.NewString(),
		Bundle:     bundle,
		CreatedAt:  now,
		LastAccess: now,
	}
	s.datasets[d.ID] = d

	s.log.WithFields(map[string]interface{}{
		"dataset_id": d.ID,
		"stored":     len(s.datasets),
	}).Info("Dataset stored")

	return d
}

// Get returns a dataset and marks it as recently used.
func (s *Store) Get(id string) (*Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.datasets[id]
	if !ok {
		return nil, ErrNotFound
	}
	d.LastAccess = time.Now().UTC()
	return d, nil
}

// Delete removes a dataset.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.datasets[id]; !ok {
		return ErrNotFound
	}
	delete(s.datasets, id)

	s.log.WithField("dataset_id", id).Info("Dataset deleted")
	return nil
}

// Len reports how many datasets are currently stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.datasets)
}

// EvictExpired removes every dataset idle for longer than ttl and returns
// how many were removed.
func (s *Store) EvictExpired(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().UTC().Add(-ttl)
	evicted := 0
	for id, d := range s.datasets {
		if d.LastAccess.Before(cutoff) {
			delete(s.datasets, id)
			evicted++
		}
	}

	if evicted > 0 {
		s.log.WithFields(map[string]interface{}{
			"evicted":   evicted,
			"remaining": len(s.datasets),
		}).Info("Expired datasets evicted")
	}
	return evicted
}

// evictOldestLocked drops the least recently used dataset. Caller holds mu.
func (s *Store) evictOldestLocked() {
	var oldest *Dataset
	for _, d := range s.datasets {
		if oldest == nil || d.LastAccess.Before(oldest.LastAccess) {
			oldest = d
		}
	}
	if oldest == nil {
		return
	}
	delete(s.datasets, oldest.ID)

	s.log.WithField("dataset_id", oldest.ID).Warn("Store full, evicted least recently used dataset")
}
