package repository

import (
	"time"

	"github.com/sheriffsaka/alibaanah-v1/internal/ledger"
	"github.com/sheriffsaka/alibaanah-v1/internal/models"
)

// saveObserver receives the duration of each snapshot write.
type saveObserver interface {
	ObserveSnapshotSave(duration time.Duration)
}

// InstrumentedSnapshotStore decorates a snapshot store with save timing.
type InstrumentedSnapshotStore struct {
	inner    ledger.SnapshotStore
	observer saveObserver
}

// NewInstrumentedSnapshotStore wraps the store. A nil observer passes writes
// through untimed.
func NewInstrumentedSnapshotStore(inner ledger.SnapshotStore, observer saveObserver) *InstrumentedSnapshotStore {
	return &InstrumentedSnapshotStore{inner: inner, observer: observer}
}

func (s *InstrumentedSnapshotStore) Load() (*models.Snapshot, error) {
	return s.inner.Load()
}

func (s *InstrumentedSnapshotStore) Save(snap *models.Snapshot) error {
	start := time.Now()
	err := s.inner.Save(snap)
	if s.observer != nil {
		s.observer.ObserveSnapshotSave(time.Since(start))
	}
	return err
}
