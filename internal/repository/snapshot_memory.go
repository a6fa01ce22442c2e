package repository

import (
	"sync"

	"github.com/sheriffsaka/alibaanah-v1/internal/models"
)

// MemorySnapshotStore keeps the snapshot in process memory. Used in tests and
// for ephemeral runs.
type MemorySnapshotStore struct {
	mu   sync.Mutex
	snap *models.Snapshot

	// FailNextSave, when set, makes the next Save return it. Tests use this
	// to exercise write-failure rollback.
	FailNextSave error
	SaveCount    int
}

// NewMemorySnapshotStore constructs an empty in-memory store.
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{}
}

// Load returns a copy of the held snapshot, or nil when empty.
func (s *MemorySnapshotStore) Load() (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone(), nil
}

// Save replaces the held snapshot.
func (s *MemorySnapshotStore) Save(snap *models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailNextSave != nil {
		err := s.FailNextSave
		s.FailNextSave = nil
		return err
	}
	s.snap = snap.Clone()
	s.SaveCount++
	return nil
}
