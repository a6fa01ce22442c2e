package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/sheriffsaka/alibaanah-v1/internal/models"
	appErrors "github.com/sheriffsaka/alibaanah-v1/pkg/errors"
)

// ledgerDocumentName is the key of the single document row.
const ledgerDocumentName = "booking_ledger"

// PostgresSnapshotStore keeps the ledger document in one Postgres row,
// guarded by an optimistic revision: each Save compares-and-swaps against the
// revision it last read, so a second writer process cannot silently clobber
// the document.
//
// Schema:
//
//	CREATE TABLE IF NOT EXISTS ledger_snapshots (
//	    name     TEXT PRIMARY KEY,
//	    revision BIGINT NOT NULL,
//	    document JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresSnapshotStore struct {
	db *sqlx.DB

	mu       sync.Mutex
	revision int64
}

// NewPostgresSnapshotStore constructs the store.
func NewPostgresSnapshotStore(db *sqlx.DB) *PostgresSnapshotStore {
	return &PostgresSnapshotStore{db: db}
}

// Load fetches the document and remembers its revision for the next Save.
// Returns (nil, nil) when no row exists yet.
func (s *PostgresSnapshotStore) Load() (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	const query = `SELECT revision, document FROM ledger_snapshots WHERE name = $1`
	var row struct {
		Revision int64  `db:"revision"`
		Document []byte `db:"document"`
	}
	if err := s.db.Get(&row, query, ledgerDocumentName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.revision = 0
			return nil, nil
		}
		return nil, fmt.Errorf("load ledger snapshot: %w", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(row.Document, &snap); err != nil {
		return nil, fmt.Errorf("decode ledger snapshot: %w", err)
	}
	s.revision = row.Revision
	return &snap, nil
}

// Save upserts the document, failing with StaleSnapshot when another writer
// advanced the revision since our Load.
func (s *PostgresSnapshotStore) Save(snap *models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode ledger snapshot: %w", err)
	}

	if s.revision == 0 {
		const insert = `INSERT INTO ledger_snapshots (name, revision, document, updated_at)
        VALUES ($1, 1, $2, now())
        ON CONFLICT (name) DO NOTHING`
		res, err := s.db.Exec(insert, ledgerDocumentName, raw)
		if err != nil {
			return fmt.Errorf("insert ledger snapshot: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("insert ledger snapshot: %w", err)
		}
		if affected == 0 {
			return appErrors.ErrStaleSnapshot
		}
		s.revision = 1
		return nil
	}

	const update = `UPDATE ledger_snapshots
        SET revision = revision + 1, document = $1, updated_at = now()
        WHERE name = $2 AND revision = $3`
	res, err := s.db.Exec(update, raw, ledgerDocumentName, s.revision)
	if err != nil {
		return fmt.Errorf("update ledger snapshot: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update ledger snapshot: %w", err)
	}
	if affected == 0 {
		return appErrors.ErrStaleSnapshot
	}
	s.revision++
	return nil
}
