package storage

import (
	"database/sql"
	"fmt"
	"time"

	"sketchpad/internal/domain"
)

// SnapshotStore is the key-value store the engine persists through:
// one full-state JSON record per board, overwritten on every save.
type SnapshotStore struct {
	db *DB
}

func NewSnapshotStore(db *DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Get returns the snapshot for a board, or nil when none has been written
// yet (a fresh board, not an error).
func (s *SnapshotStore) Get(key string) ([]byte, error) {
	var data string
	err := s.db.conn.QueryRow(
		`SELECT snapshot_json FROM board_snapshots WHERE board_id = ?`, key,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return []byte(data), nil
}

// Set overwrites the snapshot for a board. Writes are idempotent:
// re-writing identical state is harmless.
func (s *SnapshotStore) Set(key string, value []byte) error {
	_, err := s.db.conn.Exec(
		`INSERT INTO board_snapshots (board_id, snapshot_json, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(board_id) DO UPDATE SET snapshot_json = excluded.snapshot_json,
		 updated_at = excluded.updated_at`,
		key, string(value), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}

// UpdatedAt returns the last write time for a board's snapshot, used by
// the change watcher to detect external edits. Zero time when no snapshot
// exists.
func (s *SnapshotStore) UpdatedAt(key string) (time.Time, error) {
	var t time.Time
	err := s.db.conn.QueryRow(
		`SELECT updated_at FROM board_snapshots WHERE board_id = ?`, key,
	).Scan(&t)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	return t, err
}

var _ domain.SnapshotStore = (*SnapshotStore)(nil)
