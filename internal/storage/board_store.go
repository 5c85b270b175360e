package storage

import (
	"database/sql"
	"fmt"
	"time"

	"sketchpad/internal/domain"
)

// BoardStore implements domain.BoardStore on SQLite.
type BoardStore struct {
	db *DB
}

func NewBoardStore(db *DB) *BoardStore {
	return &BoardStore{db: db}
}

func (s *BoardStore) CreateBoard(b *domain.Board) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	_, err := s.db.conn.Exec(
		`INSERT INTO boards (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		b.ID, b.Name, b.CreatedAt, b.UpdatedAt,
	)
	return err
}

func (s *BoardStore) GetBoard(id string) (*domain.Board, error) {
	b := &domain.Board{}
	err := s.db.conn.QueryRow(
		`SELECT id, name, created_at, updated_at FROM boards WHERE id = ?`, id,
	).Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("board not found: %s", id)
	}
	return b, err
}

func (s *BoardStore) ListBoards() ([]domain.Board, error) {
	rows, err := s.db.conn.Query(
		`SELECT id, name, created_at, updated_at FROM boards ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Board
	for rows.Next() {
		b := domain.Board{}
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

func (s *BoardStore) RenameBoard(id, name string) error {
	_, err := s.db.conn.Exec(
		`UPDATE boards SET name = ?, updated_at = ? WHERE id = ?`,
		name, time.Now(), id,
	)
	return err
}

func (s *BoardStore) DeleteBoard(id string) error {
	if _, err := s.db.conn.Exec(`DELETE FROM board_snapshots WHERE board_id = ?`, id); err != nil {
		return err
	}
	_, err := s.db.conn.Exec(`DELETE FROM boards WHERE id = ?`, id)
	return err
}

var _ domain.BoardStore = (*BoardStore)(nil)
