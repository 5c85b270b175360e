package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"sketchpad/internal/domain"
)

// memBoardStore is an in-memory BoardStore for tests.
type memBoardStore struct {
	boards map[string]*domain.Board
}

func newMemBoardStore() *memBoardStore {
	return &memBoardStore{boards: map[string]*domain.Board{}}
}

func (m *memBoardStore) CreateBoard(b *domain.Board) error {
	m.boards[b.ID] = b
	return nil
}

func (m *memBoardStore) GetBoard(id string) (*domain.Board, error) {
	b, ok := m.boards[id]
	if !ok {
		return nil, fmt.Errorf("board %s not found", id)
	}
	return b, nil
}

func (m *memBoardStore) ListBoards() ([]domain.Board, error) {
	out := make([]domain.Board, 0, len(m.boards))
	for _, b := range m.boards {
		out = append(out, *b)
	}
	return out, nil
}

func (m *memBoardStore) RenameBoard(id, name string) error {
	b, err := m.GetBoard(id)
	if err != nil {
		return err
	}
	b.Name = name
	return nil
}

func (m *memBoardStore) DeleteBoard(id string) error {
	delete(m.boards, id)
	return nil
}

func TestBackupAll(t *testing.T) {
	boards := newMemBoardStore()
	snaps := newMemStore()
	dir := t.TempDir()

	boards.CreateBoard(&domain.Board{ID: "b1", Name: "One"})
	boards.CreateBoard(&domain.Board{ID: "b2", Name: "Two"})
	snaps.Set("b1", []byte(`{"history":[],"state":{"version":"2"}}`))

	svc := NewBackupService(boards, snaps, &MockEmitter{}, dir, "")
	if err := svc.BackupAll(context.Background()); err != nil {
		t.Fatalf("backup: %v", err)
	}

	for _, id := range []string{"b1", "b2"} {
		data, err := os.ReadFile(filepath.Join(dir, id+".json"))
		if err != nil {
			t.Fatalf("backup file for %s: %v", id, err)
		}
		var bf BackupFile
		if err := json.Unmarshal(data, &bf); err != nil {
			t.Fatalf("parse backup %s: %v", id, err)
		}
		if bf.Board.ID != id {
			t.Errorf("backup %s carries board %s", id, bf.Board.ID)
		}
	}
}

func TestImportFile_BackupFormat(t *testing.T) {
	boards := newMemBoardStore()
	snaps := newMemStore()
	svc := NewBackupService(boards, snaps, &MockEmitter{}, t.TempDir(), "")

	export := BackupFile{
		Board:    domain.Board{ID: "orig", Name: "Sketches"},
		Snapshot: json.RawMessage(`{"history":[],"state":{"version":"2"}}`),
	}
	data, _ := json.Marshal(export)
	path := filepath.Join(t.TempDir(), "sketches.json")
	os.WriteFile(path, data, 0o644)

	board, err := svc.ImportFile(path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if board.Name != "Sketches" {
		t.Errorf("name = %q", board.Name)
	}
	if board.ID == "orig" {
		t.Error("import reused the exported board ID")
	}
	if snaps.data[board.ID] == nil {
		t.Error("imported snapshot not stored")
	}
}

func TestImportFile_LegacySnapshot(t *testing.T) {
	boards := newMemBoardStore()
	snaps := newMemStore()
	svc := NewBackupService(boards, snaps, &MockEmitter{}, t.TempDir(), "")

	legacy := `{"history":[{"id":"e1","type":"stroke","positions":[{"x":1,"y":2}]}],"state":{}}`
	path := filepath.Join(t.TempDir(), "old-board.json")
	os.WriteFile(path, []byte(legacy), 0o644)

	board, err := svc.ImportFile(path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if board.Name != "old-board" {
		t.Errorf("name = %q, want file stem", board.Name)
	}

	// The stored snapshot comes in migrated: current version, element
	// adopted into the default layer.
	stack, state := domain.DecodeSnapshot(snaps.data[board.ID])
	if state.Version != domain.SnapshotFormatVersion {
		t.Errorf("version = %q", state.Version)
	}
	if len(stack) != 1 || stack[0].LayerID != state.Layer.Stack[0].ID {
		t.Errorf("legacy element not adopted: %+v", stack)
	}
}

func TestImportFile_RejectsGarbage(t *testing.T) {
	boards := newMemBoardStore()
	snaps := newMemStore()
	svc := NewBackupService(boards, snaps, &MockEmitter{}, t.TempDir(), "")

	path := filepath.Join(t.TempDir(), "garbage.json")
	os.WriteFile(path, []byte("not json at all"), 0o644)

	if _, err := svc.ImportFile(path); err == nil {
		t.Fatal("garbage import succeeded")
	}
	if len(boards.boards) != 0 {
		t.Error("garbage import created a board")
	}
}
