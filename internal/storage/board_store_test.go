package storage

import (
	"path/filepath"
	"testing"

	"sketchpad/internal/domain"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	dir := t.TempDir()
	db, err := New(filepath.Join(dir, "sketchpad.db"), filepath.Join(dir, "data"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBoardStore_CRUD(t *testing.T) {
	db := testDB(t)
	boards := NewBoardStore(db)

	b := &domain.Board{ID: "b1", Name: "Sketches"}
	if err := boards.CreateBoard(b); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := boards.GetBoard("b1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Sketches" {
		t.Errorf("name = %q", got.Name)
	}

	if err := boards.RenameBoard("b1", "Ideas"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	got, _ = boards.GetBoard("b1")
	if got.Name != "Ideas" {
		t.Errorf("renamed name = %q", got.Name)
	}

	list, err := boards.ListBoards()
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v, %d boards", err, len(list))
	}

	if err := boards.DeleteBoard("b1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := boards.GetBoard("b1"); err == nil {
		t.Error("deleted board still readable")
	}
}

func TestSnapshotStore_RoundTrip(t *testing.T) {
	db := testDB(t)
	boards := NewBoardStore(db)
	snaps := NewSnapshotStore(db)

	if err := boards.CreateBoard(&domain.Board{ID: "b1", Name: "Board"}); err != nil {
		t.Fatalf("create board: %v", err)
	}

	// Missing snapshot reads as nil, not as an error.
	data, err := snaps.Get("b1")
	if err != nil || data != nil {
		t.Fatalf("fresh board: data=%v err=%v", data, err)
	}

	payload := []byte(`{"history":[],"state":{"version":"2"}}`)
	if err := snaps.Set("b1", payload); err != nil {
		t.Fatalf("set: %v", err)
	}
	// Idempotent overwrite.
	if err := snaps.Set("b1", payload); err != nil {
		t.Fatalf("second set: %v", err)
	}

	data, err = snaps.Get("b1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("snapshot = %s", data)
	}

	ts, err := snaps.UpdatedAt("b1")
	if err != nil || ts.IsZero() {
		t.Errorf("updated_at: %v, %v", ts, err)
	}
}
