package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"sketchpad/internal/domain"
	"sketchpad/internal/export"
)

// ============================================================
// Boards
// ============================================================

func (a *App) ListBoards() ([]domain.Board, error) {
	return a.board.ListBoards()
}

func (a *App) CreateBoard(name string) (*domain.Board, error) {
	if name == "" {
		name = "Untitled board"
	}
	b := &domain.Board{ID: uuid.New().String(), Name: name}
	if err := a.board.CreateBoard(b); err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	return b, nil
}

func (a *App) RenameBoard(id, name string) error {
	return a.board.RenameBoard(id, name)
}

func (a *App) DeleteBoard(id string) error {
	a.servicesMu.Lock()
	delete(a.services, id)
	if a.currentBoardID == id {
		a.currentBoardID = ""
	}
	a.servicesMu.Unlock()
	return a.board.DeleteBoard(id)
}

// OpenBoard makes a board current: subsequent pointer commands operate
// on it. Returns its elements and state for the initial render.
func (a *App) OpenBoard(id string) (*BoardView, error) {
	svc, err := a.boardService(id)
	if err != nil {
		return nil, err
	}
	a.servicesMu.Lock()
	a.currentBoardID = id
	a.servicesMu.Unlock()
	a.watcher.SetBoard(id)

	return &BoardView{Elements: svc.Elements(), State: svc.State()}, nil
}

// BoardView is the payload the frontend renders a board from.
type BoardView struct {
	Elements []*domain.Element `json:"elements"`
	State    domain.BoardState `json:"state"`
}

// GetBoardView returns the current render payload for a board without
// changing which board is open.
func (a *App) GetBoardView(id string) (*BoardView, error) {
	svc, err := a.boardService(id)
	if err != nil {
		return nil, err
	}
	return &BoardView{Elements: svc.Elements(), State: svc.State()}, nil
}

// ExportBoardPDF writes the board's visible elements to a PDF in the
// data directory and returns the file path.
func (a *App) ExportBoardPDF(id string) (string, error) {
	svc, err := a.boardService(id)
	if err != nil {
		return "", err
	}
	b, err := a.board.GetBoard(id)
	if err != nil {
		return "", err
	}
	exportDir := filepath.Join(dataDir(), "exports")
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(exportDir, b.Name+".pdf")
	if err := export.BoardPDF(path, svc.Elements(), svc.Layers()); err != nil {
		return "", err
	}
	return path, nil
}

// BackupNow runs a full backup immediately instead of waiting for the
// schedule.
func (a *App) BackupNow() error {
	return a.backup.BackupAll(a.ctx)
}

// ImportBoardFile imports a board export file and returns the created
// board.
func (a *App) ImportBoardFile(path string) (*domain.Board, error) {
	return a.backup.ImportFile(path)
}
