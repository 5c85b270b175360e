package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	mcpserver "sketchpad/internal/mcp"
	"sketchpad/internal/service"
	"sketchpad/internal/storage"
)

// noopEmitter is a no-op EventEmitter used in MCP-only mode (no Wails
// frontend).
type noopEmitter struct{}

func (noopEmitter) Emit(_ context.Context, _ string, _ any) {}

// ServeMCP runs the app as a standalone MCP server on stdin/stdout with
// no GUI. Boards are driven headless: no surface to paint and nobody to
// answer approval prompts, so destructive tools auto-approve.
func ServeMCP() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dir := dataDir()
	db, err := storage.New(filepath.Join(dir, "sketchpad.db"), dir)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	boards := storage.NewBoardStore(db)
	snaps := storage.NewSnapshotStore(db)
	emitter := noopEmitter{}

	openBoard := func(boardID string) (*service.BoardService, error) {
		if _, err := boards.GetBoard(boardID); err != nil {
			return nil, err
		}
		return service.NewBoardService(boardID, snaps,
			service.NopSurface{}, service.NopCursor{}, emitter)
	}

	mcpSrv := mcpserver.New(ctx, mcpserver.Deps{
		Emitter:     emitter,
		Boards:      boards,
		OpenBoard:   openBoard,
		AutoApprove: true,
	})

	log.Println("[MCP] Starting standalone stdio server...")
	if err := mcpSrv.ServeStdio(); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
