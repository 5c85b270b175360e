package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"sketchpad/internal/domain"
	mcpserver "sketchpad/internal/mcp"
	"sketchpad/internal/service"
	"sketchpad/internal/storage"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context

	db    *storage.DB
	board *storage.BoardStore
	snaps *storage.SnapshotStore

	backup  *service.BackupService
	watcher *boardWatcher
	mcpSrv  *mcpserver.Server

	// One controller per opened board; pointer commands go to the
	// current one.
	servicesMu     sync.Mutex
	services       map[string]*service.BoardService
	currentBoardID string
}

// New creates a new App.
func New() *App {
	return &App{services: make(map[string]*service.BoardService)}
}

// dataDir returns the app's storage root.
func dataDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".local", "share", "sketchpad")
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	dir := dataDir()
	db, err := storage.New(filepath.Join(dir, "sketchpad.db"), dir)
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to open database: %v", err)
		return
	}

	a.db = db
	a.board = storage.NewBoardStore(db)
	a.snaps = storage.NewSnapshotStore(db)

	a.backup = service.NewBackupService(a.board, a.snaps, a,
		filepath.Join(dir, "backups"), filepath.Join(dir, "inbox"))
	if err := a.backup.Start(ctx, ""); err != nil {
		wailsRuntime.LogErrorf(ctx, "Failed to start backup service: %v", err)
	}

	a.watcher = newBoardWatcher(ctx, a)
	a.watcher.Start()

	// The MCP server shares the app's live controllers, so agent edits
	// land on the visible canvas and go through the same undo history.
	a.mcpSrv = mcpserver.New(ctx, mcpserver.Deps{
		Emitter:   a,
		Boards:    a.board,
		OpenBoard: a.boardService,
	})
	go func() {
		if err := a.mcpSrv.ServeStdio(); err != nil {
			wailsRuntime.LogErrorf(ctx, "MCP server stopped: %v", err)
		}
	}()
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(_ context.Context) {
	if a.backup != nil {
		a.backup.Stop()
	}
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.db != nil {
		a.db.Close()
	}
}

// Emit implements service.EventEmitter by forwarding to the frontend.
func (a *App) Emit(ctx context.Context, event string, data any) {
	wailsRuntime.EventsEmit(ctx, event, data)
}

// ── Board controller plumbing ──────────────────────────────

// boardService returns the cached controller for a board, creating one
// wired to the frontend canvas on first use.
func (a *App) boardService(boardID string) (*service.BoardService, error) {
	a.servicesMu.Lock()
	defer a.servicesMu.Unlock()

	if svc, ok := a.services[boardID]; ok {
		return svc, nil
	}
	if _, err := a.board.GetBoard(boardID); err != nil {
		return nil, err
	}

	svc, err := service.NewBoardService(boardID, a.snaps,
		&eventSurface{app: a, boardID: boardID},
		&eventCursor{app: a, boardID: boardID},
		a)
	if err != nil {
		return nil, err
	}
	a.services[boardID] = svc
	return svc, nil
}

// current returns the controller for the board the frontend has open.
func (a *App) current() (*service.BoardService, error) {
	a.servicesMu.Lock()
	id := a.currentBoardID
	a.servicesMu.Unlock()
	if id == "" {
		return nil, fmt.Errorf("no board open")
	}
	return a.boardService(id)
}

// ── Frontend canvas adapters ───────────────────────────────

// eventSurface implements service.Surface over Wails events. The
// frontend canvas subscribes and replays each drawing command.
type eventSurface struct {
	app     *App
	boardID string
}

func (s *eventSurface) Clear() {
	s.emit("surface:clear", nil)
}

func (s *eventSurface) StrokePath(points []domain.Point, color string, width float64) {
	s.emit("surface:stroke", map[string]any{"points": points, "color": color, "width": width})
}

func (s *eventSurface) ErasePath(points []domain.Point, width float64) {
	s.emit("surface:erase", map[string]any{"points": points, "width": width})
}

func (s *eventSurface) DrawText(text string, rect domain.Rect) {
	s.emit("surface:text", map[string]any{"text": text, "rect": rect})
}

func (s *eventSurface) Translate(dx, dy float64) {
	s.emit("surface:translate", map[string]float64{"dx": dx, "dy": dy})
}

func (s *eventSurface) emit(event string, data any) {
	if s.app.ctx == nil {
		return
	}
	wailsRuntime.EventsEmit(s.app.ctx, event, map[string]any{
		"boardId": s.boardID,
		"data":    data,
	})
}

// eventCursor implements service.CursorSink over Wails events.
type eventCursor struct {
	app     *App
	boardID string
	last    service.CursorKind
}

func (c *eventCursor) SetCursor(kind service.CursorKind) {
	if kind == c.last || c.app.ctx == nil {
		return
	}
	c.last = kind
	wailsRuntime.EventsEmit(c.app.ctx, "surface:cursor", map[string]string{
		"boardId": c.boardID,
		"cursor":  string(kind),
	})
}

// ── MCP approvals ──────────────────────────────────────────

// ApproveMCPAction forwards a user approval to the MCP approval queue.
func (a *App) ApproveMCPAction(actionID string) {
	if a.mcpSrv != nil {
		a.mcpSrv.Approve(actionID)
	}
}

// RejectMCPAction forwards a user rejection to the MCP approval queue.
func (a *App) RejectMCPAction(actionID string) {
	if a.mcpSrv != nil {
		a.mcpSrv.Reject(actionID)
	}
}
