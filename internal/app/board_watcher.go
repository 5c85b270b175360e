package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// boardWatcher polls the database for changes to the open board and the
// board list, detecting external modifications (imports from the inbox,
// edits from another process) and emitting Wails events so the frontend
// auto-refreshes.
type boardWatcher struct {
	ctx context.Context
	app *App
	mu  sync.Mutex

	boardID   string
	lastSnap  string // snapshot updated_at fingerprint
	lastBoard string // board list fingerprint (count + max updated_at)
	stopCh    chan struct{}
}

func newBoardWatcher(ctx context.Context, app *App) *boardWatcher {
	return &boardWatcher{ctx: ctx, app: app}
}

// SetBoard updates the watched board ID. Called when the user opens a
// board.
func (w *boardWatcher) SetBoard(boardID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.boardID = boardID
	// Reset tracked state when switching boards
	w.lastSnap = ""
}

// Start begins the polling loop. Should be called once on app startup.
func (w *boardWatcher) Start() {
	w.stopCh = make(chan struct{})
	go w.pollLoop()
}

// Stop terminates the polling loop.
func (w *boardWatcher) Stop() {
	if w.stopCh != nil {
		close(w.stopCh)
	}
}

func (w *boardWatcher) pollLoop() {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.check()
		case <-w.stopCh:
			return
		case <-w.ctx.Done():
			return
		}
	}
}

func (w *boardWatcher) check() {
	w.mu.Lock()
	boardID := w.boardID
	w.mu.Unlock()

	// ── Open board's snapshot fingerprint ───────────────
	var snapFingerprint string
	if boardID != "" {
		ts, err := w.app.snaps.UpdatedAt(boardID)
		if err == nil && !ts.IsZero() {
			snapFingerprint = ts.UTC().Format(time.RFC3339Nano)
		}
	}

	// ── Board list fingerprint (sidebar) ────────────────
	var listFingerprint string
	boards, err := w.app.board.ListBoards()
	if err == nil {
		max := ""
		for _, b := range boards {
			if u := b.UpdatedAt.UTC().Format(time.RFC3339Nano); u > max {
				max = u
			}
		}
		listFingerprint = fmt.Sprintf("%d:%s", len(boards), max)
	}

	w.mu.Lock()
	snapChanged := boardID != "" && w.lastSnap != "" && w.lastSnap != snapFingerprint
	listChanged := w.lastBoard != "" && listFingerprint != "" && w.lastBoard != listFingerprint
	w.lastSnap = snapFingerprint
	if listFingerprint != "" {
		w.lastBoard = listFingerprint
	}
	w.mu.Unlock()

	if snapChanged {
		wailsRuntime.EventsEmit(w.ctx, "board:changed", map[string]string{"boardId": boardID})
	}
	if listChanged {
		wailsRuntime.EventsEmit(w.ctx, "boards:changed", nil)
	}
}
