package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"sketchpad/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Backup Service — scheduled exports and the import inbox
// ─────────────────────────────────────────────────────────────

// DefaultBackupSchedule runs backups at the top of every hour.
const DefaultBackupSchedule = "0 * * * *"

// BackupService periodically exports every board to JSON files in the
// backup directory, and watches an inbox directory: any .json file
// dropped there is imported as a new board.
type BackupService struct {
	boards  domain.BoardStore
	snaps   domain.SnapshotStore
	emitter EventEmitter

	backupDir string
	inboxDir  string

	// watcher / cron lifecycle
	watchCancel context.CancelFunc
	watcher     *fsnotify.Watcher
	cronSched   *cron.Cron
}

// BackupFile is the on-disk export format: board metadata plus the raw
// snapshot record.
type BackupFile struct {
	Board    domain.Board    `json:"board"`
	Snapshot json.RawMessage `json:"snapshot"`
}

func NewBackupService(boards domain.BoardStore, snaps domain.SnapshotStore, emitter EventEmitter, backupDir, inboxDir string) *BackupService {
	return &BackupService{
		boards:    boards,
		snaps:     snaps,
		emitter:   emitter,
		backupDir: backupDir,
		inboxDir:  inboxDir,
	}
}

// Start schedules periodic backups under the given cron expression
// (DefaultBackupSchedule when empty) and begins watching the inbox.
func (s *BackupService) Start(ctx context.Context, schedule string) error {
	s.stopWatchers()

	if schedule == "" {
		schedule = DefaultBackupSchedule
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		if err := s.BackupAll(ctx); err != nil {
			log.Printf("backup cron: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", schedule, err)
	}
	c.Start()
	s.cronSched = c

	if err := s.startInboxWatcher(ctx); err != nil {
		return err
	}
	return nil
}

// BackupAll writes one JSON file per board into the backup directory.
// Files are named by board ID, so each run overwrites the previous
// backup of the same board.
func (s *BackupService) BackupAll(ctx context.Context) error {
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}

	boards, err := s.boards.ListBoards()
	if err != nil {
		return fmt.Errorf("list boards: %w", err)
	}

	for _, b := range boards {
		snap, err := s.snaps.Get(b.ID)
		if err != nil {
			log.Printf("backup: board %s: %v", b.ID, err)
			continue
		}
		if snap == nil {
			snap = []byte("null")
		}
		data, err := json.MarshalIndent(BackupFile{Board: b, Snapshot: snap}, "", "  ")
		if err != nil {
			log.Printf("backup: board %s: %v", b.ID, err)
			continue
		}
		path := filepath.Join(s.backupDir, b.ID+".json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			log.Printf("backup: write %s: %v", path, err)
		}
	}

	s.emitter.Emit(ctx, "backup:completed", map[string]int{"boards": len(boards)})
	return nil
}

// ImportFile reads a board export (either a BackupFile or a bare
// snapshot record) and creates a new board from it. The imported board
// always gets a fresh ID so re-importing a backup never collides.
func (s *BackupService) ImportFile(path string) (*domain.Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import %s: %w", path, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("import %s: not valid JSON", path)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	snapshot := data

	var backup BackupFile
	if err := json.Unmarshal(data, &backup); err == nil && len(backup.Snapshot) > 0 && string(backup.Snapshot) != "null" {
		snapshot = backup.Snapshot
		if backup.Board.Name != "" {
			name = backup.Board.Name
		}
	}

	// Normalize through the decoder so legacy exports come in migrated.
	stack, state := domain.DecodeSnapshot(snapshot)
	normalized, err := domain.EncodeSnapshot(stack, state)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}

	board := &domain.Board{ID: uuid.New().String(), Name: name}
	if err := s.boards.CreateBoard(board); err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	if err := s.snaps.Set(board.ID, normalized); err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return board, nil
}

// startInboxWatcher watches the inbox directory for dropped .json files
// and imports each one. Imported files are renamed with an .imported
// suffix so a restart does not re-import them.
func (s *BackupService) startInboxWatcher(ctx context.Context) error {
	if s.inboxDir == "" {
		return nil
	}
	if err := os.MkdirAll(s.inboxDir, 0o755); err != nil {
		return fmt.Errorf("create inbox dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create inbox watcher: %w", err)
	}
	if err := watcher.Add(s.inboxDir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch inbox %s: %w", s.inboxDir, err)
	}
	s.watcher = watcher

	watchCtx, cancel := context.WithCancel(context.Background())
	s.watchCancel = cancel

	go func() {
		// Debounce per path: editors and file copies fire several events
		// while a file is still being written.
		timers := make(map[string]*time.Timer)
		for {
			select {
			case <-watchCtx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if strings.ToLower(filepath.Ext(event.Name)) != ".json" {
					continue
				}
				path := event.Name
				if t, exists := timers[path]; exists {
					t.Stop()
				}
				timers[path] = time.AfterFunc(500*time.Millisecond, func() {
					s.importInboxFile(ctx, path)
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("inbox watcher: %v", err)
			}
		}
	}()

	log.Printf("inbox watcher: watching %s", s.inboxDir)
	return nil
}

func (s *BackupService) importInboxFile(ctx context.Context, path string) {
	board, err := s.ImportFile(path)
	if err != nil {
		log.Printf("inbox import: %v", err)
		return
	}
	if err := os.Rename(path, path+".imported"); err != nil {
		log.Printf("inbox import: mark %s: %v", path, err)
	}
	log.Printf("inbox import: created board %s (%s)", board.Name, board.ID)
	s.emitter.Emit(ctx, "board:imported", map[string]string{
		"boardId": board.ID,
		"name":    board.Name,
	})
}

// Stop tears down the scheduler and the inbox watcher.
func (s *BackupService) Stop() {
	s.stopWatchers()
}

func (s *BackupService) stopWatchers() {
	if s.watchCancel != nil {
		s.watchCancel()
		s.watchCancel = nil
	}
	if s.watcher != nil {
		s.watcher.Close()
		s.watcher = nil
	}
	if s.cronSched != nil {
		s.cronSched.Stop()
		s.cronSched = nil
	}
}
