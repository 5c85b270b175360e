package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"sketchpad/internal/domain"
	"sketchpad/internal/geom"
	"sketchpad/internal/history"
	"sketchpad/internal/transform"
)

// ─────────────────────────────────────────────────────────────
// Board Service — orchestrates the element/history engine
// ─────────────────────────────────────────────────────────────

// BoardService is the board controller: it owns one board's history, layer
// registry and pan offset, resolves pointer commands through the geometry
// and transform engines, and triggers repaint + persistence after every
// mutation. All operations run to completion synchronously; invalid input
// is a silent no-op rather than an error.
type BoardService struct {
	boardID string
	store   domain.SnapshotStore
	surface Surface
	cursor  CursorSink
	emitter EventEmitter

	// HitThreshold is the stroke-hit proximity in board units. Whether it
	// should scale with pan/zoom is undecided; it is a field rather than a
	// constant so callers can adjust it.
	HitThreshold float64

	// mu guards the board state below. Commands arrive both from window
	// event bindings and from agent tool calls on their own goroutine.
	mu       sync.Mutex
	state    domain.BoardState
	hist     *history.History
	active   *domain.Element    // stroke being drawn, nil outside a draw
	pending  bool               // active stroke not yet registered (no points)
	selected string             // selected element ID, "" when none
	drag     *transform.Session // live drag, nil outside a drag
}

// NewBoardService loads (or initializes) the board identified by boardID
// from the snapshot store.
func NewBoardService(boardID string, store domain.SnapshotStore, surface Surface, cursor CursorSink, emitter EventEmitter) (*BoardService, error) {
	data, err := store.Get(boardID)
	if err != nil {
		return nil, fmt.Errorf("load board %s: %w", boardID, err)
	}
	stack, state := domain.DecodeSnapshot(data)

	s := &BoardService{
		boardID:      boardID,
		store:        store,
		surface:      surface,
		cursor:       cursor,
		emitter:      emitter,
		HitThreshold: geom.DefaultHitThreshold,
		state:        state,
		hist:         history.New(stack),
	}
	s.hist.SortByLayerOrder(state.Layer.IndexOf)
	if state.OriginTranslate != (domain.Point{}) {
		surface.Translate(state.OriginTranslate.X, state.OriginTranslate.Y)
	}
	s.repaint()
	return s, nil
}

// BoardID returns the board this service operates on.
func (s *BoardService) BoardID() string { return s.boardID }

// State returns the current board state (style, pan offset, layers).
func (s *BoardService) State() domain.BoardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Elements returns the live element stack. Read-only for callers.
func (s *BoardService) Elements() []*domain.Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.Current()
}

// Layers returns the layer registry.
func (s *BoardService) Layers() *domain.LayerRegistry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Layer
}

// SelectedID returns the ID of the selected element, or "".
func (s *BoardService) SelectedID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// toBoard converts device coordinates to board coordinates by removing
// the pan offset.
func (s *BoardService) toBoard(p domain.Point) domain.Point {
	return domain.Point{X: p.X - s.state.OriginTranslate.X, Y: p.Y - s.state.OriginTranslate.Y}
}

// ── Stroke creation ────────────────────────────────────────

// BeginStroke cancels any selection and opens a new stroke or eraser
// element on the current layer. The element enters history with its first
// point; a down/up with no movement leaves no trace.
func (s *BoardService) BeginStroke(kind domain.ElementType) {
	if kind != domain.ElementTypeStroke && kind != domain.ElementTypeEraser {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearSelectionState()

	el := &domain.Element{
		ID:      uuid.New().String(),
		Type:    kind,
		LayerID: s.state.Layer.Current,
	}
	if kind == domain.ElementTypeStroke {
		el.Color = s.state.CurrentLineColor
		el.StrokeWidth = s.state.CurrentLineWidth
	} else {
		el.StrokeWidth = s.state.CleanWidth
	}
	s.active = el
	s.pending = true
}

// MovePointer handles a pointer move: it extends the active stroke,
// advances the live drag, or — with neither in progress — updates hover
// cursor feedback.
func (s *BoardService) MovePointer(device domain.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.toBoard(device)

	switch {
	case s.drag != nil:
		s.drag.Update(p)
		s.repaint()
		s.persist()
	case s.active != nil:
		if s.pending {
			s.hist.Add(s.active)
			s.hist.SortByLayerOrder(s.state.Layer.IndexOf)
			s.pending = false
		}
		s.active.AppendPoint(p)
		s.repaint()
		s.persist()
	default:
		s.updateHoverCursor(p)
	}
}

// LiftPointer ends the active stroke or drag. A drag commits its net
// effect as one history entry; an untouched stroke is discarded.
func (s *BoardService) LiftPointer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.drag != nil:
		s.drag.End(s.hist)
		s.drag = nil
		s.repaint()
		s.persist()
	case s.active != nil:
		committed := !s.pending
		s.active = nil
		s.pending = false
		if committed {
			s.repaint()
			s.persist()
		}
	}
}

// CancelDrag abandons a drag without committing (pointer left the
// surface). The session restores the element's pre-drag geometry; the
// timeline is untouched.
func (s *BoardService) CancelDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drag == nil {
		return
	}
	s.drag.Cancel()
	s.clearSelectionState()
	s.repaint()
	s.persist()
}

// ── Selection / transform ──────────────────────────────────

// SelectAt resolves a pointer-down in selection mode. Over a handle of
// the already selected element it starts a drag session; otherwise it
// scans topmost-first through visible layers and selects the first hit.
func (s *BoardService) SelectAt(device domain.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.toBoard(device)

	if sel := s.selectedElement(); sel != nil {
		if h := geom.ClassifyHandle(p, sel.Rect); h != geom.HandleNone {
			s.drag = transform.Begin(s.hist, sel, h, p)
			return
		}
	}

	s.selected = ""
	s.hist.ForEach(history.Last, func(_ int, el *domain.Element) bool {
		if !s.state.Layer.IsVisible(el.LayerID) {
			return true
		}
		if geom.HitTestElement(p, el, s.HitThreshold) {
			s.selected = el.ID
			return false
		}
		return true
	})
	s.repaint()
}

// ClearSelection drops the selection.
func (s *BoardService) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearSelectionState()
	s.repaint()
}

// DeleteSelected removes the selected element as one undoable action.
// Without a selection it is a no-op.
func (s *BoardService) DeleteSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.selectedIndex()
	if idx < 0 {
		return
	}
	s.hist.DeleteAt(idx)
	s.clearSelectionState()
	s.repaint()
	s.persist()
}

func (s *BoardService) selectedElement() *domain.Element {
	if i := s.selectedIndex(); i >= 0 {
		return s.hist.Current()[i]
	}
	return nil
}

func (s *BoardService) selectedIndex() int {
	if s.selected == "" {
		return -1
	}
	for i, el := range s.hist.Current() {
		if el.ID == s.selected {
			return i
		}
	}
	return -1
}

func (s *BoardService) clearSelectionState() {
	s.selected = ""
	s.drag = nil
	s.cursor.SetCursor(CursorDefault)
}

func (s *BoardService) updateHoverCursor(p domain.Point) {
	if sel := s.selectedElement(); sel != nil {
		switch geom.ClassifyHandle(p, sel.Rect) {
		case geom.HandleTopLeft, geom.HandleBottomRight:
			s.cursor.SetCursor(CursorResizeNWSE)
			return
		case geom.HandleTopRight, geom.HandleBottomLeft:
			s.cursor.SetCursor(CursorResizeNESW)
			return
		case geom.HandleBody:
			s.cursor.SetCursor(CursorMove)
			return
		}
	}

	hovering := false
	s.hist.ForEach(history.Last, func(_ int, el *domain.Element) bool {
		if !s.state.Layer.IsVisible(el.LayerID) {
			return true
		}
		if geom.HitTestElement(p, el, s.HitThreshold) {
			hovering = true
			return false
		}
		return true
	})
	if hovering {
		s.cursor.SetCursor(CursorMove)
	} else {
		s.cursor.SetCursor(CursorCrosshair)
	}
}

// ── Text ───────────────────────────────────────────────────

// AddText places a text box at a device-space rect on the current layer.
func (s *BoardService) AddText(value string, rect domain.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	origin := s.toBoard(domain.Point{X: rect.X, Y: rect.Y})
	s.insertText(value, domain.Rect{X: origin.X, Y: origin.Y, Width: rect.Width, Height: rect.Height})
}

// InsertText places a text box at a board-space rect on the current
// layer. Empty text is ignored.
func (s *BoardService) InsertText(value string, rect domain.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertText(value, rect)
}

func (s *BoardService) insertText(value string, rect domain.Rect) {
	if value == "" {
		return
	}
	el := &domain.Element{
		ID:      uuid.New().String(),
		Type:    domain.ElementTypeText,
		LayerID: s.state.Layer.Current,
		Text:    value,
		Rect:    rect,
	}
	s.clearSelectionState()
	s.hist.Add(el)
	s.hist.SortByLayerOrder(s.state.Layer.IndexOf)
	s.repaint()
	s.persist()
}

// ── History ────────────────────────────────────────────────

// Undo steps the timeline back. At the boundary it is a no-op.
func (s *BoardService) Undo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hist.Undo()
	s.clearSelectionState()
	s.repaint()
	s.persist()
}

// Redo steps the timeline forward. At the boundary it is a no-op.
func (s *BoardService) Redo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hist.Redo()
	s.clearSelectionState()
	s.repaint()
	s.persist()
}

// ClearAll empties the board as a single undoable action.
func (s *BoardService) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hist.Clear()
	s.clearSelectionState()
	s.repaint()
	s.persist()
}

// ── Pan / style / layers ───────────────────────────────────

// Pan shifts the board origin by the delta and forwards the translation
// to the surface.
func (s *BoardService) Pan(delta domain.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.OriginTranslate.X += delta.X
	s.state.OriginTranslate.Y += delta.Y
	s.surface.Translate(delta.X, delta.Y)
	s.repaint()
	s.persist()
}

// SetStrokeColor updates the pen color. Empty values retain the previous
// color.
func (s *BoardService) SetStrokeColor(color string) {
	if color == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentLineColor = color
	s.persist()
}

// SetStrokeWidth updates the pen width. Zero or negative widths retain
// the previous value.
func (s *BoardService) SetStrokeWidth(w float64) {
	if w <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentLineWidth = w
	s.persist()
}

// SetEraserWidth updates the eraser width. Zero or negative widths retain
// the previous value.
func (s *BoardService) SetEraserWidth(w float64) {
	if w <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CleanWidth = w
	s.persist()
}

// AddLayer appends a new layer on top and makes it current.
func (s *BoardService) AddLayer(label string) domain.Layer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if label == "" {
		label = fmt.Sprintf("Layer %d", len(s.state.Layer.Stack)+1)
	}
	l := s.state.Layer.AddLayer(label)
	s.persist()
	return l
}

// ToggleLayerVisibility flips a layer. Hidden layers are skipped by paint
// and hit-test; their elements stay in history untouched.
func (s *BoardService) ToggleLayerVisibility(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Layer.ToggleShow(id)
	s.clearSelectionState()
	s.repaint()
	s.persist()
}

// SetCurrentLayer routes subsequent new elements to the given layer.
func (s *BoardService) SetCurrentLayer(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Layer.SetCurrent(id)
	s.persist()
}

// RemoveLayer deletes a layer. Its elements remain in history as orphans:
// they stop rendering and hit-testing but are never purged or reassigned.
func (s *BoardService) RemoveLayer(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Layer.RemoveLayer(id)
	s.hist.SortByLayerOrder(s.state.Layer.IndexOf)
	s.clearSelectionState()
	s.repaint()
	s.persist()
}

// ── Direct element edits (MCP tools) ───────────────────────

// MoveElementTo places an element's top-left corner at (x, y) as one
// undoable action. Unknown IDs are ignored.
func (s *BoardService) MoveElementTo(id string, x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	el := s.findElement(id)
	if el == nil {
		return
	}
	before := s.hist.Current().Clone()
	dx, dy := x-el.Rect.X, y-el.Rect.Y
	if el.IsStrokeKind() {
		for i := range el.Points {
			el.Points[i].X += dx
			el.Points[i].Y += dy
		}
	} else {
		el.Rect.X, el.Rect.Y = x, y
	}
	el.RecomputeRect()
	s.hist.CommitSnapshot(before, s.hist.Current())
	s.repaint()
	s.persist()
}

// ResizeElementTo sets an element's bounding box dimensions as one
// undoable action, scaling stroke points from the top-left anchor.
// Zero original dimensions skip that axis.
func (s *BoardService) ResizeElementTo(id string, width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	el := s.findElement(id)
	if el == nil || width <= 0 || height <= 0 {
		return
	}
	before := s.hist.Current().Clone()
	orig := el.Rect
	if el.IsStrokeKind() {
		scaleX, scaleY := 1.0, 1.0
		if orig.Width != 0 {
			scaleX = width / orig.Width
		}
		if orig.Height != 0 {
			scaleY = height / orig.Height
		}
		for i := range el.Points {
			el.Points[i].X = orig.X + (el.Points[i].X-orig.X)*scaleX
			el.Points[i].Y = orig.Y + (el.Points[i].Y-orig.Y)*scaleY
		}
	} else {
		el.Rect.Width, el.Rect.Height = width, height
	}
	el.RecomputeRect()
	s.hist.CommitSnapshot(before, s.hist.Current())
	s.repaint()
	s.persist()
}

// DeleteElement removes an element by ID as one undoable action.
func (s *BoardService) DeleteElement(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, el := range s.hist.Current() {
		if el.ID == id {
			s.hist.DeleteAt(i)
			s.clearSelectionState()
			s.repaint()
			s.persist()
			return
		}
	}
}

func (s *BoardService) findElement(id string) *domain.Element {
	for _, el := range s.hist.Current() {
		if el.ID == id {
			return el
		}
	}
	return nil
}

// ── Paint / persistence ────────────────────────────────────

// repaint clears the surface and replays the visible, layer-ordered
// element sequence.
func (s *BoardService) repaint() {
	s.surface.Clear()
	s.hist.ForEach(history.First, func(_ int, el *domain.Element) bool {
		if !s.state.Layer.IsVisible(el.LayerID) {
			return true
		}
		switch el.Type {
		case domain.ElementTypeStroke:
			s.surface.StrokePath(el.Points, el.Color, el.StrokeWidth)
		case domain.ElementTypeEraser:
			s.surface.ErasePath(el.Points, el.StrokeWidth)
		case domain.ElementTypeText:
			s.surface.DrawText(el.Text, el.Rect)
		}
		return true
	})
}

// persist writes the full board state to the snapshot store. Writes are
// synchronous and idempotent.
func (s *BoardService) persist() {
	data, err := domain.EncodeSnapshot(s.hist.Current(), s.state)
	if err != nil {
		log.Printf("board %s: encode snapshot: %v", s.boardID, err)
		return
	}
	if err := s.store.Set(s.boardID, data); err != nil {
		log.Printf("board %s: save snapshot: %v", s.boardID, err)
		return
	}
	s.emitter.Emit(context.Background(), "board:saved", map[string]string{"boardId": s.boardID})
}
