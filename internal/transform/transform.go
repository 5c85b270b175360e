// Package transform implements anchor-based move and resize of board
// elements as interactive drag sessions. A session owns the active element
// for its duration and commits its net effect to history as one atomic
// entry on pointer-up.
package transform

import (
	"sketchpad/internal/domain"
	"sketchpad/internal/geom"
	"sketchpad/internal/history"
)

// Session is one pointer-down → pointer-up edit of a single element.
// Geometry is always re-derived from the pre-drag original at the total
// pointer delta, never accumulated frame over frame.
type Session struct {
	handle   geom.Handle
	start    domain.Point
	target   *domain.Element // live element owned by the history stack
	original *domain.Element // deep copy of the pre-drag geometry
	before   history.Stack   // deep copy of the pre-drag stack
	moved    bool
}

// Begin starts a drag session on the live element under the given handle.
// Returns nil for HandleNone.
func Begin(h *history.History, target *domain.Element, handle geom.Handle, start domain.Point) *Session {
	if handle == geom.HandleNone {
		return nil
	}
	return &Session{
		handle:   handle,
		start:    start,
		target:   target,
		original: target.Clone(),
		before:   h.Current().Clone(),
	}
}

// Handle returns the handle this session is dragging.
func (s *Session) Handle() geom.Handle { return s.handle }

// Update recomputes the target's geometry for the pointer at p.
func (s *Session) Update(p domain.Point) {
	dx, dy := p.X-s.start.X, p.Y-s.start.Y
	if dx != 0 || dy != 0 {
		s.moved = true
	}

	if s.handle == geom.HandleBody {
		s.translate(dx, dy)
	} else {
		s.resize(dx, dy)
	}
	s.target.RecomputeRect()
}

// End commits the session. If any net change occurred it becomes exactly
// one history entry; otherwise the before copy is discarded. A session
// abandoned without End (pointer left the surface) simply never commits.
func (s *Session) End(h *history.History) {
	if !s.moved {
		return
	}
	h.CommitSnapshot(s.before, h.Current())
}

// Cancel abandons the session: the live element gets its pre-drag
// geometry back and nothing reaches the timeline. Only the target was
// mutated during the drag, so restoring it is enough.
func (s *Session) Cancel() {
	*s.target = *s.original.Clone()
}

// translate shifts every point (or the rect, for text) by the delta.
func (s *Session) translate(dx, dy float64) {
	if s.target.IsStrokeKind() {
		for i, p := range s.original.Points {
			s.target.Points[i] = domain.Point{X: p.X + dx, Y: p.Y + dy}
		}
		return
	}
	s.target.Rect.X = s.original.Rect.X + dx
	s.target.Rect.Y = s.original.Rect.Y + dy
}

// resize rescales the element relative to the anchor (the corner opposite
// the dragged handle), which stays stationary. A zero original dimension
// skips that axis entirely.
func (s *Session) resize(dx, dy float64) {
	orig := s.original.Rect

	var anchorX, anchorY float64
	var signX, signY float64
	switch s.handle {
	case geom.HandleTopLeft:
		anchorX, anchorY = orig.X+orig.Width, orig.Y+orig.Height
		signX, signY = -1, -1
	case geom.HandleTopRight:
		anchorX, anchorY = orig.X, orig.Y+orig.Height
		signX, signY = 1, -1
	case geom.HandleBottomLeft:
		anchorX, anchorY = orig.X+orig.Width, orig.Y
		signX, signY = -1, 1
	case geom.HandleBottomRight:
		anchorX, anchorY = orig.X, orig.Y
		signX, signY = 1, 1
	default:
		return
	}

	scaleX, scaleY := 1.0, 1.0
	if orig.Width != 0 {
		scaleX = (orig.Width + signX*dx) / orig.Width
	}
	if orig.Height != 0 {
		scaleY = (orig.Height + signY*dy) / orig.Height
	}

	if s.target.IsStrokeKind() {
		for i, p := range s.original.Points {
			s.target.Points[i] = domain.Point{
				X: anchorX + (p.X-anchorX)*scaleX,
				Y: anchorY + (p.Y-anchorY)*scaleY,
			}
		}
		return
	}

	// Text boxes: rect is the authoritative geometry. Width/height are
	// recomputed directly; x/y shift only for handles whose corner moves.
	r := orig
	if orig.Width != 0 {
		r.Width = orig.Width * scaleX
		if s.handle == geom.HandleTopLeft || s.handle == geom.HandleBottomLeft {
			r.X = orig.X + dx
		}
	}
	if orig.Height != 0 {
		r.Height = orig.Height * scaleY
		if s.handle == geom.HandleTopLeft || s.handle == geom.HandleTopRight {
			r.Y = orig.Y + dy
		}
	}
	s.target.Rect = r
}
