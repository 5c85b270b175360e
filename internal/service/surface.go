package service

import "sketchpad/internal/domain"

// ─────────────────────────────────────────────────────────────
// Drawing surface collaborators
// ─────────────────────────────────────────────────────────────

// Surface is the drawing collaborator the engine paints through. The
// frontend canvas implements it over emitted events; the engine never
// touches pixels directly.
type Surface interface {
	// Clear wipes the whole surface before a replay.
	Clear()
	// StrokePath draws a polyline in the given color and width.
	StrokePath(points []domain.Point, color string, width float64)
	// ErasePath clears pixels along a polyline of the given width.
	ErasePath(points []domain.Point, width float64)
	// DrawText renders text inside rect.
	DrawText(text string, rect domain.Rect)
	// Translate shifts the surface's coordinate origin by the delta.
	Translate(dx, dy float64)
}

// CursorKind is the pointer feedback the engine reports. The sink has no
// state of its own.
type CursorKind string

const (
	CursorDefault    CursorKind = "default"
	CursorCrosshair  CursorKind = "crosshair"
	CursorMove       CursorKind = "move"
	CursorResizeNWSE CursorKind = "nwse-resize"
	CursorResizeNESW CursorKind = "nesw-resize"
)

// CursorSink receives cursor-kind updates.
type CursorSink interface {
	SetCursor(kind CursorKind)
}

// NopSurface is a Surface that draws nothing. Used in headless modes
// (standalone MCP) and tests that don't assert on paint output.
type NopSurface struct{}

func (NopSurface) Clear()                                     {}
func (NopSurface) StrokePath([]domain.Point, string, float64) {}
func (NopSurface) ErasePath([]domain.Point, float64)          {}
func (NopSurface) DrawText(string, domain.Rect)               {}
func (NopSurface) Translate(float64, float64)                 {}

// NopCursor is a CursorSink that ignores updates.
type NopCursor struct{}

func (NopCursor) SetCursor(CursorKind) {}
