// Package geom implements the hit-testing math for board elements:
// point-to-segment distance, rect containment and resize-handle
// classification.
package geom

import (
	"math"

	"sketchpad/internal/domain"
)

// DefaultHitThreshold is the proximity (in board units) within which a
// pointer counts as touching a stroke.
const DefaultHitThreshold = 10.0

// HandleSize is the edge length of the square corner regions used for
// resize-handle detection.
const HandleSize = 12.0

// Handle identifies which part of a selected element the pointer is over.
type Handle int

const (
	HandleNone Handle = iota
	HandleBody
	HandleTopLeft
	HandleTopRight
	HandleBottomLeft
	HandleBottomRight
)

func (h Handle) String() string {
	switch h {
	case HandleBody:
		return "body"
	case HandleTopLeft:
		return "top-left"
	case HandleTopRight:
		return "top-right"
	case HandleBottomLeft:
		return "bottom-left"
	case HandleBottomRight:
		return "bottom-right"
	}
	return "none"
}

func distance(a, b domain.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// DistancePointToSegment returns the distance from p to the segment ab:
// the perpendicular distance when the projection of p falls inside the
// segment, otherwise the distance to the nearer endpoint.
func DistancePointToSegment(p, a, b domain.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return distance(p, a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return distance(p, domain.Point{X: a.X + t*dx, Y: a.Y + t*dy})
}

// HitTestStroke reports whether p touches any consecutive-point segment of
// a stroke element within threshold. The point must additionally be within
// threshold of one of that segment's endpoints, which filters false
// positives from nearly-collinear distant segments.
func HitTestStroke(p domain.Point, el *domain.Element, threshold float64) bool {
	pts := el.Points
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		if DistancePointToSegment(p, a, b) > threshold {
			continue
		}
		if distance(p, a) <= threshold || distance(p, b) <= threshold {
			return true
		}
	}
	return false
}

// HitTestRect reports whether p lies inside r.
func HitTestRect(p domain.Point, r domain.Rect) bool {
	return r.Contains(p)
}

// cornerRegion is the square of side HandleSize centered on a corner.
func cornerRegion(cx, cy float64) domain.Rect {
	half := HandleSize / 2
	return domain.Rect{X: cx - half, Y: cy - half, Width: HandleSize, Height: HandleSize}
}

// ClassifyHandle returns which resize handle (or the body) of r contains p.
// Corner regions take priority over the body; a point outside the rect and
// outside every corner margin yields HandleNone.
func ClassifyHandle(p domain.Point, r domain.Rect) Handle {
	switch {
	case cornerRegion(r.X, r.Y).Contains(p):
		return HandleTopLeft
	case cornerRegion(r.X+r.Width, r.Y).Contains(p):
		return HandleTopRight
	case cornerRegion(r.X, r.Y+r.Height).Contains(p):
		return HandleBottomLeft
	case cornerRegion(r.X+r.Width, r.Y+r.Height).Contains(p):
		return HandleBottomRight
	case r.Contains(p):
		return HandleBody
	}
	return HandleNone
}

// HitTestElement dispatches on the element variant: strokes use segment
// proximity, text boxes use rect containment.
func HitTestElement(p domain.Point, el *domain.Element, threshold float64) bool {
	if el.IsStrokeKind() {
		return HitTestStroke(p, el, threshold)
	}
	return HitTestRect(p, el.Rect)
}
