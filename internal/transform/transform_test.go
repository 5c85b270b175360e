package transform

import (
	"testing"

	"sketchpad/internal/domain"
	"sketchpad/internal/geom"
	"sketchpad/internal/history"
)

func textBox(r domain.Rect) *domain.Element {
	return &domain.Element{ID: "t1", Type: domain.ElementTypeText, Text: "hi", Rect: r}
}

func newBoard(el *domain.Element) (*history.History, *domain.Element) {
	h := history.New(nil)
	h.Add(el)
	return h, h.Current()[0]
}

func TestResize_TopLeftAnchorInvariance(t *testing.T) {
	h, live := newBoard(textBox(domain.Rect{X: 10, Y: 10, Width: 20, Height: 20}))

	s := Begin(h, live, geom.HandleTopLeft, domain.Point{10, 10})
	s.Update(domain.Point{15, 15})
	s.End(h)

	want := domain.Rect{X: 15, Y: 15, Width: 15, Height: 15}
	if live.Rect != want {
		t.Errorf("rect = %+v, want %+v", live.Rect, want)
	}
	// Bottom-right corner is the anchor and must not move.
	if got := live.Rect.X + live.Rect.Width; got != 30 {
		t.Errorf("anchor x = %v, want 30", got)
	}
	if got := live.Rect.Y + live.Rect.Height; got != 30 {
		t.Errorf("anchor y = %v, want 30", got)
	}
}

func TestResize_BottomRightGrowsInPlace(t *testing.T) {
	h, live := newBoard(textBox(domain.Rect{X: 10, Y: 10, Width: 20, Height: 20}))

	s := Begin(h, live, geom.HandleBottomRight, domain.Point{30, 30})
	s.Update(domain.Point{40, 35})
	s.End(h)

	want := domain.Rect{X: 10, Y: 10, Width: 30, Height: 25}
	if live.Rect != want {
		t.Errorf("rect = %+v, want %+v", live.Rect, want)
	}
}

func TestResize_StrokeScalesAroundAnchor(t *testing.T) {
	el := &domain.Element{
		ID:   "s1",
		Type: domain.ElementTypeStroke,
		Points: []domain.Point{
			{10, 10}, {30, 10}, {30, 30},
		},
	}
	el.RecomputeRect() // {10,10,20,20}
	h, live := newBoard(el)

	// Drag bottom-right by (20, 20): scale 2x around the (10, 10) anchor.
	s := Begin(h, live, geom.HandleBottomRight, domain.Point{30, 30})
	s.Update(domain.Point{50, 50})
	s.End(h)

	want := []domain.Point{{10, 10}, {50, 10}, {50, 50}}
	for i, p := range want {
		if live.Points[i] != p {
			t.Errorf("point %d = %v, want %v", i, live.Points[i], p)
		}
	}
	if live.Rect != (domain.Rect{X: 10, Y: 10, Width: 40, Height: 40}) {
		t.Errorf("rect not recomputed: %+v", live.Rect)
	}
}

func TestResize_ZeroDimensionSkipsAxis(t *testing.T) {
	// A perfectly horizontal stroke has zero height; the vertical axis
	// must be skipped rather than divided by zero.
	el := &domain.Element{
		ID:     "s1",
		Type:   domain.ElementTypeStroke,
		Points: []domain.Point{{0, 10}, {20, 10}},
	}
	el.RecomputeRect()
	h, live := newBoard(el)

	s := Begin(h, live, geom.HandleBottomRight, domain.Point{20, 10})
	s.Update(domain.Point{40, 30})
	s.End(h)

	want := []domain.Point{{0, 10}, {40, 10}}
	for i, p := range want {
		if live.Points[i] != p {
			t.Errorf("point %d = %v, want %v", i, live.Points[i], p)
		}
	}
}

func TestMove_BodyTranslatesAllPoints(t *testing.T) {
	el := &domain.Element{
		ID:     "s1",
		Type:   domain.ElementTypeStroke,
		Points: []domain.Point{{0, 0}, {10, 5}},
	}
	el.RecomputeRect()
	h, live := newBoard(el)

	s := Begin(h, live, geom.HandleBody, domain.Point{5, 2})
	s.Update(domain.Point{12, 10})
	s.End(h)

	want := []domain.Point{{7, 8}, {17, 13}}
	for i, p := range want {
		if live.Points[i] != p {
			t.Errorf("point %d = %v, want %v", i, live.Points[i], p)
		}
	}
}

func TestDrag_AtomicCommitAndUndo(t *testing.T) {
	h, live := newBoard(textBox(domain.Rect{X: 0, Y: 0, Width: 10, Height: 10}))

	s := Begin(h, live, geom.HandleBody, domain.Point{5, 5})
	// Many intermediate moves, one commit.
	for i := 1; i <= 10; i++ {
		s.Update(domain.Point{X: 5 + float64(i), Y: 5})
	}
	s.End(h)

	if live.Rect.X != 10 {
		t.Fatalf("drag end x = %v, want 10", live.Rect.X)
	}

	h.Undo()
	if h.Current()[0].Rect != (domain.Rect{X: 0, Y: 0, Width: 10, Height: 10}) {
		t.Errorf("single undo must revert the whole drag: %+v", h.Current()[0].Rect)
	}
	h.Undo() // back past the add
	if h.Len() != 0 {
		t.Errorf("expected the add to be the only other entry, len=%d", h.Len())
	}
}

func TestDrag_NoNetMovementPushesNothing(t *testing.T) {
	h, live := newBoard(textBox(domain.Rect{X: 0, Y: 0, Width: 10, Height: 10}))

	s := Begin(h, live, geom.HandleBody, domain.Point{5, 5})
	s.Update(domain.Point{8, 8})
	s.Update(domain.Point{5, 5}) // back to the start
	s.End(h)

	h.Undo()
	if h.Len() != 0 {
		t.Error("zero-net drag must not create a timeline entry")
	}
}

func TestDrag_NoUpdatesDiscardsBeforeCopy(t *testing.T) {
	h, live := newBoard(textBox(domain.Rect{X: 0, Y: 0, Width: 10, Height: 10}))

	s := Begin(h, live, geom.HandleBody, domain.Point{5, 5})
	s.End(h)

	if h.CanRedo() {
		t.Error("pointer-down/up without movement must leave history untouched")
	}
}

func TestCancel_RestoresGeometryWithoutCommit(t *testing.T) {
	el := &domain.Element{
		ID:     "s1",
		Type:   domain.ElementTypeStroke,
		Points: []domain.Point{{0, 0}, {10, 5}},
	}
	el.RecomputeRect()
	h, live := newBoard(el)

	s := Begin(h, live, geom.HandleBody, domain.Point{5, 2})
	s.Update(domain.Point{25, 22})
	s.Cancel()

	want := []domain.Point{{0, 0}, {10, 5}}
	for i, p := range want {
		if live.Points[i] != p {
			t.Errorf("point %d = %v, want %v", i, live.Points[i], p)
		}
	}
	if live.Rect != (domain.Rect{X: 0, Y: 0, Width: 10, Height: 5}) {
		t.Errorf("rect not restored: %+v", live.Rect)
	}
	h.Undo()
	if h.Len() != 0 {
		t.Error("cancelled drag must not create a timeline entry")
	}
}

func TestBegin_NoneHandle(t *testing.T) {
	h, live := newBoard(textBox(domain.Rect{}))
	if s := Begin(h, live, geom.HandleNone, domain.Point{}); s != nil {
		t.Error("HandleNone must not start a session")
	}
}
