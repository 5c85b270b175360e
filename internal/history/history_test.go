package history

import (
	"testing"

	"sketchpad/internal/domain"
)

func stroke(id string, pts ...domain.Point) *domain.Element {
	el := &domain.Element{ID: id, Type: domain.ElementTypeStroke, Points: pts}
	el.RecomputeRect()
	return el
}

func TestAddAndCurrent(t *testing.T) {
	h := New(nil)
	h.Add(stroke("a", domain.Point{0, 0}))
	h.Add(stroke("b", domain.Point{1, 1}))

	if h.Len() != 2 {
		t.Fatalf("expected 2 elements, got %d", h.Len())
	}
	if h.Current()[0].ID != "a" || h.Current()[1].ID != "b" {
		t.Errorf("elements out of order: %v, %v", h.Current()[0].ID, h.Current()[1].ID)
	}
}

func TestUndoRedoInverseLaw(t *testing.T) {
	h := New(nil)
	h.Add(stroke("a", domain.Point{0, 0}))
	h.Add(stroke("b", domain.Point{1, 1}))
	h.Add(stroke("c", domain.Point{2, 2}))

	want := h.Current().Clone()
	for i := 0; i < 5; i++ {
		h.Undo()
		h.Redo()
		if !h.Current().Equal(want) {
			t.Fatalf("iteration %d: undo/redo did not restore the stack", i)
		}
	}
}

func TestUndoRedoBoundariesAreNoOps(t *testing.T) {
	h := New(nil)
	h.Undo() // empty timeline: nothing to do
	h.Redo()
	if h.Len() != 0 {
		t.Fatal("boundary ops must not invent state")
	}

	h.Add(stroke("a", domain.Point{0, 0}))
	for i := 0; i < 3; i++ {
		h.Undo()
	}
	if h.Len() != 0 || h.CanUndo() {
		t.Error("repeated undo must stop at the start")
	}
	for i := 0; i < 3; i++ {
		h.Redo()
	}
	if h.Len() != 1 || h.CanRedo() {
		t.Error("repeated redo must stop at the tail")
	}
}

func TestRedoInvalidation(t *testing.T) {
	h := New(nil)
	h.Add(stroke("a", domain.Point{0, 0}))
	h.Add(stroke("b", domain.Point{1, 1}))
	h.Undo()

	h.Add(stroke("c", domain.Point{2, 2}))
	h.Redo() // must be a no-op: the "b" future was discarded

	if h.Len() != 2 {
		t.Fatalf("expected 2 elements, got %d", h.Len())
	}
	if h.Current()[1].ID != "c" {
		t.Errorf("discarded future resurrected: %v", h.Current()[1].ID)
	}
}

func TestCommitSnapshot_SingleEntry(t *testing.T) {
	h := New(nil)
	h.Add(stroke("a", domain.Point{0, 0}, domain.Point{10, 10}))

	before := h.Current().Clone()
	// Simulate many intermediate drag mutations on the live element.
	live := h.Current()[0]
	for i := 1; i <= 20; i++ {
		live.Points[0] = domain.Point{X: float64(i), Y: 0}
		live.RecomputeRect()
	}
	h.CommitSnapshot(before, h.Current())

	// Exactly one new entry: a single undo restores pre-drag geometry.
	h.Undo()
	if h.Current()[0].Points[0] != (domain.Point{0, 0}) {
		t.Errorf("undo after drag commit: point = %v, want {0 0}", h.Current()[0].Points[0])
	}
	h.Redo()
	if h.Current()[0].Points[0] != (domain.Point{20, 0}) {
		t.Errorf("redo after drag commit: point = %v, want {20 0}", h.Current()[0].Points[0])
	}
}

func TestCommitSnapshot_NoOpPushesNothing(t *testing.T) {
	h := New(nil)
	h.Add(stroke("a", domain.Point{0, 0}))

	before := h.Current().Clone()
	h.CommitSnapshot(before, h.Current())

	if h.CanRedo() {
		t.Error("no-op commit should not create a timeline entry")
	}
	h.Undo()
	if h.Len() != 0 {
		t.Error("only the original add should be undoable")
	}
}

func TestDeleteAt(t *testing.T) {
	h := New(nil)
	h.Add(stroke("a", domain.Point{0, 0}))
	h.Add(stroke("b", domain.Point{1, 1}))

	h.DeleteAt(0)
	if h.Len() != 1 || h.Current()[0].ID != "b" {
		t.Fatalf("delete left wrong stack: %d elements", h.Len())
	}

	h.Undo()
	if h.Len() != 2 {
		t.Error("delete must be a single undoable action")
	}

	h.DeleteAt(99) // out of range: ignored
	if h.Len() != 2 {
		t.Error("out-of-range delete must be a no-op")
	}
}

func TestClear(t *testing.T) {
	h := New(nil)
	h.Add(stroke("a", domain.Point{0, 0}))
	h.Add(stroke("b", domain.Point{1, 1}))

	h.Clear()
	if h.Len() != 0 {
		t.Fatal("clear should empty the stack")
	}
	h.Undo()
	if h.Len() != 2 {
		t.Error("clear must be a single undoable action")
	}
}

func TestSortByLayerOrder(t *testing.T) {
	h := New(nil)
	a := stroke("a", domain.Point{0, 0})
	a.LayerID = "top"
	b := stroke("b", domain.Point{1, 1})
	b.LayerID = "bottom"
	c := stroke("c", domain.Point{2, 2})
	c.LayerID = "top"
	h.Add(a)
	h.Add(b)
	h.Add(c)

	order := map[string]int{"bottom": 0, "top": 1}
	h.SortByLayerOrder(func(id string) int { return order[id] })

	got := []string{h.Current()[0].ID, h.Current()[1].ID, h.Current()[2].ID}
	want := []string{"b", "a", "c"} // stable within a layer
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("paint order = %v, want %v", got, want)
		}
	}

	if h.CanRedo() {
		t.Error("sorting must not touch the timeline")
	}
}

func TestForEach_Orders(t *testing.T) {
	h := New(nil)
	h.Add(stroke("a", domain.Point{0, 0}))
	h.Add(stroke("b", domain.Point{1, 1}))
	h.Add(stroke("c", domain.Point{2, 2}))

	var paint []string
	h.ForEach(First, func(_ int, el *domain.Element) bool {
		paint = append(paint, el.ID)
		return true
	})
	if paint[0] != "a" || paint[2] != "c" {
		t.Errorf("First order = %v", paint)
	}

	var hit []string
	h.ForEach(Last, func(_ int, el *domain.Element) bool {
		hit = append(hit, el.ID)
		return true
	})
	if hit[0] != "c" || hit[2] != "a" {
		t.Errorf("Last order = %v", hit)
	}

	// Early stop, then restart: traversal must begin fresh.
	var stopped []string
	h.ForEach(Last, func(_ int, el *domain.Element) bool {
		stopped = append(stopped, el.ID)
		return false
	})
	if len(stopped) != 1 || stopped[0] != "c" {
		t.Errorf("early stop = %v", stopped)
	}
}
