// Package history implements the board's undo/redo timeline: an ordered
// list of element-stack snapshots with a cursor. Every snapshot owns deep
// copies of its elements; the stack at the cursor is the live board.
package history

import (
	"sort"

	"sketchpad/internal/domain"
)

// Order selects the traversal direction of ForEach.
type Order int

const (
	// First visits elements front-to-back (paint order: bottom layer first).
	First Order = iota
	// Last visits elements back-to-front (hit-test order: topmost first).
	Last
)

// Stack is one version of the board: the ordered element sequence.
type Stack []*domain.Element

// Clone deep-copies every element of the stack.
func (s Stack) Clone() Stack {
	c := make(Stack, len(s))
	for i, el := range s {
		c[i] = el.Clone()
	}
	return c
}

// Equal reports structural equality of two stacks.
func (s Stack) Equal(o Stack) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if !s[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// History is a linear undo/redo timeline. Editing while the cursor is not
// at the tail discards the abandoned future.
type History struct {
	snapshots []Stack
	step      int
}

// New returns a history seeded with the given stack as its first snapshot.
// A nil stack seeds an empty board.
func New(initial Stack) *History {
	return &History{snapshots: []Stack{initial}}
}

// Current returns the live element stack. Callers must treat it as
// read-only; mutations go through Add, DeleteAt, Clear or a drag session
// committed via CommitSnapshot.
func (h *History) Current() Stack {
	return h.snapshots[h.step]
}

// Len returns the number of elements in the live stack.
func (h *History) Len() int {
	return len(h.Current())
}

// push appends a new snapshot after the cursor, discarding any redo
// entries beyond it.
func (h *History) push(s Stack) {
	h.snapshots = append(h.snapshots[:h.step+1], s)
	h.step++
}

// Add appends an element as a new undoable snapshot.
func (h *History) Add(el *domain.Element) {
	next := h.Current().Clone()
	next = append(next, el)
	h.push(next)
}

// Undo moves the cursor back one step. At the start of the timeline it is
// a no-op.
func (h *History) Undo() {
	if h.step > 0 {
		h.step--
	}
}

// Redo moves the cursor forward one step. At the tail it is a no-op.
func (h *History) Redo() {
	if h.step < len(h.snapshots)-1 {
		h.step++
	}
}

// CanUndo reports whether Undo would change the cursor.
func (h *History) CanUndo() bool { return h.step > 0 }

// CanRedo reports whether Redo would change the cursor.
func (h *History) CanRedo() bool { return h.step < len(h.snapshots)-1 }

// CommitSnapshot records a whole interactive edit (drag, resize) as one
// timeline entry. before is the deep copy taken when the edit began; after
// is the stack once it finished. Structurally equal stacks push nothing,
// so an abandoned or no-op drag leaves the timeline untouched.
func (h *History) CommitSnapshot(before, after Stack) {
	if before.Equal(after) {
		return
	}
	// The live stack was mutated in place during the edit; restore the
	// pre-edit version at the cursor so undo lands on exact pre-drag
	// geometry, then record the result.
	h.snapshots[h.step] = before
	h.push(after.Clone())
}

// DeleteAt removes the element at index i as a single undoable action.
// Out-of-range indexes are ignored.
func (h *History) DeleteAt(i int) {
	cur := h.Current()
	if i < 0 || i >= len(cur) {
		return
	}
	next := make(Stack, 0, len(cur)-1)
	for j, el := range cur {
		if j != i {
			next = append(next, el.Clone())
		}
	}
	h.push(next)
}

// Clear empties the stack as a single undoable action. An already empty
// stack is left untouched.
func (h *History) Clear() {
	if h.Len() == 0 {
		return
	}
	h.push(Stack{})
}

// SortByLayerOrder reorders the live stack so elements are visited in
// ascending layer-stack order. This only affects iteration and paint
// order; it creates no timeline entry. The sort is stable, so elements on
// the same layer keep their creation order. Must be re-applied after any
// layer reordering.
func (h *History) SortByLayerOrder(indexOf func(layerID string) int) {
	cur := h.Current()
	sort.SliceStable(cur, func(i, j int) bool {
		return indexOf(cur[i].LayerID) < indexOf(cur[j].LayerID)
	})
}

// ForEach traverses the live stack in the given order. The visitor returns
// false to stop early. Traversal is restartable: each call starts fresh.
func (h *History) ForEach(order Order, visit func(i int, el *domain.Element) bool) {
	cur := h.Current()
	if order == First {
		for i, el := range cur {
			if !visit(i, el) {
				return
			}
		}
		return
	}
	for i := len(cur) - 1; i >= 0; i-- {
		if !visit(i, cur[i]) {
			return
		}
	}
}
