package domain

import "github.com/google/uuid"

// Layer is one entry in a board's z-order. Earlier layers in the stack paint
// first (bottom); later layers occlude them.
type Layer struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Show  bool   `json:"show"`
}

// LayerRegistry owns the ordered layer stack and the current-layer pointer.
// New elements attach to the current layer.
type LayerRegistry struct {
	Stack   []Layer `json:"stack"`
	Current string  `json:"current"`
}

// NewLayerRegistry returns a registry with a single visible default layer.
func NewLayerRegistry() *LayerRegistry {
	l := Layer{ID: uuid.New().String(), Label: "Layer 1", Show: true}
	return &LayerRegistry{Stack: []Layer{l}, Current: l.ID}
}

// AddLayer appends a new visible layer on top of the stack and makes it
// current. Returns the created layer.
func (r *LayerRegistry) AddLayer(label string) Layer {
	l := Layer{ID: uuid.New().String(), Label: label, Show: true}
	r.Stack = append(r.Stack, l)
	r.Current = l.ID
	return l
}

// ToggleShow flips the visibility of a layer. Unknown IDs are ignored.
func (r *LayerRegistry) ToggleShow(id string) {
	for i := range r.Stack {
		if r.Stack[i].ID == id {
			r.Stack[i].Show = !r.Stack[i].Show
			return
		}
	}
}

// SetCurrent points the registry at the layer that should receive new
// elements. Unknown IDs are ignored.
func (r *LayerRegistry) SetCurrent(id string) {
	if r.IndexOf(id) >= 0 {
		r.Current = id
	}
}

// IndexOf returns the stack position of a layer, or -1 if it does not exist.
// Lower indexes paint first (bottom of the z-order).
func (r *LayerRegistry) IndexOf(id string) int {
	for i := range r.Stack {
		if r.Stack[i].ID == id {
			return i
		}
	}
	return -1
}

// IsVisible reports whether the layer exists and is shown. Elements that
// reference a removed layer stop rendering and hit-testing.
func (r *LayerRegistry) IsVisible(id string) bool {
	i := r.IndexOf(id)
	return i >= 0 && r.Stack[i].Show
}

// RemoveLayer deletes a layer from the stack. Elements referencing it are
// left in place (they become invisible orphans). If the current layer is
// removed, the topmost remaining layer becomes current.
func (r *LayerRegistry) RemoveLayer(id string) {
	i := r.IndexOf(id)
	if i < 0 || len(r.Stack) <= 1 {
		return
	}
	r.Stack = append(r.Stack[:i], r.Stack[i+1:]...)
	if r.Current == id {
		r.Current = r.Stack[len(r.Stack)-1].ID
	}
}

// Clone returns a deep copy of the registry.
func (r *LayerRegistry) Clone() *LayerRegistry {
	c := &LayerRegistry{Stack: make([]Layer, len(r.Stack)), Current: r.Current}
	copy(c.Stack, r.Stack)
	return c
}
