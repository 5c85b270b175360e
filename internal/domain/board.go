package domain

import (
	"encoding/json"
	"time"
)

// SnapshotFormatVersion tags snapshots written by the current schema.
const SnapshotFormatVersion = "2"

// Defaults applied when a persisted snapshot omits optional fields or
// predates the current format.
const (
	DefaultLineColor   = "#000000"
	DefaultLineWidth   = 3.0
	DefaultEraserWidth = 24.0
)

// Board is the metadata record for one drawing surface.
type Board struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BoardStore persists board metadata.
type BoardStore interface {
	CreateBoard(b *Board) error
	GetBoard(id string) (*Board, error)
	ListBoards() ([]Board, error)
	RenameBoard(id, name string) error
	DeleteBoard(id string) error
}

// SnapshotStore is the key-value store the engine serializes through.
// Keys are board IDs; values are snapshot JSON.
type SnapshotStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// BoardState holds the per-board settings serialized next to the element
// stack: pan offset, active style and the layer registry.
type BoardState struct {
	CurrentLineColor string         `json:"currentLineColor"`
	CurrentLineWidth float64        `json:"currentLineWidth"`
	CleanWidth       float64        `json:"cleanWidth"`
	OriginTranslate  Point          `json:"originTranslate"`
	Layer            *LayerRegistry `json:"layer,omitempty"`
	Version          string         `json:"version,omitempty"`
}

// Snapshot is the unit written to the snapshot store: the live element
// stack plus the board state.
type Snapshot struct {
	History []*Element `json:"history"`
	State   BoardState `json:"state"`
}

// NewBoardState returns a state with documented defaults and a single
// default layer.
func NewBoardState() BoardState {
	return BoardState{
		CurrentLineColor: DefaultLineColor,
		CurrentLineWidth: DefaultLineWidth,
		CleanWidth:       DefaultEraserWidth,
		Layer:            NewLayerRegistry(),
		Version:          SnapshotFormatVersion,
	}
}

// EncodeSnapshot serializes the stack and state under the current format.
func EncodeSnapshot(history []*Element, state BoardState) ([]byte, error) {
	state.Version = SnapshotFormatVersion
	return json.Marshal(Snapshot{History: history, State: state})
}

// DecodeSnapshot parses persisted snapshot data, migrating older formats to
// the current schema. It never fails on missing optional fields: absent
// style values fall back to defaults, and a record lacking a layer registry
// (the pre-layer format, recognizable by a missing version tag) gets a
// single default layer that adopts every element. Unreadable data degrades
// to a fresh default board.
func DecodeSnapshot(data []byte) ([]*Element, BoardState) {
	if len(data) == 0 {
		return nil, NewBoardState()
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, NewBoardState()
	}

	state := snap.State
	if state.CurrentLineColor == "" {
		state.CurrentLineColor = DefaultLineColor
	}
	if state.CurrentLineWidth <= 0 {
		state.CurrentLineWidth = DefaultLineWidth
	}
	if state.CleanWidth <= 0 {
		state.CleanWidth = DefaultEraserWidth
	}
	if state.Layer == nil || len(state.Layer.Stack) == 0 {
		state.Layer = NewLayerRegistry()
	}
	if state.Layer.IndexOf(state.Layer.Current) < 0 {
		state.Layer.Current = state.Layer.Stack[len(state.Layer.Stack)-1].ID
	}

	// The pre-layer format is recognizable by its missing version tag.
	legacy := snap.State.Version == ""
	defaultLayer := state.Layer.Stack[0].ID
	for _, el := range snap.History {
		// Adopt layerless elements into the default layer so everything
		// keeps rendering. Orphans pointing at a removed layer under the
		// current format are left alone.
		if el.LayerID == "" || (legacy && state.Layer.IndexOf(el.LayerID) < 0) {
			el.LayerID = defaultLayer
		}
		el.RecomputeRect()
	}

	state.Version = SnapshotFormatVersion
	return snap.History, state
}
