package domain

type ElementType string

const (
	ElementTypeStroke ElementType = "stroke"
	ElementTypeEraser ElementType = "eraser"
	ElementTypeText   ElementType = "text"
)

// Point is a position in board coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether p lies inside the rect (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Element is a single drawable item on a board. The Type tag selects the
// variant: stroke and eraser elements carry Points (Rect is derived), text
// elements carry Text with Rect as the authoritative geometry.
type Element struct {
	ID      string      `json:"id"`
	Type    ElementType `json:"type"`
	LayerID string      `json:"layer"`
	Rect    Rect        `json:"rect"`

	// Stroke / eraser fields
	Color       string  `json:"color,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Points      []Point `json:"positions,omitempty"`

	// Text field
	Text string `json:"value,omitempty"`
}

// IsStrokeKind reports whether the element is a point-list variant.
func (e *Element) IsStrokeKind() bool {
	return e.Type == ElementTypeStroke || e.Type == ElementTypeEraser
}

// Clone returns a deep copy. The Points slice is duplicated so snapshots
// never alias each other's geometry.
func (e *Element) Clone() *Element {
	c := *e
	if e.Points != nil {
		c.Points = make([]Point, len(e.Points))
		copy(c.Points, e.Points)
	}
	return &c
}

// RecomputeRect refreshes Rect from the point list for stroke variants.
// Text elements keep Rect as-is (it is their authoritative geometry).
func (e *Element) RecomputeRect() {
	if !e.IsStrokeKind() || len(e.Points) == 0 {
		return
	}
	minX, minY := e.Points[0].X, e.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range e.Points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	e.Rect = Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// AppendPoint adds a point during stroke creation and keeps Rect consistent.
func (e *Element) AppendPoint(p Point) {
	e.Points = append(e.Points, p)
	e.RecomputeRect()
}

// Equal reports structural equality, used to decide whether an interactive
// edit actually changed anything.
func (e *Element) Equal(o *Element) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e.ID != o.ID || e.Type != o.Type || e.LayerID != o.LayerID ||
		e.Rect != o.Rect || e.Color != o.Color ||
		e.StrokeWidth != o.StrokeWidth || e.Text != o.Text {
		return false
	}
	if len(e.Points) != len(o.Points) {
		return false
	}
	for i := range e.Points {
		if e.Points[i] != o.Points[i] {
			return false
		}
	}
	return true
}
