package app

import (
	"fmt"

	"sketchpad/internal/domain"
)

// ============================================================
// Canvas commands — thin bindings onto the current board's
// controller. Each call is one user gesture step.
// ============================================================

// BeginStroke starts drawing a freehand stroke ("stroke") or an eraser
// path ("eraser") at the current layer.
func (a *App) BeginStroke(kind string) error {
	svc, err := a.current()
	if err != nil {
		return err
	}
	switch domain.ElementType(kind) {
	case domain.ElementTypeStroke, domain.ElementTypeEraser:
		svc.BeginStroke(domain.ElementType(kind))
		return nil
	}
	return fmt.Errorf("unknown stroke kind %q", kind)
}

// MovePointer reports a pointer move in device coordinates.
func (a *App) MovePointer(x, y float64) error {
	svc, err := a.current()
	if err != nil {
		return err
	}
	svc.MovePointer(domain.Point{X: x, Y: y})
	return nil
}

// LiftPointer reports pointer-up, ending the active stroke or drag.
func (a *App) LiftPointer() error {
	svc, err := a.current()
	if err != nil {
		return err
	}
	svc.LiftPointer()
	return nil
}

// SelectAt reports a pointer-down in selection mode.
func (a *App) SelectAt(x, y float64) (string, error) {
	svc, err := a.current()
	if err != nil {
		return "", err
	}
	svc.SelectAt(domain.Point{X: x, Y: y})
	return svc.SelectedID(), nil
}

func (a *App) ClearSelection() error {
	svc, err := a.current()
	if err != nil {
		return err
	}
	svc.ClearSelection()
	return nil
}

func (a *App) DeleteSelected() error {
	svc, err := a.current()
	if err != nil {
		return err
	}
	svc.DeleteSelected()
	return nil
}

func (a *App) Undo() error {
	svc, err := a.current()
	if err != nil {
		return err
	}
	svc.Undo()
	return nil
}

func (a *App) Redo() error {
	svc, err := a.current()
	if err != nil {
		return err
	}
	svc.Redo()
	return nil
}

func (a *App) ClearBoard() error {
	svc, err := a.current()
	if err != nil {
		return err
	}
	svc.ClearAll()
	return nil
}

// Pan shifts the board origin by a device-space delta.
func (a *App) Pan(dx, dy float64) error {
	svc, err := a.current()
	if err != nil {
		return err
	}
	svc.Pan(domain.Point{X: dx, Y: dy})
	return nil
}

// AddText places a text box at a device-space rect.
func (a *App) AddText(text string, x, y, width, height float64) error {
	svc, err := a.current()
	if err != nil {
		return err
	}
	svc.AddText(text, domain.Rect{X: x, Y: y, Width: width, Height: height})
	return nil
}

func (a *App) SetStrokeColor(color string) error {
	svc, err := a.current()
	if err != nil {
		return err
	}
	svc.SetStrokeColor(color)
	return nil
}

func (a *App) SetStrokeWidth(width float64) error {
	svc, err := a.current()
	if err != nil {
		return err
	}
	svc.SetStrokeWidth(width)
	return nil
}

func (a *App) SetEraserWidth(width float64) error {
	svc, err := a.current()
	if err != nil {
		return err
	}
	svc.SetEraserWidth(width)
	return nil
}

// ============================================================
// Layers
// ============================================================

func (a *App) AddLayer(label string) (*domain.Layer, error) {
	svc, err := a.current()
	if err != nil {
		return nil, err
	}
	l := svc.AddLayer(label)
	return &l, nil
}

func (a *App) ToggleLayerVisibility(id string) error {
	svc, err := a.current()
	if err != nil {
		return err
	}
	svc.ToggleLayerVisibility(id)
	return nil
}

func (a *App) SetCurrentLayer(id string) error {
	svc, err := a.current()
	if err != nil {
		return err
	}
	svc.SetCurrentLayer(id)
	return nil
}

func (a *App) RemoveLayer(id string) error {
	svc, err := a.current()
	if err != nil {
		return err
	}
	svc.RemoveLayer(id)
	return nil
}

func (a *App) ListLayers() (*domain.LayerRegistry, error) {
	svc, err := a.current()
	if err != nil {
		return nil, err
	}
	return svc.Layers(), nil
}
