// Package export renders boards to external formats.
package export

import (
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"sketchpad/internal/domain"
)

// boardUnitsPerMM maps board coordinates onto the A4 page. A 595-unit
// wide board fills the printable width.
const boardUnitsPerMM = 3.0

// BoardPDF writes the visible elements of a board to an A4 PDF at path.
// Elements must be in paint order. Hidden layers and eraser elements are
// skipped; erasures are already reflected in what the viewer sees, but a
// printed page has no pixels to clear.
func BoardPDF(path string, elements []*domain.Element, layers *domain.LayerRegistry) error {
	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()
	p.SetFont("Helvetica", "", 11)

	for _, el := range elements {
		if layers != nil && !layers.IsVisible(el.LayerID) {
			continue
		}
		switch el.Type {
		case domain.ElementTypeStroke:
			drawStroke(p, el)
		case domain.ElementTypeText:
			drawText(p, el)
		}
	}

	if err := p.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	return nil
}

func drawStroke(p *gofpdf.Fpdf, el *domain.Element) {
	r, g, b := parseHexColor(el.Color)
	p.SetDrawColor(r, g, b)
	p.SetLineWidth(el.StrokeWidth / boardUnitsPerMM)

	pts := el.Points
	for i := 1; i < len(pts); i++ {
		p.Line(
			pts[i-1].X/boardUnitsPerMM, pts[i-1].Y/boardUnitsPerMM,
			pts[i].X/boardUnitsPerMM, pts[i].Y/boardUnitsPerMM,
		)
	}
}

func drawText(p *gofpdf.Fpdf, el *domain.Element) {
	p.SetTextColor(0, 0, 0)
	p.SetXY(el.Rect.X/boardUnitsPerMM, el.Rect.Y/boardUnitsPerMM)
	w := el.Rect.Width / boardUnitsPerMM
	if w <= 0 {
		w = 60
	}
	p.MultiCell(w, 5, el.Text, "", "L", false)
}

// parseHexColor converts "#rrggbb" (or "#rgb") to RGB components.
// Anything unparseable falls back to black.
func parseHexColor(s string) (r, g, b int) {
	if len(s) == 0 || s[0] != '#' {
		return 0, 0, 0
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16), int(v >> 8 & 0xff), int(v & 0xff)
}
