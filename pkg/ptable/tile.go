package ptable

import (
	"github.com/elemvis/elemvis/pkg/chart"
	"github.com/elemvis/elemvis/pkg/table"
)

// Tile geometry and text styling shared by all overlays.
const (
	// DefaultTileHalfWidth is the horizontal half-extent of a tile.
	DefaultTileHalfWidth = 0.45
	// DefaultTileHalfHeight is the vertical half-extent of a tile.
	DefaultTileHalfHeight = 0.45

	tileOpacity       = 0.8
	annotationOpacity = 0.9
	annotationFamily  = "Roboto"
	annotationColor   = "#333333"

	// DefaultAnnotationSize is the font size used when a caller passes 0.
	DefaultAnnotationSize = 10
)

// CreateTile builds the rect shape for one element. The rectangle is
// centered on the row's (x, y) grid coordinates and spans xOffset/yOffset
// in each direction; pass 0 for the default half-extents. Outline and fill
// both take the row's value at the color column.
//
// CreateTile is pure construction: it propagates lookup failures for the
// coordinate and color columns and has no side effects.
func CreateTile(row table.Row, color string, xOffset, yOffset float64) (chart.Shape, error) {
	if xOffset == 0 {
		xOffset = DefaultTileHalfWidth
	}
	if yOffset == 0 {
		yOffset = DefaultTileHalfHeight
	}

	x, err := row.Float("x")
	if err != nil {
		return chart.Shape{}, err
	}
	y, err := row.Float("y")
	if err != nil {
		return chart.Shape{}, err
	}
	c, err := row.Text(color)
	if err != nil {
		return chart.Shape{}, err
	}

	return chart.Shape{
		Type: "rect",
		X0:   x - xOffset,
		Y0:   y - yOffset,
		X1:   x + xOffset,
		Y1:   y + yOffset,
		Line: chart.Line{
			Color: c,
		},
		FillColor: c,
		Opacity:   tileOpacity,
	}, nil
}

// CreateAnnotation builds a text label for one element, anchored at the
// row's (x, y) shifted by the given offsets. The label text is the row's
// value at the attr column, formatted for display. Pass size 0 for the
// default font size.
//
// Like CreateTile, this is pure construction with the same failure mode
// for absent columns.
func CreateAnnotation(row table.Row, attr string, size, xOffset, yOffset float64) (chart.Annotation, error) {
	if size == 0 {
		size = DefaultAnnotationSize
	}

	x, err := row.Float("x")
	if err != nil {
		return chart.Annotation{}, err
	}
	y, err := row.Float("y")
	if err != nil {
		return chart.Annotation{}, err
	}
	text, err := row.Text(attr)
	if err != nil {
		return chart.Annotation{}, err
	}

	return chart.Annotation{
		X:         x + xOffset,
		Y:         y + yOffset,
		XRef:      "x",
		YRef:      "y",
		Text:      text,
		ShowArrow: false,
		Font: chart.Font{
			Family: annotationFamily,
			Size:   size,
			Color:  annotationColor,
		},
		Align:   "center",
		Opacity: annotationOpacity,
	}, nil
}
