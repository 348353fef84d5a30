package ptable

import (
	"math"

	"github.com/elemvis/elemvis/pkg/chart"
	"github.com/elemvis/elemvis/pkg/colormap"
	"github.com/elemvis/elemvis/pkg/errors"
	"github.com/elemvis/elemvis/pkg/table"
)

// Derived columns added to the caller's table.
const (
	// AttributeColorColumn holds colors derived from the attribute column
	// when coloring by attribute.
	AttributeColorColumn = "attribute_color"
	// DisplayAttributeColumn holds the attribute values rounded for display.
	DisplayAttributeColumn = "display_attribute"
)

// Annotation overlays, one pass per entry, in fixed order.
var overlays = []struct {
	column  string
	size    float64
	yOffset float64
}{
	{"symbol", 16, 0},
	{"atomic_number", 0, -0.3},
	{"name", 7, 0.2},
	{DisplayAttributeColumn, 7, 0.35},
}

// PeriodicTable assembles a periodic-table figure from the element table.
//
// Every row becomes one colored tile plus four text overlays: symbol,
// atomic number, name, and the display value of the chosen attribute. Rows
// are processed in table order, so output is deterministic.
//
// The table must carry "x" and "y" grid coordinate columns; if either is
// missing, PeriodicTable fails with a MISSING_COLUMN error before touching
// the table. On success the table gains the DisplayAttributeColumn derived
// column, and AttributeColorColumn as well when coloring by attribute.
// This in-place mutation is the function's only side effect.
func PeriodicTable(elements *table.Table, opts ...Option) (*chart.Figure, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	for _, col := range []string{"x", "y"} {
		if !elements.HasColumn(col) {
			return nil, errors.New(errors.ErrCodeMissingColumn,
				"coordinate columns named 'x' and 'y' are required in the element table; "+
					"prepare the dataset with table.ReadCSVFile on a coordinate-annotated dataset and try again")
		}
	}

	fig := chart.New()

	colorBy := o.ColorBy
	if colorBy == ColorByAttribute {
		colored, err := colormap.Column(elements, o.Attribute, o.ColorScale, o.MissingColor)
		if err != nil {
			return nil, err
		}
		cells := make([]any, len(colored))
		for i, c := range colored {
			cells[i] = c
		}
		if err := elements.AddColumn(AttributeColorColumn, cells); err != nil {
			return nil, err
		}
		colorBy = AttributeColorColumn
	}

	// Tiles first, then the text overlays on top of them.
	for i := 0; i < elements.Len(); i++ {
		tile, err := CreateTile(elements.Row(i), colorBy, 0, 0)
		if err != nil {
			return nil, err
		}
		fig.AddShapes(tile)
	}

	if err := addDisplayColumn(elements, o.Attribute, o.Decimals); err != nil {
		return nil, err
	}

	for _, ov := range overlays {
		for i := 0; i < elements.Len(); i++ {
			ann, err := CreateAnnotation(elements.Row(i), ov.column, ov.size, 0, ov.yOffset)
			if err != nil {
				return nil, err
			}
			fig.AddAnnotations(ann)
		}
	}

	xAxis, yAxis := layoutAxes(o.WideLayout)
	fig.UpdateLayout(
		chart.WithTemplate("plotly_white"),
		chart.WithTitle(o.Title),
		chart.WithSize(o.Width, o.Height),
		chart.WithXAxis(xAxis),
		chart.WithYAxis(yAxis),
	)

	return fig, nil
}

// layoutAxes returns the axis configuration for the chosen arrangement.
// The y range is descending in both variants so period 1 sits on top.
func layoutAxes(wide bool) (x, y chart.Axis) {
	if wide {
		x = chart.Axis{
			Range:      []float64{0.5, 32.5},
			FixedRange: true,
			Side:       "top",
		}
		y = chart.Axis{
			Range:      []float64{7.5, 0.5},
			FixedRange: true,
			Title:      "Period",
		}
		return x, y
	}
	x = chart.Axis{
		Range:      []float64{0.5, 18.5},
		TickVals:   sequence(1, 18),
		FixedRange: true,
		Side:       "top",
	}
	y = chart.Axis{
		Range:      []float64{10.0, 0.5},
		TickVals:   sequence(1, 7),
		FixedRange: true,
		Title:      "Period",
	}
	return x, y
}

// addDisplayColumn computes the attribute's display values: numeric
// columns are rounded to the configured decimal count, anything else
// passes through unchanged.
func addDisplayColumn(elements *table.Table, attribute string, decimals int) error {
	cells, err := elements.Column(attribute)
	if err != nil {
		return err
	}

	display := make([]any, len(cells))
	if elements.IsNumeric(attribute) {
		for i, v := range cells {
			if f, ok := v.(float64); ok {
				display[i] = roundTo(f, decimals)
			}
		}
	} else {
		copy(display, cells)
	}
	return elements.AddColumn(DisplayAttributeColumn, display)
}

func roundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}

func sequence(from, to int) []float64 {
	out := make([]float64, 0, to-from+1)
	for v := from; v <= to; v++ {
		out = append(out, float64(v))
	}
	return out
}
