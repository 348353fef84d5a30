package ptable

import (
	"strings"

	"github.com/elemvis/elemvis/pkg/chart"
	"github.com/elemvis/elemvis/pkg/errors"
	"github.com/elemvis/elemvis/pkg/table"
)

// Scale plotter cosmetics.
const (
	scaleMarkerSize   = 8
	scaleMarkerColor  = "#0081a7"
	scaleTextSize     = 10
	scaleBaseFontSize = 12
	scaleHeight       = 600
	scaleWidth        = 1400
)

// ScaleName derives the display name from a scale identifier: the "en_"
// prefix is dropped and the remaining underscore-separated words are
// capitalized and joined with a hyphen ("en_allred_rochow" becomes
// "Allred-Rochow").
func ScaleName(scale string) string {
	parts := strings.Split(strings.TrimPrefix(scale, "en_"), "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "-")
}

// ElectronegativityScale plots one electronegativity scale as a scatter
// chart: one point per element, labeled above with the element symbol,
// y bound to the scale column. When the table has an "atomic_number"
// column it supplies the x coordinates; otherwise points sit at their row
// index.
//
// Both the scale column and the "symbol" column must exist; rows with a
// missing scale value are kept in the trace but drawn as gaps.
func ElectronegativityScale(data *table.Table, scale string) (*chart.Figure, error) {
	if err := errors.ValidateScaleID(scale); err != nil {
		return nil, err
	}
	for _, col := range []string{scale, "symbol"} {
		if !data.HasColumn(col) {
			return nil, errors.New(errors.ErrCodeMissingColumn,
				"column %q is required in the electronegativity table", col)
		}
	}

	values, err := data.Column(scale)
	if err != nil {
		return nil, err
	}
	y := make([]*float64, len(values))
	for i, v := range values {
		if f, ok := v.(float64); ok {
			val := f
			y[i] = &val
		}
	}

	text := make([]string, data.Len())
	for i := 0; i < data.Len(); i++ {
		t, err := data.Row(i).Text("symbol")
		if err != nil {
			return nil, err
		}
		text[i] = t
	}

	var x []float64
	if data.HasColumn("atomic_number") {
		x = make([]float64, data.Len())
		for i := 0; i < data.Len(); i++ {
			z, err := data.Row(i).Float("atomic_number")
			if err != nil {
				return nil, err
			}
			x[i] = z
		}
	}

	name := ScaleName(scale)
	title := name + "'s Electronegativity"

	fig := chart.New()
	fig.AddTrace(chart.ScatterTrace{
		Type:         "scatter",
		Name:         name,
		X:            x,
		Y:            y,
		Mode:         "markers+text",
		Text:         text,
		TextPosition: "top center",
		TextFont:     chart.Font{Size: scaleTextSize},
		Marker:       chart.Marker{Size: scaleMarkerSize, Color: scaleMarkerColor},
	})
	fig.UpdateLayout(
		chart.WithTemplate("plotly_white"),
		chart.WithTitle(title),
		chart.WithSize(scaleWidth, scaleHeight),
		chart.WithFontSize(scaleBaseFontSize),
		chart.WithXAxis(chart.Axis{
			Range:    []float64{0, 119},
			Title:    "Atomic Number",
			ZeroLine: false,
		}),
		chart.WithYAxis(chart.Axis{
			Title: name,
		}),
	)
	return fig, nil
}
