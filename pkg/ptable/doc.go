// Package ptable assembles periodic-table and electronegativity-scale
// figures from an element table.
//
// # Overview
//
// The package is a thin presentation layer: it maps pre-computed element
// attributes and grid coordinates onto declarative [chart.Figure] contents
// and leaves all rendering to the chart sinks.
//
//   - [CreateTile] and [CreateAnnotation] are the leaf builders, turning one
//     table row into a rect shape or a text label.
//   - [PeriodicTable] is the main assembler: one tile per element plus four
//     text overlays (symbol, atomic number, name, attribute value), with the
//     grid window configured for the standard or wide table arrangement.
//   - [ElectronegativityScale] plots a named electronegativity scale as a
//     labeled scatter chart.
//
// # Input
//
// The element table needs "x" and "y" grid coordinate columns; preparation
// of the coordinates is the dataset's concern, not this package's. Derived
// columns ("display_attribute", and "attribute_color" when coloring by
// attribute) are added to the caller's table in place.
//
// # Example
//
//	tbl, err := table.ReadCSVFile("elements.csv")
//	if err != nil {
//	    return err
//	}
//	fig, err := ptable.PeriodicTable(tbl,
//	    ptable.WithAttribute("en_pauling"),
//	    ptable.WithColorBy(ptable.ColorByAttribute),
//	)
//	if err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(fig)
//
// [chart.Figure]: github.com/elemvis/elemvis/pkg/chart.Figure
package ptable
