// Package sink provides output format renderers for chart figures.
//
// # Overview
//
// A "sink" transforms a finished [chart.Figure] into a final output format.
// This package provides renderers for:
//
//   - SVG: Scalable vector graphics
//   - PNG: Raster image output
//   - HTML: Self-contained interactive page backed by plotly.js
//   - JSON: Figure spec export for external tools
//
// # SVG and PNG Output
//
// [RenderSVG] and [RenderPNG] draw the figure natively: rect shapes, text
// annotations, scatter markers with labels, axis ticks and titles. Both
// respect the axis semantics of the figure model, including descending
// (inverted) ranges and suppressed gridlines.
//
//	svg := sink.RenderSVG(fig)
//	png, err := sink.RenderPNG(fig, sink.WithScale(2))
//
// PNG text uses a system font discovered via go-findfont, falling back to a
// built-in bitmap face when no TrueType font is available.
//
// # HTML Output
//
// [RenderHTML] embeds the figure spec as JSON in a standalone page that
// loads plotly.js from a CDN, giving zooming, hover, and image export in
// the browser for free. The figure's JSON field names follow the plotly
// schema, so the spec is handed to Plotly.newPlot unmodified.
//
// # JSON Output
//
// [RenderJSON] exports the complete figure spec as pretty-printed JSON,
// enabling caching and integration with external tools. Output is
// deterministic for a fixed figure.
//
// [chart.Figure]: github.com/elemvis/elemvis/pkg/chart.Figure
package sink
