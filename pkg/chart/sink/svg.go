package sink

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/elemvis/elemvis/pkg/chart"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
}

// WithBackground sets the background fill color (default white).
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// RenderSVG draws the figure as a standalone SVG document.
//
// Shapes, annotations, and traces are drawn in figure order, so output is
// deterministic for a fixed figure. Elements positioned outside the axis
// window are clipped by the plot area.
func RenderSVG(fig *chart.Figure, opts ...SVGOption) []byte {
	r := svgRenderer{background: "#ffffff"}
	for _, opt := range opts {
		opt(&r)
	}

	f := newFrame(fig)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.width, f.height, f.width, f.height)
	fmt.Fprintf(&buf, `<rect width="%.1f" height="%.1f" fill="%s"/>`+"\n", f.width, f.height, r.background)

	writeClip(&buf, f)
	writeTitle(&buf, fig, f)
	writeAxes(&buf, fig, f)

	buf.WriteString(`<g clip-path="url(#plot-area)">` + "\n")
	for _, s := range fig.Layout.Shapes {
		writeShape(&buf, f, s)
	}
	for _, tr := range fig.Traces {
		writeTrace(&buf, fig, f, tr)
	}
	for _, a := range fig.Layout.Annotations {
		writeAnnotation(&buf, fig, f, a)
	}
	buf.WriteString("</g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeClip(buf *bytes.Buffer, f frame) {
	fmt.Fprintf(buf, `<defs><clipPath id="plot-area"><rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/></clipPath></defs>`+"\n",
		marginLeft, marginTop, f.plotWidth(), f.plotHeight())
}

func writeTitle(buf *bytes.Buffer, fig *chart.Figure, f frame) {
	if fig.Layout.Title == "" {
		return
	}
	size := baseFontSize(fig) * 1.4
	fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" text-anchor="middle" font-family="%s" font-size="%.1f" fill="#2a3f5f">%s</text>`+"\n",
		f.width/2, marginTop/2, fontFamily(fig.Layout.Font), size, escape(fig.Layout.Title))
}

func writeShape(buf *bytes.Buffer, f frame, s chart.Shape) {
	x0, x1 := f.px(s.X0), f.px(s.X1)
	y0, y1 := f.py(s.Y0), f.py(s.Y1)
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	opacity := s.Opacity
	if opacity == 0 {
		opacity = 1
	}
	fmt.Fprintf(buf, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" opacity="%.2f"/>`+"\n",
		x0, y0, x1-x0, y1-y0, s.FillColor, s.Line.Color, opacity)
}

func writeAnnotation(buf *bytes.Buffer, fig *chart.Figure, f frame, a chart.Annotation) {
	size := a.Font.Size
	if size == 0 {
		size = baseFontSize(fig)
	}
	color := a.Font.Color
	if color == "" {
		color = "#2a3f5f"
	}
	opacity := a.Opacity
	if opacity == 0 {
		opacity = 1
	}
	fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="%.1f" fill="%s" opacity="%.2f">%s</text>`+"\n",
		f.px(a.X), f.py(a.Y), fontFamily(chart.Font{Family: a.Font.Family}), size, color, opacity, escape(a.Text))
}

func writeTrace(buf *bytes.Buffer, fig *chart.Figure, f frame, tr chart.ScatterTrace) {
	markerSize := tr.Marker.Size
	if markerSize == 0 {
		markerSize = 6
	}
	markerColor := tr.Marker.Color
	if markerColor == "" {
		markerColor = "#636efa"
	}
	textSize := tr.TextFont.Size
	if textSize == 0 {
		textSize = baseFontSize(fig)
	}

	for i, y := range tr.Y {
		if y == nil {
			continue
		}
		x := traceX(tr, i)
		if !f.inRangeX(x) || !f.inRangeY(*y) {
			continue
		}
		cx, cy := f.px(x), f.py(*y)
		fmt.Fprintf(buf, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
			cx, cy, markerSize/2, markerColor)
		if i < len(tr.Text) && tr.Text[i] != "" {
			// Only "top center" placement is used by the builders.
			fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" text-anchor="middle" font-family="%s" font-size="%.1f" fill="#2a3f5f">%s</text>`+"\n",
				cx, cy-markerSize/2-3, fontFamily(fig.Layout.Font), textSize, escape(tr.Text[i]))
		}
	}
}

func writeAxes(buf *bytes.Buffer, fig *chart.Figure, f frame) {
	size := baseFontSize(fig)
	family := fontFamily(fig.Layout.Font)

	// X ticks along the top or bottom edge.
	xTop := fig.Layout.XAxis.Side == "top"
	for _, v := range tickValues(fig.Layout.XAxis, f.xr) {
		x := f.px(v)
		if fig.Layout.XAxis.ShowGrid {
			fmt.Fprintf(buf, `<line x1="%.2f" y1="%.1f" x2="%.2f" y2="%.1f" stroke="#eeeeee"/>`+"\n",
				x, marginTop, x, marginTop+f.plotHeight())
		}
		y := marginTop + f.plotHeight() + size + 6
		if xTop {
			y = marginTop - 8
		}
		fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" text-anchor="middle" font-family="%s" font-size="%.1f" fill="#2a3f5f">%s</text>`+"\n",
			x, y, family, size, formatTick(v))
	}

	// Y ticks along the left edge.
	for _, v := range tickValues(fig.Layout.YAxis, f.yr) {
		y := f.py(v)
		if fig.Layout.YAxis.ShowGrid {
			fmt.Fprintf(buf, `<line x1="%.1f" y1="%.2f" x2="%.1f" y2="%.2f" stroke="#eeeeee"/>`+"\n",
				marginLeft, y, marginLeft+f.plotWidth(), y)
		}
		fmt.Fprintf(buf, `<text x="%.1f" y="%.2f" text-anchor="end" dominant-baseline="central" font-family="%s" font-size="%.1f" fill="#2a3f5f">%s</text>`+"\n",
			marginLeft-8, y, family, size, formatTick(v))
	}

	// Zero lines when enabled and visible.
	if fig.Layout.XAxis.ZeroLine && f.inRangeX(0) {
		fmt.Fprintf(buf, `<line x1="%.2f" y1="%.1f" x2="%.2f" y2="%.1f" stroke="#cccccc" stroke-width="2"/>`+"\n",
			f.px(0), marginTop, f.px(0), marginTop+f.plotHeight())
	}
	if fig.Layout.YAxis.ZeroLine && f.inRangeY(0) {
		fmt.Fprintf(buf, `<line x1="%.1f" y1="%.2f" x2="%.1f" y2="%.2f" stroke="#cccccc" stroke-width="2"/>`+"\n",
			marginLeft, f.py(0), marginLeft+f.plotWidth(), f.py(0))
	}

	// Axis titles.
	if t := fig.Layout.XAxis.Title; t != "" {
		fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" text-anchor="middle" font-family="%s" font-size="%.1f" fill="#2a3f5f">%s</text>`+"\n",
			marginLeft+f.plotWidth()/2, f.height-12, family, size, escape(t))
	}
	if t := fig.Layout.YAxis.Title; t != "" {
		y := marginTop + f.plotHeight()/2
		fmt.Fprintf(buf, `<text x="%.1f" y="%.2f" text-anchor="middle" font-family="%s" font-size="%.1f" fill="#2a3f5f" transform="rotate(-90 %.1f %.2f)">%s</text>`+"\n",
			18.0, y, family, size, 18.0, y, escape(t))
	}
}

func baseFontSize(fig *chart.Figure) float64 {
	if fig.Layout.Font.Size > 0 {
		return fig.Layout.Font.Size
	}
	return 12
}

func fontFamily(f chart.Font) string {
	if f.Family != "" {
		return f.Family + ", sans-serif"
	}
	return "sans-serif"
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string {
	return escaper.Replace(s)
}
