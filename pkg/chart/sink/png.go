package sink

import (
	"bytes"
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/elemvis/elemvis/pkg/chart"
	"github.com/elemvis/elemvis/pkg/errors"
)

// PNGOption configures PNG rendering via [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background string
}

// WithScale sets the raster scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGBackground sets the background fill color (default white).
func WithPNGBackground(color string) PNGOption {
	return func(r *pngRenderer) { r.background = color }
}

// RenderPNG rasterizes the figure to PNG. The draw model matches
// [RenderSVG]: shapes, then traces, then annotations, clipped to the plot
// area, with axis decorations outside it.
//
// Text uses the first TrueType font found on the system (DejaVu Sans,
// Arial, Helvetica, or Roboto), falling back to a built-in bitmap face.
func RenderPNG(fig *chart.Figure, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, background: "#ffffff"}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1
	}

	f := newFrame(fig)
	s := r.scale
	dc := gg.NewContext(int(f.width*s), int(f.height*s))

	setHexAlpha(dc, r.background, 1)
	dc.Clear()

	p := pngPainter{dc: dc, fig: fig, f: f, s: s}
	p.drawTitle()
	p.drawAxes()

	dc.DrawRectangle(marginLeft*s, marginTop*s, f.plotWidth()*s, f.plotHeight()*s)
	dc.Clip()
	for _, sh := range fig.Layout.Shapes {
		p.drawShape(sh)
	}
	for _, tr := range fig.Traces {
		p.drawTrace(tr)
	}
	for _, a := range fig.Layout.Annotations {
		p.drawAnnotation(a)
	}
	dc.ResetClip()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode PNG")
	}
	return buf.Bytes(), nil
}

// pngPainter draws one figure onto a gg context, converting logical pixel
// coordinates to raster coordinates with the scale factor.
type pngPainter struct {
	dc  *gg.Context
	fig *chart.Figure
	f   frame
	s   float64
}

func (p *pngPainter) drawTitle() {
	if p.fig.Layout.Title == "" {
		return
	}
	p.setFont(baseFontSize(p.fig) * 1.4)
	p.dc.SetHexColor("#2a3f5f")
	p.dc.DrawStringAnchored(p.fig.Layout.Title, p.f.width/2*p.s, marginTop/2*p.s, 0.5, 0.5)
}

func (p *pngPainter) drawShape(sh chart.Shape) {
	x0, x1 := p.f.px(sh.X0)*p.s, p.f.px(sh.X1)*p.s
	y0, y1 := p.f.py(sh.Y0)*p.s, p.f.py(sh.Y1)*p.s
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	opacity := sh.Opacity
	if opacity == 0 {
		opacity = 1
	}
	p.dc.DrawRectangle(x0, y0, x1-x0, y1-y0)
	setHexAlpha(p.dc, sh.FillColor, opacity)
	p.dc.FillPreserve()
	setHexAlpha(p.dc, sh.Line.Color, opacity)
	p.dc.Stroke()
}

func (p *pngPainter) drawAnnotation(a chart.Annotation) {
	size := a.Font.Size
	if size == 0 {
		size = baseFontSize(p.fig)
	}
	color := a.Font.Color
	if color == "" {
		color = "#2a3f5f"
	}
	opacity := a.Opacity
	if opacity == 0 {
		opacity = 1
	}
	p.setFont(size)
	setHexAlpha(p.dc, color, opacity)
	p.dc.DrawStringAnchored(a.Text, p.f.px(a.X)*p.s, p.f.py(a.Y)*p.s, 0.5, 0.5)
}

func (p *pngPainter) drawTrace(tr chart.ScatterTrace) {
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
		textSize = baseFontSize(p.fig)
	}

	for i, y := range tr.Y {
		if y == nil {
			continue
		}
		x := traceX(tr, i)
		if !p.f.inRangeX(x) || !p.f.inRangeY(*y) {
			continue
		}
		cx, cy := p.f.px(x)*p.s, p.f.py(*y)*p.s
		p.dc.SetHexColor(markerColor)
		p.dc.DrawCircle(cx, cy, markerSize/2*p.s)
		p.dc.Fill()
		if i < len(tr.Text) && tr.Text[i] != "" {
			p.setFont(textSize)
			p.dc.SetHexColor("#2a3f5f")
			p.dc.DrawStringAnchored(tr.Text[i], cx, cy-(markerSize/2+6)*p.s, 0.5, 0.5)
		}
	}
}

func (p *pngPainter) drawAxes() {
	size := baseFontSize(p.fig)
	p.dc.SetHexColor("#2a3f5f")

	xTop := p.fig.Layout.XAxis.Side == "top"
	for _, v := range tickValues(p.fig.Layout.XAxis, p.f.xr) {
		x := p.f.px(v) * p.s
		if p.fig.Layout.XAxis.ShowGrid {
			p.dc.SetHexColor("#eeeeee")
			p.dc.DrawLine(x, marginTop*p.s, x, (marginTop+p.f.plotHeight())*p.s)
			p.dc.Stroke()
		}
		y := (marginTop + p.f.plotHeight() + 16) * p.s
		if xTop {
			y = (marginTop - 12) * p.s
		}
		p.setFont(size)
		p.dc.SetHexColor("#2a3f5f")
		p.dc.DrawStringAnchored(formatTick(v), x, y, 0.5, 0.5)
	}

	for _, v := range tickValues(p.fig.Layout.YAxis, p.f.yr) {
		y := p.f.py(v) * p.s
		if p.fig.Layout.YAxis.ShowGrid {
			p.dc.SetHexColor("#eeeeee")
			p.dc.DrawLine(marginLeft*p.s, y, (marginLeft+p.f.plotWidth())*p.s, y)
			p.dc.Stroke()
		}
		p.setFont(size)
		p.dc.SetHexColor("#2a3f5f")
		p.dc.DrawStringAnchored(formatTick(v), (marginLeft-16)*p.s, y, 0.5, 0.5)
	}

	if p.fig.Layout.XAxis.ZeroLine && p.f.inRangeX(0) {
		p.dc.SetHexColor("#cccccc")
		p.dc.DrawLine(p.f.px(0)*p.s, marginTop*p.s, p.f.px(0)*p.s, (marginTop+p.f.plotHeight())*p.s)
		p.dc.Stroke()
	}
	if p.fig.Layout.YAxis.ZeroLine && p.f.inRangeY(0) {
		p.dc.SetHexColor("#cccccc")
		p.dc.DrawLine(marginLeft*p.s, p.f.py(0)*p.s, (marginLeft+p.f.plotWidth())*p.s, p.f.py(0)*p.s)
		p.dc.Stroke()
	}

	if t := p.fig.Layout.XAxis.Title; t != "" {
		p.setFont(size)
		p.dc.SetHexColor("#2a3f5f")
		p.dc.DrawStringAnchored(t, (marginLeft+p.f.plotWidth()/2)*p.s, (p.f.height-12)*p.s, 0.5, 0.5)
	}
	if t := p.fig.Layout.YAxis.Title; t != "" {
		p.setFont(size)
		p.dc.SetHexColor("#2a3f5f")
		x, y := 18*p.s, (marginTop+p.f.plotHeight()/2)*p.s
		p.dc.Push()
		p.dc.RotateAbout(gg.Radians(-90), x, y)
		p.dc.DrawStringAnchored(t, x, y, 0.5, 0.5)
		p.dc.Pop()
	}
}

func (p *pngPainter) setFont(size float64) {
	p.dc.SetFontFace(loadFace(size * p.s))
}

// setHexAlpha sets the context color to a hex color with an explicit alpha.
// Unparseable colors fall back to opaque black.
func setHexAlpha(dc *gg.Context, hex string, alpha float64) {
	c, err := colorful.Hex(hex)
	if err != nil {
		dc.SetRGBA(0, 0, 0, alpha)
		return
	}
	dc.SetRGBA(c.R, c.G, c.B, alpha)
}

// Candidate system fonts, in preference order.
var fontCandidates = []string{
	"DejaVuSans.ttf",
	"Arial.ttf",
	"Helvetica.ttf",
	"Roboto-Regular.ttf",
}

var (
	ttfOnce sync.Once
	ttfFont *truetype.Font
)

// loadFace returns a font face at the given pixel size. The TrueType font
// is located and parsed once; when none is available the fixed-size bitmap
// fallback is used instead.
func loadFace(size float64) font.Face {
	ttfOnce.Do(func() {
		for _, name := range fontCandidates {
			path, err := findfont.Find(name)
			if err != nil {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			f, err := truetype.Parse(data)
			if err != nil {
				continue
			}
			ttfFont = f
			return
		}
	})
	if ttfFont == nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(ttfFont, &truetype.Options{Size: size})
}
