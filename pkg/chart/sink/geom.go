package sink

import (
	"math"

	"github.com/elemvis/elemvis/pkg/chart"
)

// Frame margins in pixels. The x-axis labels move into the top margin when
// the axis side is "top", so both top and bottom leave room for them.
const (
	marginLeft   = 70.0
	marginRight  = 30.0
	marginTop    = 60.0
	marginBottom = 50.0

	defaultWidth  = 800
	defaultHeight = 600
)

// frame maps data coordinates onto the pixel plane of one rendered figure.
// Axis direction is encoded in the range order: range [10, 0.5] places 10
// at the axis start, which inverts the drawn direction.
type frame struct {
	width, height float64
	xr, yr        [2]float64
}

func newFrame(fig *chart.Figure) frame {
	w, h := fig.Layout.Width, fig.Layout.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return frame{
		width:  float64(w),
		height: float64(h),
		xr:     resolveRange(fig.Layout.XAxis, xExtent(fig)),
		yr:     resolveRange(fig.Layout.YAxis, yExtent(fig)),
	}
}

func (f frame) plotWidth() float64  { return f.width - marginLeft - marginRight }
func (f frame) plotHeight() float64 { return f.height - marginTop - marginBottom }

// px maps a data x coordinate to a pixel column. The range start sits at
// the left edge of the plot area.
func (f frame) px(x float64) float64 {
	u := (x - f.xr[0]) / (f.xr[1] - f.xr[0])
	return marginLeft + u*f.plotWidth()
}

// py maps a data y coordinate to a pixel row. The range start sits at the
// bottom edge of the plot area.
func (f frame) py(y float64) float64 {
	u := (y - f.yr[0]) / (f.yr[1] - f.yr[0])
	return marginTop + (1-u)*f.plotHeight()
}

// inRangeX reports whether x falls inside the drawn x window.
func (f frame) inRangeX(x float64) bool {
	lo, hi := math.Min(f.xr[0], f.xr[1]), math.Max(f.xr[0], f.xr[1])
	return x >= lo && x <= hi
}

func (f frame) inRangeY(y float64) bool {
	lo, hi := math.Min(f.yr[0], f.yr[1]), math.Max(f.yr[0], f.yr[1])
	return y >= lo && y <= hi
}

// resolveRange uses the axis range when set, otherwise pads the data extent
// by 5% on each side.
func resolveRange(a chart.Axis, extent [2]float64) [2]float64 {
	if len(a.Range) == 2 && a.Range[0] != a.Range[1] {
		return [2]float64{a.Range[0], a.Range[1]}
	}
	lo, hi := extent[0], extent[1]
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	pad := (hi - lo) * 0.05
	return [2]float64{lo - pad, hi + pad}
}

// xExtent computes the data extent along x across shapes, annotations, and
// traces. Traces without explicit x values use the point index.
func xExtent(fig *chart.Figure) [2]float64 {
	e := newExtent()
	for _, s := range fig.Layout.Shapes {
		e.add(s.X0)
		e.add(s.X1)
	}
	for _, a := range fig.Layout.Annotations {
		e.add(a.X)
	}
	for _, tr := range fig.Traces {
		for i := range tr.Y {
			e.add(traceX(tr, i))
		}
	}
	return e.bounds()
}

func yExtent(fig *chart.Figure) [2]float64 {
	e := newExtent()
	for _, s := range fig.Layout.Shapes {
		e.add(s.Y0)
		e.add(s.Y1)
	}
	for _, a := range fig.Layout.Annotations {
		e.add(a.Y)
	}
	for _, tr := range fig.Traces {
		for _, y := range tr.Y {
			if y != nil {
				e.add(*y)
			}
		}
	}
	return e.bounds()
}

// traceX returns the x coordinate of point i, defaulting to the index when
// the trace has no explicit x values.
func traceX(tr chart.ScatterTrace, i int) float64 {
	if i < len(tr.X) {
		return tr.X[i]
	}
	return float64(i)
}

type extent struct {
	lo, hi float64
	seen   bool
}

func newExtent() *extent { return &extent{} }

func (e *extent) add(v float64) {
	if !e.seen || v < e.lo {
		e.lo = v
	}
	if !e.seen || v > e.hi {
		e.hi = v
	}
	e.seen = true
}

func (e *extent) bounds() [2]float64 {
	if !e.seen {
		return [2]float64{0, 1}
	}
	return [2]float64{e.lo, e.hi}
}

// tickValues returns the tick positions for an axis: explicit TickVals when
// set (nil means automatic), otherwise roughly six evenly stepped ticks at
// a 1/2/5 magnitude.
func tickValues(a chart.Axis, r [2]float64) []float64 {
	if a.TickVals != nil {
		ticks := make([]float64, 0, len(a.TickVals))
		lo, hi := math.Min(r[0], r[1]), math.Max(r[0], r[1])
		for _, v := range a.TickVals {
			if v >= lo && v <= hi {
				ticks = append(ticks, v)
			}
		}
		return ticks
	}

	lo, hi := math.Min(r[0], r[1]), math.Max(r[0], r[1])
	step := niceStep((hi - lo) / 6)
	var ticks []float64
	for k := math.Ceil(lo / step); k*step <= hi+step/1e6; k++ {
		ticks = append(ticks, k*step)
	}
	return ticks
}

// niceStep rounds a raw step up to the nearest 1, 2, or 5 times a power of
// ten.
func niceStep(raw float64) float64 {
	if raw <= 0 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch {
	case raw/mag <= 1:
		return mag
	case raw/mag <= 2:
		return 2 * mag
	case raw/mag <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}
