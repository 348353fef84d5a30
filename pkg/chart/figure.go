// Package chart provides the declarative figure model built by the chart
// assemblers and consumed by the output sinks.
//
// A Figure is a plain data description of a chart: layout (title, size,
// axes), rect shapes, text annotations, and scatter traces. Building a
// Figure performs no rendering; sinks under chart/sink turn the finished
// description into SVG, PNG, HTML, or JSON artifacts.
//
// The JSON field names follow the plotly figure schema so that the JSON and
// HTML sinks can hand the spec directly to plotly.js.
package chart

// Figure is a complete chart description.
type Figure struct {
	Traces []ScatterTrace `json:"data"`
	Layout Layout         `json:"layout"`
}

// Layout holds figure-level presentation settings.
type Layout struct {
	Template    string       `json:"template,omitempty"`
	Title       string       `json:"title,omitempty"`
	Width       int          `json:"width,omitempty"`
	Height      int          `json:"height,omitempty"`
	Font        Font         `json:"font,omitzero"`
	XAxis       Axis         `json:"xaxis"`
	YAxis       Axis         `json:"yaxis"`
	Shapes      []Shape      `json:"shapes,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// Axis configures one coordinate axis.
//
// Range is [start, end] in data coordinates; start > end yields a
// descending (inverted) axis. A nil Range means auto-range, a nil TickVals
// means automatic ticks, and an empty non-nil TickVals suppresses ticks
// entirely.
type Axis struct {
	Range      []float64 `json:"range,omitempty"`
	TickVals   []float64 `json:"tickvals,omitempty"`
	Title      string    `json:"title,omitempty"`
	ShowGrid   bool      `json:"showgrid"`
	FixedRange bool      `json:"fixedrange,omitempty"`
	Side       string    `json:"side,omitempty"`
	ZeroLine   bool      `json:"zeroline"`
}

// Inverted reports whether the axis range is descending.
func (a Axis) Inverted() bool {
	return len(a.Range) == 2 && a.Range[0] > a.Range[1]
}

// Shape is a rectangle drawn in data coordinates.
type Shape struct {
	Type      string  `json:"type"`
	X0        float64 `json:"x0"`
	Y0        float64 `json:"y0"`
	X1        float64 `json:"x1"`
	Y1        float64 `json:"y1"`
	Line      Line    `json:"line"`
	FillColor string  `json:"fillcolor,omitempty"`
	Opacity   float64 `json:"opacity,omitempty"`
}

// Line styles a shape outline.
type Line struct {
	Color string `json:"color,omitempty"`
}

// Annotation is a static text label anchored in data coordinates.
type Annotation struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	XRef      string  `json:"xref,omitempty"`
	YRef      string  `json:"yref,omitempty"`
	Text      string  `json:"text"`
	ShowArrow bool    `json:"showarrow"`
	Font      Font    `json:"font,omitzero"`
	Align     string  `json:"align,omitempty"`
	Opacity   float64 `json:"opacity,omitempty"`
}

// Font describes text styling.
type Font struct {
	Family string  `json:"family,omitempty"`
	Size   float64 `json:"size,omitempty"`
	Color  string  `json:"color,omitempty"`
}

// Marker styles scatter points.
type Marker struct {
	Size  float64 `json:"size,omitempty"`
	Color string  `json:"color,omitempty"`
}

// ScatterTrace is a single scatter series. X may be nil, in which case
// points are placed at their zero-based index, matching plotly's default.
// Y cells may be nil for missing values; such points are skipped when drawn.
type ScatterTrace struct {
	Type         string     `json:"type"`
	Name         string     `json:"name,omitempty"`
	X            []float64  `json:"x,omitempty"`
	Y            []*float64 `json:"y"`
	Mode         string     `json:"mode,omitempty"`
	Text         []string   `json:"text,omitempty"`
	TextPosition string     `json:"textposition,omitempty"`
	TextFont     Font       `json:"textfont,omitzero"`
	Marker       Marker     `json:"marker,omitzero"`
}

// New creates an empty figure.
func New() *Figure {
	return &Figure{}
}

// AddShapes appends shapes to the figure's layout, preserving order.
func (f *Figure) AddShapes(shapes ...Shape) *Figure {
	f.Layout.Shapes = append(f.Layout.Shapes, shapes...)
	return f
}

// AddAnnotations appends text annotations, preserving order.
func (f *Figure) AddAnnotations(anns ...Annotation) *Figure {
	f.Layout.Annotations = append(f.Layout.Annotations, anns...)
	return f
}

// AddTrace appends a scatter trace.
func (f *Figure) AddTrace(tr ScatterTrace) *Figure {
	f.Traces = append(f.Traces, tr)
	return f
}

// LayoutOption mutates the figure layout via UpdateLayout.
type LayoutOption func(*Layout)

// WithTemplate sets the style template name.
func WithTemplate(name string) LayoutOption {
	return func(l *Layout) { l.Template = name }
}

// WithTitle sets the figure title.
func WithTitle(title string) LayoutOption {
	return func(l *Layout) { l.Title = title }
}

// WithSize sets the figure dimensions in pixels.
func WithSize(width, height int) LayoutOption {
	return func(l *Layout) {
		l.Width = width
		l.Height = height
	}
}

// WithFontSize sets the base font size.
func WithFontSize(size float64) LayoutOption {
	return func(l *Layout) { l.Font.Size = size }
}

// WithXAxis replaces the x-axis configuration.
func WithXAxis(a Axis) LayoutOption {
	return func(l *Layout) { l.XAxis = a }
}

// WithYAxis replaces the y-axis configuration.
func WithYAxis(a Axis) LayoutOption {
	return func(l *Layout) { l.YAxis = a }
}

// UpdateLayout applies layout options in order and returns the figure for
// chaining.
func (f *Figure) UpdateLayout(opts ...LayoutOption) *Figure {
	for _, opt := range opts {
		opt(&f.Layout)
	}
	return f
}
