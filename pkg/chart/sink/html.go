package sink

import (
	"bytes"
	"encoding/json"
	"html/template"

	"github.com/google/uuid"

	"github.com/elemvis/elemvis/pkg/chart"
	"github.com/elemvis/elemvis/pkg/errors"
)

// plotlyCDN is the pinned plotly.js bundle loaded by HTML output.
const plotlyCDN = "https://cdn.plot.ly/plotly-2.32.0.min.js"

// HTMLOption configures HTML rendering via [RenderHTML].
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	divID string
	title string
}

// WithDivID sets the id of the chart container element. The default is a
// fresh UUID-suffixed id, so several charts can share one page.
func WithDivID(id string) HTMLOption {
	return func(r *htmlRenderer) { r.divID = id }
}

// WithPageTitle sets the HTML document title. Defaults to the figure title.
func WithPageTitle(title string) HTMLOption {
	return func(r *htmlRenderer) { r.title = title }
}

var htmlPage = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.CDN}}"></script>
<style>body { margin: 0; font-family: sans-serif; } #{{.DivID}} { margin: 0 auto; }</style>
</head>
<body>
<div id="{{.DivID}}"></div>
<script>
const spec = {{.Spec}};
Plotly.newPlot(document.getElementById("{{.DivID}}"), spec.data, spec.layout, {responsive: true});
</script>
</body>
</html>
`))

// RenderHTML produces a self-contained HTML page that renders the figure
// interactively with plotly.js loaded from a CDN. The figure spec is
// embedded as JSON and handed to Plotly.newPlot unchanged.
func RenderHTML(fig *chart.Figure, opts ...HTMLOption) ([]byte, error) {
	r := htmlRenderer{
		divID: "chart-" + uuid.NewString(),
		title: fig.Layout.Title,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.title == "" {
		r.title = "elemvis chart"
	}

	spec, err := json.Marshal(fig)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal figure")
	}

	var buf bytes.Buffer
	data := struct {
		Title string
		CDN   string
		DivID string
		Spec  template.JS
	}{
		Title: r.title,
		CDN:   plotlyCDN,
		DivID: r.divID,
		Spec:  template.JS(spec),
	}
	if err := htmlPage.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render HTML page")
	}
	return buf.Bytes(), nil
}
