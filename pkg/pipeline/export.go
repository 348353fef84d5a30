package pipeline

import (
	"context"
	"time"

	"github.com/elemvis/elemvis/pkg/chart"
	"github.com/elemvis/elemvis/pkg/chart/sink"
	"github.com/elemvis/elemvis/pkg/observability"
)

// Export renders the figure in every requested format and returns the
// artifacts keyed by format.
func Export(ctx context.Context, fig *chart.Figure, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForExport(); err != nil {
		return nil, err
	}

	observability.Pipeline().OnExportStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var err error
	for _, format := range opts.Formats {
		var data []byte
		data, err = exportOne(fig, format, opts)
		if err != nil {
			break
		}
		artifacts[format] = data
	}

	observability.Pipeline().OnExportComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func exportOne(fig *chart.Figure, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		var svgOpts []sink.SVGOption
		if opts.Background != "" {
			svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
		}
		return sink.RenderSVG(fig, svgOpts...), nil
	case FormatPNG:
		pngOpts := []sink.PNGOption{sink.WithScale(opts.PixelScale)}
		if opts.Background != "" {
			pngOpts = append(pngOpts, sink.WithPNGBackground(opts.Background))
		}
		return sink.RenderPNG(fig, pngOpts...)
	case FormatHTML:
		return sink.RenderHTML(fig)
	case FormatJSON:
		return sink.RenderJSON(fig)
	default:
		return nil, ValidateFormat(format)
	}
}
