package pipeline

import (
	"context"
	"time"

	"github.com/elemvis/elemvis/pkg/chart"
	"github.com/elemvis/elemvis/pkg/observability"
	"github.com/elemvis/elemvis/pkg/ptable"
	"github.com/elemvis/elemvis/pkg/table"
)

// Build assembles the figure for the configured chart kind. For table
// charts this mutates t by adding derived display and color columns.
func Build(ctx context.Context, t *table.Table, opts Options) (*chart.Figure, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, err
	}

	observability.Pipeline().OnBuildStart(ctx, opts.Kind, t.Len())
	start := time.Now()

	var fig *chart.Figure
	var err error
	switch opts.Kind {
	case KindScale:
		fig, err = ptable.ElectronegativityScale(t, opts.Scale)
	default:
		fig, err = ptable.PeriodicTable(t, opts.tableOptions()...)
	}

	observability.Pipeline().OnBuildComplete(ctx, opts.Kind, time.Since(start), err)
	return fig, err
}
