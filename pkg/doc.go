// Package pkg provides the core libraries for elemvis chart generation.
//
// # Overview
//
// Elemvis turns tabular element data into periodic-table charts and
// electronegativity scale plots. The pkg directory is organized into
// three main areas:
//
//  1. [table], [ptable], [chart] - Domain logic (datasets, figure building, sinks)
//  2. [cache], [httputil], [observability] - Infrastructure (caching, fetching, hooks)
//  3. [pipeline] - Orchestration (load → build → export)
//
// # Architecture
//
// The typical data flow through elemvis:
//
//	CSV/XLSX dataset (file or URL)
//	         ↓
//	    [table] package (parse into a columnar table)
//	         ↓
//	    [ptable] package (build a figure: tiles, annotations, traces)
//	         ↓
//	    [chart/sink] package (render the figure)
//	         ↓
//	    SVG/PNG/HTML/JSON output
//
// # Quick Start
//
// Load a dataset and render a periodic table to SVG:
//
//	import (
//	    "github.com/elemvis/elemvis/pkg/chart/sink"
//	    "github.com/elemvis/elemvis/pkg/ptable"
//	    "github.com/elemvis/elemvis/pkg/table"
//	)
//
//	// 1. Load the dataset
//	t, _ := table.ReadCSVFile("elements.csv")
//
//	// 2. Build the figure
//	fig, _ := ptable.PeriodicTable(t, ptable.WithAttribute("atomic_weight"))
//
//	// 3. Render to SVG
//	svg := sink.RenderSVG(fig)
//
// The [pipeline] package wraps the same flow with caching and hooks, and
// is what the CLI and HTTP server use.
package pkg
