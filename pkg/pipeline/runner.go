package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/elemvis/elemvis/pkg/cache"
	"github.com/elemvis/elemvis/pkg/chart"
	"github.com/elemvis/elemvis/pkg/chart/sink"
	"github.com/elemvis/elemvis/pkg/errors"
	"github.com/elemvis/elemvis/pkg/observability"
	"github.com/elemvis/elemvis/pkg/table"
)

// Runner executes the pipeline with caching. Both the CLI and the server
// use it so caching behavior never diverges between the two.
//
// The Runner holds no per-run state beyond the cache and logger, so one
// instance can serve concurrent runs with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer falls back to the default
// keyer, a nil cache disables caching, and a nil logger falls back to the
// package default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete load → build → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	t, raw, datasetHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, wrapStage("load", err)
	}
	result.Table = t
	result.DatasetHash = cache.Hash(raw)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.RowCount = t.Len()
	result.CacheInfo.DatasetHit = datasetHit

	r.Logger.Info("loaded dataset",
		"source", opts.Source,
		"rows", t.Len(),
		"cached", datasetHit,
		"duration", result.Stats.LoadTime)

	// Stage 2: Build. The figure key pins the dataset content plus every
	// assembly option, so a hit means the cached JSON form is current.
	buildStart := time.Now()
	figureKey := r.Keyer.FigureKey(result.DatasetHash, opts.FigureKeyOpts())

	var fig *chart.Figure
	var figJSON []byte
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, figureKey); err == nil && hit {
			var cached chart.Figure
			if err := json.Unmarshal(data, &cached); err == nil {
				fig = &cached
				figJSON = data
				result.CacheInfo.FigureHit = true
				observability.Cache().OnCacheHit(ctx, "figure")
			} else {
				_ = r.Cache.Delete(ctx, figureKey)
			}
		}
	}
	if fig == nil {
		observability.Cache().OnCacheMiss(ctx, "figure")
		fig, err = Build(ctx, t, opts)
		if err != nil {
			return nil, wrapStage("build", err)
		}
		figJSON, err = sink.RenderJSON(fig)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash figure")
		}
		if err := r.Cache.Set(ctx, figureKey, figJSON, cache.TTLFigure); err == nil {
			observability.Cache().OnCacheSet(ctx, "figure", len(figJSON))
		}
	}
	result.Figure = fig
	result.FigureHash = cache.Hash(figJSON)
	result.Stats.BuildTime = time.Since(buildStart)

	r.Logger.Info("assembled figure",
		"kind", opts.Kind,
		"shapes", len(fig.Layout.Shapes),
		"annotations", len(fig.Layout.Annotations),
		"cached", result.CacheInfo.FigureHit,
		"duration", result.Stats.BuildTime)

	// Stage 3: Export
	exportStart := time.Now()
	artifacts, exportHit, err := r.ExportWithCacheInfo(ctx, fig, result.FigureHash, opts)
	if err != nil {
		return nil, wrapStage("export", err)
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)
	result.CacheInfo.ExportHit = exportHit

	r.Logger.Info("exported artifacts",
		"formats", opts.Formats,
		"cached", exportHit,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// LoadWithCacheInfo loads the dataset, caching raw bytes of remote
// sources. It returns the parsed table, the raw bytes, and whether the
// bytes came from cache. Local files are always read fresh; disk is the
// source of truth for them.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*table.Table, []byte, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, nil, false, err
	}
	r.applyLogger(&opts)

	if !opts.IsRemote() {
		data, err := LoadBytes(ctx, opts)
		if err != nil {
			return nil, nil, false, err
		}
		t, err := ParseBytes(data, opts)
		return t, data, false, err
	}

	key := r.Keyer.DatasetKey(opts.Source, opts.DatasetKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "dataset")
			if t, err := ParseBytes(data, opts); err == nil {
				return t, data, true, nil
			}
			// A cached dataset that no longer parses is stale.
			_ = r.Cache.Delete(ctx, key)
		}
	}
	observability.Cache().OnCacheMiss(ctx, "dataset")

	data, err := LoadBytes(ctx, opts)
	if err != nil {
		return nil, nil, false, err
	}
	t, err := ParseBytes(data, opts)
	if err != nil {
		return nil, nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, cache.TTLDataset); err == nil {
		observability.Cache().OnCacheSet(ctx, "dataset", len(data))
	}
	return t, data, false, nil
}

// Load is a convenience wrapper that discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*table.Table, error) {
	t, _, _, err := r.LoadWithCacheInfo(ctx, opts)
	return t, err
}

// ExportWithCacheInfo renders artifacts with caching and reports whether
// every requested format came from cache.
func (r *Runner) ExportWithCacheInfo(ctx context.Context, fig *chart.Figure, figureHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForExport(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(figureHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		} else {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			allCached = false
			break
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	rendered, err := Export(ctx, fig, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(figureHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Close releases resources held by the runner, primarily the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// wrapStage prefixes an error with its pipeline stage, keeping the
// original code so callers can still match on it.
func wrapStage(stage string, err error) error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errors.Wrap(code, err, "%s", stage)
}
