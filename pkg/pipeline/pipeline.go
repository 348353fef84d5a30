// Package pipeline provides the core chart pipeline shared by the CLI and
// the HTTP server.
//
// The pipeline runs in three stages:
//
//  1. Load: read an element dataset from a local file or fetch it from a URL
//  2. Build: assemble the figure (periodic table or electronegativity scale)
//  3. Export: render the figure in the requested output formats
//
// Centralizing the stages here keeps CLI and server behavior identical,
// including caching: fetched datasets and exported artifacts are cached
// by content-derived keys so repeated runs skip the expensive work.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  "elements.csv",
//	    Kind:    pipeline.KindTable,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/elemvis/elemvis/pkg/cache"
	"github.com/elemvis/elemvis/pkg/chart"
	"github.com/elemvis/elemvis/pkg/errors"
	"github.com/elemvis/elemvis/pkg/ptable"
	"github.com/elemvis/elemvis/pkg/table"
)

// Chart kinds.
const (
	// KindTable is the periodic-table grid chart.
	KindTable = "table"
	// KindScale is the electronegativity scatter chart.
	KindScale = "scale"
)

// ValidKinds is the set of supported chart kinds.
var ValidKinds = map[string]bool{
	KindTable: true,
	KindScale: true,
}

// Output format constants.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatHTML = "html"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatHTML: true,
	FormatJSON: true,
}

// Defaults applied by ValidateAndSetDefaults.
const (
	DefaultKind       = KindTable
	DefaultFormat     = FormatSVG
	DefaultPixelScale = 2.0
)

// Options contains all configuration for one pipeline run. The struct
// serializes to JSON for server requests; runtime-only fields are
// excluded.
type Options struct {
	// Load options
	Source  string `json:"source"`
	Sheet   string `json:"sheet,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`

	// Build options
	Kind         string `json:"kind,omitempty"`
	Attribute    string `json:"attribute,omitempty"`
	ColorBy      string `json:"color_by,omitempty"`
	ColorScale   string `json:"color_scale,omitempty"`
	// Decimals controls rounding of the displayed attribute. A nil
	// pointer means unset; zero is a valid value (no decimals shown).
	Decimals     *int   `json:"decimals,omitempty"`
	MissingColor string `json:"missing_color,omitempty"`
	Title        string `json:"title,omitempty"`
	Wide         bool   `json:"wide,omitempty"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	Scale        string `json:"scale,omitempty"`

	// Export options
	Formats    []string `json:"formats,omitempty"`
	PixelScale float64  `json:"pixel_scale,omitempty"`
	Background string   `json:"background,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Table is the loaded element table. When the figure was assembled
	// this run (no figure cache hit) it also carries the columns derived
	// during assembly.
	Table *table.Table

	// DatasetHash is the content hash of the raw dataset bytes.
	DatasetHash string

	// Figure is the assembled figure specification.
	Figure *chart.Figure

	// FigureHash is the content hash of the figure's JSON form.
	FigureHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RowCount   int
	LoadTime   time.Duration
	BuildTime  time.Duration
	ExportTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	DatasetHit bool // Whether the fetched dataset came from cache
	FigureHit  bool // Whether the assembled figure came from cache
	ExportHit  bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, html, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateKind checks that a chart kind is valid.
func ValidateKind(kind string) error {
	if !ValidKinds[kind] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid chart kind: %q (must be one of: table, scale)", kind)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. The method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForExport(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for the load stage.
func (o *Options) ValidateForLoad() error {
	if o.Source == "" {
		return errors.New(errors.ErrCodeInvalidInput, "source is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForBuild validates and sets defaults for figure assembly.
func (o *Options) ValidateForBuild() error {
	if o.Kind == "" {
		o.Kind = DefaultKind
	}
	if err := ValidateKind(o.Kind); err != nil {
		return err
	}
	if o.Kind == KindScale {
		if o.Scale == "" {
			return errors.New(errors.ErrCodeInvalidInput,
				"scale identifier is required for scale charts")
		}
		if err := errors.ValidateScaleID(o.Scale); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForExport validates and sets defaults for the export stage.
func (o *Options) ValidateForExport() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.PixelScale == 0 {
		o.PixelScale = DefaultPixelScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return ValidateFormats(o.Formats)
}

// IsRemote reports whether the source is fetched over HTTP rather than
// read from the local filesystem.
func (o *Options) IsRemote() bool {
	return strings.HasPrefix(o.Source, "http://") || strings.HasPrefix(o.Source, "https://")
}

// SourceFormat returns "xlsx" for workbook sources and "csv" otherwise.
func (o *Options) SourceFormat() string {
	if strings.HasSuffix(strings.ToLower(o.Source), ".xlsx") {
		return "xlsx"
	}
	return "csv"
}

// DatasetKeyOpts returns cache key options for the fetched dataset.
func (o *Options) DatasetKeyOpts() cache.DatasetKeyOpts {
	return cache.DatasetKeyOpts{
		Format: o.SourceFormat(),
		Sheet:  o.Sheet,
	}
}

// FigureKeyOpts returns cache key options for the assembled figure.
func (o *Options) FigureKeyOpts() cache.FigureKeyOpts {
	decimals := -1 // distinct from an explicit zero
	if o.Decimals != nil {
		decimals = *o.Decimals
	}
	return cache.FigureKeyOpts{
		Kind:         o.Kind,
		Attribute:    o.Attribute,
		ColorBy:      o.ColorBy,
		ColorScale:   o.ColorScale,
		Decimals:     decimals,
		MissingColor: o.MissingColor,
		Title:        o.Title,
		Wide:         o.Wide,
		Width:        o.Width,
		Height:       o.Height,
		Scale:        o.Scale,
	}
}

// ArtifactKeyOpts returns cache key options for one exported artifact.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:     format,
		Background: o.Background,
	}
	if format == FormatPNG {
		opts.PixelScale = o.PixelScale
	}
	return opts
}

// tableOptions translates pipeline options into assembler options,
// passing through only what the caller set so assembler defaults apply.
func (o *Options) tableOptions() []ptable.Option {
	var opts []ptable.Option
	if o.Attribute != "" {
		opts = append(opts, ptable.WithAttribute(o.Attribute))
	}
	if o.ColorBy != "" {
		opts = append(opts, ptable.WithColorBy(o.ColorBy))
	}
	if o.ColorScale != "" {
		opts = append(opts, ptable.WithColorScale(o.ColorScale))
	}
	if o.Decimals != nil {
		opts = append(opts, ptable.WithDecimals(*o.Decimals))
	}
	if o.MissingColor != "" {
		opts = append(opts, ptable.WithMissingColor(o.MissingColor))
	}
	if o.Title != "" {
		opts = append(opts, ptable.WithTitle(o.Title))
	}
	if o.Width != 0 {
		opts = append(opts, ptable.WithWidth(o.Width))
	}
	if o.Height != 0 {
		opts = append(opts, ptable.WithHeight(o.Height))
	}
	if o.Wide {
		opts = append(opts, ptable.WithWideLayout(true))
	}
	return opts
}
