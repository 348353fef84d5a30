// Package cache provides the caching layer shared by the CLI and the HTTP
// server.
//
// Three kinds of entries are cached, each with its own key derivation and
// time-to-live: raw dataset bytes fetched from remote sources, assembled
// figure specifications, and exported artifacts (SVG, PNG, HTML, JSON).
// Backends implement the [Cache] interface; [FileCache] serves local CLI
// usage, [RedisCache] serves shared server deployments, and [NullCache]
// disables caching entirely.
package cache

import (
	"context"
	"time"
)

// TTLs per entry kind. Datasets change rarely, artifacts are cheap to
// rebuild from a cached dataset.
const (
	TTLDataset  = 24 * time.Hour
	TTLFigure   = 6 * time.Hour
	TTLArtifact = 6 * time.Hour
)

// Cache is the storage backend interface.
//
// Get reports a miss with (nil, false, nil); errors are reserved for
// backend failures. Set with a zero ttl stores the entry without
// expiration.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// DatasetKeyOpts captures everything that distinguishes one fetched
// dataset from another besides its source.
type DatasetKeyOpts struct {
	Format string // "csv" or "xlsx"
	Sheet  string // xlsx sheet name, empty for the first sheet
}

// FigureKeyOpts captures the assembly options that shape a figure built
// from a given dataset.
type FigureKeyOpts struct {
	Kind         string
	Attribute    string
	ColorBy      string
	ColorScale   string
	Decimals     int
	MissingColor string
	Title        string
	Wide         bool
	Width        int
	Height       int
	Scale        string
}

// ArtifactKeyOpts captures the export options that shape one rendered
// artifact of a figure.
type ArtifactKeyOpts struct {
	Format     string
	PixelScale float64
	Background string
}

// Keyer derives cache keys for the three entry kinds. Implementations
// must be deterministic: equal inputs yield equal keys.
type Keyer interface {
	DatasetKey(source string, opts DatasetKeyOpts) string
	FigureKey(datasetHash string, opts FigureKeyOpts) string
	ArtifactKey(figureHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the source or content hash together with the
// options struct, prefixed by the entry kind.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DatasetKey generates a key for raw dataset bytes.
func (k *DefaultKeyer) DatasetKey(source string, opts DatasetKeyOpts) string {
	return hashKey("dataset", source, opts)
}

// FigureKey generates a key for an assembled figure specification.
func (k *DefaultKeyer) FigureKey(datasetHash string, opts FigureKeyOpts) string {
	return hashKey("figure", datasetHash, opts)
}

// ArtifactKey generates a key for one exported artifact.
func (k *DefaultKeyer) ArtifactKey(figureHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", figureHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
