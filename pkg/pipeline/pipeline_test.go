package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/elemvis/elemvis/pkg/cache"
	"github.com/elemvis/elemvis/pkg/errors"
)

const elementsCSV = `x,y,symbol,atomic_number,name,color,atomic_weight,en_pauling
1,1,H,1,Hydrogen,#ff8a65,1.008,2.2
18,1,He,2,Helium,#ffb74d,4.0026,
1,2,Li,3,Lithium,#ff8a65,6.94,0.98
`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "elements.csv")
	if err := os.WriteFile(path, []byte(elementsCSV), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func TestExecuteTableChart(t *testing.T) {
	r := NewRunner(cache.NewNullCache(), nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Source:  writeDataset(t),
		Formats: []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.RowCount != 3 {
		t.Errorf("rows = %d, want 3", result.Stats.RowCount)
	}
	if len(result.Figure.Layout.Shapes) != 3 {
		t.Errorf("shapes = %d, want 3", len(result.Figure.Layout.Shapes))
	}
	if result.DatasetHash == "" || result.FigureHash == "" {
		t.Error("missing content hashes")
	}
	svg, ok := result.Artifacts[FormatSVG]
	if !ok || !strings.HasPrefix(string(svg), "<svg") {
		t.Errorf("svg artifact = %.40q", svg)
	}
	if _, ok := result.Artifacts[FormatJSON]; !ok {
		t.Error("json artifact missing")
	}
	if result.CacheInfo.DatasetHit {
		t.Error("local file reported as dataset cache hit")
	}
}

func TestExecuteScaleChart(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Source: writeDataset(t),
		Kind:   KindScale,
		Scale:  "en_pauling",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.Figure.Traces) != 1 {
		t.Fatalf("traces = %d, want 1", len(result.Figure.Traces))
	}
	if result.Figure.Layout.Title != "Pauling's Electronegativity" {
		t.Errorf("title = %q", result.Figure.Layout.Title)
	}
	if _, ok := result.Artifacts[FormatSVG]; !ok {
		t.Error("default format artifact missing")
	}
}

func TestExecuteRemoteDatasetCaching(t *testing.T) {
	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		w.Write([]byte(elementsCSV))
	}))
	defer srv.Close()

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	opts := Options{Source: srv.URL + "/elements.csv"}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.DatasetHit || first.CacheInfo.ExportHit {
		t.Errorf("first run cache info = %+v, want all misses", first.CacheInfo)
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.DatasetHit {
		t.Error("second run missed the dataset cache")
	}
	if !second.CacheInfo.FigureHit {
		t.Error("second run missed the figure cache")
	}
	if !second.CacheInfo.ExportHit {
		t.Error("second run missed the artifact cache")
	}
	if fetches != 1 {
		t.Errorf("fetches = %d, want 1", fetches)
	}

	// Refresh bypasses the dataset cache.
	opts.Refresh = true
	third, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.CacheInfo.DatasetHit {
		t.Error("refresh run still hit the dataset cache")
	}
	if fetches != 2 {
		t.Errorf("fetches = %d, want 2", fetches)
	}
}

func TestExecuteFigureCaching(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	// Local files are never dataset-cached, but the assembled figure is.
	opts := Options{Source: writeDataset(t)}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.FigureHit {
		t.Error("first run reported a figure cache hit")
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.FigureHit {
		t.Error("second run missed the figure cache")
	}
	if second.FigureHash != first.FigureHash {
		t.Errorf("figure hash changed: %q vs %q", second.FigureHash, first.FigureHash)
	}

	// The cached figure must round-trip intact.
	if second.Figure == nil {
		t.Fatal("cached run returned no figure")
	}
	if got := len(second.Figure.Layout.Shapes); got != len(first.Figure.Layout.Shapes) {
		t.Errorf("shapes = %d, want %d", got, len(first.Figure.Layout.Shapes))
	}
	if second.Figure.Layout.Title != first.Figure.Layout.Title {
		t.Errorf("title = %q, want %q", second.Figure.Layout.Title, first.Figure.Layout.Title)
	}

	// Different assembly options derive a different figure key.
	wide := opts
	wide.Wide = true
	third, err := r.Execute(context.Background(), wide)
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.CacheInfo.FigureHit {
		t.Error("different options reused the cached figure")
	}
}

func TestBuildZeroDecimals(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	decimals := 0
	result, err := r.Execute(context.Background(), Options{
		Source:   writeDataset(t),
		Decimals: &decimals,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// The display pass is the fourth annotation block; with zero decimals
	// the weights round to whole numbers.
	anns := result.Figure.Layout.Annotations
	n := result.Stats.RowCount
	if len(anns) != 4*n {
		t.Fatalf("annotations = %d, want %d", len(anns), 4*n)
	}
	for i, want := range []string{"1", "4", "7"} {
		if got := anns[3*n+i].Text; got != want {
			t.Errorf("display[%d] = %q, want %q", i, got, want)
		}
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing source", Options{}, errors.ErrCodeInvalidInput},
		{"bad kind", Options{Source: "x.csv", Kind: "pie"}, errors.ErrCodeInvalidInput},
		{"scale without id", Options{Source: "x.csv", Kind: KindScale}, errors.ErrCodeInvalidInput},
		{"bad scale id", Options{Source: "x.csv", Kind: KindScale, Scale: "En Pauling"}, errors.ErrCodeInvalidScale},
		{"bad format", Options{Source: "x.csv", Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Source: "elements.csv"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Kind != KindTable {
		t.Errorf("kind = %q", opts.Kind)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("formats = %v", opts.Formats)
	}
	if opts.PixelScale != DefaultPixelScale {
		t.Errorf("pixel scale = %v", opts.PixelScale)
	}
	if opts.Logger == nil {
		t.Error("logger not defaulted")
	}
}

func TestSourceFormat(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"elements.csv", "csv"},
		{"elements.XLSX", "xlsx"},
		{"https://example.com/data.xlsx", "xlsx"},
		{"https://example.com/data", "csv"},
	}
	for _, tt := range tests {
		o := Options{Source: tt.source}
		if got := o.SourceFormat(); got != tt.want {
			t.Errorf("SourceFormat(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestExecuteMissingFile(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	_, err := r.Execute(context.Background(), Options{Source: "/nonexistent/elements.csv"})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}
