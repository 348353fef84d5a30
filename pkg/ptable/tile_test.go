package ptable

import (
	"testing"

	"github.com/elemvis/elemvis/pkg/errors"
	"github.com/elemvis/elemvis/pkg/table"
)

func oneElementTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New("x", "y", "symbol", "atomic_number", "name", "color")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tbl.AppendRow(1.0, 1.0, "H", 1.0, "Hydrogen", "#d6604d"); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}
	return tbl
}

func TestCreateTile(t *testing.T) {
	tbl := oneElementTable(t)

	tile, err := CreateTile(tbl.Row(0), "color", 0, 0)
	if err != nil {
		t.Fatalf("CreateTile: %v", err)
	}

	// Default half-extents give a tile spanning x 0.55..1.45, y 0.55..1.45.
	if tile.X0 != 0.55 || tile.X1 != 1.45 {
		t.Errorf("x span = [%v, %v], want [0.55, 1.45]", tile.X0, tile.X1)
	}
	if tile.Y0 != 0.55 || tile.Y1 != 1.45 {
		t.Errorf("y span = [%v, %v], want [0.55, 1.45]", tile.Y0, tile.Y1)
	}
	if tile.Type != "rect" {
		t.Errorf("type = %q, want rect", tile.Type)
	}
	if tile.FillColor != "#d6604d" || tile.Line.Color != "#d6604d" {
		t.Errorf("colors = fill %q line %q, want #d6604d for both", tile.FillColor, tile.Line.Color)
	}
	if tile.Opacity != 0.8 {
		t.Errorf("opacity = %v, want 0.8", tile.Opacity)
	}
}

func TestCreateTileCustomOffsets(t *testing.T) {
	tbl := oneElementTable(t)
	tile, err := CreateTile(tbl.Row(0), "color", 0.5, 0.25)
	if err != nil {
		t.Fatalf("CreateTile: %v", err)
	}
	if tile.X0 != 0.5 || tile.X1 != 1.5 || tile.Y0 != 0.75 || tile.Y1 != 1.25 {
		t.Errorf("tile spans = x[%v,%v] y[%v,%v]", tile.X0, tile.X1, tile.Y0, tile.Y1)
	}
}

func TestCreateTileMissingColorColumn(t *testing.T) {
	tbl := oneElementTable(t)
	if _, err := CreateTile(tbl.Row(0), "shade", 0, 0); !errors.Is(err, errors.ErrCodeMissingColumn) {
		t.Errorf("error = %v, want MISSING_COLUMN", err)
	}
}

func TestCreateAnnotation(t *testing.T) {
	tbl := oneElementTable(t)

	ann, err := CreateAnnotation(tbl.Row(0), "symbol", 16, 0, 0)
	if err != nil {
		t.Fatalf("CreateAnnotation: %v", err)
	}
	if ann.X != 1 || ann.Y != 1 {
		t.Errorf("anchor = (%v, %v), want (1, 1)", ann.X, ann.Y)
	}
	if ann.XRef != "x" || ann.YRef != "y" {
		t.Errorf("refs = %q/%q, want x/y", ann.XRef, ann.YRef)
	}
	if ann.Text != "H" {
		t.Errorf("text = %q, want H", ann.Text)
	}
	if ann.ShowArrow {
		t.Error("annotations must not show arrows")
	}
	if ann.Font.Family != "Roboto" || ann.Font.Size != 16 || ann.Font.Color != "#333333" {
		t.Errorf("font = %+v", ann.Font)
	}
	if ann.Align != "center" || ann.Opacity != 0.9 {
		t.Errorf("align/opacity = %q/%v", ann.Align, ann.Opacity)
	}
}

func TestCreateAnnotationOffsetsAndDefaults(t *testing.T) {
	tbl := oneElementTable(t)

	ann, err := CreateAnnotation(tbl.Row(0), "atomic_number", 0, 0, -0.3)
	if err != nil {
		t.Fatalf("CreateAnnotation: %v", err)
	}
	if ann.Y != 0.7 {
		t.Errorf("offset anchor y = %v, want 0.7", ann.Y)
	}
	if ann.Font.Size != DefaultAnnotationSize {
		t.Errorf("default size = %v, want %v", ann.Font.Size, DefaultAnnotationSize)
	}
	// Numeric cells format without trailing decimals.
	if ann.Text != "1" {
		t.Errorf("text = %q, want 1", ann.Text)
	}
}

func TestCreateAnnotationMissingColumn(t *testing.T) {
	tbl := oneElementTable(t)
	if _, err := CreateAnnotation(tbl.Row(0), "block", 0, 0, 0); !errors.Is(err, errors.ErrCodeMissingColumn) {
		t.Errorf("error = %v, want MISSING_COLUMN", err)
	}
}
