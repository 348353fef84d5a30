package table

import (
	"testing"

	"github.com/elemvis/elemvis/pkg/errors"
)

func newTestTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := New("x", "y", "symbol", "atomic_weight")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tbl.AppendRow(1.0, 1.0, "H", 1.008); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}
	if err := tbl.AppendRow(18.0, 1.0, "He", 4.0026); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}
	return tbl
}

func TestNewRejectsDuplicates(t *testing.T) {
	if _, err := New("x", "x"); !errors.Is(err, errors.ErrCodeInvalidColumn) {
		t.Errorf("duplicate column error = %v, want INVALID_COLUMN", err)
	}
}

func TestAppendRowArity(t *testing.T) {
	tbl, _ := New("x", "y")
	if err := tbl.AppendRow(1.0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("arity mismatch error = %v, want INVALID_INPUT", err)
	}
}

func TestColumnLookup(t *testing.T) {
	tbl := newTestTable(t)

	col, err := tbl.Column("symbol")
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	if len(col) != 2 || col[0] != "H" || col[1] != "He" {
		t.Errorf("symbol column = %v", col)
	}

	if _, err := tbl.Column("nope"); !errors.Is(err, errors.ErrCodeMissingColumn) {
		t.Errorf("missing column error = %v, want MISSING_COLUMN", err)
	}
}

func TestAddColumn(t *testing.T) {
	tbl := newTestTable(t)

	if err := tbl.AddColumn("color", []any{"#ff0000", "#00ff00"}); err != nil {
		t.Fatalf("AddColumn: %v", err)
	}
	if !tbl.HasColumn("color") {
		t.Error("color column should exist after AddColumn")
	}

	// Replacing an existing column keeps the column count stable.
	before := len(tbl.Columns())
	if err := tbl.AddColumn("color", []any{"#ffffff", "#000000"}); err != nil {
		t.Fatalf("AddColumn replace: %v", err)
	}
	if got := len(tbl.Columns()); got != before {
		t.Errorf("column count after replace = %d, want %d", got, before)
	}
	v, _ := tbl.Row(0).Value("color")
	if v != "#ffffff" {
		t.Errorf("replaced cell = %v, want #ffffff", v)
	}

	if err := tbl.AddColumn("short", []any{"only one"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("length mismatch error = %v, want INVALID_INPUT", err)
	}
}

func TestIsNumeric(t *testing.T) {
	tbl := newTestTable(t)
	if !tbl.IsNumeric("atomic_weight") {
		t.Error("atomic_weight should be numeric")
	}
	if tbl.IsNumeric("symbol") {
		t.Error("symbol should not be numeric")
	}
	if tbl.IsNumeric("nope") {
		t.Error("missing column should not be numeric")
	}

	// A column of only missing cells is not numeric.
	if err := tbl.AddColumn("empty", []any{nil, nil}); err != nil {
		t.Fatalf("AddColumn: %v", err)
	}
	if tbl.IsNumeric("empty") {
		t.Error("all-missing column should not be numeric")
	}
}

func TestRowAccess(t *testing.T) {
	tbl := newTestTable(t)
	row := tbl.Row(1)

	x, err := row.Float("x")
	if err != nil {
		t.Fatalf("Float: %v", err)
	}
	if x != 18.0 {
		t.Errorf("x = %v, want 18.0", x)
	}

	if _, err := row.Float("symbol"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Float on text cell error = %v, want INVALID_INPUT", err)
	}
	if _, err := row.Float("nope"); !errors.Is(err, errors.ErrCodeMissingColumn) {
		t.Errorf("Float on missing column error = %v, want MISSING_COLUMN", err)
	}

	text, err := row.Text("atomic_weight")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if text != "4.0026" {
		t.Errorf("Text = %q, want 4.0026", text)
	}
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"s-block", "s-block"},
		{8.0, "8"},
		{7.12, "7.12"},
	}
	for _, tt := range tests {
		if got := FormatCell(tt.in); got != tt.want {
			t.Errorf("FormatCell(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeInts(t *testing.T) {
	tbl, _ := New("n")
	if err := tbl.AppendRow(8); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}
	f, err := tbl.Row(0).Float("n")
	if err != nil {
		t.Fatalf("Float: %v", err)
	}
	if f != 8.0 {
		t.Errorf("int cell = %v, want 8.0", f)
	}
}
