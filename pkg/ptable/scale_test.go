package ptable

import (
	"testing"

	"github.com/elemvis/elemvis/pkg/errors"
	"github.com/elemvis/elemvis/pkg/table"
)

func TestScaleName(t *testing.T) {
	tests := []struct {
		scale string
		want  string
	}{
		{"en_pauling", "Pauling"},
		{"en_allred_rochow", "Allred-Rochow"},
		{"en_mulliken", "Mulliken"},
		{"sanderson", "Sanderson"},
	}
	for _, tt := range tests {
		if got := ScaleName(tt.scale); got != tt.want {
			t.Errorf("ScaleName(%q) = %q, want %q", tt.scale, got, tt.want)
		}
	}
}

func scaleTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New("atomic_number", "symbol", "en_pauling")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rows := [][]any{
		{1.0, "H", 2.2},
		{2.0, "He", nil},
		{3.0, "Li", 0.98},
	}
	for _, row := range rows {
		if err := tbl.AppendRow(row...); err != nil {
			t.Fatalf("AppendRow: %v", err)
		}
	}
	return tbl
}

func TestElectronegativityScale(t *testing.T) {
	fig, err := ElectronegativityScale(scaleTable(t), "en_pauling")
	if err != nil {
		t.Fatalf("ElectronegativityScale: %v", err)
	}

	if len(fig.Traces) != 1 {
		t.Fatalf("traces = %d, want 1", len(fig.Traces))
	}
	tr := fig.Traces[0]
	if tr.Name != "Pauling" {
		t.Errorf("trace name = %q", tr.Name)
	}
	if tr.Mode != "markers+text" || tr.TextPosition != "top center" {
		t.Errorf("mode = %q, position = %q", tr.Mode, tr.TextPosition)
	}
	if tr.Marker.Size != 8 || tr.Marker.Color != "#0081a7" {
		t.Errorf("marker = %+v", tr.Marker)
	}
	if len(tr.X) != 3 || tr.X[2] != 3 {
		t.Errorf("x = %v, want atomic numbers", tr.X)
	}
	if tr.Y[0] == nil || *tr.Y[0] != 2.2 {
		t.Errorf("y[0] = %v, want 2.2", tr.Y[0])
	}
	if tr.Y[1] != nil {
		t.Error("missing value must stay a gap in the trace")
	}
	if tr.Text[1] != "He" {
		t.Errorf("text[1] = %q, want He", tr.Text[1])
	}

	if fig.Layout.Title != "Pauling's Electronegativity" {
		t.Errorf("title = %q", fig.Layout.Title)
	}
	if fig.Layout.Width != 1400 || fig.Layout.Height != 600 {
		t.Errorf("size = %dx%d", fig.Layout.Width, fig.Layout.Height)
	}
	x := fig.Layout.XAxis
	if x.Range[0] != 0 || x.Range[1] != 119 {
		t.Errorf("x range = %v", x.Range)
	}
	if x.Title != "Atomic Number" || x.ZeroLine {
		t.Errorf("x axis = %+v", x)
	}
	if fig.Layout.YAxis.Title != "Pauling" {
		t.Errorf("y title = %q", fig.Layout.YAxis.Title)
	}
}

func TestElectronegativityScaleNoAtomicNumber(t *testing.T) {
	tbl, err := table.New("symbol", "en_pauling")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tbl.AppendRow("H", 2.2); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}

	fig, err := ElectronegativityScale(tbl, "en_pauling")
	if err != nil {
		t.Fatalf("ElectronegativityScale: %v", err)
	}
	if fig.Traces[0].X != nil {
		t.Errorf("x = %v, want nil for index positioning", fig.Traces[0].X)
	}
}

func TestElectronegativityScaleErrors(t *testing.T) {
	tbl := scaleTable(t)

	if _, err := ElectronegativityScale(tbl, "En Pauling"); !errors.Is(err, errors.ErrCodeInvalidScale) {
		t.Errorf("bad identifier error = %v, want INVALID_SCALE", err)
	}
	if _, err := ElectronegativityScale(tbl, "en_cottrell_sutton"); !errors.Is(err, errors.ErrCodeMissingColumn) {
		t.Errorf("absent column error = %v, want MISSING_COLUMN", err)
	}

	bare, err := table.New("en_pauling")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := ElectronegativityScale(bare, "en_pauling"); !errors.Is(err, errors.ErrCodeMissingColumn) {
		t.Errorf("missing symbol error = %v, want MISSING_COLUMN", err)
	}
}
