package table

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/elemvis/elemvis/pkg/errors"
)

func workbookBytes(t *testing.T, sheet string, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("rename sheet: %v", err)
		}
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestReadXLSX(t *testing.T) {
	data := workbookBytes(t, "elements", [][]any{
		{"symbol", "atomic_number", "atomic_weight"},
		{"H", 1, 1.008},
		{"He", 2, 4.0026},
	})

	tbl, err := ReadXLSX(bytes.NewReader(data), "elements")
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}

	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}
	if got, _ := tbl.Row(1).Text("symbol"); got != "He" {
		t.Errorf("symbol = %q, want He", got)
	}
	if got, _ := tbl.Row(0).Float("atomic_weight"); got != 1.008 {
		t.Errorf("atomic_weight = %v, want 1.008", got)
	}
	if !tbl.IsNumeric("atomic_number") {
		t.Error("atomic_number should be numeric")
	}
}

func TestReadXLSXDefaultSheet(t *testing.T) {
	data := workbookBytes(t, "Sheet1", [][]any{
		{"symbol"},
		{"H"},
	})

	tbl, err := ReadXLSX(bytes.NewReader(data), "")
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	if tbl.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tbl.Len())
	}
}

func TestReadXLSXTrailingEmptyCells(t *testing.T) {
	// Trailing empty cells are trimmed by excelize; rows must be padded
	// back to header width with nil values.
	data := workbookBytes(t, "Sheet1", [][]any{
		{"symbol", "en_pauling"},
		{"He"},
	})

	tbl, err := ReadXLSX(bytes.NewReader(data), "")
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	v, err := tbl.Row(0).Value("en_pauling")
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != nil {
		t.Errorf("missing cell = %v, want nil", v)
	}
}

func TestReadXLSXBadData(t *testing.T) {
	_, err := ReadXLSX(bytes.NewReader([]byte("not a workbook")), "")
	if !errors.Is(err, errors.ErrCodeInvalidDataset) {
		t.Errorf("expected %s, got %v", errors.ErrCodeInvalidDataset, err)
	}
}

func TestReadXLSXFileMissing(t *testing.T) {
	_, err := ReadXLSXFile("no-such-file.xlsx", "")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("expected %s, got %v", errors.ErrCodeFileNotFound, err)
	}
}
