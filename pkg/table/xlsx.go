package table

import (
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/elemvis/elemvis/pkg/errors"
)

// ReadXLSX reads the named sheet of an Excel workbook into a Table.
// If sheet is empty the first sheet is used. The first row is the header.
// Cells are typed the same way as in ReadCSV.
func ReadXLSX(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "open workbook")
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read sheet %q", sheet)
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "sheet %q is empty", sheet)
	}

	t, err := New(rows[0]...)
	if err != nil {
		return nil, err
	}

	width := len(rows[0])
	for _, raw := range rows[1:] {
		// GetRows trims trailing empty cells; pad back to header width.
		row := make([]any, width)
		for i := range row {
			if i < len(raw) {
				row[i] = ParseCell(raw[i])
			}
		}
		if err := t.AppendRow(row...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// ReadXLSXFile reads the named sheet of the workbook at path.
func ReadXLSXFile(path, sheet string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "open %s", path)
	}
	defer f.Close()
	return ReadXLSX(f, sheet)
}
