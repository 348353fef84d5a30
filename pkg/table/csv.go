package table

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/elemvis/elemvis/pkg/errors"
)

// ReadCSV parses CSV data into a Table. The first record is the header row
// and supplies the column names. Cells that parse as floats become numeric,
// empty cells become missing, everything else stays text.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read CSV header")
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	t, err := New(headers...)
	if err != nil {
		return nil, err
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read CSV row %d", t.Len()+1)
		}
		row := make([]any, len(record))
		for i, cell := range record {
			row[i] = ParseCell(cell)
		}
		if err := t.AppendRow(row...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// ReadCSVFile reads and parses a CSV file into a Table.
func ReadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "open %s", path)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ParseCell converts a raw text cell to its canonical typed value:
// empty → missing, float-parseable → float64, otherwise text.
func ParseCell(cell string) any {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	return cell
}
