// Package table provides the in-memory tabular structure consumed by the
// chart builders.
//
// A Table holds named columns of ordered rows, one row per chemical element.
// Cells are dynamically typed: numeric cells are stored as float64, textual
// cells as string, and missing cells as nil. Columns are addressed by name;
// accessing a column that does not exist is an error with code
// MISSING_COLUMN.
//
// Tables are caller-owned. The chart builders only read them, except for
// derived columns added in place via AddColumn, which is a documented side
// effect. A Table is not safe for concurrent mutation.
package table

import (
	"strconv"

	"github.com/elemvis/elemvis/pkg/errors"
)

// Table is an ordered collection of named columns with aligned rows.
type Table struct {
	names []string
	index map[string]int
	cols  [][]any
}

// New creates an empty table with the given column names.
// Duplicate names are rejected.
func New(names ...string) (*Table, error) {
	t := &Table{
		names: make([]string, 0, len(names)),
		index: make(map[string]int, len(names)),
		cols:  make([][]any, 0, len(names)),
	}
	for _, name := range names {
		if err := errors.ValidateColumnName(name); err != nil {
			return nil, err
		}
		if _, ok := t.index[name]; ok {
			return nil, errors.New(errors.ErrCodeInvalidColumn, "duplicate column %q", name)
		}
		t.index[name] = len(t.names)
		t.names = append(t.names, name)
		t.cols = append(t.cols, nil)
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0])
}

// Columns returns the column names in order.
// The returned slice is a copy.
func (t *Table) Columns() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// AppendRow adds one row of cells in column order.
// The number of values must match the number of columns.
func (t *Table) AppendRow(values ...any) error {
	if len(values) != len(t.names) {
		return errors.New(errors.ErrCodeInvalidInput,
			"row has %d values, table has %d columns", len(values), len(t.names))
	}
	for i, v := range values {
		t.cols[i] = append(t.cols[i], normalize(v))
	}
	return nil
}

// Column returns all cells of the named column in row order.
// The returned slice is shared with the table; callers must not modify it.
func (t *Table) Column(name string) ([]any, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeMissingColumn, "column %q not found", name)
	}
	return t.cols[i], nil
}

// AddColumn adds a derived column, or replaces it if a column with the same
// name already exists. The number of values must match the current row count.
func (t *Table) AddColumn(name string, values []any) error {
	if err := errors.ValidateColumnName(name); err != nil {
		return err
	}
	if len(values) != t.Len() {
		return errors.New(errors.ErrCodeInvalidInput,
			"column %q has %d values, table has %d rows", name, len(values), t.Len())
	}
	col := make([]any, len(values))
	for i, v := range values {
		col[i] = normalize(v)
	}
	if i, ok := t.index[name]; ok {
		t.cols[i] = col
		return nil
	}
	t.index[name] = len(t.names)
	t.names = append(t.names, name)
	t.cols = append(t.cols, col)
	return nil
}

// IsNumeric reports whether every non-missing cell of the named column is a
// float64. Columns with no defined cells count as non-numeric.
func (t *Table) IsNumeric(name string) bool {
	col, err := t.Column(name)
	if err != nil {
		return false
	}
	defined := false
	for _, v := range col {
		if v == nil {
			continue
		}
		if _, ok := v.(float64); !ok {
			return false
		}
		defined = true
	}
	return defined
}

// Row returns a read-only view of row i.
// The view stays valid as long as the table is not mutated.
func (t *Table) Row(i int) Row {
	return Row{t: t, i: i}
}

// Row is a read-only view of a single table row.
type Row struct {
	t *Table
	i int
}

// Index returns the row's position in the table.
func (r Row) Index() int { return r.i }

// Value returns the raw cell at the named column.
// Missing cells yield nil with no error; a missing column is an error.
func (r Row) Value(name string) (any, error) {
	col, err := r.t.Column(name)
	if err != nil {
		return nil, err
	}
	return col[r.i], nil
}

// Float returns the cell at the named column as a float64.
// Missing or non-numeric cells are an INVALID_INPUT error.
func (r Row) Float(name string) (float64, error) {
	v, err := r.Value(name)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidInput,
			"row %d column %q: value %v is not numeric", r.i, name, v)
	}
	return f, nil
}

// Text returns the cell at the named column formatted for display.
// Numeric cells use the shortest representation that round-trips; missing
// cells format as the empty string.
func (r Row) Text(name string) (string, error) {
	v, err := r.Value(name)
	if err != nil {
		return "", err
	}
	return FormatCell(v), nil
}

// FormatCell formats a single cell value for display.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}

// normalize coerces supported cell types to the canonical float64/string/nil
// representation. Integers become float64 so numeric columns stay uniform.
func normalize(v any) any {
	switch x := v.(type) {
	case nil, string, float64:
		return x
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	default:
		return x
	}
}
