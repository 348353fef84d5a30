package pipeline

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/elemvis/elemvis/pkg/errors"
	"github.com/elemvis/elemvis/pkg/httputil"
	"github.com/elemvis/elemvis/pkg/observability"
	"github.com/elemvis/elemvis/pkg/table"
)

// LoadBytes materializes the raw dataset bytes: local sources are read
// from disk, remote sources are fetched with retry.
func LoadBytes(ctx context.Context, opts Options) ([]byte, error) {
	if opts.IsRemote() {
		return httputil.FetchWithRetry(ctx, nil, opts.Source)
	}

	data, err := os.ReadFile(opts.Source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", opts.Source)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read %s", opts.Source)
	}
	return data, nil
}

// ParseBytes parses dataset bytes into a table according to the source
// format.
func ParseBytes(data []byte, opts Options) (*table.Table, error) {
	if opts.SourceFormat() == "xlsx" {
		return table.ReadXLSX(bytes.NewReader(data), opts.Sheet)
	}
	return table.ReadCSV(bytes.NewReader(data))
}

// Load reads or fetches the dataset and parses it into a table, emitting
// load events to the observability hooks.
func Load(ctx context.Context, opts Options) (*table.Table, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}

	observability.Pipeline().OnLoadStart(ctx, opts.Source)
	start := time.Now()

	data, err := LoadBytes(ctx, opts)
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, opts.Source, 0, time.Since(start), err)
		return nil, err
	}

	t, err := ParseBytes(data, opts)
	rows := 0
	if t != nil {
		rows = t.Len()
	}
	observability.Pipeline().OnLoadComplete(ctx, opts.Source, rows, time.Since(start), err)
	return t, err
}
