package sink

import (
	"encoding/json"

	"github.com/elemvis/elemvis/pkg/chart"
	"github.com/elemvis/elemvis/pkg/errors"
)

// RenderJSON exports the complete figure spec as a pretty-printed JSON
// document. Field names follow the plotly figure schema, so the output can
// be fed to plotly.js or any compatible tool unchanged.
//
// Output is deterministic for a fixed figure; struct field order is stable.
func RenderJSON(fig *chart.Figure) ([]byte, error) {
	data, err := json.MarshalIndent(fig, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal figure")
	}
	return data, nil
}
