// Package colormap converts a numeric table column into per-row hex colors.
//
// A named scale is a sequence of color stops. Values are min-max normalized
// over the column's defined cells and interpolated between the stops in Lab
// space, which keeps perceived lightness transitions smooth. Rows whose cell
// is missing or non-numeric receive the caller-supplied fallback color
// verbatim.
package colormap

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/elemvis/elemvis/pkg/errors"
	"github.com/elemvis/elemvis/pkg/table"
)

// DefaultScale is the scale used when the caller does not pick one.
const DefaultScale = "RdBu_r"

// Scale is an ordered sequence of color stops spanning [0, 1].
type Scale struct {
	Name  string
	stops []colorful.Color
}

// Scale stop definitions, matplotlib-compatible.
var scaleStops = map[string][]string{
	"RdBu": {
		"#67001f", "#b2182b", "#d6604d", "#f4a582", "#fddbc7", "#f7f7f7",
		"#d1e5f0", "#92c5de", "#4393c3", "#2166ac", "#053061",
	},
	"Viridis": {
		"#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89",
		"#35b779", "#6ece58", "#b5de2b", "#fde725",
	},
	"Plasma": {
		"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786", "#d8576b",
		"#ed7953", "#fb9f3a", "#fdca26", "#f0f921",
	},
	"Inferno": {
		"#000004", "#1b0c41", "#4a0c6b", "#781c6d", "#a52c60", "#cf4446",
		"#ed6925", "#fb9b06", "#f7d13d", "#fcffa4",
	},
	"Magma": {
		"#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f", "#cd4071",
		"#f1605d", "#fd9668", "#feca8d", "#fcfdbf",
	},
	"Blues": {
		"#f7fbff", "#deebf7", "#c6dbef", "#9ecae1", "#6baed6", "#4292c6",
		"#2171b5", "#08519c", "#08306b",
	},
	"Greens": {
		"#f7fcf5", "#e5f5e0", "#c7e9c0", "#a1d99b", "#74c476", "#41ab5d",
		"#238b45", "#006d2c", "#00441b",
	},
	"Greys": {
		"#ffffff", "#000000",
	},
}

// Lookup resolves a scale by name. Appending "_r" to any scale name yields
// the reversed scale (e.g. "RdBu_r").
func Lookup(name string) (Scale, error) {
	base := name
	reversed := false
	if len(name) > 2 && name[len(name)-2:] == "_r" {
		base = name[:len(name)-2]
		reversed = true
	}

	hexes, ok := scaleStops[base]
	if !ok {
		return Scale{}, errors.New(errors.ErrCodeInvalidScale, "unknown color scale %q", name)
	}

	stops := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return Scale{}, errors.Wrap(errors.ErrCodeInternal, err, "scale %q stop %d", base, i)
		}
		if reversed {
			stops[len(hexes)-1-i] = c
		} else {
			stops[i] = c
		}
	}
	return Scale{Name: name, stops: stops}, nil
}

// Names returns the base scale names. Each also has a reversed "_r" variant.
func Names() []string {
	names := make([]string, 0, len(scaleStops))
	for name := range scaleStops {
		names = append(names, name)
	}
	return names
}

// At returns the scale color at position t in [0, 1], clamping out-of-range
// positions to the ends.
func (s Scale) At(t float64) string {
	switch {
	case t <= 0:
		return s.stops[0].Hex()
	case t >= 1:
		return s.stops[len(s.stops)-1].Hex()
	}
	pos := t * float64(len(s.stops)-1)
	i := int(pos)
	frac := pos - float64(i)
	return s.stops[i].BlendLab(s.stops[i+1], frac).Clamped().Hex()
}

// Column maps the attribute column of tbl onto the named scale and returns
// one hex color per row, aligned with row order. Rows with a missing or
// non-numeric cell receive the missing fallback color. If every defined
// value is identical, all defined rows get the scale midpoint.
func Column(tbl *table.Table, attr, scale, missing string) ([]string, error) {
	s, err := Lookup(scale)
	if err != nil {
		return nil, err
	}

	cells, err := tbl.Column(attr)
	if err != nil {
		return nil, err
	}

	lo, hi, defined := minMax(cells)
	colors := make([]string, len(cells))
	for i, v := range cells {
		f, ok := v.(float64)
		if !ok {
			colors[i] = missing
			continue
		}
		if !defined || hi == lo {
			colors[i] = s.At(0.5)
			continue
		}
		colors[i] = s.At((f - lo) / (hi - lo))
	}
	return colors, nil
}

func minMax(cells []any) (lo, hi float64, defined bool) {
	for _, v := range cells {
		f, ok := v.(float64)
		if !ok {
			continue
		}
		if !defined || f < lo {
			lo = f
		}
		if !defined || f > hi {
			hi = f
		}
		defined = true
	}
	return lo, hi, defined
}
