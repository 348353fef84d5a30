package ptable

import "github.com/elemvis/elemvis/pkg/colormap"

// ColorByAttribute selects coloring derived from the displayed attribute
// instead of a pre-supplied color column.
const ColorByAttribute = "attribute"

// Defaults for the periodic-table assembler.
const (
	DefaultAttribute    = "atomic_weight"
	DefaultColorBy      = "color"
	DefaultDecimals     = 3
	DefaultHeight       = 800
	DefaultWidth        = 1200
	DefaultMissingColor = "#ffffff"
	DefaultTitle        = "Periodic Table"
)

// Options configure the periodic-table assembler.
type Options struct {
	Attribute    string // attribute column shown in each tile's bottom row
	ColorScale   string // color scale name for attribute coloring
	ColorBy      string // color column name, or ColorByAttribute
	Decimals     int    // decimals shown for numeric attribute values
	Height       int    // figure height in pixels
	Width        int    // figure width in pixels
	MissingColor string // hex color for missing attribute values
	Title        string // figure title
	WideLayout   bool   // 32-column arrangement with inline f-block
}

// DefaultOptions returns the assembler defaults.
func DefaultOptions() Options {
	return Options{
		Attribute:    DefaultAttribute,
		ColorScale:   colormap.DefaultScale,
		ColorBy:      DefaultColorBy,
		Decimals:     DefaultDecimals,
		Height:       DefaultHeight,
		Width:        DefaultWidth,
		MissingColor: DefaultMissingColor,
		Title:        DefaultTitle,
	}
}

// Option mutates assembler options.
type Option func(*Options)

// WithAttribute sets the attribute column to display.
func WithAttribute(name string) Option {
	return func(o *Options) { o.Attribute = name }
}

// WithColorScale sets the color scale used when coloring by attribute.
func WithColorScale(name string) Option {
	return func(o *Options) { o.ColorScale = name }
}

// WithColorBy sets the color column, or ColorByAttribute to derive colors
// from the attribute column.
func WithColorBy(name string) Option {
	return func(o *Options) { o.ColorBy = name }
}

// WithDecimals sets the decimal count for numeric attribute display.
func WithDecimals(n int) Option {
	return func(o *Options) { o.Decimals = n }
}

// WithHeight sets the figure height in pixels.
func WithHeight(px int) Option {
	return func(o *Options) { o.Height = px }
}

// WithWidth sets the figure width in pixels.
func WithWidth(px int) Option {
	return func(o *Options) { o.Width = px }
}

// WithMissingColor sets the hex color used for missing attribute values.
func WithMissingColor(hex string) Option {
	return func(o *Options) { o.MissingColor = hex }
}

// WithTitle sets the figure title.
func WithTitle(title string) Option {
	return func(o *Options) { o.Title = title }
}

// WithWideLayout selects the wide 32-column table arrangement.
func WithWideLayout(wide bool) Option {
	return func(o *Options) { o.WideLayout = wide }
}
