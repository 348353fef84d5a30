package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elemvis/elemvis/pkg/colormap"
	"github.com/elemvis/elemvis/pkg/pipeline"
	"github.com/elemvis/elemvis/pkg/ptable"
)

// renderCommand creates the render command for periodic-table charts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		configPath string
		noCache    bool
		decimals   int
	)
	opts := pipeline.Options{Kind: pipeline.KindTable}

	cmd := &cobra.Command{
		Use:   "render [dataset]",
		Short: "Render a periodic-table chart from an element dataset",
		Long: fmt.Sprintf(`Render a periodic-table chart from an element dataset.

The dataset is a CSV or XLSX file (local path or URL) with one row per
element. It must carry "x" and "y" grid coordinate columns plus the
"symbol", "atomic_number", and "name" columns shown in each tile.

Each element becomes a colored tile with the chosen attribute displayed
in its bottom row. Colors come from a color column (default %q) or are
derived from the attribute itself with --colorby attribute.

Available color scales: %s.

Remote datasets and rendered artifacts are cached locally; use
--refresh to force a fresh download.`, ptable.DefaultColorBy, strings.Join(colormap.Names(), ", ")),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Source = args[0]
			}
			opts.Formats = parseFormats(formatsStr)
			// Zero is a valid decimal count, so only an explicitly set
			// flag carries over.
			if cmd.Flags().Changed("decimals") {
				opts.Decimals = &decimals
			}

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			applyConfig(&opts, cfg)

			return c.runChart(cmd.Context(), &opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, html, json (comma-separated)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file (default ~/.config/elemvis/config.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "refetch remote datasets, bypassing the cache")

	cmd.Flags().StringVarP(&opts.Attribute, "attribute", "a", "", "attribute column shown in each tile (default atomic_weight)")
	cmd.Flags().StringVar(&opts.ColorBy, "colorby", "", "color column, or 'attribute' to derive colors from the attribute")
	cmd.Flags().StringVar(&opts.ColorScale, "color-scale", "", "color scale for attribute coloring (default RdBu_r)")
	cmd.Flags().IntVar(&decimals, "decimals", 0, "decimals shown for numeric attribute values (default 3)")
	cmd.Flags().StringVar(&opts.MissingColor, "missing-color", "", "hex color for missing attribute values (default #ffffff)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "chart title (default Periodic Table)")
	cmd.Flags().BoolVar(&opts.Wide, "wide", false, "32-column arrangement with inline f-block")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "chart width in pixels (default 1200)")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "chart height in pixels (default 800)")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "workbook sheet name for XLSX datasets")
	cmd.Flags().Float64Var(&opts.PixelScale, "pixel-scale", 0, "supersampling factor for PNG output (default 2)")
	cmd.Flags().StringVar(&opts.Background, "background", "", "background color for SVG and PNG output")

	return cmd
}

// runChart executes the pipeline for the configured chart and writes the
// artifacts.
func (c *CLI) runChart(ctx context.Context, opts *pipeline.Options, output string, noCache bool) error {
	if opts.Source == "" {
		return fmt.Errorf("dataset is required (argument or config file)")
	}

	if len(opts.Formats) == 0 {
		opts.Formats = []string{pipeline.FormatSVG}
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s chart...", opts.Kind))
	spinner.Start()

	result, err := runner.Execute(ctx, *opts)
	if err != nil {
		spinner.StopWithError("Chart rendering failed")
		return err
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     opts.Source,
		output:    output,
		cacheHit:  result.CacheInfo.ExportHit,
		rowCount:  result.Stats.RowCount,
		kind:      opts.Kind,
	})
}
