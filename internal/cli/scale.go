package cli

import (
	"github.com/spf13/cobra"

	"github.com/elemvis/elemvis/pkg/pipeline"
)

// scaleCommand creates the scale command for electronegativity plots.
func (c *CLI) scaleCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		configPath string
		noCache    bool
	)
	opts := pipeline.Options{Kind: pipeline.KindScale}

	cmd := &cobra.Command{
		Use:   "scale [dataset] [scale-id]",
		Short: "Plot an electronegativity scale as a scatter chart",
		Long: `Plot an electronegativity scale as a scatter chart.

The dataset must carry a "symbol" column and a column named after the
scale identifier (e.g. "en_pauling", "en_allred_rochow"). Each element
becomes one labeled point; elements without a value for the scale are
left as gaps.

Examples:

  elemvis scale elements.csv en_pauling
  elemvis scale elements.csv en_allred_rochow -f png -o allred.png`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			opts.Scale = args[1]
			opts.Formats = parseFormats(formatsStr)

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			applyConfig(&opts, cfg)
			opts.Source = args[0] // the argument always wins over config

			return c.runChart(cmd.Context(), &opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, html, json (comma-separated)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file (default ~/.config/elemvis/config.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "refetch remote datasets, bypassing the cache")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "workbook sheet name for XLSX datasets")
	cmd.Flags().Float64Var(&opts.PixelScale, "pixel-scale", 0, "supersampling factor for PNG output (default 2)")
	cmd.Flags().StringVar(&opts.Background, "background", "", "background color for SVG and PNG output")

	return cmd
}
