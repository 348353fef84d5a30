package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elemvis/elemvis/pkg/pipeline"
)

// fetchCommand creates the fetch command for downloading datasets.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		sheet   string
	)

	cmd := &cobra.Command{
		Use:   "fetch [url]",
		Short: "Download an element dataset and store it locally",
		Long: `Download an element dataset and store it locally.

The dataset is fetched with automatic retry on transient failures and
validated by parsing before anything is written, so a bad download never
replaces a good local file. Fetched bytes land in the cache, making a
following render of the same URL instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]
			if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
				return fmt.Errorf("fetch requires an http(s) URL, got %q", source)
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			opts := pipeline.Options{
				Source:  source,
				Sheet:   sheet,
				Refresh: refresh,
				Logger:  c.Logger,
			}

			ctx := cmd.Context()
			spinner := newSpinnerWithContext(ctx, "Fetching dataset...")
			spinner.Start()

			prog := newProgress(c.Logger)
			t, raw, cached, err := runner.LoadWithCacheInfo(ctx, opts)
			if err != nil {
				spinner.StopWithError("Fetch failed")
				return err
			}
			spinner.Stop()
			prog.done(fmt.Sprintf("Fetched %d elements", t.Len()))

			path := output
			if path == "" {
				path = basePath("", source) + "." + opts.SourceFormat()
			}
			if err := os.WriteFile(path, raw, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			printSuccess("Saved dataset")
			printFile(path)
			printStats(t.Len(), "", cached)
			printNextStep("Render it", fmt.Sprintf("elemvis render %s", path))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default derived from the URL)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and refetch")
	cmd.Flags().StringVar(&sheet, "sheet", "", "workbook sheet name for XLSX datasets")

	return cmd
}
