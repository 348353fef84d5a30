// Package cli implements the elemvis command-line interface.
//
// This package provides commands for rendering periodic-table charts,
// plotting electronegativity scales, fetching element datasets, serving
// charts over HTTP, and managing the local cache. The CLI is built with
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Generate a periodic-table chart from an element dataset
//   - scale: Plot an electronegativity scale as a scatter chart
//   - fetch: Download a dataset and store it locally
//   - browse: Explore a dataset interactively in the terminal
//   - serve: Serve charts over HTTP
//   - cache: Manage the local cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context for structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/elemvis/elemvis/pkg/buildinfo"
	"github.com/elemvis/elemvis/pkg/cache"
	"github.com/elemvis/elemvis/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "elemvis"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "elemvis",
		Short:        "Elemvis renders periodic-table charts from element datasets",
		Long:         `Elemvis is a CLI tool for turning tabular element data into periodic-table charts and electronegativity scale plots, exported as SVG, PNG, HTML, or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.scaleCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using the XDG convention
// (~/.cache/elemvis/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice. An
// unset flag yields nil so the config file's formats can still apply.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
