package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/elemvis/elemvis/pkg/errors"
	"github.com/elemvis/elemvis/pkg/pipeline"
)

// Config holds settings read from the optional TOML configuration file.
// Command-line flags always take precedence over the file.
type Config struct {
	// Dataset is the default dataset source (path or URL).
	Dataset string       `toml:"dataset"`
	Render  RenderConfig `toml:"render"`
	Serve   ServeConfig  `toml:"serve"`
}

// RenderConfig carries defaults for the render and scale commands.
type RenderConfig struct {
	Attribute    string   `toml:"attribute"`
	ColorBy      string   `toml:"color_by"`
	ColorScale   string   `toml:"color_scale"`
	Decimals     *int     `toml:"decimals"`
	MissingColor string   `toml:"missing_color"`
	Wide         bool     `toml:"wide"`
	Width        int      `toml:"width"`
	Height       int      `toml:"height"`
	Formats      []string `toml:"formats"`
	Background   string   `toml:"background"`
}

// ServeConfig carries defaults for the serve command.
type ServeConfig struct {
	Addr     string `toml:"addr"`
	RedisURL string `toml:"redis_url"`
}

// defaultConfigPath returns ~/.config/elemvis/config.toml, honoring
// XDG_CONFIG_HOME.
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the configuration file at path. An empty path selects
// the default location, where a missing file yields a zero config; an
// explicitly named file must exist.
func loadConfig(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
			}
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return cfg, nil
}

// applyConfig fills unset pipeline options from the configuration file.
func applyConfig(opts *pipeline.Options, cfg Config) {
	if opts.Source == "" {
		opts.Source = cfg.Dataset
	}
	if opts.Attribute == "" {
		opts.Attribute = cfg.Render.Attribute
	}
	if opts.ColorBy == "" {
		opts.ColorBy = cfg.Render.ColorBy
	}
	if opts.ColorScale == "" {
		opts.ColorScale = cfg.Render.ColorScale
	}
	if opts.Decimals == nil {
		opts.Decimals = cfg.Render.Decimals
	}
	if opts.MissingColor == "" {
		opts.MissingColor = cfg.Render.MissingColor
	}
	if !opts.Wide {
		opts.Wide = cfg.Render.Wide
	}
	if opts.Width == 0 {
		opts.Width = cfg.Render.Width
	}
	if opts.Height == 0 {
		opts.Height = cfg.Render.Height
	}
	if len(opts.Formats) == 0 {
		opts.Formats = cfg.Render.Formats
	}
	if opts.Background == "" {
		opts.Background = cfg.Render.Background
	}
}
