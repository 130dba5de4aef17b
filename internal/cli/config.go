package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/collagely/collagely/pkg/pipeline"
)

// configFile is the name of the user config file inside the config directory.
const configFile = "config.toml"

// Config holds user defaults loaded from ~/.config/collagely/config.toml.
// Every field is optional; unset fields fall back to built-in defaults.
type Config struct {
	Page         string   `toml:"page"`
	DPI          int      `toml:"dpi"`
	Gap          *int     `toml:"gap"` // pointer so an explicit 0 survives
	Mode         string   `toml:"mode"`
	Fit          string   `toml:"fit"`
	Background   string   `toml:"background"`
	CornerRadius float64  `toml:"corner_radius"`
	Formats      []string `toml:"formats"`
	PhotoRoot    string   `toml:"photo_root"`
	RedisURL     string   `toml:"redis_url"`
}

// configPath returns the path of the user config file.
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// loadConfig reads the user config file. A missing file is not an error
// and yields a zero Config.
func loadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// apply copies config values into opts for every flag the user did not set
// on the command line. Flags always win over the config file.
func (cfg Config) apply(opts *pipeline.Options, cmd *cobra.Command) {
	set := cmd.Flags().Changed

	if cfg.Page != "" && !set("page") {
		opts.Page = cfg.Page
	}
	if cfg.DPI > 0 && !set("dpi") {
		opts.DPI = cfg.DPI
	}
	if cfg.Gap != nil && !set("gap") {
		opts.Gap = *cfg.Gap
		if *cfg.Gap == 0 {
			opts.SetZeroGap()
		}
	}
	if cfg.Mode != "" && !set("mode") {
		opts.Mode = cfg.Mode
	}
	if cfg.Fit != "" && !set("fit") {
		opts.Fit = cfg.Fit
	}
	if cfg.Background != "" && !set("background") {
		opts.Background = cfg.Background
	}
	if cfg.CornerRadius > 0 && !set("corner-radius") {
		opts.CornerRadius = cfg.CornerRadius
	}
	if len(cfg.Formats) > 0 && !set("formats") {
		opts.Formats = cfg.Formats
	}
	if cfg.PhotoRoot != "" && !set("photo-root") {
		opts.PhotoRoot = cfg.PhotoRoot
	}
}
