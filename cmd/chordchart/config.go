package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/chordchart/chartdraw"
	"github.com/spf13/viper"
)

const envPrefix = "CHORDCHART"

// output formats
const (
	formatSVG = "svg"
	formatPNG = "png"
	formatPDF = "pdf"
)

// config is resolved from (by priority) the command line flags,
// the CHORDCHART_* environment variables and the optional config file.
type config struct {
	Compact  bool   `mapstructure:"compact"`
	Diagram  bool   `mapstructure:"diagram"`
	Format   string `mapstructure:"format"`
	LogLevel string `mapstructure:"log-level"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("format", formatSVG)
	v.SetDefault("log-level", "info")
	return v
}

// loadConfig reads the config file at `path`, if not empty,
// and resolves the settings.
func loadConfig(v *viper.Viper, path string) (config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return config{}, fmt.Errorf("invalid config: %w", err)
	}
	cfg.Format = strings.ToLower(cfg.Format)
	switch cfg.Format {
	case formatSVG, formatPNG, formatPDF:
	default:
		return config{}, fmt.Errorf("unsupported output format %q (expected svg, png or pdf)", cfg.Format)
	}
	return cfg, nil
}

func (cfg config) notation() chartdraw.Notation {
	if cfg.Compact {
		return chartdraw.Compact
	}
	return chartdraw.Regular
}

// outputPath replaces the extension of `input` by the one of `format`.
func outputPath(input, format string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
}
