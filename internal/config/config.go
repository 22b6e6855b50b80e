// Package config loads stitchchart settings from defaults, an optional
// config file, STITCHCHART_* environment variables and command-line flags.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variable names, e.g.
// STITCHCHART_GRID_COLORS.
const EnvPrefix = "STITCHCHART"

type Config struct {
	Grid      GridConfig      `mapstructure:"grid"`
	Chart     ChartConfig     `mapstructure:"chart"`
	Reference ReferenceConfig `mapstructure:"reference"`
	Page      PageConfig      `mapstructure:"page"`
	Output    OutputConfig    `mapstructure:"output"`
	Log       LogConfig       `mapstructure:"log"`
}

type GridConfig struct {
	LongSide   int    `mapstructure:"long_side"`
	Colors     int    `mapstructure:"colors"`
	KeepAspect bool   `mapstructure:"keep_aspect"`
	Quantizer  string `mapstructure:"quantizer"`
	Dither     bool   `mapstructure:"dither"`
}

type ChartConfig struct {
	CellPx   int    `mapstructure:"cell_px"`
	Color    bool   `mapstructure:"color"`
	Symbols  bool   `mapstructure:"symbols"`
	Title    string `mapstructure:"title"`
	Font     string `mapstructure:"font"`
	Overflow string `mapstructure:"overflow"`
}

type ReferenceConfig struct {
	// File is an optional CSV table. Empty uses the built-in swatch.
	File        string `mapstructure:"file"`
	Include     bool   `mapstructure:"include"`
	RegularOnly bool   `mapstructure:"regular_only"`
	Metric      string `mapstructure:"metric"`
}

type PageConfig struct {
	Paper       string  `mapstructure:"paper"`
	Orientation string  `mapstructure:"orientation"`
	DPI         int     `mapstructure:"dpi"`
	MarginIn    float64 `mapstructure:"margin_in"`
	OverlapIn   float64 `mapstructure:"overlap_in"`
	Tiling      string  `mapstructure:"tiling"`
}

type OutputConfig struct {
	Dir          string `mapstructure:"dir"`
	Name         string `mapstructure:"name"`
	Preview      bool   `mapstructure:"preview"`
	PreviewScale int    `mapstructure:"preview_scale"`
	Layers       bool   `mapstructure:"layers"`
}

type LogConfig struct {
	JSON bool `mapstructure:"json"`
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("grid.long_side", 160)
	v.SetDefault("grid.colors", 40)
	v.SetDefault("grid.keep_aspect", true)
	v.SetDefault("grid.quantizer", "median")
	v.SetDefault("grid.dither", false)

	v.SetDefault("chart.cell_px", 18)
	v.SetDefault("chart.color", true)
	v.SetDefault("chart.symbols", true)
	v.SetDefault("chart.title", "")
	v.SetDefault("chart.font", "")
	v.SetDefault("chart.overflow", "fail")

	v.SetDefault("reference.file", "")
	v.SetDefault("reference.include", true)
	v.SetDefault("reference.regular_only", false)
	v.SetDefault("reference.metric", "rgb")

	v.SetDefault("page.paper", "Letter")
	v.SetDefault("page.orientation", "portrait")
	v.SetDefault("page.dpi", 300)
	v.SetDefault("page.margin_in", 0.5)
	v.SetDefault("page.overlap_in", 0.25)
	v.SetDefault("page.tiling", "tile")

	v.SetDefault("output.dir", ".")
	v.SetDefault("output.name", "")
	v.SetDefault("output.preview", false)
	v.SetDefault("output.preview_scale", 6)
	v.SetDefault("output.layers", false)

	v.SetDefault("log.json", false)
}

// New returns a viper instance with defaults and environment binding. When
// path is non-empty that file is read as well.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
	}
	return v, nil
}

// LoadWithViper unmarshals and validates a configured viper instance.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads defaults plus one file, ignoring the environment.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}
	return LoadWithViper(v)
}
