package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/cwbudde/algo-masskit/ms/envelope"
	"github.com/cwbudde/algo-masskit/tabular"
)

// Config holds all runtime configuration for a masskit invocation.
// Values are populated from .masskit.yaml, MASSKIT_* env vars, and CLI flags.
type Config struct {
	DataDir       string            `mapstructure:"data_dir"`
	CSVSeparator  string            `mapstructure:"csv_separator"`
	ColumnMapper  map[string]string `mapstructure:"column_mapper"`
	IgnoreColumns []string          `mapstructure:"ignore_columns"`
	Tolerance     float64           `mapstructure:"tolerance"`
	TolerancePPM  bool              `mapstructure:"tolerance_ppm"`
	Elements      []string          `mapstructure:"elements"`
	MaxIterations int               `mapstructure:"max_iterations"`
	BinWidth      float64           `mapstructure:"bin_width"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("data_dir", ".")
	viper.SetDefault("csv_separator", ",")
	viper.SetDefault("column_mapper", map[string]string{})
	viper.SetDefault("ignore_columns", []string{})
	viper.SetDefault("tolerance", 1.0)
	viper.SetDefault("tolerance_ppm", true)
	viper.SetDefault("elements", []string{"C", "H", "O", "N", "S"})
	viper.SetDefault("max_iterations", 1000)
	viper.SetDefault("bin_width", envelope.DefaultBinWidth)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// TabularOptions converts the CSV settings into tabular options. Only
// the first rune of the separator is used.
func (c Config) TabularOptions() tabular.Options {
	opts := tabular.Options{
		Mapper: tabular.Mapper(c.ColumnMapper),
		Ignore: c.IgnoreColumns,
	}
	for _, r := range c.CSVSeparator {
		opts.Comma = r
		break
	}
	return opts
}
