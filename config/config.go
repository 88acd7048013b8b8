// Package config loads airprice settings.
//
// Precedence (highest to lowest): flags > AIRPRICE_* env vars > YAML file >
// defaults.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/YuminosukeSato/airbnb-price/dataset"
	"github.com/YuminosukeSato/airbnb-price/pkg/errors"
	"github.com/YuminosukeSato/airbnb-price/pkg/log"
)

const (
	// DefaultFile is read from the working directory when no file is given.
	DefaultFile = "airprice.yaml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "AIRPRICE_"
)

// Config is the full airprice configuration.
type Config struct {
	DataDir   string      `koanf:"data_dir"`
	LogLevel  string      `koanf:"log_level"`
	LogFormat string      `koanf:"log_format"`
	Jobs      int         `koanf:"jobs"`
	Clean     CleanConfig `koanf:"clean"`
	Train     TrainConfig `koanf:"train"`

	// File is the config file that was read, empty if none.
	File string `koanf:"-"`
}

// CleanConfig mirrors dataset.CleanOptions.
type CleanConfig struct {
	MissingThreshold  float64  `koanf:"missing_threshold"`
	PriceColumn       string   `koanf:"price_column"`
	MaxPrice          float64  `koanf:"max_price"`
	IrrelevantColumns []string `koanf:"irrelevant_columns"`
}

// TrainConfig holds the settings of the train command.
type TrainConfig struct {
	Target   string  `koanf:"target"`
	TestSize float64 `koanf:"test_size"`
	Seed     uint64  `koanf:"seed"`
	Alpha    float64 `koanf:"alpha"`
	Scale    bool    `koanf:"scale"`
}

// Options converts to the dataset cleaning options.
func (c CleanConfig) Options() dataset.CleanOptions {
	return dataset.CleanOptions{
		MissingThreshold:  c.MissingThreshold,
		PriceColumn:       c.PriceColumn,
		MaxPrice:          c.MaxPrice,
		IrrelevantColumns: append([]string(nil), c.IrrelevantColumns...),
	}
}

func defaults() map[string]interface{} {
	clean := dataset.DefaultCleanOptions()
	return map[string]interface{}{
		"data_dir":                 "data",
		"log_level":                "info",
		"log_format":               "console",
		"jobs":                     4,
		"clean.missing_threshold":  clean.MissingThreshold,
		"clean.price_column":       clean.PriceColumn,
		"clean.max_price":          clean.MaxPrice,
		"clean.irrelevant_columns": clean.IrrelevantColumns,
		"train.target":             "price",
		"train.test_size":          0.2,
		"train.seed":               42,
		"train.alpha":              0.0,
		"train.scale":              false,
	}
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"data-dir":   "data_dir",
	"log-level":  "log_level",
	"log-format": "log_format",
	"jobs":       "jobs",
	"max-price":  "clean.max_price",
	"target":     "train.target",
	"test-size":  "train.test_size",
	"seed":       "train.seed",
	"alpha":      "train.alpha",
	"scale":      "train.scale",
}

// Load builds the configuration. path may be empty, in which case
// DefaultFile is used when it exists. flags may be nil; only flags the user
// changed override other sources.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "load defaults")
	}

	used := path
	if used == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			used = DefaultFile
		}
	}
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", used)
		}
	}

	// AIRPRICE_CLEAN_MAX_PRICE -> clean.max_price
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, "load env vars")
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, errors.Wrap(err, "load flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	cfg.File = used
	return &cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range []string{"clean_", "train_"} {
		if strings.HasPrefix(key, section) {
			return strings.TrimSuffix(section, "_") + "." + strings.TrimPrefix(key, section)
		}
	}
	return key
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.NewValidationError("data_dir", "is required", c.DataDir)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return errors.NewValidationError("log_format", "must be console or json", c.LogFormat)
	}
	if c.Jobs < 1 {
		return errors.NewValidationError("jobs", "must be at least 1", c.Jobs)
	}
	if err := c.Clean.Options().Validate(); err != nil {
		return err
	}
	if c.Train.Target == "" {
		return errors.NewValidationError("train.target", "is required", c.Train.Target)
	}
	if c.Train.TestSize <= 0 || c.Train.TestSize >= 1 {
		return errors.NewValidationError("train.test_size", "must be within (0, 1)", c.Train.TestSize)
	}
	if c.Train.Alpha < 0 {
		return errors.NewValidationError("train.alpha", "must be non-negative", c.Train.Alpha)
	}
	return nil
}
