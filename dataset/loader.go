// Package dataset loads per-city Airbnb listings, cleans them and caches the
// cleaned table next to the raw dump.
//
// Layout under the data directory:
//
//	<city>/raw/<city>_listings.csv.gz
//	<city>/processed/<city>_cleaned.csv
//
// Once the processed file exists it is authoritative: later loads return it
// as-is until it is deleted.
package dataset

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/YuminosukeSato/airbnb-price/pkg/errors"
	"github.com/YuminosukeSato/airbnb-price/pkg/log"
)

// Paths are the raw input and processed cache locations for one city.
type Paths struct {
	Raw       string
	Processed string
}

// Source tells where a loaded table came from.
type Source string

const (
	SourceCache   Source = log.SourceCache
	SourceRaw     Source = log.SourceRaw
	SourceMissing Source = "missing"
)

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger. The default is log.GetLogger().
func WithLogger(l log.Logger) Option {
	return func(ld *Loader) {
		ld.logger = l
	}
}

// WithCleanOptions replaces DefaultCleanOptions.
func WithCleanOptions(opts CleanOptions) Option {
	return func(ld *Loader) {
		ld.clean = opts
	}
}

// Loader resolves, cleans and caches city datasets under one data directory.
type Loader struct {
	dataDir string
	clean   CleanOptions
	logger  log.Logger
}

// NewLoader returns a Loader rooted at dataDir.
func NewLoader(dataDir string, opts ...Option) *Loader {
	ld := &Loader{
		dataDir: dataDir,
		clean:   DefaultCleanOptions(),
	}
	for _, opt := range opts {
		opt(ld)
	}
	if ld.logger == nil {
		ld.logger = log.GetLogger()
	}
	ld.logger = ld.logger.With(log.ComponentKey, "dataset")
	return ld
}

// DataDir returns the root directory.
func (ld *Loader) DataDir() string {
	return ld.dataDir
}

// Paths resolves the file locations for city. The city is not validated.
func (ld *Loader) Paths(city string) Paths {
	return Paths{
		Raw:       filepath.Join(ld.dataDir, city, "raw", city+"_listings.csv.gz"),
		Processed: filepath.Join(ld.dataDir, city, "processed", city+"_cleaned.csv"),
	}
}

// LoadAndClean returns the cleaned listings for city.
//
// The processed cache is returned without cleaning when it exists. Otherwise
// the raw dump is read, cleaned and written to the cache. When the raw dump
// does not exist LoadAndClean logs it and returns nil, nil.
func (ld *Loader) LoadAndClean(city string) (*dataframe.DataFrame, error) {
	df, _, err := ld.Load(city)
	return df, err
}

// Load is LoadAndClean that also reports where the table came from.
func (ld *Loader) Load(city string) (*dataframe.DataFrame, Source, error) {
	paths := ld.Paths(city)
	logger := ld.logger.With(log.CityKey, city)

	if _, err := os.Stat(paths.Processed); err == nil {
		logger.Info("Loading cleaned data from cache", log.PathKey, paths.Processed)
		df, err := ReadCSVFile(paths.Processed)
		if err != nil {
			return nil, SourceCache, err
		}
		return &df, SourceCache, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, SourceCache, errors.Wrapf(err, "stat %s", paths.Processed)
	}

	logger.Info("Loading raw data", log.PathKey, paths.Raw)
	start := time.Now()
	raw, err := ReadGzipCSVFile(paths.Raw)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("Raw data file not found", log.PathKey, paths.Raw)
			return nil, SourceMissing, nil
		}
		return nil, SourceRaw, err
	}
	logger.Debug("Read raw listings",
		log.SamplesKey, raw.Nrow(),
		log.FeaturesKey, raw.Ncol(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	cleaned, err := clean(raw, ld.clean, logger)
	if err != nil {
		return nil, SourceRaw, errors.Wrapf(err, "clean %s", city)
	}

	if err := WriteCSVFile(paths.Processed, cleaned); err != nil {
		return nil, SourceRaw, err
	}
	logger.Info("Saved cleaned data",
		log.PathKey, paths.Processed,
		log.SamplesKey, cleaned.Nrow(),
		log.FeaturesKey, cleaned.Ncol(),
	)

	return &cleaned, SourceRaw, nil
}
