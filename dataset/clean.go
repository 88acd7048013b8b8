package dataset

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/YuminosukeSato/airbnb-price/pkg/errors"
	"github.com/YuminosukeSato/airbnb-price/pkg/log"
)

// IrrelevantColumns are free text, URLs and scrape metadata with no
// predictive value. They are dropped when present.
var IrrelevantColumns = []string{
	"listing_url", "scrape_id", "last_scraped", "source", "name",
	"description", "neighborhood_overview", "picture_url", "host_url",
	"host_name", "host_about", "host_thumbnail_url", "host_picture_url",
}

// CleanOptions configures the cleaning pipeline.
type CleanOptions struct {
	// MissingThreshold drops a column when its missing count is strictly
	// greater than MissingThreshold times the row count.
	MissingThreshold float64
	// PriceColumn is normalized to Float and used by the outlier filter.
	PriceColumn string
	// MaxPrice is the inclusive upper bound kept by the outlier filter.
	MaxPrice float64
	// IrrelevantColumns are dropped if present.
	IrrelevantColumns []string
}

// DefaultCleanOptions returns the settings used for the Airbnb listings dumps.
func DefaultCleanOptions() CleanOptions {
	return CleanOptions{
		MissingThreshold:  0.5,
		PriceColumn:       "price",
		MaxPrice:          1000,
		IrrelevantColumns: append([]string(nil), IrrelevantColumns...),
	}
}

// Validate checks the option ranges.
func (o CleanOptions) Validate() error {
	if o.MissingThreshold < 0 || o.MissingThreshold > 1 {
		return errors.NewValidationError("missing_threshold", "must be within [0, 1]", o.MissingThreshold)
	}
	if o.PriceColumn == "" {
		return errors.NewValidationError("price_column", "must not be empty", o.PriceColumn)
	}
	if o.MaxPrice <= 0 {
		return errors.NewValidationError("max_price", "must be positive", o.MaxPrice)
	}
	return nil
}

// Clean runs the pipeline: sparse columns, price normalization, irrelevant
// columns, price ceiling. The steps always run in this order.
func Clean(df dataframe.DataFrame, opts CleanOptions) (dataframe.DataFrame, error) {
	return clean(df, opts, log.NewNopLogger())
}

func clean(df dataframe.DataFrame, opts CleanOptions, logger log.Logger) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.Wrap(df.Err, "clean")
	}
	if err := opts.Validate(); err != nil {
		return dataframe.DataFrame{}, err
	}
	logger = logger.With(log.OperationKey, log.OperationClean)

	df, dropped, err := DropSparseColumns(df, opts.MissingThreshold)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	logger.Debug("Dropped sparse columns", log.DroppedKey, dropped)

	df, invalid := NormalizePrice(df, opts.PriceColumn)
	if invalid > 0 {
		logger.Warn("Unparsable prices set to missing", log.ColumnKey, opts.PriceColumn, log.DroppedKey, invalid)
	}

	df, dropped, err = DropColumns(df, opts.IrrelevantColumns)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	logger.Debug("Dropped irrelevant columns", log.DroppedKey, dropped)

	before := df.Nrow()
	df, err = FilterMaxPrice(df, opts.PriceColumn, opts.MaxPrice)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	logger.Debug("Filtered price outliers", log.ColumnKey, opts.PriceColumn, log.DroppedKey, before-df.Nrow())

	return df, nil
}

// DropSparseColumns drops every column whose missing count exceeds
// threshold times the row count of df. It returns the dropped names.
func DropSparseColumns(df dataframe.DataFrame, threshold float64) (dataframe.DataFrame, []string, error) {
	limit := threshold * float64(df.Nrow())

	var sparse []string
	for _, name := range df.Names() {
		s := df.Col(name)
		missing := 0
		for i := 0; i < s.Len(); i++ {
			if isMissing(s.Elem(i)) {
				missing++
			}
		}
		if float64(missing) > limit {
			sparse = append(sparse, name)
		}
	}

	out, err := drop(df, sparse)
	return out, sparse, err
}

// DropColumns drops the named columns that exist and ignores the rest.
// It returns the names actually dropped.
func DropColumns(df dataframe.DataFrame, columns []string) (dataframe.DataFrame, []string, error) {
	var present []string
	for _, name := range columns {
		if hasColumn(df, name) {
			present = append(present, name)
		}
	}
	out, err := drop(df, present)
	return out, present, err
}

// FilterMaxPrice keeps rows whose price is <= ceiling. Rows with a missing
// price are removed. A table without the column is an error.
func FilterMaxPrice(df dataframe.DataFrame, column string, ceiling float64) (dataframe.DataFrame, error) {
	if !hasColumn(df, column) {
		return dataframe.DataFrame{}, errors.NewColumnError("FilterMaxPrice", column)
	}

	s := df.Col(column)
	keep := make([]int, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		el := s.Elem(i)
		if isMissing(el) {
			continue
		}
		if el.Float() <= ceiling {
			keep = append(keep, i)
		}
	}
	if len(keep) == s.Len() {
		return df, nil
	}
	if len(keep) == 0 {
		return emptyRows(df), nil
	}

	out := df.Subset(keep)
	if out.Err != nil {
		return dataframe.DataFrame{}, errors.Wrap(out.Err, "filter price")
	}
	return out, nil
}

// emptyRows keeps the column names and types of df with zero rows.
func emptyRows(df dataframe.DataFrame) dataframe.DataFrame {
	cols := make([]series.Series, 0, df.Ncol())
	for _, name := range df.Names() {
		cols = append(cols, series.New([]string{}, df.Col(name).Type(), name))
	}
	return dataframe.New(cols...)
}

func drop(df dataframe.DataFrame, columns []string) (dataframe.DataFrame, error) {
	if len(columns) == 0 {
		return df, nil
	}
	out := df.Drop(columns)
	if out.Err != nil {
		return dataframe.DataFrame{}, errors.Wrap(out.Err, "drop columns")
	}
	return out, nil
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}
