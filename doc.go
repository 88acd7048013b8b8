// Package airbnbprice predicts nightly Airbnb listing prices from the public
// per-city listings dumps.
//
// The work is split across a few packages:
//
//   - dataset: reads <city>/raw/<city>_listings.csv.gz, cleans it (sparse
//     columns, price text, irrelevant columns, price ceiling) and caches the
//     result under <city>/processed/<city>_cleaned.csv
//   - modelutil: turns a cleaned table into a feature matrix, splits it, fits
//     a regressor and reports RMSE and R²
//   - preprocessing: one-hot encoding, table-to-matrix conversion, imputation
//     and standardization
//   - linear: least squares LinearRegression with optional ridge penalty
//   - metrics: regression metrics on gonum vectors
//   - core/model, core/parallel: estimator interfaces and row-parallel helpers
//   - pkg/errors, pkg/log: structured errors and zerolog-backed logging
//   - config: koanf-based settings shared by the airprice command
//
// # Quick Start
//
//	loader := dataset.NewLoader("data")
//	df, err := loader.LoadAndClean("lisbon")
//	if err != nil {
//	    return err
//	}
//	if df == nil {
//	    return nil // no raw dump for this city
//	}
//
//	feats, y, err := modelutil.PrepareFeatures(*df, "price")
//	if err != nil {
//	    return err
//	}
//	XTrain, XTest, yTrain, yTest, err := modelutil.TrainTestSplit(feats.X, y, 0.2, 42)
//	if err != nil {
//	    return err
//	}
//	_, rmse, r2, err := modelutil.TrainAndEvaluate(linear.NewLinearRegression(), XTrain, XTest, yTrain, yTest)
//
// Raw dumps usually contain missing numeric cells; run the matrices through
// preprocessing.SimpleImputer before fitting, as cmd/airprice does.
//
// # Command line
//
//	airprice clean lisbon porto
//	airprice train lisbon --alpha 1 --scale
package airbnbprice
