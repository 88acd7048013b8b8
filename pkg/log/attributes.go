// This file defines the standard attribute keys. Using these keys keeps the
// output of the loader, the helpers and the CLI filterable with the same
// queries. Keys follow a hierarchical "category.name" convention.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of machine learning model.
	// Examples: "LinearRegression", "StandardScaler"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "evaluate", "clean"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "dataset", "modelutil", "cli"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"

	// ColumnKey names a single column being processed.
	ColumnKey = "data.column"

	// DroppedKey lists or counts what a cleaning step removed.
	DroppedKey = "data.dropped"
)

// Dataset location
const (
	// CityKey is the city identifier a dataset belongs to.
	CityKey = "dataset.city"

	// PathKey is the filesystem path being read or written.
	PathKey = "dataset.path"

	// SourceKey tells whether a table came from the processed cache or the raw file.
	// Values: "cache", "raw"
	SourceKey = "dataset.source"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// RMSEKey records root mean squared error for regression.
	RMSEKey = "metrics.rmse"

	// R2ScoreKey records R² coefficient of determination for regression.
	// Range typically [-∞, 1.0], with 1.0 being perfect prediction.
	R2ScoreKey = "metrics.r2_score"
)

// Error and Warning Context
const (
	// ErrorKey carries the error value itself.
	ErrorKey = "error"

	// StacktraceKey contains stack trace information for debugging.
	// Populated from cockroachdb/errors safe details.
	StacktraceKey = "error.stacktrace"

	// WarningKey carries a warning raised through pkg/errors.Warn.
	WarningKey = "warning"
)

// Standard attribute values.
const (
	OperationFit       = "fit"
	OperationPredict   = "predict"
	OperationTransform = "transform"
	OperationEvaluate  = "evaluate"
	OperationClean     = "clean"

	PhaseTraining      = "training"
	PhaseTesting       = "testing"
	PhasePreprocessing = "preprocessing"

	SourceCache = "cache"
	SourceRaw   = "raw"
)
