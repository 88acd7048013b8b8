package main

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/airbnb-price/dataset"
	"github.com/YuminosukeSato/airbnb-price/linear"
	"github.com/YuminosukeSato/airbnb-price/modelutil"
	"github.com/YuminosukeSato/airbnb-price/pkg/errors"
	"github.com/YuminosukeSato/airbnb-price/pkg/log"
	"github.com/YuminosukeSato/airbnb-price/preprocessing"
)

func newTrainCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train <city>",
		Short: "Train a linear price model on one city and report RMSE and R²",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.SafeExecute("train", func() error {
				return runTrain(cmd, a, args[0])
			})
		},
	}
	cmd.Flags().String("target", "price", "Target column")
	cmd.Flags().Float64("test-size", 0.2, "Fraction of rows held out for evaluation")
	cmd.Flags().Uint64("seed", 42, "Shuffle seed")
	cmd.Flags().Float64("alpha", 0, "Ridge penalty (0 = ordinary least squares)")
	cmd.Flags().Bool("scale", false, "Standardize features before fitting")
	return cmd
}

func runTrain(cmd *cobra.Command, a *app, city string) error {
	cfg := a.cfg
	logger := log.GetLogger().With(log.ComponentKey, "cli", log.CityKey, city)

	var warnings atomic.Int64
	prev := errors.SetWarningHandler(func(error) { warnings.Add(1) })
	defer errors.SetWarningHandler(prev)

	loader := dataset.NewLoader(cfg.DataDir, dataset.WithCleanOptions(cfg.Clean.Options()))
	df, err := loader.LoadAndClean(city)
	if err != nil {
		return err
	}
	if df == nil {
		return errors.Newf("no listings for %q: raw data file not found under %s", city, cfg.DataDir)
	}

	feats, y, err := modelutil.PrepareFeatures(*df, cfg.Train.Target)
	if err != nil {
		return err
	}
	X, y, dropped := dropMissingTarget(feats.X, y)
	if dropped > 0 {
		logger.Warn("Dropped rows with missing target", log.DroppedKey, dropped)
	}
	if X == nil {
		return errors.NewModelError("train", "every target value is missing", errors.ErrEmptyData)
	}

	XTrain, XTest, yTrain, yTest, err := modelutil.TrainTestSplit(X, y, cfg.Train.TestSize, cfg.Train.Seed)
	if err != nil {
		return err
	}

	imp := preprocessing.NewSimpleImputer(preprocessing.StrategyMean)
	if XTrain, err = imp.FitTransform(XTrain); err != nil {
		return err
	}
	if XTest, err = imp.Transform(XTest); err != nil {
		return err
	}

	if cfg.Train.Scale {
		scaler := preprocessing.NewStandardScalerDefault()
		if XTrain, err = scaler.FitTransform(XTrain); err != nil {
			return err
		}
		if XTest, err = scaler.Transform(XTest); err != nil {
			return err
		}
	}

	lr := linear.NewLinearRegression(linear.WithAlpha(cfg.Train.Alpha))
	_, rmse, r2, err := modelutil.TrainAndEvaluate(lr, XTrain, XTest, yTrain, yTest)
	if err != nil {
		return err
	}

	trainRows, _ := XTrain.Dims()
	testRows, _ := XTest.Dims()

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("%s: LinearRegression (alpha=%g)", city, lr.Alpha()))
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Train rows", trainRows},
		{"Test rows", testRows},
		{"Features", len(feats.Columns)},
		{"RMSE", fmt.Sprintf("%.2f", rmse)},
		{"R²", fmt.Sprintf("%.2f", r2)},
		{"Warnings", warnings.Load()},
	})
	t.Render()
	return nil
}

// dropMissingTarget removes rows whose target is NaN. It returns nil when no
// row is left.
func dropMissingTarget(X *mat.Dense, y *mat.VecDense) (*mat.Dense, *mat.VecDense, int) {
	n, c := X.Dims()
	keep := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !math.IsNaN(y.AtVec(i)) {
			keep = append(keep, i)
		}
	}
	if len(keep) == n {
		return X, y, 0
	}
	if len(keep) == 0 {
		return nil, nil, n
	}

	outX := mat.NewDense(len(keep), c, nil)
	outY := mat.NewVecDense(len(keep), nil)
	for i, src := range keep {
		outX.SetRow(i, X.RawRowView(src))
		outY.SetVec(i, y.AtVec(src))
	}
	return outX, outY, n - len(keep)
}
