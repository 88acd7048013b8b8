package preprocessing

import (
	"fmt"
	"math"
	"sort"

	"github.com/YuminosukeSato/airbnb-price/core/model"
	"github.com/YuminosukeSato/airbnb-price/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Strategy は欠損値を埋める統計量の種類
type Strategy string

const (
	// StrategyMean は列平均で埋める
	StrategyMean Strategy = "mean"
	// StrategyMedian は列の中央値で埋める
	StrategyMedian Strategy = "median"
)

// SimpleImputer は NaN を列ごとの統計量で置き換える
type SimpleImputer struct {
	model.BaseEstimator

	Strategy Strategy

	// Statistics は各列の補完値
	Statistics []float64
}

// NewSimpleImputer は指定した戦略の SimpleImputer を作成する
func NewSimpleImputer(strategy Strategy) *SimpleImputer {
	return &SimpleImputer{Strategy: strategy}
}

// Fit は NaN を除いた値から列ごとの補完値を計算する。
// すべて欠損の列は 0 で埋め、DataConversionWarning を出す。
func (imp *SimpleImputer) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("SimpleImputer.Fit", "empty data", errors.ErrEmptyData)
	}
	if imp.Strategy != StrategyMean && imp.Strategy != StrategyMedian {
		return errors.NewValidationError("strategy", "must be mean or median", imp.Strategy)
	}

	imp.Reset()
	imp.Statistics = make([]float64, c)

	present := make([]float64, 0, r)
	for j := 0; j < c; j++ {
		present = present[:0]
		for i := 0; i < r; i++ {
			if v := X.At(i, j); !math.IsNaN(v) {
				present = append(present, v)
			}
		}
		if len(present) == 0 {
			errors.Warn(errors.NewDataConversionWarning(fmt.Sprintf("column %d", j), "NaN", "float64", "all values missing, filled with 0"))
			continue
		}
		imp.Statistics[j] = statistic(imp.Strategy, present)
	}

	imp.SetFitted()
	return nil
}

// Transform は NaN を学習済みの補完値で置き換えた新しい行列を返す
func (imp *SimpleImputer) Transform(X mat.Matrix) (*mat.Dense, error) {
	if err := imp.CheckFitted("SimpleImputer", "Transform"); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	if c != len(imp.Statistics) {
		return nil, errors.NewDimensionError("SimpleImputer.Transform", len(imp.Statistics), c, 1)
	}

	out := mat.NewDense(r, c, nil)
	out.Apply(func(i, j int, v float64) float64 {
		if math.IsNaN(v) {
			return imp.Statistics[j]
		}
		return v
	}, X)
	return out, nil
}

// FitTransform は学習と変換を一度に行う
func (imp *SimpleImputer) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := imp.Fit(X); err != nil {
		return nil, err
	}
	return imp.Transform(X)
}

func statistic(s Strategy, vals []float64) float64 {
	if s == StrategyMedian {
		sorted := append([]float64(nil), vals...)
		sort.Float64s(sorted)
		n := len(sorted)
		if n%2 == 1 {
			return sorted[n/2]
		}
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}

	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
