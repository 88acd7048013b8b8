// Package linear は正規方程式による線形回帰（リッジ正則化付き）を提供する。
package linear

import (
	"github.com/YuminosukeSato/airbnb-price/core/model"
	"github.com/YuminosukeSato/airbnb-price/core/parallel"
	"github.com/YuminosukeSato/airbnb-price/metrics"
	"github.com/YuminosukeSato/airbnb-price/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// LinearRegression は線形回帰モデル
type LinearRegression struct {
	model.BaseEstimator
	Weights   *mat.VecDense // 重み（係数）
	Intercept float64       // 切片
	NFeatures int           // 特徴量の数

	fitIntercept bool
	alpha        float64
}

var _ model.Regressor = (*LinearRegression)(nil)

// NewLinearRegression は新しい線形回帰モデルを作成する
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{fitIntercept: true}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Alpha は設定された正則化の強さを返す
func (lr *LinearRegression) Alpha() float64 {
	return lr.alpha
}

// Fit はモデルを訓練データで学習させる
// 正規方程式 w = (X^T X + αI)^(-1) X^T y を使用（切片には正則化をかけない）
func (lr *LinearRegression) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("LinearRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}
	if lr.alpha < 0 {
		return errors.NewValidationError("alpha", "must be non-negative", lr.alpha)
	}

	lr.Reset()
	lr.NFeatures = c

	// 切片項のために先頭に 1 の列を追加する
	offset := 0
	if lr.fitIntercept {
		offset = 1
	}
	design := mat.NewDense(r, c+offset, nil)
	parallel.ParallelizeWithThreshold(r, parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			if offset == 1 {
				design.Set(i, 0, 1.0)
			}
			for j := 0; j < c; j++ {
				design.Set(i, j+offset, X.At(i, j))
			}
		}
	})

	var XTX mat.Dense
	XTX.Mul(design.T(), design)

	// リッジ項（切片の対角成分は除く）
	if lr.alpha > 0 {
		for j := offset; j < c+offset; j++ {
			XTX.Set(j, j, XTX.At(j, j)+lr.alpha)
		}
	}

	var XTXInv mat.Dense
	if err := XTXInv.Inverse(&XTX); err != nil {
		return errors.NewModelError("LinearRegression.Fit", "singular matrix", errors.ErrSingularMatrix)
	}

	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	var XTy mat.VecDense
	XTy.MulVec(design.T(), yVec)

	weights := mat.NewVecDense(c+offset, nil)
	weights.MulVec(&XTXInv, &XTy)

	// 切片と重みを分離
	lr.Intercept = 0
	if offset == 1 {
		lr.Intercept = weights.AtVec(0)
	}
	lr.Weights = mat.NewVecDense(c, nil)
	for j := 0; j < c; j++ {
		lr.Weights.SetVec(j, weights.AtVec(j+offset))
	}

	lr.SetFitted()
	return nil
}

// Predict は入力データに対する予測を行う
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := lr.CheckFitted("LinearRegression", "Predict"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if c != lr.NFeatures {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.NFeatures, c, 1)
	}

	// y = X * weights + intercept
	predictions := mat.NewVecDense(r, nil)
	parallel.ParallelizeWithThreshold(r, parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			pred := lr.Intercept
			for j := 0; j < c; j++ {
				pred += X.At(i, j) * lr.Weights.AtVec(j)
			}
			predictions.SetVec(i, pred)
		}
	})

	return predictions, nil
}

// GetWeights は学習された重み（係数）を返す
func (lr *LinearRegression) GetWeights() []float64 {
	if lr.Weights == nil {
		return nil
	}
	weights := make([]float64, lr.Weights.Len())
	for i := range weights {
		weights[i] = lr.Weights.AtVec(i)
	}
	return weights
}

// GetIntercept は学習された切片を返す
func (lr *LinearRegression) GetIntercept() float64 {
	if !lr.IsFitted() {
		return 0
	}
	return lr.Intercept
}

// Score はモデルの決定係数（R²）を計算する
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	if err := lr.CheckFitted("LinearRegression", "Score"); err != nil {
		return 0, err
	}

	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	yTrue, err := metrics.ColumnVector(y)
	if err != nil {
		return 0, err
	}
	pred, err := metrics.ColumnVector(yPred)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(yTrue, pred)
}
