// Package model はモデルが満たすべき最小限のインターフェースを定義する。
package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Regressor は学習と予測の二つの操作だけを持つ回帰モデル。
// modelutil.TrainAndEvaluate はこの能力だけを前提にする。
type Regressor interface {
	Fitter
	Predictor
}
