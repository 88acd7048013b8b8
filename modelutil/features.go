// Package modelutil はモデル学習の前後で使う補助関数を提供する。
// 特徴量の準備、評価指標の計算、学習と評価をまとめたラッパーを含む。
// モデル自体は Fit/Predict を持つ任意の model.Regressor として扱う。
package modelutil

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/airbnb-price/pkg/errors"
	"github.com/YuminosukeSato/airbnb-price/pkg/log"
	"github.com/YuminosukeSato/airbnb-price/preprocessing"
)

// Features は特徴量行列とその列名
type Features struct {
	X       *mat.Dense
	Columns []string

	// Encoder はテストデータを同じ列構成に変換するときに使う
	Encoder *preprocessing.OneHotEncoder
}

// PrepareFeatures はテーブルを特徴量行列と目的変数ベクトルに分ける。
//
// 文字列列は drop-first の one-hot 列に展開され、数値列の後ろに並ぶ。
// 元のテーブルは変更しない。
func PrepareFeatures(df dataframe.DataFrame, target string, opts ...preprocessing.OneHotOption) (*Features, *mat.VecDense, error) {
	if df.Err != nil {
		return nil, nil, errors.Wrap(df.Err, "PrepareFeatures")
	}
	if !hasColumn(df, target) {
		return nil, nil, errors.NewColumnError("PrepareFeatures", target)
	}

	work := df.Copy()

	targetCol := work.Col(target)
	if targetCol.Type() == series.String {
		return nil, nil, errors.NewValueError("PrepareFeatures", "target column "+target+" is not numeric")
	}
	if targetCol.Len() == 0 {
		return nil, nil, errors.NewModelError("PrepareFeatures", "no rows", errors.ErrEmptyData)
	}
	y := mat.NewVecDense(targetCol.Len(), preprocessing.ColumnFloats(targetCol))

	if work.Ncol() == 1 {
		return nil, nil, errors.NewModelError("PrepareFeatures", "no feature columns", errors.ErrEmptyData)
	}
	work = work.Drop(target)
	if work.Err != nil {
		return nil, nil, errors.Wrap(work.Err, "PrepareFeatures")
	}

	enc := preprocessing.NewOneHotEncoder(opts...)
	encoded, err := enc.FitTransform(work)
	if err != nil {
		return nil, nil, err
	}
	X, err := preprocessing.ToDense(encoded)
	if err != nil {
		return nil, nil, err
	}

	r, c := X.Dims()
	log.GetLogger().Info("Prepared feature matrix",
		log.ComponentKey, "modelutil",
		log.SamplesKey, r,
		log.FeaturesKey, c,
	)

	return &Features{X: X, Columns: encoded.Names(), Encoder: enc}, y, nil
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}
