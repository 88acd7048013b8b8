package model

import "github.com/YuminosukeSato/airbnb-price/pkg/errors"

// BaseEstimator を埋め込むと Fit 済みかどうかの管理が手に入る。
// ゼロ値は未学習。
type BaseEstimator struct {
	fitted bool
}

func (e *BaseEstimator) IsFitted() bool { return e.fitted }

// SetFitted は Fit の最後、パラメータがそろってから呼ぶ
func (e *BaseEstimator) SetFitted() { e.fitted = true }

// Reset は再学習の前に呼ぶ。途中で失敗したら未学習のまま残る。
func (e *BaseEstimator) Reset() { e.fitted = false }

// CheckFitted は未学習なら estimator.method を名指しした NotFittedError を返す
func (e *BaseEstimator) CheckFitted(estimator, method string) error {
	if e.fitted {
		return nil
	}
	return errors.NewNotFittedError(estimator, method)
}
