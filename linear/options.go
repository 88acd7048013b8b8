package linear

// Option は LinearRegression の設定を変更する関数
type Option func(*LinearRegression)

// WithFitIntercept は切片を学習するかどうかを設定する
func WithFitIntercept(fit bool) Option {
	return func(lr *LinearRegression) {
		lr.fitIntercept = fit
	}
}

// WithAlpha はリッジ正則化の強さを設定する。0 なら通常の最小二乗法。
// one-hot 列が多いと X^T X が特異になりやすいので、正の値で安定させる。
func WithAlpha(alpha float64) Option {
	return func(lr *LinearRegression) {
		lr.alpha = alpha
	}
}
