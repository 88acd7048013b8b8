package preprocessing

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/airbnb-price/core/parallel"
	"github.com/YuminosukeSato/airbnb-price/pkg/errors"
)

// ToDense はすべて数値（Int / Float / Bool）のテーブルを行列に変換する。
// 欠損は NaN、Bool は 1/0 になる。文字列列が残っていればエラー。
func ToDense(df dataframe.DataFrame) (*mat.Dense, error) {
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "ToDense")
	}
	r, c := df.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewModelError("ToDense", "empty table", errors.ErrEmptyData)
	}

	cols := make([][]float64, c)
	for j, name := range df.Names() {
		s := df.Col(name)
		switch s.Type() {
		case series.Float, series.Int:
		case series.Bool:
			errors.Warn(errors.NewDataConversionWarning(name, "bool", "float64", "true/false mapped to 1/0"))
		default:
			return nil, errors.NewValueError("ToDense", "column "+name+" is not numeric; encode it first")
		}
		cols[j] = ColumnFloats(s)
	}

	out := mat.NewDense(r, c, nil)
	parallel.ParallelizeWithThreshold(r, parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < c; j++ {
				out.Set(i, j, cols[j][i])
			}
		}
	})
	return out, nil
}

// ColumnFloats は列を float64 に展開し、欠損を NaN にそろえる。
// 文字列列は数値として解釈できない要素が NaN になる。
func ColumnFloats(s series.Series) []float64 {
	vals := make([]float64, s.Len())
	for i := range vals {
		el := s.Elem(i)
		if isMissing(el) {
			vals[i] = math.NaN()
			continue
		}
		vals[i] = el.Float()
	}
	return vals
}
