// Package preprocessing はテーブルを数値行列へ変換する前処理を提供する。
//
// OneHotEncoder と ToDense は gota の DataFrame を受け取り、
// SimpleImputer と StandardScaler は gonum の行列を受け取る。
package preprocessing

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/YuminosukeSato/airbnb-price/core/model"
	"github.com/YuminosukeSato/airbnb-price/pkg/errors"
)

// OneHotOption は OneHotEncoder の設定を変更する関数
type OneHotOption func(*OneHotEncoder)

// WithDropFirst は各列の最初のカテゴリのダミー列を落とすかどうかを設定する
func WithDropFirst(drop bool) OneHotOption {
	return func(e *OneHotEncoder) {
		e.dropFirst = drop
	}
}

// WithSortedCategories はカテゴリを出現順ではなく辞書順に並べる。
// pandas.get_dummies と同じ列順・同じ落とし方になる。
func WithSortedCategories() OneHotOption {
	return func(e *OneHotEncoder) {
		e.sorted = true
	}
}

// OneHotEncoder は文字列列をダミー（指示）列に展開する。
// 数値列・論理列はそのまま元の順に残し、ダミー列はその後ろに
// "<列名>_<値>" の名前で追加する。
type OneHotEncoder struct {
	model.BaseEstimator

	dropFirst bool
	sorted    bool

	columns    []string
	categories map[string][]string
}

// NewOneHotEncoder は drop-first を既定とするエンコーダを作成する
func NewOneHotEncoder(opts ...OneHotOption) *OneHotEncoder {
	e := &OneHotEncoder{dropFirst: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Fit は文字列列ごとのカテゴリ一覧を学習する
func (e *OneHotEncoder) Fit(df dataframe.DataFrame) error {
	if df.Err != nil {
		return errors.Wrap(df.Err, "OneHotEncoder.Fit")
	}

	e.Reset()
	e.columns = nil
	e.categories = make(map[string][]string)

	for _, name := range df.Names() {
		s := df.Col(name)
		if s.Type() != series.String {
			continue
		}

		seen := make(map[string]struct{})
		var cats []string
		for i := 0; i < s.Len(); i++ {
			el := s.Elem(i)
			if el.IsNA() {
				continue
			}
			v := el.String()
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			cats = append(cats, v)
		}
		if e.sorted {
			sort.Strings(cats)
		}

		e.columns = append(e.columns, name)
		e.categories[name] = cats
	}

	e.SetFitted()
	return nil
}

// Transform は学習済みのカテゴリでテーブルを変換する。
// 学習時に無かったカテゴリと欠損値は全ダミー列が 0 になる。
func (e *OneHotEncoder) Transform(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if err := e.CheckFitted("OneHotEncoder", "Transform"); err != nil {
		return dataframe.DataFrame{}, err
	}
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.Wrap(df.Err, "OneHotEncoder.Transform")
	}

	encoded := make(map[string]struct{}, len(e.columns))
	for _, name := range e.columns {
		encoded[name] = struct{}{}
	}

	var out []series.Series
	for _, name := range df.Names() {
		if _, ok := encoded[name]; ok {
			continue
		}
		s := df.Col(name)
		if s.Type() == series.String {
			return dataframe.DataFrame{}, errors.NewValueError("OneHotEncoder.Transform",
				fmt.Sprintf("column %q was not a string column at fit time", name))
		}
		out = append(out, s.Copy())
	}

	n := df.Nrow()
	for _, name := range e.columns {
		if !hasColumn(df, name) {
			return dataframe.DataFrame{}, errors.NewColumnError("OneHotEncoder.Transform", name)
		}
		s := df.Col(name)
		for _, cat := range e.kept(name) {
			values := make([]int, n)
			for i := 0; i < n; i++ {
				el := s.Elem(i)
				if !el.IsNA() && el.String() == cat {
					values[i] = 1
				}
			}
			out = append(out, series.New(values, series.Int, name+"_"+cat))
		}
	}

	if len(out) == 0 {
		return dataframe.DataFrame{}, errors.NewModelError("OneHotEncoder.Transform", "no output columns", errors.ErrEmptyData)
	}
	result := dataframe.New(out...)
	if result.Err != nil {
		return dataframe.DataFrame{}, errors.Wrap(result.Err, "OneHotEncoder.Transform")
	}
	return result, nil
}

// FitTransform は学習と変換を一度に行う
func (e *OneHotEncoder) FitTransform(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if err := e.Fit(df); err != nil {
		return dataframe.DataFrame{}, err
	}
	return e.Transform(df)
}

// Columns はエンコード対象になった列名を返す
func (e *OneHotEncoder) Columns() []string {
	return append([]string(nil), e.columns...)
}

// Categories は列 col について学習したカテゴリを（落とした分も含めて）返す
func (e *OneHotEncoder) Categories(col string) []string {
	return append([]string(nil), e.categories[col]...)
}

// FeatureNames は Transform が追加するダミー列の名前を返す
func (e *OneHotEncoder) FeatureNames() []string {
	var names []string
	for _, name := range e.columns {
		for _, cat := range e.kept(name) {
			names = append(names, name+"_"+cat)
		}
	}
	return names
}

func (e *OneHotEncoder) kept(col string) []string {
	cats := e.categories[col]
	if e.dropFirst && len(cats) > 0 {
		return cats[1:]
	}
	return cats
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// isMissing は要素が欠損かどうかを返す。
// Float 列は NA フラグの無い NaN 値も欠損とみなす。
func isMissing(el series.Element) bool {
	if el.IsNA() {
		return true
	}
	if el.Type() == series.Float {
		return math.IsNaN(el.Float())
	}
	return false
}
