package linear

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/airbnb-price/core/parallel"
	"github.com/YuminosukeSato/airbnb-price/preprocessing"
)

// ダミー列ブロックの水準数（drop-first で 1 列減る）
const (
	roomTypes     = 4
	propertyTypes = 8
	numericCols   = 4
)

// listingMatrix は PrepareFeatures → SimpleImputer を通した後と同じ形の行列を作る。
// 先頭に欠損入りの数値列、続いて room_type / property_type / neighbourhood の
// 0/1 ダミー列ブロックが並ぶ。
func listingMatrix(tb testing.TB, rows, neighbourhoods int) (*mat.Dense, *mat.VecDense) {
	tb.Helper()
	rng := rand.New(rand.NewPCG(42, 42))

	cols := numericCols + (roomTypes - 1) + (propertyTypes - 1) + (neighbourhoods - 1)
	X := mat.NewDense(rows, cols, nil)
	y := mat.NewVecDense(rows, nil)

	nbhdEffect := make([]float64, neighbourhoods)
	for k := range nbhdEffect {
		nbhdEffect[k] = rng.Float64()*80 - 40
	}

	for i := 0; i < rows; i++ {
		acc := float64(rng.IntN(8) + 1)
		bedrooms := math.Ceil(acc / 2)
		score := 3 + 2*rng.Float64()
		nights := float64(rng.IntN(30) + 1)
		room := rng.IntN(roomTypes)
		prop := rng.IntN(propertyTypes)
		nbhd := rng.IntN(neighbourhoods)

		price := 30 + 25*acc + 15*bedrooms + 10*score - 0.5*nights +
			[]float64{60, 0, -20, -35}[room] + 5*float64(prop) + nbhdEffect[nbhd] +
			rng.NormFloat64()*10
		y.SetVec(i, price)

		// 生データと同じように一部の数値が欠けている
		if rng.Float64() < 0.1 {
			bedrooms = math.NaN()
		}
		if rng.Float64() < 0.2 {
			score = math.NaN()
		}
		X.SetRow(i, append([]float64{acc, bedrooms, score, nights}, make([]float64, cols-numericCols)...))

		j := numericCols
		if room > 0 {
			X.Set(i, j+room-1, 1)
		}
		j += roomTypes - 1
		if prop > 0 {
			X.Set(i, j+prop-1, 1)
		}
		j += propertyTypes - 1
		if nbhd > 0 {
			X.Set(i, j+nbhd-1, 1)
		}
	}

	filled, err := preprocessing.NewSimpleImputer(preprocessing.StrategyMean).FitTransform(X)
	if err != nil {
		tb.Fatal(err)
	}
	return filled, y
}

func TestListingMatrixShape(t *testing.T) {
	X, y := listingMatrix(t, 500, 12)

	r, c := X.Dims()
	if r != 500 || y.Len() != 500 {
		t.Fatalf("rows = %d, y = %d, want 500", r, y.Len())
	}
	if want := numericCols + 3 + 7 + 11; c != want {
		t.Fatalf("cols = %d, want %d", c, want)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) {
				t.Fatalf("NaN left at (%d, %d)", i, j)
			}
			if j >= numericCols && v != 0 && v != 1 {
				t.Fatalf("indicator (%d, %d) = %v", i, j, v)
			}
		}
	}

	// 価格は部屋数で決まる部分が大きいので OLS で十分説明できる
	lr := NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	score, err := lr.Score(X, y)
	if err != nil {
		t.Fatal(err)
	}
	if score < 0.8 {
		t.Errorf("R² = %.3f on the training data, want >= 0.8", score)
	}
}

// BenchmarkFitListings は OLS と ridge をリスティング形の行列で比べる
func BenchmarkFitListings(b *testing.B) {
	sizes := []struct {
		name           string
		rows           int
		neighbourhoods int
	}{
		{"City_1000x20", 1000, 20},
		{"City_5000x40", 5000, 40},
		{"Metro_20000x80", 20000, 80},
	}
	models := []struct {
		name  string
		alpha float64
	}{
		{"OLS", 0},
		{"Ridge", 1.0},
	}

	for _, size := range sizes {
		X, y := listingMatrix(b, size.rows, size.neighbourhoods)
		for _, m := range models {
			b.Run(size.name+"/"+m.name, func(b *testing.B) {
				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if err := NewLinearRegression(WithAlpha(m.alpha)).Fit(X, y); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

// BenchmarkFitAroundThreshold は並列化の閾値の前後で設計行列の組み立てを比べる
func BenchmarkFitAroundThreshold(b *testing.B) {
	for _, rows := range []int{parallel.DefaultThreshold - 100, parallel.DefaultThreshold + 100} {
		X, y := listingMatrix(b, rows, 10)
		name := "Sequential"
		if rows > parallel.DefaultThreshold {
			name = "Parallel"
		}
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if err := NewLinearRegression(WithAlpha(0.1)).Fit(X, y); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkPredictListings(b *testing.B) {
	X, y := listingMatrix(b, 20000, 80)
	lr := NewLinearRegression(WithAlpha(1.0))
	if err := lr.Fit(X, y); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := lr.Predict(X); err != nil {
			b.Fatal(err)
		}
	}
}
