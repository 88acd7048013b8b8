package modelutil

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/airbnb-price/pkg/errors"
)

// TrainTestSplit は行をシャッフルして学習用とテスト用に分ける。
// テスト件数は ceil(testSize * n)。同じ seed なら同じ分割になる。
func TrainTestSplit(X *mat.Dense, y *mat.VecDense, testSize float64, seed uint64) (XTrain, XTest *mat.Dense, yTrain, yTest *mat.VecDense, err error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, nil, nil, errors.NewValidationError("test_size", "must be within (0, 1)", testSize)
	}
	n, c := X.Dims()
	if y.Len() != n {
		return nil, nil, nil, nil, errors.NewDimensionError("TrainTestSplit", n, y.Len(), 0)
	}

	nTest := int(math.Ceil(testSize * float64(n)))
	nTrain := n - nTest
	if nTest < 1 || nTrain < 1 {
		return nil, nil, nil, nil, errors.NewValueError("TrainTestSplit",
			"not enough samples to split with the given test size")
	}

	// シードを固定して再現性を確保
	rng := rand.New(rand.NewPCG(seed, seed))
	perm := rng.Perm(n)

	XTest, yTest = takeRows(X, y, perm[:nTest], c)
	XTrain, yTrain = takeRows(X, y, perm[nTest:], c)
	return XTrain, XTest, yTrain, yTest, nil
}

func takeRows(X *mat.Dense, y *mat.VecDense, idx []int, c int) (*mat.Dense, *mat.VecDense) {
	outX := mat.NewDense(len(idx), c, nil)
	outY := mat.NewVecDense(len(idx), nil)
	for i, src := range idx {
		outX.SetRow(i, X.RawRowView(src))
		outY.SetVec(i, y.AtVec(src))
	}
	return outX, outY
}
