package modelutil

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func splitFixture(n int) (*mat.Dense, *mat.VecDense) {
	X := mat.NewDense(n, 2, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, float64(i))
		X.Set(i, 1, float64(i)*10)
		y.SetVec(i, float64(i))
	}
	return X, y
}

func TestTrainTestSplit(t *testing.T) {
	X, y := splitFixture(10)

	XTrain, XTest, yTrain, yTest, err := TrainTestSplit(X, y, 0.25, 42)
	require.NoError(t, err)

	rTrain, _ := XTrain.Dims()
	rTest, _ := XTest.Dims()
	assert.Equal(t, 7, rTrain)
	assert.Equal(t, 3, rTest) // ceil(2.5)

	// 行と目的変数の対応が保たれ、全行がちょうど一度ずつ現れる
	var seen []float64
	for i := 0; i < rTrain; i++ {
		assert.Equal(t, XTrain.At(i, 0), yTrain.AtVec(i))
		assert.Equal(t, XTrain.At(i, 0)*10, XTrain.At(i, 1))
		seen = append(seen, yTrain.AtVec(i))
	}
	for i := 0; i < rTest; i++ {
		assert.Equal(t, XTest.At(i, 0), yTest.AtVec(i))
		seen = append(seen, yTest.AtVec(i))
	}
	sort.Float64s(seen)
	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, seen)
}

func TestTrainTestSplitDeterministic(t *testing.T) {
	X, y := splitFixture(20)
	_, a, _, _, err := TrainTestSplit(X, y, 0.2, 7)
	require.NoError(t, err)
	_, b, _, _, err := TrainTestSplit(X, y, 0.2, 7)
	require.NoError(t, err)
	assert.True(t, mat.Equal(a, b))
}

func TestTrainTestSplitErrors(t *testing.T) {
	X, y := splitFixture(3)

	_, _, _, _, err := TrainTestSplit(X, y, 0, 1)
	assert.Error(t, err)
	_, _, _, _, err = TrainTestSplit(X, y, 1, 1)
	assert.Error(t, err)
	_, _, _, _, err = TrainTestSplit(X, mat.NewVecDense(2, nil), 0.5, 1)
	assert.Error(t, err)

	one, oneY := splitFixture(1)
	_, _, _, _, err = TrainTestSplit(one, oneY, 0.5, 1)
	assert.Error(t, err)
}
