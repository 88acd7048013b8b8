package preprocessing

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/airbnb-price/pkg/errors"
)

func TestToDense(t *testing.T) {
	errors.SetWarningHandler(func(error) {})
	defer errors.SetWarningHandler(func(error) {})

	df := dataframe.New(
		series.New([]int{1, 2, 3}, series.Int, "beds"),
		series.New([]string{"1.5", "NaN", "3"}, series.Float, "baths"),
		series.New([]bool{true, false, true}, series.Bool, "instant_bookable"),
	)

	X, err := ToDense(df)
	require.NoError(t, err)

	r, c := X.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 2.0, X.At(1, 0))
	assert.Equal(t, 1.5, X.At(0, 1))
	assert.True(t, math.IsNaN(X.At(1, 1)))
	assert.Equal(t, 1.0, X.At(0, 2))
	assert.Equal(t, 0.0, X.At(1, 2))
}

func TestToDenseRejectsStrings(t *testing.T) {
	df := dataframe.New(series.New([]string{"a"}, series.String, "city"))
	_, err := ToDense(df)
	var ve *errors.ValueError
	assert.True(t, errors.As(err, &ve))
}

func TestColumnFloats(t *testing.T) {
	s := series.New([]string{"10", "x", "NaN"}, series.String, "raw")
	got := ColumnFloats(s)
	assert.Equal(t, 10.0, got[0])
	assert.True(t, math.IsNaN(got[1]))
	assert.True(t, math.IsNaN(got[2]))
}
