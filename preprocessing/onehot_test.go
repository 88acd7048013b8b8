package preprocessing

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/airbnb-price/pkg/errors"
)

func listings() dataframe.DataFrame {
	return dataframe.New(
		series.New([]string{"Private room", "Entire home", "Shared room", "Entire home", "NaN"}, series.String, "room_type"),
		series.New([]int{1, 2, 1, 4, 2}, series.Int, "accommodates"),
		series.New([]float64{55, 120, 30, 210, 80}, series.Float, "price"),
	)
}

func TestOneHotEncoderDropFirstFirstSeen(t *testing.T) {
	enc := NewOneHotEncoder()
	out, err := enc.FitTransform(listings())
	require.NoError(t, err)

	assert.Equal(t, []string{"Private room", "Entire home", "Shared room"}, enc.Categories("room_type"))
	assert.Equal(t, []string{"accommodates", "price", "room_type_Entire home", "room_type_Shared room"}, out.Names())

	home := out.Col("room_type_Entire home").Records()
	shared := out.Col("room_type_Shared room").Records()
	assert.Equal(t, []string{"0", "1", "0", "1", "0"}, home)
	assert.Equal(t, []string{"0", "0", "1", "0", "0"}, shared)
}

func TestOneHotEncoderSortedCategories(t *testing.T) {
	enc := NewOneHotEncoder(WithSortedCategories())
	require.NoError(t, enc.Fit(listings()))

	assert.Equal(t, []string{"Entire home", "Private room", "Shared room"}, enc.Categories("room_type"))
	assert.Equal(t, []string{"room_type_Private room", "room_type_Shared room"}, enc.FeatureNames())
}

func TestOneHotEncoderKeepAll(t *testing.T) {
	enc := NewOneHotEncoder(WithDropFirst(false))
	out, err := enc.FitTransform(listings())
	require.NoError(t, err)
	assert.Equal(t, 5, out.Ncol())

	// 欠損行はすべてのダミー列が 0
	for _, name := range enc.FeatureNames() {
		assert.Equal(t, "0", out.Col(name).Records()[4], name)
	}
}

func TestOneHotEncoderUnseenCategory(t *testing.T) {
	enc := NewOneHotEncoder()
	require.NoError(t, enc.Fit(listings()))

	test := dataframe.New(
		series.New([]string{"Hotel room"}, series.String, "room_type"),
		series.New([]int{2}, series.Int, "accommodates"),
		series.New([]float64{99}, series.Float, "price"),
	)
	out, err := enc.Transform(test)
	require.NoError(t, err)
	assert.Equal(t, "0", out.Col("room_type_Entire home").Records()[0])
	assert.Equal(t, "0", out.Col("room_type_Shared room").Records()[0])
}

func TestOneHotEncoderErrors(t *testing.T) {
	enc := NewOneHotEncoder()
	_, err := enc.Transform(listings())
	var nf *errors.NotFittedError
	assert.True(t, errors.As(err, &nf))

	require.NoError(t, enc.Fit(listings()))
	_, err = enc.Transform(listings().Drop([]string{"room_type"}))
	var colErr *errors.ColumnError
	assert.True(t, errors.As(err, &colErr))
}

func TestOneHotEncoderSingleCategoryDropsAll(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"a", "a"}, series.String, "kind"),
		series.New([]float64{1, 2}, series.Float, "x"),
	)
	enc := NewOneHotEncoder()
	out, err := enc.FitTransform(df)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, out.Names())
}
