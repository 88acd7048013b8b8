package dataset

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// currencyChars matches the formatting characters in listing prices ("$1,250.00").
var currencyChars = regexp.MustCompile(`[$,]`)

// PriceValue is the result of parsing one price cell.
// Valid is false when the text was missing or not a number.
type PriceValue struct {
	Value float64
	Valid bool
}

// ParsePrice parses already-stripped price text. Unparsable text and NaN
// produce an invalid value, never an error.
func ParsePrice(text string) PriceValue {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) {
		return PriceValue{}
	}
	return PriceValue{Value: v, Valid: true}
}

// NormalizePrice rewrites column as Float: each cell is rendered as text
// (missing as "nan"), stripped of "$" and ",", and parsed with ParsePrice.
// Invalid values become missing. A table without the column is returned
// unchanged. The second result is the number of present cells that failed
// to parse.
func NormalizePrice(df dataframe.DataFrame, column string) (dataframe.DataFrame, int) {
	if !hasColumn(df, column) {
		return df, 0
	}

	s := df.Col(column)
	values := make([]interface{}, s.Len())
	invalid := 0
	for i := range values {
		el := s.Elem(i)
		text := "nan"
		if !isMissing(el) {
			text = FormatCell(el)
		}

		p := ParsePrice(currencyChars.ReplaceAllString(text, ""))
		if !p.Valid {
			if text != "nan" {
				invalid++
			}
			values[i] = nil
			continue
		}
		values[i] = p.Value
	}

	return df.Mutate(series.New(values, series.Float, column)), invalid
}
