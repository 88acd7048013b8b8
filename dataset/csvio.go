package dataset

import (
	"bufio"
	"encoding/csv"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/klauspost/compress/gzip"

	"github.com/YuminosukeSato/airbnb-price/pkg/errors"
)

// NAValues are the tokens read as missing. Same list pandas uses by default.
var NAValues = []string{
	"", "NA", "NaN", "nan", "NULL", "null", "None", "N/A", "n/a",
	"#N/A", "<NA>", "-NaN", "-nan", "1.#IND", "1.#QNAN", "-1.#IND",
	"-1.#QNAN", "#NA", "#N/A N/A",
}

// ReadCSV parses a CSV stream with a header row into a table with detected
// column types.
func ReadCSV(r io.Reader) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(NAValues),
		dataframe.WithLazyQuotes(true),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.Wrap(df.Err, "parse csv")
	}
	return df, nil
}

// ReadCSVFile reads a plain CSV file.
func ReadCSVFile(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()

	df, err := ReadCSV(bufio.NewReader(f))
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "read %s", path)
	}
	return df, nil
}

// ReadGzipCSVFile reads a gzip-compressed CSV file. A missing file is
// returned as-is so callers can test it with os.IsNotExist.
func ReadGzipCSVFile(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(bufio.NewReader(f))
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "open gzip stream %s", path)
	}
	defer zr.Close()

	df, err := ReadCSV(zr)
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "read %s", path)
	}
	return df, nil
}

// WriteCSV writes the table with a header row and no index column.
func WriteCSV(w io.Writer, df dataframe.DataFrame) error {
	if df.Err != nil {
		return errors.Wrap(df.Err, "write csv")
	}

	cw := csv.NewWriter(w)
	names := df.Names()
	if err := cw.Write(names); err != nil {
		return errors.Wrap(err, "write csv header")
	}

	cols := make([]series.Series, len(names))
	for j, name := range names {
		cols[j] = df.Col(name)
	}

	record := make([]string, len(names))
	for i := 0; i < df.Nrow(); i++ {
		for j, s := range cols {
			record[j] = FormatCell(s.Elem(i))
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrapf(err, "write csv row %d", i)
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}

// WriteCSVFile writes the table to path, creating parent directories.
func WriteCSVFile(path string, df dataframe.DataFrame) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}

	bw := bufio.NewWriter(f)
	if err := WriteCSV(bw, df); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

// FormatCell renders one table cell for CSV output. Missing cells are empty.
// Floats use the shortest exact form and keep a ".0" suffix when integral so
// that reading the file back detects the column as Float again.
func FormatCell(el series.Element) string {
	if isMissing(el) {
		return ""
	}
	if el.Type() != series.Float {
		return el.String()
	}

	v := el.Float()
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !math.IsInf(v, 0) && !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func isMissing(el series.Element) bool {
	if el.IsNA() {
		return true
	}
	return el.Type() == series.Float && math.IsNaN(el.Float())
}
