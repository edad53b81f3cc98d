package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cwbudde/algo-approxbench/eval/accuracy"
)

// SeriesMode selects the columns written by WriteSeriesCSV.
type SeriesMode int

const (
	// SeriesValues writes x, the reference and every variant value.
	SeriesValues SeriesMode = iota
	// SeriesErrors writes x and the absolute error of every variant.
	SeriesErrors
)

// WriteSeriesCSV writes s as CSV with a header row.
func WriteSeriesCSV(w io.Writer, s *accuracy.Series, mode SeriesMode) error {
	cw := csv.NewWriter(w)

	header := []string{"x"}
	if mode == SeriesValues {
		header = append(header, s.Reference)
	}
	for _, c := range s.Curves {
		if mode == SeriesErrors {
			header = append(header, "error: "+c.Name)
		} else {
			header = append(header, c.Name)
		}
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("report: write csv header: %w", err)
	}

	row := make([]string, len(header))
	for i, x := range s.X {
		row = row[:0]
		row = append(row, formatFloat(x))
		if mode == SeriesValues {
			row = append(row, formatFloat(s.RefY[i]))
		}
		for _, c := range s.Curves {
			if mode == SeriesErrors {
				row = append(row, formatFloat(c.AbsError[i]))
			} else {
				row = append(row, formatFloat(c.Y[i]))
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("report: write csv row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
