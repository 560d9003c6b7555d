package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/neoscan/runtime/pkg/neo"
)

// csvHeader is the fixed column set, in order. Approach fields come first,
// then the fields of the approaching object.
var csvHeader = []string{
	"datetime_utc",
	"distance_au",
	"velocity_km_s",
	"designation",
	"name",
	"diameter_km",
	"potentially_hazardous",
}

// CSVWriter renders a result stream as comma-delimited rows under a fixed
// header. An unnamed object renders as an empty name column; an unknown
// diameter renders as NaN.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter returns a CSVWriter rendering to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// Write implements Writer.
func (c *CSVWriter) Write(results neo.ApproachSeq) (int, error) {
	if err := c.w.Write(csvHeader); err != nil {
		return 0, fmt.Errorf("writing csv header: %w", err)
	}

	count := 0
	for approach, err := range results {
		if err != nil {
			c.w.Flush()
			return count, err
		}
		if err := c.w.Write(csvRow(approach)); err != nil {
			return count, fmt.Errorf("writing csv row %d: %w", count+1, err)
		}
		count++
	}

	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return count, fmt.Errorf("flushing csv output: %w", err)
	}
	return count, nil
}

func csvRow(approach *neo.CloseApproach) []string {
	obj := approach.NEO
	return []string{
		neo.FormatTime(approach.Time),
		formatFloat(approach.Distance),
		formatFloat(approach.Velocity),
		approach.Designation,
		obj.Name,
		formatFloat(obj.Diameter),
		strconv.FormatBool(obj.Hazardous),
	}
}

// formatFloat renders a scalar in its shortest exact decimal form.
// NaN (an unknown diameter) renders as the literal NaN.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
