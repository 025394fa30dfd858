package report

import (
	"math"
	"strconv"
	"strings"
)

// BuildRecords cross-joins the surviving date rows against the metric
// columns and emits one Record per numeric cell. Empty cells and cells that
// fail numeric coercion are skipped silently: stray text artifacts in a
// spreadsheet exclude single data points, they never corrupt sums and never
// abort the run.
//
// Returns ErrEmptyResult when zero records are produced; an all-empty data
// region must surface to the caller instead of rendering a blank report.
func BuildRecords(grid RawGrid, dateRows []DateRow, cols []MetricColumn) ([]Record, error) {
	var records []Record
	for _, dr := range dateRows {
		for _, mc := range cols {
			cell := grid.Cell(dr.SourceRow, mc.Col)
			if cell == "" {
				continue
			}
			v, ok := ParseNumeric(cell)
			if !ok {
				continue
			}
			records = append(records, Record{
				Date:    dr.Date,
				Weekday: dr.Weekday,
				Metric:  mc.Name,
				Value:   v,
			})
		}
	}

	if len(records) == 0 {
		return nil, ErrEmptyResult
	}
	return records, nil
}

// ParseNumeric coerces a cell to a finite float64. Plain Go float syntax is
// tried first; failing that, the German convention (decimal comma, optional
// dot or space thousands separators) is accepted. NaN and infinities are
// rejected so every record value stays finite.
func ParseNumeric(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return finite(v)
	}

	if strings.Contains(s, ",") {
		g := strings.NewReplacer(".", "", " ", "", " ", "").Replace(s)
		g = strings.Replace(g, ",", ".", 1)
		if v, err := strconv.ParseFloat(g, 64); err == nil {
			return finite(v)
		}
	}

	return 0, false
}

func finite(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
