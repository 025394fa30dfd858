package report

import "fmt"

// ExtractMetricColumns scans the header row right of the date column and
// returns the metric columns in left-to-right order. A column qualifies when
// its header cell is non-empty after trimming. When two headers resolve to
// the same trimmed name, the first occurrence wins and later columns are
// ignored.
//
// Returns ErrNoMetrics when zero columns qualify; a workbook without metric
// headers cannot produce a report.
func ExtractMetricColumns(grid RawGrid, layout Layout) ([]MetricColumn, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if layout.HeaderRow >= grid.Rows() {
		return nil, fmt.Errorf("%w: header row %d beyond grid (%d rows)", ErrNoMetrics, layout.HeaderRow, grid.Rows())
	}

	header := grid.Cells[layout.HeaderRow]
	seen := make(map[string]bool)
	var cols []MetricColumn
	for col := layout.DateCol + 1; col < len(header); col++ {
		name := grid.Cell(layout.HeaderRow, col)
		if name == "" {
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		cols = append(cols, MetricColumn{Col: col, Name: name})
	}

	if len(cols) == 0 {
		return nil, ErrNoMetrics
	}
	return cols, nil
}
