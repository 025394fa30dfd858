package report

import (
	"strings"
	"time"
)

// Layout pins the fixed structural conventions of an evaluation workbook:
// dates in one column, metric names in one header row, data below it.
// All positions are 0-indexed.
type Layout struct {
	DateCol      int `yaml:"date_col"`
	HeaderRow    int `yaml:"header_row"`
	DataStartRow int `yaml:"data_start_row"`
}

// DefaultLayout matches the fleet workbook convention: column A holds the
// date, row 2 the metric headers, data starts at row 3.
func DefaultLayout() Layout {
	return Layout{DateCol: 0, HeaderRow: 1, DataStartRow: 2}
}

// Validate checks the positional invariants.
func (l Layout) Validate() error {
	if l.DateCol < 0 {
		return NewLayoutError("date column must be >= 0")
	}
	if l.HeaderRow < 0 {
		return NewLayoutError("header row must be >= 0")
	}
	if l.DataStartRow <= l.HeaderRow {
		return NewLayoutError("data start row must be below the header row")
	}
	return nil
}

// RawGrid is the untyped cell grid read from a source file, before any
// structural interpretation.
type RawGrid struct {
	Source string
	Sheet  string
	Cells  [][]string
}

// Cell returns the trimmed cell content at (row, col), or "" when the
// position lies outside the ragged grid.
func (g RawGrid) Cell(row, col int) string {
	if row < 0 || row >= len(g.Cells) {
		return ""
	}
	r := g.Cells[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// Rows returns the total number of rows in the grid.
func (g RawGrid) Rows() int { return len(g.Cells) }

// MetricColumn pairs a metric name with the grid column it came from.
type MetricColumn struct {
	Col  int
	Name string
}

// DateRow is a data row that survived date parsing. It carries its original
// grid row index so value cells can be paired structurally, without
// re-deriving alignment after the fact.
type DateRow struct {
	SourceRow int
	Date      time.Time
	Weekday   WeekdayLabel
}

// Record is one long-format observation: one (date, metric, value) triple.
// Value is always a finite number; non-numeric source cells never become
// records.
type Record struct {
	Date    time.Time
	Weekday WeekdayLabel
	Metric  string
	Value   float64
}

// DateLabel formats the record date for display (day.month.year).
func (r Record) DateLabel() string { return r.Date.Format(dateDisplayLayout) }

// WeekdayTotal is one slot of an aggregate series.
type WeekdayTotal struct {
	Weekday WeekdayLabel
	Total   float64
}

// AggregateSeries holds one metric's per-weekday sums in canonical week
// order. Weekdays without any underlying records are omitted entirely,
// distinguishing "no data collected" from "zero activity".
type AggregateSeries struct {
	Metric string
	Totals []WeekdayTotal
}

// MaxTotal returns the largest total in the series, used for chart scaling.
func (s AggregateSeries) MaxTotal() float64 {
	max := 0.0
	for _, t := range s.Totals {
		if t.Total > max {
			max = t.Total
		}
	}
	return max
}

// MetricStats are descriptive statistics for one metric over the full
// record set.
type MetricStats struct {
	Metric string
	Count  int
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

const dateDisplayLayout = "02.01.2006"

// KPISummary holds the headline figures computed over the full, unfiltered
// record set.
type KPISummary struct {
	RangeStart  time.Time
	RangeEnd    time.Time
	MetricCount int
	RecordCount int
	PerMetric   []MetricStats
}

// RangeStartLabel formats the earliest date as day.month.year.
func (k KPISummary) RangeStartLabel() string { return k.RangeStart.Format(dateDisplayLayout) }

// RangeEndLabel formats the latest date as day.month.year.
func (k KPISummary) RangeEndLabel() string { return k.RangeEnd.Format(dateDisplayLayout) }

// PreviewLimit caps the preview table embedded in rendered reports.
const PreviewLimit = 200

// ReportBundle is the render-ready package handed to presentation layers:
// KPI tiles, one aggregate series per selected metric, and a bounded
// preview of the record table. It is a read-only view; presentation code
// never mutates it.
type ReportBundle struct {
	KPIs             KPISummary
	Series           []AggregateSeries
	SelectedMetrics  []string
	Preview          []Record
	PreviewTruncated bool
	TotalRecords     int
	GeneratedAt      time.Time
}
