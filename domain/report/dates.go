package report

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order. ISO first (what excelize emits for
// date-typed cells under the default style), then the dotted German forms
// the source workbooks actually contain, then slash variants.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"02.01.2006",
	"2.1.2006",
	"2.1.06",
	"2006/01/02",
	"02/01/2006",
}

// excelEpoch is day zero of the 1900 date system (with the Lotus leap-year
// bug accounted for, serial 1 = 1899-12-31 + 1 day offset).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// NormalizeDates walks the data region and returns one DateRow per row
// whose date cell parses. Unparseable or empty date cells drop the row
// silently; trailing blank rows are routine in exported workbooks and must
// not abort the run. The weekday label is derived from the parsed date
// alone, never from locale state.
func NormalizeDates(grid RawGrid, layout Layout) []DateRow {
	var rows []DateRow
	for r := layout.DataStartRow; r < grid.Rows(); r++ {
		raw := grid.Cell(r, layout.DateCol)
		if raw == "" {
			continue
		}
		d, ok := ParseDate(raw)
		if !ok {
			continue
		}
		rows = append(rows, DateRow{
			SourceRow: r,
			Date:      d,
			Weekday:   WeekdayFor(d),
		})
	}
	return rows
}

// ParseDate attempts to read a date from a raw cell string. It accepts the
// known textual layouts, a datetime (date part is kept), and Excel serial
// numbers in the 1900 system. The result is normalized to midnight UTC so
// that equal calendar dates compare equal regardless of source form.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	// Datetime strings: keep the date part. Covers RFC3339 and the
	// "2006-01-02 15:04:05" form excelize produces for datetime cells.
	if len(s) > 10 && (s[10] == 'T' || s[10] == ' ') {
		s = s[:10]
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	// Excel serial date: days since the 1900 epoch. Anything below 61
	// falls into the Lotus leap-year ambiguity and anything above ~2958465
	// (year 9999) is noise, so bound the range.
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial >= 61 && serial <= 2958465 {
			t := excelEpoch.AddDate(0, 0, int(serial))
			return t, true
		}
	}

	return time.Time{}, false
}
