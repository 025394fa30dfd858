package report

import "time"

// WeekdayLabel is the short German weekday name used for grouping and
// display.
type WeekdayLabel string

const (
	Mo WeekdayLabel = "Mo"
	Di WeekdayLabel = "Di"
	Mi WeekdayLabel = "Mi"
	Do WeekdayLabel = "Do"
	Fr WeekdayLabel = "Fr"
	Sa WeekdayLabel = "Sa"
	So WeekdayLabel = "So"
)

// CanonicalWeek is the fixed display order, Monday first. Aggregate series
// are always emitted in this order.
var CanonicalWeek = [7]WeekdayLabel{Mo, Di, Mi, Do, Fr, Sa, So}

// WeekdayFor maps a date onto its label via a hardcoded Monday=0 table.
// It never consults the runtime locale; locale-derived weekday names have
// proven unreliable across deployment environments.
func WeekdayFor(t time.Time) WeekdayLabel {
	// time.Weekday has Sunday=0; rotate to Monday=0.
	return CanonicalWeek[(int(t.Weekday())+6)%7]
}
