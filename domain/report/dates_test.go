package report

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string // "" means parse failure expected
	}{
		{"2024-01-15", "2024-01-15"},
		{"2024-1-5", "2024-01-05"},
		{"15.01.2024", "2024-01-15"},
		{"5.1.2024", "2024-01-05"},
		{"5.1.24", "2024-01-05"},
		{"2024/01/15", "2024-01-15"},
		{"15/01/2024", "2024-01-15"},
		{"2024-01-15 08:30:00", "2024-01-15"},
		{"2024-01-15T08:30:00Z", "2024-01-15"},
		{"45306", "2024-01-15"}, // Excel serial, 1900 system
		{"  2024-01-15  ", "2024-01-15"},
		{"", ""},
		{"gesamt", ""},
		{"13.13.2024", ""},
		{"1", ""},  // serial below the ambiguity bound
		{"12", ""}, // plain small number is not a date
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseDate(tt.raw)
			if tt.want == "" {
				if ok {
					t.Fatalf("ParseDate(%q) = %v, want failure", tt.raw, got)
				}
				return
			}
			if !ok {
				t.Fatalf("ParseDate(%q) failed, want %s", tt.raw, tt.want)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.raw, got.Format("2006-01-02"), tt.want)
			}
			if got.Location() != time.UTC || got.Hour() != 0 {
				t.Errorf("ParseDate(%q) not normalized to midnight UTC: %v", tt.raw, got)
			}
		})
	}
}

func TestNormalizeDates(t *testing.T) {
	g := grid([][]string{
		{"Fuhrpark Export"},
		{"", "Strecke"},
		{"2024-01-01", "10"}, // row 2, Monday
		{"", "11"},           // empty date: dropped
		{"gesamt", "99"},     // non-date footer row: dropped
		{"05.01.2024", "12"}, // row 5, Friday
	})

	rows := NormalizeDates(g, DefaultLayout())
	if len(rows) != 2 {
		t.Fatalf("got %d date rows, want 2", len(rows))
	}

	if rows[0].SourceRow != 2 || rows[0].Weekday != Mo {
		t.Errorf("row 0 = %+v, want source row 2 / Mo", rows[0])
	}
	if rows[1].SourceRow != 5 || rows[1].Weekday != Fr {
		t.Errorf("row 1 = %+v, want source row 5 / Fr", rows[1])
	}
}

func TestNormalizeDates_EmptyDataRegion(t *testing.T) {
	g := grid([][]string{
		{},
		{"", "Strecke"},
	})
	if rows := NormalizeDates(g, DefaultLayout()); len(rows) != 0 {
		t.Errorf("got %d rows from empty data region, want 0", len(rows))
	}
}
