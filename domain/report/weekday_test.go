package report

import (
	"testing"
	"time"
)

func TestWeekdayFor(t *testing.T) {
	tests := []struct {
		date string
		want WeekdayLabel
	}{
		{"2024-01-01", Mo}, // Monday
		{"2024-01-02", Di},
		{"2024-01-03", Mi},
		{"2024-01-04", Do},
		{"2024-01-05", Fr},
		{"2024-01-06", Sa},
		{"2024-01-07", So}, // Sunday
		{"2024-02-29", Do}, // leap day
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, err := time.Parse("2006-01-02", tt.date)
			if err != nil {
				t.Fatalf("bad test date: %v", err)
			}
			if got := WeekdayFor(d); got != tt.want {
				t.Errorf("WeekdayFor(%s) = %s, want %s", tt.date, got, tt.want)
			}
		})
	}
}

// Labels must come from the hardcoded table, not from any locale or
// timezone state of the runtime: the same raw cell yields the same label
// no matter what time.Local or LANG say.
func TestWeekdayLabel_EnvironmentIndependent(t *testing.T) {
	t.Setenv("LANG", "tr_TR.UTF-8")
	t.Setenv("LC_ALL", "tr_TR.UTF-8")

	original := time.Local
	defer func() { time.Local = original }()

	for _, tz := range []string{"UTC", "America/New_York", "Asia/Tokyo", "Pacific/Kiritimati"} {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			t.Skipf("timezone db unavailable for %s", tz)
		}
		time.Local = loc

		d, ok := ParseDate("2024-01-01") // Monday
		if !ok {
			t.Fatalf("ParseDate failed under %s", tz)
		}
		if got := WeekdayFor(d); got != Mo {
			t.Errorf("label under %s = %s, want Mo", tz, got)
		}
	}
}

func TestCanonicalWeekOrder(t *testing.T) {
	want := [7]WeekdayLabel{Mo, Di, Mi, Do, Fr, Sa, So}
	if CanonicalWeek != want {
		t.Errorf("CanonicalWeek = %v, want %v", CanonicalWeek, want)
	}
}
