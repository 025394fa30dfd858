package report

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"
)

// weekFixture builds the reference scenario: one full week of Distance
// values and an Idle Time column with gaps (empty Tuesday, non-numeric
// Thursday).
func weekFixture(t *testing.T) []Record {
	t.Helper()
	g := grid([][]string{
		{},
		{"", "Distance", "Idle Time"},
		{"2024-01-01", "10", "1"},
		{"2024-01-02", "20", ""},
		{"2024-01-03", "30", "2"},
		{"2024-01-04", "40", "x"},
		{"2024-01-05", "50", "3"},
		{"2024-01-06", "60", "4"},
		{"2024-01-07", "70", "5"},
	})
	cols, err := ExtractMetricColumns(g, DefaultLayout())
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	records, err := BuildRecords(g, NormalizeDates(g, DefaultLayout()), cols)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return records
}

func TestAggregate_ReferenceWeek(t *testing.T) {
	records := weekFixture(t)
	if len(records) != 12 {
		t.Fatalf("fixture produced %d records, want 12", len(records))
	}

	series := Aggregate(records, nil)
	if len(series) != 2 {
		t.Fatalf("got %d series, want 2", len(series))
	}

	wantDistance := []WeekdayTotal{
		{Mo, 10}, {Di, 20}, {Mi, 30}, {Do, 40}, {Fr, 50}, {Sa, 60}, {So, 70},
	}
	if series[0].Metric != "Distance" || !reflect.DeepEqual(series[0].Totals, wantDistance) {
		t.Errorf("Distance series = %+v, want %+v", series[0], wantDistance)
	}

	// Tuesday and Thursday carry no Idle Time records and must be absent,
	// not zero-filled.
	wantIdle := []WeekdayTotal{{Mo, 1}, {Mi, 2}, {Fr, 3}, {Sa, 4}, {So, 5}}
	if series[1].Metric != "Idle Time" || !reflect.DeepEqual(series[1].Totals, wantIdle) {
		t.Errorf("Idle Time series = %+v, want %+v", series[1], wantIdle)
	}
}

func TestAggregate_CanonicalOrder(t *testing.T) {
	records := weekFixture(t)

	for _, s := range Aggregate(records, nil) {
		pos := -1
		for _, wt := range s.Totals {
			p := weekIndex(wt.Weekday)
			if p <= pos {
				t.Errorf("series %s out of canonical order: %+v", s.Metric, s.Totals)
				break
			}
			pos = p
		}
	}
}

func weekIndex(w WeekdayLabel) int {
	for i, c := range CanonicalWeek {
		if c == w {
			return i
		}
	}
	return -1
}

func TestAggregate_OrderIndependent(t *testing.T) {
	records := weekFixture(t)
	base := Aggregate(records, nil)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]Record, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		// Series order follows first appearance, which shuffling may
		// change; match series by metric name instead of position.
		got := Aggregate(shuffled, nil)
		if len(got) != len(base) {
			t.Fatalf("shuffle changed series count")
		}
		byMetric := make(map[string]AggregateSeries, len(got))
		for _, s := range got {
			byMetric[s.Metric] = s
		}
		for _, want := range base {
			s, ok := byMetric[want.Metric]
			if !ok || len(s.Totals) != len(want.Totals) {
				t.Fatalf("shuffle changed series shape for %s", want.Metric)
			}
			for ti := range want.Totals {
				d := math.Abs(s.Totals[ti].Total - want.Totals[ti].Total)
				if d > 1e-9 {
					t.Errorf("shuffle changed %s/%s by %g", want.Metric, want.Totals[ti].Weekday, d)
				}
			}
		}
	}
}

func TestAggregate_Selection(t *testing.T) {
	records := weekFixture(t)

	series := Aggregate(records, []string{"Idle Time"})
	if len(series) != 1 || series[0].Metric != "Idle Time" {
		t.Fatalf("selection series = %+v, want only Idle Time", series)
	}

	// Unknown selections filter to nothing at this layer.
	if series := Aggregate(records, []string{"Nope"}); len(series) != 0 {
		t.Errorf("unknown metric selection yielded %+v", series)
	}
}

func TestMetricOrder_FirstAppearance(t *testing.T) {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []Record{
		{Date: d, Weekday: Mo, Metric: "B", Value: 1},
		{Date: d, Weekday: Mo, Metric: "A", Value: 1},
		{Date: d, Weekday: Mo, Metric: "B", Value: 1},
	}
	if got := MetricOrder(records); !reflect.DeepEqual(got, []string{"B", "A"}) {
		t.Errorf("MetricOrder = %v, want [B A]", got)
	}
}
