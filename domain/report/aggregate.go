package report

import (
	lo "github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
)

// MetricOrder returns the distinct metric names in first-appearance order.
// This is the canonical metric ordering for series, previews and selectors.
func MetricOrder(records []Record) []string {
	return lo.Uniq(lo.Map(records, func(r Record, _ int) string { return r.Metric }))
}

// Aggregate groups the records of each selected metric by weekday and sums
// the values. Series slots follow CanonicalWeek order; weekdays with no
// matching records are omitted, not zero-filled. A nil or empty selection
// means all metrics.
//
// Summation is a plain arithmetic sum, so shuffling the input records does
// not change any total beyond floating-point tolerance.
func Aggregate(records []Record, selected []string) []AggregateSeries {
	metrics := MetricOrder(records)
	if len(selected) > 0 {
		want := lo.SliceToMap(selected, func(m string) (string, bool) { return m, true })
		metrics = lo.Filter(metrics, func(m string, _ int) bool { return want[m] })
	}

	byMetric := lo.GroupBy(records, func(r Record) string { return r.Metric })

	series := make([]AggregateSeries, 0, len(metrics))
	for _, metric := range metrics {
		buckets := make(map[WeekdayLabel][]float64)
		for _, r := range byMetric[metric] {
			buckets[r.Weekday] = append(buckets[r.Weekday], r.Value)
		}

		s := AggregateSeries{Metric: metric}
		for _, wd := range CanonicalWeek {
			vals, ok := buckets[wd]
			if !ok {
				continue
			}
			s.Totals = append(s.Totals, WeekdayTotal{Weekday: wd, Total: floats.Sum(vals)})
		}
		series = append(series, s)
	}
	return series
}
