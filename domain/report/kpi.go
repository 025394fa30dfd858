package report

import (
	"fmt"

	"github.com/montanaflynn/stats"
	lo "github.com/samber/lo"
)

// ComputeKPIs derives the headline figures from the FULL record set. It is
// always fed the unfiltered records so that metric selection in the UI never
// shifts the reported date range or counts.
//
// An empty record set is a precondition violation here; BuildRecords already
// guarantees non-emptiness upstream via ErrEmptyResult.
func ComputeKPIs(records []Record) (KPISummary, error) {
	if len(records) == 0 {
		return KPISummary{}, fmt.Errorf("kpi computation requires a non-empty record set: %w", ErrEmptyResult)
	}

	k := KPISummary{
		RangeStart:  records[0].Date,
		RangeEnd:    records[0].Date,
		RecordCount: len(records),
	}
	for _, r := range records {
		if r.Date.Before(k.RangeStart) {
			k.RangeStart = r.Date
		}
		if r.Date.After(k.RangeEnd) {
			k.RangeEnd = r.Date
		}
	}

	byMetric := lo.GroupBy(records, func(r Record) string { return r.Metric })
	order := MetricOrder(records)
	k.MetricCount = len(order)

	for _, metric := range order {
		values := lo.Map(byMetric[metric], func(r Record, _ int) float64 { return r.Value })
		ms, err := describeMetric(metric, values)
		if err != nil {
			return KPISummary{}, err
		}
		k.PerMetric = append(k.PerMetric, ms)
	}

	return k, nil
}

func describeMetric(metric string, values []float64) (MetricStats, error) {
	data := stats.Float64Data(values)
	mean, err := stats.Mean(data)
	if err != nil {
		return MetricStats{}, fmt.Errorf("mean for %s: %w", metric, err)
	}
	median, err := stats.Median(data)
	if err != nil {
		return MetricStats{}, fmt.Errorf("median for %s: %w", metric, err)
	}
	min, err := stats.Min(data)
	if err != nil {
		return MetricStats{}, fmt.Errorf("min for %s: %w", metric, err)
	}
	max, err := stats.Max(data)
	if err != nil {
		return MetricStats{}, fmt.Errorf("max for %s: %w", metric, err)
	}
	return MetricStats{
		Metric: metric,
		Count:  len(values),
		Mean:   mean,
		Median: median,
		Min:    min,
		Max:    max,
	}, nil
}
