package report

import (
	"sort"
	"time"
)

// AssembleBundle packages the computed pieces into the render-ready bundle.
// Pure packaging: the only work beyond copying is ordering the preview
// (metric first-appearance, then ascending date) and truncating it to
// PreviewLimit rows. Calling it twice with identical inputs yields identical
// bundles.
func AssembleBundle(kpis KPISummary, series []AggregateSeries, records []Record, selected []string, generatedAt time.Time) ReportBundle {
	order := MetricOrder(records)
	rank := make(map[string]int, len(order))
	for i, m := range order {
		rank[m] = i
	}

	preview := make([]Record, len(records))
	copy(preview, records)
	sort.SliceStable(preview, func(i, j int) bool {
		if rank[preview[i].Metric] != rank[preview[j].Metric] {
			return rank[preview[i].Metric] < rank[preview[j].Metric]
		}
		return preview[i].Date.Before(preview[j].Date)
	})

	truncated := false
	if len(preview) > PreviewLimit {
		preview = preview[:PreviewLimit]
		truncated = true
	}

	if len(selected) == 0 {
		selected = order
	}

	return ReportBundle{
		KPIs:             kpis,
		Series:           series,
		SelectedMetrics:  selected,
		Preview:          preview,
		PreviewTruncated: truncated,
		TotalRecords:     len(records),
		GeneratedAt:      generatedAt,
	}
}
