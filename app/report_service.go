package app

import (
	"log"
	"time"

	lo "github.com/samber/lo"

	"fleetreport/domain/core"
	"fleetreport/domain/report"
	"fleetreport/internal/errors"
	"fleetreport/internal/metrics"
	"fleetreport/ports"
)

// ReportService runs the full reshape-and-aggregate pipeline over one
// spreadsheet source. Every run is independent: nothing is retained between
// invocations, a run either yields a complete bundle or fails outright.
type ReportService struct {
	layout  report.Layout
	metrics *metrics.Collector
}

// NewReportService creates a report service for the given grid layout.
// The metrics collector may be nil (CLI use).
func NewReportService(layout report.Layout, collector *metrics.Collector) *ReportService {
	return &ReportService{layout: layout, metrics: collector}
}

// RunOptions selects the worksheet and restricts which metrics appear in
// charts and exports. KPIs always cover the full record set regardless of
// the selection.
type RunOptions struct {
	Sheet   string
	Metrics []string
}

// RunResult is the outcome of one pipeline run.
type RunResult struct {
	RunID            core.RunID
	Source           string
	Sheet            string
	AvailableMetrics []string
	Bundle           report.ReportBundle
}

// Run executes Loader → Extractor → Normalizer → Builder → (Aggregator,
// Summary) → Assembler as one atomic batch.
func (s *ReportService) Run(src ports.GridSource, opts RunOptions) (*RunResult, error) {
	runID := core.NewRunID()
	started := time.Now()

	result, err := s.run(runID, src, opts)
	if err != nil {
		log.Printf("[ReportService] FAILED run=%s code=%s: %v", runID, errors.GetCode(err), err)
		s.recordRun("error", 0, started)
		return nil, err
	}

	s.recordRun("ok", result.Bundle.TotalRecords, started)
	log.Printf("[ReportService] run=%s source=%s metrics=%d records=%d duration=%.2fms",
		runID, result.Source, len(result.AvailableMetrics), result.Bundle.TotalRecords,
		float64(time.Since(started).Nanoseconds())/1e6)
	return result, nil
}

func (s *ReportService) run(runID core.RunID, src ports.GridSource, opts RunOptions) (*RunResult, error) {
	grid, err := src.ReadGrid(opts.Sheet)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read spreadsheet")
	}

	cols, err := report.ExtractMetricColumns(grid, s.layout)
	if err != nil {
		return nil, errors.WithCode(errors.CodeNoMetricColumns, err)
	}

	dateRows := report.NormalizeDates(grid, s.layout)
	log.Printf("[ReportService] run=%s rows=%d dated=%d metricCols=%d", runID, grid.Rows(), len(dateRows), len(cols))

	records, err := report.BuildRecords(grid, dateRows, cols)
	if err != nil {
		return nil, errors.WithCode(errors.CodeEmptyResult, err)
	}

	available := lo.Map(cols, func(c report.MetricColumn, _ int) string { return c.Name })
	selected := sanitizeSelection(opts.Metrics, available)

	series := report.Aggregate(records, selected)
	kpis, err := report.ComputeKPIs(records)
	if err != nil {
		return nil, errors.Wrap(err, "kpi computation failed")
	}

	bundle := report.AssembleBundle(kpis, series, records, selected, time.Now())

	return &RunResult{
		RunID:            runID,
		Source:           grid.Source,
		Sheet:            grid.Sheet,
		AvailableMetrics: available,
		Bundle:           bundle,
	}, nil
}

// sanitizeSelection keeps only selections that actually exist as detected
// metrics, preserving detection order. An empty or fully-unknown selection
// falls back to all metrics.
func sanitizeSelection(requested, available []string) []string {
	if len(requested) == 0 {
		return nil
	}
	want := lo.SliceToMap(requested, func(m string) (string, bool) { return m, true })
	kept := lo.Filter(available, func(m string, _ int) bool { return want[m] })
	if len(kept) == 0 {
		return nil
	}
	return kept
}

func (s *ReportService) recordRun(outcome string, records int, started time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordRun(outcome, records, time.Since(started))
}
