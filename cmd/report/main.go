package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"fleetreport/adapters/excel"
	"fleetreport/adapters/pdf"
	"fleetreport/app"
	"fleetreport/internal/config"
	"fleetreport/ui"
)

// metricList collects repeated -metric flags.
type metricList []string

func (m *metricList) String() string { return strings.Join(*m, ",") }

func (m *metricList) Set(v string) error {
	if v = strings.TrimSpace(v); v != "" {
		*m = append(*m, v)
	}
	return nil
}

// One-shot report generation: spreadsheet in, self-contained HTML (and
// optionally PDF) out. Shares the pipeline and renderer with the web UI.
//
// Usage:
//
//	report -in kennzahlen.xlsx [-sheet Tabelle1] [-out report.html] [-pdf report.pdf] [-metric Strecke -metric Standzeit]
func main() {
	in := flag.String("in", "", "input spreadsheet (.xlsx or .csv)")
	sheet := flag.String("sheet", "", "worksheet name (default: first sheet)")
	out := flag.String("out", "fuhrpark_auswertung.html", "output HTML file")
	pdfOut := flag.String("pdf", "", "optional output PDF file")
	var selected metricList
	flag.Var(&selected, "metric", "restrict charts to this metric (repeatable)")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: report -in <file.xlsx> [-sheet <name>] [-out <report.html>] [-pdf <report.pdf>] [-metric <name> ...]")
		os.Exit(2)
	}

	if err := godotenv.Load(); err == nil {
		log.Printf("[report] loaded .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[report] configuration error: %v", err)
	}

	service := app.NewReportService(cfg.Layout, nil)
	result, err := service.Run(excel.NewDataReader(*in, ""), app.RunOptions{
		Sheet:   *sheet,
		Metrics: selected,
	})
	if err != nil {
		log.Fatalf("[report] FAILED: %v", err)
	}

	html, err := ui.RenderStaticReport(result)
	if err != nil {
		log.Fatalf("[report] render failed: %v", err)
	}
	if err := os.WriteFile(*out, html, 0o644); err != nil {
		log.Fatalf("[report] failed to write %s: %v", *out, err)
	}
	log.Printf("[report] wrote %s (run=%s, %d records)", *out, result.RunID, result.Bundle.TotalRecords)

	if *pdfOut == "" {
		return
	}

	renderer := pdf.NewRenderer(cfg.Renderer.Binary)
	if !renderer.Available() {
		// Missing converter disables only the PDF artifact, never the run.
		log.Printf("[report] PDF export skipped: %s not installed", cfg.Renderer.Binary)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	pdfBytes, err := renderer.Render(ctx, html)
	if err != nil {
		log.Fatalf("[report] PDF conversion failed: %v", err)
	}
	if err := os.WriteFile(*pdfOut, pdfBytes, 0o644); err != nil {
		log.Fatalf("[report] failed to write %s: %v", *pdfOut, err)
	}
	log.Printf("[report] wrote %s", *pdfOut)
}
