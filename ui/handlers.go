package ui

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"fleetreport/adapters/excel"
	"fleetreport/app"
	"fleetreport/domain/report"
	apperrors "fleetreport/internal/errors"
)

// indexView feeds the upload page.
type indexView struct {
	PDFAvailable bool
}

// dashboardView feeds the interactive result page.
type dashboardView struct {
	Result       *app.RunResult
	PDFAvailable bool
}

// errorView feeds the user-facing failure page.
type errorView struct {
	Title  string
	Detail string
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.render(w, "index.html", indexView{PDFAvailable: a.renderer.Available()})
}

// handleReport runs the pipeline and renders the interactive dashboard.
func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	result, ok := a.runFromRequest(w, r)
	if !ok {
		return
	}
	a.render(w, "dashboard.html", dashboardView{Result: result, PDFAvailable: a.renderer.Available()})
}

// handleReportHTML runs the pipeline and returns the self-contained HTML
// report as a download.
func (a *App) handleReportHTML(w http.ResponseWriter, r *http.Request) {
	result, ok := a.runFromRequest(w, r)
	if !ok {
		return
	}
	html, err := RenderStaticReport(result)
	if err != nil {
		a.renderFailure(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="fuhrpark_auswertung.html"`)
	w.Write(html)
}

// handleReportPDF runs the pipeline and converts the static report to PDF.
// A missing conversion engine is a capability gap with a visible notice,
// never a failure of the run itself.
func (a *App) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	if !a.renderer.Available() {
		if a.metrics != nil {
			a.metrics.RecordPDFExport("unavailable")
		}
		a.renderError(w, http.StatusServiceUnavailable,
			"PDF-Export deaktiviert",
			"Auf diesem Server ist kein HTML-zu-PDF-Konverter installiert. Der HTML-Report steht weiterhin zur Verfügung.")
		return
	}

	result, ok := a.runFromRequest(w, r)
	if !ok {
		return
	}
	html, err := RenderStaticReport(result)
	if err != nil {
		a.renderFailure(w, err)
		return
	}
	pdfBytes, err := a.renderer.Render(r.Context(), html)
	if err != nil {
		if a.metrics != nil {
			a.metrics.RecordPDFExport("error")
		}
		log.Printf("[handleReportPDF] FAILED run=%s: %v", result.RunID, err)
		a.renderError(w, http.StatusInternalServerError,
			"PDF-Erstellung fehlgeschlagen",
			"Die Auswertung war erfolgreich, aber die PDF-Konvertierung ist fehlgeschlagen. Bitte den HTML-Report verwenden.")
		return
	}
	if a.metrics != nil {
		a.metrics.RecordPDFExport("ok")
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="fuhrpark_auswertung.pdf"`)
	w.Write(pdfBytes)
}

func (a *App) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

// runFromRequest parses the multipart upload, runs the pipeline and renders
// the failure page itself when anything goes wrong. The uploaded file lives
// in a temp file only for the duration of the request.
func (a *App) runFromRequest(w http.ResponseWriter, r *http.Request) (*app.RunResult, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, a.maxUpload)

	file, header, err := r.FormFile("dataset")
	if err != nil {
		log.Printf("[runFromRequest] FAILED - no file uploaded: %v", err)
		a.renderError(w, http.StatusBadRequest, "Keine Datei hochgeladen",
			"Bitte eine Excel- (.xlsx) oder CSV-Datei auswählen.")
		return nil, false
	}
	defer file.Close()

	if !validUploadName(header.Filename) {
		log.Printf("[runFromRequest] FAILED - invalid file extension: %s", header.Filename)
		a.renderError(w, http.StatusBadRequest, "Dateityp nicht unterstützt",
			"Es werden nur Excel- (.xlsx) und CSV-Dateien (.csv) unterstützt.")
		return nil, false
	}

	tmpPath, err := saveUpload(file, header.Filename)
	if err != nil {
		log.Printf("[runFromRequest] FAILED - could not store upload: %v", err)
		a.renderError(w, http.StatusInternalServerError, "Upload fehlgeschlagen",
			"Die Datei konnte nicht verarbeitet werden.")
		return nil, false
	}
	defer os.Remove(tmpPath)

	if a.metrics != nil {
		a.metrics.UploadsTotal.Inc()
	}

	opts := app.RunOptions{
		Sheet:   r.FormValue("sheet"),
		Metrics: r.Form["metric"],
	}

	result, err := a.service.Run(excel.NewDataReader(tmpPath, header.Filename), opts)
	if err != nil {
		a.renderFailure(w, err)
		return nil, false
	}
	return result, true
}

func validUploadName(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".csv")
}

func saveUpload(file io.Reader, filename string) (string, error) {
	tmp, err := os.CreateTemp("", "fleetreport-*"+filepath.Ext(filename))
	if err != nil {
		return "", err
	}
	defer tmp.Close()
	if _, err := io.Copy(tmp, file); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

// renderFailure maps pipeline errors onto the user-facing taxonomy.
func (a *App) renderFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, report.ErrNoMetrics):
		a.renderError(w, http.StatusUnprocessableEntity,
			"Keine Auswertungsarten gefunden",
			"In Zeile 2 wurden keine Spaltenüberschriften rechts der Datumsspalte gefunden. Bitte das Dateiformat prüfen.")
	case errors.Is(err, report.ErrEmptyResult):
		a.renderError(w, http.StatusUnprocessableEntity,
			"Keine auswertbaren Daten",
			"Die Datei enthält Auswertungsarten, aber keine einzige numerische Messung mit gültigem Datum.")
	case errors.Is(err, report.ErrInvalidLayout):
		a.renderError(w, http.StatusInternalServerError,
			"Ungültige Konfiguration",
			"Die konfigurierten Tabellenpositionen sind widersprüchlich.")
	default:
		log.Printf("[renderFailure] code=%s: %v", apperrors.GetCode(err), err)
		a.renderError(w, http.StatusInternalServerError,
			"Auswertung fehlgeschlagen",
			"Die Datei konnte nicht ausgewertet werden. Bitte das Format prüfen.")
	}
}

func (a *App) renderError(w http.ResponseWriter, status int, title, detail string) {
	w.WriteHeader(status)
	a.render(w, "error.html", errorView{Title: title, Detail: detail})
}

func (a *App) render(w http.ResponseWriter, name string, data interface{}) {
	if err := a.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("[render] FAILED template=%s: %v", name, err)
		http.Error(w, fmt.Sprintf("template error: %v", err), http.StatusInternalServerError)
	}
}
