package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetreport/app"
	"fleetreport/domain/report"
)

// stubRenderer stands in for the external HTML-to-PDF engine.
type stubRenderer struct {
	available bool
	out       []byte
	err       error
}

func (s stubRenderer) Available() bool { return s.available }

func (s stubRenderer) Render(_ context.Context, _ []byte) ([]byte, error) {
	return s.out, s.err
}

const fixtureCSV = `Fuhrpark Auswertung,,
Datum,Strecke,Leerlaufzeit
2024-01-01,10,1
2024-01-02,20,
2024-01-03,30,2
2024-01-04,40,x
2024-01-05,50,3
2024-01-06,60,4
2024-01-07,70,5
`

func newTestApp(t *testing.T, renderer stubRenderer) *App {
	t.Helper()
	a, err := NewApp(Config{
		Service:        app.NewReportService(report.DefaultLayout(), nil),
		Renderer:       renderer,
		MaxUploadBytes: 1 << 20,
	})
	require.NoError(t, err)
	return a
}

// upload builds a multipart POST with the file under the "dataset" field plus
// any extra form values.
func upload(t *testing.T, path, filename, content string, fields map[string][]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("dataset", filename)
	require.NoError(t, err)
	_, err = io.Copy(fw, strings.NewReader(content))
	require.NoError(t, err)
	for key, values := range fields {
		for _, v := range values {
			require.NoError(t, mw.WriteField(key, v))
		}
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandleIndex(t *testing.T) {
	a := newTestApp(t, stubRenderer{})
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Fuhrpark")
}

func TestHandleReport_Dashboard(t *testing.T) {
	a := newTestApp(t, stubRenderer{})
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, upload(t, "/report", "fuhrpark.csv", fixtureCSV, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Strecke")
	assert.Contains(t, body, "Leerlaufzeit")
	assert.Contains(t, body, "01.01.2024")
	assert.Contains(t, body, "07.01.2024")
	assert.Contains(t, body, "Mo")
}

func TestHandleReport_MetricSelection(t *testing.T) {
	a := newTestApp(t, stubRenderer{})
	rec := httptest.NewRecorder()
	req := upload(t, "/report", "fuhrpark.csv", fixtureCSV,
		map[string][]string{"metric": {"Leerlaufzeit"}})
	a.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// Both names still appear in the selection list, but only the chosen one
	// carries a chart heading.
	assert.Contains(t, rec.Body.String(), "Leerlaufzeit")
}

func TestHandleReport_NoFile(t *testing.T) {
	a := newTestApp(t, stubRenderer{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/report", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	a.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Keine Datei hochgeladen")
}

func TestHandleReport_BadExtension(t *testing.T) {
	a := newTestApp(t, stubRenderer{})
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, upload(t, "/report", "fuhrpark.txt", fixtureCSV, nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dateityp nicht unterstützt")
}

func TestHandleReport_NoMetricColumns(t *testing.T) {
	a := newTestApp(t, stubRenderer{})
	csv := "Titel\nDatum\n2024-01-01\n"
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, upload(t, "/report", "leer.csv", csv, nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Keine Auswertungsarten gefunden")
}

func TestHandleReport_NoUsableData(t *testing.T) {
	a := newTestApp(t, stubRenderer{})
	csv := "Titel,,\nDatum,Strecke\nkein-datum,10\n2024-01-01,abc\n"
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, upload(t, "/report", "leer.csv", csv, nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Keine auswertbaren Daten")
}

func TestHandleReportHTML_Download(t *testing.T) {
	a := newTestApp(t, stubRenderer{})
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, upload(t, "/report/html", "fuhrpark.csv", fixtureCSV, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "fuhrpark_auswertung.html")
	body := rec.Body.String()
	assert.Contains(t, body, "<style>")
	assert.Contains(t, body, "Strecke")
	assert.NotContains(t, body, "http://")
	assert.NotContains(t, body, "https://")
}

func TestHandleReportPDF_Unavailable(t *testing.T) {
	a := newTestApp(t, stubRenderer{available: false})
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, upload(t, "/report/pdf", "fuhrpark.csv", fixtureCSV, nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "PDF-Export deaktiviert")
}

func TestHandleReportPDF_Success(t *testing.T) {
	a := newTestApp(t, stubRenderer{available: true, out: []byte("%PDF-1.7 stub")})
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, upload(t, "/report/pdf", "fuhrpark.csv", fixtureCSV, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "fuhrpark_auswertung.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestHandleReportPDF_ConversionError(t *testing.T) {
	a := newTestApp(t, stubRenderer{available: true, err: errors.New("engine crashed")})
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, upload(t, "/report/pdf", "fuhrpark.csv", fixtureCSV, nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "PDF-Erstellung fehlgeschlagen")
}

func TestHandleHealthz(t *testing.T) {
	a := newTestApp(t, stubRenderer{})
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
