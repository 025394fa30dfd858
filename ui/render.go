package ui

import (
	"bytes"
	"html/template"

	"fleetreport/app"
	"fleetreport/internal/errors"
)

// reportTemplate is parsed once; the static report is also produced by the
// CLI, which has no App instance.
var reportTemplate = template.Must(
	template.New("").Funcs(templateFuncs()).ParseFS(embeddedFiles, "templates/report.html"))

// reportView feeds the static report template.
type reportView struct {
	Result         *app.RunResult
	GeneratedLabel string
}

// RenderStaticReport renders the fully self-contained HTML report: KPI
// tiles, one chart per selected metric and the capped preview table, with
// all styling inlined. The document needs no further data access to render.
func RenderStaticReport(result *app.RunResult) ([]byte, error) {
	view := reportView{
		Result:         result,
		GeneratedLabel: result.Bundle.GeneratedAt.Format("02.01.2006 15:04"),
	}
	var buf bytes.Buffer
	if err := reportTemplate.ExecuteTemplate(&buf, "report.html", view); err != nil {
		return nil, errors.Wrap(err, "failed to render static report")
	}
	return buf.Bytes(), nil
}
