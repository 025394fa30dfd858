package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fleetreport/app"
	"fleetreport/internal/metrics"
	"fleetreport/ports"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App represents the UI application
type App struct {
	router    *chi.Mux
	service   *app.ReportService
	renderer  ports.DocumentRenderer
	metrics   *metrics.Collector
	templates *template.Template
	maxUpload int64
}

// Config holds UI application configuration
type Config struct {
	Service        *app.ReportService
	Renderer       ports.DocumentRenderer
	Metrics        *metrics.Collector
	MaxUploadBytes int64
}

// NewApp creates a new UI application
func NewApp(config Config) (*App, error) {
	templates, err := template.New("").Funcs(templateFuncs()).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		service:   config.Service,
		renderer:  config.Renderer,
		metrics:   config.Metrics,
		templates: templates,
		maxUpload: config.MaxUploadBytes,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// templateFuncs are shared by the dashboard views and the static report.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"num": func(v float64) string {
			s := strconv.FormatFloat(v, 'f', 2, 64)
			s = trimRightZeros(s)
			return s
		},
		"pct": func(part, max float64) float64 {
			if max <= 0 {
				return 0
			}
			return part / max * 100
		},
		"add": func(a, b int) int { return a + b },
	}
}

func trimRightZeros(s string) string {
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
	if a.metrics != nil {
		a.router.Use(a.requestMetrics)
	}

	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", staticFS)
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Post("/report", a.handleReport)
	a.router.Post("/report/html", a.handleReportHTML)
	a.router.Post("/report/pdf", a.handleReportPDF)
	a.router.Get("/healthz", a.handleHealthz)
	a.router.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// requestMetrics records request counts and durations per path.
func (a *App) requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		a.metrics.HTTPRequestDuration.WithLabelValues(r.URL.Path).Observe(time.Since(start).Seconds())
		a.metrics.RecordHTTPRequest(r.URL.Path, r.Method, strconv.Itoa(ww.Status()))
	})
}

// Router exposes the configured chi router.
func (a *App) Router() http.Handler {
	return a.router
}
