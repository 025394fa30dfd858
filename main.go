package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"fleetreport/adapters/pdf"
	"fleetreport/app"
	"fleetreport/internal/config"
	"fleetreport/internal/metrics"
	"fleetreport/ui"
)

func main() {
	// Load .env file if present (optional in production)
	if err := godotenv.Load(); err != nil {
		log.Printf("[main] no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] configuration error: %v", err)
	}

	collector := metrics.NewCollector("fleetreport")
	renderer := pdf.NewRenderer(cfg.Renderer.Binary)
	service := app.NewReportService(cfg.Layout, collector)

	uiApp, err := ui.NewApp(ui.Config{
		Service:        service,
		Renderer:       renderer,
		Metrics:        collector,
		MaxUploadBytes: cfg.Upload.MaxBytes,
	})
	if err != nil {
		log.Fatalf("[main] failed to initialize UI: %v", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           uiApp.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("[main] listening on %s (pdf export: %v)", server.Addr, renderer.Available())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Printf("[main] shutting down")
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("[main] server error: %v", err)
	}
}
