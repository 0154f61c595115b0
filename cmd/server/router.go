package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lifeops/lifeops-api/internal/api"
	apiMiddleware "github.com/lifeops/lifeops-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	analysisHandler := api.NewAnalysisHandler(app.generator, app.reports, app.logger,
		api.WithConcurrentAnalysis())
	reportHandler := api.NewReportHandler(app.reports, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/analysis", analysisHandler.Analyze)
		r.Get("/reports/{id}", reportHandler.GetReport)
		r.Get("/reports/{id}/export", reportHandler.ExportReport)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
