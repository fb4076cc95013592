// Package ui serves the rendered report of a completed run over HTTP.
package ui

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fraudreport/internal"
	"fraudreport/internal/report"
)

// App is the report viewer.
type App struct {
	router *chi.Mux
	report *report.Report
	log    *internal.Logger
}

// NewApp builds the viewer around a completed run's report.
func NewApp(r *report.Report) *App {
	app := &App{
		router: chi.NewRouter(),
		report: r,
		log:    internal.DefaultLogger,
	}
	app.setupMiddleware()
	app.setupRoutes()
	return app
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Get("/", a.handleReport)
	a.router.Get("/api/report", a.handleReportJSON)
	a.router.Get("/api/manifest", a.handleManifest)
}

// Serve blocks listening on the given port.
func (a *App) Serve(port int) error {
	addr := fmt.Sprintf(":%d", port)
	a.log.Info("report viewer listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(a.report.RenderHTML())
}

func (a *App) handleReportJSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, a.report)
}

func (a *App) handleManifest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, a.report.Manifest)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
