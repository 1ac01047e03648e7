package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"heredity/app"
	"heredity/domain/core"
	"heredity/internal"
	"heredity/internal/report"
	"heredity/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates/*
var embeddedFiles embed.FS

// App represents the UI application
type App struct {
	router    *chi.Mux
	service   *app.InferenceService
	templates *template.Template
	logger    *internal.Logger
}

// NewApp creates the UI application. api, when non-nil, is mounted under /api.
func NewApp(service *app.InferenceService, api http.Handler, logger *internal.Logger) (*App, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	funcMap := template.FuncMap{
		"short": func(h core.Hash) string { return h.Short() },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		service:   service,
		templates: templates,
		logger:    logger.With("ui"),
	}

	a.setupMiddleware()
	a.setupRoutes(api)

	return a, nil
}

// ServeHTTP makes App an http.Handler
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
}

func (a *App) setupRoutes(api http.Handler) {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/healthz", a.handleHealth)
	a.router.Get("/runs/{id}", a.handleRun)

	if api != nil {
		a.router.Mount("/api", api)
	}
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	runs, err := a.service.ListRuns(r.Context(), 50)
	if err != nil {
		a.logger.Error("failed to list runs: %v", err)
		http.Error(w, "failed to list runs", http.StatusInternalServerError)
		return
	}

	data := struct {
		Runs []*models.RunListItem
	}{Runs: runs}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		a.logger.Error("failed to render index: %v", err)
	}
}

func (a *App) handleRun(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	run, err := a.service.GetRun(r.Context(), id)
	if core.IsNotFoundError(err) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		a.logger.Error("failed to load run %s: %v", id, err)
		http.Error(w, "failed to load run", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(report.HTML(run))
}
