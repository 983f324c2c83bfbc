// Package server serves the dashboard page and its JSON endpoints.
package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"

	"github.com/penwyp/go-project-panel/internal/analyzer"
	"github.com/penwyp/go-project-panel/internal/data/cache"
	"github.com/penwyp/go-project-panel/internal/data/watcher"
	"github.com/penwyp/go-project-panel/internal/presentation/chart"
	"github.com/penwyp/go-project-panel/internal/util"
)

//go:embed templates/*.html
var templateFS embed.FS

const shutdownTimeout = 5 * time.Second

// Server represents the HTTP server
type Server struct {
	*http.Server
	router   chi.Router
	file     string
	datasets *cache.DatasetCache
	pipeline *analyzer.Pipeline
	page     *template.Template
	svg      chart.SVGConfig
}

// NewServer wires the routes for the spreadsheet at file
func NewServer(addr, file string, pipeline *analyzer.Pipeline, datasets *cache.DatasetCache) (*Server, error) {
	page, err := template.New("index.html").Funcs(template.FuncMap{
		"number": util.FormatNumber,
	}).ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse page template")
	}

	router := chi.NewRouter()
	s := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:   router,
		file:     file,
		datasets: datasets,
		pipeline: pipeline,
		page:     page,
		svg:      chart.DefaultSVGConfig(),
	}

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware())
	router.Use(middleware.Recoverer)

	router.Get("/health", handleHealth)
	router.Get("/", s.handleIndex)
	router.Get("/chart.svg", s.handleChartSVG)

	router.Route("/api", func(r chi.Router) {
		r.Get("/projects", s.handleProjects)
		r.Get("/kpis", s.handleKPIs)
		r.Get("/options", s.handleOptions)
		r.Get("/chart", s.handleChart)
	})

	return s, nil
}

// Watch invalidates the dataset cache whenever the spreadsheet changes, until
// ctx is cancelled.
func (s *Server) Watch(ctx context.Context) error {
	fw, err := watcher.NewFileWatcher(s.file)
	if err != nil {
		return err
	}
	go func() {
		defer fw.Close()
		fw.Run(ctx, func(watcher.FileEvent) {
			s.datasets.Invalidate(s.file)
		})
	}()
	util.LogInfo("Watching spreadsheet", util.F("path", s.file))
	return nil
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		util.LogInfo("HTTP server listening", util.F("addr", s.Addr))
		errCh <- s.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return goerr.Wrap(err, "HTTP server failed", goerr.V("addr", s.Addr))
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		util.LogInfo("Shutting down HTTP server")
		return s.Shutdown(shutdownCtx)
	}
}
