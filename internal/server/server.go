// Package server provides the HTTP server and routing for the dashboard.
package server

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aristath/qdilemma/internal/config"
	experimentshandlers "github.com/aristath/qdilemma/internal/modules/experiments/handlers"
	gamehandlers "github.com/aristath/qdilemma/internal/modules/game/handlers"
	"github.com/aristath/qdilemma/pkg/embedded"
)

// Config holds server configuration
type Config struct {
	Port                int
	Log                 zerolog.Logger
	Config              *config.Config
	DevMode             bool
	GameHandlers        *gamehandlers.Handler
	ExperimentsHandlers *experimentshandlers.Handler
	SystemHandlers      *SystemHandlers
}

// Server represents the HTTP server
type Server struct {
	router              *chi.Mux
	server              *http.Server
	log                 zerolog.Logger
	cfg                 *config.Config
	gameHandlers        *gamehandlers.Handler
	experimentsHandlers *experimentshandlers.Handler
	systemHandlers      *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:              chi.NewRouter(),
		log:                 cfg.Log.With().Str("component", "server").Logger(),
		cfg:                 cfg.Config,
		gameHandlers:        cfg.GameHandlers,
		experimentsHandlers: cfg.ExperimentsHandlers,
		systemHandlers:      cfg.SystemHandlers,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: s.router,
		// No blanket write timeout: the sweep WebSocket stream outlives any
		// per-request deadline.
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		s.gameHandlers.RegisterRoutes(r)
		s.experimentsHandlers.RegisterRoutes(r)
		s.systemHandlers.RegisterRoutes(r)
	})

	// Dashboard frontend, embedded in the binary
	s.router.Get("/", s.handleDashboard)
	s.router.Get("/static/*", s.handleStatic)
}

// handleHealth is a liveness probe
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleDashboard serves the dashboard HTML from the embedded filesystem
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	indexFile, err := embedded.Files.Open("frontend/index.html")
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to open embedded index.html")
		http.Error(w, "Frontend not available", http.StatusInternalServerError)
		return
	}
	defer indexFile.Close()

	data, err := io.ReadAll(indexFile)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to read embedded index.html")
		http.Error(w, "Frontend not available", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to write index.html response")
	}
}

// handleStatic serves the remaining embedded frontend assets
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	frontendFS, err := fs.Sub(embedded.Files, "frontend")
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to create frontend filesystem from embedded files")
		http.Error(w, "Frontend not available", http.StatusInternalServerError)
		return
	}
	http.StripPrefix("/static/", http.FileServer(http.FS(frontendFS))).ServeHTTP(w, r)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Router exposes the chi router for tests
func (s *Server) Router() http.Handler {
	return s.router
}
