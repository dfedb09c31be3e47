// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api exposes the workspace over a local HTTP API for the browser
// frontend. The server is single-user: it serves one profile and holds the
// profile lock for the lifetime of the process.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pdiddy/outline-engine/internal/ocr"
	"github.com/pdiddy/outline-engine/internal/workspace"
	"github.com/pdiddy/outline-engine/pkg/types"
)

// Server is the HTTP API server for outline-engine.
type Server struct {
	router       chi.Router
	ws           *workspace.Workspace
	gateway      *ocr.Gateway
	log          *slog.Logger
	cfg          types.ServerConfig
	defaultStyle types.Style
}

// NewServer creates and configures the HTTP server. gateway may be nil
// when no OCR endpoint is configured; the extract route then reports an
// extraction failure.
func NewServer(ws *workspace.Workspace, gateway *ocr.Gateway, log *slog.Logger, cfg types.ServerConfig, defaultStyle types.Style) *Server {
	if log == nil {
		log = slog.Default()
	}
	if defaultStyle == "" {
		defaultStyle = types.StyleTurabian
	}
	s := &Server{
		ws:           ws,
		gateway:      gateway,
		log:          log,
		cfg:          cfg,
		defaultStyle: defaultStyle,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints (auth is a no-op when no key is configured).
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Get("/api/status", s.handleStatus)

		r.Get("/api/thesis", s.handleGetThesis)
		r.Put("/api/thesis", s.handlePutThesis)

		r.Get("/api/outline", s.handleGetOutline)
		r.Post("/api/outline/points", s.handleAddPoint)
		r.Delete("/api/outline/points/{pointID}", s.handleDeletePoint)
		r.Post("/api/outline/move", s.handleMovePoint)

		r.Get("/api/research", s.handleListResearch)
		r.Post("/api/research", s.handleAddResearch)
		r.Delete("/api/research/{entryID}", s.handleRemoveResearch)

		r.Post("/api/citation/preview", s.handleCitationPreview)

		r.Post("/api/autocomplete/match", s.handleAutocompleteMatch)
		r.Post("/api/autocomplete/complete", s.handleAutocompleteComplete)

		r.Get("/api/export", s.handleExportDocument)
		r.Get("/api/export/bibtex", s.handleExportBibTeX)
		r.Get("/api/export/csl", s.handleExportCSL)

		r.Post("/api/ocr/extract", s.handleOCRExtract)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
