// Package server implements the sardine HTTP API.
//
// # Routes
//
//	GET    /healthz                 liveness and build version
//	POST   /v1/validate             check a site without solving it
//	POST   /v1/solve                solve a site and store the lot
//	GET    /v1/lots                 list stored lots, newest first
//	GET    /v1/lots/{id}            fetch a stored lot document
//	GET    /v1/lots/{id}/render     draw a stored lot
//	DELETE /v1/lots/{id}            delete a stored lot
//
// Request bodies are site documents as read by package io. Errors are
// returned as {"error": {"code": ..., "message": ...}} with a status
// derived from the error code: invalid input maps to 422, missing lots to
// 404.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/sardine/pkg/lot"
	"github.com/matzehuels/sardine/pkg/pipeline"
	"github.com/matzehuels/sardine/pkg/store"
)

// DefaultMaxBodyBytes caps request bodies when Config.MaxBodyBytes is zero.
const DefaultMaxBodyBytes = 4 << 20

// shutdownTimeout bounds graceful shutdown in ListenAndServe.
const shutdownTimeout = 10 * time.Second

// Config configures a Server.
type Config struct {
	// Runner solves and renders. Required.
	Runner *pipeline.Runner
	// Store keeps solved lots. Nil uses an in-memory store.
	Store store.Store
	// Settings are the base a site's settings block is applied to. The
	// zero value means the defaults.
	Settings     lot.Settings
	Logger       *log.Logger
	MaxBodyBytes int64
}

// Server serves the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	store    store.Store
	settings lot.Settings
	logger   *log.Logger
	maxBody  int64
	router   chi.Router
}

// New creates a Server from cfg.
func New(cfg Config) *Server {
	s := &Server{
		runner:   cfg.Runner,
		store:    cfg.Store,
		settings: cfg.Settings,
		logger:   cfg.Logger,
		maxBody:  cfg.MaxBodyBytes,
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if s.store == nil {
		s.store = store.NewMemoryStore()
	}
	if s.settings == (lot.Settings{}) {
		s.settings = lot.DefaultSettings()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodyBytes
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Post("/solve", s.handleSolve)

		r.Route("/lots", func(r chi.Router) {
			r.Get("/", s.handleListLots)
			r.Get("/{id}", s.handleGetLot)
			r.Get("/{id}/render", s.handleRenderLot)
			r.Delete("/{id}", s.handleDeleteLot)
		})
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
