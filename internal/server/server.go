// Package server provides the HTTP API and the built-in chat page.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/studyhall/kyoshi/internal/assistant"
	"github.com/studyhall/kyoshi/internal/config"
	"github.com/studyhall/kyoshi/internal/digest"
)

// Server is the HTTP server for the teaching-assistant API.
type Server struct {
	dispatcher *assistant.Dispatcher
	digest     *digest.Handle
	config     *config.ServerConfig
	logger     *zap.Logger
	server     *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	dispatcher *assistant.Dispatcher,
	h *digest.Handle,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		dispatcher: dispatcher,
		digest:     h,
		config:     cfg,
		logger:     logger,
	}
}

// routes builds the router. Split out so handler tests can mount it without
// binding a port.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// Generation calls dominate request time; the budget must exceed the
	// per-call generation timeout.
	r.Use(middleware.Timeout(5 * time.Minute))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/ask", s.handleAsk)
	r.Get("/api/v1/history/{session}", s.handleGetHistory)
	r.Delete("/api/v1/history/{session}", s.handleClearHistory)
	r.Get("/api/v1/digest", s.handleDigest)
	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleIndex)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.routes(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
