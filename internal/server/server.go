package server

import (
	"context"
	"net/http"
	"time"

	"nutrigo/internal/handlers"
	applog "nutrigo/internal/log"
	"nutrigo/internal/nutrition"
	"nutrigo/internal/vision"
)

// Config captures the runtime configuration for the HTTP server. Resolver,
// Analyzer and AnalysisCache are optional; leaving one nil disables the
// endpoints that depend on it.
type Config struct {
	Addr          string
	Resolver      *nutrition.Resolver
	Analyzer      handlers.MealAnalyzer
	AnalysisCache *vision.AnalysisCache
}

// Server wraps an http.Server and exposes helpers for bootstrapping a
// production-ready web service.
type Server struct {
	config     Config
	httpServer *http.Server
}

// New builds a new Server using the provided configuration.
func New(cfg Config) (*Server, error) {
	applog.Debug(context.Background(), "initializing server",
		"addr", cfg.Addr,
		"resolver", cfg.Resolver != nil,
		"analyzer", cfg.Analyzer != nil,
	)

	handlers.Configure(cfg.Resolver, cfg.Analyzer, cfg.AnalysisCache)

	applog.Debug(context.Background(), "handler dependencies configured")

	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           newRouter(),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Start begins serving HTTP traffic using the underlying http.Server.
func (s *Server) Start() error {
	applog.Debug(context.Background(), "server starting listener", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server with a timeout.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	applog.Debug(ctx, "server initiating graceful shutdown")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
