// internal/httpserver/server.go
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/M3lvz/toolsorter/internal/config"
	"github.com/M3lvz/toolsorter/internal/httpserver/deps"
	"github.com/M3lvz/toolsorter/internal/httpserver/mw"
	"github.com/M3lvz/toolsorter/internal/httpserver/routes"
	"github.com/M3lvz/toolsorter/internal/logger"
)

// Server owns the http.Server and the mounted router.
type Server struct {
	http   *http.Server
	logger logger.Logger
}

// New assembles the router: global middlewares first, then every
// registered route group.
func New(cfg *config.Config, log logger.Logger, d deps.Deps) *Server {
	r := chi.NewRouter()

	r.Use(middleware.GetHead)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute)) // enrichment-assisted adds wait on the model
	r.Use(mw.Log(log))

	routes.RegisterAll(r, d)

	return &Server{
		http: &http.Server{
			Addr:              cfg.ListenPort,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      3 * time.Minute, // must outlive the request timeout above
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
		logger: log,
	}
}

// Start blocks serving requests until a hard error or Stop.
func (s *Server) Start() error {
	s.logger.Infof("HTTP server listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests within the context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down...")
	return s.http.Shutdown(ctx)
}
