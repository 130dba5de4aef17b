// Package api implements the collagely HTTP API.
//
// The API exposes the collage pipeline over HTTP:
//
//	GET  /healthz    liveness probe
//	POST /v1/layout  solve slot geometry, returns layout JSON
//	POST /v1/ring    solve ring-mode geometry, returns layout JSON
//	POST /v1/render  render a collage, returns the encoded artifact
//
// Request bodies are pipeline.Options encoded as JSON. Every response
// carries an X-Request-ID header for correlation; errors are returned as
// a JSON envelope with a machine-readable code.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/collagely/collagely/pkg/pipeline"
)

const (
	// readTimeout bounds how long a client may take to send a request.
	readTimeout = 30 * time.Second

	// writeTimeout bounds a full render at print resolution.
	writeTimeout = 5 * time.Minute

	// shutdownTimeout bounds graceful shutdown after cancellation.
	shutdownTimeout = 10 * time.Second

	// maxRequestBody limits request bodies; options are small JSON documents.
	maxRequestBody = 1 << 20
)

// Server wires the pipeline runner to HTTP handlers.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// NewServer creates a server around the given runner.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// Router returns the HTTP handler, for mounting or testing.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/ring", s.handleRing)
		r.Post("/render", s.handleRender)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. It returns ctx.Err() after a cancellation-driven shutdown.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}
