// Package api serves universal cycles over HTTP.
//
// Routes:
//
//	GET  /healthz
//	GET  /v1/cycles/{n}                  cycle of order n (JSON document, or text with ?format=text)
//	GET  /v1/cycles/{n}/symbols/{i}      one symbol and its window, without building the cycle
//	POST /v1/verify                      {"n", "strategy", "symbols"} -> verification report
//	POST /v1/rank                        {"permutation"} -> rank under every strategy
//	POST /v1/unrank                      {"n", "strategy", "rank"} -> permutation
//
// Errors are JSON objects {"error", "code"} with a status derived from the
// error code.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/ucycle/pkg/pipeline"
)

// maxBodyBytes bounds request bodies. A text cycle of order 10 is 3.6 MB.
const maxBodyBytes = 64 << 20

// Server routes API requests to a pipeline runner.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	maxOrder int
	router   chi.Router
}

// New creates a server. maxOrder bounds construction and verification; zero
// means pipeline.DefaultMaxOrder.
func New(runner *pipeline.Runner, logger *log.Logger, maxOrder int) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if maxOrder == 0 {
		maxOrder = pipeline.DefaultMaxOrder
	}
	s := &Server{runner: runner, logger: logger, maxOrder: maxOrder}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/cycles/{n}", s.handleCycle)
		r.Get("/cycles/{n}/symbols/{i}", s.handleSymbol)
		r.Post("/verify", s.handleVerify)
		r.Post("/rank", s.handleRank)
		r.Post("/unrank", s.handleUnrank)
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
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
