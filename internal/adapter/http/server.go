package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/thermal-comfort-service/internal/report"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the report API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	reports    Reports
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and the
// /api report routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, reports Reports, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		reports: reports,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/validation/areas", s.handleAreas(report.KindValidation))
	mux.HandleFunc("GET /api/shortterm/areas", s.handleAreas(report.KindShortTerm))
	mux.HandleFunc("GET /api/longterm/areas", s.handleAreas(report.KindLongTerm))
	mux.HandleFunc("GET /api/validation/{area}", s.handleValidation)
	mux.HandleFunc("GET /api/shortterm", s.handleShortTermTable)
	mux.HandleFunc("GET /api/shortterm/{area}", s.handleShortTermArea)
	mux.HandleFunc("GET /api/longterm", s.handleLongTermTable)
	mux.HandleFunc("GET /api/longterm/{area}", s.handleLongTermArea)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client may have gone away
}
