package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"homework-status-bot/internal/infra/sched"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// CycleReporter exposes the last finished poll cycle.
type CycleReporter interface {
	LastCycle() (sched.CycleInfo, bool)
}

// Server serves /healthz and /metrics for the poller.
type Server struct {
	port     int
	cycles   CycleReporter
	gatherer prometheus.Gatherer
	// staleAfter marks the poller unhealthy when no cycle finished for that long.
	staleAfter time.Duration
	log        *zerolog.Logger
	server     *http.Server
}

func NewServer(port int, cycles CycleReporter, gatherer prometheus.Gatherer, staleAfter time.Duration, logger *zerolog.Logger) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	compLog := logger.With().Str("component", "HTTPServer").Logger()
	s := &Server{
		port:       port,
		cycles:     cycles,
		gatherer:   gatherer,
		staleAfter: staleAfter,
		log:        &compLog,
	}
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return r
}

// Start blocks until the server stops. http.ErrServerClosed is not reported.
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Msg("HTTP server listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type healthResponse struct {
	Status    string           `json:"status"`
	LastCycle *sched.CycleInfo `json:"last_cycle,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "starting"}
	code := http.StatusOK

	if info, ok := s.cycles.LastCycle(); ok {
		resp.LastCycle = &info
		resp.Status = "ok"
		if s.staleAfter > 0 && time.Since(info.At) > s.staleAfter {
			resp.Status = "stale"
			code = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error().Err(err).Msg("encode health response")
	}
}
