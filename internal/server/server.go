// Package server exposes mesh measurement over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/philipparndt/stlmeasure/internal/config"
	"github.com/philipparndt/stlmeasure/internal/metrics"
	"github.com/philipparndt/stlmeasure/pkg/analysis"
	"github.com/philipparndt/stlmeasure/pkg/source"
)

// Server handles measurement requests
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Collector
}

// New creates a server from the application configuration. A nil logger
// disables logging and a nil collector gets a fresh "stlmeasure" collector.
func New(cfg *config.Config, logger *zap.Logger, collector *metrics.Collector) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if collector == nil {
		collector = metrics.NewCollector("stlmeasure")
	}
	return &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: collector,
	}
}

// Handler configures all routes and middleware
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(s.logger))

	router.Get("/health", s.healthCheck)
	router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	router.Route("/v1", func(r chi.Router) {
		r.Post("/measure", s.measure)
	})

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Listen,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// measure reads an STL body and responds with its measurements. Query
// parameters density and strict override the configured defaults.
func (s *Server) measure(w http.ResponseWriter, r *http.Request) {
	density := s.cfg.Density
	if raw := r.URL.Query().Get("density"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid density", Kind: metrics.KindInvalidDensity})
			return
		}
		density = v
	}

	strict := s.cfg.Strict
	if raw := r.URL.Query().Get("strict"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid strict flag", Kind: metrics.KindOther})
			return
		}
		strict = v
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.Fetch.MaxBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, http.StatusRequestEntityTooLarge, fmt.Errorf("%w: %v", source.ErrTooLarge, err))
			return
		}
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	start := time.Now()
	result, err := analysis.Measure(data,
		analysis.WithDensity(density),
		analysis.WithStrict(strict),
		analysis.WithLogger(s.logger),
	)
	if err != nil {
		s.fail(w, statusFor(err), err)
		return
	}
	s.metrics.ObserveResult(result, time.Since(start))

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	s.metrics.ObserveError(err)
	s.writeJSON(w, status, errorResponse{Error: err.Error(), Kind: metrics.ErrorKind(err)})
}

// statusFor maps measurement errors to HTTP status codes
func statusFor(err error) int {
	switch metrics.ErrorKind(err) {
	case metrics.KindParse, metrics.KindInvalidDensity:
		return http.StatusBadRequest
	case metrics.KindEmptyMesh, metrics.KindZeroVolume, metrics.KindNonFinite:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON encodes body before writing the header so that an encoding
// failure can still be reported as a 500
func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorResponse{Error: "failed to encode response", Kind: metrics.KindOther})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(data, '\n')); err != nil {
		s.logger.Debug("Failed to write response", zap.Error(err))
	}
}
