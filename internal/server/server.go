// Package server exposes the analysis API over HTTP: a root info endpoint, a
// health check, and POST /api/analyze which proxies snippets to the
// configured LLM provider.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/codalyzer/codalyzer/internal/provider"
	"github.com/codalyzer/codalyzer/pkg/config"
	"github.com/codalyzer/codalyzer/pkg/detect"
	"github.com/codalyzer/codalyzer/pkg/models"
)

// Version is the API version reported by the info and health endpoints.
const Version = "1.0.0"

// Server ties routes, middleware, and the provider together.
type Server struct {
	cfg        config.ServerConfig
	prov       provider.Provider
	logger     *slog.Logger
	mux        *http.ServeMux
	limiter    *visitorLimiter
	httpServer *http.Server
}

// New creates a server for the given provider.
func New(cfg config.ServerConfig, prov provider.Provider, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:     cfg,
		prov:    prov,
		logger:  logger,
		mux:     http.NewServeMux(),
		limiter: newVisitorLimiter(cfg.RateLimit, cfg.RateBurst),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.Handle("POST /api/analyze", s.limiter.wrap(http.HandlerFunc(s.handleAnalyze)))
}

// Handler returns the full middleware-wrapped handler, exported for tests.
func (s *Server) Handler() http.Handler {
	return cors(s.mux)
}

// Start runs the server until the context is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Addr(), "model", s.prov.Model())
		if !s.prov.Available() {
			s.logger.Warn("provider not available, /api/analyze will return 503")
		}
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if !s.prov.Available() {
		status = "unavailable"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "Codalyzer API",
		"version": Version,
		"model":   s.prov.Model(),
		"status":  status,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if !s.prov.Available() {
		status = "error"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    status,
		"model":     s.prov.Model(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if !s.prov.Available() {
		s.writeError(w, http.StatusServiceUnavailable,
			"Provider not available. Please check API key configuration.", "")
		return
	}

	// Resolve "auto" locally so the model gets a concrete hint when the
	// heuristics are confident.
	language := req.Language
	if language == "auto" {
		if detected := detect.Detect(req.Filename, req.Code); detected != "" {
			language = detected
		}
	}

	result, err := s.prov.Analyze(r.Context(), provider.Request{
		Code:     req.Code,
		Filename: req.Filename,
		Language: language,
	})
	if err != nil {
		s.logger.Error("analysis failed", "error", err)
		switch {
		case errors.Is(err, provider.ErrUnavailable):
			s.writeError(w, http.StatusServiceUnavailable, "Provider not available", "")
		case errors.Is(err, provider.ErrRateLimited):
			s.writeError(w, http.StatusTooManyRequests, "Provider rate limit exceeded", "")
		case errors.Is(err, provider.ErrBadResponse):
			s.writeError(w, http.StatusInternalServerError, "Failed to parse analysis result", err.Error())
		default:
			s.writeError(w, http.StatusInternalServerError, "Analysis failed", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, models.AnalyzeResponse{
		Success: true,
		Result:  result,
		Model:   s.prov.Model(),
	})
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, models.ErrorResponse{
		Success: false,
		Error:   msg,
		Details: details,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
