// Package server exposes the workflow dispatcher over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ceddto100/SEO-LEAD/internal/workflow"
)

// Runner executes a workflow by id; the app layer supplies it so HTTP and
// CLI share one execution path.
type Runner interface {
	RunWorkflow(ctx context.Context, id string) (workflow.Summary, error)
}

// Server handles health, workflow dispatch and metrics.
type Server struct {
	runner Runner
	logger *slog.Logger
	dryRun bool
}

// New builds the server.
func New(runner Runner, logger *slog.Logger, dryRun bool) *Server {
	return &Server{runner: runner, logger: logger, dryRun: dryRun}
}

// Router wires all routes with logging and metrics middleware.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleHealth)
	mux.HandleFunc("POST /run/{id}", s.handleRun)
	mux.Handle("GET /metrics", promhttp.Handler())

	return LoggingMiddleware(s.logger)(MetricsMiddleware(mux))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "seo-lead",
		"dry_run": s.dryRun,
	})
}

// handleRun executes the workflow synchronously in the handler.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	start := time.Now()
	summary, err := s.runner.RunWorkflow(r.Context(), id)
	if err != nil {
		if errors.Is(err, workflow.ErrUnknownWorkflow) {
			writeError(w, http.StatusBadRequest, "unknown workflow", id)
			return
		}
		s.error("workflow failed", "workflow", id, "error", err)
		writeError(w, http.StatusInternalServerError, "workflow failed", err.Error())
		return
	}

	s.info("workflow completed", "workflow", id, "duration", time.Since(start))
	writeJSON(w, http.StatusOK, map[string]any{
		"workflow": id,
		"status":   "completed",
		"summary":  summary,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, detail string) {
	body := map[string]string{"error": message}
	if detail != "" {
		body["detail"] = detail
	}
	writeJSON(w, status, body)
}

func (s *Server) info(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Server) error(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Error(msg, args...)
	}
}
