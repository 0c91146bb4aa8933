// Package http exposes the generation pipeline over a REST API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/flowsmith/flowsmith"
	"github.com/flowsmith/flowsmith/pkg/domain"
	"github.com/flowsmith/flowsmith/pkg/pattern"
	"github.com/flowsmith/flowsmith/pkg/pipeline"
)

// Engine is the slice of the facade the server needs.
type Engine interface {
	Generate(ctx context.Context, req pipeline.Request) (flowsmith.RunResult, error)
	Resume(ctx context.Context, runID string, answers map[string]string) (flowsmith.RunResult, error)
	PendingRuns(ctx context.Context) ([]string, error)
	PendingRun(ctx context.Context, runID string) (domain.PendingRun, error)
	Patterns() []pattern.Archetype
}

// Server handles the REST routes.
type Server struct {
	engine Engine
	logger *slog.Logger
}

// NewHandler builds the router.
func NewHandler(engine Engine, logger *slog.Logger) http.Handler {
	s := &Server{engine: engine, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/generate", s.generate)
	r.Get("/runs", s.listRuns)
	r.Get("/runs/{runID}", s.getRun)
	r.Post("/runs/{runID}/answers", s.answerRun)
	r.Get("/patterns", s.patterns)
	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var req pipeline.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserInput == "" {
		http.Error(w, "user_input is required", http.StatusBadRequest)
		return
	}

	result, err := s.engine.Generate(r.Context(), req)
	s.writeResult(w, r, result, err)
}

type answersBody struct {
	Answers map[string]string `json:"answers"`
}

func (s *Server) answerRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")

	var body answersBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := s.engine.Resume(r.Context(), runID, body.Answers)
	if errors.Is(err, domain.ErrRunNotFound) {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}
	s.writeResult(w, r, result, err)
}

func (s *Server) getRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")

	run, err := s.engine.PendingRun(r.Context(), runID)
	if errors.Is(err, domain.ErrRunNotFound) {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, run)
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	ids, err := s.engine.PendingRuns(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"runs": ids})
}

func (s *Server) patterns(w http.ResponseWriter, r *http.Request) {
	type patternInfo struct {
		ID          string   `json:"id"`
		Label       string   `json:"label"`
		Advantages  []string `json:"advantages"`
		Limitations []string `json:"limitations"`
	}

	archetypes := s.engine.Patterns()
	out := make([]patternInfo, 0, len(archetypes))
	for _, a := range archetypes {
		out = append(out, patternInfo{
			ID:          a.ID,
			Label:       a.Label,
			Advantages:  a.Advantages,
			Limitations: a.Limitations,
		})
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"patterns": out})
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeResult maps a pipeline outcome to a response. Stage failures keep
// their structured error shape; clarification is a normal 200 outcome.
func (s *Server) writeResult(w http.ResponseWriter, r *http.Request, result flowsmith.RunResult, err error) {
	if err != nil {
		var stageErr *pipeline.StageError
		if errors.As(err, &stageErr) {
			s.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"success": false,
				"error":   stageErr,
			})
			return
		}
		s.internalError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
