package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/decisiontree/internal/logging"
	"github.com/aretw0/decisiontree/pkg/domain"
	"github.com/aretw0/decisiontree/pkg/outcome"
	"github.com/go-chi/chi/v5"
)

// DefaultMaxBodyBytes caps request envelopes.
const DefaultMaxBodyBytes = 256 << 10

// Skill answers one dialog turn.
type Skill interface {
	Handle(ctx context.Context, req *domain.Request) *domain.Response
}

// SessionReader exposes recorded sessions to operators.
type SessionReader interface {
	Load(ctx context.Context, sessionID string) (*domain.SessionRecord, error)
	List(ctx context.Context) ([]string, error)
}

// Server serves the skill endpoint and its operational routes.
type Server struct {
	Skill    Skill
	Table    *outcome.Table
	Sessions SessionReader
	Metrics  http.Handler
	Health   func(ctx context.Context) error

	logger  *slog.Logger
	maxBody int64
}

// Option configures the Server.
type Option func(*Server)

// WithOutcomes serves the outcome table on GET /outcomes.
func WithOutcomes(table *outcome.Table) Option {
	return func(s *Server) { s.Table = table }
}

// WithSessions serves recorded sessions on GET /sessions.
func WithSessions(r SessionReader) Option {
	return func(s *Server) { s.Sessions = r }
}

// WithMetrics serves h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.Metrics = h }
}

// WithHealthCheck makes GET /health report the result of check.
func WithHealthCheck(check func(ctx context.Context) error) Option {
	return func(s *Server) { s.Health = check }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxBodyBytes caps the size of skill request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// NewHandler creates the HTTP handler for the skill.
func NewHandler(skill Skill, opts ...Option) http.Handler {
	s := &Server{
		Skill:   skill,
		logger:  logging.NewNop(),
		maxBody: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Post("/skill", s.HandleSkill)
	r.Get("/health", s.HandleHealth)
	if s.Table != nil {
		r.Get("/outcomes", s.ListOutcomes)
	}
	if s.Sessions != nil {
		r.Get("/sessions", s.ListSessions)
		r.Get("/sessions/{id}", s.GetSession)
	}
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HandleSkill handles POST /skill. Only undecodable envelopes are rejected;
// every decoded turn gets a spoken answer.
func (s *Server) HandleSkill(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var env RequestEnvelope
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody)).Decode(&env); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		http.Error(w, "Invalid request body", status)
		s.logger.Warn("Skill: invalid request body", "err", err)
		return
	}

	req, err := mapRequestToDomain(env)
	if err != nil {
		s.logger.Warn("Skill: slot values rejected", "err", err, "request_id", env.Request.RequestID)
	}

	resp := s.Skill.Handle(r.Context(), req)

	writeJSON(w, s.logger, mapResponseFromDomain(resp))
	s.logger.Debug("Skill: request served",
		"request_id", req.RequestID,
		"type", req.Type,
		"duration", time.Since(start),
	)
}

// HandleHealth handles GET /health.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if s.Health != nil {
		if err := s.Health(r.Context()); err != nil {
			s.logger.Error("Health check failed", "err", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	writeJSON(w, s.logger, map[string]string{"status": "ok"})
}

// ListOutcomes handles GET /outcomes.
func (s *Server) ListOutcomes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, struct {
		Outcomes []domain.Outcome `json:"outcomes"`
		Entries  []outcome.Entry  `json:"entries"`
	}{
		Outcomes: s.Table.Outcomes(),
		Entries:  s.Table.Entries(),
	})
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to list sessions", http.StatusInternalServerError)
		s.logger.Error("ListSessions failed", "err", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, s.logger, map[string][]string{"sessions": ids})
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.Sessions.Load(r.Context(), id)
	if errors.Is(err, domain.ErrSessionNotFound) {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to load session", http.StatusInternalServerError)
		s.logger.Error("GetSession failed", "session_id", id, "err", err)
		return
	}
	writeJSON(w, s.logger, rec)
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Response encode failed", "err", err)
	}
}
