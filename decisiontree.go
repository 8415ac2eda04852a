package decisiontree

import (
	"context"
	"log/slog"

	"github.com/aretw0/decisiontree/internal/logging"
	"github.com/aretw0/decisiontree/internal/runtime"
	"github.com/aretw0/decisiontree/pkg/dialog"
	"github.com/aretw0/decisiontree/pkg/domain"
	"github.com/aretw0/decisiontree/pkg/outcome"
	"github.com/aretw0/decisiontree/pkg/session"
)

// Skill is the high-level entry point of the library.
// It wraps the internal runtime and provides a simplified API for hosts.
type Skill struct {
	runtime  *runtime.Engine
	table    *outcome.Table
	sessions *session.Manager
	style    dialog.PromptStyle
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Skill.
type Option func(*Skill)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Skill) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Skill) {
		s.hooks = hooks
	}
}

// WithOutcomeTable replaces the built-in outcome table.
func WithOutcomeTable(table *outcome.Table) Option {
	return func(s *Skill) {
		s.table = table
	}
}

// WithSessionManager records an audit trail of every session.
func WithSessionManager(m *session.Manager) Option {
	return func(s *Skill) {
		s.sessions = m
	}
}

// WithPromptStyle sets how disambiguation questions are phrased.
func WithPromptStyle(style dialog.PromptStyle) Option {
	return func(s *Skill) {
		s.style = style
	}
}

// New creates a Skill. Without options it uses the built-in table, legacy
// prompts, no session recording and a silent logger.
func New(opts ...Option) *Skill {
	s := &Skill{style: dialog.PromptLegacy}
	for _, opt := range opts {
		opt(s)
	}

	if s.table == nil {
		s.table = outcome.Default()
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(s.hooks),
		runtime.WithLogger(s.logger),
		runtime.WithDecider(dialog.NewController(dialog.WithPromptStyle(s.style))),
	}
	if s.sessions != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithSessionRecorder(s.sessions))
	}

	s.runtime = runtime.NewEngine(s.table, runtimeOpts...)
	return s
}

// Handle answers one platform request. It always returns a response.
func (s *Skill) Handle(ctx context.Context, req *domain.Request) *domain.Response {
	return s.runtime.Handle(ctx, req)
}

// Recommend resolves a complete set of answers without a dialog.
func (s *Skill) Recommend(values map[domain.Category]string) (domain.Outcome, error) {
	return s.runtime.Recommend(values)
}

// Outcomes returns the outcome table in use.
func (s *Skill) Outcomes() *outcome.Table {
	return s.table
}

// Sessions returns the session manager, or nil when sessions are not recorded.
func (s *Skill) Sessions() *session.Manager {
	return s.sessions
}

// Routes lists the request types and intents the skill answers.
func (s *Skill) Routes() []string {
	return s.runtime.Routes()
}
