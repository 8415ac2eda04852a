package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/decisiontree/internal/logging"
	"github.com/aretw0/decisiontree/pkg/dialog"
	"github.com/aretw0/decisiontree/pkg/domain"
)

// Resolver maps a completed answer tuple to an outcome.
type Resolver interface {
	Resolve(values map[domain.Category]string) (domain.Outcome, error)
}

// Decider decides the next dialog action for a turn.
type Decider interface {
	Decide(turn domain.TurnState) (domain.Directive, error)
}

// SessionRecorder persists the audit record of a session.
type SessionRecorder interface {
	Update(ctx context.Context, sessionID string, fn func(*domain.SessionRecord) error) error
}

// Engine answers platform requests. It is safe for concurrent use: apart from the
// optional recorder, every request is handled from its own input only.
type Engine struct {
	resolver Resolver
	decider  Decider
	recorder SessionRecorder
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	routes   map[routeKey]route
	now      func() time.Time
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithDecider replaces the default dialog controller.
func WithDecider(d Decider) EngineOption {
	return func(e *Engine) {
		if d != nil {
			e.decider = d
		}
	}
}

// WithSessionRecorder enables per-session audit records.
func WithSessionRecorder(r SessionRecorder) EngineOption {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine resolving outcomes with resolver.
func NewEngine(resolver Resolver, opts ...EngineOption) *Engine {
	e := &Engine{
		resolver: resolver,
		decider:  dialog.NewController(),
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.routes = e.buildRoutes()
	return e
}

// Handle answers a single request. It never returns nil and never panics:
// every failure is turned into a spoken response at this boundary.
func (e *Engine) Handle(ctx context.Context, req *domain.Request) (resp *domain.Response) {
	start := e.now()
	name := "unrecognized"

	defer func() {
		if r := recover(); r != nil {
			resp = e.recoverError(ctx, req, fmt.Errorf("panic: %v", r))
		}
		e.record(ctx, req, resp)
		if e.hooks.OnRequest != nil && req != nil {
			e.hooks.OnRequest(ctx, &domain.RequestEvent{
				Timestamp: start,
				RequestID: req.RequestID,
				SessionID: req.SessionID,
				Type:      req.Type,
				Intent:    req.IntentName(),
				Route:     name,
				Duration:  e.now().Sub(start),
			})
		}
	}()

	if req == nil {
		return e.recoverError(ctx, req, fmt.Errorf("%w: empty request", domain.ErrUnrecognizedRequest))
	}

	rt, ok := e.lookup(req)
	if !ok {
		return e.recoverError(ctx, req, fmt.Errorf("%w: type=%s intent=%s", domain.ErrUnrecognizedRequest, req.Type, req.IntentName()))
	}
	name = rt.name

	e.logger.Debug("handling request",
		"request_id", req.RequestID,
		"session_id", req.SessionID,
		"route", name,
	)

	out, err := rt.handle(ctx, req)
	if err != nil {
		return e.recoverError(ctx, req, err)
	}
	return out
}

// Recommend resolves an answer tuple without a dialog.
func (e *Engine) Recommend(values map[domain.Category]string) (domain.Outcome, error) {
	return e.resolver.Resolve(values)
}

func (e *Engine) recoverError(ctx context.Context, req *domain.Request, err error) *domain.Response {
	kind := errorKind(err)
	sessionID := ""
	if req != nil {
		sessionID = req.SessionID
	}

	if e.hooks.OnError != nil {
		e.hooks.OnError(ctx, &domain.ErrorEvent{SessionID: sessionID, Kind: kind, Err: err})
	}

	switch kind {
	case "lookup_miss":
		e.logger.Warn("no outcome for answers", "session_id", sessionID, "err", err)
		return &domain.Response{
			Speech:           noOutcomeMessage,
			ShouldEndSession: true,
		}
	case "unrecognized_request":
		e.logger.Warn("request not handled", "session_id", sessionID, "err", err)
	default:
		e.logger.Error("request failed", "session_id", sessionID, "kind", kind, "err", err)
	}

	return &domain.Response{
		Speech:   apologyMessage,
		Reprompt: apologyMessage,
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrLookupMiss):
		return "lookup_miss"
	case errors.Is(err, domain.ErrUpstreamContract):
		return "upstream_contract"
	case errors.Is(err, domain.ErrUnrecognizedRequest):
		return "unrecognized_request"
	default:
		return "internal"
	}
}

func (e *Engine) record(ctx context.Context, req *domain.Request, resp *domain.Response) {
	if e.recorder == nil || req == nil || req.SessionID == "" {
		return
	}

	answers := collectAnswers(req)
	err := e.recorder.Update(ctx, req.SessionID, func(rec *domain.SessionRecord) error {
		rec.Turns++
		if req.UserID != "" {
			rec.UserID = req.UserID
		}
		if rec.Answers == nil {
			rec.Answers = make(map[string]string)
		}
		for k, v := range answers {
			rec.Answers[k] = v
		}
		if resp != nil && resp.Speech != "" {
			rec.LastPrompt = resp.Speech
		}
		switch {
		case resp != nil && resp.Outcome != nil:
			o := *resp.Outcome
			rec.Outcome = &o
			rec.Status = domain.SessionRecommended
		case req.Type == domain.RequestSessionEnded:
			if rec.Status != domain.SessionRecommended {
				rec.Status = domain.SessionEnded
			}
		case resp != nil && resp.ShouldEndSession:
			rec.Status = domain.SessionEnded
		default:
			rec.Status = domain.SessionActive
		}
		rec.UpdatedAt = e.now()
		return nil
	})
	if err != nil {
		e.logger.Warn("failed to record session", "session_id", req.SessionID, "err", err)
	}
}

// collectAnswers returns the usable slot values of a request, keyed by slot name.
func collectAnswers(req *domain.Request) map[string]string {
	answers := make(map[string]string)
	if req.Intent == nil {
		return answers
	}
	for _, c := range domain.RequiredSlots() {
		slot, ok := req.Intent.Slots[c.String()]
		if !ok {
			continue
		}
		res, err := dialog.Normalize(c, slot)
		if err != nil {
			continue
		}
		if v, ok := res.Value(); ok {
			answers[c.String()] = v
		}
	}
	return answers
}
