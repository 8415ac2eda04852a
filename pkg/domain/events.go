package domain

import (
	"context"
	"time"
)

// RequestEvent is emitted once per handled request.
type RequestEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
	SessionID string        `json:"session_id,omitempty"`
	Type      RequestType   `json:"type"`
	Intent    string        `json:"intent,omitempty"`
	Route     string        `json:"route"`
	Duration  time.Duration `json:"duration"`
}

// DirectiveEvent is emitted when the dialog controller decides a turn.
type DirectiveEvent struct {
	SessionID string        `json:"session_id,omitempty"`
	Kind      DirectiveKind `json:"kind"`
	Slot      Category      `json:"slot,omitempty"`
}

// OutcomeEvent is emitted when a recommendation is resolved.
type OutcomeEvent struct {
	SessionID string  `json:"session_id,omitempty"`
	Key       string  `json:"key"`
	Outcome   Outcome `json:"outcome"`
}

// ErrorEvent is emitted when the error boundary recovers a failure.
type ErrorEvent struct {
	SessionID string `json:"session_id,omitempty"`
	Kind      string `json:"kind"`
	Err       error  `json:"-"`
}

// LifecycleHooks defines callbacks for observability.
type LifecycleHooks struct {
	OnRequest   func(context.Context, *RequestEvent)
	OnDirective func(context.Context, *DirectiveEvent)
	OnOutcome   func(context.Context, *OutcomeEvent)
	OnError     func(context.Context, *ErrorEvent)
}
