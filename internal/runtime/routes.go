package runtime

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/decisiontree/pkg/dialog"
	"github.com/aretw0/decisiontree/pkg/domain"
	"github.com/aretw0/decisiontree/pkg/outcome"
)

// Intent names understood by the skill.
const (
	IntentRecommendation = "RecommendationIntent"
	IntentCouchPotato    = "CouchPotatoIntent"
	IntentHelp           = "AMAZON.HelpIntent"
	IntentCancel         = "AMAZON.CancelIntent"
	IntentStop           = "AMAZON.StopIntent"
	IntentFallback       = "AMAZON.FallbackIntent"
)

type routeKey struct {
	Type   domain.RequestType
	Intent string
}

type route struct {
	name   string
	handle func(context.Context, *domain.Request) (*domain.Response, error)
}

func (e *Engine) buildRoutes() map[routeKey]route {
	exit := route{"exit", e.handleExit}
	return map[routeKey]route{
		{domain.RequestLaunch, ""}:                   {"launch", e.handleLaunch},
		{domain.RequestSessionEnded, ""}:             {"session_ended", e.handleSessionEnded},
		{domain.RequestIntent, IntentRecommendation}: {"recommendation", e.handleRecommendation},
		{domain.RequestIntent, IntentCouchPotato}:    {"couch_potato", e.handleCouchPotato},
		{domain.RequestIntent, IntentHelp}:           {"help", e.handleHelp},
		{domain.RequestIntent, IntentCancel}:         exit,
		{domain.RequestIntent, IntentStop}:           exit,
		{domain.RequestIntent, IntentFallback}:       {"fallback", e.handleFallback},
	}
}

func (e *Engine) lookup(req *domain.Request) (route, bool) {
	key := routeKey{Type: req.Type}
	if req.Type == domain.RequestIntent {
		key.Intent = req.IntentName()
	}
	rt, ok := e.routes[key]
	return rt, ok
}

// Routes lists the handled request types and intents in sorted order, for introspection.
func (e *Engine) Routes() []string {
	out := make([]string, 0, len(e.routes))
	for k, r := range e.routes {
		if k.Intent == "" {
			out = append(out, fmt.Sprintf("%s -> %s", k.Type, r.name))
		} else {
			out = append(out, fmt.Sprintf("%s/%s -> %s", k.Type, k.Intent, r.name))
		}
	}
	sort.Strings(out)
	return out
}

func (e *Engine) handleLaunch(_ context.Context, _ *domain.Request) (*domain.Response, error) {
	return &domain.Response{Speech: welcomeMessage, Reprompt: welcomeReprompt}, nil
}

func (e *Engine) handleHelp(_ context.Context, _ *domain.Request) (*domain.Response, error) {
	return &domain.Response{Speech: helpMessage, Reprompt: helpReprompt}, nil
}

func (e *Engine) handleFallback(_ context.Context, _ *domain.Request) (*domain.Response, error) {
	return &domain.Response{Speech: fallbackMessage, Reprompt: fallbackReprompt}, nil
}

func (e *Engine) handleCouchPotato(_ context.Context, _ *domain.Request) (*domain.Response, error) {
	return &domain.Response{Speech: couchPotatoMessage, ShouldEndSession: true}, nil
}

func (e *Engine) handleExit(_ context.Context, _ *domain.Request) (*domain.Response, error) {
	return &domain.Response{Speech: goodbyeMessage, ShouldEndSession: true}, nil
}

func (e *Engine) handleSessionEnded(_ context.Context, req *domain.Request) (*domain.Response, error) {
	e.logger.Info("session ended", "session_id", req.SessionID, "reason", req.Reason)
	return &domain.Response{}, nil
}

func (e *Engine) handleRecommendation(ctx context.Context, req *domain.Request) (*domain.Response, error) {
	turn, err := dialog.BuildTurn(req)
	if err != nil {
		return nil, err
	}

	directive, err := e.decider.Decide(turn)
	if err != nil {
		return nil, err
	}

	event := &domain.DirectiveEvent{SessionID: req.SessionID, Kind: directive.Kind()}

	var resp *domain.Response
	switch d := directive.(type) {
	case domain.AskDisambiguation:
		event.Slot = d.Slot
		resp = elicit(d.Slot, d.Prompt)
	case domain.AskOpen:
		event.Slot = d.Slot
		resp = elicit(d.Slot, d.Prompt)
	case domain.Delegate:
		resp = &domain.Response{
			Directives: []domain.OutputDirective{{
				Type:          domain.OutputDelegate,
				UpdatedIntent: req.Intent,
			}},
		}
	case domain.Resolve:
		resp, err = e.resolve(ctx, req, turn)
	default:
		return nil, fmt.Errorf("unexpected directive %T", directive)
	}

	if e.hooks.OnDirective != nil {
		e.hooks.OnDirective(ctx, event)
	}
	return resp, err
}

func (e *Engine) resolve(ctx context.Context, req *domain.Request, turn domain.TurnState) (*domain.Response, error) {
	if pending := turn.Anomalies(); len(pending) > 0 {
		e.logger.Warn("completed dialog still has unresolved slots",
			"session_id", req.SessionID,
			"slots", pending,
		)
	}

	values := outcome.Normalize(turn.Values())
	result, err := e.resolver.Resolve(values)
	if err != nil {
		return nil, err
	}

	if e.hooks.OnOutcome != nil {
		e.hooks.OnOutcome(ctx, &domain.OutcomeEvent{
			SessionID: req.SessionID,
			Key:       outcome.Key(values),
			Outcome:   result,
		})
	}

	e.logger.Info("recommendation resolved",
		"session_id", req.SessionID,
		"outcome", result.Name,
		"index", result.Index,
	)

	return &domain.Response{
		Speech:           FinalStatement(values, result),
		ShouldEndSession: true,
		Outcome:          &result,
	}, nil
}

func elicit(slot domain.Category, prompt string) *domain.Response {
	return &domain.Response{
		Speech:   prompt,
		Reprompt: prompt,
		Directives: []domain.OutputDirective{{
			Type:         domain.OutputElicitSlot,
			SlotToElicit: slot.String(),
		}},
	}
}
