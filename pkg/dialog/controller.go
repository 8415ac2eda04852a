package dialog

import (
	"fmt"

	"github.com/aretw0/decisiontree/pkg/domain"
)

// Controller decides the next dialog action for a turn.
// The zero value is ready to use and renders legacy prompts.
type Controller struct {
	style PromptStyle
}

// Option configures the Controller.
type Option func(*Controller)

// WithPromptStyle sets how disambiguation prompts are rendered.
func WithPromptStyle(style PromptStyle) Option {
	return func(c *Controller) {
		c.style = style
	}
}

// NewController creates a Controller.
func NewController(opts ...Option) *Controller {
	c := &Controller{style: PromptLegacy}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Decide returns the directive for the turn.
//
// A completed dialog always resolves: any leftover ambiguity is an upstream anomaly
// for the caller to report. Otherwise required slots are scanned in order and the
// first one needing a question wins: AMBIGUOUS is disambiguated, NO_MATCH is asked
// again. Slots the user already confirmed are skipped. If no slot needs a question,
// elicitation is delegated.
func (c *Controller) Decide(turn domain.TurnState) (domain.Directive, error) {
	if turn.Completion == domain.CompletionComplete {
		return domain.Resolve{}, nil
	}

	for _, slot := range domain.RequiredSlots() {
		res, ok := turn.Slot(slot)
		if !ok || res.Confirmed {
			continue
		}
		switch res.Status {
		case domain.StatusAmbiguous:
			if len(res.Candidates) == 0 {
				return nil, fmt.Errorf("%w: slot %s is ambiguous without candidates", domain.ErrUpstreamContract, slot)
			}
			return domain.AskDisambiguation{
				Slot:       slot,
				Prompt:     DisambiguationPrompt(c.style, res.Candidates),
				Candidates: append([]string(nil), res.Candidates...),
			}, nil
		case domain.StatusNoMatch:
			return domain.AskOpen{
				Slot:   slot,
				Prompt: OpenPrompt(slot),
			}, nil
		}
	}

	return domain.Delegate{}, nil
}

var defaultController = NewController()

// Decide runs the default Controller (legacy prompts).
func Decide(turn domain.TurnState) (domain.Directive, error) {
	return defaultController.Decide(turn)
}
