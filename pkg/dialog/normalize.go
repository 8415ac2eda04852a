package dialog

import (
	"fmt"

	"github.com/aretw0/decisiontree/pkg/domain"
)

// Normalize computes the resolution of a filled slot from its raw platform payload.
// Only the first resolution authority is consulted.
func Normalize(category domain.Category, slot domain.Slot) (domain.SlotResolution, error) {
	res := domain.SlotResolution{
		Category:  category,
		RawValue:  slot.Value,
		Status:    domain.StatusUnresolved,
		Confirmed: slot.ConfirmationStatus == domain.ConfirmationConfirmed,
	}

	if len(slot.Resolutions) == 0 {
		return res, nil
	}

	authority := slot.Resolutions[0]
	switch authority.Code {
	case domain.CodeSuccessMatch:
		switch len(authority.Values) {
		case 0:
			return res, fmt.Errorf("%w: slot %s matched without values", domain.ErrUpstreamContract, category)
		case 1:
			res.Status = domain.StatusMatched
			res.ResolvedValue = authority.Values[0]
		default:
			res.Status = domain.StatusAmbiguous
			res.Candidates = append([]string(nil), authority.Values...)
		}
	case domain.CodeSuccessNoMatch:
		// Unvalidated: the raw utterance stands in for a canonical value.
		res.Status = domain.StatusNoMatch
		res.ResolvedValue = slot.Value
	}

	return res, nil
}

// BuildTurn normalizes the required slots of an intent request into a TurnState.
// A required slot missing from the payload is an upstream contract violation.
func BuildTurn(req *domain.Request) (domain.TurnState, error) {
	turn := domain.TurnState{
		Slots:      make(map[domain.Category]domain.SlotResolution, 4),
		Completion: domain.CompletionInProgress,
	}
	if req == nil || req.Intent == nil {
		return turn, fmt.Errorf("%w: request carries no intent", domain.ErrUpstreamContract)
	}
	if req.DialogState == domain.DialogStateCompleted {
		turn.Completion = domain.CompletionComplete
	}

	for _, category := range domain.RequiredSlots() {
		slot, ok := req.Intent.Slots[category.String()]
		if !ok {
			return turn, fmt.Errorf("%w: required slot %s missing", domain.ErrUpstreamContract, category)
		}
		res, err := Normalize(category, slot)
		if err != nil {
			return turn, err
		}
		turn.Slots[category] = res
	}

	return turn, nil
}
