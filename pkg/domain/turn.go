package domain

// Completion is the caller-supplied dialog completion flag.
type Completion string

const (
	CompletionInProgress Completion = "IN_PROGRESS"
	CompletionComplete   Completion = "COMPLETE"
)

// TurnState is the transient input of the dialog controller for one invocation.
// It is never persisted by the core.
type TurnState struct {
	Slots      map[Category]SlotResolution
	Completion Completion
}

// Slot returns the resolution for a category and whether it was present.
func (t TurnState) Slot(c Category) (SlotResolution, bool) {
	r, ok := t.Slots[c]
	return r, ok
}

// Values collects the usable value of every slot, keyed by category.
// Slots without a usable value are omitted.
func (t TurnState) Values() map[Category]string {
	values := make(map[Category]string, len(t.Slots))
	for c, r := range t.Slots {
		if v, ok := r.Value(); ok {
			values[c] = v
		}
	}
	return values
}

// Anomalies lists, in scan order, the required slots that still carry an
// AMBIGUOUS or NO_MATCH resolution.
func (t TurnState) Anomalies() []Category {
	var out []Category
	for _, c := range requiredSlots {
		if r, ok := t.Slots[c]; ok && r.Pending() {
			out = append(out, c)
		}
	}
	return out
}
