package domain

import "fmt"

// ResolutionStatus is the normalized outcome of entity resolution for a slot.
type ResolutionStatus int

const (
	// StatusUnresolved: slot not filled yet, or filled without usable resolution data.
	StatusUnresolved ResolutionStatus = iota
	// StatusMatched: exactly one candidate; ResolvedValue holds its canonical label.
	StatusMatched
	// StatusAmbiguous: two or more candidates, kept in engine order.
	StatusAmbiguous
	// StatusNoMatch: the engine found nothing; ResolvedValue falls back to the raw utterance.
	StatusNoMatch
)

func (s ResolutionStatus) String() string {
	switch s {
	case StatusUnresolved:
		return "UNRESOLVED"
	case StatusMatched:
		return "MATCHED"
	case StatusAmbiguous:
		return "AMBIGUOUS"
	case StatusNoMatch:
		return "NO_MATCH"
	default:
		return fmt.Sprintf("ResolutionStatus(%d)", int(s))
	}
}

// MarshalText encodes the status by name so persisted records stay readable.
func (s ResolutionStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name produced by MarshalText.
func (s *ResolutionStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "UNRESOLVED", "":
		*s = StatusUnresolved
	case "MATCHED":
		*s = StatusMatched
	case "AMBIGUOUS":
		*s = StatusAmbiguous
	case "NO_MATCH":
		*s = StatusNoMatch
	default:
		return fmt.Errorf("unknown resolution status %q", string(text))
	}
	return nil
}

// SlotResolution is the per-turn view of a single slot after normalization.
type SlotResolution struct {
	Category Category         `json:"category"`
	RawValue string           `json:"raw_value,omitempty"`
	Status   ResolutionStatus `json:"status"`

	// ResolvedValue is set for MATCHED and NO_MATCH only.
	ResolvedValue string `json:"resolved_value,omitempty"`

	// Candidates is non-empty only when Status is AMBIGUOUS.
	Candidates []string `json:"candidates,omitempty"`

	// Confirmed is set when the user already confirmed the slot value.
	Confirmed bool `json:"confirmed,omitempty"`
}

// Value returns the value usable for the outcome key.
// It reports false while the slot is UNRESOLVED or AMBIGUOUS.
func (r SlotResolution) Value() (string, bool) {
	switch r.Status {
	case StatusMatched, StatusNoMatch:
		return r.ResolvedValue, true
	default:
		return "", false
	}
}

// Validated reports whether the value came from a successful match rather than
// the unvalidated NO_MATCH passthrough.
func (r SlotResolution) Validated() bool {
	return r.Status == StatusMatched
}

// Pending reports whether the slot still needs a follow-up question.
func (r SlotResolution) Pending() bool {
	return r.Status == StatusAmbiguous || r.Status == StatusNoMatch
}
