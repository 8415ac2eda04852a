package domain

// RequestType is the kind of inbound platform request.
type RequestType string

const (
	RequestLaunch       RequestType = "LaunchRequest"
	RequestIntent       RequestType = "IntentRequest"
	RequestSessionEnded RequestType = "SessionEndedRequest"
)

// DialogStateCompleted is the platform dialog state that marks every required slot as filled.
const DialogStateCompleted = "COMPLETED"

// ConfirmationConfirmed marks a slot or intent the user has confirmed.
const ConfirmationConfirmed = "CONFIRMED"

// Entity resolution status codes reported by a resolution authority.
const (
	CodeSuccessMatch   = "ER_SUCCESS_MATCH"
	CodeSuccessNoMatch = "ER_SUCCESS_NO_MATCH"
	CodeErrorTimeout   = "ER_ERROR_TIMEOUT"
	CodeErrorException = "ER_ERROR_EXCEPTION"
)

// Request is a platform-neutral view of one inbound dialog turn.
type Request struct {
	Type        RequestType `json:"type"`
	RequestID   string      `json:"request_id,omitempty"`
	SessionID   string      `json:"session_id,omitempty"`
	UserID      string      `json:"user_id,omitempty"`
	Locale      string      `json:"locale,omitempty"`
	DialogState string      `json:"dialog_state,omitempty"`
	Intent      *Intent     `json:"intent,omitempty"`

	// Reason is set on SessionEnded requests.
	Reason string `json:"reason,omitempty"`
}

// IntentName returns the intent name, or "" for requests without an intent.
func (r *Request) IntentName() string {
	if r == nil || r.Intent == nil {
		return ""
	}
	return r.Intent.Name
}

// Intent carries the intent name and the raw slots collected so far.
type Intent struct {
	Name               string          `json:"name"`
	ConfirmationStatus string          `json:"confirmation_status,omitempty"`
	Slots              map[string]Slot `json:"slots,omitempty"`
}

// Slot is the raw platform payload for one slot.
type Slot struct {
	Name               string      `json:"name"`
	Value              string      `json:"value,omitempty"`
	ConfirmationStatus string      `json:"confirmation_status,omitempty"`
	Resolutions        []Authority `json:"resolutions,omitempty"`
}

// Authority is the result reported by one entity resolution authority.
type Authority struct {
	Name   string   `json:"authority,omitempty"`
	Code   string   `json:"code"`
	Values []string `json:"values,omitempty"`
}
