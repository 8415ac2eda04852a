package domain

// OutputType names a platform dialog directive attached to a response.
type OutputType string

const (
	OutputElicitSlot OutputType = "Dialog.ElicitSlot"
	OutputDelegate   OutputType = "Dialog.Delegate"
)

// OutputDirective is a dialog directive for the platform.
type OutputDirective struct {
	Type          OutputType `json:"type"`
	SlotToElicit  string     `json:"slot_to_elicit,omitempty"`
	UpdatedIntent *Intent    `json:"updated_intent,omitempty"`
}

// Response is what the core asks the platform to say and do.
// Serialization into a concrete platform response is left to adapters.
type Response struct {
	Speech           string            `json:"speech,omitempty"`
	Reprompt         string            `json:"reprompt,omitempty"`
	Directives       []OutputDirective `json:"directives,omitempty"`
	ShouldEndSession bool              `json:"should_end_session"`

	// Outcome is set when the turn produced a recommendation.
	Outcome *Outcome `json:"outcome,omitempty"`
}
