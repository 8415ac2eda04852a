package domain

// Outcome is a recommended occupation. Outcomes are immutable reference data.
type Outcome struct {
	Index       int    `json:"index" yaml:"-"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}
